// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build debug

package internal

// Debug enables expensive self-checks of algorithm invariants.
const Debug = true
