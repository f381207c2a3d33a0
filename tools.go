// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

//go:build tools

// Package tools pins the code-generation binaries this repository's
// go:generate directives invoke, so `go mod tidy` keeps them in go.mod even
// though nothing at build time imports them.
package tools

import (
	_ "github.com/fjl/gencodec"
)