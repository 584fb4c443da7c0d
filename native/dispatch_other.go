// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

//go:build !amd64 && !arm64

package native

func init() {
	currentWidthLevel = widthScalar
	currentWidthBytes = 16
	cacheLineBytes = 64
}
