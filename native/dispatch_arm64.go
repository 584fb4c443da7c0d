// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

//go:build arm64

package native

import "golang.org/x/sys/cpu"

func init() {
	if noWidthHintEnv() {
		currentWidthLevel = widthScalar
		currentWidthBytes = 16
		return
	}

	// NEON (ASIMD) is part of the ARMv8-A base architecture; always
	// present on arm64. We still check it for consistency with the
	// other platform files and to leave room for SVE detection later.
	if cpu.ARM64.HasASIMD {
		currentWidthLevel = widthNEON
		currentWidthBytes = 16
	} else {
		currentWidthLevel = widthScalar
		currentWidthBytes = 16
	}

	// Apple Silicon and recent Cortex cores use 128-byte cache lines;
	// matches x/sys/cpu's unexported cacheLineSize for arm64.
	cacheLineBytes = 128
}
