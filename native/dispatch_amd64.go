// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

//go:build amd64

package native

import "golang.org/x/sys/cpu"

func init() {
	if noWidthHintEnv() {
		currentWidthLevel = widthScalar
		currentWidthBytes = 16
		return
	}

	switch {
	case cpu.X86.HasAVX512F:
		currentWidthLevel = widthAVX512
		currentWidthBytes = 64
	case cpu.X86.HasAVX2:
		currentWidthLevel = widthAVX2
		currentWidthBytes = 32
	default:
		// SSE2 is part of the amd64 baseline.
		currentWidthLevel = widthSSE2
		currentWidthBytes = 16
	}

	// x86-64 cache lines are 64 bytes on every CPU x/sys/cpu supports;
	// matches the unexported cacheLineSize constant in its cpu_x86.go.
	cacheLineBytes = 64
}
