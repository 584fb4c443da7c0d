// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

package native

import (
	"os"
	"strconv"
)

// widthLevel names the detected vector width class for the current CPU.
// Unlike the teacher library this is never used to pick an assembly
// kernel — none of these kernels are hand-vectorized. It is only reported
// through CurrentWidthBytes; chunk sizing (ChunkHint) and accumulator
// padding (mesh artifact weights, §5) depend on CacheLineBytes alone.
type widthLevel int

const (
	widthScalar widthLevel = iota
	widthSSE2
	widthAVX2
	widthAVX512
	widthNEON
)

// currentWidthLevel and currentWidthBytes are set by the platform-specific
// init() in dispatch_amd64.go / dispatch_arm64.go / dispatch_other.go.
var (
	currentWidthLevel widthLevel
	currentWidthBytes int
	cacheLineBytes    = 64
)

// CurrentWidthBytes returns the detected SIMD register width in bytes for
// this CPU (16 for SSE2/NEON, 32 for AVX2, 64 for AVX-512, 16 as a
// conservative default otherwise). It is a scheduling hint, not a
// guarantee that any kernel actually issues vector instructions.
func CurrentWidthBytes() int {
	return currentWidthBytes
}

// CacheLineBytes returns the assumed CPU cache line size, used to pad
// per-shard accumulators in concurrent reductions so independent workers
// never false-share a line.
func CacheLineBytes() int {
	return cacheLineBytes
}

// noWidthHintEnv checks INVESALIUS_NATIVE_NO_WIDTH_HINT, which disables
// the width/cache-line based chunk-size hint and falls back to plain
// GOMAXPROCS-based sharding. This affects scheduling granularity only,
// never a kernel's numerical result. Grounded on the teacher's
// HWY_NO_SIMD escape hatch.
func noWidthHintEnv() bool {
	val := os.Getenv("INVESALIUS_NATIVE_NO_WIDTH_HINT")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// ChunkHint returns a suggested minimum chunk size (in elements) for
// splitting n items of size elemBytes across the worker pool: large
// enough that each worker's slice spans a whole number of cache lines,
// small enough that all workers still get work for any n of practical
// size (tens of millions of voxels down to a handful of mesh vertices).
func ChunkHint(n, elemBytes int) int {
	if noWidthHintEnv() || elemBytes <= 0 {
		return 1
	}
	// The smallest element count whose byte size is a whole number of
	// cache lines: cacheLineBytes / gcd(cacheLineBytes, elemBytes).
	a, b := cacheLineBytes, elemBytes
	for b != 0 {
		a, b = b, a%b
	}
	return cacheLineBytes / a
}
