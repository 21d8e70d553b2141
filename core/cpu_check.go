package core

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// CPUFeatures reports the SIMD extensions of the host CPU. The kernel is
// plain Go and runs without any of them; the report is informational.
func CPUFeatures() map[string]bool {
	features := map[string]bool{}
	switch runtime.GOARCH {
	case "amd64", "386":
		features["sse4.1"] = cpu.X86.HasSSE41
		features["avx"] = cpu.X86.HasAVX
		features["avx2"] = cpu.X86.HasAVX2
		features["fma"] = cpu.X86.HasFMA
		features["avx512f"] = cpu.X86.HasAVX512F
	case "arm64":
		features["asimd"] = cpu.ARM64.HasASIMD
		features["sve"] = cpu.ARM64.HasSVE
	}
	return features
}
