package nfa

import "golang.org/x/sys/cpu"

// scanUnprintableRun locates the end of a run of bytes, starting at from,
// that are neither a line break nor classifiable by the alphabet — the
// span tolerant search skips over between two candidate lines. Two pure
// Go kernels are available; the 8-byte-at-a-time one is selected when
// the host has SSE2, mirroring the hardware-feature gate a vectorized
// memchr would use, without committing to actual assembly.
var scanUnprintableRun = selectScanKernel()

func selectScanKernel() func([]byte, int) int {
	if cpu.X86.HasSSE2 {
		return scanUnprintableRunWords
	}
	return scanUnprintableRunBytes
}

func scanUnprintableRunBytes(text []byte, from int) int {
	i := from
	for i < len(text) {
		c := text[i]
		if c == '\r' || c == '\n' {
			break
		}
		if _, ok := ClassifyByte(c); ok {
			break
		}
		i++
	}
	return i
}

// scanUnprintableRunWords checks 8 bytes at a time for a byte that would
// end the run, falling back to the byte-wise scan once a candidate word
// is found (or at the final partial word).
func scanUnprintableRunWords(text []byte, from int) int {
	i := from
	for i+8 <= len(text) {
		if wordHasRunTerminator(text[i : i+8]) {
			break
		}
		i += 8
	}
	return scanUnprintableRunBytes(text, i)
}

func wordHasRunTerminator(word []byte) bool {
	for _, c := range word {
		if c == '\r' || c == '\n' {
			return true
		}
		if _, ok := ClassifyByte(c); ok {
			return true
		}
	}
	return false
}
