package mqc

// probScale maps probabilities in [0, 1] onto the coder's 16-bit
// fixed-point estimates. The 4/3 factor compensates for the average
// interval value the renormalization keeps A at.
const probScale = 4.0 / 3.0 * 0x8000

// Prob0ToMQ converts the probability that a bit is 0 into the signed
// probability code consumed by EncodeBitProb and DecodeBitProb. A
// probability of at least one half yields a non-negative code (symbol 0
// is most probable); below one half the code is negative (symbol 1 is
// most probable) with the magnitude carrying the estimate. prob0 is
// clamped into [0.0001, 0.9999] first, so every input produces a usable
// code.
//
// The conversion is deliberately kept out of the per-bit coding calls;
// callers with a fixed probability convert once and reuse the code.
func Prob0ToMQ(prob0 float64) int {
	if prob0 >= 0.5 {
		if prob0 > 0.9999 {
			prob0 = 0.9999
		}
		return int((1 - prob0) * probScale)
	}
	if prob0 < 0.0001 {
		prob0 = 0.0001
	}
	return -int(prob0 * probScale)
}

// MQToProb0 recovers the probability that a bit is 0 from a signed
// probability code, inverting Prob0ToMQ up to the precision of the
// 16-bit scale.
func MQToProb0(probMQ int) float64 {
	prob0 := float64(probMQ) / probScale
	if probMQ > 0 {
		return 1 - prob0
	}
	return -prob0
}
