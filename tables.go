package mqc

// Probability estimation tables for the MQ coder.
//
// The estimator is the 47-state finite-state machine of ITU-T T.800
// (JPEG2000) Annex C, Table C.2. Each state carries a probability
// estimate for the least probable symbol and two transitions: one taken
// after coding the MPS, one after coding the LPS. Three states
// additionally flip which symbol is considered most probable when the
// LPS is coded.
//
// The tables are kept as four flat arrays indexed by state so the hot
// paths can load exactly the column they need.

// numStates is the number of states in the probability estimation
// automaton. Context state indices are always in [0, numStates).
const numStates = 47

// transitionMPS is the next state after coding the most probable symbol.
var transitionMPS = [numStates]int{
	1, 2, 3, 4, 5, 38, 7, 8,
	9, 10, 11, 12, 13, 29, 15, 16,
	17, 18, 19, 20, 21, 22, 23, 24,
	25, 26, 27, 28, 29, 30, 31, 32,
	33, 34, 35, 36, 37, 38, 39, 40,
	41, 42, 43, 44, 45, 45, 46,
}

// transitionLPS is the next state after coding the least probable symbol.
var transitionLPS = [numStates]int{
	1, 6, 9, 12, 29, 33, 6, 14,
	14, 14, 17, 18, 20, 21, 14, 14,
	15, 16, 17, 18, 19, 19, 20, 21,
	22, 23, 24, 25, 26, 27, 28, 29,
	30, 31, 32, 33, 34, 35, 36, 37,
	38, 39, 40, 41, 42, 43, 46,
}

// switchMPS reports whether coding the LPS at a state flips the context's
// most probable symbol. Only the three fast-attack states 0, 6 and 14 do.
var switchMPS = [numStates]bool{
	0:  true,
	6:  true,
	14: true,
}

// stateProb is the LPS probability estimate of each state as a 16-bit
// fixed-point value. The real probability is value / (2^16 * alpha) with
// alpha ~= 0.708. State 46 is the non-adaptive (uniform) state.
var stateProb = [numStates]uint32{
	0x5601, 0x3401, 0x1801, 0x0AC1, 0x0521, 0x0221, 0x5601, 0x5401,
	0x4801, 0x3801, 0x3001, 0x2401, 0x1C01, 0x1601, 0x5601, 0x5401,
	0x5101, 0x4801, 0x3801, 0x3401, 0x3001, 0x2801, 0x2401, 0x2201,
	0x1C01, 0x1801, 0x1601, 0x1401, 0x1201, 0x1101, 0x0AC1, 0x09C1,
	0x08A1, 0x0521, 0x0441, 0x02A1, 0x0221, 0x0141, 0x0111, 0x0085,
	0x0049, 0x0025, 0x0015, 0x0009, 0x0005, 0x0001, 0x5601,
}
