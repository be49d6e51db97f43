// Package profile carries the weighted-sum scoring parameters the chunk
// parser uses to rank candidate segmentations, mirroring the teacher's
// BM25F-style scoring config: a flat struct of tunable weights plus a
// DefaultConfig-style constructor.
package profile

// TokenizerProfile is the recognized weight option set. Lower total score
// is better; users pass alternate profiles by value.
type TokenizerProfile struct {
	UnknownWeight          float64
	UnknownCoverageWeight  float64
	FreqWeight             float64
	UnknownPosCountWeight  float64
	WordsWeight            float64
	InitialPosArrWeight    float64
	SpaceGuideWeight       float64
	PreferredPosWeight     float64
	PosCountWeight         float64
}

// Default returns the tokenizer's baseline weights, calibrated so that an
// unknown token is penalized more heavily than restarting a new word, and
// common nouns are rewarded over rare ones.
func Default() TokenizerProfile {
	return TokenizerProfile{
		UnknownWeight:         5.0,
		UnknownCoverageWeight: 1.0,
		FreqWeight:            0.5,
		UnknownPosCountWeight: 2.0,
		WordsWeight:           1.0,
		InitialPosArrWeight:   1.5,
		SpaceGuideWeight:      0.5,
		PreferredPosWeight:    0.5,
		PosCountWeight:        0.2,
	}
}
