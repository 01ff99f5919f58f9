package engine

// Confidence scoring constants. Confidence never reaches 1.0: headroom is
// reserved for manual correction during review.
const (
	confidenceBaseline   = 0.3
	confidenceStrongRule = 0.7
	confidenceKeywordCap = 0.9
	confidencePerKeyword = 0.1
	confidenceModelFloor = 0.7
	structuredBonus      = 0.05
	structuredBonusLimit = 0.85
	confidenceMax        = 0.99
)

// computeConfidence converts match strength into a bounded confidence value.
// Strong rules dominate; configured keyword/regex hits raise the score
// proportionally; structured tokens add a small bonus; a consumed model
// prediction floors the result at the strong-rule level.
func computeConfidence(matchedHits int, structuredPresent, strongRule, modelUsed bool) float64 {
	conf := confidenceBaseline

	if strongRule {
		conf = confidenceStrongRule
	}

	if matchedHits > 0 {
		raised := conf + confidencePerKeyword*float64(matchedHits)
		if raised > confidenceKeywordCap {
			raised = confidenceKeywordCap
		}
		if raised > conf {
			conf = raised
		}
	}

	if structuredPresent && conf < structuredBonusLimit {
		conf += structuredBonus
	}

	if modelUsed && conf < confidenceModelFloor {
		conf = confidenceModelFloor
	}

	if conf < 0 {
		conf = 0
	}
	if conf > confidenceMax {
		conf = confidenceMax
	}
	return conf
}
