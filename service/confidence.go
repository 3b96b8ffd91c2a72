package service

import "github.com/dbarkol/telco-ai-solution-labs/types"

// ScorePolicy maps the top retrieval score to a confidence label. The mapping
// is tied to one fusion algorithm's score distribution, so it lives behind an
// interface: swapping the store's fusion means swapping the policy, not the
// pipeline.
type ScorePolicy interface {
	Confidence(topScore float64) types.Confidence
}

// RankedFusionPolicy classifies reciprocal-rank fusion scores, which cluster
// in a low absolute range (roughly 0.01-0.05). The thresholds are meaningless
// for any other scoring scale.
type RankedFusionPolicy struct {
	High   float64
	Medium float64
}

func NewRankedFusionPolicy() *RankedFusionPolicy {
	return &RankedFusionPolicy{High: 0.03, Medium: 0.02}
}

func (p *RankedFusionPolicy) Confidence(topScore float64) types.Confidence {
	switch {
	case topScore > p.High:
		return types.ConfidenceHigh
	case topScore > p.Medium:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}
