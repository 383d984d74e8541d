// Package ranking scores stored records against a query vector.
package ranking

import "fmt"

// Strategy selects how a record score is computed.
type Strategy string

const (
	// StrategyPlain scores by cosine similarity only and never gates on a threshold.
	StrategyPlain Strategy = "plain"
	// StrategyBoosted adds a fixed bonus when the record ID contains the query text
	// and gates the best score on the similarity threshold.
	StrategyBoosted Strategy = "boosted"
)

// ParseStrategy converts a configuration value into a Strategy. Empty means plain.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyPlain, "":
		return StrategyPlain, nil
	case StrategyBoosted:
		return StrategyBoosted, nil
	default:
		return "", fmt.Errorf("unknown ranker: %s (supported: plain, boosted)", s)
	}
}

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	return string(s)
}

// Score is the result of scoring one record.
type Score struct {
	// Value is the ranking score: Cosine plus Boost. It may exceed 1 for boosted scores.
	Value  float64
	Cosine float64
	Boost  float64
	// Err is vector.ErrDimensionMismatch or vector.ErrDegenerateVector when the cosine
	// part was defined as 0; nil otherwise.
	Err error
}
