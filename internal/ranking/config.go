package ranking

// DefaultNameBoost is the bonus added by the boosted strategy on an ID match.
const DefaultNameBoost = 0.1

// RankingConfig holds the ranker settings.
type RankingConfig struct {
	Strategy  Strategy `yaml:"ranker"`
	NameBoost float64  `yaml:"name_boost"`           // default: 0.1
	Threshold float64  `yaml:"similarity_threshold"` // boosted strategy only
}

// DefaultRankingConfig returns a plain-strategy configuration.
func DefaultRankingConfig() *RankingConfig {
	c := &RankingConfig{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills zero values.
func (c *RankingConfig) ApplyDefaults() {
	if c.Strategy == "" {
		c.Strategy = StrategyPlain
	}
	if c.NameBoost == 0 {
		c.NameBoost = DefaultNameBoost
	}
}
