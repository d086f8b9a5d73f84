package domain

// KeyPrefix namespaces every key resumatch writes to a shared key-value store.
const KeyPrefix = "resumatch:"

// MatchConfig holds matching pipeline settings, not exposed to clients.
type MatchConfig struct {
	Workers       int
	MaxBatchSize  int
	PreviewLength int
	MinCorpusSize int
}

// DefaultMatchConfig returns the defaults used when nothing is configured.
// Services, config loading and the SDK all take their defaults from here.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		Workers:       4,
		MaxBatchSize:  100,
		PreviewLength: 100,
		MinCorpusSize: 2,
	}
}
