package learningplan

// TargetWeeks is the curriculum length requested from the model.
const TargetWeeks = 8

// Config holds learning plan generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for learning plan generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.5,
	}
}
