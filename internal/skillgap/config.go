package skillgap

// DefaultTargetRole is analyzed when the caller names no role.
const DefaultTargetRole = "Full Stack Developer"

// snippetLimit bounds the JSON excerpts of experience and projects in the
// prompt, in bytes.
const snippetLimit = 500

// Seed levels for current skills the model did not estimate.
const (
	seedStrongLevel  = 75
	seedWeakLevel    = 45
	seedMissingLevel = 15
)

// Config holds skill gap generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	DefaultRole string
}

// DefaultConfig returns sensible defaults for skill gap generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.4,
		DefaultRole: DefaultTargetRole,
	}
}
