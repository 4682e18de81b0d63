package career

// DefaultTargetRole is assessed when the caller names no role.
const DefaultTargetRole = "Full Stack Developer"

// maxRoleLength bounds a free-text role name.
const maxRoleLength = 100

// Config holds career advisory settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	DefaultRole string
}

// DefaultConfig returns sensible defaults for career advisory calls.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.3,
		DefaultRole: DefaultTargetRole,
	}
}
