// Package backend hosts the model side of the gateway contract: it turns
// gateway requests into Gemini calls and applies the provider's internal
// model fallback chain.
package backend

// Provider names accepted in a model selector.
const (
	ProviderGemini = "gemini"
	ProviderGoogle = "google"
)

// Config holds the model chain for the backend.
type Config struct {
	// Chain is the ordered list of models tried when the request carries no
	// explicit selector. The first entry is the primary model.
	Chain []string
	// DefaultTemperature applies when the request does not set one.
	DefaultTemperature float32
}

// DefaultConfig returns the stock Gemini chain.
func DefaultConfig() *Config {
	return &Config{
		Chain: []string{
			"gemini-2.5-flash",
			"gemini-2.5-flash-lite",
			"gemini-2.5-pro",
		},
		DefaultTemperature: 0.4,
	}
}

// Primary returns the first model of the chain.
func (c *Config) Primary() string {
	if len(c.Chain) == 0 {
		return ""
	}
	return c.Chain[0]
}

// WithChain returns a copy of the config with a different model chain.
func (c *Config) WithChain(models ...string) *Config {
	out := &Config{
		Chain:              append([]string(nil), models...),
		DefaultTemperature: c.DefaultTemperature,
	}
	return out
}
