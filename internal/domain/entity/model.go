package entity

// ModelProfile describes the capability and pricing envelope of one model.
// Prices are USD per 1K tokens.
type ModelProfile struct {
	MaxOutputTokens int     `json:"max_output_tokens"`
	ContextWindow   int     `json:"context_window"`
	InputPricePerK  float64 `json:"input_price_per_k"`
	OutputPricePerK float64 `json:"output_price_per_k"`
}

// Usage is the token envelope attached to a successful generation.
type Usage struct {
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	TotalTokens  int    `json:"total_tokens"`
	ModelID      string `json:"model"`
}

// Catalog is the immutable model capability registry. It is loaded once at
// process start and shared read-only between all requests.
type Catalog struct {
	profiles map[string]ModelProfile
	fallback ModelProfile
}

func NewCatalog() *Catalog {
	profiles := map[string]ModelProfile{
		"gemini-2.5-pro": {
			MaxOutputTokens: 8192,
			ContextWindow:   1048576,
			InputPricePerK:  0.00125,
			OutputPricePerK: 0.01,
		},
		"gemini-2.5-flash": {
			MaxOutputTokens: 8192,
			ContextWindow:   1048576,
			InputPricePerK:  0.0003,
			OutputPricePerK: 0.0025,
		},
		"gemini-2.5-flash-lite": {
			MaxOutputTokens: 8192,
			ContextWindow:   1048576,
			InputPricePerK:  0.0001,
			OutputPricePerK: 0.0004,
		},
		"gemini-1.5-flash": {
			MaxOutputTokens: 8192,
			ContextWindow:   1048576,
			InputPricePerK:  0.000075,
			OutputPricePerK: 0.0003,
		},
	}

	// Unknown model ids resolve to a conservative token budget priced at the
	// cheapest known tier, so cost estimates never silently drop to zero.
	fallback := ModelProfile{
		MaxOutputTokens: 1024,
		ContextWindow:   32768,
		InputPricePerK:  profiles["gemini-1.5-flash"].InputPricePerK,
		OutputPricePerK: profiles["gemini-1.5-flash"].OutputPricePerK,
	}

	return &Catalog{profiles: profiles, fallback: fallback}
}

// ProfileFor is a pure lookup that never fails.
func (c *Catalog) ProfileFor(modelID string) ModelProfile {
	if p, ok := c.profiles[modelID]; ok {
		return p
	}
	return c.fallback
}

// EstimateCost converts a usage envelope into a USD estimate. Always returns
// a finite number >= 0.
func (c *Catalog) EstimateCost(u Usage) float64 {
	p := c.ProfileFor(u.ModelID)
	in := float64(u.InputTokens) / 1000 * p.InputPricePerK
	out := float64(u.OutputTokens) / 1000 * p.OutputPricePerK
	if in < 0 {
		in = 0
	}
	if out < 0 {
		out = 0
	}
	return in + out
}
