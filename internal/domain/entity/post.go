package entity

// BotConfig is the caller-defined persona driving a generation request.
type BotConfig struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	ModelID string `json:"model"` // e.g. "gemini-2.5-flash"
	Persona string `json:"persona"`
}

// ChatRequest is a single chat-style completion request to the model provider.
type ChatRequest struct {
	ModelID         string
	System          string
	Prompt          string
	Temperature     float32
	MaxOutputTokens int
}

// ChatResponse carries the raw response text plus the provider's token counters.
type ChatResponse struct {
	Text  string
	Usage Usage
}

// Post is the result envelope of a successful board post generation.
// Immutable after construction; the pipeline keeps no reference to it.
type Post struct {
	Title    string  `json:"title"`
	BodyHTML string  `json:"body_html"`
	Usage    Usage   `json:"usage"`
	CostUSD  float64 `json:"cost_usd"`
}

// BotUsage is the accumulated consumption of one bot across requests.
type BotUsage struct {
	TotalTokens int64   `json:"total_tokens"`
	CostUSD     float64 `json:"cost_usd"`
}
