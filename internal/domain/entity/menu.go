package entity

// Review is one review text with its star rating. Read-only to the engine.
type Review struct {
	Text   string  `json:"text"`
	Rating float64 `json:"rating"`
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentMixed    Sentiment = "mixed"
)

// MenuItem is one dish extracted from a review corpus. Score drives the final
// ordering (descending) and stays within [0,100].
type MenuItem struct {
	Name        string    `json:"name"`
	Mentions    int       `json:"mentions"`
	PriceHint   string    `json:"price_hint,omitempty"`
	PortionInfo string    `json:"portion_info,omitempty"`
	Description string    `json:"description,omitempty"`
	Ingredients []string  `json:"ingredients"`
	Sentiment   Sentiment `json:"sentiment"`
	Score       float64   `json:"score"`
}

// ClampScore keeps a relevance score inside the documented [0,100] range.
func ClampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
