package scoreapi

// ScoreRequest carries the raw per-step score vectors of one generated sequence,
// one row per token, each row of vocabulary width. ApplySoftmax and TopK override
// the server defaults when set.
type ScoreRequest struct {
	Scores       [][]float64 `json:"scores"`
	ApplySoftmax *bool       `json:"apply_softmax,omitempty"`
	TopK         *int        `json:"top_k,omitempty"`
}

type ScoreResponse struct {
	Status      string    `json:"status"`
	Reliability float64   `json:"reliability"`
	Epistemic   float64   `json:"epistemic"`
	Aleatoric   []float64 `json:"aleatoric"`
	Message     string    `json:"message,omitempty"`
}

type BatchScoreRequest struct {
	Sequences    [][][]float64 `json:"sequences"`
	ApplySoftmax *bool         `json:"apply_softmax,omitempty"`
	TopK         *int          `json:"top_k,omitempty"`
}

type BatchScoreResponse struct {
	Status        string    `json:"status"`
	Reliabilities []float64 `json:"reliabilities"`
	Message       string    `json:"message,omitempty"`
}

// GenerateScoreRequest asks the service to run generation through the external
// subsystem and score the returned logits in one call.
type GenerateScoreRequest struct {
	Prompt       string `json:"prompt"`
	MaxNewTokens int    `json:"max_new_tokens,omitempty"`
	ApplySoftmax *bool  `json:"apply_softmax,omitempty"`
	TopK         *int   `json:"top_k,omitempty"`
}

type GenerateScoreResponse struct {
	Status      string  `json:"status"`
	Text        string  `json:"text"`
	Reliability float64 `json:"reliability"`
	Message     string  `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
