package generation

// GenerateRequest asks the generation subsystem for a completion with per-step
// output scores.
type GenerateRequest struct {
	Prompt       string `json:"prompt"`
	MaxNewTokens int    `json:"max_new_tokens,omitempty"`
	OutputScores bool   `json:"output_scores"`
}

// GenerateResponse carries the generated text and the raw per-step score vectors,
// one row per generated token, each of vocabulary width.
type GenerateResponse struct {
	Success bool        `json:"success"`
	Text    string      `json:"text"`
	Scores  [][]float64 `json:"scores"`
	Message string      `json:"message,omitempty"`
}
