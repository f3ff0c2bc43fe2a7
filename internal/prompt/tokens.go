package prompt

// DefaultMaxTokens is the default input budget for a single request.
// Gemini flash models accept far more; this keeps a runaway paste from
// burning quota.
const DefaultMaxTokens = 30000

// EstimateTokens estimates the token count for a text.
// Uses a simple heuristic: ~4 characters per token for Latin languages.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	tokens := len(text) / 4
	if tokens == 0 {
		tokens = 1
	}
	return tokens
}

// WithinBudget reports whether text fits in maxTokens.
// A non-positive budget disables the check.
func WithinBudget(text string, maxTokens int) bool {
	if maxTokens <= 0 {
		return true
	}
	return EstimateTokens(text) <= maxTokens
}
