package studygen

// Config controls the behavior of the Generator.
type Config struct {
	// MaterialMaxTokens is the token budget for the summary response.
	MaterialMaxTokens int

	// FlashcardMaxTokens is the token budget for the flashcard set. Card
	// sets are the largest of the three artifacts.
	FlashcardMaxTokens int

	// MCQMaxTokens is the token budget for the MCQ set.
	MCQMaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaterialMaxTokens:  2048,
		FlashcardMaxTokens: 4096,
		MCQMaxTokens:       2048,
		Temperature:        0.4,
	}
}
