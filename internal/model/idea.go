package model

// Difficulty levels used by ideas and the post form
const (
	DifficultyEasy   = "Mudah"
	DifficultyMedium = "Sedang"
	DifficultyHard   = "Sulit"
)

// Idea is a reusable project template shared by everyone
type Idea struct {
	ID           int64
	Title        string
	Difficulty   string
	TimeRequired string
	Description  string
	Tools        []string
	Materials    []string
	Steps        []string
	Category     string
	Color        Color
	ImageURL     string
}

// DifficultyPoints returns the points advertised for a difficulty
func DifficultyPoints(difficulty string) int {
	switch difficulty {
	case DifficultyMedium:
		return 100
	case DifficultyHard:
		return 200
	default:
		return 50
	}
}
