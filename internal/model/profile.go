package model

// Defaults for a profile document missing fields
const (
	DefaultUsername = "User"
	DefaultLevel    = "Eco Beginner"
)

// Profile is the signed-in user's gamification state
type Profile struct {
	UserID        string
	Username      string
	Points        int
	Level         string
	ClaimedBadges []string
}
