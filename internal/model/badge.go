package model

// Badge is an achievement unlocked by crossing a points threshold
type Badge struct {
	ID             string
	Name           string
	RequiredPoints int
	Icon           string
	Claimed        bool
}

// Claimable reports whether the badge can be claimed with the given points
func (b Badge) Claimable(points int) bool {
	return !b.Claimed && points >= b.RequiredPoints
}
