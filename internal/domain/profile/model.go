package profile

import "time"

// Profile is the durable quota authority for a user.
type Profile struct {
	UserID              string
	Email               string
	IsPremium           bool
	FreePredictionsUsed int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// CanConsume reports whether the user may spend another prediction given the
// configured free allowance.
func (p Profile) CanConsume(freeLimit int) bool {
	if p.IsPremium {
		return true
	}
	return p.FreePredictionsUsed < freeLimit
}
