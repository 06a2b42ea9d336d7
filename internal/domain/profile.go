package domain

import "time"

// ProfileState is everything the user configures: their nickname and the
// destinations they track. It is loaded and saved as a unit by ProfileStore.
type ProfileState struct {
	Nickname     string
	Destinations []Destination
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
