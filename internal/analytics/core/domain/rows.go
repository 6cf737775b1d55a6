package domain

import "time"

// Raw row shapes as returned by the row source. The engine never mutates
// them after load.

type UserProfile struct {
	UserID    string
	City      string
	CreatedAt time.Time
}

// Friendship is undirected; the pair is stored in the order the source keeps
// it, and a user counts as a friend on either side.
type Friendship struct {
	User1ID   string
	User2ID   string
	CreatedAt time.Time
}

type Interaction struct {
	UserID     string
	OccurredAt time.Time
}

type Review struct {
	EventID string
	UserID  string
}

type Event struct {
	ID        string
	VenueCity string
}
