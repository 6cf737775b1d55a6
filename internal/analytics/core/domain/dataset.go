package domain

import "time"

// BatchDataset is one loaded snapshot of every row set the engine reads,
// plus the per-city indices built once at load time. A dataset is immutable
// after load; metric functions only read from it.
type BatchDataset struct {
	SnapshotID string
	LoadedAt   time.Time

	Profiles     []UserProfile
	Friendships  []Friendship
	Interactions []Interaction
	Reviews      []Review
	Events       []Event

	// Derived indices. Keys are canonical target names for the city maps
	// and user ids elsewhere.
	UsersByCity        map[string]map[string]struct{}
	CityByUser         map[string]string
	ProfilesByUser     map[string]UserProfile
	InteractionsByUser map[string][]time.Time
	FriendCount        map[string]int
	EventsByCity       map[string][]string
	ReviewsByEvent     map[string]int
}

// Age reports how old the snapshot is at the given instant.
func (d *BatchDataset) Age(now time.Time) time.Duration {
	return now.Sub(d.LoadedAt)
}
