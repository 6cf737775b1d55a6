package ports

import (
	"context"
	"time"

	"github.com/Synth-Beta/synth-beta-testing-sub007/internal/analytics/core/domain"
)

// RowSourcePort is the read-only boundary to the data store. Each method
// returns one flat row set; filtering that belongs to the store (non-null
// cities, non-draft reviews, the trailing interaction window) happens behind
// this port.
//
// True invite attribution would need a sixth row set here (invite edges with
// accepted-at timestamps); the port is the seam for it.
type RowSourcePort interface {
	// ListProfiles returns profiles with a non-null city.
	ListProfiles(ctx context.Context) ([]domain.UserProfile, error)
	// ListFriendships returns every friendship pair.
	ListFriendships(ctx context.Context) ([]domain.Friendship, error)
	// ListInteractions returns interactions that occurred at or after since.
	ListInteractions(ctx context.Context, since time.Time) ([]domain.Interaction, error)
	// ListReviews returns non-draft reviews.
	ListReviews(ctx context.Context) ([]domain.Review, error)
	// ListEvents returns events with a non-null venue city.
	ListEvents(ctx context.Context) ([]domain.Event, error)
}
