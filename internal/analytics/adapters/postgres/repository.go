package postgres

import (
	"context"
	"time"

	"github.com/Synth-Beta/synth-beta-testing-sub007/internal/analytics/core/domain"
	"github.com/Synth-Beta/synth-beta-testing-sub007/internal/analytics/core/ports"
)

// RowSource reads the five flat row sets the batch loader needs. All queries
// are read-only; row filtering that belongs to the store (non-null cities,
// non-draft reviews, the interaction window) lives in the SQL.
type RowSource struct {
	db DB
}

func NewRowSource(db DB) *RowSource {
	return &RowSource{db: db}
}

var _ ports.RowSourcePort = (*RowSource)(nil)

const listProfilesSQL = `
SELECT user_id, city, created_at
FROM user_profiles
WHERE city IS NOT NULL`

func (r *RowSource) ListProfiles(ctx context.Context) ([]domain.UserProfile, error) {
	rows, err := r.db.QueryContext(ctx, listProfilesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.UserProfile
	for rows.Next() {
		var p domain.UserProfile
		if err := rows.Scan(&p.UserID, &p.City, &p.CreatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}

const listFriendshipsSQL = `
SELECT user1_id, user2_id, created_at
FROM friendships`

func (r *RowSource) ListFriendships(ctx context.Context) ([]domain.Friendship, error) {
	rows, err := r.db.QueryContext(ctx, listFriendshipsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var friendships []domain.Friendship
	for rows.Next() {
		var f domain.Friendship
		if err := rows.Scan(&f.User1ID, &f.User2ID, &f.CreatedAt); err != nil {
			return nil, err
		}
		friendships = append(friendships, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return friendships, nil
}

const listInteractionsSQL = `
SELECT user_id, occurred_at
FROM interactions
WHERE occurred_at >= $1`

func (r *RowSource) ListInteractions(ctx context.Context, since time.Time) ([]domain.Interaction, error) {
	rows, err := r.db.QueryContext(ctx, listInteractionsSQL, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interactions []domain.Interaction
	for rows.Next() {
		var in domain.Interaction
		if err := rows.Scan(&in.UserID, &in.OccurredAt); err != nil {
			return nil, err
		}
		interactions = append(interactions, in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return interactions, nil
}

const listReviewsSQL = `
SELECT event_id, user_id
FROM reviews
WHERE is_draft = FALSE`

func (r *RowSource) ListReviews(ctx context.Context) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.EventID, &rv.UserID); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

const listEventsSQL = `
SELECT id, venue_city
FROM events
WHERE venue_city IS NOT NULL`

func (r *RowSource) ListEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, listEventsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.VenueCity); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
