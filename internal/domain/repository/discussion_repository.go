package repository

import (
	"context"

	"github.com/scentlog/scentlog/internal/domain/entity"
)

// DiscussionFilter holds forum listing criteria.
type DiscussionFilter struct {
	Search    string
	PerfumeID string
	Sort      string
	Page      int
	Limit     int
}

// DiscussionRepository defines the persistence contract for forum threads,
// replies and both like sets. Like toggles are read-modify-write without
// locking; concurrent toggles on the same record are last-writer-wins.
type DiscussionRepository interface {
	Create(ctx context.Context, d *entity.Discussion) error

	// GetByID loads the discussion with its replies in creation order.
	GetByID(ctx context.Context, id string) (*entity.Discussion, error)
	List(ctx context.Context, f DiscussionFilter) ([]entity.Discussion, int, error)
	Update(ctx context.Context, d *entity.Discussion) error
	Delete(ctx context.Context, id string) error

	AddReply(ctx context.Context, r *entity.Reply) error
	GetReply(ctx context.Context, discussionID, replyID string) (*entity.Reply, error)
	DeleteReply(ctx context.Context, discussionID, replyID string) error

	// ToggleLike flips the user's like on the discussion and returns whether
	// it is liked afterwards plus the new like count.
	ToggleLike(ctx context.Context, discussionID, userID string) (bool, int, error)
	ToggleReplyLike(ctx context.Context, discussionID, replyID, userID string) (bool, int, error)
}
