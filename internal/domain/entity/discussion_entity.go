package entity

import "time"

// Limits for forum content.
const (
	DiscussionTitleMaxLen   = 150
	DiscussionContentMaxLen = 2000
	ReplyContentMaxLen      = 500
)

// Discussion is a forum thread, optionally attached to a perfume.
type Discussion struct {
	ID        string
	Title     string
	Content   string
	UserID    string
	PerfumeID *string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time

	Replies    []Reply
	ReplyCount int
	LikeCount  int

	// Joined author and perfume identity for list/detail endpoints.
	AuthorName   string
	AuthorAvatar string
	PerfumeName  string
	PerfumeBrand string
}

// Reply is a single response inside a discussion.
type Reply struct {
	ID           string
	DiscussionID string
	UserID       string
	Content      string
	LikeCount    int
	CreatedAt    time.Time

	AuthorName   string
	AuthorAvatar string
}
