package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/scentlog/scentlog/internal/domain"
	"github.com/scentlog/scentlog/internal/domain/entity"
	"github.com/scentlog/scentlog/internal/domain/repository"
)

type DiscussionRepository struct {
	db DB
}

func NewDiscussionRepository(db DB) *DiscussionRepository {
	return &DiscussionRepository{db: db}
}

// discussionSelect pulls the thread row plus joined author/perfume identity
// and the two counters derived from the reply and like tables.
const discussionSelect = `
	SELECT d.id, d.title, d.content, d.user_id, d.perfume_id, d.tags,
	       d.created_at, d.updated_at,
	       u.name, u.avatar_url,
	       COALESCE(p.name, ''), COALESCE(p.brand, ''),
	       (SELECT count(*) FROM discussion_replies dr WHERE dr.discussion_id = d.id) AS reply_count,
	       (SELECT count(*) FROM discussion_likes dl WHERE dl.discussion_id = d.id) AS like_count
	FROM discussions d
	JOIN users u ON u.id = d.user_id
	LEFT JOIN perfumes p ON p.id = d.perfume_id
`

func scanDiscussion(row interface{ Scan(...any) error }, d *entity.Discussion, extra ...any) error {
	dest := []any{
		&d.ID, &d.Title, &d.Content, &d.UserID, &d.PerfumeID, &d.Tags,
		&d.CreatedAt, &d.UpdatedAt,
		&d.AuthorName, &d.AuthorAvatar,
		&d.PerfumeName, &d.PerfumeBrand,
		&d.ReplyCount, &d.LikeCount,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *DiscussionRepository) Create(ctx context.Context, d *entity.Discussion) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO discussions (title, content, user_id, perfume_id, tags)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, d.Title, d.Content, d.UserID, d.PerfumeID, d.Tags)
	return mapError(row.Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt))
}

func (r *DiscussionRepository) GetByID(ctx context.Context, id string) (*entity.Discussion, error) {
	d := &entity.Discussion{}
	row := r.db.QueryRow(ctx, discussionSelect+` WHERE d.id = $1`, id)
	if err := scanDiscussion(row, d); err != nil {
		return nil, mapError(err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT dr.id, dr.discussion_id, dr.user_id, dr.content, dr.created_at,
		       u.name, u.avatar_url,
		       (SELECT count(*) FROM reply_likes rl WHERE rl.reply_id = dr.id) AS like_count
		FROM discussion_replies dr
		JOIN users u ON u.id = dr.user_id
		WHERE dr.discussion_id = $1
		ORDER BY dr.created_at ASC, dr.id ASC
	`, id)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	d.Replies = []entity.Reply{}
	for rows.Next() {
		var rp entity.Reply
		if err := rows.Scan(&rp.ID, &rp.DiscussionID, &rp.UserID, &rp.Content,
			&rp.CreatedAt, &rp.AuthorName, &rp.AuthorAvatar, &rp.LikeCount); err != nil {
			return nil, mapError(err)
		}
		d.Replies = append(d.Replies, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return d, nil
}

var discussionSortColumns = map[string]string{
	"created_at": "d.created_at",
	"replies":    "reply_count",
	"likes":      "like_count",
}

func (r *DiscussionRepository) List(ctx context.Context, f repository.DiscussionFilter) ([]entity.Discussion, int, error) {
	lim, offset := pageOffset(f.Page, f.Limit, 10)

	where := ""
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Search != "" {
		where += ` AND (d.title ILIKE ` + arg("%"+f.Search+"%") + ` OR d.content ILIKE ` + arg("%"+f.Search+"%") + `)`
	}
	if f.PerfumeID != "" {
		where += ` AND d.perfume_id = ` + arg(f.PerfumeID)
	}

	order := "d.created_at DESC"
	sort, dir := f.Sort, " DESC"
	if len(sort) > 0 && sort[0] == '-' {
		sort = sort[1:]
	} else if sort != "" {
		dir = " ASC"
	}
	if col, ok := discussionSortColumns[sort]; ok {
		order = col + dir + ", d.id ASC"
	}

	rows, err := r.db.Query(ctx, `
		SELECT d.id, d.title, d.content, d.user_id, d.perfume_id, d.tags,
		       d.created_at, d.updated_at,
		       u.name, u.avatar_url,
		       COALESCE(p.name, ''), COALESCE(p.brand, ''),
		       (SELECT count(*) FROM discussion_replies dr WHERE dr.discussion_id = d.id) AS reply_count,
		       (SELECT count(*) FROM discussion_likes dl WHERE dl.discussion_id = d.id) AS like_count,
		       count(*) OVER() AS total_count
		FROM discussions d
		JOIN users u ON u.id = d.user_id
		LEFT JOIN perfumes p ON p.id = d.perfume_id
		WHERE 1=1`+where+`
		ORDER BY `+order+`
		LIMIT `+arg(lim)+` OFFSET `+arg(offset), args...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	out := []entity.Discussion{}
	total := 0
	for rows.Next() {
		var d entity.Discussion
		if err := scanDiscussion(rows, &d, &total); err != nil {
			return nil, 0, mapError(err)
		}
		out = append(out, d)
	}
	return out, total, mapError(rows.Err())
}

func (r *DiscussionRepository) Update(ctx context.Context, d *entity.Discussion) error {
	d.UpdatedAt = time.Now()
	res, err := r.db.Exec(ctx, `
		UPDATE discussions
		SET title = $1, content = $2, tags = $3, updated_at = $4
		WHERE id = $5
	`, d.Title, d.Content, d.Tags, d.UpdatedAt, d.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DiscussionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM discussions WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DiscussionRepository) AddReply(ctx context.Context, rp *entity.Reply) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO discussion_replies (discussion_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, rp.DiscussionID, rp.UserID, rp.Content)
	return mapError(row.Scan(&rp.ID, &rp.CreatedAt))
}

func (r *DiscussionRepository) GetReply(ctx context.Context, discussionID, replyID string) (*entity.Reply, error) {
	rp := &entity.Reply{}
	row := r.db.QueryRow(ctx, `
		SELECT id, discussion_id, user_id, content, created_at
		FROM discussion_replies
		WHERE id = $1 AND discussion_id = $2
	`, replyID, discussionID)
	if err := row.Scan(&rp.ID, &rp.DiscussionID, &rp.UserID, &rp.Content, &rp.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return rp, nil
}

func (r *DiscussionRepository) DeleteReply(ctx context.Context, discussionID, replyID string) error {
	res, err := r.db.Exec(ctx, `
		DELETE FROM discussion_replies WHERE id = $1 AND discussion_id = $2
	`, replyID, discussionID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DiscussionRepository) ToggleLike(ctx context.Context, discussionID, userID string) (bool, int, error) {
	res, err := r.db.Exec(ctx, `
		INSERT INTO discussion_likes (discussion_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (discussion_id, user_id) DO NOTHING
	`, discussionID, userID)
	if err != nil {
		return false, 0, mapError(err)
	}
	liked := res.RowsAffected() > 0
	if !liked {
		if _, err := r.db.Exec(ctx, `
			DELETE FROM discussion_likes WHERE discussion_id = $1 AND user_id = $2
		`, discussionID, userID); err != nil {
			return false, 0, mapError(err)
		}
	}

	var count int
	err = r.db.QueryRow(ctx, `
		SELECT count(*) FROM discussion_likes WHERE discussion_id = $1
	`, discussionID).Scan(&count)
	if err != nil {
		return false, 0, mapError(err)
	}
	return liked, count, nil
}

func (r *DiscussionRepository) ToggleReplyLike(ctx context.Context, discussionID, replyID, userID string) (bool, int, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM discussion_replies WHERE id = $1 AND discussion_id = $2
		)
	`, replyID, discussionID).Scan(&exists)
	if err != nil {
		return false, 0, mapError(err)
	}
	if !exists {
		return false, 0, domain.ErrNotFound
	}

	res, err := r.db.Exec(ctx, `
		INSERT INTO reply_likes (reply_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (reply_id, user_id) DO NOTHING
	`, replyID, userID)
	if err != nil {
		return false, 0, mapError(err)
	}
	liked := res.RowsAffected() > 0
	if !liked {
		if _, err := r.db.Exec(ctx, `
			DELETE FROM reply_likes WHERE reply_id = $1 AND user_id = $2
		`, replyID, userID); err != nil {
			return false, 0, mapError(err)
		}
	}

	var count int
	err = r.db.QueryRow(ctx, `
		SELECT count(*) FROM reply_likes WHERE reply_id = $1
	`, replyID).Scan(&count)
	if err != nil {
		return false, 0, mapError(err)
	}
	return liked, count, nil
}

var _ repository.DiscussionRepository = (*DiscussionRepository)(nil)
