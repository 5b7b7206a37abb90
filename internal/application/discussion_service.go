package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/scentlog/scentlog/internal/domain"
	"github.com/scentlog/scentlog/internal/domain/entity"
	repo "github.com/scentlog/scentlog/internal/domain/repository"
	"github.com/scentlog/scentlog/pkg/mailer"
)

// DiscussionService owns the forum: threads, replies and like toggles.
// A reply queues a notification email for the thread author.
type DiscussionService struct {
	Discussions repo.DiscussionRepository
	Users       repo.UserRepository
	Perfumes    repo.PerfumeRepository
	Policy      domain.Policy
	Mail        EmailQueue
	Logger      *logrus.Logger
	AppURL      string
}

func NewDiscussionService(discussions repo.DiscussionRepository, users repo.UserRepository, perfumes repo.PerfumeRepository, policy domain.Policy, mail EmailQueue, logger *logrus.Logger, appURL string) *DiscussionService {
	return &DiscussionService{
		Discussions: discussions,
		Users:       users,
		Perfumes:    perfumes,
		Policy:      policy,
		Mail:        mail,
		Logger:      logger,
		AppURL:      appURL,
	}
}

type DiscussionInput struct {
	Title     string
	Content   string
	PerfumeID string
	Tags      []string
}

func (in *DiscussionInput) validate() error {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" {
		return domain.Validationf("title is required")
	}
	if len(title) > entity.DiscussionTitleMaxLen {
		return domain.Validationf("title exceeds %d characters", entity.DiscussionTitleMaxLen)
	}
	if content == "" {
		return domain.Validationf("content is required")
	}
	if len(content) > entity.DiscussionContentMaxLen {
		return domain.Validationf("content exceeds %d characters", entity.DiscussionContentMaxLen)
	}
	in.Title = title
	in.Content = content
	in.Tags = entity.NormalizeNotes(in.Tags)
	return nil
}

// Create opens a thread, optionally pinned to a perfume that must exist.
func (s *DiscussionService) Create(ctx context.Context, userID string, in DiscussionInput) (*entity.Discussion, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	d := &entity.Discussion{
		Title:   in.Title,
		Content: in.Content,
		UserID:  userID,
		Tags:    in.Tags,
	}
	if in.PerfumeID != "" {
		if _, err := s.Perfumes.GetByID(ctx, in.PerfumeID); err != nil {
			return nil, err
		}
		pid := in.PerfumeID
		d.PerfumeID = &pid
	}
	if err := s.Discussions.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DiscussionService) GetByID(ctx context.Context, id string) (*entity.Discussion, error) {
	return s.Discussions.GetByID(ctx, id)
}

func (s *DiscussionService) List(ctx context.Context, f repo.DiscussionFilter) ([]entity.Discussion, int, error) {
	return s.Discussions.List(ctx, f)
}

// Update lets the author revise title, content and tags.
func (s *DiscussionService) Update(ctx context.Context, actorID, id string, in DiscussionInput) (*entity.Discussion, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	d, err := s.Discussions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.Policy.CanEditOwn(actorID, d.UserID) {
		return nil, domain.Forbiddenf("discussion belongs to another user")
	}
	d.Title = in.Title
	d.Content = in.Content
	d.Tags = in.Tags
	if err := s.Discussions.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes a thread and its replies. Authors delete their own;
// moderators and admins delete any.
func (s *DiscussionService) Delete(ctx context.Context, actorID string, actorRole entity.Role, id string) error {
	d, err := s.Discussions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.Policy.CanDelete(actorID, actorRole, d.UserID) {
		return domain.Forbiddenf("discussion belongs to another user")
	}
	return s.Discussions.Delete(ctx, id)
}

// AddReply posts a reply and notifies the thread author, unless they are
// replying to themselves.
func (s *DiscussionService) AddReply(ctx context.Context, userID, discussionID, content string) (*entity.Reply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.Validationf("content is required")
	}
	if len(content) > entity.ReplyContentMaxLen {
		return nil, domain.Validationf("content exceeds %d characters", entity.ReplyContentMaxLen)
	}
	d, err := s.Discussions.GetByID(ctx, discussionID)
	if err != nil {
		return nil, err
	}
	rp := &entity.Reply{
		DiscussionID: discussionID,
		UserID:       userID,
		Content:      content,
	}
	if err := s.Discussions.AddReply(ctx, rp); err != nil {
		return nil, err
	}
	if d.UserID != userID {
		s.notifyReply(ctx, d, rp)
	}
	return rp, nil
}

func (s *DiscussionService) notifyReply(ctx context.Context, d *entity.Discussion, rp *entity.Reply) {
	if s.Mail == nil {
		return
	}
	author, err := s.Users.GetByID(ctx, d.UserID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", d.UserID).Warn("load thread author failed")
		return
	}
	replier, err := s.Users.GetByID(ctx, rp.UserID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", rp.UserID).Warn("load replier failed")
		return
	}
	job := mailer.EmailJob{
		To:       author.Email,
		Template: mailer.TemplateReplyNotification,
		Data: map[string]any{
			"name":           author.Name,
			"replier":        replier.Name,
			"title":          d.Title,
			"discussion_url": s.AppURL + "/discussions/" + d.ID,
		},
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("to", author.Email).Warn("queue email failed")
	}
}

// DeleteReply removes a reply. Authors delete their own; moderators and
// admins delete any.
func (s *DiscussionService) DeleteReply(ctx context.Context, actorID string, actorRole entity.Role, discussionID, replyID string) error {
	rp, err := s.Discussions.GetReply(ctx, discussionID, replyID)
	if err != nil {
		return err
	}
	if !s.Policy.CanDelete(actorID, actorRole, rp.UserID) {
		return domain.Forbiddenf("reply belongs to another user")
	}
	return s.Discussions.DeleteReply(ctx, discussionID, replyID)
}

// LikeState is the outcome of a like toggle.
type LikeState struct {
	Liked bool
	Count int
}

func (s *DiscussionService) ToggleLike(ctx context.Context, userID, discussionID string) (*LikeState, error) {
	if _, err := s.Discussions.GetByID(ctx, discussionID); err != nil {
		return nil, err
	}
	liked, count, err := s.Discussions.ToggleLike(ctx, discussionID, userID)
	if err != nil {
		return nil, err
	}
	return &LikeState{Liked: liked, Count: count}, nil
}

func (s *DiscussionService) ToggleReplyLike(ctx context.Context, userID, discussionID, replyID string) (*LikeState, error) {
	liked, count, err := s.Discussions.ToggleReplyLike(ctx, discussionID, replyID, userID)
	if err != nil {
		return nil, err
	}
	return &LikeState{Liked: liked, Count: count}, nil
}
