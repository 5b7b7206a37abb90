package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/scentlog/scentlog/internal/domain"
	"github.com/scentlog/scentlog/internal/domain/entity"
	repo "github.com/scentlog/scentlog/internal/domain/repository"
	"github.com/scentlog/scentlog/pkg/helpers"
	"github.com/scentlog/scentlog/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const (
	sessionTTL        = 24 * time.Hour
	verifyTokenTTL    = 24 * time.Hour
	resetTokenTTL     = 1 * time.Hour
	googleUserinfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
	passwordMinLen    = 8
)

// EmailQueue is the fire-and-forget publisher for outbound mail jobs.
type EmailQueue interface {
	PublishJSON(ctx context.Context, body any) error
}

// UserService owns accounts: registration, both sign-in paths, sessions,
// email verification, password recovery, profiles and favorites.
type UserService struct {
	Repo      repo.UserRepository
	JWT       *helpers.JWTManager
	Redis     *redis.Client
	Mail      EmailQueue
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
	AppURL    string

	// HTTPClient is used for the Google userinfo lookup; tests override it.
	HTTPClient *http.Client
}

func NewUserService(repo repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, mail EmailQueue, gcs *storage.Client, gcsBucket string, logger *logrus.Logger, appURL string) *UserService {
	return &UserService{
		Repo:       repo,
		JWT:        jwt,
		Redis:      rdb,
		Mail:       mail,
		GCS:        gcs,
		GCSBucket:  gcsBucket,
		Logger:     logger,
		AppURL:     appURL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func sessionKey(userID string) string { return "user:session:" + userID }
func verifyKey(token string) string   { return "auth:verify:" + token }
func resetKey(token string) string    { return "auth:reset:" + token }
func nowRFC3339() string              { return time.Now().UTC().Format(time.RFC3339Nano) }

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Register creates an account and queues the verification email.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := entity.NormalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.Validationf("a valid email is required")
	}
	if len(in.Password) < passwordMinLen {
		return nil, domain.Validationf("password must be at least %d characters", passwordMinLen)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Validationf("name is required")
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:    email,
		Password: hash,
		Name:     strings.TrimSpace(in.Name),
		Role:     entity.RoleUser,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.sendVerification(ctx, u)
	return u, nil
}

func (s *UserService) sendVerification(ctx context.Context, u *entity.User) {
	token := uuid.NewString()
	if err := s.Redis.Set(ctx, verifyKey(token), u.ID, verifyTokenTTL).Err(); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("store verify token failed")
		return
	}
	s.queueEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateVerifyEmail,
		Data: map[string]any{
			"name":       u.Name,
			"verify_url": s.AppURL + "/verify-email?token=" + token,
		},
	})
}

func (s *UserService) queueEmail(ctx context.Context, job mailer.EmailJob) {
	if s.Mail == nil {
		return
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("to", job.To).Warn("queue email failed")
	}
}

// VerifyEmail consumes a one-time token and marks the account verified.
func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.Redis.GetDel(ctx, verifyKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrInvalidToken
		}
		return err
	}
	return s.Repo.SetVerified(ctx, userID)
}

// ResendVerification issues a fresh token for an unverified account. It stays
// silent about whether the email exists.
func (s *UserService) ResendVerification(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if u.IsVerified {
		return nil
	}
	s.sendVerification(ctx, u)
	return nil
}

// Login validates credentials and opens a session.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Repo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if u.Password == "" || !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

type googleUserinfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// LoginWithGoogle validates a Google OAuth access token against the userinfo
// endpoint, then signs in the linked account, links by email, or registers a
// new pre-verified account.
func (s *UserService) LoginWithGoogle(ctx context.Context, accessToken string) (*entity.User, TokenPair, error) {
	info, err := s.fetchGoogleUserinfo(ctx, accessToken)
	if err != nil {
		return nil, TokenPair{}, err
	}

	u, err := s.Repo.GetByGoogleID(ctx, info.Sub)
	if errors.Is(err, domain.ErrNotFound) {
		u, err = s.linkOrCreateGoogleUser(ctx, info)
	}
	if err != nil {
		return nil, TokenPair{}, err
	}

	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

func (s *UserService) fetchGoogleUserinfo(ctx context.Context, accessToken string) (*googleUserinfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserinfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	res, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != http.StatusOK {
		return nil, ErrInvalidCredentials
	}
	var info googleUserinfo
	if err := json.NewDecoder(res.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Sub == "" || info.Email == "" {
		return nil, ErrInvalidCredentials
	}
	return &info, nil
}

func (s *UserService) linkOrCreateGoogleUser(ctx context.Context, info *googleUserinfo) (*entity.User, error) {
	email := entity.NormalizeEmail(info.Email)
	u, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		u.GoogleID = info.Sub
		if u.AvatarURL == "" {
			u.AvatarURL = info.Picture
		}
		if err := s.Repo.Update(ctx, u); err != nil {
			return nil, err
		}
		if !u.IsVerified && info.EmailVerified {
			if err := s.Repo.SetVerified(ctx, u.ID); err != nil {
				return nil, err
			}
			u.IsVerified = true
		}
		return u, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	u = &entity.User{
		Email:      email,
		GoogleID:   info.Sub,
		Name:       info.Name,
		AvatarURL:  info.Picture,
		Role:       entity.RoleUser,
		IsVerified: info.EmailVerified,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	if u.IsVerified {
		if err := s.Repo.SetVerified(ctx, u.ID); err != nil {
			return nil, err
		}
	}
	s.queueEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"name": u.Name},
	})
	return u, nil
}

// issueTokens generates the access/refresh pair and records the session in
// Redis, role included so the auth middleware never reads the database.
func (s *UserService) issueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}

	key := sessionKey(u.ID)
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"avatar_url": u.AvatarURL,
		"role":       string(u.Role),
		"sid":        sid,
		"created_at": nowRFC3339(),
	})
	pipe.Expire(ctx, key, sessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("redis pipeline failed")
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the session id and both tokens. The refresh token must
// carry the session id currently on record.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*entity.User, TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	sid, err := s.Redis.HGet(ctx, sessionKey(u.ID), "sid").Result()
	if err != nil || sid != claims.SessionID {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Logout drops the session; outstanding tokens stop refreshing.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	return s.Redis.Del(ctx, sessionKey(userID)).Err()
}

// RequestPasswordReset queues a reset email when the account exists. It stays
// silent about whether the email exists.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	token := uuid.NewString()
	if err := s.Redis.Set(ctx, resetKey(token), u.ID, resetTokenTTL).Err(); err != nil {
		return err
	}
	s.queueEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateResetPassword,
		Data: map[string]any{
			"name":      u.Name,
			"reset_url": s.AppURL + "/reset-password?token=" + token,
		},
	})
	return nil
}

// ResetPassword consumes a reset token and replaces the password. The
// session, if any, is dropped so old tokens cannot be refreshed.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < passwordMinLen {
		return domain.Validationf("password must be at least %d characters", passwordMinLen)
	}
	userID, err := s.Redis.GetDel(ctx, resetKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrInvalidToken
		}
		return err
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	return s.Redis.Del(ctx, sessionKey(userID)).Err()
}

// ChangePassword replaces the password for a signed-in user after checking
// the current one.
func (s *UserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.Password == "" || !helpers.CompareHashAndPassword(u.Password, current) {
		return ErrInvalidCredentials
	}
	if len(next) < passwordMinLen {
		return domain.Validationf("password must be at least %d characters", passwordMinLen)
	}
	hash, err := helpers.HashPassword(next)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePassword(ctx, userID, hash)
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return s.Repo.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	Name      string
	AvatarURL string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		u.Name = strings.TrimSpace(in.Name)
	}
	if in.AvatarURL != "" {
		u.AvatarURL = in.AvatarURL
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.refreshSessionProfile(ctx, u)
	return u, nil
}

func (s *UserService) refreshSessionProfile(ctx context.Context, u *entity.User) {
	key := sessionKey(u.ID)
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"name":       u.Name,
		"avatar_url": u.AvatarURL,
		"updated_at": nowRFC3339(),
	})
	if ttl, err := s.Redis.TTL(ctx, key).Result(); err == nil && ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("redis pipeline failed")
	}
}

// UploadAvatar stores the image in GCS and points the profile at it.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", domain.Validationf("image storage is not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	u.AvatarURL = url
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", err
	}
	s.refreshSessionProfile(ctx, u)
	return url, nil
}

// ToggleFavorite flips a perfume on the user's favorites shelf and reports
// whether it is a favorite afterwards.
func (s *UserService) ToggleFavorite(ctx context.Context, userID, perfumeID string) (bool, error) {
	return s.Repo.ToggleFavorite(ctx, userID, perfumeID)
}

func (s *UserService) ListFavorites(ctx context.Context, userID string) ([]entity.Perfume, error) {
	return s.Repo.ListFavorites(ctx, userID)
}
