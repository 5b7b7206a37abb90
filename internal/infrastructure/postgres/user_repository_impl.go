package postgres

import (
	"context"
	"time"

	"github.com/scentlog/scentlog/internal/domain"
	"github.com/scentlog/scentlog/internal/domain/entity"
	"github.com/scentlog/scentlog/internal/domain/repository"
)

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, google_id, name, avatar_url, role, is_verified, created_at, updated_at`

func (r *UserRepository) scanUser(row interface{ Scan(...any) error }) (*entity.User, error) {
	u := &entity.User{}
	var googleID *string
	err := row.Scan(&u.ID, &u.Email, &u.Password, &googleID, &u.Name, &u.AvatarURL,
		&u.Role, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	if googleID != nil {
		u.GoogleID = *googleID
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, google_id, name, avatar_url, role, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, entity.NormalizeEmail(u.Email), u.Password, nullIfEmpty(u.GoogleID), u.Name, u.AvatarURL, u.Role, u.IsVerified)
	return mapError(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := r.scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadFavorites(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, entity.NormalizeEmail(email)))
}

func (r *UserRepository) GetByGoogleID(ctx context.Context, googleID string) (*entity.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE google_id = $1
	`, googleID))
}

func (r *UserRepository) loadFavorites(ctx context.Context, u *entity.User) error {
	rows, err := r.db.Query(ctx, `
		SELECT perfume_id FROM user_favorites WHERE user_id = $1 ORDER BY created_at
	`, u.ID)
	if err != nil {
		return mapError(err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return mapError(err)
		}
		u.Favorites = append(u.Favorites, id)
	}
	return mapError(rows.Err())
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET email = $1, google_id = $2, name = $3, avatar_url = $4, role = $5,
		    is_verified = $6, updated_at = $7
		WHERE id = $8
	`, entity.NormalizeEmail(u.Email), nullIfEmpty(u.GoogleID), u.Name, u.AvatarURL, u.Role,
		u.IsVerified, u.UpdatedAt, u.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.db.Exec(ctx, `
		UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2
	`, passwordHash, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetVerified(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `
		UPDATE users SET is_verified = true, updated_at = now() WHERE id = $1
	`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) IsVerified(ctx context.Context, id string) (bool, error) {
	var verified bool
	err := r.db.QueryRow(ctx, `SELECT is_verified FROM users WHERE id = $1`, id).Scan(&verified)
	if err != nil {
		return false, mapError(err)
	}
	return verified, nil
}

// ToggleFavorite is insert-first: a no-op insert means the favorite already
// existed, so it is removed instead. Concurrent toggles on the same pair are
// last-writer-wins, which the favorites contract tolerates.
func (r *UserRepository) ToggleFavorite(ctx context.Context, userID, perfumeID string) (bool, error) {
	res, err := r.db.Exec(ctx, `
		INSERT INTO user_favorites (user_id, perfume_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, perfume_id) DO NOTHING
	`, userID, perfumeID)
	if err != nil {
		return false, mapError(err)
	}
	if res.RowsAffected() > 0 {
		return true, nil
	}
	_, err = r.db.Exec(ctx, `
		DELETE FROM user_favorites WHERE user_id = $1 AND perfume_id = $2
	`, userID, perfumeID)
	return false, mapError(err)
}

func (r *UserRepository) ListFavorites(ctx context.Context, userID string) ([]entity.Perfume, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+perfumeColumns(`p`)+`
		FROM perfumes p
		JOIN user_favorites f ON f.perfume_id = p.id
		WHERE f.user_id = $1
		ORDER BY f.created_at
	`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return collectPerfumes(rows)
}

var _ repository.UserRepository = (*UserRepository)(nil)
