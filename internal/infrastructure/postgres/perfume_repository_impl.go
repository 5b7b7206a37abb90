package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/scentlog/scentlog/internal/domain"
	"github.com/scentlog/scentlog/internal/domain/entity"
	"github.com/scentlog/scentlog/internal/domain/repository"
)

type PerfumeRepository struct {
	db DB
}

func NewPerfumeRepository(db DB) *PerfumeRepository {
	return &PerfumeRepository{db: db}
}

// perfumeColumns returns the full column list, optionally prefixed with a
// table alias.
func perfumeColumns(alias string) string {
	cols := []string{
		"id", "name", "brand", "designer", "country", "category", "release_year",
		"price", "description", "notes_top", "notes_middle", "notes_base",
		"image_url", "buy_link", "buy_click_count",
		"average_rating", "average_longevity", "average_projection", "average_sillage",
		"total_reviews", "created_by", "created_at", "updated_at",
	}
	if alias == "" {
		return strings.Join(cols, ", ")
	}
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

func scanPerfume(row pgx.Row, p *entity.Perfume, extra ...any) error {
	var createdBy *string // nullable reference; admins can be deleted
	dest := []any{
		&p.ID, &p.Name, &p.Brand, &p.Designer, &p.Country, &p.Category, &p.ReleaseYear,
		&p.Price, &p.Description, &p.NotesTop, &p.NotesMiddle, &p.NotesBase,
		&p.ImageURL, &p.BuyLink, &p.BuyClickCount,
		&p.AverageRating, &p.AverageLongevity, &p.AverageProjection, &p.AverageSillage,
		&p.TotalReviews, &createdBy, &p.CreatedAt, &p.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	if createdBy != nil {
		p.CreatedBy = *createdBy
	}
	return nil
}

func collectPerfumes(rows pgx.Rows) ([]entity.Perfume, error) {
	out := []entity.Perfume{}
	for rows.Next() {
		var p entity.Perfume
		if err := scanPerfume(rows, &p); err != nil {
			return nil, mapError(err)
		}
		out = append(out, p)
	}
	return out, mapError(rows.Err())
}

func (r *PerfumeRepository) Create(ctx context.Context, p *entity.Perfume) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO perfumes (name, brand, designer, country, category, release_year,
			price, description, notes_top, notes_middle, notes_base,
			image_url, buy_link, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`, p.Name, p.Brand, p.Designer, p.Country, p.Category, p.ReleaseYear,
		p.Price, p.Description, p.NotesTop, p.NotesMiddle, p.NotesBase,
		p.ImageURL, p.BuyLink, nullIfEmpty(p.CreatedBy))
	return mapError(row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt))
}

func (r *PerfumeRepository) GetByID(ctx context.Context, id string) (*entity.Perfume, error) {
	p := &entity.Perfume{}
	row := r.db.QueryRow(ctx, `SELECT `+perfumeColumns("")+` FROM perfumes WHERE id = $1`, id)
	if err := scanPerfume(row, p); err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

func (r *PerfumeRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Perfume, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+perfumeColumns("")+` FROM perfumes WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return collectPerfumes(rows)
}

// sortColumns whitelists the sortable fields exposed by the catalog listing.
var sortColumns = map[string]string{
	"created_at":     "created_at",
	"name":           "name",
	"brand":          "brand",
	"price":          "price",
	"release_year":   "release_year",
	"average_rating": "average_rating",
	"total_reviews":  "total_reviews",
}

func orderBy(sort string) string {
	dir := "ASC"
	if strings.HasPrefix(sort, "-") {
		dir = "DESC"
		sort = sort[1:]
	}
	col, ok := sortColumns[sort]
	if !ok {
		return "ORDER BY created_at DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s, id ASC", col, dir)
}

func (r *PerfumeRepository) List(ctx context.Context, f repository.PerfumeFilter) ([]entity.Perfume, int, error) {
	where := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Search != "" {
		ph := arg("%" + f.Search + "%")
		where = append(where, fmt.Sprintf("(name ILIKE %s OR brand ILIKE %s OR description ILIKE %s)", ph, ph, ph))
	}
	if f.Brand != "" {
		where = append(where, "brand ILIKE "+arg("%"+f.Brand+"%"))
	}
	if f.Category != "" {
		where = append(where, "category = "+arg(f.Category))
	}
	if f.Country != "" {
		where = append(where, "country ILIKE "+arg("%"+f.Country+"%"))
	}
	if f.ReleaseYear != nil {
		where = append(where, "release_year = "+arg(*f.ReleaseYear))
	}
	if f.MinPrice != nil {
		where = append(where, "price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		where = append(where, "price <= "+arg(*f.MaxPrice))
	}
	if f.MinRating != nil {
		where = append(where, "average_rating >= "+arg(*f.MinRating))
	}
	if len(f.Notes) > 0 {
		ph := arg(entity.NormalizeNotes(f.Notes))
		where = append(where, fmt.Sprintf("(notes_top && %s OR notes_middle && %s OR notes_base && %s)", ph, ph, ph))
	}

	clause := ""
	if len(where) > 0 {
		clause = "WHERE " + strings.Join(where, " AND ")
	}
	limit, offset := pageOffset(f.Page, f.Limit, 12)
	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM perfumes %s %s LIMIT %s OFFSET %s
	`, perfumeColumns(""), clause, orderBy(f.Sort), arg(limit), arg(offset))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	out := []entity.Perfume{}
	total := 0
	for rows.Next() {
		var p entity.Perfume
		if err := scanPerfume(rows, &p, &total); err != nil {
			return nil, 0, mapError(err)
		}
		out = append(out, p)
	}
	return out, total, mapError(rows.Err())
}

func (r *PerfumeRepository) Update(ctx context.Context, p *entity.Perfume) error {
	p.UpdatedAt = time.Now()
	res, err := r.db.Exec(ctx, `
		UPDATE perfumes
		SET name = $1, brand = $2, designer = $3, country = $4, category = $5,
		    release_year = $6, price = $7, description = $8,
		    notes_top = $9, notes_middle = $10, notes_base = $11,
		    image_url = $12, buy_link = $13, updated_at = $14
		WHERE id = $15
	`, p.Name, p.Brand, p.Designer, p.Country, p.Category,
		p.ReleaseYear, p.Price, p.Description,
		p.NotesTop, p.NotesMiddle, p.NotesBase,
		p.ImageURL, p.BuyLink, p.UpdatedAt, p.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PerfumeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM perfumes WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PerfumeRepository) IncrementBuyClicks(ctx context.Context, id string) (*entity.Perfume, error) {
	p := &entity.Perfume{}
	row := r.db.QueryRow(ctx, `
		UPDATE perfumes SET buy_click_count = buy_click_count + 1
		WHERE id = $1
		RETURNING `+perfumeColumns("")+`
	`, id)
	if err := scanPerfume(row, p); err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

func (r *PerfumeRepository) DistinctBrands(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT brand FROM perfumes ORDER BY brand`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return collectStrings(rows)
}

func (r *PerfumeRepository) DistinctNotes(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT note FROM (
			SELECT unnest(notes_top) AS note FROM perfumes
			UNION SELECT unnest(notes_middle) FROM perfumes
			UNION SELECT unnest(notes_base) FROM perfumes
		) n ORDER BY note
	`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return collectStrings(rows)
}

func (r *PerfumeRepository) SimilarByNotes(ctx context.Context, notes []string, excludeID string, limit int) ([]entity.Perfume, error) {
	if len(notes) == 0 {
		return []entity.Perfume{}, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+perfumeColumns("")+`
		FROM perfumes
		WHERE id <> $1
		  AND (notes_top && $2 OR notes_middle && $2 OR notes_base && $2)
		ORDER BY average_rating DESC, created_at ASC, id ASC
		LIMIT $3
	`, excludeID, notes, limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return collectPerfumes(rows)
}

func (r *PerfumeRepository) MatchingNotes(ctx context.Context, notes []string, excludeIDs []string, limit int) ([]entity.Perfume, error) {
	if len(notes) == 0 {
		return []entity.Perfume{}, nil
	}
	if excludeIDs == nil {
		excludeIDs = []string{}
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+perfumeColumns("")+`
		FROM perfumes
		WHERE NOT (id = ANY($1))
		  AND (notes_top && $2 OR notes_middle && $2 OR notes_base && $2)
		ORDER BY average_rating DESC, total_reviews DESC, id ASC
		LIMIT $3
	`, excludeIDs, notes, limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return collectPerfumes(rows)
}

func (r *PerfumeRepository) RankByRating(ctx context.Context, limit, minReviews int) ([]entity.Perfume, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+perfumeColumns("")+`
		FROM perfumes
		WHERE total_reviews >= $1
		ORDER BY average_rating DESC, total_reviews DESC, id ASC
		LIMIT $2
	`, minReviews, limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return collectPerfumes(rows)
}

func collectStrings(rows pgx.Rows) ([]string, error) {
	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, mapError(err)
		}
		out = append(out, s)
	}
	return out, mapError(rows.Err())
}

// nullIfEmpty maps "" to NULL for nullable text and uuid columns.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ repository.PerfumeRepository = (*PerfumeRepository)(nil)
