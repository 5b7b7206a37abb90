package application

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/scentlog/scentlog/internal/domain"
	"github.com/scentlog/scentlog/internal/domain/entity"
	repo "github.com/scentlog/scentlog/internal/domain/repository"
	"github.com/scentlog/scentlog/pkg/helpers"
)

const compareMax = 4

// PerfumeService owns the catalog: admin CRUD, filtered listing, comparison,
// buy clicks, image storage and the search index.
type PerfumeService struct {
	Perfumes        repo.PerfumeRepository
	Policy          domain.Policy
	GCS             *storage.Client
	GCSBucket       string
	ES              *elasticsearch.Client
	ESPerfumesIndex string
	Logger          *logrus.Logger
}

func NewPerfumeService(perfumes repo.PerfumeRepository, policy domain.Policy, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *PerfumeService {
	return &PerfumeService{
		Perfumes:        perfumes,
		Policy:          policy,
		GCS:             gcs,
		GCSBucket:       gcsBucket,
		ES:              es,
		ESPerfumesIndex: esIndex,
		Logger:          logger,
	}
}

type PerfumeInput struct {
	Name        string
	Brand       string
	Designer    string
	Country     string
	Category    entity.Category
	ReleaseYear *int
	Price       *float64
	Description string
	NotesTop    []string
	NotesMiddle []string
	NotesBase   []string
	ImageURL    string
	BuyLink     string
}

func (in *PerfumeInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Validationf("name is required")
	}
	if strings.TrimSpace(in.Brand) == "" {
		return domain.Validationf("brand is required")
	}
	if !entity.ValidCategory(in.Category) {
		return domain.Validationf("unknown category %q", in.Category)
	}
	if in.Price != nil && *in.Price < 0 {
		return domain.Validationf("price must not be negative")
	}
	return nil
}

func (in *PerfumeInput) apply(p *entity.Perfume) {
	p.Name = strings.TrimSpace(in.Name)
	p.Brand = strings.TrimSpace(in.Brand)
	p.Designer = strings.TrimSpace(in.Designer)
	p.Country = strings.TrimSpace(in.Country)
	p.Category = in.Category
	p.ReleaseYear = in.ReleaseYear
	p.Price = in.Price
	p.Description = in.Description
	p.NotesTop = entity.NormalizeNotes(in.NotesTop)
	p.NotesMiddle = entity.NormalizeNotes(in.NotesMiddle)
	p.NotesBase = entity.NormalizeNotes(in.NotesBase)
	p.ImageURL = in.ImageURL
	p.BuyLink = in.BuyLink
}

// Create adds a catalog entry. Admin only.
func (s *PerfumeService) Create(ctx context.Context, actorRole entity.Role, actorID string, in PerfumeInput) (*entity.Perfume, error) {
	if !s.Policy.CanManageCatalog(actorRole) {
		return nil, domain.Forbiddenf("catalog writes require the admin role")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := &entity.Perfume{CreatedBy: actorID}
	in.apply(p)
	if err := s.Perfumes.Create(ctx, p); err != nil {
		return nil, err
	}
	s.index(ctx, p)
	return p, nil
}

// Update replaces a catalog entry's editable fields. Admin only. The
// denormalized rating columns are untouched.
func (s *PerfumeService) Update(ctx context.Context, actorRole entity.Role, id string, in PerfumeInput) (*entity.Perfume, error) {
	if !s.Policy.CanManageCatalog(actorRole) {
		return nil, domain.Forbiddenf("catalog writes require the admin role")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	p, err := s.Perfumes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(p)
	if err := s.Perfumes.Update(ctx, p); err != nil {
		return nil, err
	}
	s.index(ctx, p)
	return p, nil
}

// Delete removes a perfume and, through the store's cascade, its reviews.
func (s *PerfumeService) Delete(ctx context.Context, actorRole entity.Role, id string) error {
	if !s.Policy.CanManageCatalog(actorRole) {
		return domain.Forbiddenf("catalog writes require the admin role")
	}
	if err := s.Perfumes.Delete(ctx, id); err != nil {
		return err
	}
	s.deindex(ctx, id)
	return nil
}

func (s *PerfumeService) GetByID(ctx context.Context, id string) (*entity.Perfume, error) {
	return s.Perfumes.GetByID(ctx, id)
}

func (s *PerfumeService) List(ctx context.Context, f repo.PerfumeFilter) ([]entity.Perfume, int, error) {
	f.Notes = entity.NormalizeNotes(f.Notes)
	return s.Perfumes.List(ctx, f)
}

// Compare loads two to four perfumes side by side, in the order requested.
// Unknown ids are a not-found error, not a silent omission.
func (s *PerfumeService) Compare(ctx context.Context, ids []string) ([]entity.Perfume, error) {
	if len(ids) < 2 || len(ids) > compareMax {
		return nil, domain.Validationf("compare takes between 2 and %d perfume ids", compareMax)
	}
	found, err := s.Perfumes.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entity.Perfume, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	out := make([]entity.Perfume, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, domain.NotFoundf("perfume %s", id)
		}
		out = append(out, p)
	}
	return out, nil
}

// CatalogMeta lists the filter vocabulary the catalog currently contains.
type CatalogMeta struct {
	Brands     []string
	Notes      []string
	Categories []entity.Category
}

func (s *PerfumeService) Meta(ctx context.Context) (*CatalogMeta, error) {
	brands, err := s.Perfumes.DistinctBrands(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := s.Perfumes.DistinctNotes(ctx)
	if err != nil {
		return nil, err
	}
	return &CatalogMeta{
		Brands:     brands,
		Notes:      notes,
		Categories: []entity.Category{entity.CategoryMen, entity.CategoryWomen, entity.CategoryUnisex},
	}, nil
}

// RecordBuyClick bumps the outbound purchase counter and returns the buy link.
func (s *PerfumeService) RecordBuyClick(ctx context.Context, id string) (string, error) {
	p, err := s.Perfumes.IncrementBuyClicks(ctx, id)
	if err != nil {
		return "", err
	}
	if p.BuyLink == "" {
		return "", domain.NotFoundf("perfume %s has no buy link", id)
	}
	return p.BuyLink, nil
}

// UploadImage stores a bottle shot in GCS and points the perfume at it.
func (s *PerfumeService) UploadImage(ctx context.Context, actorRole entity.Role, id string, r io.Reader, filename, contentType string) (*entity.Perfume, error) {
	if !s.Policy.CanManageCatalog(actorRole) {
		return nil, domain.Forbiddenf("catalog writes require the admin role")
	}
	p, err := s.Perfumes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, domain.Validationf("image storage is not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("perfumes", id, uuid.NewString()+ext))
	url, err := helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	p.ImageURL = url
	if err := s.Perfumes.Update(ctx, p); err != nil {
		return nil, err
	}
	s.index(ctx, p)
	return p, nil
}

// Search queries the Elasticsearch index across name, brand and notes. With
// no index configured it degrades to the catalog's ILIKE listing.
func (s *PerfumeService) Search(ctx context.Context, q string, size int) ([]entity.Perfume, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	if s.ES == nil || s.ESPerfumesIndex == "" {
		items, _, err := s.Perfumes.List(ctx, repo.PerfumeFilter{Search: q, Limit: size, Page: 1})
		return items, err
	}

	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^3", "brand^2", "notes", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESPerfumesIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	if len(ids) == 0 {
		return []entity.Perfume{}, nil
	}
	return s.Perfumes.GetByIDs(ctx, ids)
}

func (s *PerfumeService) index(ctx context.Context, p *entity.Perfume) {
	if s.ES == nil || s.ESPerfumesIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"brand":       p.Brand,
		"category":    p.Category,
		"notes":       p.AllNotes(),
		"description": p.Description,
		"updated_at":  p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESPerfumesIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("perfume_id", p.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("perfume_id", p.ID).Warn("es index response error")
	}
}

func (s *PerfumeService) deindex(ctx context.Context, id string) {
	if s.ES == nil || s.ESPerfumesIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESPerfumesIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("perfume_id", id).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}
