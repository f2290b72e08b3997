package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avestudio/studio/pkg/blobstore"
	"github.com/avestudio/studio/pkg/models"
	"github.com/rfberaldo/sqlz"
)

const (
	DefaultPortfolioPageSize = 12
	MaxPortfolioPageSize     = 100
)

var (
	ErrInvalidPage = fmt.Errorf("invalid page")
)

type PortfolioServicer interface {
	AddPortfolioImage(title, description, categorySlug, filename string, data []byte) (*models.PortfolioImage, error)
	CreateCategory(name, slug string) (*models.Category, error)
	GetCategories() ([]models.Category, error)
	GetCategoryBySlug(slug string) (*models.Category, error)
	GetPortfolioImages() ([]models.PortfolioImage, error)
	GetPortfolioPage(categorySlug string, page, pageSize int) (models.PortfolioPage, error)
}

type PortfolioServiceConfig struct {
	DB              *sqlz.DB
	DefaultPageSize int
	MediaStore      blobstore.Store
}

type PortfolioService struct {
	db              *sqlz.DB
	defaultPageSize int
	mediaStore      blobstore.Store
}

func NewPortfolioService(config PortfolioServiceConfig) PortfolioService {
	pageSize := config.DefaultPageSize

	if pageSize <= 0 {
		pageSize = DefaultPortfolioPageSize
	}

	return PortfolioService{
		db:              config.DB,
		defaultPageSize: min(pageSize, MaxPortfolioPageSize),
		mediaStore:      config.MediaStore,
	}
}

func (s PortfolioService) GetCategories() ([]models.Category, error) {
	var (
		err error
	)

	result := []models.Category{}

	sql := `
SELECT
	c.id
	, c.name
	, c.slug
FROM categories AS c
WHERE 1=1
ORDER BY c.id
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.Query(ctx, &result, sql); err != nil && !sqlz.IsNotFound(err) {
		return result, fmt.Errorf("error querying for categories: %w", err)
	}

	return result, nil
}

func (s PortfolioService) GetCategoryBySlug(slug string) (*models.Category, error) {
	var (
		err error
	)

	result := &models.Category{}

	sql := `
SELECT
	c.id
	, c.name
	, c.slug
FROM categories AS c
WHERE 1=1
	AND c.slug=?
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.QueryRow(ctx, result, sql, slug); err != nil {
		if sqlz.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrCategoryNotFound, slug)
		}

		return nil, fmt.Errorf("error querying for category %s: %w", slug, err)
	}

	return result, nil
}

/*
CreateCategory stores a category. An empty slug is derived from the
name.
*/
func (s PortfolioService) CreateCategory(name, slug string) (*models.Category, error) {
	var (
		err error
	)

	name = strings.TrimSpace(name)
	slug = strings.TrimSpace(slug)

	if slug == "" {
		slug = Slugify(name)
	}

	if name == "" || slug == "" {
		return nil, fmt.Errorf("a category needs a name")
	}

	inserted := insertedRow{}

	sql := `
INSERT INTO categories (
	name
	, slug
) VALUES (?, ?)
RETURNING id
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.QueryRow(ctx, &inserted, sql, name, slug); err != nil {
		return nil, fmt.Errorf("error inserting category '%s': %w", name, err)
	}

	return &models.Category{
		ID:   inserted.ID,
		Name: name,
		Slug: slug,
	}, nil
}

/*
GetPortfolioPage returns one page of portfolio images, newest first,
optionally narrowed to a category slug. Page numbers start at 1. The
first page always exists, even when empty; any other page past the end
is ErrInvalidPage. A page size of 0 means the configured default, and
sizes above MaxPortfolioPageSize are capped.
*/
func (s PortfolioService) GetPortfolioPage(categorySlug string, page, pageSize int) (models.PortfolioPage, error) {
	var (
		err   error
		count countRow
	)

	result := models.PortfolioPage{
		Page:    page,
		Results: []models.PortfolioImage{},
	}

	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}

	pageSize = min(pageSize, MaxPortfolioPageSize)

	if page < 1 {
		return result, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}

	where := `
WHERE 1=1
`
	params := []any{}

	if categorySlug != "" {
		where += `	AND c.slug=?
`
		params = append(params, categorySlug)
	}

	countSql := `
SELECT
	COUNT(*) AS count
FROM portfolio_images AS p
	INNER JOIN categories AS c ON c.id=p.category_id
` + where

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.QueryRow(ctx, &count, countSql, params...); err != nil {
		return result, fmt.Errorf("error counting portfolio images: %w", err)
	}

	result.Count = count.Count
	result.Pages = max(1, (count.Count+pageSize-1)/pageSize)

	if page > result.Pages {
		return result, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}

	sql := portfolioSelect + where + `
ORDER BY p.created_at DESC, p.id DESC
LIMIT ? OFFSET ?
`
	params = append(params, pageSize, (page-1)*pageSize)

	if err = s.db.Query(ctx, &result.Results, sql, params...); err != nil && !sqlz.IsNotFound(err) {
		return result, fmt.Errorf("error querying for portfolio page %d: %w", page, err)
	}

	return result, nil
}

/*
GetPortfolioImages returns every portfolio image, newest first.
*/
func (s PortfolioService) GetPortfolioImages() ([]models.PortfolioImage, error) {
	var (
		err error
	)

	result := []models.PortfolioImage{}

	sql := portfolioSelect + `
WHERE 1=1
ORDER BY p.created_at DESC, p.id DESC
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.Query(ctx, &result, sql); err != nil && !sqlz.IsNotFound(err) {
		return result, fmt.Errorf("error querying for portfolio images: %w", err)
	}

	return result, nil
}

/*
AddPortfolioImage writes the image to portfolio/ in the media store and
records it under the category.
*/
func (s PortfolioService) AddPortfolioImage(title, description, categorySlug, filename string, data []byte) (*models.PortfolioImage, error) {
	var (
		err      error
		category *models.Category
		key      string
	)

	if category, err = s.GetCategoryBySlug(categorySlug); err != nil {
		return nil, err
	}

	name, ok := imageName(filename)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidImageName, filename)
	}

	if key, err = availableKey(s.mediaStore, models.PortfolioFolder, name); err != nil {
		return nil, err
	}

	if err = s.mediaStore.Put(key, data); err != nil {
		return nil, fmt.Errorf("error storing portfolio image '%s': %w", name, err)
	}

	result := &models.PortfolioImage{
		Title:       strings.TrimSpace(title),
		ImagePath:   key,
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
		Category:    *category,
	}

	inserted := insertedRow{}

	sql := `
INSERT INTO portfolio_images (
	title
	, image_path
	, description
	, category_id
	, created_at
) VALUES (?, ?, ?, ?, ?)
RETURNING id
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.QueryRow(ctx, &inserted, sql, result.Title, result.ImagePath, result.Description, category.ID, result.CreatedAt); err != nil {
		_ = s.mediaStore.Delete(key)
		return nil, fmt.Errorf("error inserting portfolio image '%s': %w", key, err)
	}

	result.ID = inserted.ID
	return result, nil
}

/*
Slugify lower-cases s and joins its letters and digits with hyphens.
*/
func Slugify(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})

	return strings.Join(fields, "-")
}

const portfolioSelect = `
SELECT
	p.id
	, p.title
	, p.image_path
	, p.description
	, p.created_at
	, c.id AS "category.id"
	, c.name AS "category.name"
	, c.slug AS "category.slug"
FROM portfolio_images AS p
	INNER JOIN categories AS c ON c.id=p.category_id
`
