package portfolio

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avestudio/studio/cmd/studio/internal/viewmodels"
	"github.com/avestudio/studio/internal/database"
	"github.com/avestudio/studio/pkg/blobstore"
	"github.com/avestudio/studio/pkg/models"
	"github.com/avestudio/studio/pkg/services"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T) PortfolioController {
	t.Helper()

	dir := t.TempDir()

	db, err := database.Connect("file:" + filepath.Join(dir, "studio.db") + "?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	portfolioService := services.NewPortfolioService(services.PortfolioServiceConfig{
		DB:         db,
		MediaStore: blobstore.NewDiskStore(filepath.Join(dir, "media")),
	})

	_, err = portfolioService.CreateCategory("Weddings", "")
	require.NoError(t, err)
	_, err = portfolioService.CreateCategory("Family Portraits", "")
	require.NoError(t, err)

	for _, name := range []string{"one.jpg", "two.jpg", "three.jpg"} {
		_, err = portfolioService.AddPortfolioImage(name, "", "weddings", name, []byte(name))
		require.NoError(t, err)
	}

	return NewPortfolioController(PortfolioControllerConfig{
		MediaURL:         "/media/",
		PortfolioService: portfolioService,
		SiteURL:          "https://avestudio.example",
	})
}

func getPortfolio(t *testing.T, c PortfolioController, target string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	c.Portfolio(w, r)
	return w
}

func TestCategories(t *testing.T) {
	c := newTestController(t)

	r := httptest.NewRequest(http.MethodGet, "/api/categories/", nil)
	w := httptest.NewRecorder()
	c.Categories(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	result := []models.Category{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result, 2)
	assert.Equal(t, "weddings", result[0].Slug)
	assert.Equal(t, "family-portraits", result[1].Slug)
}

func TestPortfolioPagination(t *testing.T) {
	c := newTestController(t)

	w := getPortfolio(t, c, "http://studio.example.com/api/portfolio/?page_size=2")
	require.Equal(t, http.StatusOK, w.Code)

	first := viewmodels.Paginated[viewmodels.PortfolioImage]{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))

	assert.Equal(t, 3, first.Count)
	assert.Len(t, first.Results, 2)
	assert.Nil(t, first.Previous)
	require.NotNil(t, first.Next)
	assert.Equal(t, "http://studio.example.com/api/portfolio/?page=2&page_size=2", *first.Next)
	assert.True(t, strings.HasPrefix(first.Results[0].Image, "/media/portfolio/"))

	w = getPortfolio(t, c, "http://studio.example.com/api/portfolio/?page=2&page_size=2")
	require.Equal(t, http.StatusOK, w.Code)

	second := viewmodels.Paginated[viewmodels.PortfolioImage]{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))

	assert.Len(t, second.Results, 1)
	assert.Nil(t, second.Next)
	require.NotNil(t, second.Previous)
	assert.Equal(t, "http://studio.example.com/api/portfolio/?page_size=2", *second.Previous)
}

func TestPortfolioInvalidPage(t *testing.T) {
	c := newTestController(t)

	for _, target := range []string{
		"/api/portfolio/?page=3&page_size=2",
		"/api/portfolio/?page=0",
		"/api/portfolio/?page=abc",
	} {
		w := getPortfolio(t, c, target)
		assert.Equal(t, http.StatusNotFound, w.Code, target)
		assert.JSONEq(t, `{"error":"Invalid page."}`, w.Body.String(), target)
	}
}

func TestPortfolioFiltersByCategory(t *testing.T) {
	c := newTestController(t)

	w := getPortfolio(t, c, "/api/portfolio/?category=family-portraits")
	require.Equal(t, http.StatusOK, w.Code)

	result := viewmodels.Paginated[viewmodels.PortfolioImage]{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Zero(t, result.Count)
	assert.Empty(t, result.Results)
}

func TestSitemap(t *testing.T) {
	c := newTestController(t)

	r := httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	w := httptest.NewRecorder()
	c.Sitemap(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml; charset=utf-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, body, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, body, "<loc>https://avestudio.example/</loc>")
	assert.Contains(t, body, "<loc>https://avestudio.example/portfolio?category=family-portraits</loc>")
	assert.Equal(t, 3, strings.Count(body, "<lastmod>"))
}
