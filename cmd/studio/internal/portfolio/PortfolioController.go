package portfolio

import (
	"encoding/xml"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/avestudio/studio/cmd/studio/internal/httpjson"
	"github.com/avestudio/studio/cmd/studio/internal/viewmodels"
	"github.com/avestudio/studio/pkg/models"
	"github.com/avestudio/studio/pkg/services"
)

type PortfolioControllerConfig struct {
	MediaURL         string
	PortfolioService services.PortfolioServicer
	SiteURL          string
}

type PortfolioController struct {
	mediaURL         string
	portfolioService services.PortfolioServicer
	siteURL          string
}

func NewPortfolioController(config PortfolioControllerConfig) PortfolioController {
	return PortfolioController{
		mediaURL:         config.MediaURL,
		portfolioService: config.PortfolioService,
		siteURL:          strings.TrimSuffix(config.SiteURL, "/"),
	}
}

/*
GET /api/categories/
*/
func (c PortfolioController) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.portfolioService.GetCategories()
	if err != nil {
		slog.Error("error getting categories", "error", err)
		httpjson.WriteError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	httpjson.WriteJSON(w, http.StatusOK, categories)
}

/*
GET /api/portfolio/
*/
func (c PortfolioController) Portfolio(w http.ResponseWriter, r *http.Request) {
	var (
		err  error
		page models.PortfolioPage
	)

	category := strings.TrimSpace(httphelpers.GetFromRequest[string](r, "category"))
	pageNumber := 1

	if raw := strings.TrimSpace(r.URL.Query().Get("page")); raw != "" {
		if pageNumber, err = strconv.Atoi(raw); err != nil {
			httpjson.WriteError(w, http.StatusNotFound, "Invalid page.")
			return
		}
	}

	pageSize, _ := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("page_size")))

	if page, err = c.portfolioService.GetPortfolioPage(category, pageNumber, pageSize); err != nil {
		if errors.Is(err, services.ErrInvalidPage) {
			httpjson.WriteError(w, http.StatusNotFound, "Invalid page.")
			return
		}

		slog.Error("error getting portfolio page", "category", category, "page", pageNumber, "error", err)
		httpjson.WriteError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	result := viewmodels.Paginated[viewmodels.PortfolioImage]{
		Count:   page.Count,
		Results: make([]viewmodels.PortfolioImage, 0, len(page.Results)),
	}

	for _, image := range page.Results {
		result.Results = append(result.Results, viewmodels.NewPortfolioImage(image, c.mediaURL))
	}

	if page.Page < page.Pages {
		result.Next = pageLink(r, page.Page+1)
	}

	if page.Page > 1 {
		result.Previous = pageLink(r, page.Page-1)
	}

	httpjson.WriteJSON(w, http.StatusOK, result)
}

/*
GET /sitemap.xml
*/
func (c PortfolioController) Sitemap(w http.ResponseWriter, r *http.Request) {
	var (
		err        error
		images     []models.PortfolioImage
		categories []models.Category
		b          []byte
	)

	if images, err = c.portfolioService.GetPortfolioImages(); err != nil {
		slog.Error("error getting portfolio images for sitemap", "error", err)
		httphelpers.TextInternalServerError(w, "error building sitemap")
		return
	}

	if categories, err = c.portfolioService.GetCategories(); err != nil {
		slog.Error("error getting categories for sitemap", "error", err)
		httphelpers.TextInternalServerError(w, "error building sitemap")
		return
	}

	urlSet := viewmodels.SitemapURLSet{
		Xmlns: viewmodels.SitemapNamespace,
		URLs: []viewmodels.SitemapURL{
			{Loc: c.siteURL + "/", ChangeFreq: "daily", Priority: "1.0"},
			{Loc: c.siteURL + "/portfolio", ChangeFreq: "daily", Priority: "1.0"},
		},
	}

	for _, image := range images {
		urlSet.URLs = append(urlSet.URLs, viewmodels.SitemapURL{
			Loc:        c.siteURL + "/portfolio",
			LastMod:    image.CreatedAt.UTC().Format(time.DateOnly),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	for _, category := range categories {
		urlSet.URLs = append(urlSet.URLs, viewmodels.SitemapURL{
			Loc:        c.siteURL + "/portfolio?category=" + url.QueryEscape(category.Slug),
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}

	if b, err = xml.MarshalIndent(urlSet, "", "  "); err != nil {
		slog.Error("error encoding sitemap", "error", err)
		httphelpers.TextInternalServerError(w, "error building sitemap")
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(b)
}

func pageLink(r *http.Request, page int) *string {
	query := r.URL.Query()

	if page <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(page))
	}

	link := httpjson.BaseURL(r) + r.URL.Path
	if encoded := query.Encode(); encoded != "" {
		link += "?" + encoded
	}

	return &link
}
