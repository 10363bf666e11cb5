// Package api exposes the catalog over HTTP: filtered listings, the two
// temporal views, stats for the dashboard header, and the admin enrichment
// trigger. Handlers hold no state; every request loads the catalog
// wholesale and works on that snapshot.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/wyndham/grant-radar/internal/auth"
	"github.com/wyndham/grant-radar/internal/config"
	"github.com/wyndham/grant-radar/internal/enrich"
	"github.com/wyndham/grant-radar/internal/filter"
	"github.com/wyndham/grant-radar/internal/models"
	"github.com/wyndham/grant-radar/internal/store"
)

type Server struct {
	Catalog     store.Catalog
	Config      *config.Config
	Rules       *enrich.Ruleset
	AuthService *auth.Service
	Echo        *echo.Echo

	// Clock is swappable for tests.
	Clock func() time.Time
}

func NewServer(catalog store.Catalog, cfg *config.Config, rules *enrich.Ruleset, authService *auth.Service) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	s := &Server{
		Catalog:     catalog,
		Config:      cfg,
		Rules:       rules,
		AuthService: authService,
		Echo:        e,
		Clock:       time.Now,
	}
	s.routes()
	return s
}

func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)

	api := s.Echo.Group("/api/v1")
	api.GET("/opportunities", s.handleListOpportunities)
	api.GET("/opportunities/:id", s.handleGetOpportunity)
	api.GET("/views/new", s.handleViewNew)
	api.GET("/views/closing", s.handleViewClosing)
	api.GET("/stats", s.handleGetStats)
	api.POST("/auth/login", s.handleLogin)

	admin := api.Group("")
	admin.Use(auth.Middleware)
	admin.POST("/enrich", s.handleEnrich)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (s *Server) handleLogin(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	resp, err := s.AuthService.Login(req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCreds) || errors.Is(err, auth.ErrNotConfigured) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

// criteriaFromQuery maps the filter request query parameters onto Criteria.
// Multi-valued parameters are CSV.
func criteriaFromQuery(c echo.Context) filter.Criteria {
	crit := filter.Criteria{
		Types:         splitCSV(c.QueryParam("types")),
		Jurisdictions: splitCSV(c.QueryParam("jurisdictions")),
		Audiences:     splitCSV(c.QueryParam("audiences")),
		Disciplines:   splitCSV(c.QueryParam("disciplines")),
		Query:         c.QueryParam("q"),
		LocalityOnly:  c.QueryParam("locality_only") == "true",
	}
	if v, err := strconv.ParseFloat(c.QueryParam("min_amount"), 64); err == nil {
		crit.AmountMin = &v
	}
	if v, err := strconv.ParseFloat(c.QueryParam("max_amount"), 64); err == nil {
		crit.AmountMax = &v
	}
	return crit
}

// loadFiltered is the shared read path: snapshot, normalize, filter.
func (s *Server) loadFiltered(c echo.Context) ([]models.Opportunity, error) {
	items, err := s.Catalog.All(c.Request().Context())
	if err != nil {
		return nil, err
	}
	items = enrich.NormalizeAll(items, s.Clock())
	return filter.Apply(items, criteriaFromQuery(c), s.Config.LGA), nil
}

type listResponse struct {
	Opportunities []models.Opportunity `json:"opportunities"`
	Total         int                  `json:"total"`
}

func (s *Server) handleListOpportunities(c echo.Context) error {
	items, err := s.loadFiltered(c)
	if err != nil {
		c.Logger().Errorf("Failed to list opportunities: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}
	if items == nil {
		items = []models.Opportunity{}
	}
	return c.JSON(http.StatusOK, listResponse{Opportunities: items, Total: len(items)})
}

func (s *Server) handleGetOpportunity(c echo.Context) error {
	id := c.Param("id")
	items, err := s.Catalog.All(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}
	for i := range items {
		if items[i].ID == id {
			enrich.Normalize(&items[i], s.Clock())
			return c.JSON(http.StatusOK, items[i])
		}
	}
	return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
}

func (s *Server) handleViewNew(c echo.Context) error {
	items, err := s.loadFiltered(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}
	rows := filter.NewThisWeek(items, s.Clock())
	if rows == nil {
		rows = []models.Opportunity{}
	}
	return c.JSON(http.StatusOK, listResponse{Opportunities: rows, Total: len(rows)})
}

func (s *Server) handleViewClosing(c echo.Context) error {
	days := s.Config.ClosingWindowDays
	if v, err := strconv.Atoi(c.QueryParam("days")); err == nil && v > 0 {
		days = v
	}

	items, err := s.loadFiltered(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}
	rows := filter.ClosingSoon(items, days, s.Clock())
	if rows == nil {
		rows = []models.Opportunity{}
	}
	return c.JSON(http.StatusOK, listResponse{Opportunities: rows, Total: len(rows)})
}

type statsResponse struct {
	Total   int `json:"total"`
	InScope int `json:"in_scope"`
}

func (s *Server) handleGetStats(c echo.Context) error {
	items, err := s.Catalog.All(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	stats := statsResponse{Total: len(items)}
	for _, o := range items {
		for _, j := range s.Config.Jurisdictions {
			if strings.EqualFold(o.Jurisdiction, j) {
				stats.InScope++
				break
			}
		}
	}
	return c.JSON(http.StatusOK, stats)
}

type enrichResponse struct {
	Records int `json:"records"`
}

// handleEnrich runs the classification pass over the whole catalog and
// persists the result. Callers must serialize concurrent enrichment.
func (s *Server) handleEnrich(c echo.Context) error {
	ctx := c.Request().Context()
	items, err := s.Catalog.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	now := s.Clock()
	items = enrich.NormalizeAll(items, now)
	items = enrich.ClassifyAll(items, s.Rules, s.Config.LGA, now)

	if err := s.Catalog.ReplaceAll(ctx, items); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, enrichResponse{Records: len(items)})
}

// splitCSV splits a comma-separated query parameter into trimmed non-empty
// strings.
func splitCSV(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
