package insights

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flarelog/flarelog/internal/platform/auth"
	"github.com/flarelog/flarelog/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/insights", auth.RequireUser())
	g.POST("/analyze", h.Analyze)
	g.GET("/correlations", h.ListCorrelations)
}

// Analyze runs the batch pattern discovery for the authenticated user. The
// only input is the caller's identity; everything else comes from the stored
// history.
func (h *Handler) Analyze(c echo.Context) error {
	uid := auth.UserIDFromContext(c.Request().Context())
	result, err := h.svc.Analyze(c.Request().Context(), uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "analysis failed")
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) ListCorrelations(c echo.Context) error {
	pg := pagination.FromContext(c)
	uid := auth.UserIDFromContext(c.Request().Context())
	items, total, err := h.svc.ListCorrelations(c.Request().Context(), uid, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
