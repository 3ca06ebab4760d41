package api

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/UnknownOlympus/meridian/internal/demo"
	"github.com/UnknownOlympus/meridian/internal/export"
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/internal/service"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type healthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Upstream string `json:"upstream"`
}

type distanceRequest struct {
	From *models.Coordinate `json:"from" binding:"required"`
	To   *models.Coordinate `json:"to"   binding:"required"`
}

type pathRequest struct {
	Markers   []models.Marker `json:"markers"`
	Queries   []string        `json:"queries"`
	Algorithm string          `json:"algorithm"`
	Heuristic string          `json:"heuristic"`
}

func (r pathRequest) input() service.RouteInput {
	return service.RouteInput{
		Markers:   r.Markers,
		Queries:   r.Queries,
		Algorithm: r.Algorithm,
		Heuristic: r.Heuristic,
	}
}

type mapConfigResponse struct {
	DefaultCenter models.Coordinate `json:"default_center"`
	DefaultZoom   int               `json:"default_zoom"`
}

type demoResponse struct {
	Locations []demo.Location `json:"locations"`
	Markers   []models.Marker `json:"markers,omitempty"`
}

// health reports this API as running and includes the pathfinding backend state.
func (h *Handler) health(c *gin.Context) {
	resp := healthResponse{Status: "healthy", Message: "API is running", Upstream: "healthy"}

	status, err := h.svc.BackendHealth(c.Request.Context())
	switch {
	case err != nil:
		h.log.WarnContext(c.Request.Context(), "Pathfinding backend is unavailable", "error", err)
		resp.Upstream = "unavailable"
	default:
		resp.Upstream = status.Status
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) mapConfig(c *gin.Context) {
	c.JSON(http.StatusOK, mapConfigResponse{
		DefaultCenter: models.Coordinate{Lat: h.mapCfg.DefaultLat, Lng: h.mapCfg.DefaultLng},
		DefaultZoom:   h.mapCfg.DefaultZoom,
	})
}

func (h *Handler) search(c *gin.Context) {
	places, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		abortWithError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, places)
}

func (h *Handler) distance(c *gin.Context) {
	var req distanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	report, err := h.svc.Distance(*req.From, *req.To)
	if err != nil {
		abortWithError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) planRoute(c *gin.Context) (*models.RouteSummary, bool) {
	var req pathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return nil, false
	}

	summary, err := h.svc.PlanRoute(c.Request.Context(), req.input())
	if err != nil {
		abortWithError(c, statusFor(err), err)
		return nil, false
	}

	return summary, true
}

func (h *Handler) path(c *gin.Context) {
	summary, ok := h.planRoute(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) exportPath(c *gin.Context) {
	summary, ok := h.planRoute(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteRoute(&buf, summary); err != nil {
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}

	filename := "route.xlsx"
	if summary.ID > 0 {
		filename = fmt.Sprintf("route-%d.xlsx", summary.ID)
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *Handler) routes(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Errorf("invalid limit: %w", err))
		return
	}

	records, err := h.svc.History(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// demoLocations lists the landmarks; with ?markers=N it also picks N labelled markers.
func (h *Handler) demoLocations(c *gin.Context) {
	resp := demoResponse{Locations: demo.Locations()}

	if raw := c.Query("markers"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Errorf("invalid markers count: %w", err))
			return
		}
		rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		resp.Markers = demo.Markers(count, rng)
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) demoAlgorithms(c *gin.Context) {
	c.JSON(http.StatusOK, demo.Algorithms())
}
