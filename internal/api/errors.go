package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/UnknownOlympus/meridian/internal/geometrics"
	"github.com/UnknownOlympus/meridian/internal/pathfinder"
	"github.com/UnknownOlympus/meridian/internal/service"
	"github.com/gin-gonic/gin"
)

// statusClientClosedRequest is reported when the caller went away before the answer was ready.
const statusClientClosedRequest = 499

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain errors to HTTP status codes. Request rejections of the
// pathfinding backend are passed through; anything unrecognized is treated as
// an upstream failure.
func statusFor(err error) int {
	var statusErr *pathfinder.StatusError
	if errors.As(err, &statusErr) &&
		(statusErr.Code == http.StatusBadRequest || statusErr.Code == http.StatusUnprocessableEntity) {
		return statusErr.Code
	}

	switch {
	case errors.Is(err, geometrics.ErrInvalidCoordinate),
		errors.Is(err, pathfinder.ErrNotEnoughMarkers),
		errors.Is(err, pathfinder.ErrUnsupportedAlgorithm),
		errors.Is(err, pathfinder.ErrUnsupportedHeuristic):
		return http.StatusBadRequest
	case errors.Is(err, pathfinder.ErrPathNotFound), errors.Is(err, service.ErrNoResults):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	default:
		return http.StatusBadGateway
	}
}

func abortWithError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error()})
}
