package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/mediatrail/backend/internal/models"
)

// HTTPErrorHandler renders every error echo handles itself — malformed
// params, pagination errors, auth rejections, unknown routes — in the same
// {success, message} envelope the handlers emit, so no response escapes the
// envelope contract.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	message := http.StatusText(status)
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		message = fmt.Sprintf("%v", httpErr.Message)
	} else {
		c.Logger().Error(err)
	}
	if jsonErr := c.JSON(status, echo.Map{"success": false, "message": message}); jsonErr != nil {
		c.Logger().Error(jsonErr)
	}
}

// respondData wraps a payload in the response envelope.
func respondData(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

// respondMessage wraps a bare message in the response envelope.
func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": true, "message": message})
}

// respondError maps a domain error onto the envelope and its HTTP status.
// Validation failures are 400, ownership failures 403, missing records
// 404, and uniqueness conflicts 409. Anything unrecognized is an
// infrastructure failure the caller may retry; this service never retries
// on its own.
func respondError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrInvalidActivityType),
		errors.Is(err, models.ErrMissingPayloadRef),
		errors.Is(err, models.ErrInvalidLikeTarget),
		errors.Is(err, models.ErrInvalidComment),
		errors.Is(err, models.ErrInvalidTimeframe):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrAlreadyLiked),
		errors.Is(err, models.ErrNotLiked),
		errors.Is(err, models.ErrDuplicateListItem):
		status = http.StatusConflict
	default:
		c.Logger().Error(err)
	}
	return c.JSON(status, echo.Map{"success": false, "message": err.Error()})
}

// respondBadRequest reports a request-shape problem in the envelope.
func respondBadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": message})
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

// parsePagination reads limit/offset query params. Non-numeric or negative
// values are a validation error; limit is clamped to [1,100].
func parsePagination(c echo.Context) (limit, offset int, err error) {
	limit = defaultLimit
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		if limit > maxLimit {
			limit = maxLimit
		}
	}
	if raw := c.QueryParam("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "offset must be a non-negative integer")
		}
	}
	return limit, offset, nil
}

// parseIDParam reads a numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}
