package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mediatrail/backend/internal/feed"
	"github.com/mediatrail/backend/internal/middleware"
	"github.com/mediatrail/backend/internal/repositories"
)

// ActivityHandler handles feed and activity HTTP requests
type ActivityHandler struct {
	assembler          *feed.Assembler
	activityRepository repositories.ActivityRepository
	userRepository     repositories.UserRepository
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(assembler *feed.Assembler, activityRepo repositories.ActivityRepository, userRepo repositories.UserRepository) *ActivityHandler {
	return &ActivityHandler{
		assembler:          assembler,
		activityRepository: activityRepo,
		userRepository:     userRepo,
	}
}

// RegisterActivityRoutes registers feed and activity routes
func (h *ActivityHandler) RegisterActivityRoutes(g *echo.Group) {
	g.GET("/activities/feed", h.GetPersonalFeed, middleware.RequireAuth())
	g.GET("/activities/global", h.GetGlobalFeed, middleware.OptionalAuth())
	g.GET("/activities/popular", h.GetPopularFeed, middleware.OptionalAuth())
	g.GET("/activities/my/liked", h.GetMyLikedActivities, middleware.RequireAuth())
	g.GET("/activities/user/:userID", h.GetUserActivities, middleware.OptionalAuth())
	g.GET("/activities/user/:userID/stats", h.GetUserActivityStats)
	g.GET("/activities/media/:mediaID", h.GetMediaActivities, middleware.OptionalAuth())
	g.GET("/activities/:activityID", h.GetActivity, middleware.OptionalAuth())
	g.DELETE("/activities/:activityID", h.DeleteActivity, middleware.RequireAuth())
}

// GetPersonalFeed returns the authenticated user's personal feed
func (h *ActivityHandler) GetPersonalFeed(c echo.Context) error {
	userID := middleware.UserID(c)
	limit, offset, err := parsePagination(c)
	if err != nil {
		return err
	}
	entries, err := h.assembler.PersonalFeed(userID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, echo.Map{"activities": entries})
}

// GetGlobalFeed returns the unfiltered global feed
func (h *ActivityHandler) GetGlobalFeed(c echo.Context) error {
	limit, offset, err := parsePagination(c)
	if err != nil {
		return err
	}
	filters := repositories.ActivityFilters{
		ActivityType: c.QueryParam("activity_type"),
		MediaType:    c.QueryParam("media_type"),
	}
	entries, err := h.assembler.GlobalFeed(filters, limit, offset, middleware.ViewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, echo.Map{"activities": entries})
}

// GetPopularFeed returns the most engaged activities of a timeframe
func (h *ActivityHandler) GetPopularFeed(c echo.Context) error {
	limit, _, err := parsePagination(c)
	if err != nil {
		return err
	}
	timeframe := c.QueryParam("timeframe")
	if timeframe == "" {
		timeframe = "7d"
	}
	entries, err := h.assembler.PopularFeed(timeframe, limit, middleware.ViewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, echo.Map{"activities": entries, "timeframe": timeframe})
}

// GetMyLikedActivities returns the activities the caller has liked, most
// recently liked first
func (h *ActivityHandler) GetMyLikedActivities(c echo.Context) error {
	limit, offset, err := parsePagination(c)
	if err != nil {
		return err
	}
	entries, err := h.assembler.LikedActivities(middleware.UserID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, echo.Map{"activities": entries})
}

// GetUserActivities returns one user's activities for their profile page
func (h *ActivityHandler) GetUserActivities(c echo.Context) error {
	userID, err := parseIDParam(c, "userID")
	if err != nil {
		return err
	}
	limit, offset, err := parsePagination(c)
	if err != nil {
		return err
	}
	filters := repositories.ActivityFilters{
		ActivityType: c.QueryParam("activity_type"),
		MediaType:    c.QueryParam("media_type"),
	}
	entries, err := h.assembler.UserActivities(userID, filters, limit, offset, middleware.ViewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, echo.Map{"activities": entries})
}

// GetUserActivityStats returns aggregate activity totals for one user
func (h *ActivityHandler) GetUserActivityStats(c echo.Context) error {
	userID, err := parseIDParam(c, "userID")
	if err != nil {
		return err
	}
	if _, err := h.userRepository.GetUserByID(userID); err != nil {
		return respondError(c, err)
	}
	stats, err := h.activityRepository.UserActivityStats(userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, stats)
}

// GetMediaActivities returns recent activity around one media item
func (h *ActivityHandler) GetMediaActivities(c echo.Context) error {
	mediaID, err := parseIDParam(c, "mediaID")
	if err != nil {
		return err
	}
	limit, _, err := parsePagination(c)
	if err != nil {
		return err
	}
	entries, err := h.assembler.MediaActivities(mediaID, limit, middleware.ViewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, echo.Map{"activities": entries})
}

// GetActivity returns a single enriched activity
func (h *ActivityHandler) GetActivity(c echo.Context) error {
	activityID, err := parseIDParam(c, "activityID")
	if err != nil {
		return err
	}
	entry, err := h.assembler.Activity(activityID, middleware.ViewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, entry)
}

// DeleteActivity removes an activity; only its actor may delete it
func (h *ActivityHandler) DeleteActivity(c echo.Context) error {
	activityID, err := parseIDParam(c, "activityID")
	if err != nil {
		return err
	}
	if err := h.activityRepository.Delete(activityID, middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusOK, "Activity deleted")
}
