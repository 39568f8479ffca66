package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mediatrail/backend/internal/middleware"
	"github.com/mediatrail/backend/internal/models"
	"github.com/mediatrail/backend/internal/repositories"
)

// RecordHandler handles the source actions that feed the timeline: rating,
// reviewing, watchlisting, and list curation. Each create writes the
// payload row and its activity in one transaction.
type RecordHandler struct {
	ratingRepository    repositories.RatingRepository
	reviewRepository    repositories.ReviewRepository
	watchlistRepository repositories.WatchlistRepository
	listRepository      repositories.ListRepository
	mediaRepository     repositories.MediaRepository
}

// NewRecordHandler creates a new RecordHandler
func NewRecordHandler(
	ratingRepo repositories.RatingRepository,
	reviewRepo repositories.ReviewRepository,
	watchlistRepo repositories.WatchlistRepository,
	listRepo repositories.ListRepository,
	mediaRepo repositories.MediaRepository,
) *RecordHandler {
	return &RecordHandler{
		ratingRepository:    ratingRepo,
		reviewRepository:    reviewRepo,
		watchlistRepository: watchlistRepo,
		listRepository:      listRepo,
		mediaRepository:     mediaRepo,
	}
}

// RegisterRecordRoutes registers timeline source-action routes
func (h *RecordHandler) RegisterRecordRoutes(g *echo.Group) {
	g.POST("/ratings", h.CreateRating, middleware.RequireAuth())
	g.POST("/reviews", h.CreateReview, middleware.RequireAuth())
	g.POST("/watchlist", h.AddToWatchlist, middleware.RequireAuth())
	g.POST("/lists", h.CreateList, middleware.RequireAuth())
	g.POST("/lists/:listID/items", h.AddListItem, middleware.RequireAuth())
	g.PUT("/lists/:listID/reorder", h.ReorderList, middleware.RequireAuth())
}

// CreateRating records a rating and its feed activity
func (h *RecordHandler) CreateRating(c echo.Context) error {
	var req models.CreateRatingRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if _, err := h.mediaRepository.GetMediaByID(req.MediaID); err != nil {
		return respondError(c, err)
	}
	rating, err := h.ratingRepository.Create(middleware.UserID(c), req.MediaID, req.Rating)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, rating)
}

// CreateReview records a review and its feed activity
func (h *RecordHandler) CreateReview(c echo.Context) error {
	var req models.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if _, err := h.mediaRepository.GetMediaByID(req.MediaID); err != nil {
		return respondError(c, err)
	}
	review, err := h.reviewRepository.Create(middleware.UserID(c), req.MediaID, req.ReviewText, req.IsSpoiler)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, review)
}

// AddToWatchlist records a watchlist entry and its feed activity
func (h *RecordHandler) AddToWatchlist(c echo.Context) error {
	var req models.CreateWatchlistRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if _, err := h.mediaRepository.GetMediaByID(req.MediaID); err != nil {
		return respondError(c, err)
	}
	item, err := h.watchlistRepository.Create(middleware.UserID(c), req.MediaID, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, item)
}

// CreateList creates a custom list and its feed activity
func (h *RecordHandler) CreateList(c echo.Context) error {
	var req models.CreateListRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	list, err := h.listRepository.Create(middleware.UserID(c), req.ListName, req.Description, isPublic)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, list)
}

// AddListItem appends media to a list and records its feed activity
func (h *RecordHandler) AddListItem(c echo.Context) error {
	listID, err := parseIDParam(c, "listID")
	if err != nil {
		return err
	}
	var req models.AddListItemRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if _, err := h.mediaRepository.GetMediaByID(req.MediaID); err != nil {
		return respondError(c, err)
	}
	item, err := h.listRepository.AddItem(listID, middleware.UserID(c), req.MediaID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, item)
}

// ReorderList applies a new item ordering all-or-nothing
func (h *RecordHandler) ReorderList(c echo.Context) error {
	listID, err := parseIDParam(c, "listID")
	if err != nil {
		return err
	}
	var req models.ReorderListRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.listRepository.ReorderItems(listID, middleware.UserID(c), req.Items); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusOK, "List reordered")
}
