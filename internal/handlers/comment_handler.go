package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mediatrail/backend/internal/middleware"
	"github.com/mediatrail/backend/internal/models"
	"github.com/mediatrail/backend/internal/repositories"
)

// CommentHandler handles HTTP requests related to activity comments
type CommentHandler struct {
	commentRepository  repositories.CommentRepository
	activityRepository repositories.ActivityRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, activityRepo repositories.ActivityRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository:  commentRepo,
		activityRepository: activityRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/activities/:activityID/comments", h.CreateComment, middleware.RequireAuth())
	g.GET("/activities/:activityID/comments", h.GetComments, middleware.OptionalAuth())
	g.GET("/activities/:activityID/comments/count", h.GetCommentsCount)
	g.PUT("/comments/:commentID", h.UpdateComment, middleware.RequireAuth())
	g.DELETE("/comments/:commentID", h.DeleteComment, middleware.RequireAuth())
	g.GET("/comments/my", h.GetMyComments, middleware.RequireAuth())
}

// CreateComment adds a comment to an activity
func (h *CommentHandler) CreateComment(c echo.Context) error {
	activityID, err := parseIDParam(c, "activityID")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "Invalid request payload")
	}

	if _, err := h.activityRepository.FindByID(activityID); err != nil {
		return respondError(c, err)
	}

	comment, err := h.commentRepository.Create(middleware.UserID(c), activityID, req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, comment)
}

// GetComments lists an activity's comments oldest first
func (h *CommentHandler) GetComments(c echo.Context) error {
	activityID, err := parseIDParam(c, "activityID")
	if err != nil {
		return err
	}
	limit, offset, err := parsePagination(c)
	if err != nil {
		return err
	}

	if _, err := h.activityRepository.FindByID(activityID); err != nil {
		return respondError(c, err)
	}

	comments, err := h.commentRepository.ByActivity(activityID, middleware.ViewerID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, echo.Map{"comments": comments})
}

// GetCommentsCount returns the comment count for an activity
func (h *CommentHandler) GetCommentsCount(c echo.Context) error {
	activityID, err := parseIDParam(c, "activityID")
	if err != nil {
		return err
	}
	count, err := h.commentRepository.CountByActivity(activityID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, echo.Map{"activity_id": activityID, "comments_count": count})
}

// UpdateComment edits a comment; only its owner may update it
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	commentID, err := parseIDParam(c, "commentID")
	if err != nil {
		return err
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "Invalid request payload")
	}

	comment, err := h.commentRepository.Update(commentID, middleware.UserID(c), req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, comment)
}

// DeleteComment removes a comment; only its owner may delete it
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	commentID, err := parseIDParam(c, "commentID")
	if err != nil {
		return err
	}
	if err := h.commentRepository.Delete(commentID, middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusOK, "Comment deleted")
}

// GetMyComments lists the caller's recent comments
func (h *CommentHandler) GetMyComments(c echo.Context) error {
	limit, offset, err := parsePagination(c)
	if err != nil {
		return err
	}
	comments, err := h.commentRepository.RecentByUser(middleware.UserID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, echo.Map{"comments": comments})
}
