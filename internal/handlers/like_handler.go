package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mediatrail/backend/internal/middleware"
	"github.com/mediatrail/backend/internal/models"
	"github.com/mediatrail/backend/internal/repositories"
)

// LikeHandler handles HTTP requests for likes on activities, comments, and
// reviews through the one polymorphic like store.
type LikeHandler struct {
	likeRepository     repositories.LikeRepository
	activityRepository repositories.ActivityRepository
	commentRepository  repositories.CommentRepository
	reviewRepository   repositories.ReviewRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(
	likeRepo repositories.LikeRepository,
	activityRepo repositories.ActivityRepository,
	commentRepo repositories.CommentRepository,
	reviewRepo repositories.ReviewRepository,
) *LikeHandler {
	return &LikeHandler{
		likeRepository:     likeRepo,
		activityRepository: activityRepo,
		commentRepository:  commentRepo,
		reviewRepository:   reviewRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/activities/:activityID/like", h.LikeActivity, middleware.RequireAuth())
	g.DELETE("/activities/:activityID/like", h.UnlikeActivity, middleware.RequireAuth())
	g.GET("/activities/:activityID/likes", h.GetActivityLikes)
	g.GET("/activities/:activityID/likes/count", h.GetActivityLikesCount)
	g.POST("/comments/:commentID/like", h.LikeComment, middleware.RequireAuth())
	g.DELETE("/comments/:commentID/like", h.UnlikeComment, middleware.RequireAuth())
	g.GET("/comments/:commentID/likes/count", h.GetCommentLikesCount)
	g.POST("/reviews/:reviewID/like", h.LikeReview, middleware.RequireAuth())
	g.DELETE("/reviews/:reviewID/like", h.UnlikeReview, middleware.RequireAuth())
	g.GET("/likes/stats", h.GetUserLikeStats, middleware.RequireAuth())
}

// like verifies the target exists, then records the like. The duplicate
// check is the insert itself: a unique-index violation comes back as
// ErrAlreadyLiked and maps to 409.
func (h *LikeHandler) like(c echo.Context, targetType string, paramName string, exists func(uint) error) error {
	targetID, err := parseIDParam(c, paramName)
	if err != nil {
		return err
	}
	if err := exists(targetID); err != nil {
		return respondError(c, err)
	}
	if err := h.likeRepository.Like(middleware.UserID(c), targetType, targetID); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusCreated, "Liked")
}

func (h *LikeHandler) unlike(c echo.Context, targetType string, paramName string) error {
	targetID, err := parseIDParam(c, paramName)
	if err != nil {
		return err
	}
	if err := h.likeRepository.Unlike(middleware.UserID(c), targetType, targetID); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusOK, "Unliked")
}

func (h *LikeHandler) activityExists(id uint) error {
	_, err := h.activityRepository.FindByID(id)
	return err
}

func (h *LikeHandler) commentExists(id uint) error {
	_, err := h.commentRepository.ByID(id)
	return err
}

func (h *LikeHandler) reviewExists(id uint) error {
	_, err := h.reviewRepository.ByID(id)
	return err
}

// LikeActivity handles liking an activity
func (h *LikeHandler) LikeActivity(c echo.Context) error {
	return h.like(c, models.LikeTargetActivity, "activityID", h.activityExists)
}

// UnlikeActivity handles removing an activity like
func (h *LikeHandler) UnlikeActivity(c echo.Context) error {
	return h.unlike(c, models.LikeTargetActivity, "activityID")
}

// LikeComment handles liking a comment
func (h *LikeHandler) LikeComment(c echo.Context) error {
	return h.like(c, models.LikeTargetComment, "commentID", h.commentExists)
}

// UnlikeComment handles removing a comment like
func (h *LikeHandler) UnlikeComment(c echo.Context) error {
	return h.unlike(c, models.LikeTargetComment, "commentID")
}

// LikeReview handles liking a review
func (h *LikeHandler) LikeReview(c echo.Context) error {
	return h.like(c, models.LikeTargetReview, "reviewID", h.reviewExists)
}

// UnlikeReview handles removing a review like
func (h *LikeHandler) UnlikeReview(c echo.Context) error {
	return h.unlike(c, models.LikeTargetReview, "reviewID")
}

// GetActivityLikes lists who liked an activity, newest first
func (h *LikeHandler) GetActivityLikes(c echo.Context) error {
	activityID, err := parseIDParam(c, "activityID")
	if err != nil {
		return err
	}
	limit, offset, err := parsePagination(c)
	if err != nil {
		return err
	}
	if err := h.activityExists(activityID); err != nil {
		return respondError(c, err)
	}
	likers, err := h.likeRepository.LikesOf(models.LikeTargetActivity, activityID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, echo.Map{"likes": likers})
}

// GetActivityLikesCount returns the like count for an activity
func (h *LikeHandler) GetActivityLikesCount(c echo.Context) error {
	activityID, err := parseIDParam(c, "activityID")
	if err != nil {
		return err
	}
	count, err := h.likeRepository.CountByTarget(models.LikeTargetActivity, activityID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, echo.Map{"activity_id": activityID, "likes_count": count})
}

// GetCommentLikesCount returns the like count for a comment
func (h *LikeHandler) GetCommentLikesCount(c echo.Context) error {
	commentID, err := parseIDParam(c, "commentID")
	if err != nil {
		return err
	}
	count, err := h.likeRepository.CountByTarget(models.LikeTargetComment, commentID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, echo.Map{"comment_id": commentID, "likes_count": count})
}

// GetUserLikeStats returns likes the caller has given and received
func (h *LikeHandler) GetUserLikeStats(c echo.Context) error {
	stats, err := h.likeRepository.UserLikeStats(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, stats)
}
