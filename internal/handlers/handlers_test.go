package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mediatrail/backend/internal/models"
	"github.com/mediatrail/backend/internal/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newContext builds an echo context for calling a handler directly. A
// non-zero userID simulates what the auth middleware would have stored.
func newContext(t *testing.T, method, path, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("userID", userID)
	}
	return c, rec
}

func setParam(c echo.Context, name, value string) {
	c.SetParamNames(name)
	c.SetParamValues(value)
}

// envelope is the decoded response body every endpoint emits.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// stubActivityRepo serves FindByID from a fixed set of rows; the handlers
// under test only need existence checks and single lookups. likedBy maps
// activity id to the one user fixture who liked it.
type stubActivityRepo struct {
	rows    map[uint]repositories.ActivityRow
	likedBy map[uint]uint
}

func (s *stubActivityRepo) Create(activity *models.Activity) error         { return nil }
func (s *stubActivityRepo) CreateTx(tx *gorm.DB, a *models.Activity) error { return nil }

func (s *stubActivityRepo) Delete(id, userID uint) error {
	row, ok := s.rows[id]
	if !ok {
		return models.ErrNotFound
	}
	if row.UserID != userID {
		return models.ErrUnauthorized
	}
	delete(s.rows, id)
	return nil
}
func (s *stubActivityRepo) UserActivityStats(uint) (*models.ActivityStats, error) {
	return &models.ActivityStats{}, nil
}

func (s *stubActivityRepo) FindByID(id uint) (*repositories.ActivityRow, error) {
	if row, ok := s.rows[id]; ok {
		return &row, nil
	}
	return nil, models.ErrNotFound
}

func (s *stubActivityRepo) FeedRows([]uint, int, int) ([]repositories.ActivityRow, error) {
	return nil, nil
}

func (s *stubActivityRepo) GlobalRows(repositories.ActivityFilters, int, int) ([]repositories.ActivityRow, error) {
	return nil, nil
}

func (s *stubActivityRepo) UserRows(uint, repositories.ActivityFilters, int, int) ([]repositories.ActivityRow, error) {
	return nil, nil
}

func (s *stubActivityRepo) PopularRows(time.Time, int) ([]repositories.ActivityRow, error) {
	return nil, nil
}

func (s *stubActivityRepo) MediaRows(uint, int) ([]repositories.ActivityRow, error) {
	return nil, nil
}

func (s *stubActivityRepo) LikedRows(userID uint, limit, offset int) ([]repositories.ActivityRow, error) {
	var out []repositories.ActivityRow
	for _, row := range s.rows {
		if s.likedBy[row.ID] == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

// stubLikeRepo mirrors the conflict semantics of the Postgres store: a
// duplicate like is ErrAlreadyLiked, removing an absent like ErrNotLiked.
type likeStubKey struct {
	userID     uint
	targetType string
	targetID   uint
}

type stubLikeRepo struct {
	likes map[likeStubKey]bool
}

func newStubLikeRepo() *stubLikeRepo { return &stubLikeRepo{likes: make(map[likeStubKey]bool)} }

func (s *stubLikeRepo) Like(userID uint, targetType string, targetID uint) error {
	key := likeStubKey{userID, targetType, targetID}
	if s.likes[key] {
		return models.ErrAlreadyLiked
	}
	s.likes[key] = true
	return nil
}

func (s *stubLikeRepo) Unlike(userID uint, targetType string, targetID uint) error {
	key := likeStubKey{userID, targetType, targetID}
	if !s.likes[key] {
		return models.ErrNotLiked
	}
	delete(s.likes, key)
	return nil
}

func (s *stubLikeRepo) HasLiked(userID uint, targetType string, targetID uint) (bool, error) {
	return s.likes[likeStubKey{userID, targetType, targetID}], nil
}

func (s *stubLikeRepo) LikesOf(string, uint, int, int) ([]models.LikerSummary, error) {
	return nil, nil
}

func (s *stubLikeRepo) CountByTarget(targetType string, targetID uint) (int64, error) {
	var count int64
	for key := range s.likes {
		if key.targetType == targetType && key.targetID == targetID {
			count++
		}
	}
	return count, nil
}

func (s *stubLikeRepo) CountByTargets(string, []uint) (map[uint]int64, error) {
	return map[uint]int64{}, nil
}

func (s *stubLikeRepo) LikedSet(uint, string, []uint) (map[uint]bool, error) {
	return map[uint]bool{}, nil
}

func (s *stubLikeRepo) UserLikeStats(uint) (*models.LikeStats, error) {
	return &models.LikeStats{}, nil
}

// stubCommentRepo validates text the way the Postgres store does and
// enforces ownership on update and delete.
type stubCommentRepo struct {
	nextID   uint
	comments map[uint]*models.Comment
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{nextID: 1, comments: make(map[uint]*models.Comment)}
}

func validStubText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" || len([]rune(text)) > models.MaxCommentLength {
		return "", models.ErrInvalidComment
	}
	return text, nil
}

func (s *stubCommentRepo) Create(userID, activityID uint, text string) (*models.Comment, error) {
	text, err := validStubText(text)
	if err != nil {
		return nil, err
	}
	comment := &models.Comment{ID: s.nextID, ActivityID: activityID, UserID: userID, Text: text}
	s.comments[s.nextID] = comment
	s.nextID++
	return comment, nil
}

func (s *stubCommentRepo) ByID(id uint) (*repositories.CommentRow, error) {
	if comment, ok := s.comments[id]; ok {
		return &repositories.CommentRow{ID: comment.ID, ActivityID: comment.ActivityID, UserID: comment.UserID, Text: comment.Text}, nil
	}
	return nil, models.ErrNotFound
}

func (s *stubCommentRepo) Update(id, userID uint, text string) (*models.Comment, error) {
	text, err := validStubText(text)
	if err != nil {
		return nil, err
	}
	comment, ok := s.comments[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if comment.UserID != userID {
		return nil, models.ErrUnauthorized
	}
	comment.Text = text
	return comment, nil
}

func (s *stubCommentRepo) Delete(id, userID uint) error {
	comment, ok := s.comments[id]
	if !ok {
		return models.ErrNotFound
	}
	if comment.UserID != userID {
		return models.ErrUnauthorized
	}
	delete(s.comments, id)
	return nil
}

func (s *stubCommentRepo) ByActivity(uint, *uint, int, int) ([]repositories.CommentRow, error) {
	return nil, nil
}

func (s *stubCommentRepo) CountByActivity(activityID uint) (int64, error) {
	var count int64
	for _, comment := range s.comments {
		if comment.ActivityID == activityID {
			count++
		}
	}
	return count, nil
}

func (s *stubCommentRepo) CountByActivities([]uint) (map[uint]int64, error) {
	return map[uint]int64{}, nil
}

func (s *stubCommentRepo) RecentByUser(uint, int, int) ([]repositories.CommentRow, error) {
	return nil, nil
}

type stubReviewRepo struct {
	reviews map[uint]models.Review
}

func (s *stubReviewRepo) Create(uint, uint, string, bool) (*models.Review, error) {
	return nil, nil
}

func (s *stubReviewRepo) ByID(id uint) (*models.Review, error) {
	if review, ok := s.reviews[id]; ok {
		return &review, nil
	}
	return nil, models.ErrNotFound
}

func (s *stubReviewRepo) ByIDs([]uint) (map[uint]models.Review, error) {
	return map[uint]models.Review{}, nil
}
