package feed

import (
	"sort"
	"time"

	"github.com/mediatrail/backend/internal/models"
	"github.com/mediatrail/backend/internal/repositories"
	"gorm.io/gorm"
)

// In-memory doubles for the repository interfaces, holding fixture rows the
// way the Postgres implementations would return them.

type fakeActivityRepo struct {
	rows []repositories.ActivityRow

	// engagement sources for the popular and liked selectors, which the
	// Postgres implementation resolves with joins.
	likes    *fakeLikeRepo
	comments *fakeCommentRepo
}

func sortRowsDesc(rows []repositories.ActivityRow) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID > rows[j].ID
	})
}

func page(rows []repositories.ActivityRow, limit, offset int) []repositories.ActivityRow {
	if offset >= len(rows) {
		return nil
	}
	rows = rows[offset:]
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func (f *fakeActivityRepo) Create(activity *models.Activity) error { return nil }

func (f *fakeActivityRepo) CreateTx(tx *gorm.DB, activity *models.Activity) error { return nil }

func (f *fakeActivityRepo) FindByID(id uint) (*repositories.ActivityRow, error) {
	for _, row := range f.rows {
		if row.ID == id {
			return &row, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeActivityRepo) Delete(id, userID uint) error {
	for i, row := range f.rows {
		if row.ID == id {
			if row.UserID != userID {
				return models.ErrUnauthorized
			}
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (f *fakeActivityRepo) UserActivityStats(userID uint) (*models.ActivityStats, error) {
	return &models.ActivityStats{}, nil
}

func (f *fakeActivityRepo) FeedRows(actorIDs []uint, limit, offset int) ([]repositories.ActivityRow, error) {
	actors := make(map[uint]bool, len(actorIDs))
	for _, id := range actorIDs {
		actors[id] = true
	}
	var out []repositories.ActivityRow
	for _, row := range f.rows {
		if actors[row.UserID] {
			out = append(out, row)
		}
	}
	sortRowsDesc(out)
	return page(out, limit, offset), nil
}

func matchFilters(row repositories.ActivityRow, filters repositories.ActivityFilters) bool {
	if filters.ActivityType != "" && row.ActivityType != filters.ActivityType {
		return false
	}
	if filters.MediaType != "" && row.MediaType != filters.MediaType {
		return false
	}
	return true
}

func (f *fakeActivityRepo) GlobalRows(filters repositories.ActivityFilters, limit, offset int) ([]repositories.ActivityRow, error) {
	var out []repositories.ActivityRow
	for _, row := range f.rows {
		if matchFilters(row, filters) {
			out = append(out, row)
		}
	}
	sortRowsDesc(out)
	return page(out, limit, offset), nil
}

func (f *fakeActivityRepo) UserRows(userID uint, filters repositories.ActivityFilters, limit, offset int) ([]repositories.ActivityRow, error) {
	var out []repositories.ActivityRow
	for _, row := range f.rows {
		if row.UserID == userID && matchFilters(row, filters) {
			out = append(out, row)
		}
	}
	sortRowsDesc(out)
	return page(out, limit, offset), nil
}

func (f *fakeActivityRepo) PopularRows(cutoff time.Time, limit int) ([]repositories.ActivityRow, error) {
	var out []repositories.ActivityRow
	for _, row := range f.rows {
		if !row.CreatedAt.Before(cutoff) {
			out = append(out, row)
		}
	}
	counts := func(id uint) (int64, int64) {
		likes, _ := f.likes.CountByTarget(models.LikeTargetActivity, id)
		comments, _ := f.comments.CountByActivity(id)
		return likes, comments
	}
	sort.Slice(out, func(i, j int) bool {
		li, ci := counts(out[i].ID)
		lj, cj := counts(out[j].ID)
		if li != lj {
			return li > lj
		}
		if ci != cj {
			return ci > cj
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return page(out, limit, 0), nil
}

func (f *fakeActivityRepo) LikedRows(userID uint, limit, offset int) ([]repositories.ActivityRow, error) {
	type likedRow struct {
		row     repositories.ActivityRow
		likedAt time.Time
	}
	var out []likedRow
	for _, row := range f.rows {
		if likedAt, ok := f.likes.likes[likeKey{userID, models.LikeTargetActivity, row.ID}]; ok {
			out = append(out, likedRow{row: row, likedAt: likedAt})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].likedAt.Equal(out[j].likedAt) {
			return out[i].likedAt.After(out[j].likedAt)
		}
		return out[i].row.ID > out[j].row.ID
	})
	rows := make([]repositories.ActivityRow, len(out))
	for i, liked := range out {
		rows[i] = liked.row
	}
	return page(rows, limit, offset), nil
}

func (f *fakeActivityRepo) MediaRows(mediaID uint, limit int) ([]repositories.ActivityRow, error) {
	var out []repositories.ActivityRow
	for _, row := range f.rows {
		if row.MediaID != nil && *row.MediaID == mediaID {
			out = append(out, row)
		}
	}
	sortRowsDesc(out)
	return page(out, limit, 0), nil
}

type fakeFollowRepo struct {
	following map[uint][]uint
}

func (f *fakeFollowRepo) CreateFollow(follow *models.Follow) error {
	f.following[follow.FollowerID] = append(f.following[follow.FollowerID], follow.FollowingID)
	return nil
}

func (f *fakeFollowRepo) DeleteFollow(followerID, followingID uint) error { return nil }

func (f *fakeFollowRepo) IsFollowing(followerID, followingID uint) (bool, error) {
	for _, id := range f.following[followerID] {
		if id == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFollowRepo) GetFollowingIDs(userID uint) ([]uint, error) {
	return f.following[userID], nil
}

func (f *fakeFollowRepo) GetFollowersCount(userID uint) (int64, error) { return 0, nil }

func (f *fakeFollowRepo) GetFollowingCount(userID uint) (int64, error) {
	return int64(len(f.following[userID])), nil
}

type likeKey struct {
	userID     uint
	targetType string
	targetID   uint
}

type fakeLikeRepo struct {
	likes map[likeKey]time.Time
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[likeKey]time.Time)}
}

func (f *fakeLikeRepo) Like(userID uint, targetType string, targetID uint) error {
	if !models.ValidLikeTarget(targetType) {
		return models.ErrInvalidLikeTarget
	}
	key := likeKey{userID, targetType, targetID}
	if _, ok := f.likes[key]; ok {
		return models.ErrAlreadyLiked
	}
	f.likes[key] = time.Now()
	return nil
}

func (f *fakeLikeRepo) Unlike(userID uint, targetType string, targetID uint) error {
	key := likeKey{userID, targetType, targetID}
	if _, ok := f.likes[key]; !ok {
		return models.ErrNotLiked
	}
	delete(f.likes, key)
	return nil
}

func (f *fakeLikeRepo) HasLiked(userID uint, targetType string, targetID uint) (bool, error) {
	_, ok := f.likes[likeKey{userID, targetType, targetID}]
	return ok, nil
}

func (f *fakeLikeRepo) LikesOf(targetType string, targetID uint, limit, offset int) ([]models.LikerSummary, error) {
	var out []models.LikerSummary
	for key, likedAt := range f.likes {
		if key.targetType == targetType && key.targetID == targetID {
			out = append(out, models.LikerSummary{UserID: key.userID, LikedAt: likedAt})
		}
	}
	return out, nil
}

func (f *fakeLikeRepo) CountByTarget(targetType string, targetID uint) (int64, error) {
	var count int64
	for key := range f.likes {
		if key.targetType == targetType && key.targetID == targetID {
			count++
		}
	}
	return count, nil
}

func (f *fakeLikeRepo) CountByTargets(targetType string, targetIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64)
	for _, id := range targetIDs {
		count, _ := f.CountByTarget(targetType, id)
		if count > 0 {
			counts[id] = count
		}
	}
	return counts, nil
}

func (f *fakeLikeRepo) LikedSet(userID uint, targetType string, targetIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool)
	for _, id := range targetIDs {
		if _, ok := f.likes[likeKey{userID, targetType, id}]; ok {
			liked[id] = true
		}
	}
	return liked, nil
}

func (f *fakeLikeRepo) UserLikeStats(userID uint) (*models.LikeStats, error) {
	return &models.LikeStats{}, nil
}

type fakeCommentRepo struct {
	comments []models.Comment
}

func (f *fakeCommentRepo) Create(userID, activityID uint, text string) (*models.Comment, error) {
	comment := models.Comment{
		ID:         uint(len(f.comments) + 1),
		ActivityID: activityID,
		UserID:     userID,
		Text:       text,
		CreatedAt:  time.Now(),
	}
	f.comments = append(f.comments, comment)
	return &comment, nil
}

func (f *fakeCommentRepo) ByID(id uint) (*repositories.CommentRow, error) {
	for _, comment := range f.comments {
		if comment.ID == id {
			return &repositories.CommentRow{ID: comment.ID, ActivityID: comment.ActivityID, UserID: comment.UserID, Text: comment.Text}, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeCommentRepo) Update(id, userID uint, text string) (*models.Comment, error) {
	return nil, models.ErrNotFound
}

func (f *fakeCommentRepo) Delete(id, userID uint) error { return models.ErrNotFound }

func (f *fakeCommentRepo) ByActivity(activityID uint, viewerID *uint, limit, offset int) ([]repositories.CommentRow, error) {
	return nil, nil
}

func (f *fakeCommentRepo) CountByActivity(activityID uint) (int64, error) {
	var count int64
	for _, comment := range f.comments {
		if comment.ActivityID == activityID {
			count++
		}
	}
	return count, nil
}

func (f *fakeCommentRepo) CountByActivities(activityIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64)
	for _, id := range activityIDs {
		count, _ := f.CountByActivity(id)
		if count > 0 {
			counts[id] = count
		}
	}
	return counts, nil
}

func (f *fakeCommentRepo) RecentByUser(userID uint, limit, offset int) ([]repositories.CommentRow, error) {
	return nil, nil
}

type fakeRatingRepo struct {
	ratings map[uint]models.Rating
}

func (f *fakeRatingRepo) Create(userID, mediaID uint, value int) (*models.Rating, error) {
	return nil, nil
}

func (f *fakeRatingRepo) ByID(id uint) (*models.Rating, error) {
	if rating, ok := f.ratings[id]; ok {
		return &rating, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeRatingRepo) ByIDs(ids []uint) (map[uint]models.Rating, error) {
	out := make(map[uint]models.Rating)
	for _, id := range ids {
		if rating, ok := f.ratings[id]; ok {
			out[id] = rating
		}
	}
	return out, nil
}

type fakeReviewRepo struct {
	reviews map[uint]models.Review
}

func (f *fakeReviewRepo) Create(userID, mediaID uint, text string, isSpoiler bool) (*models.Review, error) {
	return nil, nil
}

func (f *fakeReviewRepo) ByID(id uint) (*models.Review, error) {
	if review, ok := f.reviews[id]; ok {
		return &review, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeReviewRepo) ByIDs(ids []uint) (map[uint]models.Review, error) {
	out := make(map[uint]models.Review)
	for _, id := range ids {
		if review, ok := f.reviews[id]; ok {
			out[id] = review
		}
	}
	return out, nil
}

type fakeWatchlistRepo struct {
	items map[uint]models.WatchlistItem
}

func (f *fakeWatchlistRepo) Create(userID, mediaID uint, status string) (*models.WatchlistItem, error) {
	return nil, nil
}

func (f *fakeWatchlistRepo) ByID(id uint) (*models.WatchlistItem, error) {
	if item, ok := f.items[id]; ok {
		return &item, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeWatchlistRepo) ByIDs(ids []uint) (map[uint]models.WatchlistItem, error) {
	out := make(map[uint]models.WatchlistItem)
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			out[id] = item
		}
	}
	return out, nil
}

type fakeListRepo struct {
	lists map[uint]models.CustomList
}

func (f *fakeListRepo) Create(userID uint, name, description string, isPublic bool) (*models.CustomList, error) {
	return nil, nil
}

func (f *fakeListRepo) AddItem(listID, userID, mediaID uint) (*models.CustomListItem, error) {
	return nil, nil
}

func (f *fakeListRepo) ReorderItems(listID, userID uint, orders []models.ListItemOrder) error {
	return nil
}

func (f *fakeListRepo) ByID(id uint) (*models.CustomList, error) {
	if list, ok := f.lists[id]; ok {
		return &list, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeListRepo) ByIDs(ids []uint) (map[uint]models.CustomList, error) {
	out := make(map[uint]models.CustomList)
	for _, id := range ids {
		if list, ok := f.lists[id]; ok {
			out[id] = list
		}
	}
	return out, nil
}

// fixture is the assembled feed stack over all the fakes.
type fixture struct {
	activities *fakeActivityRepo
	follows    *fakeFollowRepo
	likes      *fakeLikeRepo
	comments   *fakeCommentRepo
	ratings    *fakeRatingRepo
	reviews    *fakeReviewRepo
	watchlists *fakeWatchlistRepo
	lists      *fakeListRepo
	enricher   *Enricher
}

func newFixture() *fixture {
	likes := newFakeLikeRepo()
	comments := &fakeCommentRepo{}
	f := &fixture{
		activities: &fakeActivityRepo{likes: likes, comments: comments},
		follows:    &fakeFollowRepo{following: make(map[uint][]uint)},
		likes:      likes,
		comments:   comments,
		ratings:    &fakeRatingRepo{ratings: make(map[uint]models.Rating)},
		reviews:    &fakeReviewRepo{reviews: make(map[uint]models.Review)},
		watchlists: &fakeWatchlistRepo{items: make(map[uint]models.WatchlistItem)},
		lists:      &fakeListRepo{lists: make(map[uint]models.CustomList)},
	}
	f.enricher = NewEnricher(f.ratings, f.reviews, f.watchlists, f.lists, f.likes, f.comments)
	return f
}

func (f *fixture) assembler(enrichGlobal bool) *Assembler {
	return NewAssembler(f.activities, f.follows, f.enricher, enrichGlobal)
}
