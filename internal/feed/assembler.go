package feed

import (
	"sort"
	"time"

	"github.com/mediatrail/backend/internal/models"
	"github.com/mediatrail/backend/internal/repositories"
)

// popularWindows maps the accepted popular-feed timeframes to durations.
var popularWindows = map[string]time.Duration{
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
}

// Assembler builds the personal, global, popular, and per-user feeds.
// Feeds are computed at query time by filtering the social graph
// (fan-out-on-read); nothing is precomputed per follower.
type Assembler struct {
	activities repositories.ActivityRepository
	follows    repositories.FollowRepository
	enricher   *Enricher

	// enrichGlobal governs whether the global feed runs type-payload
	// enrichment. Off by default: the global feed carries only the
	// actor/media summary and engagement counts.
	enrichGlobal bool
}

// NewAssembler creates an Assembler.
func NewAssembler(activities repositories.ActivityRepository, follows repositories.FollowRepository, enricher *Enricher, enrichGlobal bool) *Assembler {
	return &Assembler{
		activities:   activities,
		follows:      follows,
		enricher:     enricher,
		enrichGlobal: enrichGlobal,
	}
}

// PersonalFeed returns the user's own and their followees' activities,
// newest first, fully enriched. Offset pagination can skip or duplicate
// rows across pages under concurrent inserts; callers get the page as of
// query time.
func (a *Assembler) PersonalFeed(userID uint, limit, offset int) ([]EnrichedActivity, error) {
	followees, err := a.follows.GetFollowingIDs(userID)
	if err != nil {
		return nil, err
	}
	actorIDs := append(followees, userID)
	rows, err := a.activities.FeedRows(actorIDs, limit, offset)
	if err != nil {
		return nil, err
	}
	return a.enricher.Enrich(rows, &userID, true)
}

// GlobalFeed returns activities across all actors with optional type and
// media filters.
func (a *Assembler) GlobalFeed(filters repositories.ActivityFilters, limit, offset int, viewerID *uint) ([]EnrichedActivity, error) {
	rows, err := a.activities.GlobalRows(filters, limit, offset)
	if err != nil {
		return nil, err
	}
	return a.enricher.Enrich(rows, viewerID, a.enrichGlobal)
}

// PopularFeed returns the most engaged activities of the timeframe, ordered
// by likes, then comments, then recency. The whole window is ranked in the
// store query; the in-memory re-sort only reconciles the page with the
// fresher counts enrichment just computed.
func (a *Assembler) PopularFeed(timeframe string, limit int, viewerID *uint) ([]EnrichedActivity, error) {
	window, ok := popularWindows[timeframe]
	if !ok {
		return nil, models.ErrInvalidTimeframe
	}
	rows, err := a.activities.PopularRows(time.Now().Add(-window), limit)
	if err != nil {
		return nil, err
	}
	entries, err := a.enricher.Enrich(rows, viewerID, true)
	if err != nil {
		return nil, err
	}
	orderByEngagement(entries)
	return entries, nil
}

// UserActivities returns one actor's activities with optional filters,
// fully enriched.
func (a *Assembler) UserActivities(userID uint, filters repositories.ActivityFilters, limit, offset int, viewerID *uint) ([]EnrichedActivity, error) {
	rows, err := a.activities.UserRows(userID, filters, limit, offset)
	if err != nil {
		return nil, err
	}
	return a.enricher.Enrich(rows, viewerID, true)
}

// LikedActivities returns the activities the user has liked, most recently
// liked first, fully enriched for that user.
func (a *Assembler) LikedActivities(userID uint, limit, offset int) ([]EnrichedActivity, error) {
	rows, err := a.activities.LikedRows(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return a.enricher.Enrich(rows, &userID, true)
}

// MediaActivities returns recent activity around one media item.
func (a *Assembler) MediaActivities(mediaID uint, limit int, viewerID *uint) ([]EnrichedActivity, error) {
	rows, err := a.activities.MediaRows(mediaID, limit)
	if err != nil {
		return nil, err
	}
	return a.enricher.Enrich(rows, viewerID, true)
}

// Activity returns a single enriched activity.
func (a *Assembler) Activity(id uint, viewerID *uint) (*EnrichedActivity, error) {
	row, err := a.activities.FindByID(id)
	if err != nil {
		return nil, err
	}
	entries, err := a.enricher.Enrich([]repositories.ActivityRow{*row}, viewerID, true)
	if err != nil {
		return nil, err
	}
	return &entries[0], nil
}

// orderByEngagement sorts entries by likes desc, comments desc, then
// created_at desc with id as the final key, so ordering is deterministic
// even under count ties.
func orderByEngagement(entries []EnrichedActivity) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].LikesCount != entries[j].LikesCount {
			return entries[i].LikesCount > entries[j].LikesCount
		}
		if entries[i].CommentsCount != entries[j].CommentsCount {
			return entries[i].CommentsCount > entries[j].CommentsCount
		}
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].ID > entries[j].ID
	})
}
