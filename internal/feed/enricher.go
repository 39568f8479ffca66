package feed

import (
	"time"

	"github.com/mediatrail/backend/internal/models"
	"github.com/mediatrail/backend/internal/repositories"
)

// reviewExcerptLength is how many characters of a review feed entries carry
// before clients must expand to the full text.
const reviewExcerptLength = 200

// EnrichedActivity is a feed entry: the joined activity row hydrated with
// its type-specific payload and engagement counts. UserLiked is present
// only when the request carried a viewer identity; anonymous responses
// omit the field entirely rather than reporting false.
type EnrichedActivity struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	ActivityType string    `json:"activity_type"`
	CreatedAt    time.Time `json:"created_at"`

	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`

	MediaID     *uint  `json:"media_id,omitempty"`
	MediaTitle  string `json:"media_title,omitempty"`
	PosterURL   string `json:"poster_url,omitempty"`
	MediaType   string `json:"media_type,omitempty"`
	ReleaseYear *int   `json:"release_year,omitempty"`

	LikesCount    int64 `json:"likes_count"`
	CommentsCount int64 `json:"comments_count"`
	UserLiked     *bool `json:"user_liked,omitempty"`

	RatingValue *int `json:"rating_value,omitempty"`

	ReviewText string `json:"review_text,omitempty"`
	ReviewFull string `json:"review_full,omitempty"`
	IsSpoiler  *bool  `json:"is_spoiler,omitempty"`
	HasMore    *bool  `json:"has_more,omitempty"`

	WatchlistStatus string `json:"watchlist_status,omitempty"`

	ListName        string `json:"list_name,omitempty"`
	ListDescription string `json:"list_description,omitempty"`
	ListIsPublic    *bool  `json:"list_is_public,omitempty"`
}

// Enricher hydrates activity rows with payloads and engagement counts.
// All lookups are batched per page: one grouped count query per engagement
// kind and one ByIDs fetch per payload type present on the page.
type Enricher struct {
	ratings    repositories.RatingRepository
	reviews    repositories.ReviewRepository
	watchlists repositories.WatchlistRepository
	lists      repositories.ListRepository
	likes      repositories.LikeRepository
	comments   repositories.CommentRepository
}

// NewEnricher creates an Enricher over the payload and engagement stores.
func NewEnricher(
	ratings repositories.RatingRepository,
	reviews repositories.ReviewRepository,
	watchlists repositories.WatchlistRepository,
	lists repositories.ListRepository,
	likes repositories.LikeRepository,
	comments repositories.CommentRepository,
) *Enricher {
	return &Enricher{
		ratings:    ratings,
		reviews:    reviews,
		watchlists: watchlists,
		lists:      lists,
		likes:      likes,
		comments:   comments,
	}
}

// Enrich hydrates a page of rows. With full=false only the engagement
// counts (and viewer like state) are attached, leaving the actor/media
// summary already present on the row.
func (e *Enricher) Enrich(rows []repositories.ActivityRow, viewerID *uint, full bool) ([]EnrichedActivity, error) {
	entries := make([]EnrichedActivity, 0, len(rows))
	if len(rows) == 0 {
		return entries, nil
	}

	activityIDs := make([]uint, len(rows))
	for i, row := range rows {
		activityIDs[i] = row.ID
	}

	likeCounts, err := e.likes.CountByTargets(models.LikeTargetActivity, activityIDs)
	if err != nil {
		return nil, err
	}
	commentCounts, err := e.comments.CountByActivities(activityIDs)
	if err != nil {
		return nil, err
	}

	var likedSet map[uint]bool
	if viewerID != nil {
		likedSet, err = e.likes.LikedSet(*viewerID, models.LikeTargetActivity, activityIDs)
		if err != nil {
			return nil, err
		}
	}

	payloads, err := e.loadPayloads(rows, full)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		entry := EnrichedActivity{
			ID:            row.ID,
			UserID:        row.UserID,
			ActivityType:  row.ActivityType,
			CreatedAt:     row.CreatedAt,
			Username:      row.Username,
			FullName:      row.FullName,
			AvatarURL:     row.AvatarURL,
			MediaID:       row.MediaID,
			MediaTitle:    row.MediaTitle,
			PosterURL:     row.PosterURL,
			MediaType:     row.MediaType,
			ReleaseYear:   row.ReleaseYear,
			LikesCount:    likeCounts[row.ID],
			CommentsCount: commentCounts[row.ID],
		}
		if viewerID != nil {
			liked := likedSet[row.ID]
			entry.UserLiked = &liked
		}
		if full {
			payloads.apply(&entry, row)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// payloadMaps holds the per-type batch lookups for one page.
type payloadMaps struct {
	ratings    map[uint]models.Rating
	reviews    map[uint]models.Review
	watchlists map[uint]models.WatchlistItem
	lists      map[uint]models.CustomList
}

func (e *Enricher) loadPayloads(rows []repositories.ActivityRow, full bool) (*payloadMaps, error) {
	maps := &payloadMaps{}
	if !full {
		return maps, nil
	}

	var ratingIDs, reviewIDs, watchlistIDs, listIDs []uint
	for _, row := range rows {
		switch row.ActivityType {
		case models.ActivityRating:
			if row.RatingID != nil {
				ratingIDs = append(ratingIDs, *row.RatingID)
			}
		case models.ActivityReview:
			if row.ReviewID != nil {
				reviewIDs = append(reviewIDs, *row.ReviewID)
			}
		case models.ActivityWatchlistAdd:
			if row.WatchlistID != nil {
				watchlistIDs = append(watchlistIDs, *row.WatchlistID)
			}
		case models.ActivityListCreate, models.ActivityListAdd:
			if row.ListID != nil {
				listIDs = append(listIDs, *row.ListID)
			}
		}
	}

	var err error
	if maps.ratings, err = e.ratings.ByIDs(ratingIDs); err != nil {
		return nil, err
	}
	if maps.reviews, err = e.reviews.ByIDs(reviewIDs); err != nil {
		return nil, err
	}
	if maps.watchlists, err = e.watchlists.ByIDs(watchlistIDs); err != nil {
		return nil, err
	}
	if maps.lists, err = e.lists.ByIDs(listIDs); err != nil {
		return nil, err
	}
	return maps, nil
}

// apply attaches the type-specific payload for one row.
func (p *payloadMaps) apply(entry *EnrichedActivity, row repositories.ActivityRow) {
	switch row.ActivityType {
	case models.ActivityRating:
		if row.RatingID == nil {
			return
		}
		if rating, ok := p.ratings[*row.RatingID]; ok {
			value := rating.Rating
			entry.RatingValue = &value
		}
	case models.ActivityReview:
		if row.ReviewID == nil {
			return
		}
		if review, ok := p.reviews[*row.ReviewID]; ok {
			excerpt, hasMore := reviewExcerpt(review.ReviewText)
			entry.ReviewText = excerpt
			entry.ReviewFull = review.ReviewText
			entry.HasMore = &hasMore
			spoiler := review.IsSpoiler
			entry.IsSpoiler = &spoiler
		}
	case models.ActivityWatchlistAdd:
		if row.WatchlistID == nil {
			return
		}
		if item, ok := p.watchlists[*row.WatchlistID]; ok {
			entry.WatchlistStatus = item.Status
		}
	case models.ActivityListCreate, models.ActivityListAdd:
		if row.ListID == nil {
			return
		}
		if list, ok := p.lists[*row.ListID]; ok {
			entry.ListName = list.ListName
			entry.ListDescription = list.Description
			public := list.IsPublic
			entry.ListIsPublic = &public
		}
	}
}

// reviewExcerpt returns the first 200 characters of a review and whether
// there is more text beyond the excerpt.
func reviewExcerpt(text string) (string, bool) {
	runes := []rune(text)
	if len(runes) <= reviewExcerptLength {
		return text, false
	}
	return string(runes[:reviewExcerptLength]), true
}
