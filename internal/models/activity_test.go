package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v uint) *uint { return &v }

func TestNewActivity_OnePayloadPerType(t *testing.T) {
	cases := []struct {
		name         string
		activityType string
		payload      ActivityPayload
	}{
		{"rating", ActivityRating, ActivityPayload{MediaID: ptr(10), RatingID: ptr(1)}},
		{"review", ActivityReview, ActivityPayload{MediaID: ptr(10), ReviewID: ptr(2)}},
		{"watchlist_add", ActivityWatchlistAdd, ActivityPayload{MediaID: ptr(10), WatchlistID: ptr(3)}},
		{"list_create", ActivityListCreate, ActivityPayload{ListID: ptr(4)}},
		{"list_add", ActivityListAdd, ActivityPayload{MediaID: ptr(10), ListID: ptr(4)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			activity, err := NewActivity(7, tc.activityType, tc.payload)
			require.NoError(t, err)
			assert.Equal(t, uint(7), activity.UserID)
			assert.Equal(t, tc.activityType, activity.ActivityType)

			refs := 0
			for _, ref := range []*uint{activity.RatingID, activity.ReviewID, activity.WatchlistID, activity.ListID} {
				if ref != nil {
					refs++
				}
			}
			assert.Equal(t, 1, refs, "exactly one payload reference must be set")
		})
	}
}

func TestNewActivity_RejectsUnknownType(t *testing.T) {
	_, err := NewActivity(7, "poke", ActivityPayload{RatingID: ptr(1)})
	assert.ErrorIs(t, err, ErrInvalidActivityType)
}

func TestNewActivity_RejectsMissingRef(t *testing.T) {
	_, err := NewActivity(7, ActivityRating, ActivityPayload{MediaID: ptr(10)})
	assert.ErrorIs(t, err, ErrMissingPayloadRef)
}

func TestNewActivity_RejectsMismatchedRef(t *testing.T) {
	// A rating activity carrying a review reference violates the tagged union.
	_, err := NewActivity(7, ActivityRating, ActivityPayload{ReviewID: ptr(2)})
	assert.ErrorIs(t, err, ErrMissingPayloadRef)
}

func TestNewActivity_RejectsMultipleRefs(t *testing.T) {
	_, err := NewActivity(7, ActivityRating, ActivityPayload{RatingID: ptr(1), ReviewID: ptr(2)})
	assert.ErrorIs(t, err, ErrMissingPayloadRef)
}

func TestValidLikeTarget(t *testing.T) {
	assert.True(t, ValidLikeTarget(LikeTargetActivity))
	assert.True(t, ValidLikeTarget(LikeTargetComment))
	assert.True(t, ValidLikeTarget(LikeTargetReview))
	assert.False(t, ValidLikeTarget("post"))
	assert.False(t, ValidLikeTarget(""))
}
