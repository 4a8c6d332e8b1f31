package service_test

import (
	"testing"

	"github.com/fuzzlea/bpa-skillswap-v04/internal/service"
	"github.com/fuzzlea/bpa-skillswap-v04/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRatingService(f *sessionFixture) *service.RatingService {
	return service.NewRatingService(f.db, service.NewNotifyService(f.db))
}

func ratingCount(t *testing.T, f *sessionFixture) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&models.Rating{}).Count(&count).Error)
	return count
}

func TestSubmitGeneralRating(t *testing.T) {
	f := newSessionFixture(t)
	ratings := newRatingService(f)

	rating, err := ratings.Submit(ctx, f.guest.ID, &service.RatingInput{
		TargetProfileID: f.hostProfile.ID,
		Score:           4,
		Comment:         strPtr("great teacher"),
	})
	require.NoError(t, err)
	assert.Nil(t, rating.SessionID)
	assert.Equal(t, f.guestProfile.ID, rating.RaterProfileID)
	assert.Equal(t, 4, rating.Score)

	notifs := notificationsFor(t, f.db, f.host)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotificationTypeRating, notifs[0].Type)
	assert.Contains(t, *notifs[0].Content, "Guest Gwen")
	assert.Contains(t, *notifs[0].Content, "4/5")
	assert.Contains(t, *notifs[0].Content, "great teacher")
}

func TestSubmitRejectsOutOfRangeScore(t *testing.T) {
	f := newSessionFixture(t)
	ratings := newRatingService(f)

	for _, score := range []int{0, -1, 6, 100} {
		_, err := ratings.Submit(ctx, f.guest.ID, &service.RatingInput{
			TargetProfileID: f.hostProfile.ID,
			Score:           score,
		})
		kindOf(t, err, service.KindBadRequest)
	}
	assert.Zero(t, ratingCount(t, f), "rejected scores never persist")
}

func TestSubmitRequiresRaterProfileAndTarget(t *testing.T) {
	f := newSessionFixture(t)
	ratings := newRatingService(f)
	noProfile := createUser(t, f.db, "lurker")

	_, err := ratings.Submit(ctx, noProfile.ID, &service.RatingInput{
		TargetProfileID: f.hostProfile.ID,
		Score:           3,
	})
	kindOf(t, err, service.KindBadRequest)

	_, err = ratings.Submit(ctx, f.guest.ID, &service.RatingInput{
		TargetProfileID: 9999,
		Score:           3,
	})
	kindOf(t, err, service.KindNotFound)

	assert.Zero(t, ratingCount(t, f))
}

func TestSessionRatingRequiresParticipation(t *testing.T) {
	f := newSessionFixture(t)
	ratings := newRatingService(f)
	session, _ := acceptedRequest(t, f)

	// third never joined the session
	_, err := ratings.Submit(ctx, f.third.ID, &service.RatingInput{
		TargetProfileID: f.hostProfile.ID,
		Score:           5,
		SessionID:       &session.ID,
	})
	kindOf(t, err, service.KindForbidden)

	_, err = ratings.Submit(ctx, f.guest.ID, &service.RatingInput{
		TargetProfileID: f.thirdProfile.ID,
		Score:           5,
		SessionID:       &session.ID,
	})
	kindOf(t, err, service.KindBadRequest)

	_, err = ratings.Submit(ctx, f.guest.ID, &service.RatingInput{
		TargetProfileID: f.hostProfile.ID,
		Score:           5,
		SessionID:       uintPtr(9999),
	})
	kindOf(t, err, service.KindNotFound)

	assert.Zero(t, ratingCount(t, f), "failed checks persist nothing")

	// Accepted requester rating the host is the happy path; the host rating
	// the accepted requester works the same way.
	_, err = ratings.Submit(ctx, f.guest.ID, &service.RatingInput{
		TargetProfileID: f.hostProfile.ID,
		Score:           5,
		SessionID:       &session.ID,
	})
	require.NoError(t, err)
	_, err = ratings.Submit(ctx, f.host.ID, &service.RatingInput{
		TargetProfileID: f.guestProfile.ID,
		Score:           4,
		SessionID:       &session.ID,
	})
	require.NoError(t, err)
}

func TestRatingsForProfileNewestFirst(t *testing.T) {
	f := newSessionFixture(t)
	ratings := newRatingService(f)

	for _, score := range []int{2, 5} {
		_, err := ratings.Submit(ctx, f.guest.ID, &service.RatingInput{
			TargetProfileID: f.hostProfile.ID,
			Score:           score,
		})
		require.NoError(t, err)
	}

	views, err := ratings.ForProfile(ctx, f.hostProfile.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Guest Gwen", views[0].RaterDisplayName)

	// Ratings against someone else stay out of this profile's list.
	_, err = ratings.Submit(ctx, f.guest.ID, &service.RatingInput{
		TargetProfileID: f.thirdProfile.ID,
		Score:           1,
	})
	require.NoError(t, err)
	views, err = ratings.ForProfile(ctx, f.hostProfile.ID)
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestAverageRating(t *testing.T) {
	f := newSessionFixture(t)
	ratings := newRatingService(f)

	avg, err := ratings.Average(ctx, f.hostProfile.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg, "no ratings means zero, not an error")

	for _, score := range []int{4, 5, 3} {
		_, err := ratings.Submit(ctx, f.guest.ID, &service.RatingInput{
			TargetProfileID: f.hostProfile.ID,
			Score:           score,
		})
		require.NoError(t, err)
	}

	avg, err = ratings.Average(ctx, f.hostProfile.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, avg, 0.0001)
}
