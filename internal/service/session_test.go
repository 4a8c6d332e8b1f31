package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/fuzzlea/bpa-skillswap-v04/internal/service"
	"github.com/fuzzlea/bpa-skillswap-v04/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sessionFixture struct {
	db       *gorm.DB
	sessions *service.SessionService

	host         *models.User
	hostProfile  *models.Profile
	guest        *models.User
	guestProfile *models.Profile
	third        *models.User
	thirdProfile *models.Profile
	guitar       *models.Skill
}

func newSessionFixture(t *testing.T) *sessionFixture {
	db := newTestDB(t)
	f := &sessionFixture{
		db:       db,
		sessions: service.NewSessionService(db, service.NewNotifyService(db)),
	}
	f.host = createUser(t, db, "host")
	f.hostProfile = createProfile(t, db, f.host, "Hosting Harry")
	f.guest = createUser(t, db, "guest")
	f.guestProfile = createProfile(t, db, f.guest, "Guest Gwen")
	f.third = createUser(t, db, "third")
	f.thirdProfile = createProfile(t, db, f.third, "Third Tim")
	f.guitar = createSkill(t, db, "Guitar")
	return f
}

func (f *sessionFixture) createSession(t *testing.T, skillID *uint) *models.Session {
	t.Helper()
	session, err := f.sessions.Create(ctx, f.host.ID, &service.SessionInput{
		Title:           "Guitar basics",
		SkillID:         skillID,
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	return session
}

func TestCreateSessionAlwaysOpen(t *testing.T) {
	f := newSessionFixture(t)
	session := f.createSession(t, nil)
	assert.True(t, session.IsOpen)

	var stored models.Session
	require.NoError(t, f.db.First(&stored, session.ID).Error)
	assert.True(t, stored.IsOpen)
}

func TestCreateSessionRequiresProfile(t *testing.T) {
	f := newSessionFixture(t)
	noProfile := createUser(t, f.db, "lurker")

	_, err := f.sessions.Create(ctx, noProfile.ID, &service.SessionInput{
		Title:           "Nope",
		DurationMinutes: 30,
	})
	kindOf(t, err, service.KindBadRequest)
}

func TestCreateSessionValidation(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.sessions.Create(ctx, f.host.ID, &service.SessionInput{DurationMinutes: 30})
	kindOf(t, err, service.KindBadRequest)

	_, err = f.sessions.Create(ctx, f.host.ID, &service.SessionInput{Title: "x", DurationMinutes: 0})
	kindOf(t, err, service.KindBadRequest)

	_, err = f.sessions.Create(ctx, f.host.ID, &service.SessionInput{
		Title: "x", DurationMinutes: 30, SkillID: uintPtr(9999),
	})
	kindOf(t, err, service.KindBadRequest)
}

func TestSessionCreatedFanOut(t *testing.T) {
	f := newSessionFixture(t)
	// guest wants guitar, third does not
	wantSkill(t, f.db, f.guestProfile, f.guitar)

	session := f.createSession(t, &f.guitar.ID)

	guestNotifs := notificationsFor(t, f.db, f.guest)
	require.Len(t, guestNotifs, 1)
	assert.Equal(t, models.NotificationTypeSessionCreated, guestNotifs[0].Type)
	require.NotNil(t, guestNotifs[0].RelatedSessionID)
	assert.Equal(t, session.ID, *guestNotifs[0].RelatedSessionID)
	assert.False(t, guestNotifs[0].IsRead)

	assert.Empty(t, notificationsFor(t, f.db, f.third))
}

func TestSessionCreatedFanOutSkippedWithoutSkill(t *testing.T) {
	f := newSessionFixture(t)
	wantSkill(t, f.db, f.guestProfile, f.guitar)

	f.createSession(t, nil)
	assert.Empty(t, notificationsFor(t, f.db, f.guest))
}

func TestRequestJoin(t *testing.T) {
	f := newSessionFixture(t)
	session := f.createSession(t, nil)

	request, err := f.sessions.RequestJoin(ctx, session.ID, f.guest.ID, strPtr("let me in"))
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, request.Status)
	assert.Equal(t, f.guestProfile.ID, request.RequesterProfileID)

	hostNotifs := notificationsFor(t, f.db, f.host)
	require.Len(t, hostNotifs, 1)
	assert.Equal(t, models.NotificationTypeJoinRequest, hostNotifs[0].Type)
	assert.Contains(t, *hostNotifs[0].Content, "Guest Gwen")
	assert.Contains(t, *hostNotifs[0].Content, "let me in")
}

func TestRequestJoinErrors(t *testing.T) {
	f := newSessionFixture(t)
	session := f.createSession(t, nil)

	_, err := f.sessions.RequestJoin(ctx, 9999, f.guest.ID, nil)
	kindOf(t, err, service.KindNotFound)

	noProfile := createUser(t, f.db, "lurker")
	_, err = f.sessions.RequestJoin(ctx, session.ID, noProfile.ID, nil)
	kindOf(t, err, service.KindBadRequest)

	require.NoError(t, f.db.Model(&models.Session{}).Where("id = ?", session.ID).Update("is_open", false).Error)
	_, err = f.sessions.RequestJoin(ctx, session.ID, f.guest.ID, nil)
	kindOf(t, err, service.KindBadRequest)
	assert.Equal(t, "Session is not open for requests.", err.Error())
}

// Accepting a request closes the session, notifies the requester with the
// host's message appended, and blocks further join attempts.
func TestAcceptFlow(t *testing.T) {
	f := newSessionFixture(t)
	session := f.createSession(t, nil)

	request, err := f.sessions.RequestJoin(ctx, session.ID, f.guest.ID, nil)
	require.NoError(t, err)

	responded, err := f.sessions.Respond(ctx, request.ID, f.host.ID, true, strPtr("see you there"))
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusAccepted, responded.Status)

	var stored models.Session
	require.NoError(t, f.db.First(&stored, session.ID).Error)
	assert.False(t, stored.IsOpen, "accept must close the session")

	guestNotifs := notificationsFor(t, f.db, f.guest)
	require.Len(t, guestNotifs, 1)
	assert.Equal(t, models.NotificationTypeRequestAccepted, guestNotifs[0].Type)
	assert.True(t, strings.HasSuffix(*guestNotifs[0].Content, "see you there"))

	_, err = f.sessions.RequestJoin(ctx, session.ID, f.third.ID, nil)
	kindOf(t, err, service.KindBadRequest)
	assert.Equal(t, "Session is not open for requests.", err.Error())
}

func TestRejectKeepsSessionOpen(t *testing.T) {
	f := newSessionFixture(t)
	session := f.createSession(t, nil)

	request, err := f.sessions.RequestJoin(ctx, session.ID, f.guest.ID, nil)
	require.NoError(t, err)

	responded, err := f.sessions.Respond(ctx, request.ID, f.host.ID, false, nil)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusRejected, responded.Status)

	var stored models.Session
	require.NoError(t, f.db.First(&stored, session.ID).Error)
	assert.True(t, stored.IsOpen)

	guestNotifs := notificationsFor(t, f.db, f.guest)
	require.Len(t, guestNotifs, 1)
	assert.Equal(t, models.NotificationTypeRequestRejected, guestNotifs[0].Type)
}

func TestRespondAuthorization(t *testing.T) {
	f := newSessionFixture(t)
	session := f.createSession(t, nil)
	request, err := f.sessions.RequestJoin(ctx, session.ID, f.guest.ID, nil)
	require.NoError(t, err)

	_, err = f.sessions.Respond(ctx, 9999, f.host.ID, true, nil)
	kindOf(t, err, service.KindNotFound)

	_, err = f.sessions.Respond(ctx, request.ID, f.third.ID, true, nil)
	kindOf(t, err, service.KindForbidden)

	noProfile := createUser(t, f.db, "lurker")
	_, err = f.sessions.Respond(ctx, request.ID, noProfile.ID, true, nil)
	kindOf(t, err, service.KindForbidden)
}

// Once settled, a request never goes back to Pending and cannot be re-settled.
func TestRequestTransitionsAreOneWay(t *testing.T) {
	f := newSessionFixture(t)
	session := f.createSession(t, nil)

	request, err := f.sessions.RequestJoin(ctx, session.ID, f.guest.ID, nil)
	require.NoError(t, err)
	_, err = f.sessions.Respond(ctx, request.ID, f.host.ID, false, nil)
	require.NoError(t, err)

	_, err = f.sessions.Respond(ctx, request.ID, f.host.ID, true, nil)
	kindOf(t, err, service.KindBadRequest)

	var stored models.SessionRequest
	require.NoError(t, f.db.First(&stored, request.ID).Error)
	assert.Equal(t, models.RequestStatusRejected, stored.Status)
}

func TestUpdateSessionPartialPatch(t *testing.T) {
	f := newSessionFixture(t)
	session := f.createSession(t, nil)

	updated, err := f.sessions.Update(ctx, session.ID, f.host.ID, &service.SessionUpdateInput{
		Title: strPtr("Advanced riffs"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Advanced riffs", updated.Title)
	assert.Equal(t, 60, updated.DurationMinutes, "unsupplied fields stay untouched")

	// Host can reopen a closed session via explicit update.
	require.NoError(t, f.db.Model(&models.Session{}).Where("id = ?", session.ID).Update("is_open", false).Error)
	updated, err = f.sessions.Update(ctx, session.ID, f.host.ID, &service.SessionUpdateInput{
		IsOpen: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, updated.IsOpen)

	_, err = f.sessions.Update(ctx, session.ID, f.host.ID, &service.SessionUpdateInput{
		DurationMinutes: intPtr(0),
	})
	kindOf(t, err, service.KindBadRequest)
}

// Session update/delete is host-only with no admin override, unlike profiles.
func TestUpdateSessionHostOnly(t *testing.T) {
	f := newSessionFixture(t)
	session := f.createSession(t, nil)

	_, err := f.sessions.Update(ctx, session.ID, f.guest.ID, &service.SessionUpdateInput{
		Title: strPtr("Hijacked"),
	})
	kindOf(t, err, service.KindForbidden)

	err = f.sessions.Delete(ctx, session.ID, f.guest.ID)
	kindOf(t, err, service.KindForbidden)
}

func TestDeleteSessionCascades(t *testing.T) {
	f := newSessionFixture(t)
	session := f.createSession(t, &f.guitar.ID)

	request, err := f.sessions.RequestJoin(ctx, session.ID, f.guest.ID, nil)
	require.NoError(t, err)
	_, err = f.sessions.Respond(ctx, request.ID, f.host.ID, true, nil)
	require.NoError(t, err)

	rating := models.Rating{
		SessionID:       &session.ID,
		RaterProfileID:  f.guestProfile.ID,
		TargetProfileID: f.hostProfile.ID,
		Score:           5,
	}
	require.NoError(t, f.db.Create(&rating).Error)

	require.NoError(t, f.sessions.Delete(ctx, session.ID, f.host.ID))

	var count int64
	require.NoError(t, f.db.Model(&models.SessionRequest{}).Where("session_id = ?", session.ID).Count(&count).Error)
	assert.Zero(t, count, "no orphaned requests")
	require.NoError(t, f.db.Model(&models.Rating{}).Where("session_id = ?", session.ID).Count(&count).Error)
	assert.Zero(t, count, "no orphaned ratings")
	require.NoError(t, f.db.Model(&models.Notification{}).Where("related_session_id = ?", session.ID).Count(&count).Error)
	assert.Zero(t, count, "no orphaned notifications")
	require.NoError(t, f.db.Model(&models.Session{}).Where("id = ?", session.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestActiveSessionsForProfile(t *testing.T) {
	f := newSessionFixture(t)
	open := f.createSession(t, nil)
	closed := f.createSession(t, nil)
	require.NoError(t, f.db.Model(&models.Session{}).Where("id = ?", closed.ID).Update("is_open", false).Error)

	active, err := f.sessions.ActiveForProfile(ctx, f.hostProfile.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, open.ID, active[0].ID)

	none, err := f.sessions.ActiveForProfile(ctx, f.guestProfile.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMyParticipations(t *testing.T) {
	f := newSessionFixture(t)
	accepted := f.createSession(t, &f.guitar.ID)
	pending := f.createSession(t, nil)
	rejected := f.createSession(t, nil)

	r1, err := f.sessions.RequestJoin(ctx, accepted.ID, f.guest.ID, nil)
	require.NoError(t, err)
	_, err = f.sessions.Respond(ctx, r1.ID, f.host.ID, true, nil)
	require.NoError(t, err)

	_, err = f.sessions.RequestJoin(ctx, pending.ID, f.guest.ID, nil)
	require.NoError(t, err)

	r3, err := f.sessions.RequestJoin(ctx, rejected.ID, f.guest.ID, nil)
	require.NoError(t, err)
	_, err = f.sessions.Respond(ctx, r3.ID, f.host.ID, false, nil)
	require.NoError(t, err)

	views, err := f.sessions.MyParticipations(ctx, f.guest.ID)
	require.NoError(t, err)
	require.Len(t, views, 2, "rejected requests are excluded")
	for _, v := range views {
		assert.Equal(t, "Hosting Harry", v.HostDisplayName)
		assert.NotEqual(t, rejected.ID, v.SessionID)
	}
}

func TestPendingRequestsForHost(t *testing.T) {
	f := newSessionFixture(t)
	s1 := f.createSession(t, nil)
	s2 := f.createSession(t, nil)

	first, err := f.sessions.RequestJoin(ctx, s1.ID, f.guest.ID, strPtr("first"))
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	second, err := f.sessions.RequestJoin(ctx, s2.ID, f.third.ID, strPtr("second"))
	require.NoError(t, err)

	views, err := f.sessions.PendingForHost(ctx, f.host.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, second.ID, views[0].ID, "newest first")
	assert.Equal(t, first.ID, views[1].ID)
	assert.Equal(t, "Third Tim", views[0].RequesterDisplayName)

	// Settled requests drop out of the pending view.
	_, err = f.sessions.Respond(ctx, first.ID, f.host.ID, false, nil)
	require.NoError(t, err)
	views, err = f.sessions.PendingForHost(ctx, f.host.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
}
