package service

import (
	"context"
	"errors"
	"time"

	"github.com/fuzzlea/bpa-skillswap-v04/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionService is the session/request state machine. Sessions move
// Open → Closed (closed automatically on first accept, reversible only by an
// explicit host update); requests move one-way out of Pending, plus
// Accepted → Rejected through a kick.
type SessionService struct {
	db     *gorm.DB
	notify *NotifyService
}

func NewSessionService(db *gorm.DB, notify *NotifyService) *SessionService {
	return &SessionService{db: db, notify: notify}
}

type SessionInput struct {
	Title           string     `json:"title"`
	Description     *string    `json:"description"`
	SkillID         *uint      `json:"skillId"`
	ScheduledAt     *time.Time `json:"scheduledAt"`
	DurationMinutes int        `json:"durationMinutes"`
}

type SessionUpdateInput struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	SkillID         *uint      `json:"skillId"`
	ScheduledAt     *time.Time `json:"scheduledAt"`
	DurationMinutes *int       `json:"durationMinutes"`
	IsOpen          *bool      `json:"isOpen"`
}

// ParticipationView is one row of "sessions I am (or may be) attending".
type ParticipationView struct {
	RequestID       uint                 `json:"requestId"`
	Status          models.RequestStatus `json:"status"`
	Message         *string              `json:"message,omitempty"`
	RequestedAt     time.Time            `json:"requestedAt"`
	SessionID       uint                 `json:"sessionId"`
	SessionTitle    string               `json:"sessionTitle"`
	ScheduledAt     time.Time            `json:"scheduledAt"`
	DurationMinutes int                  `json:"durationMinutes"`
	IsOpen          bool                 `json:"isOpen"`
	HostProfileID   uint                 `json:"hostProfileId"`
	HostDisplayName string               `json:"hostDisplayName"`
	SkillName       *string              `json:"skillName,omitempty"`
}

// PendingRequestView is one inbound request across all sessions the caller hosts.
type PendingRequestView struct {
	ID                   uint      `json:"id"`
	SessionID            uint      `json:"sessionId"`
	SessionTitle         string    `json:"sessionTitle"`
	RequesterProfileID   uint      `json:"requesterProfileId"`
	RequesterDisplayName string    `json:"requesterDisplayName"`
	Message              *string   `json:"message,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
}

// AttendeeView is one accepted request on the host's management page.
type AttendeeView struct {
	ID                  uint       `json:"id"`
	RequesterProfileID  uint       `json:"requesterProfileId"`
	AttendeeDisplayName string     `json:"attendeeDisplayName"`
	HasAttended         bool       `json:"hasAttended"`
	VerifiedAt          *time.Time `json:"verifiedAt,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
}

type ManagementView struct {
	Session           *models.Session `json:"session"`
	Attendees         []AttendeeView  `json:"attendees"`
	TotalAttendees    int             `json:"totalAttendees"`
	VerifiedAttendees int             `json:"verifiedAttendees"`
}

func (s *SessionService) profileFor(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (s *SessionService) GetAll(ctx context.Context) ([]*models.Session, error) {
	var sessions []*models.Session
	err := s.db.WithContext(ctx).
		Preload("Skill").
		Preload("HostProfile.User").
		Order("scheduled_at ASC").
		Find(&sessions).Error
	return sessions, err
}

func (s *SessionService) Get(ctx context.Context, id uint) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).
		Preload("Skill").
		Preload("HostProfile.User").
		Preload("Requests.RequesterProfile.User").
		First(&session, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Session not found")
		}
		return nil, err
	}
	return &session, nil
}

// Create persists a new session, always open, and fans out a SessionCreated
// notification to every profile that wants the session's skill.
func (s *SessionService) Create(ctx context.Context, userID uuid.UUID, in *SessionInput) (*models.Session, error) {
	host, err := s.profileFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if host == nil {
		return nil, BadRequest("You must create a profile before creating sessions")
	}
	if in.Title == "" {
		return nil, BadRequest("Title is required")
	}
	if in.DurationMinutes < 1 || in.DurationMinutes > 600 {
		return nil, BadRequest("Duration must be between 1 and 600 minutes")
	}

	var skill *models.Skill
	if in.SkillID != nil {
		skill = &models.Skill{}
		if err := s.db.WithContext(ctx).First(skill, *in.SkillID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, BadRequest("Skill not found")
			}
			return nil, err
		}
	}

	scheduledAt := time.Now().UTC()
	if in.ScheduledAt != nil {
		scheduledAt = *in.ScheduledAt
	}

	session := models.Session{
		Title:           in.Title,
		Description:     in.Description,
		SkillID:         in.SkillID,
		HostProfileID:   host.ID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: in.DurationMinutes,
		IsOpen:          true,
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, err
	}

	if skill != nil {
		s.fanOutSessionCreated(ctx, &session, host, skill)
	}
	return &session, nil
}

func (s *SessionService) fanOutSessionCreated(ctx context.Context, session *models.Session, host *models.Profile, skill *models.Skill) {
	var interested []models.Profile
	err := s.db.WithContext(ctx).
		Joins("JOIN profile_skills_wanted psw ON psw.profile_id = profiles.id").
		Where("psw.skill_id = ?", skill.ID).
		Find(&interested).Error
	if err != nil {
		return
	}
	for i := range interested {
		s.notify.emit(ctx, sessionCreatedNotification(interested[i].UserID, session, host.Name(), skill.Name))
	}
}

// Update applies a partial patch, host-only. There is deliberately no admin
// override here, unlike profiles.
func (s *SessionService) Update(ctx context.Context, id uint, userID uuid.UUID, in *SessionUpdateInput) (*models.Session, error) {
	session, _, err := s.ownedSession(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.SkillID != nil {
		var skill models.Skill
		if err := s.db.WithContext(ctx).First(&skill, *in.SkillID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, BadRequest("Skill not found")
			}
			return nil, err
		}
		updates["skill_id"] = *in.SkillID
	}
	if in.ScheduledAt != nil {
		updates["scheduled_at"] = *in.ScheduledAt
	}
	if in.DurationMinutes != nil {
		if *in.DurationMinutes < 1 || *in.DurationMinutes > 600 {
			return nil, BadRequest("Duration must be between 1 and 600 minutes")
		}
		updates["duration_minutes"] = *in.DurationMinutes
	}
	if in.IsOpen != nil {
		updates["is_open"] = *in.IsOpen
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(session).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

// Delete removes the session and everything that references it in one
// transaction, so a failure mid-cascade leaves no orphans.
func (s *SessionService) Delete(ctx context.Context, id uint, userID uuid.UUID) error {
	session, _, err := s.ownedSession(ctx, id, userID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", session.ID).Delete(&models.SessionRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", session.ID).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("related_session_id = ?", session.ID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(session).Error
	})
}

func (s *SessionService) ActiveForProfile(ctx context.Context, profileID uint) ([]*models.Session, error) {
	var sessions []*models.Session
	err := s.db.WithContext(ctx).
		Preload("Skill").
		Preload("HostProfile.User").
		Where("host_profile_id = ? AND is_open = ?", profileID, true).
		Order("scheduled_at ASC").
		Find(&sessions).Error
	return sessions, err
}

// RequestJoin creates a Pending request against an open session and notifies
// the host.
func (s *SessionService) RequestJoin(ctx context.Context, sessionID uint, userID uuid.UUID, message *string) (*models.SessionRequest, error) {
	var session models.Session
	err := s.db.WithContext(ctx).Preload("HostProfile").First(&session, sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Session not found")
		}
		return nil, err
	}
	if !session.IsOpen {
		return nil, BadRequest("Session is not open for requests.")
	}

	requester, err := s.profileFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, BadRequest("You must have a profile to request a session")
	}

	request := models.SessionRequest{
		SessionID:          session.ID,
		RequesterProfileID: requester.ID,
		Message:            message,
		Status:             models.RequestStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&request).Error; err != nil {
		return nil, err
	}

	if session.HostProfile != nil {
		s.notify.emit(ctx, joinRequestNotification(session.HostProfile.UserID, &request, &session, requester.Name()))
	}
	return &request, nil
}

// Respond settles a Pending request. Accepting also closes the session; both
// writes happen in one transaction, and the close is a conditional update so
// two concurrent accepts on the same session cannot both observe it open.
func (s *SessionService) Respond(ctx context.Context, requestID uint, userID uuid.UUID, accept bool, hostMessage *string) (*models.SessionRequest, error) {
	var request models.SessionRequest
	err := s.db.WithContext(ctx).
		Preload("Session").
		Preload("RequesterProfile").
		First(&request, requestID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Request not found")
		}
		return nil, err
	}

	caller, err := s.profileFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if caller == nil || request.Session == nil || request.Session.HostProfileID != caller.ID {
		return nil, Forbidden("Only the session host can respond to requests")
	}
	if request.Status != models.RequestStatusPending {
		return nil, BadRequest("Request has already been handled")
	}

	newStatus := models.RequestStatusRejected
	if accept {
		newStatus = models.RequestStatusAccepted
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.SessionRequest{}).
			Where("id = ? AND status = ?", request.ID, models.RequestStatusPending).
			Update("status", newStatus).Error; err != nil {
			return err
		}
		if accept {
			return tx.Model(&models.Session{}).
				Where("id = ? AND is_open = ?", request.SessionID, true).
				Update("is_open", false).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	request.Status = newStatus

	if request.RequesterProfile != nil {
		s.notify.emit(ctx, requestRespondedNotification(
			request.RequesterProfile.UserID, request.Session, caller.Name(), accept, hostMessage))
	}
	return &request, nil
}

func (s *SessionService) MyParticipations(ctx context.Context, userID uuid.UUID) ([]ParticipationView, error) {
	profile, err := s.profileFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return []ParticipationView{}, nil
	}

	var requests []models.SessionRequest
	err = s.db.WithContext(ctx).
		Preload("Session.Skill").
		Preload("Session.HostProfile.User").
		Where("requester_profile_id = ? AND status IN ?", profile.ID,
			[]models.RequestStatus{models.RequestStatusAccepted, models.RequestStatusPending}).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	views := make([]ParticipationView, 0, len(requests))
	for i := range requests {
		r := &requests[i]
		if r.Session == nil {
			continue
		}
		v := ParticipationView{
			RequestID:       r.ID,
			Status:          r.Status,
			Message:         r.Message,
			RequestedAt:     r.CreatedAt,
			SessionID:       r.Session.ID,
			SessionTitle:    r.Session.Title,
			ScheduledAt:     r.Session.ScheduledAt,
			DurationMinutes: r.Session.DurationMinutes,
			IsOpen:          r.Session.IsOpen,
			HostProfileID:   r.Session.HostProfileID,
		}
		if r.Session.HostProfile != nil {
			v.HostDisplayName = r.Session.HostProfile.Name()
		}
		if r.Session.Skill != nil {
			v.SkillName = &r.Session.Skill.Name
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *SessionService) PendingForHost(ctx context.Context, userID uuid.UUID) ([]PendingRequestView, error) {
	profile, err := s.profileFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return []PendingRequestView{}, nil
	}

	var requests []models.SessionRequest
	err = s.db.WithContext(ctx).
		Preload("Session").
		Preload("RequesterProfile.User").
		Joins("JOIN sessions ON sessions.id = session_requests.session_id").
		Where("sessions.host_profile_id = ? AND session_requests.status = ?", profile.ID, models.RequestStatusPending).
		Order("session_requests.created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	views := make([]PendingRequestView, 0, len(requests))
	for i := range requests {
		r := &requests[i]
		v := PendingRequestView{
			ID:                 r.ID,
			SessionID:          r.SessionID,
			RequesterProfileID: r.RequesterProfileID,
			Message:            r.Message,
			CreatedAt:          r.CreatedAt,
		}
		if r.Session != nil {
			v.SessionTitle = r.Session.Title
		}
		if r.RequesterProfile != nil {
			v.RequesterDisplayName = r.RequesterProfile.Name()
		}
		views = append(views, v)
	}
	return views, nil
}
