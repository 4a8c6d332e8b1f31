package service

import (
	"context"
	"errors"
	"time"

	"github.com/fuzzlea/bpa-skillswap-v04/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Host-only session management: attendee listing, attendance verification and
// kicks. Every operation re-checks that the caller's profile hosts the session.

func (s *SessionService) ownedSession(ctx context.Context, sessionID uint, userID uuid.UUID) (*models.Session, *models.Profile, error) {
	var session models.Session
	err := s.db.WithContext(ctx).Preload("HostProfile.User").First(&session, sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, NotFound("Session not found")
		}
		return nil, nil, err
	}

	caller, err := s.profileFor(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if caller == nil || session.HostProfileID != caller.ID {
		return nil, nil, Forbidden("You can only manage sessions you created")
	}
	return &session, caller, nil
}

func (s *SessionService) sessionRequest(ctx context.Context, sessionID, requestID uint) (*models.SessionRequest, error) {
	var request models.SessionRequest
	err := s.db.WithContext(ctx).
		Preload("RequesterProfile.User").
		Where("id = ? AND session_id = ?", requestID, sessionID).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Attendee not found in this session")
		}
		return nil, err
	}
	return &request, nil
}

func (s *SessionService) Management(ctx context.Context, sessionID uint, userID uuid.UUID) (*ManagementView, error) {
	session, _, err := s.ownedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	attendees, err := s.Attendees(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	verified := 0
	for _, a := range attendees {
		if a.HasAttended {
			verified++
		}
	}
	return &ManagementView{
		Session:           session,
		Attendees:         attendees,
		TotalAttendees:    len(attendees),
		VerifiedAttendees: verified,
	}, nil
}

func (s *SessionService) Attendees(ctx context.Context, sessionID uint, userID uuid.UUID) ([]AttendeeView, error) {
	if _, _, err := s.ownedSession(ctx, sessionID, userID); err != nil {
		return nil, err
	}

	var requests []models.SessionRequest
	err := s.db.WithContext(ctx).
		Preload("RequesterProfile.User").
		Where("session_id = ? AND status = ?", sessionID, models.RequestStatusAccepted).
		Order("created_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	views := make([]AttendeeView, 0, len(requests))
	for i := range requests {
		r := &requests[i]
		v := AttendeeView{
			ID:                 r.ID,
			RequesterProfileID: r.RequesterProfileID,
			HasAttended:        r.HasAttended,
			VerifiedAt:         r.VerifiedAt,
			CreatedAt:          r.CreatedAt,
		}
		if r.RequesterProfile != nil {
			v.AttendeeDisplayName = r.RequesterProfile.Name()
		}
		views = append(views, v)
	}
	return views, nil
}

// VerifyAttendance marks an accepted attendee as having shown up.
func (s *SessionService) VerifyAttendance(ctx context.Context, sessionID, requestID uint, userID uuid.UUID) (*models.SessionRequest, error) {
	if _, _, err := s.ownedSession(ctx, sessionID, userID); err != nil {
		return nil, err
	}
	request, err := s.sessionRequest(ctx, sessionID, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != models.RequestStatusAccepted {
		return nil, BadRequest("Only accepted attendees can be verified")
	}

	now := time.Now().UTC()
	err = s.db.WithContext(ctx).Model(request).Updates(map[string]any{
		"has_attended": true,
		"verified_at":  now,
	}).Error
	if err != nil {
		return nil, err
	}
	request.HasAttended = true
	request.VerifiedAt = &now
	return request, nil
}

// UnverifyAttendance reverses a verification.
func (s *SessionService) UnverifyAttendance(ctx context.Context, sessionID, requestID uint, userID uuid.UUID) (*models.SessionRequest, error) {
	if _, _, err := s.ownedSession(ctx, sessionID, userID); err != nil {
		return nil, err
	}
	request, err := s.sessionRequest(ctx, sessionID, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != models.RequestStatusAccepted {
		return nil, BadRequest("Only accepted attendees can be unverified")
	}

	err = s.db.WithContext(ctx).Model(request).Updates(map[string]any{
		"has_attended": false,
		"verified_at":  nil,
	}).Error
	if err != nil {
		return nil, err
	}
	request.HasAttended = false
	request.VerifiedAt = nil
	return request, nil
}

// Kick revokes a previously accepted attendee. The request row survives with
// status Rejected so the history stays visible; the attendee is notified.
func (s *SessionService) Kick(ctx context.Context, sessionID, requestID uint, userID uuid.UUID) (*models.SessionRequest, error) {
	session, host, err := s.ownedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	request, err := s.sessionRequest(ctx, sessionID, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != models.RequestStatusAccepted {
		return nil, BadRequest("Only accepted attendees can be kicked")
	}

	if err := s.db.WithContext(ctx).Model(request).Update("status", models.RequestStatusRejected).Error; err != nil {
		return nil, err
	}
	request.Status = models.RequestStatusRejected

	if request.RequesterProfile != nil {
		s.notify.emit(ctx, kickedNotification(request.RequesterProfile.UserID, session, host.Name()))
	}
	return request, nil
}
