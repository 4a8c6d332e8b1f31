package service

import (
	"encoding/json"
	"fmt"

	"github.com/fuzzlea/bpa-skillswap-v04/pkg/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification message builders. Each returns a ready-to-persist row; the
// engine only fills in the recipient-independent parts once per event.

func metadataJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func sessionCreatedNotification(recipient uuid.UUID, session *models.Session, hostName, skillName string) *models.Notification {
	content := fmt.Sprintf("%s is hosting '%s', a session for %s you said you wanted to learn.", hostName, session.Title, skillName)
	return &models.Notification{
		UserID:           recipient,
		Type:             models.NotificationTypeSessionCreated,
		Title:            "New Session Available",
		Content:          &content,
		RelatedSessionID: &session.ID,
		RelatedProfileID: &session.HostProfileID,
		Metadata: metadataJSON(map[string]any{
			"hostDisplayName": hostName,
			"skillName":       skillName,
		}),
	}
}

func joinRequestNotification(recipient uuid.UUID, request *models.SessionRequest, session *models.Session, requesterName string) *models.Notification {
	content := fmt.Sprintf("%s wants to join your session '%s'", requesterName, session.Title)
	if request.Message != nil && *request.Message != "" {
		content = fmt.Sprintf("%s: %s", content, *request.Message)
	}
	return &models.Notification{
		UserID:           recipient,
		Type:             models.NotificationTypeJoinRequest,
		Title:            "New Join Request",
		Content:          &content,
		RelatedSessionID: &session.ID,
		RelatedProfileID: &request.RequesterProfileID,
		Metadata: metadataJSON(map[string]any{
			"requesterDisplayName": requesterName,
			"requestId":            request.ID,
		}),
	}
}

func requestRespondedNotification(recipient uuid.UUID, session *models.Session, hostName string, accepted bool, hostMessage *string) *models.Notification {
	typ := models.NotificationTypeRequestAccepted
	title := "Request Accepted"
	content := fmt.Sprintf("%s accepted your request to join '%s'", hostName, session.Title)
	if !accepted {
		typ = models.NotificationTypeRequestRejected
		title = "Request Rejected"
		content = fmt.Sprintf("%s declined your request to join '%s'", hostName, session.Title)
	}
	if hostMessage != nil && *hostMessage != "" {
		content = fmt.Sprintf("%s: %s", content, *hostMessage)
	}
	return &models.Notification{
		UserID:           recipient,
		Type:             typ,
		Title:            title,
		Content:          &content,
		RelatedSessionID: &session.ID,
		RelatedProfileID: &session.HostProfileID,
		Metadata: metadataJSON(map[string]any{
			"hostDisplayName": hostName,
			"accepted":        accepted,
		}),
	}
}

func kickedNotification(recipient uuid.UUID, session *models.Session, hostName string) *models.Notification {
	content := fmt.Sprintf("%s has removed you from the session '%s'", hostName, session.Title)
	return &models.Notification{
		UserID:           recipient,
		Type:             models.NotificationTypeKickedFromSession,
		Title:            "Removed from Session",
		Content:          &content,
		RelatedSessionID: &session.ID,
		RelatedProfileID: &session.HostProfileID,
	}
}

func ratingNotification(recipient uuid.UUID, rating *models.Rating, raterName string) *models.Notification {
	content := fmt.Sprintf("%s rated you %d/5", raterName, rating.Score)
	if rating.Comment != nil && *rating.Comment != "" {
		content = fmt.Sprintf("%s: %s", content, *rating.Comment)
	}
	return &models.Notification{
		UserID:           recipient,
		Type:             models.NotificationTypeRating,
		Title:            "New Rating Received",
		Content:          &content,
		RelatedSessionID: rating.SessionID,
		RelatedProfileID: &rating.RaterProfileID,
		RelatedRatingID:  &rating.ID,
		Metadata: metadataJSON(map[string]any{
			"raterDisplayName": raterName,
			"score":            rating.Score,
		}),
	}
}
