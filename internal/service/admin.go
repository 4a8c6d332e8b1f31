package service

import (
	"context"
	"errors"

	"github.com/fuzzlea/bpa-skillswap-v04/pkg/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminService covers role-gated user management and the reporting summary.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

type UserView struct {
	ID          uuid.UUID `json:"id"`
	UserName    string    `json:"userName"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"displayName,omitempty"`
	Roles       []string  `json:"roles"`
}

type Summary struct {
	Users           int64   `json:"users"`
	Profiles        int64   `json:"profiles"`
	Skills          int64   `json:"skills"`
	Sessions        int64   `json:"sessions"`
	OpenSessions    int64   `json:"openSessions"`
	Requests        int64   `json:"requests"`
	PendingRequests int64   `json:"pendingRequests"`
	Ratings         int64   `json:"ratings"`
	Notifications   int64   `json:"notifications"`
	AverageRating   float64 `json:"averageRating"`
}

func (s *AdminService) GetAllUsers(ctx context.Context) ([]UserView, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("user_name ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}

	views := make([]UserView, 0, len(users))
	for i := range users {
		u := &users[i]
		views = append(views, UserView{
			ID:          u.ID,
			UserName:    u.UserName,
			Email:       u.Email,
			DisplayName: u.DisplayName,
			Roles:       u.Roles(),
		})
	}
	return views, nil
}

// AddUser creates an account on a user's behalf, same validation as
// self-registration.
func (s *AdminService) AddUser(ctx context.Context, in *RegisterInput) (*models.User, []string, error) {
	if errs := ValidateRegistration(in); len(errs) > 0 {
		return nil, errs, nil
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("user_name = ?", in.UserName).First(&existing).Error
	if err == nil {
		return nil, []string{"Username '" + in.UserName + "' is already taken."}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}
	user := models.User{
		UserName:     in.UserName,
		Email:        in.Email,
		PasswordHash: string(hash),
		DisplayName:  in.DisplayName,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, nil, err
	}
	return &user, nil, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NotFound("User not found")
	}
	return nil
}

// SetAdminRole toggles the Admin role on or off; both directions are
// idempotent.
func (s *AdminService) SetAdminRole(ctx context.Context, id uuid.UUID, isAdmin bool) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("User not found")
		}
		return nil, err
	}
	if user.IsAdmin != isAdmin {
		if err := s.db.WithContext(ctx).Model(&user).Update("is_admin", isAdmin).Error; err != nil {
			return nil, err
		}
		user.IsAdmin = isAdmin
	}
	return &user, nil
}

func (s *AdminService) GetSummary(ctx context.Context) (*Summary, error) {
	var sum Summary
	db := s.db.WithContext(ctx)

	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{db.Model(&models.User{}), &sum.Users},
		{db.Model(&models.Profile{}), &sum.Profiles},
		{db.Model(&models.Skill{}), &sum.Skills},
		{db.Model(&models.Session{}), &sum.Sessions},
		{db.Model(&models.Session{}).Where("is_open = ?", true), &sum.OpenSessions},
		{db.Model(&models.SessionRequest{}), &sum.Requests},
		{db.Model(&models.SessionRequest{}).Where("status = ?", models.RequestStatusPending), &sum.PendingRequests},
		{db.Model(&models.Rating{}), &sum.Ratings},
		{db.Model(&models.Notification{}), &sum.Notifications},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	var avg *float64
	if err := db.Model(&models.Rating{}).Select("AVG(score)").Scan(&avg).Error; err != nil {
		return nil, err
	}
	if avg != nil {
		sum.AverageRating = *avg
	}
	return &sum, nil
}
