package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fuzzlea/bpa-skillswap-v04/pkg/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Claims is the bearer-token payload. ProfileID is only present once the user
// has created a profile; the frontend decodes it for UI gating while the
// server re-validates ownership on every request.
type Claims struct {
	Username  string   `json:"username"`
	Roles     []string `json:"roles"`
	ProfileID *uint    `json:"profileId,omitempty"`
	jwt.RegisteredClaims
}

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{db: db, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL}
}

type RegisterInput struct {
	UserName    string  `json:"userName"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	DisplayName *string `json:"displayName,omitempty"`
}

// ValidateRegistration returns every problem with the input so the client can
// show them all at once, matching the register endpoint's error-array shape.
func ValidateRegistration(in *RegisterInput) []string {
	var errs []string
	if strings.TrimSpace(in.UserName) == "" {
		errs = append(errs, "Username is required.")
	}
	if strings.TrimSpace(in.Email) == "" {
		errs = append(errs, "Email is required.")
	} else if !strings.Contains(in.Email, "@") {
		errs = append(errs, "Email is invalid.")
	}
	if len(in.Password) < 8 {
		errs = append(errs, "Passwords must be at least 8 characters.")
	}
	return errs
}

// Register creates a login identity. Validation problems come back as a
// string slice; uniqueness violations surface as a single-element slice too so
// the handler can treat every 400 uniformly.
func (s *AuthService) Register(ctx context.Context, in *RegisterInput) (*models.User, []string, error) {
	if errs := ValidateRegistration(in); len(errs) > 0 {
		return nil, errs, nil
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("user_name = ?", in.UserName).First(&existing).Error
	if err == nil {
		return nil, []string{fmt.Sprintf("Username '%s' is already taken.", in.UserName)}, nil
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

// Login checks credentials and issues a signed token. The caller cannot tell
// whether the username or the password was wrong.
func (s *AuthService) Login(ctx context.Context, userName, password string) (string, *models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("user_name = ?", userName).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, Unauthorized("Invalid username or password")
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, Unauthorized("Invalid username or password")
	}

	var profileID *uint
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
		profileID = &profile.ID
	}

	token, err := s.issueToken(&user, profileID)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

func (s *AuthService) issueToken(user *models.User, profileID *uint) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username:  user.UserName,
		Roles:     user.Roles(),
		ProfileID: profileID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.jwtSecret)
}

// ParseToken validates a bearer token and returns its claims.
func ParseToken(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
