// services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"hotelsite-backend/models"
	"hotelsite-backend/utils"

	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned for every authentication failure,
// whether the identifier or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService resolves login identifiers, issues token pairs and creates
// users together with their profile.
type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

// UserSnapshot is the serialized user attached to session responses.
type UserSnapshot struct {
	ID          uint    `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	IsStaff     bool    `json:"is_staff"`
	IsSuperuser bool    `json:"is_superuser"`
	Avatar      *string `json:"avatar"`
}

// SessionPayload carries the issued token pair plus the user snapshot so
// the frontend needs no second round trip.
type SessionPayload struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    UserSnapshot `json:"user"`
}

// Snapshot serializes a user, resolving the avatar to an absolute URL
// when the profile has one.
func (s *AuthService) Snapshot(user *models.User, r *http.Request) UserSnapshot {
	snap := UserSnapshot{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	}
	profile := user.Profile
	if profile == nil {
		var p models.Profile
		if err := s.DB.Where("user_id = ?", user.ID).First(&p).Error; err == nil {
			profile = &p
		}
	}
	if profile != nil && profile.Avatar != "" {
		url := AbsoluteURL(r, profile.Avatar)
		snap.Avatar = &url
	}
	return snap
}

// Authenticate looks the user up by exact username first, then by exact
// email, and verifies the password. All failure modes collapse into
// ErrInvalidCredentials.
func (s *AuthService) Authenticate(identifier, password string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var user models.User
	err := s.DB.Where("username = ?", identifier).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = s.DB.Where("email = ?", identifier).First(&user).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// IssueSession signs a token pair for an already-authenticated user.
func (s *AuthService) IssueSession(user *models.User, r *http.Request) (SessionPayload, error) {
	pair, err := utils.GenerateTokenPair(user.ID)
	if err != nil {
		return SessionPayload{}, fmt.Errorf("sign tokens: %w", err)
	}
	return SessionPayload{
		Access:  pair.Access,
		Refresh: pair.Refresh,
		User:    s.Snapshot(user, r),
	}, nil
}

// Login runs the full identifier-resolution + verification + issuance flow.
func (s *AuthService) Login(identifier, password string, r *http.Request) (SessionPayload, error) {
	user, err := s.Authenticate(identifier, password)
	if err != nil {
		return SessionPayload{}, err
	}
	return s.IssueSession(user, r)
}

// Register creates the user and, as an explicit post-creation step inside
// the same transaction, its empty profile. Field-level validation errors
// come back in fieldErrs with a nil user.
func (s *AuthService) Register(username, email, password string) (*models.User, map[string]string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	fieldErrs := map[string]string{}
	if username == "" {
		fieldErrs["username"] = "This field is required."
	}
	if len(password) < 6 {
		fieldErrs["password"] = "Password must be at least 6 characters."
	}

	if username != "" {
		var count int64
		if err := s.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return nil, nil, err
		}
		if count > 0 {
			fieldErrs["username"] = "Username already taken."
		}
	}
	if email != "" {
		var count int64
		if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return nil, nil, err
		}
		if count > 0 {
			fieldErrs["email"] = "Email already in use."
		}
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Username: username, Email: email, PasswordHash: hash}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Profile{UserID: user.ID}).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &user, nil, nil
}

// GetOrCreateProfile returns the user's profile, creating an empty one
// when an older record predates the profile rollout.
func (s *AuthService) GetOrCreateProfile(userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := s.DB.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{UserID: userID}
		err = s.DB.Create(&profile).Error
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
