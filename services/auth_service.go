package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"checkinly-backend/events"
	"checkinly-backend/models"
	"checkinly-backend/utils"
)

type AuthService struct {
	DB         *gorm.DB
	Events     events.Publisher
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
}

func NewAuthService(db *gorm.DB, pub events.Publisher, secret string, ttl time.Duration, cost int) *AuthService {
	return &AuthService{DB: db, Events: pub, Secret: secret, TokenTTL: ttl, BcryptCost: cost}
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SessionMeta describes the client that opened a session.
type SessionMeta struct {
	UserAgent string
	IP        string
}

type AuthResult struct {
	User        *models.User    `json:"user"`
	Session     *models.Session `json:"session"`
	AccessToken string          `json:"access_token"`
	ExpiresAt   time.Time       `json:"expires_at"`
}

// SessionState is what the dashboard polls to decide whether to show the login page.
type SessionState struct {
	User            *models.User    `json:"user"`
	Session         *models.Session `json:"session"`
	IsAuthenticated bool            `json:"isAuthenticated"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ----------------------------------------------------
// SignUp
// ----------------------------------------------------
func (s *AuthService) SignUp(ctx context.Context, in Credentials) (*models.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fieldError("email", "Email is already registered", ErrEmailTaken)
	}

	hash, err := utils.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{Email: in.Email, PasswordHash: hash}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fieldError("email", "Email is already registered", ErrEmailTaken)
		}
		return nil, err
	}

	utils.Logger.Infof("✅ user registered: %s", utils.MaskEmail(user.Email))
	return user, nil
}

// ----------------------------------------------------
// SignIn opens a session and signs a token bound to it.
// ----------------------------------------------------
func (s *AuthService) SignIn(ctx context.Context, in Credentials, meta SessionMeta) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	if in.Email == "" || in.Password == "" {
		return nil, ErrInvalidCredentials
	}

	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", in.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.VerifyPassword(user.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}

	session := &models.Session{
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(s.TokenTTL),
		UserAgent: truncate(meta.UserAgent, 255),
		IP:        meta.IP,
	}
	if err := s.DB.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}

	tok, err := utils.NewAccessToken(s.Secret, user.ID, session.ID, s.TokenTTL)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.New(events.SignedIn, "", map[string]string{
		"user_id":    user.ID,
		"session_id": session.ID,
	}))
	return &AuthResult{User: &user, Session: session, AccessToken: tok.Token, ExpiresAt: tok.Exp}, nil
}

// ----------------------------------------------------
// SignOut revokes the session; revoking twice is not an error.
// ----------------------------------------------------
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	now := time.Now().UTC()
	res := s.DB.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ? AND revoked_at IS NULL", sessionID).
		Update("revoked_at", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		publish(ctx, s.Events, events.New(events.SignedOut, "", map[string]string{"session_id": sessionID}))
	}
	return nil
}

// Authenticate resolves a bearer token to its live user and session.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*models.User, *models.Session, error) {
	claims, err := utils.ParseAccessToken(s.Secret, rawToken)
	if err != nil {
		return nil, nil, ErrUnauthorized
	}

	var session models.Session
	if err := s.DB.WithContext(ctx).First(&session, "id = ?", claims.SessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUnauthorized
		}
		return nil, nil, err
	}
	if session.UserID != claims.UserID || !session.Active(time.Now().UTC()) {
		return nil, nil, ErrUnauthorized
	}

	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUnauthorized
		}
		return nil, nil, err
	}
	return &user, &session, nil
}

// Current reports the session state for a bearer token; an absent or dead
// token is an unauthenticated state, not an error.
func (s *AuthService) Current(ctx context.Context, rawToken string) (SessionState, error) {
	if rawToken == "" {
		return SessionState{}, nil
	}
	user, session, err := s.Authenticate(ctx, rawToken)
	if errors.Is(err, ErrUnauthorized) {
		return SessionState{}, nil
	}
	if err != nil {
		return SessionState{}, err
	}
	return SessionState{User: user, Session: session, IsAuthenticated: true}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
