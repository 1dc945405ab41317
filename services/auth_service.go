package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"lovematch_server/models"
)

const tokenIssuer = "lovematch"

// AuthService handles signup, login and session tokens
type AuthService struct {
	Accounts   AccountRepository
	Profiles   *UserProfileService
	ChatTokens *ChatTokenService
	Notifier   Notifier

	Secret     []byte
	SessionTTL time.Duration
	// HashCost is the bcrypt cost, bcrypt.DefaultCost when zero
	HashCost int
	Now      func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) notifier() Notifier {
	if s.Notifier == nil {
		return nopNotifier{}
	}
	return s.Notifier
}

// Signup registers an account and creates its profile
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (*models.Session, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return nil, invalid(MsgFillAllFields)
	}

	if _, err := s.Profiles.Users.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	cost := s.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Email:        email,
		UserID:       uuid.NewString(),
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC().Format(models.TimeLayout),
	}
	if err := s.Accounts.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	user, _, err := s.Profiles.CreateOrUpdateProfile(ctx, account.UserID, models.ProfileUpdate{Username: &username})
	if err != nil {
		if delErr := s.Accounts.DeleteAccount(ctx, email); delErr != nil {
			log.Error().Err(delErr).Str("userId", account.UserID).Msg("failed to roll back account after profile error")
		}
		return nil, fmt.Errorf("Signup failed: %w", err)
	}

	log.Info().Str("userId", user.UserID).Str("username", username).Msg("user signed up")
	return s.newSession(user, "Signed up")
}

// Login checks the credentials and opens a session
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalid(MsgFillAllFields)
	}

	account, err := s.Accounts.GetAccount(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.Profiles.GetProfile(ctx, account.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	// keeps the chat user's name and image current
	s.Profiles.syncChatUser(ctx, user)

	log.Info().Str("userId", user.UserID).Msg("user logged in")
	return s.newSession(user, "Logged in")
}

// Logout drops the chat token and realtime connections of a user
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if s.ChatTokens != nil {
		s.ChatTokens.Forget(userID)
	}
	s.notifier().DisconnectUser(userID)
	log.Info().Str("userId", userID).Msg("user logged out")
	return nil
}

func (s *AuthService) newSession(user *models.UserData, message string) (*models.Session, error) {
	token, expiresAt, err := s.IssueToken(user.UserID)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		User:      user,
		Message:   message,
	}

	// the client only logs a failed chat connect, so a session without a chat token is still valid
	if s.ChatTokens != nil {
		if chatToken, err := s.ChatTokens.TokenFor(user.UserID); err == nil {
			session.ChatToken = chatToken
		} else {
			log.Warn().Err(err).Str("userId", user.UserID).Msg("session opened without chat token")
		}
	}
	return session, nil
}

// IssueToken signs a session token for userID
func (s *AuthService) IssueToken(userID string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.SessionTTL)
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   userID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// VerifyToken returns the user id of a valid session token
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrUnauthenticated
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return s.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || claims.Subject == "" {
		return "", ErrUnauthenticated
	}
	return claims.Subject, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
