package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"lovematch_server/models"
)

// ImageStore keeps profile images
type ImageStore interface {
	UploadImage(ctx context.Context, contentType string, body io.ReadSeeker) (key string, url string, err error)
	GenerateUploadURL(ctx context.Context, fileName, fileType string) (url string, key string, err error)
	GenerateReadURL(ctx context.Context, key string) (string, error)
}

// Profile write outcomes, as shown to the user
const (
	MsgProfileCreated = "Profile created"
	MsgProfileUpdated = "Profile updated"
)

type UserProfileService struct {
	Users  UserRepository
	Images ImageStore
	Chat   ChatProvider
	Now    func() time.Time
}

func (s *UserProfileService) now() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().UTC().Format(models.TimeLayout)
}

// GetProfile retrieves the full profile of userID
func (s *UserProfileService) GetProfile(ctx context.Context, userID string) (*models.UserData, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.Users.GetUser(ctx, userID)
}

// GetPublicProfile retrieves what other users may see of userID
func (s *UserProfileService) GetPublicProfile(ctx context.Context, userID string) (*models.UserData, error) {
	user, err := s.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

// CreateOrUpdateProfile merges upd into the stored profile, creating it on first write.
// Nil fields keep their stored value; swipe sets are never written here.
func (s *UserProfileService) CreateOrUpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.UserData, string, error) {
	if userID == "" {
		return nil, "", ErrUnauthenticated
	}
	if upd.Username != nil {
		username := strings.TrimSpace(*upd.Username)
		if username == "" {
			return nil, "", invalid("Username cannot be empty")
		}
		upd.Username = &username
		if err := s.ensureUsernameFree(ctx, userID, username); err != nil {
			return nil, "", err
		}
	}

	existing, err := s.Users.GetUser(ctx, userID)
	switch {
	case errors.Is(err, ErrNotFound):
		user, err := s.createProfile(ctx, userID, upd)
		if errors.Is(err, ErrConflict) {
			// created concurrently, merge into it instead
			break
		}
		if err != nil {
			return nil, "", err
		}
		return user, MsgProfileCreated, nil
	case err != nil:
		return nil, "", fmt.Errorf("Cannot update user: %w", err)
	}

	fields := updateFields(upd)
	updated, err := s.Users.UpdateUser(ctx, userID, fields)
	if err != nil {
		return nil, "", fmt.Errorf("Cannot update user: %w", err)
	}
	if existing == nil || chatIdentityChanged(existing, updated) {
		s.syncChatUser(ctx, updated)
	}
	log.Info().Str("userId", userID).Int("fields", len(fields)).Msg("profile updated")
	return updated, MsgProfileUpdated, nil
}

func (s *UserProfileService) createProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.UserData, error) {
	now := s.now()
	user := &models.UserData{
		UserID:           userID,
		Name:             deref(upd.Name),
		Username:         deref(upd.Username),
		ImageURL:         deref(upd.ImageURL),
		Bio:              deref(upd.Bio),
		Gender:           models.ParseGender(deref(upd.Gender)).String(),
		GenderPreference: models.ParseGender(deref(upd.GenderPreference)).String(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("Cannot create user: %w", err)
	}
	s.syncChatUser(ctx, user)
	log.Info().Str("userId", userID).Msg("profile created")
	return user, nil
}

func (s *UserProfileService) ensureUsernameFree(ctx context.Context, userID, username string) error {
	owner, err := s.Users.FindByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if owner.UserID != userID {
		return ErrUsernameTaken
	}
	return nil
}

// UploadProfileImage stores the image and points the profile at it
func (s *UserProfileService) UploadProfileImage(ctx context.Context, userID, contentType string, body io.ReadSeeker) (*models.UserData, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return nil, invalid("Only image uploads are allowed")
	}

	key, url, err := s.Images.UploadImage(ctx, contentType, body)
	if err != nil {
		return nil, err
	}
	log.Info().Str("userId", userID).Str("key", key).Msg("profile image uploaded")

	user, _, err := s.CreateOrUpdateProfile(ctx, userID, models.ProfileUpdate{ImageURL: &url})
	return user, err
}

// PresignUpload returns a presigned PUT URL and the key the client uploads to
func (s *UserProfileService) PresignUpload(ctx context.Context, fileName, fileType string) (string, string, error) {
	if fileName == "" || fileType == "" {
		return "", "", invalid("Missing required fields")
	}
	return s.Images.GenerateUploadURL(ctx, fileName, fileType)
}

// PresignRead returns a presigned GET URL for key
func (s *UserProfileService) PresignRead(ctx context.Context, key string) (string, error) {
	if key == "" || !strings.HasPrefix(key, imagePrefix) {
		return "", invalid("Invalid request payload")
	}
	return s.Images.GenerateReadURL(ctx, key)
}

func (s *UserProfileService) syncChatUser(ctx context.Context, user *models.UserData) {
	if s.Chat == nil {
		return
	}
	chatUser := user.ChatUser()
	if chatUser.Name == "" {
		chatUser.Name = "Unknown"
	}
	if err := s.Chat.UpsertUser(ctx, chatUser); err != nil {
		log.Warn().Err(err).Str("userId", user.UserID).Msg("failed to sync chat user")
	}
}

func updateFields(upd models.ProfileUpdate) map[string]string {
	fields := map[string]string{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Username != nil {
		fields["username"] = *upd.Username
	}
	if upd.Bio != nil {
		fields["bio"] = *upd.Bio
	}
	if upd.ImageURL != nil {
		fields["imageUrl"] = *upd.ImageURL
	}
	if upd.Gender != nil {
		fields["gender"] = models.ParseGender(*upd.Gender).String()
	}
	if upd.GenderPreference != nil {
		fields["genderPreference"] = models.ParseGender(*upd.GenderPreference).String()
	}
	return fields
}

func chatIdentityChanged(before, after *models.UserData) bool {
	return before.DisplayName() != after.DisplayName() || before.ImageURL != after.ImageURL
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
