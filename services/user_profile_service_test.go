package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lovematch_server/models"
)

type fakeImageStore struct {
	uploads int
}

func (f *fakeImageStore) UploadImage(_ context.Context, _ string, body io.ReadSeeker) (string, string, error) {
	if _, err := io.ReadAll(body); err != nil {
		return "", "", err
	}
	f.uploads++
	return "images/fixed", "https://cdn.example.com/images/fixed", nil
}

func (f *fakeImageStore) GenerateUploadURL(_ context.Context, fileName, _ string) (string, string, error) {
	return "https://put.example.com/" + fileName, "images/x-" + fileName, nil
}

func (f *fakeImageStore) GenerateReadURL(_ context.Context, key string) (string, error) {
	return "https://get.example.com/" + key, nil
}

func strptr(s string) *string { return &s }

func TestCreateOrUpdateProfileCreates(t *testing.T) {
	users := newMemoryUsers()
	chat := &fakeChatProvider{configured: true}
	svc := &UserProfileService{Users: users, Chat: chat}

	user, msg, err := svc.CreateOrUpdateProfile(context.Background(), "u1", models.ProfileUpdate{
		Name:   strptr("Alice"),
		Gender: strptr("female"),
	})
	require.NoError(t, err)
	assert.Equal(t, MsgProfileCreated, msg)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "FEMALE", user.Gender)
	assert.Equal(t, "ANY", user.GenderPreference)
	assert.NotEmpty(t, user.CreatedAt)
	assert.Len(t, chat.upserts, 1)
}

func TestCreateOrUpdateProfileMerges(t *testing.T) {
	stored := models.UserData{UserID: "u1", Username: "alice", Name: "Alice", Bio: "hi", SwipesRight: []string{"u2"}}
	users := newMemoryUsers(stored)
	chat := &fakeChatProvider{configured: true}
	svc := &UserProfileService{Users: users, Chat: chat}

	user, msg, err := svc.CreateOrUpdateProfile(context.Background(), "u1", models.ProfileUpdate{Bio: strptr("new bio")})
	require.NoError(t, err)
	assert.Equal(t, MsgProfileUpdated, msg)
	assert.Equal(t, "Alice", user.Name, "unset fields keep their value")
	assert.Equal(t, "new bio", user.Bio)
	assert.Equal(t, []string{"u2"}, users.get("u1").SwipesRight, "swipe sets survive a profile update")
	assert.Empty(t, chat.upserts, "chat user only synced when name or image changes")

	_, _, err = svc.CreateOrUpdateProfile(context.Background(), "u1", models.ProfileUpdate{Name: strptr("Ally")})
	require.NoError(t, err)
	require.Len(t, chat.upserts, 1)
	assert.Equal(t, "Ally", chat.upserts[0].Name)
}

func TestCreateOrUpdateProfileUsername(t *testing.T) {
	users := newMemoryUsers(
		models.UserData{UserID: "u1", Username: "alice"},
		models.UserData{UserID: "u2", Username: "bob"},
	)
	svc := &UserProfileService{Users: users}
	ctx := context.Background()

	_, _, err := svc.CreateOrUpdateProfile(ctx, "u2", models.ProfileUpdate{Username: strptr("alice")})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	user, _, err := svc.CreateOrUpdateProfile(ctx, "u1", models.ProfileUpdate{Username: strptr(" alice ")})
	require.NoError(t, err, "keeping your own username is allowed")
	assert.Equal(t, "alice", user.Username)

	_, _, err = svc.CreateOrUpdateProfile(ctx, "u1", models.ProfileUpdate{Username: strptr("  ")})
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))

	_, _, err = svc.CreateOrUpdateProfile(ctx, "", models.ProfileUpdate{})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestGetPublicProfileHidesSwipes(t *testing.T) {
	users := newMemoryUsers(models.UserData{UserID: "u1", Matches: []string{"u2"}})
	svc := &UserProfileService{Users: users}

	user, err := svc.GetPublicProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, user.Matches)

	_, err = svc.GetPublicProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUploadProfileImage(t *testing.T) {
	users := newMemoryUsers(models.UserData{UserID: "u1", Username: "alice"})
	images := &fakeImageStore{}
	svc := &UserProfileService{Users: users, Images: images}

	user, err := svc.UploadProfileImage(context.Background(), "u1", "image/png", bytes.NewReader([]byte("png")))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/images/fixed", user.ImageURL)
	assert.Equal(t, "https://cdn.example.com/images/fixed", users.get("u1").ImageURL)

	_, err = svc.UploadProfileImage(context.Background(), "u1", "text/plain", bytes.NewReader(nil))
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, images.uploads)
}

func TestPresign(t *testing.T) {
	svc := &UserProfileService{Images: &fakeImageStore{}}
	ctx := context.Background()

	url, key, err := svc.PresignUpload(ctx, "me.png", "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://put.example.com/me.png", url)
	assert.Equal(t, "images/x-me.png", key)

	_, _, err = svc.PresignUpload(ctx, "", "image/png")
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))

	url, err = svc.PresignRead(ctx, "images/x-me.png")
	require.NoError(t, err)
	assert.Equal(t, "https://get.example.com/images/x-me.png", url)

	_, err = svc.PresignRead(ctx, "secrets/keys")
	assert.True(t, errors.As(err, &verr))
}
