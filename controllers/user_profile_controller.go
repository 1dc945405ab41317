package controllers

import (
	"context"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"lovematch_server/helpers"
	"lovematch_server/middleware"
	"lovematch_server/models"
)

const maxImageSize = 10 << 20

// ProfileAPI is what UserProfileController needs from the profile service
type ProfileAPI interface {
	GetProfile(ctx context.Context, userID string) (*models.UserData, error)
	GetPublicProfile(ctx context.Context, userID string) (*models.UserData, error)
	CreateOrUpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.UserData, string, error)
	UploadProfileImage(ctx context.Context, userID, contentType string, body io.ReadSeeker) (*models.UserData, error)
	PresignUpload(ctx context.Context, fileName, fileType string) (string, string, error)
	PresignRead(ctx context.Context, key string) (string, error)
}

// UserProfileController handles requests related to user profiles
type UserProfileController struct {
	Profiles ProfileAPI
}

// NewUserProfileController creates a new instance of UserProfileController
func NewUserProfileController(profiles ProfileAPI) *UserProfileController {
	return &UserProfileController{Profiles: profiles}
}

// GetMyProfile returns the caller's full profile
func (c *UserProfileController) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	profile, err := c.Profiles.GetProfile(ctx, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		helpers.WriteError(w, err, "Failed to fetch profile")
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, profile)
}

// UpdateMyProfile creates or merges the caller's profile
func (c *UserProfileController) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	var upd models.ProfileUpdate
	if err := helpers.DecodeJSON(r, &upd); err != nil {
		helpers.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	profile, message, err := c.Profiles.CreateOrUpdateProfile(ctx, middleware.UserIDFromContext(r.Context()), upd)
	if err != nil {
		helpers.WriteError(w, err, "Failed to update profile")
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"profile": profile,
	})
}

// GetProfileByID returns the public view of another user's profile
func (c *UserProfileController) GetProfileByID(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	ctx, cancel := requestContext(r)
	defer cancel()

	profile, err := c.Profiles.GetPublicProfile(ctx, userID)
	if err != nil {
		helpers.WriteError(w, err, "Failed to fetch profile")
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, profile)
}

// UploadProfileImage stores the multipart "image" file and sets it as the profile image
func (c *UserProfileController) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		helpers.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid multipart form"})
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		helpers.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"error": "image file is required"})
		return
	}
	defer file.Close()

	ctx, cancel := requestContext(r)
	defer cancel()

	userID := middleware.UserIDFromContext(r.Context())
	profile, err := c.Profiles.UploadProfileImage(ctx, userID, header.Header.Get("Content-Type"), file)
	if err != nil {
		helpers.WriteError(w, err, "Failed to upload image")
		return
	}
	log.Info().Str("userId", userID).Str("file", header.Filename).Int64("size", header.Size).Msg("profile image replaced")
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": "Image uploaded",
		"profile": profile,
	})
}
