package controllers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"lovematch_server/helpers"
)

// GeneratePresignedURL generates a presigned URL for S3 uploads
func (c *UserProfileController) GeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := helpers.DecodeJSON(r, &payload); err != nil {
		helpers.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	url, key, err := c.Profiles.PresignUpload(ctx, payload.FileName, payload.FileType)
	if err != nil {
		helpers.WriteError(w, err, "Failed to generate pre-signed URL")
		return
	}
	log.Debug().Str("key", key).Msg("generated upload URL")
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]string{"url": url, "fileName": key})
}

// GetPresignedReadURL generates a presigned URL for reading S3 objects
func (c *UserProfileController) GetPresignedReadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key string `json:"key"`
	}
	if err := helpers.DecodeJSON(r, &payload); err != nil {
		helpers.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	url, err := c.Profiles.PresignRead(ctx, payload.Key)
	if err != nil {
		helpers.WriteError(w, err, "Failed to generate read pre-signed URL")
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]string{"url": url})
}
