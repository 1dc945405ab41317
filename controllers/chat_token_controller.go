package controllers

import (
	"context"
	"net/http"

	"lovematch_server/helpers"
	"lovematch_server/middleware"
)

// ChatTokenAPI mints chat SDK tokens
type ChatTokenAPI interface {
	IssueToken(ctx context.Context, callerID, userID string) (string, error)
}

// ChatTokenController serves the chat token endpoint the mobile client calls before connecting to chat
type ChatTokenController struct {
	Tokens ChatTokenAPI
}

// NewChatTokenController creates a new instance of ChatTokenController
func NewChatTokenController(tokens ChatTokenAPI) *ChatTokenController {
	return &ChatTokenController{Tokens: tokens}
}

// CreateToken returns {"token": ...} for the caller
func (c *ChatTokenController) CreateToken(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID string `json:"userId"`
	}
	if err := helpers.DecodeJSON(r, &payload); err != nil {
		helpers.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	token, err := c.Tokens.IssueToken(ctx, middleware.UserIDFromContext(r.Context()), payload.UserID)
	if err != nil {
		helpers.WriteError(w, err, "Unable to create token")
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]string{"token": token})
}
