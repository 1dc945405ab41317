package controllers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"lovematch_server/helpers"
	"lovematch_server/middleware"
	"lovematch_server/models"
)

// AuthAPI is what AuthController needs from the auth service
type AuthAPI interface {
	Signup(ctx context.Context, username, email, password string) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Logout(ctx context.Context, userID string) error
}

// AuthController handles signup, login and logout
type AuthController struct {
	Auth AuthAPI
}

// NewAuthController creates a new instance of AuthController
func NewAuthController(auth AuthAPI) *AuthController {
	return &AuthController{Auth: auth}
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates the account and profile and opens a session
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var payload credentials
	if err := helpers.DecodeJSON(r, &payload); err != nil {
		helpers.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	session, err := c.Auth.Signup(ctx, payload.Username, payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("signup rejected")
		helpers.WriteError(w, err, "Signup failed")
		return
	}
	helpers.WriteJSONResponse(w, http.StatusCreated, session)
}

// Login opens a session for valid credentials
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var payload credentials
	if err := helpers.DecodeJSON(r, &payload); err != nil {
		helpers.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	session, err := c.Auth.Login(ctx, payload.Email, payload.Password)
	if err != nil {
		helpers.WriteError(w, err, "Login failed")
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, session)
}

// Logout ends the realtime and chat state of the caller
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	if err := c.Auth.Logout(ctx, middleware.UserIDFromContext(r.Context())); err != nil {
		helpers.WriteError(w, err, "Logout failed")
		return
	}
	helpers.WriteMessage(w, http.StatusOK, "Logged out")
}
