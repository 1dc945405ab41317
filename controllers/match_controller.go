package controllers

import (
	"context"
	"net/http"

	"lovematch_server/helpers"
	"lovematch_server/middleware"
	"lovematch_server/models"
)

// MatchAPI is what MatchController needs from the match service
type MatchAPI interface {
	Feed(ctx context.Context, userID string) ([]models.UserData, error)
	Like(ctx context.Context, userID, targetID string) (*models.SwipeResult, error)
	Dislike(ctx context.Context, userID, targetID string) (*models.SwipeResult, error)
	Matches(ctx context.Context, userID string) ([]models.UserData, error)
}

// MatchController handles the feed, swipes and matches
type MatchController struct {
	Matches MatchAPI
}

// NewMatchController creates a new instance of MatchController
func NewMatchController(matches MatchAPI) *MatchController {
	return &MatchController{Matches: matches}
}

type swipeRequest struct {
	TargetUserID string `json:"targetUserId"`
}

// GetFeed returns the profiles the caller can swipe on
func (c *MatchController) GetFeed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	cards, err := c.Matches.Feed(ctx, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		helpers.WriteError(w, err, "Failed to build feed")
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, cards)
}

// Like records a right swipe
func (c *MatchController) Like(w http.ResponseWriter, r *http.Request) {
	c.swipe(w, r, c.Matches.Like)
}

// Dislike records a left swipe
func (c *MatchController) Dislike(w http.ResponseWriter, r *http.Request) {
	c.swipe(w, r, c.Matches.Dislike)
}

func (c *MatchController) swipe(w http.ResponseWriter, r *http.Request, do func(context.Context, string, string) (*models.SwipeResult, error)) {
	var payload swipeRequest
	if err := helpers.DecodeJSON(r, &payload); err != nil {
		helpers.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := do(ctx, middleware.UserIDFromContext(r.Context()), payload.TargetUserID)
	if err != nil {
		helpers.WriteError(w, err, "Failed to record swipe")
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, result)
}

// GetMatches returns the profiles the caller matched with
func (c *MatchController) GetMatches(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	profiles, err := c.Matches.Matches(ctx, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		helpers.WriteError(w, err, "Failed to fetch matches")
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, profiles)
}
