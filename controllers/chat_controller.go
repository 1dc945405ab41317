package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"lovematch_server/helpers"
	"lovematch_server/middleware"
	"lovematch_server/models"
)

// ChatAPI is what ChatController needs from the chat service
type ChatAPI interface {
	ListChats(ctx context.Context, userID string) ([]models.ChatSummary, error)
	GetChat(ctx context.Context, userID, chatID string) (*models.ChatData, error)
	SendMessage(ctx context.Context, userID, chatID, content string) (*models.Message, error)
	Messages(ctx context.Context, userID, chatID string, limit int) ([]models.Message, error)
	MarkRead(ctx context.Context, userID, chatID string) (int, error)
}

// ChatController handles chats and their messages
type ChatController struct {
	Chats ChatAPI
}

// NewChatController creates a new instance of ChatController
func NewChatController(chats ChatAPI) *ChatController {
	return &ChatController{Chats: chats}
}

// ListChats returns the caller's chats
func (c *ChatController) ListChats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	chats, err := c.Chats.ListChats(ctx, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		helpers.WriteError(w, err, "Failed to fetch chats")
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, chats)
}

// GetChat returns one chat of the caller
func (c *ChatController) GetChat(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	chat, err := c.Chats.GetChat(ctx, middleware.UserIDFromContext(r.Context()), mux.Vars(r)["chatId"])
	if err != nil {
		helpers.WriteError(w, err, "Failed to fetch chat")
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, chat)
}

// CreateMessage sends a message to a chat
func (c *ChatController) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Content string `json:"content"`
	}
	if err := helpers.DecodeJSON(r, &payload); err != nil {
		helpers.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	msg, err := c.Chats.SendMessage(ctx, middleware.UserIDFromContext(r.Context()), mux.Vars(r)["chatId"], payload.Content)
	if err != nil {
		helpers.WriteError(w, err, "Failed to send message")
		return
	}
	helpers.WriteJSONResponse(w, http.StatusCreated, msg)
}

// GetMessages returns the newest messages of a chat, ?limit= caps the page
func (c *ChatController) GetMessages(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			helpers.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive number"})
			return
		}
		limit = n
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	messages, err := c.Chats.Messages(ctx, middleware.UserIDFromContext(r.Context()), mux.Vars(r)["chatId"], limit)
	if err != nil {
		helpers.WriteError(w, err, "Failed to fetch messages")
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, messages)
}

// MarkMessagesAsRead marks the messages the caller received as read
func (c *ChatController) MarkMessagesAsRead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	n, err := c.Chats.MarkRead(ctx, middleware.UserIDFromContext(r.Context()), mux.Vars(r)["chatId"])
	if err != nil {
		helpers.WriteError(w, err, "Failed to mark messages as read")
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": "Messages marked as read",
		"updated": n,
	})
}
