package services

import (
	"context"

	"lovematch_server/models"
)

// CandidateQuery describes the server-side part of the feed filter
type CandidateQuery struct {
	ExcludeUserID string
	// Gender restricts candidates to one gender. ANY means no restriction.
	Gender models.Gender
	// AcceptedPreferences lists the genderPreference values a candidate may have.
	AcceptedPreferences []models.Gender
}

type UserRepository interface {
	GetUser(ctx context.Context, userID string) (*models.UserData, error)
	CreateUser(ctx context.Context, user *models.UserData) error
	UpdateUser(ctx context.Context, userID string, fields map[string]string) (*models.UserData, error)
	FindByUsername(ctx context.Context, username string) (*models.UserData, error)
	ListCandidates(ctx context.Context, q CandidateQuery) ([]models.UserData, error)
	AddToSet(ctx context.Context, userID, attribute, value string) error
	RemoveFromSet(ctx context.Context, userID, attribute, value string) error
}

type AccountRepository interface {
	GetAccount(ctx context.Context, email string) (*models.Account, error)
	CreateAccount(ctx context.Context, account *models.Account) error
	DeleteAccount(ctx context.Context, email string) error
}

type ChatRepository interface {
	CreateChat(ctx context.Context, chat *models.ChatData) error
	GetChat(ctx context.Context, chatID string) (*models.ChatData, error)
	SetChannel(ctx context.Context, chatID, channelCID string) error
	ListChatsForUser(ctx context.Context, userID string) ([]models.ChatData, error)
	PutMessage(ctx context.Context, message *models.Message) error
	ListMessages(ctx context.Context, chatID string, limit int) ([]models.Message, error)
	MarkMessagesRead(ctx context.Context, chatID, readerID string) (int, error)
}
