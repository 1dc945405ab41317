package services

import (
	"context"
	"fmt"
	"time"

	stream "github.com/GetStream/stream-chat-go/v6"
	"github.com/rs/zerolog/log"

	"lovematch_server/models"
)

// ChannelType is the Stream channel type used for one-to-one chats
const ChannelType = "messaging"

// ChatProvider is the chat SDK backend: tokens, users and channels
type ChatProvider interface {
	Configured() bool
	Token(userID string) (string, error)
	UpsertUser(ctx context.Context, user models.ChatUser) error
	CreateChannel(ctx context.Context, chat *models.ChatData, createdBy string) (string, error)
}

// NewChatProvider returns the Stream provider, or a no-op provider when the credentials are missing.
func NewChatProvider(apiKey, apiSecret string, tokenTTL time.Duration) (ChatProvider, error) {
	if apiKey == "" || apiSecret == "" {
		log.Warn().Msg("stream credentials missing, chat provider disabled")
		return noopChatProvider{}, nil
	}
	client, err := stream.NewClient(apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream client: %w", err)
	}
	return &StreamService{Client: client, TokenTTL: tokenTTL}, nil
}

// StreamService talks to Stream through the server-side SDK
type StreamService struct {
	Client   *stream.Client
	TokenTTL time.Duration
}

func (s *StreamService) Configured() bool {
	return true
}

// Token mints a user token. A zero TokenTTL mints a token without expiry.
func (s *StreamService) Token(userID string) (string, error) {
	var expire time.Time
	if s.TokenTTL > 0 {
		expire = time.Now().Add(s.TokenTTL)
	}
	token, err := s.Client.CreateToken(userID, expire)
	if err != nil {
		return "", fmt.Errorf("unable to create stream token for user %s: %w", userID, err)
	}
	return token, nil
}

func (s *StreamService) UpsertUser(ctx context.Context, user models.ChatUser) error {
	_, err := s.Client.UpsertUser(ctx, &stream.User{
		ID:    user.UserID,
		Name:  user.Name,
		Image: user.ImageURL,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert stream user %s: %w", user.UserID, err)
	}
	return nil
}

// CreateChannel creates the messaging channel of a chat with both members and returns its cid
func (s *StreamService) CreateChannel(ctx context.Context, chat *models.ChatData, createdBy string) (string, error) {
	resp, err := s.Client.CreateChannel(ctx, ChannelType, chat.ChatID, createdBy, &stream.ChannelRequest{
		Members: []string{chat.User1.UserID, chat.User2.UserID},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create stream channel %s: %w", chat.ChatID, err)
	}
	if resp.Channel == nil {
		return ChannelType + ":" + chat.ChatID, nil
	}
	return resp.Channel.CID, nil
}

type noopChatProvider struct{}

func (noopChatProvider) Configured() bool {
	return false
}

func (noopChatProvider) Token(string) (string, error) {
	return "", ErrChatNotConfigured
}

func (noopChatProvider) UpsertUser(_ context.Context, user models.ChatUser) error {
	log.Debug().Str("userId", user.UserID).Msg("chat provider disabled, user not synced")
	return nil
}

func (noopChatProvider) CreateChannel(_ context.Context, chat *models.ChatData, _ string) (string, error) {
	log.Info().Str("chatId", chat.ChatID).Msg("chat provider disabled, channel not created")
	return "", nil
}
