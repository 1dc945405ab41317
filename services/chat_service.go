package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"lovematch_server/events"
	"lovematch_server/models"
)

const maxMessageLimit = 200

// ChatService serves the chat list and the messages of matched users
type ChatService struct {
	Chats    ChatRepository
	Events   EventPublisher
	Notifier Notifier
	Now      func() time.Time
}

func (s *ChatService) now() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().UTC().Format(models.TimeLayout)
}

// ListChats returns the user's chats with the last message and unread flag
func (s *ChatService) ListChats(ctx context.Context, userID string) ([]models.ChatSummary, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	chats, err := s.Chats.ListChatsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.ChatSummary, 0, len(chats))
	for _, chat := range chats {
		summary := models.ChatSummary{ChatData: chat, Partner: chat.Partner(userID)}

		last, err := s.Chats.ListMessages(ctx, chat.ChatID, 1)
		if err != nil {
			log.Warn().Err(err).Str("chatId", chat.ChatID).Msg("failed to fetch last message")
		} else if len(last) > 0 {
			summary.LastMessage = last[0].Content
			summary.IsUnread = last[0].IsUnread && last[0].SenderID != userID
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetChat returns a chat the user takes part in
func (s *ChatService) GetChat(ctx context.Context, userID, chatID string) (*models.ChatData, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if chatID == "" {
		return nil, invalid("chatId is required")
	}
	chat, err := s.Chats.GetChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasMember(userID) {
		return nil, ErrForbidden
	}
	return chat, nil
}

// IsMember reports whether userID takes part in chatID
func (s *ChatService) IsMember(ctx context.Context, userID, chatID string) bool {
	_, err := s.GetChat(ctx, userID, chatID)
	return err == nil
}

// SendMessage stores a message from userID and pushes it to the chat room
func (s *ChatService) SendMessage(ctx context.Context, userID, chatID, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("content is required")
	}
	if _, err := s.GetChat(ctx, userID, chatID); err != nil {
		return nil, err
	}

	createdAt := s.now()
	messageID := uuid.NewString()
	msg := &models.Message{
		ChatID:    chatID,
		SortKey:   models.MessageSortKey(createdAt, messageID),
		MessageID: messageID,
		SenderID:  userID,
		Content:   content,
		IsUnread:  true,
		CreatedAt: createdAt,
	}
	if err := s.Chats.PutMessage(ctx, msg); err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		s.Notifier.NotifyChat(chatID, models.SocketEventNewMessage, msg)
	}
	if s.Events != nil {
		if err := events.PublishMessage(ctx, s.Events, *msg); err != nil {
			log.Error().Err(err).Str("chatId", chatID).Msg("failed to publish message event")
		}
	}
	return msg, nil
}

// Messages returns the newest messages of a chat. limit <= 0 means the default.
func (s *ChatService) Messages(ctx context.Context, userID, chatID string, limit int) ([]models.Message, error) {
	if _, err := s.GetChat(ctx, userID, chatID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = models.DefaultMessageLimit
	}
	if limit > maxMessageLimit {
		limit = maxMessageLimit
	}
	return s.Chats.ListMessages(ctx, chatID, limit)
}

// MarkRead marks the messages userID received in chatID as read
func (s *ChatService) MarkRead(ctx context.Context, userID, chatID string) (int, error) {
	if _, err := s.GetChat(ctx, userID, chatID); err != nil {
		return 0, err
	}
	return s.Chats.MarkMessagesRead(ctx, chatID, userID)
}
