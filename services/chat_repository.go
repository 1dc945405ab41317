package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"

	"lovematch_server/models"
	"lovematch_server/utils"
)

// DynamoChatRepository stores chats and their messages
type DynamoChatRepository struct {
	Dynamo        *DynamoService
	ChatsTable    string
	MessagesTable string
}

// CreateChat stores chat unless a chat with the same id exists (ErrConflict)
func (r *DynamoChatRepository) CreateChat(ctx context.Context, chat *models.ChatData) error {
	return r.Dynamo.PutItemIfNotExists(ctx, r.ChatsTable, "chatId", chat)
}

func (r *DynamoChatRepository) GetChat(ctx context.Context, chatID string) (*models.ChatData, error) {
	var chat models.ChatData
	if err := r.Dynamo.GetItem(ctx, r.ChatsTable, StringKey("chatId", chatID), &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// SetChannel records the chat SDK channel of a chat
func (r *DynamoChatRepository) SetChannel(ctx context.Context, chatID, channelCID string) error {
	return r.Dynamo.UpdateItem(ctx, r.ChatsTable, StringKey("chatId", chatID),
		"SET #cid = :cid",
		map[string]types.AttributeValue{":cid": &types.AttributeValueMemberS{Value: channelCID}},
		map[string]string{"#cid": "channelCid"},
		nil,
	)
}

// ListChatsForUser merges the chats where the user is either participant, newest first
func (r *DynamoChatRepository) ListChatsForUser(ctx context.Context, userID string) ([]models.ChatData, error) {
	seen := map[string]bool{}
	var chats []models.ChatData

	for _, idx := range []struct{ index, attr string }{
		{models.ChatUser1Index, "user1Id"},
		{models.ChatUser2Index, "user2Id"},
	} {
		items, err := r.Dynamo.QueryItemsWithIndex(ctx, r.ChatsTable, idx.index,
			"#uid = :uid",
			map[string]types.AttributeValue{":uid": &types.AttributeValueMemberS{Value: userID}},
			map[string]string{"#uid": idx.attr},
			0,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to list chats: %w", err)
		}

		var page []models.ChatData
		if err := attributevalue.UnmarshalListOfMaps(items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal chats: %w", err)
		}
		for _, c := range page {
			if seen[c.ChatID] {
				continue
			}
			seen[c.ChatID] = true
			chats = append(chats, c)
		}
	}

	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].CreatedAt > chats[j].CreatedAt
	})
	return chats, nil
}

func (r *DynamoChatRepository) PutMessage(ctx context.Context, message *models.Message) error {
	if message.SortKey == "" {
		message.SortKey = models.MessageSortKey(message.CreatedAt, message.MessageID)
	}
	return r.Dynamo.PutItem(ctx, r.MessagesTable, message)
}

// ListMessages returns up to limit messages of a chat, newest first
func (r *DynamoChatRepository) ListMessages(ctx context.Context, chatID string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = models.DefaultMessageLimit
	}

	items, err := r.Dynamo.QueryItemsWithOptions(ctx, r.MessagesTable,
		"#chatId = :chatId",
		map[string]types.AttributeValue{":chatId": &types.AttributeValueMemberS{Value: chatID}},
		map[string]string{"#chatId": "chatId"},
		int32(limit),
		true,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	messages := []models.Message{}
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}
	return messages, nil
}

// MarkMessagesRead marks the unread messages that readerID received in a chat as read.
// It returns how many messages were updated.
func (r *DynamoChatRepository) MarkMessagesRead(ctx context.Context, chatID, readerID string) (int, error) {
	items, err := r.Dynamo.QueryItemsWithFilters(ctx, r.MessagesTable,
		"#chatId = :chatId",
		"#isUnread = :true AND #senderId <> :reader",
		map[string]types.AttributeValue{
			":chatId": &types.AttributeValueMemberS{Value: chatID},
			":true":   &types.AttributeValueMemberBOOL{Value: true},
			":reader": &types.AttributeValueMemberS{Value: readerID},
		},
		map[string]string{
			"#chatId":   "chatId",
			"#isUnread": "isUnread",
			"#senderId": "senderId",
		},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch unread messages: %w", err)
	}

	updated := 0
	for _, item := range items {
		sortKey := utils.ExtractString(item, "sortKey")
		messageID := utils.ExtractString(item, "messageId")
		if sortKey == "" || !utils.ExtractBool(item, "isUnread") {
			log.Warn().Str("chatId", chatID).Str("messageId", messageID).Msg("skipping unreadable message")
			continue
		}

		key := map[string]types.AttributeValue{
			"chatId":  &types.AttributeValueMemberS{Value: chatID},
			"sortKey": &types.AttributeValueMemberS{Value: sortKey},
		}
		err := r.Dynamo.UpdateItem(ctx, r.MessagesTable, key,
			"SET #isUnread = :false",
			map[string]types.AttributeValue{":false": &types.AttributeValueMemberBOOL{Value: false}},
			map[string]string{"#isUnread": "isUnread"},
			nil,
		)
		if err != nil {
			log.Error().Err(err).Str("chatId", chatID).Str("messageId", messageID).Msg("failed to mark message as read")
			continue
		}
		updated++
	}
	return updated, nil
}
