package models

// ChatUser is a participant snapshot taken when the chat is created
type ChatUser struct {
	UserID   string `dynamodbav:"userId" json:"userId"`
	Name     string `dynamodbav:"name,omitempty" json:"name,omitempty"`
	ImageURL string `dynamodbav:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

// ChatData is the record created for a mutual match
type ChatData struct {
	ChatID     string   `dynamodbav:"chatId" json:"chatId"`   // Partition Key
	User1      ChatUser `dynamodbav:"user1" json:"user1"`     // The user whose like completed the match
	User2      ChatUser `dynamodbav:"user2" json:"user2"`     // The user who liked first
	User1ID    string   `dynamodbav:"user1Id" json:"-"`       // GSI user1Id-index
	User2ID    string   `dynamodbav:"user2Id" json:"-"`       // GSI user2Id-index
	ChannelCID string   `dynamodbav:"channelCid,omitempty" json:"channelCid,omitempty"`
	CreatedAt  string   `dynamodbav:"createdAt" json:"createdAt"`
}

// HasMember reports whether userID is one of the two participants.
func (c *ChatData) HasMember(userID string) bool {
	return c.User1.UserID == userID || c.User2.UserID == userID
}

// Partner returns the participant that is not userID.
func (c *ChatData) Partner(userID string) ChatUser {
	if c.User1.UserID == userID {
		return c.User2
	}
	return c.User1
}

// ChatSummary is a chat list entry
type ChatSummary struct {
	ChatData
	Partner     ChatUser `json:"partner"`
	LastMessage string   `json:"lastMessage,omitempty"`
	IsUnread    bool     `json:"isUnread"`
}

// ChatsTable is the DynamoDB table name for chats
const ChatsTable = "Chats"

// GSIs on ChatsTable
const (
	ChatUser1Index = "user1Id-index"
	ChatUser2Index = "user2Id-index"
)
