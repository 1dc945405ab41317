package models

type Message struct {
	ChatID    string `dynamodbav:"chatId" json:"chatId"`   // Partition Key
	SortKey   string `dynamodbav:"sortKey" json:"-"`       // Sort Key: createdAt#messageId
	MessageID string `dynamodbav:"messageId" json:"messageId"`
	SenderID  string `dynamodbav:"senderId" json:"senderId"`
	Content   string `dynamodbav:"content" json:"content"`
	IsUnread  bool   `dynamodbav:"isUnread" json:"isUnread"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// MessageSortKey orders messages by time inside a chat partition.
func MessageSortKey(createdAt, messageID string) string {
	return createdAt + "#" + messageID
}

// MessagesTable is the DynamoDB table name for chat messages
const MessagesTable = "Messages"

// DefaultMessageLimit is used when a client does not pass a limit
const DefaultMessageLimit = 50
