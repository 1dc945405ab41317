package models

// Account holds login credentials. The profile lives in UsersTable under UserID.
type Account struct {
	Email        string `dynamodbav:"email" json:"email"` // Partition Key
	UserID       string `dynamodbav:"userId" json:"userId"`
	PasswordHash string `dynamodbav:"passwordHash" json:"-"`
	CreatedAt    string `dynamodbav:"createdAt" json:"createdAt"`
}

// Session is returned by signup and login
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt string    `json:"expiresAt"`
	User      *UserData `json:"user"`
	ChatToken string    `json:"chatToken,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// AccountsTable is the DynamoDB table name for accounts
const AccountsTable = "Accounts"
