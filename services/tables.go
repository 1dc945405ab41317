package services

import "lovematch_server/models"

// Tables holds the physical table names, prefixed per environment
type Tables struct {
	Users    string
	Accounts string
	Chats    string
	Messages string
}

// NewTables applies prefix to the model table names.
func NewTables(prefix string) Tables {
	return Tables{
		Users:    prefix + models.UsersTable,
		Accounts: prefix + models.AccountsTable,
		Chats:    prefix + models.ChatsTable,
		Messages: prefix + models.MessagesTable,
	}
}
