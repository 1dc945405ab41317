package services

import (
	"context"
	"errors"

	"lovematch_server/models"
)

// DynamoAccountRepository stores credentials in the Accounts table, keyed by email
type DynamoAccountRepository struct {
	Dynamo *DynamoService
	Table  string
}

func (r *DynamoAccountRepository) GetAccount(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	if err := r.Dynamo.GetItem(ctx, r.Table, StringKey("email", email), &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// CreateAccount fails with ErrEmailTaken when the email is registered already
func (r *DynamoAccountRepository) CreateAccount(ctx context.Context, account *models.Account) error {
	err := r.Dynamo.PutItemIfNotExists(ctx, r.Table, "email", account)
	if errors.Is(err, ErrConflict) {
		return ErrEmailTaken
	}
	return err
}

func (r *DynamoAccountRepository) DeleteAccount(ctx context.Context, email string) error {
	return r.Dynamo.DeleteItem(ctx, r.Table, StringKey("email", email))
}
