package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"lovematch_server/models"
)

// DynamoUserRepository stores profiles in the Users table
type DynamoUserRepository struct {
	Dynamo *DynamoService
	Table  string
}

func (r *DynamoUserRepository) key(userID string) map[string]types.AttributeValue {
	return StringKey("userId", userID)
}

func (r *DynamoUserRepository) GetUser(ctx context.Context, userID string) (*models.UserData, error) {
	var user models.UserData
	if err := r.Dynamo.GetItem(ctx, r.Table, r.key(userID), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser stores a new profile. An existing profile with the same id yields ErrConflict.
func (r *DynamoUserRepository) CreateUser(ctx context.Context, user *models.UserData) error {
	return r.Dynamo.PutItemIfNotExists(ctx, r.Table, "userId", user)
}

// UpdateUser sets the given string attributes and returns the updated profile
func (r *DynamoUserRepository) UpdateUser(ctx context.Context, userID string, fields map[string]string) (*models.UserData, error) {
	if len(fields) == 0 {
		return r.GetUser(ctx, userID)
	}

	attrs := make([]string, 0, len(fields))
	for k := range fields {
		attrs = append(attrs, k)
	}
	sort.Strings(attrs)

	values := make(map[string]types.AttributeValue, len(fields)+1)
	names := make(map[string]string, len(fields)+1)
	sets := make([]string, 0, len(fields)+1)
	for i, attr := range attrs {
		name := fmt.Sprintf("#f%d", i)
		placeholder := fmt.Sprintf(":f%d", i)
		names[name] = attr
		values[placeholder] = &types.AttributeValueMemberS{Value: fields[attr]}
		sets = append(sets, name+" = "+placeholder)
	}
	names["#updatedAt"] = "updatedAt"
	values[":updatedAt"] = &types.AttributeValueMemberS{Value: time.Now().UTC().Format(models.TimeLayout)}
	sets = append(sets, "#updatedAt = :updatedAt")

	var updated models.UserData
	err := r.Dynamo.UpdateItem(ctx, r.Table, r.key(userID), "SET "+strings.Join(sets, ", "), values, names, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// FindByUsername looks the username up on the username GSI. ErrNotFound when nobody has it.
func (r *DynamoUserRepository) FindByUsername(ctx context.Context, username string) (*models.UserData, error) {
	items, err := r.Dynamo.QueryItemsWithIndex(ctx, r.Table, models.UsernameIndex,
		"#username = :username",
		map[string]types.AttributeValue{":username": &types.AttributeValueMemberS{Value: username}},
		map[string]string{"#username": "username"},
		1,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}

	var user models.UserData
	if err := attributevalue.UnmarshalMap(items[0], &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &user, nil
}

// ListCandidates scans profiles matching the gender filters of q
func (r *DynamoUserRepository) ListCandidates(ctx context.Context, q CandidateQuery) ([]models.UserData, error) {
	filter, values, names := candidateFilter(q)

	items, err := r.Dynamo.ScanAll(ctx, r.Table, filter, values, names)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	var users []models.UserData
	if err := attributevalue.UnmarshalListOfMaps(items, &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal candidates: %w", err)
	}
	return users, nil
}

func candidateFilter(q CandidateQuery) (string, map[string]types.AttributeValue, map[string]string) {
	names := map[string]string{"#userId": "userId"}
	values := map[string]types.AttributeValue{
		":self": &types.AttributeValueMemberS{Value: q.ExcludeUserID},
	}
	clauses := []string{"#userId <> :self"}

	if q.Gender != "" && q.Gender != models.GenderAny {
		names["#gender"] = "gender"
		values[":gender"] = &types.AttributeValueMemberS{Value: q.Gender.String()}
		clauses = append(clauses, "#gender = :gender")
	}

	if len(q.AcceptedPreferences) > 0 {
		names["#genderPreference"] = "genderPreference"
		var or []string
		for i, pref := range q.AcceptedPreferences {
			placeholder := fmt.Sprintf(":pref%d", i)
			values[placeholder] = &types.AttributeValueMemberS{Value: pref.String()}
			or = append(or, "#genderPreference = "+placeholder)
		}
		clauses = append(clauses, "("+strings.Join(or, " OR ")+")")
	}

	return strings.Join(clauses, " AND "), values, names
}

func (r *DynamoUserRepository) AddToSet(ctx context.Context, userID, attribute, value string) error {
	if err := r.Dynamo.AddToStringSet(ctx, r.Table, r.key(userID), attribute, value); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to add to %s: %w", attribute, err)
	}
	return nil
}

func (r *DynamoUserRepository) RemoveFromSet(ctx context.Context, userID, attribute, value string) error {
	if err := r.Dynamo.DeleteFromStringSet(ctx, r.Table, r.key(userID), attribute, value); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to remove from %s: %w", attribute, err)
	}
	return nil
}
