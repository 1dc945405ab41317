package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"lovematch_server/models"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Signup(ctx context.Context, username, email, password string) (*models.Session, error) {
	args := m.Called(ctx, username, email, password)
	var session *models.Session
	if val := args.Get(0); val != nil {
		session = val.(*models.Session)
	}
	return session, args.Error(1)
}

func (m *AuthServiceMock) Login(ctx context.Context, email, password string) (*models.Session, error) {
	args := m.Called(ctx, email, password)
	var session *models.Session
	if val := args.Get(0); val != nil {
		session = val.(*models.Session)
	}
	return session, args.Error(1)
}

func (m *AuthServiceMock) Logout(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *AuthServiceMock) VerifyToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

type ProfileServiceMock struct {
	mock.Mock
}

func (m *ProfileServiceMock) GetProfile(ctx context.Context, userID string) (*models.UserData, error) {
	args := m.Called(ctx, userID)
	var user *models.UserData
	if val := args.Get(0); val != nil {
		user = val.(*models.UserData)
	}
	return user, args.Error(1)
}

func (m *ProfileServiceMock) GetPublicProfile(ctx context.Context, userID string) (*models.UserData, error) {
	args := m.Called(ctx, userID)
	var user *models.UserData
	if val := args.Get(0); val != nil {
		user = val.(*models.UserData)
	}
	return user, args.Error(1)
}

func (m *ProfileServiceMock) CreateOrUpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.UserData, string, error) {
	args := m.Called(ctx, userID, upd)
	var user *models.UserData
	if val := args.Get(0); val != nil {
		user = val.(*models.UserData)
	}
	return user, args.String(1), args.Error(2)
}

func (m *ProfileServiceMock) UploadProfileImage(ctx context.Context, userID, contentType string, body io.ReadSeeker) (*models.UserData, error) {
	args := m.Called(ctx, userID, contentType, body)
	var user *models.UserData
	if val := args.Get(0); val != nil {
		user = val.(*models.UserData)
	}
	return user, args.Error(1)
}

func (m *ProfileServiceMock) PresignUpload(ctx context.Context, fileName, fileType string) (string, string, error) {
	args := m.Called(ctx, fileName, fileType)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *ProfileServiceMock) PresignRead(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

type MatchServiceMock struct {
	mock.Mock
}

func (m *MatchServiceMock) Feed(ctx context.Context, userID string) ([]models.UserData, error) {
	args := m.Called(ctx, userID)
	var list []models.UserData
	if val := args.Get(0); val != nil {
		list = val.([]models.UserData)
	}
	return list, args.Error(1)
}

func (m *MatchServiceMock) Like(ctx context.Context, userID, targetID string) (*models.SwipeResult, error) {
	args := m.Called(ctx, userID, targetID)
	var result *models.SwipeResult
	if val := args.Get(0); val != nil {
		result = val.(*models.SwipeResult)
	}
	return result, args.Error(1)
}

func (m *MatchServiceMock) Dislike(ctx context.Context, userID, targetID string) (*models.SwipeResult, error) {
	args := m.Called(ctx, userID, targetID)
	var result *models.SwipeResult
	if val := args.Get(0); val != nil {
		result = val.(*models.SwipeResult)
	}
	return result, args.Error(1)
}

func (m *MatchServiceMock) Matches(ctx context.Context, userID string) ([]models.UserData, error) {
	args := m.Called(ctx, userID)
	var list []models.UserData
	if val := args.Get(0); val != nil {
		list = val.([]models.UserData)
	}
	return list, args.Error(1)
}

type ChatServiceMock struct {
	mock.Mock
}

func (m *ChatServiceMock) ListChats(ctx context.Context, userID string) ([]models.ChatSummary, error) {
	args := m.Called(ctx, userID)
	var list []models.ChatSummary
	if val := args.Get(0); val != nil {
		list = val.([]models.ChatSummary)
	}
	return list, args.Error(1)
}

func (m *ChatServiceMock) GetChat(ctx context.Context, userID, chatID string) (*models.ChatData, error) {
	args := m.Called(ctx, userID, chatID)
	var chat *models.ChatData
	if val := args.Get(0); val != nil {
		chat = val.(*models.ChatData)
	}
	return chat, args.Error(1)
}

func (m *ChatServiceMock) SendMessage(ctx context.Context, userID, chatID, content string) (*models.Message, error) {
	args := m.Called(ctx, userID, chatID, content)
	var msg *models.Message
	if val := args.Get(0); val != nil {
		msg = val.(*models.Message)
	}
	return msg, args.Error(1)
}

func (m *ChatServiceMock) Messages(ctx context.Context, userID, chatID string, limit int) ([]models.Message, error) {
	args := m.Called(ctx, userID, chatID, limit)
	var list []models.Message
	if val := args.Get(0); val != nil {
		list = val.([]models.Message)
	}
	return list, args.Error(1)
}

func (m *ChatServiceMock) MarkRead(ctx context.Context, userID, chatID string) (int, error) {
	args := m.Called(ctx, userID, chatID)
	return args.Int(0), args.Error(1)
}

func (m *ChatServiceMock) IsMember(ctx context.Context, userID, chatID string) bool {
	args := m.Called(ctx, userID, chatID)
	return args.Bool(0)
}

type ChatTokenServiceMock struct {
	mock.Mock
}

func (m *ChatTokenServiceMock) IssueToken(ctx context.Context, callerID, userID string) (string, error) {
	args := m.Called(ctx, callerID, userID)
	return args.String(0), args.Error(1)
}
