package services

import (
	"context"
	"sort"
	"sync"

	"lovematch_server/models"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]models.UserData
}

func newMemoryUsers(users ...models.UserData) *memoryUsers {
	m := &memoryUsers{users: map[string]models.UserData{}}
	for _, u := range users {
		m.users[u.UserID] = u
	}
	return m
}

func copyUser(u models.UserData) *models.UserData {
	u.SwipesLeft = append([]string(nil), u.SwipesLeft...)
	u.SwipesRight = append([]string(nil), u.SwipesRight...)
	u.Matches = append([]string(nil), u.Matches...)
	return &u
}

func (m *memoryUsers) GetUser(_ context.Context, userID string) (*models.UserData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (m *memoryUsers) CreateUser(_ context.Context, user *models.UserData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.UserID]; ok {
		return ErrConflict
	}
	m.users[user.UserID] = *copyUser(*user)
	return nil
}

func (m *memoryUsers) UpdateUser(_ context.Context, userID string, fields map[string]string) (*models.UserData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v
		case "username":
			u.Username = v
		case "bio":
			u.Bio = v
		case "imageUrl":
			u.ImageURL = v
		case "gender":
			u.Gender = v
		case "genderPreference":
			u.GenderPreference = v
		}
	}
	m.users[userID] = u
	return copyUser(u), nil
}

func (m *memoryUsers) FindByUsername(_ context.Context, username string) (*models.UserData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

// ListCandidates ignores the query, so the feed tests exercise the in-process filter
func (m *memoryUsers) ListCandidates(_ context.Context, _ CandidateQuery) ([]models.UserData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.UserData
	for _, u := range m.users {
		out = append(out, *copyUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (m *memoryUsers) AddToSet(_ context.Context, userID, attribute, value string) error {
	return m.mutateSet(userID, attribute, func(set []string) []string {
		for _, v := range set {
			if v == value {
				return set
			}
		}
		return append(set, value)
	})
}

func (m *memoryUsers) RemoveFromSet(_ context.Context, userID, attribute, value string) error {
	return m.mutateSet(userID, attribute, func(set []string) []string {
		out := set[:0]
		for _, v := range set {
			if v != value {
				out = append(out, v)
			}
		}
		return out
	})
}

func (m *memoryUsers) mutateSet(userID, attribute string, f func([]string) []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	switch attribute {
	case models.AttrSwipesLeft:
		u.SwipesLeft = f(u.SwipesLeft)
	case models.AttrSwipesRight:
		u.SwipesRight = f(u.SwipesRight)
	case models.AttrMatches:
		u.Matches = f(u.Matches)
	}
	m.users[userID] = u
	return nil
}

func (m *memoryUsers) get(userID string) models.UserData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[userID]
}

type memoryAccounts struct {
	mu       sync.Mutex
	accounts map[string]models.Account
}

func newMemoryAccounts() *memoryAccounts {
	return &memoryAccounts{accounts: map[string]models.Account{}}
}

func (m *memoryAccounts) GetAccount(_ context.Context, email string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *memoryAccounts) CreateAccount(_ context.Context, account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.Email]; ok {
		return ErrEmailTaken
	}
	m.accounts[account.Email] = *account
	return nil
}

func (m *memoryAccounts) DeleteAccount(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.accounts, email)
	return nil
}

type memoryChats struct {
	mu       sync.Mutex
	chats    map[string]models.ChatData
	messages map[string][]models.Message
}

func newMemoryChats() *memoryChats {
	return &memoryChats{chats: map[string]models.ChatData{}, messages: map[string][]models.Message{}}
}

func (m *memoryChats) CreateChat(_ context.Context, chat *models.ChatData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.chats[chat.ChatID]; ok {
		return ErrConflict
	}
	m.chats[chat.ChatID] = *chat
	return nil
}

func (m *memoryChats) GetChat(_ context.Context, chatID string) (*models.ChatData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.chats[chatID]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *memoryChats) SetChannel(_ context.Context, chatID, channelCID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.chats[chatID]
	if !ok {
		return ErrNotFound
	}
	c.ChannelCID = channelCID
	m.chats[chatID] = c
	return nil
}

func (m *memoryChats) ListChatsForUser(_ context.Context, userID string) ([]models.ChatData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ChatData
	for _, c := range m.chats {
		if c.HasMember(userID) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (m *memoryChats) PutMessage(_ context.Context, message *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[message.ChatID] = append(m.messages[message.ChatID], *message)
	return nil
}

func (m *memoryChats) ListMessages(_ context.Context, chatID string, limit int) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := append([]models.Message(nil), m.messages[chatID]...)
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].SortKey > msgs[j].SortKey })
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func (m *memoryChats) MarkMessagesRead(_ context.Context, chatID, readerID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for i, msg := range m.messages[chatID] {
		if msg.IsUnread && msg.SenderID != readerID {
			m.messages[chatID][i].IsUnread = false
			n++
		}
	}
	return n, nil
}

type fakeChatProvider struct {
	mu         sync.Mutex
	configured bool
	tokens     int
	upserts    []models.ChatUser
	channels   []string
	channelErr error
}

func (f *fakeChatProvider) Configured() bool { return f.configured }

func (f *fakeChatProvider) Token(userID string) (string, error) {
	if !f.configured {
		return "", ErrChatNotConfigured
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens++
	return "chat-token-" + userID, nil
}

func (f *fakeChatProvider) UpsertUser(_ context.Context, user models.ChatUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts = append(f.upserts, user)
	return nil
}

func (f *fakeChatProvider) CreateChannel(_ context.Context, chat *models.ChatData, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.channelErr != nil {
		return "", f.channelErr
	}
	f.channels = append(f.channels, chat.ChatID)
	return ChannelType + ":" + chat.ChatID, nil
}

type published struct {
	routingKey string
	event      any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{routingKey, event})
	return nil
}

type notification struct {
	target, event string
}

type recordingNotifier struct {
	mu           sync.Mutex
	users        []notification
	chats        []notification
	disconnected []string
}

func (n *recordingNotifier) NotifyUser(userID, event string, _ any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.users = append(n.users, notification{userID, event})
}

func (n *recordingNotifier) NotifyChat(chatID, event string, _ any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.chats = append(n.chats, notification{chatID, event})
}

func (n *recordingNotifier) DisconnectUser(userID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.disconnected = append(n.disconnected, userID)
}
