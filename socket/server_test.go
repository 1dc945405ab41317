package socket

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lovematch_server/mocks"
	"lovematch_server/services"
)

var _ services.Notifier = (*Server)(nil)

func newTestServer() (*Server, *mocks.AuthServiceMock, *mocks.ChatServiceMock) {
	auth := new(mocks.AuthServiceMock)
	chats := new(mocks.ChatServiceMock)
	return NewServer(auth, chats), auth, chats
}

func TestAuthenticate(t *testing.T) {
	s, auth, _ := newTestServer()
	auth.On("VerifyToken", "good").Return("u1", nil)
	auth.On("VerifyToken", "expired").Return("", errors.New("expired"))

	u, err := url.Parse("/socket.io/?EIO=3&transport=websocket&token=good")
	require.NoError(t, err)
	userID, err := s.authenticate(*u, http.Header{})
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	u, _ = url.Parse("/socket.io/?EIO=3")
	userID, err = s.authenticate(*u, http.Header{"Authorization": []string{"Bearer good"}})
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	_, err = s.authenticate(*u, http.Header{})
	assert.ErrorIs(t, err, errUnauthenticated)

	u, _ = url.Parse("/socket.io/?token=expired")
	_, err = s.authenticate(*u, http.Header{})
	assert.ErrorIs(t, err, errUnauthenticated)
}

func TestJoinRoomRequiresMembership(t *testing.T) {
	s, _, chats := newTestServer()
	chats.On("IsMember", mock.Anything, "u1", "c1").Return(true)
	chats.On("IsMember", mock.Anything, "u1", "c2").Return(false)

	room, ok := s.joinRoom("u1", " c1 ")
	assert.True(t, ok)
	assert.Equal(t, "chat:c1", room)

	_, ok = s.joinRoom("u1", "c2")
	assert.False(t, ok)

	_, ok = s.joinRoom("", "c1")
	assert.False(t, ok)

	_, ok = s.joinRoom("u1", "")
	assert.False(t, ok)
}

func TestNotifyWithoutConnections(t *testing.T) {
	s, _, _ := newTestServer()

	assert.NotPanics(t, func() {
		s.NotifyUser("u1", "match", map[string]string{"chatId": "c1"})
		s.NotifyChat("c1", "newMessage", map[string]string{"content": "hi"})
		s.DisconnectUser("u1")
	})
}

func TestDisconnectUserClosesLiveConnection(t *testing.T) {
	s, auth, _ := newTestServer()
	auth.On("VerifyToken", "good").Return("u1", nil)
	go func() { _ = s.Serve() }()
	defer s.Close()

	srv := httptest.NewServer(s)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/socket.io/?EIO=3&transport=websocket&token=good"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer ws.Close()

	require.Eventually(t, func() bool {
		return s.io.RoomLen(namespace, userRoom("u1")) == 1
	}, 3*time.Second, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		s.DisconnectUser("u1")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("DisconnectUser did not return")
	}

	assert.Equal(t, 0, s.io.RoomLen(namespace, userRoom("u1")))

	// the server stays usable for other users
	assert.NotPanics(t, func() {
		s.NotifyUser("u2", "match", map[string]string{"chatId": "c1"})
	})
}
