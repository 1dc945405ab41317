package socket

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/zerolog/log"

	"lovematch_server/metrics"
	"lovematch_server/middleware"
)

const namespace = "/"

var errUnauthenticated = errors.New("unauthenticated")

// ChatMembership tells whether a user may listen to a chat room
type ChatMembership interface {
	IsMember(ctx context.Context, userID, chatID string) bool
}

// Server is the Socket.IO endpoint. Every connection joins its user room on connect
// and chat rooms on "join".
type Server struct {
	io    *socketio.Server
	auth  middleware.TokenVerifier
	chats ChatMembership
}

func userRoom(userID string) string { return "user:" + userID }
func chatRoom(chatID string) string { return "chat:" + chatID }

// NewServer initializes the Socket.IO server and its event handlers
func NewServer(auth middleware.TokenVerifier, chats ChatMembership) *Server {
	s := &Server{
		io:    socketio.NewServer(nil),
		auth:  auth,
		chats: chats,
	}

	s.io.OnConnect(namespace, func(c socketio.Conn) error {
		userID, err := s.authenticate(c.URL(), c.RemoteHeader())
		if err != nil {
			log.Warn().Str("socketId", c.ID()).Msg("socket rejected: no valid session")
			return err
		}
		c.SetContext(userID)
		c.Join(userRoom(userID))
		metrics.IncSocketActive()
		log.Info().Str("socketId", c.ID()).Str("userId", userID).Msg("socket connected")
		return nil
	})

	s.io.OnEvent(namespace, "join", func(c socketio.Conn, chatID string) {
		userID, _ := c.Context().(string)
		room, ok := s.joinRoom(userID, chatID)
		if !ok {
			log.Warn().Str("userId", userID).Str("chatId", chatID).Msg("join refused")
			c.Emit("error", "not a member of this chat")
			return
		}
		c.Join(room)
		log.Debug().Str("userId", userID).Str("chatId", chatID).Msg("joined chat room")
	})

	s.io.OnEvent(namespace, "leave", func(c socketio.Conn, chatID string) {
		c.Leave(chatRoom(chatID))
	})

	s.io.OnError(namespace, func(c socketio.Conn, err error) {
		log.Error().Err(err).Msg("socket error")
	})

	s.io.OnDisconnect(namespace, func(c socketio.Conn, reason string) {
		userID, _ := c.Context().(string)
		if userID != "" {
			metrics.DecSocketActive()
		}
		log.Info().Str("socketId", c.ID()).Str("userId", userID).Str("reason", reason).Msg("socket disconnected")
	})

	return s
}

// authenticate reads the session token from the "token" query parameter or the Authorization header
func (s *Server) authenticate(u url.URL, header http.Header) (string, error) {
	token := u.Query().Get("token")
	if token == "" {
		token = middleware.BearerToken(header.Get("Authorization"))
	}
	if token == "" {
		return "", errUnauthenticated
	}
	userID, err := s.auth.VerifyToken(token)
	if err != nil {
		return "", errUnauthenticated
	}
	return userID, nil
}

// joinRoom returns the chat room userID may join
func (s *Server) joinRoom(userID, chatID string) (string, bool) {
	chatID = strings.TrimSpace(chatID)
	if userID == "" || chatID == "" {
		return "", false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if !s.chats.IsMember(ctx, userID, chatID) {
		return "", false
	}
	return chatRoom(chatID), true
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.io.ServeHTTP(w, r)
}

// Serve runs the Socket.IO event loop until Close
func (s *Server) Serve() error {
	return s.io.Serve()
}

func (s *Server) Close() error {
	return s.io.Close()
}

// NotifyUser emits event to every connection of userID
func (s *Server) NotifyUser(userID, event string, payload any) {
	s.io.BroadcastToRoom(namespace, userRoom(userID), event, payload)
}

// NotifyChat emits event to every connection that joined chatID
func (s *Server) NotifyChat(chatID, event string, payload any) {
	s.io.BroadcastToRoom(namespace, chatRoom(chatID), event, payload)
}

// DisconnectUser closes every connection of userID. ForEach holds the room lock
// while it runs, so the connections are closed after it returns.
func (s *Server) DisconnectUser(userID string) {
	var conns []socketio.Conn
	s.io.ForEach(namespace, userRoom(userID), func(c socketio.Conn) {
		conns = append(conns, c)
	})
	for _, c := range conns {
		if err := c.Close(); err != nil {
			log.Warn().Err(err).Str("userId", userID).Msg("failed to close socket")
		}
	}
}
