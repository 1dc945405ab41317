package services

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"

	"lovematch_server/metrics"
)

const tokenCacheSize = 4096

// ChatTokenService hands out chat SDK tokens, reusing a user's token until shortly before it expires
type ChatTokenService struct {
	Provider ChatProvider
	cache    *expirable.LRU[string, string]
}

// NewChatTokenService caches tokens for 90% of tokenTTL. A zero tokenTTL caches without expiry.
func NewChatTokenService(provider ChatProvider, tokenTTL time.Duration) *ChatTokenService {
	return &ChatTokenService{
		Provider: provider,
		cache:    expirable.NewLRU[string, string](tokenCacheSize, nil, tokenTTL*9/10),
	}
}

// IssueToken is the token endpoint: the caller must be authenticated and may only ask for itself.
func (s *ChatTokenService) IssueToken(ctx context.Context, callerID, userID string) (string, error) {
	if callerID == "" {
		return "", ErrUnauthenticated
	}
	if userID == "" {
		return "", invalid("The function must be called with a 'userId' argument.")
	}
	if callerID != userID {
		return "", ErrForbidden
	}
	return s.TokenFor(userID)
}

// TokenFor returns a cached token or mints a new one
func (s *ChatTokenService) TokenFor(userID string) (string, error) {
	if token, ok := s.cache.Get(userID); ok {
		metrics.IncChatToken("cached")
		return token, nil
	}

	token, err := s.Provider.Token(userID)
	if err != nil {
		log.Error().Err(err).Str("userId", userID).Msg("unable to create chat token")
		return "", err
	}
	s.cache.Add(userID, token)
	metrics.IncChatToken("minted")
	log.Info().Str("userId", userID).Msg("created chat token")
	return token, nil
}

// Forget drops the cached token of a user
func (s *ChatTokenService) Forget(userID string) {
	s.cache.Remove(userID)
}
