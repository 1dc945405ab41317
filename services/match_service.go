package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"lovematch_server/events"
	"lovematch_server/metrics"
	"lovematch_server/models"
)

// Swipe outcomes, as shown to the user
const (
	MsgMatch          = "Match!"
	MsgLiked          = "Liked"
	MsgDisliked       = "Disliked"
	MsgAlreadyMatched = "Already matched"
)

var chatNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("lovematch:chat"))

// ChatIDFor is the chat id of a pair of users, the same whichever of them asks
func ChatIDFor(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return uuid.NewSHA1(chatNamespace, []byte(a+"|"+b)).String()
}

// MatchService owns the swipe feed, swipes and match detection
type MatchService struct {
	Users    UserRepository
	Chats    ChatRepository
	Chat     ChatProvider
	Events   EventPublisher
	Notifier Notifier
	Now      func() time.Time
}

func (s *MatchService) now() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().UTC().Format(models.TimeLayout)
}

// Feed returns the profiles userID can still swipe on
func (s *MatchService) Feed(ctx context.Context, userID string) ([]models.UserData, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	viewer, err := s.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.Users.ListCandidates(ctx, CandidateQueryFor(viewer))
	if err != nil {
		return nil, err
	}

	cards := FilterCandidates(viewer, candidates)
	log.Debug().Str("userId", userID).Int("candidates", len(candidates)).Int("cards", len(cards)).Msg("feed built")
	return cards, nil
}

// CandidateQueryFor derives the stored-profile filter from the viewer's gender and preference.
// A missing gender or preference counts as ANY.
func CandidateQueryFor(viewer *models.UserData) CandidateQuery {
	gender := models.ParseGender(viewer.Gender)
	preference := models.ParseGender(viewer.GenderPreference)

	accepted := []models.Gender{gender}
	if gender != models.GenderAny {
		accepted = append(accepted, models.GenderAny)
	}
	return CandidateQuery{
		ExcludeUserID:       viewer.UserID,
		Gender:              preference,
		AcceptedPreferences: accepted,
	}
}

// Eligible reports whether candidate belongs in viewer's feed, ignoring swipe history
func Eligible(viewer, candidate *models.UserData) bool {
	if candidate.UserID == "" || candidate.UserID == viewer.UserID {
		return false
	}
	q := CandidateQueryFor(viewer)
	if q.Gender != models.GenderAny && models.ParseGender(candidate.Gender) != q.Gender {
		return false
	}
	pref := models.ParseGender(candidate.GenderPreference)
	for _, accepted := range q.AcceptedPreferences {
		if pref == accepted {
			return true
		}
	}
	return false
}

// FilterCandidates drops ineligible, swiped and matched profiles and orders the rest
// oldest profile first.
func FilterCandidates(viewer *models.UserData, candidates []models.UserData) []models.UserData {
	cards := make([]models.UserData, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if !Eligible(viewer, c) || viewer.HasSwiped(c.UserID) {
			continue
		}
		cards = append(cards, c.Public())
	}
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].CreatedAt != cards[j].CreatedAt {
			return cards[i].CreatedAt < cards[j].CreatedAt
		}
		return cards[i].UserID < cards[j].UserID
	})
	return cards
}

func (s *MatchService) checkSwipe(userID, targetID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if targetID == "" {
		return invalid("targetUserId is required")
	}
	if userID == targetID {
		return invalid("You cannot swipe on yourself")
	}
	return nil
}

// Dislike records a left swipe
func (s *MatchService) Dislike(ctx context.Context, userID, targetID string) (*models.SwipeResult, error) {
	if err := s.checkSwipe(userID, targetID); err != nil {
		return nil, err
	}
	if _, err := s.Users.GetUser(ctx, targetID); err != nil {
		return nil, err
	}

	if err := s.Users.AddToSet(ctx, userID, models.AttrSwipesLeft, targetID); err != nil {
		return nil, err
	}
	metrics.IncSwipe(models.SwipeDislike)
	return &models.SwipeResult{Matched: false, Message: MsgDisliked}, nil
}

// Like records a right swipe and completes a match when targetID already liked userID.
func (s *MatchService) Like(ctx context.Context, userID, targetID string) (*models.SwipeResult, error) {
	if err := s.checkSwipe(userID, targetID); err != nil {
		return nil, err
	}

	viewer, err := s.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	target, err := s.Users.GetUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if viewer.IsMatchedWith(targetID) {
		if viewer.Likes(targetID) || target.Likes(userID) {
			// an earlier match stopped before clearing the likes
			if err := s.clearLikes(ctx, userID, targetID); err != nil {
				return nil, fmt.Errorf("failed to record match: %w", err)
			}
		}
		return s.alreadyMatched(ctx, userID, targetID)
	}

	if err := s.Users.AddToSet(ctx, userID, models.AttrSwipesRight, targetID); err != nil {
		return nil, err
	}
	metrics.IncSwipe(models.SwipeLike)

	// read the target after writing our like: of two concurrent likes, at least one sees the other
	target, err = s.Users.GetUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	switch {
	case target.IsMatchedWith(userID):
		// matched by targetID's like after viewer was read; completing again drops the like written above
		chat, err := s.completeMatch(ctx, viewer, target)
		if err != nil {
			return nil, err
		}
		return &models.SwipeResult{Matched: true, Chat: chat, Message: MsgAlreadyMatched}, nil
	case !target.Likes(userID):
		return &models.SwipeResult{Matched: false, Message: MsgLiked}, nil
	}

	chat, err := s.completeMatch(ctx, viewer, target)
	if err != nil {
		return nil, err
	}
	return &models.SwipeResult{Matched: true, Chat: chat, Message: MsgMatch}, nil
}

func (s *MatchService) alreadyMatched(ctx context.Context, userID, targetID string) (*models.SwipeResult, error) {
	chat, err := s.Chats.GetChat(ctx, ChatIDFor(userID, targetID))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return &models.SwipeResult{Matched: true, Chat: chat, Message: MsgAlreadyMatched}, nil
}

// completeMatch is safe to repeat: a chat that already exists is reused, and it is
// announced again only while its channel is still missing.
func (s *MatchService) completeMatch(ctx context.Context, viewer, target *models.UserData) (*models.ChatData, error) {
	chat := &models.ChatData{
		ChatID:    ChatIDFor(viewer.UserID, target.UserID),
		User1:     viewer.ChatUser(),
		User2:     target.ChatUser(),
		User1ID:   viewer.UserID,
		User2ID:   target.UserID,
		CreatedAt: s.now(),
	}

	created := true
	if err := s.Chats.CreateChat(ctx, chat); err != nil {
		if !errors.Is(err, ErrConflict) {
			return nil, fmt.Errorf("failed to create chat: %w", err)
		}
		created = false
		existing, err := s.Chats.GetChat(ctx, chat.ChatID)
		if err != nil {
			return nil, err
		}
		chat = existing
	}

	if err := s.recordMatch(ctx, viewer.UserID, target.UserID); err != nil {
		return nil, fmt.Errorf("failed to record match: %w", err)
	}

	if created {
		metrics.IncMatch()
		log.Info().Str("chatId", chat.ChatID).Str("user1", chat.User1ID).Str("user2", chat.User2ID).Msg("match created")
	} else {
		if chat.ChannelCID != "" || s.Chat == nil || !s.Chat.Configured() {
			return chat, nil
		}
		log.Info().Str("chatId", chat.ChatID).Msg("resuming match without chat channel")
	}

	s.attachChannel(ctx, chat, viewer.UserID)
	s.announce(ctx, chat)
	return chat, nil
}

// recordMatch writes both matches entries before clearing the likes, so a match
// interrupted halfway is still found by the next like of either user.
func (s *MatchService) recordMatch(ctx context.Context, viewerID, targetID string) error {
	if err := s.Users.AddToSet(ctx, targetID, models.AttrMatches, viewerID); err != nil {
		return err
	}
	if err := s.Users.AddToSet(ctx, viewerID, models.AttrMatches, targetID); err != nil {
		return err
	}
	return s.clearLikes(ctx, viewerID, targetID)
}

func (s *MatchService) clearLikes(ctx context.Context, a, b string) error {
	if err := s.Users.RemoveFromSet(ctx, b, models.AttrSwipesRight, a); err != nil {
		return err
	}
	return s.Users.RemoveFromSet(ctx, a, models.AttrSwipesRight, b)
}

func (s *MatchService) attachChannel(ctx context.Context, chat *models.ChatData, createdBy string) {
	if s.Chat == nil {
		return
	}
	cid, err := s.Chat.CreateChannel(ctx, chat, createdBy)
	switch {
	case err != nil:
		log.Error().Err(err).Str("chatId", chat.ChatID).Msg("failed to create chat channel")
	case cid != "":
		chat.ChannelCID = cid
		if err := s.Chats.SetChannel(ctx, chat.ChatID, cid); err != nil {
			log.Error().Err(err).Str("chatId", chat.ChatID).Msg("failed to store chat channel")
		}
	}
}

func (s *MatchService) announce(ctx context.Context, chat *models.ChatData) {
	event := models.MatchEvent{
		ChatID:    chat.ChatID,
		Users:     []string{chat.User1ID, chat.User2ID},
		Chat:      *chat,
		CreatedAt: chat.CreatedAt,
	}
	if s.Events != nil {
		if err := events.PublishMatch(ctx, s.Events, event); err != nil {
			log.Error().Err(err).Str("chatId", chat.ChatID).Msg("failed to publish match event")
		}
	}
	if s.Notifier != nil {
		s.Notifier.NotifyUser(chat.User1ID, models.SocketEventMatch, event)
		s.Notifier.NotifyUser(chat.User2ID, models.SocketEventMatch, event)
	}
}

// Matches returns the public profiles of the users userID matched with
func (s *MatchService) Matches(ctx context.Context, userID string) ([]models.UserData, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	viewer, err := s.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	profiles := make([]models.UserData, 0, len(viewer.Matches))
	for _, id := range viewer.Matches {
		user, err := s.Users.GetUser(ctx, id)
		if errors.Is(err, ErrNotFound) {
			log.Warn().Str("userId", userID).Str("matchId", id).Msg("matched profile no longer exists")
			continue
		}
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, user.Public())
	}
	sort.SliceStable(profiles, func(i, j int) bool { return profiles[i].UserID < profiles[j].UserID })
	return profiles, nil
}
