package models

// Swipe directions
const (
	SwipeLike    = "like"
	SwipeDislike = "dislike"
)

// SwipeResult is returned for every like or dislike
type SwipeResult struct {
	Matched bool      `json:"matched"`
	Chat    *ChatData `json:"chat,omitempty"`
	Message string    `json:"message"`
}

// MatchEvent is published on the event exchange and pushed to both users
type MatchEvent struct {
	ChatID    string   `json:"chatId"`
	Users     []string `json:"users"`
	Chat      ChatData `json:"chat"`
	CreatedAt string   `json:"createdAt"`
}

// Routing keys and realtime event names
const (
	RoutingKeyMatchCreated = "match.created"
	RoutingKeyMessageSent  = "message.sent"

	SocketEventMatch      = "match"
	SocketEventNewMessage = "newMessage"
)

// TimeLayout is a fixed-width UTC timestamp layout, so stored timestamps sort lexically
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"
