package services

import "context"

// EventPublisher publishes domain events to the message broker
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

// Notifier pushes realtime events to connected clients
type Notifier interface {
	NotifyUser(userID, event string, payload any)
	NotifyChat(chatID, event string, payload any)
	DisconnectUser(userID string)
}

type nopNotifier struct{}

func (nopNotifier) NotifyUser(string, string, any) {}
func (nopNotifier) NotifyChat(string, string, any) {}
func (nopNotifier) DisconnectUser(string)          {}
