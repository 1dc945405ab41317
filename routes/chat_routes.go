package routes

import (
	"github.com/gorilla/mux"

	"lovematch_server/controllers"
	"lovematch_server/middleware"
)

// RegisterChatRoutes sets up routes for chat-related operations under /api/chats
func RegisterChatRoutes(r *mux.Router, chats controllers.ChatAPI, verifier middleware.TokenVerifier) {
	controller := controllers.NewChatController(chats)

	chatRouter := r.PathPrefix("/api/chats").Subrouter()
	chatRouter.Use(middleware.RequireAuth(verifier))

	chatRouter.HandleFunc("", controller.ListChats).Methods("GET")
	chatRouter.HandleFunc("/{chatId}", controller.GetChat).Methods("GET")
	chatRouter.HandleFunc("/{chatId}/messages", controller.GetMessages).Methods("GET")
	chatRouter.HandleFunc("/{chatId}/messages", controller.CreateMessage).Methods("POST")
	chatRouter.HandleFunc("/{chatId}/read", controller.MarkMessagesAsRead).Methods("POST")
}

// RegisterChatTokenRoutes sets up the chat SDK token route
func RegisterChatTokenRoutes(r *mux.Router, tokens controllers.ChatTokenAPI, verifier middleware.TokenVerifier) {
	controller := controllers.NewChatTokenController(tokens)

	r.Handle("/api/chat/token", protected(verifier, controller.CreateToken)).Methods("POST")
}
