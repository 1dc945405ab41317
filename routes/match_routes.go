package routes

import (
	"github.com/gorilla/mux"

	"lovematch_server/controllers"
	"lovematch_server/middleware"
)

// RegisterMatchRoutes sets up the feed, swipe and match routes
func RegisterMatchRoutes(r *mux.Router, matches controllers.MatchAPI, verifier middleware.TokenVerifier) {
	controller := controllers.NewMatchController(matches)

	r.Handle("/api/feed", protected(verifier, controller.GetFeed)).Methods("GET")
	r.Handle("/api/matches", protected(verifier, controller.GetMatches)).Methods("GET")

	swipeRouter := r.PathPrefix("/api/swipes").Subrouter()
	swipeRouter.Use(middleware.RequireAuth(verifier))
	swipeRouter.HandleFunc("/like", controller.Like).Methods("POST")
	swipeRouter.HandleFunc("/dislike", controller.Dislike).Methods("POST")
}
