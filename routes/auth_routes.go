package routes

import (
	"github.com/gorilla/mux"

	"lovematch_server/controllers"
	"lovematch_server/middleware"
)

// RegisterAuthRoutes sets up signup, login and logout under /api/auth
func RegisterAuthRoutes(r *mux.Router, auth controllers.AuthAPI, verifier middleware.TokenVerifier) {
	controller := controllers.NewAuthController(auth)

	authRouter := r.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/signup", controller.Signup).Methods("POST")
	authRouter.HandleFunc("/login", controller.Login).Methods("POST")
	authRouter.Handle("/logout", protected(verifier, controller.Logout)).Methods("POST")
}
