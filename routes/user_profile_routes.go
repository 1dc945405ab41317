package routes

import (
	"github.com/gorilla/mux"

	"lovematch_server/controllers"
	"lovematch_server/middleware"
)

// RegisterUserProfileRoutes sets up routes for user profile operations under /api/profiles
func RegisterUserProfileRoutes(r *mux.Router, profiles controllers.ProfileAPI, verifier middleware.TokenVerifier) {
	controller := controllers.NewUserProfileController(profiles)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()
	profileRouter.Use(middleware.RequireAuth(verifier))

	// "me" routes first, so they are not taken for a user id
	profileRouter.HandleFunc("/me", controller.GetMyProfile).Methods("GET")
	profileRouter.HandleFunc("/me", controller.UpdateMyProfile).Methods("PATCH", "PUT")
	profileRouter.HandleFunc("/me/image", controller.UploadProfileImage).Methods("POST")
	profileRouter.HandleFunc("/{userId}", controller.GetProfileByID).Methods("GET")

	RegisterS3Routes(r, controller, verifier)
}
