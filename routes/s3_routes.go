package routes

import (
	"github.com/gorilla/mux"

	"lovematch_server/controllers"
	"lovematch_server/middleware"
)

// RegisterS3Routes sets up the presigned URL routes under /api/uploads
func RegisterS3Routes(r *mux.Router, controller *controllers.UserProfileController, verifier middleware.TokenVerifier) {
	uploadRouter := r.PathPrefix("/api/uploads").Subrouter()
	uploadRouter.Use(middleware.RequireAuth(verifier))

	uploadRouter.HandleFunc("/presign", controller.GeneratePresignedURL).Methods("POST")
	uploadRouter.HandleFunc("/read-url", controller.GetPresignedReadURL).Methods("POST")
}
