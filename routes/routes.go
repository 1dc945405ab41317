package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lovematch_server/controllers"
	"lovematch_server/middleware"
)

// NewRouter creates the root router with the request middleware and the public routes
func NewRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Recover, middleware.Observe)

	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")
	r.HandleFunc("/welcome", controllers.WelcomeHandler).Methods("GET")
	r.HandleFunc("/", controllers.WelcomeHandler).Methods("GET")
	r.HandleFunc("/privacy-policy", PrivacyPolicyHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	return r
}

// protected wraps h with the session check
func protected(verifier middleware.TokenVerifier, h http.HandlerFunc) http.Handler {
	return middleware.RequireAuth(verifier)(h)
}
