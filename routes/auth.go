// routes/auth.go
package routes

import (
	"github.com/gorilla/mux"

	"github.com/accountsync/xeroserver/internal/auth"
)

// RegisterAuthRoutes registers all authentication-related routes
func RegisterAuthRoutes(router *mux.Router, authHandler *auth.Handler) {
	router.HandleFunc("/", authHandler.Index).Methods("GET")
	router.HandleFunc("/login", authHandler.Login).Methods("GET")
	router.HandleFunc("/callback", authHandler.Callback).Methods("GET")
	router.HandleFunc("/logout", authHandler.Logout).Methods("GET")
}
