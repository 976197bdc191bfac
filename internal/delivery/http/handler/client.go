package handler

import (
	"net/http"

	"doctor-finder/internal/delivery/http/middleware"
)

// clientID returns the workspace id set by the client middleware.
func clientID(r *http.Request) string {
	id, _ := middleware.GetClientIDFromContext(r.Context())
	return id
}
