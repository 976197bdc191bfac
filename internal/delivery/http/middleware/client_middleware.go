package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// ClientIDHeader identifies the workspace of a client.
const ClientIDHeader = "X-Client-ID"

const maxClientIDLength = 128

type ClientMiddleware struct {
}

func NewClientMiddleware() *ClientMiddleware {
	return &ClientMiddleware{}
}

// Handle puts the client id into the request context. A client without a
// usable id is issued a new one in the response header.
func (m *ClientMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := r.Header.Get(ClientIDHeader)
		if clientID == "" || len(clientID) > maxClientIDLength {
			clientID = uuid.NewString()
		}
		w.Header().Set(ClientIDHeader, clientID)

		ctx := context.WithValue(r.Context(), ClientIDKey, clientID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientIDFromContext extracts client ID from context
func GetClientIDFromContext(ctx context.Context) (string, bool) {
	clientID, ok := ctx.Value(ClientIDKey).(string)
	return clientID, ok && clientID != ""
}
