package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dosada05/swiss-tournament/utils"
)

var ErrClaimsNotFound = errors.New("organizer claims not found in context")

// ClaimsFromContext returns the claims stored by Authenticate.
func ClaimsFromContext(ctx context.Context) (*utils.OrganizerClaims, error) {
	claims, ok := ctx.Value(claimsContextKey).(*utils.OrganizerClaims)
	if !ok || claims == nil {
		return nil, ErrClaimsNotFound
	}
	return claims, nil
}

// writeError пишет ошибку в том же формате, что и handlers: {"error": "..."}.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
