package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Dosada05/swiss-tournament/utils"
	"github.com/go-chi/chi/v5"
)

type contextKey string

const claimsContextKey contextKey = "organizer_claims"

// Authenticate проверяет Bearer токен организатора и кладёт claims в контекст.
func Authenticate(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "authorization header required")
				return
			}

			claims, err := utils.ParseOrganizerToken(secret, tokenString)
			if err != nil {
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTournamentOrganizer allows the request only if the token was issued for the
// tournament in the {tournamentID} URL parameter. Must run after Authenticate.
func RequireTournamentOrganizer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := ClaimsFromContext(r.Context())
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		if claims.TournamentID != chi.URLParam(r, "tournamentID") {
			writeError(w, http.StatusForbidden, "token does not grant access to this tournament")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
