package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mindsync/wellness/internal/ctxkeys"
	"github.com/mindsync/wellness/internal/render"
	"github.com/mindsync/wellness/internal/repository"
	"github.com/mindsync/wellness/internal/service"
)

const TokenCookieName = "token"

// Authenticate guards private routes. A request either reaches next with the
// user in its context or is answered with 401.
func Authenticate(authService *service.AuthService, userService *service.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				render.Error(w, http.StatusUnauthorized, "Not authorized, token missing")
				return
			}

			userID, err := authService.VerifyToken(token)
			switch {
			case err == nil:
			case errors.Is(err, service.ErrExpiredToken):
				render.Error(w, http.StatusUnauthorized, "Token expired, please log in again")
				return
			case errors.Is(err, service.ErrMalformedToken):
				render.Error(w, http.StatusUnauthorized, "Invalid token, please log in again")
				return
			default:
				slog.Error("token verification failed", "error", err, "request_id", ctxkeys.RequestID(r.Context()))
				render.Error(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			user, err := userService.ByID(r.Context(), userID)
			if errors.Is(err, repository.ErrUserNotFound) {
				render.Error(w, http.StatusUnauthorized, "Not authorized, user not found")
				return
			}
			if err != nil {
				slog.Error("failed to load user", "error", err, "user_id", userID, "request_id", ctxkeys.RequestID(r.Context()))
				render.Error(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tokenFromRequest prefers the Authorization header over the cookie.
func tokenFromRequest(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		token = strings.TrimSpace(token)
		if token != "" {
			return token
		}
	}

	cookie, err := r.Cookie(TokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
