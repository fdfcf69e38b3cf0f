package handler

import (
	"net/http"
	"time"

	"github.com/mindsync/wellness/internal/middleware"
	"github.com/mindsync/wellness/internal/render"
	"github.com/mindsync/wellness/internal/service"
)

type authHandler struct {
	authService    *service.AuthService
	profileService *service.ProfileService
	cookieSecure   bool
}

func NewAuthHandler(authService *service.AuthService, profileService *service.ProfileService, cookieSecure bool) *authHandler {
	return &authHandler{
		authService:    authService,
		profileService: profileService,
		cookieSecure:   cookieSecure,
	}
}

func (h *authHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var in service.SignupInput
	err := decodeBody(w, r, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, token, err := h.authService.Signup(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setTokenCookie(w, token)
	render.JSON(w, http.StatusCreated, render.Response{
		Success:  true,
		Message:  "Signup successful. Redirecting to profile setup...",
		Token:    token,
		User:     newUserSummary(user, h.profileService.PhotoURL(user)),
		Redirect: "/profile-setup.html",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	err := decodeBody(w, r, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, token, err := h.authService.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setTokenCookie(w, token)
	render.JSON(w, http.StatusOK, render.Response{
		Success:  true,
		Message:  "Login successful. Redirecting to dashboard...",
		Token:    token,
		User:     newUserSummary(user, h.profileService.PhotoURL(user)),
		Redirect: "/dashboard.html",
	})
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: h.sameSite(),
	})
	render.JSON(w, http.StatusOK, render.Response{Success: true, Message: "Logged out"})
}

func (h *authHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Expires:  time.Now().Add(service.TokenTTL),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: h.sameSite(),
	})
}

// The frontends live on other origins, which needs SameSite=None over TLS.
func (h *authHandler) sameSite() http.SameSite {
	if h.cookieSecure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
