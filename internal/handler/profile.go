package handler

import (
	"net/http"

	"github.com/mindsync/wellness/internal/ctxkeys"
	"github.com/mindsync/wellness/internal/model"
	"github.com/mindsync/wellness/internal/render"
	"github.com/mindsync/wellness/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// Verify confirms the caller's token and echoes who they are.
func (h *ProfileHandler) Verify(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	render.JSON(w, http.StatusOK, render.Response{
		Success: true,
		Message: "Token valid",
		User:    newUserSummary(user, h.profileService.PhotoURL(user)),
	})
}

func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.profileService.Profile(r.Context(), ctxkeys.User(r.Context()).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, render.Response{
		Success: true,
		User:    newProfileResponse(user, h.profileService.PhotoURL(user)),
	})
}

func (h *ProfileHandler) Basic(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	render.JSON(w, http.StatusOK, render.Response{
		Success: true,
		User:    newUserSummary(user, h.profileService.PhotoURL(user)),
	})
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := h.update(w, r)
	if !ok {
		return
	}

	render.JSON(w, http.StatusOK, render.Response{
		Success: true,
		Message: "Profile updated successfully",
		User:    newProfileResponse(user, h.profileService.PhotoURL(user)),
	})
}

// Setup is the first profile edit after signup. It differs from Update only
// in where the client goes next.
func (h *ProfileHandler) Setup(w http.ResponseWriter, r *http.Request) {
	user, ok := h.update(w, r)
	if !ok {
		return
	}

	render.JSON(w, http.StatusOK, render.Response{
		Success:  true,
		Message:  "Profile setup complete. Redirecting to dashboard...",
		User:     newProfileResponse(user, h.profileService.PhotoURL(user)),
		Redirect: "/dashboard.html",
	})
}

func (h *ProfileHandler) update(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	req, err := parseProfileRequest(w, r)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	defer req.close()

	user, err := h.profileService.UpdateProfile(r.Context(), ctxkeys.User(r.Context()), req.update, req.upload)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return user, true
}
