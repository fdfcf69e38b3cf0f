package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mindsync/wellness/internal/ctxkeys"
	"github.com/mindsync/wellness/internal/model"
	"github.com/mindsync/wellness/internal/render"
	"github.com/mindsync/wellness/internal/repository"
	"github.com/mindsync/wellness/internal/service"
	"github.com/mindsync/wellness/internal/validation"
)

// userSummary is the short user shape returned by auth endpoints.
type userSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
}

// profileResponse is the full profile. It has no password field.
type profileResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Age               *int      `json:"age"`
	Gender            string    `json:"gender"`
	Phone             string    `json:"phone"`
	Location          string    `json:"location"`
	Goal              string    `json:"goal"`
	Bio               string    `json:"bio"`
	Photo             string    `json:"photo"`
	IsProfileComplete bool      `json:"isProfileComplete"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func newUserSummary(u *model.User, photo string) userSummary {
	return userSummary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Photo: photo,
	}
}

func newProfileResponse(u *model.User, photo string) profileResponse {
	return profileResponse{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Age:               u.Age,
		Gender:            u.Gender,
		Phone:             u.Phone,
		Location:          u.Location,
		Goal:              u.Goal,
		Bio:               u.Bio,
		Photo:             photo,
		IsProfileComplete: u.IsProfileComplete,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

// writeError maps service errors to a status and a client-safe message.
// Anything unrecognized is logged and answered with a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error

	switch {
	case errors.As(err, &verr):
		render.Error(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, validation.ErrUploadRejected):
		render.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEmailAlreadyExists):
		render.Error(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		render.Error(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrExpiredToken):
		render.Error(w, http.StatusUnauthorized, "Token expired, please log in again")
	case errors.Is(err, service.ErrMalformedToken):
		render.Error(w, http.StatusUnauthorized, "Invalid token, please log in again")
	case errors.Is(err, repository.ErrUserNotFound):
		render.Error(w, http.StatusNotFound, "User not found")
	default:
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", ctxkeys.RequestID(r.Context()),
		)
		render.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
