package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mindsync/wellness/internal/model"
	"github.com/mindsync/wellness/internal/repository"
	"github.com/mindsync/wellness/internal/validation"
)

const DefaultAvatarPath = "/uploads/default-avatar.png"

// ProfileUpdate is a partial profile edit. A nil field was not sent.
type ProfileUpdate struct {
	Name     *string `json:"name"`
	Bio      *string `json:"bio"`
	Location *string `json:"location"`
	Phone    *string `json:"phone"`
	Age      *int    `json:"age"`
	Gender   *string `json:"gender"`
	Goal     *string `json:"goal"`
}

type ProfileService struct {
	userRepository repository.UserRepository
	fileService    *FileService
	baseURL        string
}

func NewProfileService(userRepository repository.UserRepository, fileService *FileService, baseURL string) *ProfileService {
	return &ProfileService{
		userRepository: userRepository,
		fileService:    fileService,
		baseURL:        baseURL,
	}
}

func (s *ProfileService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepository.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// PhotoURL is the absolute avatar address for a user.
func (s *ProfileService) PhotoURL(user *model.User) string {
	return BuildAbsolutePhotoURL(user.PhotoPath, s.baseURL)
}

// UpdateProfile validates the edit, stores an optional new avatar and persists
// everything in one store write. The previous avatar is removed once the write
// succeeds.
func (s *ProfileService) UpdateProfile(ctx context.Context, user *model.User, in ProfileUpdate, upload *Upload) (*model.User, error) {
	changes, err := ApplyPartialUpdate(in, "")
	if err != nil {
		return nil, err
	}

	var stored *model.File
	if upload != nil {
		stored, err = s.fileService.Upload(ctx, model.FileTypeAvatar, upload)
		if err != nil {
			return nil, err
		}
		changes.PhotoPath = &stored.URL
	}

	if changes.IsEmpty() {
		return s.Profile(ctx, user.ID)
	}

	updated, err := s.userRepository.UpdateProfile(ctx, user.ID, changes)
	if err != nil {
		if stored != nil {
			delErr := s.fileService.DeleteByURL(ctx, model.FileTypeAvatar, stored.URL)
			if delErr != nil {
				slog.Error("failed to clean up avatar after failed update", "error", delErr, "user_id", user.ID)
			}
		}
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if stored != nil && user.PhotoPath != "" && user.PhotoPath != stored.URL {
		err = s.fileService.DeleteByURL(ctx, model.FileTypeAvatar, user.PhotoPath)
		if err != nil {
			slog.Warn("failed to delete old avatar", "error", err, "user_id", user.ID)
		}
	}

	return updated.Public(), nil
}

// ApplyPartialUpdate turns a payload into the changes to persist. String
// fields count only when non-empty after trimming. Age counts whenever it is
// present, so 0 is a real value. Any invalid field rejects the whole update.
// A non-empty photoPath wins over anything else that would set the photo.
func ApplyPartialUpdate(in ProfileUpdate, photoPath string) (model.ProfileChanges, error) {
	var changes model.ProfileChanges

	text := []struct {
		value    *string
		validate func(string) error
		dst      **string
	}{
		{in.Name, validation.ValidateName, &changes.Name},
		{in.Bio, validation.ValidateBio, &changes.Bio},
		{in.Location, validation.ValidateLocation, &changes.Location},
		{in.Phone, validation.ValidatePhone, &changes.Phone},
		{in.Gender, validation.ValidateGender, &changes.Gender},
		{in.Goal, validation.ValidateGoal, &changes.Goal},
	}
	for _, f := range text {
		if f.value == nil {
			continue
		}
		v := strings.TrimSpace(*f.value)
		if v == "" {
			continue
		}
		err := f.validate(v)
		if err != nil {
			return model.ProfileChanges{}, err
		}
		*f.dst = &v
	}

	if in.Age != nil {
		err := validation.ValidateAge(*in.Age)
		if err != nil {
			return model.ProfileChanges{}, err
		}
		age := *in.Age
		changes.Age = &age
	}

	if photoPath != "" {
		changes.PhotoPath = &photoPath
	}

	return changes, nil
}

// BuildAbsolutePhotoURL resolves a stored photo path against baseURL. Absolute
// URLs pass through, so applying it to its own output changes nothing.
func BuildAbsolutePhotoURL(photoPath, baseURL string) string {
	if photoPath == "" {
		photoPath = DefaultAvatarPath
	}
	if isAbsoluteURL(photoPath) {
		return photoPath
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(photoPath, "/")
}

func isAbsoluteURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
