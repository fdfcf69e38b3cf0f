package service

import (
	"context"

	"github.com/mindsync/wellness/internal/model"
	"github.com/mindsync/wellness/internal/repository"
)

type UserService struct {
	userRepository repository.UserRepository
}

func NewUserService(userRepository repository.UserRepository) *UserService {
	return &UserService{
		userRepository: userRepository,
	}
}

// ByID loads a user without the password hash.
func (s *UserService) ByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepository.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}
