package service

import (
	"context"

	"github.com/mindsync/wellness/internal/model"
	"github.com/mindsync/wellness/internal/repository"
)

type DashboardService struct {
	userRepository repository.UserRepository
	baseURL        string
}

func NewDashboardService(userRepository repository.UserRepository, baseURL string) *DashboardService {
	return &DashboardService{
		userRepository: userRepository,
		baseURL:        baseURL,
	}
}

// Dashboard returns the wellness overview for a user. Only the user info is
// real; the metric series are fixed sample data.
func (s *DashboardService) Dashboard(ctx context.Context, userID string) (*model.Dashboard, error) {
	user, err := s.userRepository.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	goal := user.Goal
	if goal == "" {
		goal = model.DefaultGoal
	}

	return &model.Dashboard{
		UserInfo: model.DashboardUser{
			Name:       user.Name,
			Email:      user.Email,
			ProfilePic: BuildAbsolutePhotoURL(user.PhotoPath, s.baseURL),
			Goal:       goal,
		},
		Fitness: model.Fitness{
			Steps:          []int{5000, 7000, 8000, 6500, 9000},
			WorkoutMinutes: []int{30, 45, 50, 60, 40},
		},
		Nutrition: model.Nutrition{
			Calories:    []int{2000, 1800, 2200, 2100, 1900},
			WaterIntake: []float64{2, 2.5, 3, 2.8, 2.2},
		},
		MentalHealth: model.MentalHealth{
			MoodRatings:       []int{7, 8, 6, 9, 8},
			MeditationMinutes: []int{10, 15, 20, 10, 12},
		},
	}, nil
}
