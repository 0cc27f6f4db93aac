package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/academic-hub-api/internal/achievements"
	"github.com/yukikurage/academic-hub-api/internal/constants"
	"github.com/yukikurage/academic-hub-api/internal/models"
	"github.com/yukikurage/academic-hub-api/internal/repository"
	"gorm.io/gorm"
)

// GoalService handles learning goals. Goals are private to their owner.
type GoalService struct {
	goalRepo     repository.GoalRepository
	achievements *achievements.Engine
	now          func() time.Time
}

func NewGoalService(goalRepo repository.GoalRepository, engine *achievements.Engine) *GoalService {
	return &GoalService{
		goalRepo:     goalRepo,
		achievements: engine,
		now:          time.Now,
	}
}

// CreateGoalInput represents input for creating a goal
type CreateGoalInput struct {
	Title       string
	Description string
	TargetDate  *time.Time
	Progress    int
}

// UpdateGoalInput represents input for updating a goal
type UpdateGoalInput struct {
	Title           *string
	Description     *string
	TargetDate      *time.Time
	ClearTargetDate bool
	Progress        *int
	Completed       *bool
}

func checkProgress(progress int) error {
	if progress < 0 || progress > constants.MaxGoalProgress {
		return ErrInvalidProgress
	}
	return nil
}

// setCompleted applies a completion state and reports whether the goal was just completed.
func (s *GoalService) setCompleted(goal *models.LearningGoal, completed bool) bool {
	if completed == goal.Completed {
		return false
	}

	goal.Completed = completed
	if !completed {
		goal.CompletedAt = nil
		return false
	}

	now := s.now().UTC()
	goal.CompletedAt = &now
	return true
}

func (s *GoalService) Create(ctx context.Context, userID uint64, input CreateGoalInput) (*models.LearningGoal, error) {
	title, err := checkTitle(input.Title)
	if err != nil {
		return nil, err
	}
	if err := checkProgress(input.Progress); err != nil {
		return nil, err
	}

	goal := &models.LearningGoal{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		TargetDate:  input.TargetDate,
		Progress:    input.Progress,
	}
	s.setCompleted(goal, goal.Progress == constants.MaxGoalProgress)

	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	s.achievements.CheckGoals(ctx, userID)
	return goal, nil
}

func (s *GoalService) List(ctx context.Context, userID uint64) ([]models.LearningGoal, error) {
	goals, err := s.goalRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

func (s *GoalService) find(ctx context.Context, userID, id uint64) (*models.LearningGoal, error) {
	goal, err := s.goalRepo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	return goal, nil
}

// Update applies the given fields. Progress reaching 100 completes the goal
// unless the request sets completed explicitly.
func (s *GoalService) Update(ctx context.Context, userID, id uint64, input UpdateGoalInput) (*models.LearningGoal, error) {
	goal, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title, err := checkTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		goal.Title = title
	}
	if input.Description != nil {
		goal.Description = strings.TrimSpace(*input.Description)
	}
	if input.ClearTargetDate {
		goal.TargetDate = nil
	} else if input.TargetDate != nil {
		goal.TargetDate = input.TargetDate
	}
	if input.Progress != nil {
		if err := checkProgress(*input.Progress); err != nil {
			return nil, err
		}
		goal.Progress = *input.Progress
	}

	completed := goal.Completed
	switch {
	case input.Completed != nil:
		completed = *input.Completed
	case input.Progress != nil && *input.Progress == constants.MaxGoalProgress:
		completed = true
	}
	justCompleted := s.setCompleted(goal, completed)

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	if justCompleted {
		s.achievements.CheckGoals(ctx, userID)
	}
	return goal, nil
}

// Toggle flips completion. Completing a goal sets its progress to 100.
func (s *GoalService) Toggle(ctx context.Context, userID, id uint64) (*models.LearningGoal, error) {
	goal, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	justCompleted := s.setCompleted(goal, !goal.Completed)
	if justCompleted {
		goal.Progress = constants.MaxGoalProgress
	}

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	if justCompleted {
		s.achievements.CheckGoals(ctx, userID)
	}
	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, id uint64) error {
	if err := s.goalRepo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGoalNotFound
		}
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}
