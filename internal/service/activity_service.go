package service

import (
	"context"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/repository"
)

type ActivityService interface {
	List(ctx context.Context, page, limit int, action string) ([]model.ActivityLog, int64, error)
}

type activityService struct {
	activityRepo repository.ActivityRepository
}

func NewActivityService(activityRepo repository.ActivityRepository) ActivityService {
	return &activityService{activityRepo: activityRepo}
}

func (s *activityService) List(ctx context.Context, page, limit int, action string) ([]model.ActivityLog, int64, error) {
	return s.activityRepo.List(ctx, page, limit, action)
}
