package service

import (
	"context"

	"go-task-manager/internal/domain"
)

type TaskService struct {
	Tasks domain.TaskRepository
}

// Create 任务归属永远取认证用户，不看请求体
func (s *TaskService) Create(ctx context.Context, ownerID string, in domain.NewTask) domain.Result[domain.Task] {
	if err := in.Validate(); err != nil {
		return domain.Failure[domain.Task](err)
	}
	return s.Tasks.Create(ctx, ownerID, &domain.Task{Description: in.Description, Completed: in.Completed})
}

func (s *TaskService) Get(ctx context.Context, ownerID, taskID string) domain.Result[domain.Task] {
	return s.Tasks.GetOne(ctx, taskID, ownerID)
}

func (s *TaskService) List(ctx context.Context, ownerID string, f domain.TaskFilter, p domain.PageOptions) domain.Result[domain.Page[domain.Task]] {
	return s.Tasks.GetAll(ctx, ownerID, f, p)
}

func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, p domain.TaskPatch) domain.Result[domain.Task] {
	return s.Tasks.Update(ctx, taskID, ownerID, p)
}

func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) domain.Result[domain.Task] {
	return s.Tasks.Delete(ctx, taskID, ownerID)
}
