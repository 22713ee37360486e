package domain

import (
	"context"
	"time"
)

type Task struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Description string    `gorm:"size:1024;not null" json:"description"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	AuthorID    string    `gorm:"size:36;not null;index" json:"authorId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Task) TableName() string { return "tasks" }

type TaskFilter struct {
	Completed *bool
}

type Sort struct {
	Field string // 白名单内的 json 字段名
	Desc  bool
}

type PageOptions struct {
	Limit int
	Skip  int
	Sort  Sort
}

// TaskRepository 所有操作都按 owner 过滤；他人的任务与不存在的任务一样返回 Absent
type TaskRepository interface {
	Create(ctx context.Context, ownerID string, t *Task) Result[Task]
	GetOne(ctx context.Context, taskID, ownerID string) Result[Task]
	GetAll(ctx context.Context, ownerID string, f TaskFilter, p PageOptions) Result[Page[Task]]
	Update(ctx context.Context, taskID, ownerID string, p TaskPatch) Result[Task]
	Delete(ctx context.Context, taskID, ownerID string) Result[Task]
	DeleteAllByOwner(ctx context.Context, ownerID string) Result[int64]
}
