package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-task-manager/internal/domain"
	"go-task-manager/pkg/utils"
)

// TaskRepo 每条 SQL 都带 author_id 条件；没有“只按 id 查任务”的入口
type TaskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) *TaskRepo { return &TaskRepo{db: db} }

var _ domain.TaskRepository = (*TaskRepo)(nil)

func (r *TaskRepo) owned(ctx context.Context, taskID, ownerID string) *gorm.DB {
	return r.db.WithContext(ctx).Where("id = ? AND author_id = ?", taskID, ownerID)
}

func (r *TaskRepo) Create(ctx context.Context, ownerID string, t *domain.Task) domain.Result[domain.Task] {
	if t.ID == "" {
		t.ID = utils.NewID()
	}
	t.AuthorID = ownerID
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return domain.Failure[domain.Task](fmt.Errorf("create task: %w", err))
	}
	return domain.Success(*t)
}

func (r *TaskRepo) GetOne(ctx context.Context, taskID, ownerID string) domain.Result[domain.Task] {
	return take[domain.Task](r.owned(ctx, taskID, ownerID), "get task "+taskID)
}

func (r *TaskRepo) GetAll(ctx context.Context, ownerID string, f domain.TaskFilter, p domain.PageOptions) domain.Result[domain.Page[domain.Task]] {
	q := r.db.WithContext(ctx).Model(&domain.Task{}).Where("author_id = ?", ownerID)
	if f.Completed != nil {
		q = q.Where("completed = ?", *f.Completed)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return domain.Failure[domain.Page[domain.Task]](fmt.Errorf("count tasks: %w", err))
	}

	col, ok := domain.TaskSortColumns[p.Sort.Field]
	if !ok {
		col = domain.TaskSortColumns[domain.DefaultTaskSort.Field]
	}
	if p.Limit <= 0 {
		p.Limit = domain.DefaultPageLimit
	}
	tasks := make([]domain.Task, 0)
	err := q.
		Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: p.Sort.Desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Limit(p.Limit).Offset(p.Skip).
		Find(&tasks).Error
	if err != nil {
		return domain.Failure[domain.Page[domain.Task]](fmt.Errorf("list tasks: %w", err))
	}
	return domain.Success(domain.Page[domain.Task]{Items: tasks, Total: total})
}

// Update 读取（带 owner 条件）→ 合并 → 写回（仍带 owner 条件）
func (r *TaskRepo) Update(ctx context.Context, taskID, ownerID string, p domain.TaskPatch) domain.Result[domain.Task] {
	found := r.GetOne(ctx, taskID, ownerID)
	t, ok := found.Get()
	if !ok {
		return found
	}
	p.Apply(&t)
	res := r.db.WithContext(ctx).Model(&t).
		Where("author_id = ?", ownerID).
		Select("Description", "Completed", "UpdatedAt").
		Updates(&t)
	if res.Error != nil {
		return domain.Failure[domain.Task](fmt.Errorf("update task %s: %w", taskID, res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.Absent[domain.Task]()
	}
	return domain.Success(t)
}

func (r *TaskRepo) Delete(ctx context.Context, taskID, ownerID string) domain.Result[domain.Task] {
	found := r.GetOne(ctx, taskID, ownerID)
	t, ok := found.Get()
	if !ok {
		return found
	}
	res := r.owned(ctx, taskID, ownerID).Delete(&domain.Task{})
	if res.Error != nil {
		return domain.Failure[domain.Task](fmt.Errorf("delete task %s: %w", taskID, res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.Absent[domain.Task]()
	}
	return domain.Success(t)
}

func (r *TaskRepo) DeleteAllByOwner(ctx context.Context, ownerID string) domain.Result[int64] {
	res := r.db.WithContext(ctx).Where("author_id = ?", ownerID).Delete(&domain.Task{})
	if res.Error != nil {
		return domain.Failure[int64](fmt.Errorf("delete tasks of %s: %w", ownerID, res.Error))
	}
	return domain.Success(res.RowsAffected)
}
