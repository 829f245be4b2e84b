package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doneo/backend/domain"
	"github.com/doneo/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `
	SELECT id, project_id, title, status, assignees, due_date, notes, created_by, pending_for, created_at, updated_at
	FROM tasks
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	task, err := scanTask(row)
	if err != nil {
		return nil, err
	}

	subtasks, err := r.listSubtasks(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Subtasks = subtasks
	return task, nil
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	const query = `
	SELECT id, project_id, title, status, assignees, due_date, notes, created_by, pending_for, created_at, updated_at
	FROM tasks
	WHERE ($1 = '' OR project_id = $1)
	  AND ($2 = '' OR status = $2)
	  AND ($3 = '' OR assignees @> jsonb_build_array(jsonb_build_object('id', $3::text)))
	  AND ($4 = '' OR pending_for ? $4)
	ORDER BY created_at DESC
	LIMIT $5 OFFSET $6
	`
	rows, err := r.pool.Query(ctx, query,
		filter.ProjectID,
		filter.Status,
		filter.AssigneeID,
		filter.PendingFor,
		clampLimit(filter.Limit),
		filter.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tasks {
		subtasks, err := r.listSubtasks(ctx, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].Subtasks = subtasks
	}
	return tasks, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusPending
	}

	const query = `
	INSERT INTO tasks (id, project_id, title, status, assignees, due_date, notes, created_by, pending_for)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING created_at, updated_at
	`
	var due interface{}
	if task.DueDate != nil {
		due = *task.DueDate
	}

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.ProjectID,
		task.Title,
		task.Status,
		marshalUsers(task.Assignees),
		due,
		nullString(task.Notes),
		nullString(task.CreatedBy),
		marshalStrings(task.PendingFor),
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	for i := range task.Subtasks {
		task.Subtasks[i].TaskID = task.ID
		task.Subtasks[i].Position = i + 1
		if _, err := r.AddSubtask(ctx, &task.Subtasks[i]); err != nil {
			return nil, err
		}
	}
	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET title = $2,
		status = $3,
		assignees = $4,
		due_date = $5,
		notes = $6,
		pending_for = $7,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	var due interface{}
	if task.DueDate != nil {
		due = *task.DueDate
	}

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Status,
		marshalUsers(task.Assignees),
		due,
		nullString(task.Notes),
		marshalStrings(task.PendingFor),
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}
	return nil
}

func (r *taskRepository) GetSubtask(ctx context.Context, id string) (*domain.Subtask, error) {
	const query = `
	SELECT id, task_id, title, description, is_done, assignees, due_date, position, created_at
	FROM subtasks
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	subtask, err := scanSubtask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSubtaskNotFound
		}
		return nil, err
	}
	return subtask, nil
}

func (r *taskRepository) AddSubtask(ctx context.Context, subtask *domain.Subtask) (*domain.Subtask, error) {
	if subtask == nil {
		return nil, domain.ErrInvalidPayload
	}
	if subtask.ID == "" {
		subtask.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO subtasks (id, task_id, title, description, is_done, assignees, due_date, position)
	VALUES ($1, $2, $3, $4, $5, $6, $7,
		CASE WHEN $8 > 0 THEN $8
		ELSE (SELECT COALESCE(MAX(position), 0) + 1 FROM subtasks WHERE task_id = $2) END)
	RETURNING position, created_at
	`
	var due interface{}
	if subtask.DueDate != nil {
		due = *subtask.DueDate
	}

	if err := r.pool.QueryRow(ctx, query,
		subtask.ID,
		subtask.TaskID,
		subtask.Title,
		nullString(subtask.Description),
		subtask.IsDone,
		marshalUsers(subtask.Assignees),
		due,
		subtask.Position,
	).Scan(&subtask.Position, &subtask.CreatedAt); err != nil {
		return nil, err
	}
	return subtask, nil
}

func (r *taskRepository) UpdateSubtask(ctx context.Context, subtask *domain.Subtask) error {
	if subtask == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE subtasks
	SET title = $2,
		description = $3,
		is_done = $4,
		assignees = $5,
		due_date = $6
	WHERE id = $1
	`
	var due interface{}
	if subtask.DueDate != nil {
		due = *subtask.DueDate
	}

	tag, err := r.pool.Exec(ctx, query,
		subtask.ID,
		subtask.Title,
		nullString(subtask.Description),
		subtask.IsDone,
		marshalUsers(subtask.Assignees),
		due,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubtaskNotFound
	}
	return nil
}

func (r *taskRepository) listSubtasks(ctx context.Context, taskID string) ([]domain.Subtask, error) {
	const query = `
	SELECT id, task_id, title, description, is_done, assignees, due_date, position, created_at
	FROM subtasks
	WHERE task_id = $1
	ORDER BY position
	`
	rows, err := r.pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subtasks []domain.Subtask
	for rows.Next() {
		subtask, err := scanSubtask(rows)
		if err != nil {
			return nil, err
		}
		subtasks = append(subtasks, *subtask)
	}
	return subtasks, rows.Err()
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var (
		due        *time.Time
		notes      *string
		createdBy  *string
		assignees  []byte
		pendingFor []byte
	)

	if err := row.Scan(
		&task.ID,
		&task.ProjectID,
		&task.Title,
		&task.Status,
		&assignees,
		&due,
		&notes,
		&createdBy,
		&pendingFor,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.DueDate = due
	if notes != nil {
		task.Notes = *notes
	}
	if createdBy != nil {
		task.CreatedBy = *createdBy
	}
	task.Assignees = unmarshalUsers(assignees)
	task.PendingFor = unmarshalStrings(pendingFor)
	return &task, nil
}

func scanSubtask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Subtask, error) {
	var subtask domain.Subtask
	var (
		description *string
		assignees   []byte
		due         *time.Time
	)

	if err := row.Scan(
		&subtask.ID,
		&subtask.TaskID,
		&subtask.Title,
		&description,
		&subtask.IsDone,
		&assignees,
		&due,
		&subtask.Position,
		&subtask.CreatedAt,
	); err != nil {
		return nil, err
	}

	if description != nil {
		subtask.Description = *description
	}
	subtask.Assignees = unmarshalUsers(assignees)
	subtask.DueDate = due
	return &subtask, nil
}
