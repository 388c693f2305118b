package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/imisi99/Todoapi/internal/model"
)

// TodoRepo provides data access to the todos table. Every query is
// scoped by user_id so a todo id belonging to another user behaves
// exactly like a missing row. Timestamps are handled in UTC.
type TodoRepo struct{ DB *sql.DB }

func NewTodoRepo(db *sql.DB) *TodoRepo { return &TodoRepo{DB: db} }

const todoColumns = "id,task,note,completed,due,created_at,user_id"

// Create inserts a todo for the user and fills in the generated id.
// A zero Due defaults to 24 hours from now.
func (r *TodoRepo) Create(ctx context.Context, t *model.Todo) error {
	if t.Due.IsZero() {
		t.Due = time.Now().UTC().Add(24 * time.Hour)
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO todos (task, note, completed, due, user_id) VALUES (?,?,?,?,?)",
		t.Task, t.Note, t.Completed, t.Due.UTC(), t.UserID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// ListByUser returns all todos owned by the user, newest first.
func (r *TodoRepo) ListByUser(ctx context.Context, userID string) ([]model.Todo, error) {
	return r.list(ctx,
		"SELECT "+todoColumns+" FROM todos WHERE user_id=? ORDER BY id DESC", userID)
}

// GetByID returns a single todo within the user's scope.
func (r *TodoRepo) GetByID(ctx context.Context, userID string, id uint64) (model.Todo, error) {
	var t model.Todo
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+todoColumns+" FROM todos WHERE user_id=? AND id=? LIMIT 1",
		userID, id).
		Scan(&t.ID, &t.Task, &t.Note, &t.Completed, &t.Due, &t.CreatedAt, &t.UserID)
	if err == sql.ErrNoRows {
		return model.Todo{}, ErrTodoNotFound
	}
	return t, err
}

// ListByTask returns the user's todos whose task title matches exactly.
func (r *TodoRepo) ListByTask(ctx context.Context, userID, task string) ([]model.Todo, error) {
	return r.list(ctx,
		"SELECT "+todoColumns+" FROM todos WHERE user_id=? AND task=? ORDER BY id DESC",
		userID, task)
}

// ListByCompleted returns the user's todos filtered by completion state.
func (r *TodoRepo) ListByCompleted(ctx context.Context, userID string, completed bool) ([]model.Todo, error) {
	return r.list(ctx,
		"SELECT "+todoColumns+" FROM todos WHERE user_id=? AND completed=? ORDER BY id DESC",
		userID, completed)
}

// SetCompleted flips the completed flag on one todo.
func (r *TodoRepo) SetCompleted(ctx context.Context, userID string, id uint64, completed bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE todos SET completed=? WHERE user_id=? AND id=?", completed, userID, id)
	if err != nil {
		return err
	}
	return oneRowOr(res, ErrTodoNotFound, func() error {
		_, err := r.GetByID(ctx, userID, id)
		return err
	})
}

// Update rewrites task, note and due on one todo.
func (r *TodoRepo) Update(ctx context.Context, t *model.Todo) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE todos SET task=?, note=?, due=? WHERE user_id=? AND id=?",
		t.Task, t.Note, t.Due.UTC(), t.UserID, t.ID)
	if err != nil {
		return err
	}
	return oneRowOr(res, ErrTodoNotFound, func() error {
		_, err := r.GetByID(ctx, t.UserID, t.ID)
		return err
	})
}

// Delete removes one todo within the user's scope.
func (r *TodoRepo) Delete(ctx context.Context, userID string, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM todos WHERE user_id=? AND id=?", userID, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// DeleteByCompleted removes all of the user's todos in the given
// completion state and returns how many were removed.
func (r *TodoRepo) DeleteByCompleted(ctx context.Context, userID string, completed bool) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM todos WHERE user_id=? AND completed=?", userID, completed)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteByUser removes every todo owned by the user. Called before
// the user row itself is deleted so the foreign key is respected and
// an interrupted deletion cannot orphan rows.
func (r *TodoRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM todos WHERE user_id=?", userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *TodoRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.Todo, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []model.Todo{}
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(&t.ID, &t.Task, &t.Note, &t.Completed, &t.Due, &t.CreatedAt, &t.UserID); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// oneRowOr treats zero affected rows as ambiguous: MySQL reports 0
// both for "no such row" and "values unchanged", so confirm() is
// consulted to tell them apart.
func oneRowOr(res sql.Result, notFound error, confirm func() error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return confirm()
	}
	return nil
}
