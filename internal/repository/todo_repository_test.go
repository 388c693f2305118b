package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imisi99/Todoapi/internal/model"
)

var todoCols = []string{"id", "task", "note", "completed", "due", "created_at", "user_id"}

func TestTodoRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	due := time.Now().UTC().Add(48 * time.Hour)
	todo := model.Todo{Task: "buy milk", Note: "2%", Due: due, UserID: "uid-1"}
	mock.ExpectExec("INSERT INTO todos (task, note, completed, due, user_id) VALUES (?,?,?,?,?)").
		WithArgs(todo.Task, todo.Note, false, due, todo.UserID).
		WillReturnResult(sqlmock.NewResult(42, 1))

	require.NoError(t, NewTodoRepo(db).Create(context.Background(), &todo))
	assert.Equal(t, uint64(42), todo.ID)
}

func TestTodoRepoCreateDefaultsDue(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	todo := model.Todo{Task: "buy milk", UserID: "uid-1"}
	mock.ExpectExec("INSERT INTO todos (task, note, completed, due, user_id) VALUES (?,?,?,?,?)").
		WithArgs(todo.Task, "", false, sqlmock.AnyArg(), todo.UserID).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, NewTodoRepo(db).Create(context.Background(), &todo))
	// a zero due date becomes "tomorrow"
	assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), todo.Due, time.Minute)
}

func TestTodoRepoGetByIDScopedToOwner(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	// row 42 exists but belongs to uid-1; uid-2's scoped query finds nothing
	mock.ExpectQuery("SELECT id,task,note,completed,due,created_at,user_id FROM todos WHERE user_id=? AND id=? LIMIT 1").
		WithArgs("uid-2", uint64(42)).
		WillReturnRows(sqlmock.NewRows(todoCols))

	_, err = NewTodoRepo(db).GetByID(context.Background(), "uid-2", 42)
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestTodoRepoListByUser(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id,task,note,completed,due,created_at,user_id FROM todos WHERE user_id=? ORDER BY id DESC").
		WithArgs("uid-1").
		WillReturnRows(sqlmock.NewRows(todoCols).
			AddRow(2, "walk dog", "", false, now, now, "uid-1").
			AddRow(1, "buy milk", "2%", true, now, now, "uid-1"))

	items, err := NewTodoRepo(db).ListByUser(context.Background(), "uid-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "walk dog", items[0].Task)
	assert.Equal(t, uint64(1), items[1].ID)
}

func TestTodoRepoListByUserEmpty(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id,task,note,completed,due,created_at,user_id FROM todos WHERE user_id=? ORDER BY id DESC").
		WithArgs("uid-1").
		WillReturnRows(sqlmock.NewRows(todoCols))

	items, err := NewTodoRepo(db).ListByUser(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.NotNil(t, items) // an empty list serializes as [], not null
	assert.Len(t, items, 0)
}

func TestTodoRepoSetCompletedNotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE todos SET completed=? WHERE user_id=? AND id=?").
		WithArgs(true, "uid-1", uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	// zero rows affected is ambiguous; the repo re-reads to decide
	mock.ExpectQuery("SELECT id,task,note,completed,due,created_at,user_id FROM todos WHERE user_id=? AND id=? LIMIT 1").
		WithArgs("uid-1", uint64(99)).
		WillReturnRows(sqlmock.NewRows(todoCols))

	err = NewTodoRepo(db).SetCompleted(context.Background(), "uid-1", 99, true)
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestTodoRepoSetCompletedUnchangedIsFine(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectExec("UPDATE todos SET completed=? WHERE user_id=? AND id=?").
		WithArgs(true, "uid-1", uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	// the row exists, it was already completed
	mock.ExpectQuery("SELECT id,task,note,completed,due,created_at,user_id FROM todos WHERE user_id=? AND id=? LIMIT 1").
		WithArgs("uid-1", uint64(7)).
		WillReturnRows(sqlmock.NewRows(todoCols).
			AddRow(7, "buy milk", "", true, now, now, "uid-1"))

	assert.NoError(t, NewTodoRepo(db).SetCompleted(context.Background(), "uid-1", 7, true))
}

func TestTodoRepoDelete(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM todos WHERE user_id=? AND id=?").
		WithArgs("uid-1", uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, NewTodoRepo(db).Delete(context.Background(), "uid-1", 42))

	mock.ExpectExec("DELETE FROM todos WHERE user_id=? AND id=?").
		WithArgs("uid-1", uint64(43)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, NewTodoRepo(db).Delete(context.Background(), "uid-1", 43), ErrTodoNotFound)
}

func TestTodoRepoDeleteByCompleted(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM todos WHERE user_id=? AND completed=?").
		WithArgs("uid-1", true).
		WillReturnResult(sqlmock.NewResult(0, 5))

	n, err := NewTodoRepo(db).DeleteByCompleted(context.Background(), "uid-1", true)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

func TestTodoRepoDeleteByUser(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM todos WHERE user_id=?").
		WithArgs("uid-1").
		WillReturnResult(sqlmock.NewResult(0, 9))

	n, err := NewTodoRepo(db).DeleteByUser(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
}
