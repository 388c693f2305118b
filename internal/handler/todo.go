package handler // handler package also contains the todo CRUD handlers

import (
	"context"  // context carries cancellation into repository calls
	"errors"   // errors.Is for sentinel comparisons
	"net/http" // http provides status code constants
	"strconv"  // strconv parses path identifiers to numeric types
	"strings"  // strings offers trimming utilities
	"time"     // time builds per-request deadlines and due dates

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/imisi99/Todoapi/internal/model"      // model holds the todo row type
	"github.com/imisi99/Todoapi/internal/repository" // repository performs the database work
)

// TodoHandler bundles dependencies for the todo endpoints.
type TodoHandler struct {
	Todos *repository.TodoRepo
}

func NewTodoHandler(t *repository.TodoRepo) *TodoHandler {
	return &TodoHandler{Todos: t}
}

type todoReq struct {
	Task string    `json:"task"` // Task is the only required field
	Note string    `json:"note"`
	Due  time.Time `json:"due"`
}

// todoCtx builds a bounded context for a single repository call.
func todoCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// todoError maps repository failures onto HTTP responses.
func todoError(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrTodoNotFound) { // missing or foreign row
		return c.JSON(http.StatusNotFound, echo.Map{"error": "todo not found"}) // respond with not found
	}
	return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"}) // anything else is a storage fault
}

// ListTodos handles GET /todo/all-todo and returns every todo owned by the caller.
func (h *TodoHandler) ListTodos(c echo.Context) error { // begin ListTodos handler
	uid, ok := getUserID(c) // extract the user ID placed in context by the JWT middleware
	if !ok {               // missing ID means the middleware did not run
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	ctx, cancel := todoCtx(c) // bound the repository call
	defer cancel()

	items, err := h.Todos.ListByUser(ctx, uid) // fetch todos for this user only
	if err != nil {                            // handle repository errors
		return todoError(c, err)
	}
	return c.JSON(http.StatusOK, items) // return the list as a JSON array
}

// GetTodo handles GET /todo/get-todo/:todo_id and returns one todo by ID.
func (h *TodoHandler) GetTodo(c echo.Context) error { // begin GetTodo handler
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("todo_id"), 10, 64) // parse the todo ID from the URL
	if err != nil {                                          // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid todo id"}) // invalid ID error response
	}
	ctx, cancel := todoCtx(c)
	defer cancel()

	item, err := h.Todos.GetByID(ctx, uid, id) // lookup is scoped to the caller's rows
	if err != nil {
		return todoError(c, err) // a todo the caller does not own reads as not found
	}
	return c.JSON(http.StatusOK, item)
}

// SearchTodos handles GET /todo/get-todo-name and matches on the task title.
func (h *TodoHandler) SearchTodos(c echo.Context) error { // begin SearchTodos handler
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	task := strings.TrimSpace(c.QueryParam("task")) // the title fragment to search for
	if task == "" {                                 // an empty query matches nothing useful
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "task query is required"})
	}
	ctx, cancel := todoCtx(c)
	defer cancel()

	items, err := h.Todos.ListByTask(ctx, uid, task)
	if err != nil {
		return todoError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// ListByCompleted handles GET /todo/get-todo-completed and filters by state.
func (h *TodoHandler) ListByCompleted(c echo.Context) error { // begin ListByCompleted handler
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	completed := true                                  // default to listing finished tasks
	if v := c.QueryParam("completed"); v != "" {       // allow ?completed=false to flip the filter
		parsed, err := strconv.ParseBool(v)            // accept true/false/1/0
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "completed must be a boolean"})
		}
		completed = parsed
	}
	ctx, cancel := todoCtx(c)
	defer cancel()

	items, err := h.Todos.ListByCompleted(ctx, uid, completed)
	if err != nil {
		return todoError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// CreateTodo handles POST /todo/create-todo and creates a todo for the caller.
func (h *TodoHandler) CreateTodo(c echo.Context) error { // begin CreateTodo handler
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req todoReq
	if err := c.Bind(&req); err != nil { // attempt to bind the request body
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"}) // return bad request when binding fails
	}
	req.Task = strings.TrimSpace(req.Task)
	if req.Task == "" { // a todo needs at least a title
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "task is required"})
	}
	todo := &model.Todo{ // instantiate the new row
		Task:   req.Task,
		Note:   strings.TrimSpace(req.Note),
		Due:    req.Due, // zero Due gets a default inside the repository
		UserID: uid,     // assign ownership to the caller
	}
	ctx, cancel := todoCtx(c)
	defer cancel()

	if err := h.Todos.Create(ctx, todo); err != nil { // delegate creation to the repository
		return todoError(c, err)
	}
	return c.JSON(http.StatusCreated, todo) // return 201 and the created todo on success
}

// CompleteTodo handles PUT /todo/complete-todo/:todo_id and flips the done flag.
func (h *TodoHandler) CompleteTodo(c echo.Context) error { // begin CompleteTodo handler
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("todo_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid todo id"})
	}
	completed := true                            // the endpoint marks a task as done
	if v := c.QueryParam("completed"); v != "" { // ?completed=false reopens a task instead
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "completed must be a boolean"})
		}
		completed = parsed
	}
	ctx, cancel := todoCtx(c)
	defer cancel()

	if err := h.Todos.SetCompleted(ctx, uid, id, completed); err != nil { // update is scoped to the caller's rows
		return todoError(c, err)
	}
	return c.JSON(http.StatusAccepted, "Todo has been updated successfully")
}

// UpdateTodo handles PUT /todo/update-todo/:todo_id and replaces the editable fields.
func (h *TodoHandler) UpdateTodo(c echo.Context) error { // begin UpdateTodo handler
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("todo_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid todo id"})
	}
	var req todoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Task = strings.TrimSpace(req.Task)
	if req.Task == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "task is required"})
	}
	due := req.Due
	if due.IsZero() { // keep the row valid when the client omits a due date
		due = time.Now().UTC().Add(24 * time.Hour)
	}
	todo := &model.Todo{
		ID:     id,
		Task:   req.Task,
		Note:   strings.TrimSpace(req.Note),
		Due:    due,
		UserID: uid,
	}
	ctx, cancel := todoCtx(c)
	defer cancel()

	if err := h.Todos.Update(ctx, todo); err != nil {
		return todoError(c, err)
	}
	return c.JSON(http.StatusAccepted, "Todo has been updated successfully")
}

// DeleteTodo handles DELETE /todo/delete-todo/:todo_id.
func (h *TodoHandler) DeleteTodo(c echo.Context) error { // begin DeleteTodo handler
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("todo_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid todo id"})
	}
	ctx, cancel := todoCtx(c)
	defer cancel()

	if err := h.Todos.Delete(ctx, uid, id); err != nil { // deleting another user's todo reads as not found
		return todoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteCompleted handles DELETE /todo/delete-completed-todo and clears finished tasks.
func (h *TodoHandler) DeleteCompleted(c echo.Context) error { // begin DeleteCompleted handler
	uid, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := todoCtx(c)
	defer cancel()

	n, err := h.Todos.DeleteByCompleted(ctx, uid, true) // only completed rows are removed
	if err != nil {
		return todoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": n}) // report how many rows were cleared
}
