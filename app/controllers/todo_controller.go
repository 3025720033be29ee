package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"github.com/xdoubleu/essentia/v2/pkg/errortools"

	"todo-api/app/models"
)

// TodoStore is the data store the controller works against.
type TodoStore interface {
	List(ctx context.Context) ([]models.Todo, error)
	ListCompleted(ctx context.Context) ([]models.Todo, error)
	GetByID(ctx context.Context, id int64) (*models.Todo, error)
	Create(ctx context.Context, todo *models.Todo) error
	Update(ctx context.Context, todo *models.Todo) error
	Delete(ctx context.Context, todo *models.Todo) error
}

// TodoController handles HTTP requests for todo items. Store errors other
// than errortools.NotFoundError are answered with 500 and logged through
// the logger on the request context.
type TodoController struct {
	Store TodoStore
}

// NewTodoController creates a new TodoController.
func NewTodoController(store TodoStore) *TodoController {
	return &TodoController{Store: store}
}

// Welcome handles GET /.
func (c *TodoController) Welcome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Hello World!"))
}

// GetTodos handles GET /todoitems.
//
//	@Summary	List all todo items
//	@Tags		todoitems
//	@Produce	json
//	@Success	200	{array}	models.Todo
//	@Router		/todoitems [get]
func (c *TodoController) GetTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := c.Store.List(r.Context())
	if err != nil {
		httptools.ServerErrorResponse(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, todos)
}

// GetCompletedTodos handles GET /todoitems/complete.
//
//	@Summary	List completed todo items
//	@Tags		todoitems
//	@Produce	json
//	@Success	200	{array}	models.Todo
//	@Router		/todoitems/complete [get]
func (c *TodoController) GetCompletedTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := c.Store.ListCompleted(r.Context())
	if err != nil {
		httptools.ServerErrorResponse(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, todos)
}

// GetTodoByID handles GET /todoitems/{id}.
//
//	@Summary	Get a todo item
//	@Tags		todoitems
//	@Produce	json
//	@Param		id	path		int	true	"Todo ID"
//	@Success	200	{object}	models.Todo
//	@Failure	404	{object}	errortools.ErrorDto
//	@Router		/todoitems/{id} [get]
func (c *TodoController) GetTodoByID(w http.ResponseWriter, r *http.Request) {
	todo, ok := c.findTodo(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, todo)
}

// CreateTodo handles POST /todoitems.
//
//	@Summary	Create a todo item
//	@Tags		todoitems
//	@Accept		json
//	@Produce	json
//	@Param		todo	body		models.TodoDto	true	"Todo"
//	@Success	201		{object}	models.Todo
//	@Failure	400		{object}	errortools.ErrorDto
//	@Router		/todoitems [post]
func (c *TodoController) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var dto models.TodoDto
	if err := httptools.ReadJSON(r.Body, &dto); err != nil {
		httptools.BadRequestResponse(w, r, err)
		return
	}

	todo := dto.ToTodo()
	if err := c.Store.Create(r.Context(), &todo); err != nil {
		httptools.ServerErrorResponse(w, r, err)
		return
	}

	headers := http.Header{}
	headers.Set("Location", fmt.Sprintf("/todoitems/%d", todo.ID))
	if err := httptools.WriteJSON(w, http.StatusCreated, todo, headers); err != nil {
		httptools.ServerErrorResponse(w, r, err)
	}
}

// UpdateTodo handles PUT /todoitems/{id}.
//
//	@Summary	Update a todo item
//	@Tags		todoitems
//	@Accept		json
//	@Param		id		path	int				true	"Todo ID"
//	@Param		todo	body	models.TodoDto	true	"Todo"
//	@Success	204
//	@Failure	400	{object}	errortools.ErrorDto
//	@Failure	404	{object}	errortools.ErrorDto
//	@Router		/todoitems/{id} [put]
func (c *TodoController) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	var dto models.TodoDto
	if err := httptools.ReadJSON(r.Body, &dto); err != nil {
		httptools.BadRequestResponse(w, r, err)
		return
	}

	todo, ok := c.findTodo(w, r)
	if !ok {
		return
	}

	dto.Apply(todo)
	if err := c.Store.Update(r.Context(), todo); err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteTodo handles DELETE /todoitems/{id}.
//
//	@Summary	Delete a todo item
//	@Tags		todoitems
//	@Param		id	path	int	true	"Todo ID"
//	@Success	204
//	@Failure	404	{object}	errortools.ErrorDto
//	@Router		/todoitems/{id} [delete]
func (c *TodoController) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	todo, ok := c.findTodo(w, r)
	if !ok {
		return
	}

	if err := c.Store.Delete(r.Context(), todo); err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// findTodo loads the todo named by the {id} path variable. It writes the
// error response itself and reports false when there is nothing to act on.
func (c *TodoController) findTodo(w http.ResponseWriter, r *http.Request) (*models.Todo, bool) {
	rawID := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		httptools.NotFoundResponse(w, r, errortools.NewNotFoundError("todo", rawID, "id"))
		return nil, false
	}

	todo, err := c.Store.GetByID(r.Context(), id)
	if err != nil {
		httptools.HandleError(w, r, err)
		return nil, false
	}
	return todo, true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	if err := httptools.WriteJSON(w, status, data, nil); err != nil {
		httptools.ServerErrorResponse(w, r, err)
	}
}
