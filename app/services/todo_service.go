package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/xdoubleu/essentia/v2/pkg/errortools"
	"gorm.io/gorm"

	"todo-api/app/models"
)

// TodoService handles todo-related operations.
type TodoService struct {
	db *gorm.DB
}

// NewTodoService creates a new instance of TodoService.
func NewTodoService(db *gorm.DB) *TodoService {
	return &TodoService{db: db}
}

// List retrieves all todos ordered by id.
func (s *TodoService) List(ctx context.Context) ([]models.Todo, error) {
	todos := []models.Todo{}
	if err := s.db.WithContext(ctx).Order("id").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// ListWhere retrieves the todos matching a gorm condition, for example
// ListWhere(ctx, "is_complete = ?", true).
func (s *TodoService) ListWhere(ctx context.Context, query any, args ...any) ([]models.Todo, error) {
	todos := []models.Todo{}
	err := s.db.WithContext(ctx).Where(query, args...).Order("id").Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("list todos where %v: %w", query, err)
	}
	return todos, nil
}

// ListCompleted retrieves the todos marked as complete.
func (s *TodoService) ListCompleted(ctx context.Context) ([]models.Todo, error) {
	return s.ListWhere(ctx, "is_complete = ?", true)
}

// GetByID retrieves a single todo by its id.
func (s *TodoService) GetByID(ctx context.Context, id int64) (*models.Todo, error) {
	var todo models.Todo
	err := s.db.WithContext(ctx).First(&todo, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("get todo %d: %w", id, err)
	}
	return &todo, nil
}

// Create inserts the todo and sets its ID. Any ID already on the todo is
// discarded.
func (s *TodoService) Create(ctx context.Context, todo *models.Todo) error {
	todo.ID = 0
	if err := s.db.WithContext(ctx).Create(todo).Error; err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

// Update writes the name and completion flag of a previously fetched todo.
func (s *TodoService) Update(ctx context.Context, todo *models.Todo) error {
	result := s.db.WithContext(ctx).
		Model(&models.Todo{ID: todo.ID}).
		Select("name", "is_complete").
		Updates(todo)
	if result.Error != nil {
		return fmt.Errorf("update todo %d: %w", todo.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound(todo.ID)
	}
	return nil
}

// Delete removes the todo.
func (s *TodoService) Delete(ctx context.Context, todo *models.Todo) error {
	result := s.db.WithContext(ctx).Delete(&models.Todo{}, todo.ID)
	if result.Error != nil {
		return fmt.Errorf("delete todo %d: %w", todo.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound(todo.ID)
	}
	return nil
}

func notFound(id int64) errortools.NotFoundError {
	return errortools.NewNotFoundError("todo", id, "id")
}
