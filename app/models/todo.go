package models

// Todo represents a todo item. ID is assigned by the store on creation.
type Todo struct {
	ID         int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string `json:"name"`
	IsComplete bool   `json:"isComplete"`
}

// TodoDto is the request body accepted when creating or updating a todo.
type TodoDto struct {
	Name       string `json:"name"`
	IsComplete bool   `json:"isComplete"`
}

// ToTodo builds a new, unsaved Todo from the dto.
func (dto TodoDto) ToTodo() Todo {
	return Todo{Name: dto.Name, IsComplete: dto.IsComplete}
}

// Apply copies the mutable fields onto an existing todo.
func (dto TodoDto) Apply(todo *Todo) {
	todo.Name = dto.Name
	todo.IsComplete = dto.IsComplete
}
