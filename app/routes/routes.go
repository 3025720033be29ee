package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	"todo-api/app/controllers"
	_ "todo-api/app/docs" // registers the generated swagger document
)

// RegisterRoutes sets up all todo routes for the application.
func RegisterRoutes(router *mux.Router, todoController *controllers.TodoController) {
	router.HandleFunc("/", todoController.Welcome).Methods(http.MethodGet)

	todos := router.PathPrefix("/todoitems").Subrouter()
	for _, root := range []string{"", "/"} {
		todos.HandleFunc(root, todoController.GetTodos).Methods(http.MethodGet)
		todos.HandleFunc(root, todoController.CreateTodo).Methods(http.MethodPost)
	}
	// complete must be registered before {id}
	todos.HandleFunc("/complete", todoController.GetCompletedTodos).Methods(http.MethodGet)
	todos.HandleFunc("/{id:[0-9]+}", todoController.GetTodoByID).Methods(http.MethodGet)
	todos.HandleFunc("/{id:[0-9]+}", todoController.UpdateTodo).Methods(http.MethodPut)
	todos.HandleFunc("/{id:[0-9]+}", todoController.DeleteTodo).Methods(http.MethodDelete)
}

// RegisterDocs serves the API documentation UI under /swagger/.
func RegisterDocs(router *mux.Router) {
	router.Handle("/swagger", http.RedirectHandler("/swagger/index.html", http.StatusMovedPermanently))
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DocExpansion("list"),
	)).Methods(http.MethodGet)
}
