package app_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"github.com/xdoubleu/essentia/v2/pkg/logging"

	"todo-api/app"
	"todo-api/app/config"
	"todo-api/app/models"
)

func newTestApp(t *testing.T, env string) *app.Application {
	t.Helper()

	cfg := config.Config{
		Env:            env,
		Port:           0,
		DBName:         "test-" + uuid.NewString(),
		AllowedOrigins: []string{"*"},
	}

	application, err := app.New(logging.NewNopLogger(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	return application
}

func TestTodoLifecycle(t *testing.T) {
	srv := httptest.NewServer(newTestApp(t, config.TestEnv).Handler())
	defer srv.Close()

	res, err := http.Post(srv.URL+"/todoitems", "application/json",
		strings.NewReader(`{"name":"ship it","isComplete":false}`))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))

	var created models.Todo
	require.NoError(t, httptools.ReadJSON(res.Body, &created))

	itemURL := srv.URL + res.Header.Get("Location")
	assert.Equal(t, srv.URL+fmt.Sprintf("/todoitems/%d", created.ID), itemURL)

	req, err := http.NewRequest(http.MethodPut, itemURL,
		strings.NewReader(`{"name":"shipped","isComplete":true}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	res, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	res, err = http.Get(srv.URL + "/todoitems/complete")
	require.NoError(t, err)
	var completed []models.Todo
	require.NoError(t, httptools.ReadJSON(res.Body, &completed))
	res.Body.Close()
	assert.Equal(t, []models.Todo{{ID: created.ID, Name: "shipped", IsComplete: true}}, completed)

	for _, want := range []int{http.StatusNoContent, http.StatusNotFound} {
		req, err = http.NewRequest(http.MethodDelete, itemURL, nil)
		require.NoError(t, err)
		res, err = http.DefaultClient.Do(req)
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, want, res.StatusCode)
	}
}

func TestConcurrentRequests(t *testing.T) {
	const workers = 100

	srv := httptest.NewServer(newTestApp(t, config.TestEnv).Handler())
	defer srv.Close()
	client := srv.Client()

	res, err := client.Post(srv.URL+"/todoitems", "application/json",
		strings.NewReader(`{"name":"seed"}`))
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	statuses := make(chan int, 2*workers)
	errs := make(chan error, 2*workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(2)

		go func(i int) {
			defer wg.Done()

			res, err := client.Post(srv.URL+"/todoitems", "application/json",
				strings.NewReader(fmt.Sprintf(`{"name":"item %d"}`, i)))
			if err != nil {
				errs <- err
				return
			}
			res.Body.Close()
			statuses <- res.StatusCode
		}(i)

		go func() {
			defer wg.Done()

			res, err := client.Get(srv.URL + "/todoitems")
			if err != nil {
				errs <- err
				return
			}
			res.Body.Close()
			statuses <- res.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	for status := range statuses {
		assert.Less(t, status, http.StatusInternalServerError)
	}

	res, err = client.Get(srv.URL + "/todoitems")
	require.NoError(t, err)
	defer res.Body.Close()

	var todos []models.Todo
	require.NoError(t, httptools.ReadJSON(res.Body, &todos))
	assert.Len(t, todos, workers+1)

	ids := make(map[int64]struct{}, len(todos))
	for _, todo := range todos {
		ids[todo.ID] = struct{}{}
	}
	assert.Len(t, ids, workers+1)
}

func TestDocsOnlyInDevelopment(t *testing.T) {
	tests := []struct {
		env        string
		wantStatus int
	}{
		{config.DevEnv, http.StatusOK},
		{config.ProdEnv, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			h := newTestApp(t, tt.env).Handler()

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, rr.Body.String(), "TodoAPI v1")
				assert.Contains(t, rr.Body.String(), "/todoitems/{id}")
			}
		})
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	application := newTestApp(t, config.TestEnv)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
