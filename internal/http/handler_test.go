package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skillhub.com/skillhub/internal/auth"
	middleware "skillhub.com/skillhub/internal/http/middlewares"
	model "skillhub.com/skillhub/internal/models"
	repository "skillhub.com/skillhub/internal/repositories"
	"skillhub.com/skillhub/internal/services"
)

// noopGuard always grants; the assignment transaction stays the real one.
type noopGuard struct{}

func (noopGuard) Acquire(ctx context.Context, taskID string) error { return nil }
func (noopGuard) Release(ctx context.Context, taskID string) error { return nil }

// dropBroker swallows pushes; transcripts still come from the database.
type dropBroker struct{}

func (dropBroker) Publish(ctx context.Context, message model.ChatMessage) error {
	return nil
}

func (dropBroker) Subscribe(ctx context.Context, taskID string) (<-chan model.ChatMessage, error) {
	ch := make(chan model.ChatMessage)
	close(ch)
	return ch, nil
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Profile{},
		&model.TaskCategory{},
		&model.Task{},
		&model.TaskApplication{},
		&model.ChatMessage{},
	))
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	profileRepo := repository.NewProfileRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	tokens := auth.NewTokenManager("test-secret", 1)

	categoryService := services.NewCategoryService(categoryRepo)
	require.NoError(t, categoryService.Seed(context.Background()))

	handler := NewHandler(
		services.NewAuthService(profileRepo, tokens),
		services.NewTaskService(taskRepo, applicationRepo),
		services.NewApplicationService(applicationRepo, taskRepo, noopGuard{}),
		categoryService,
		services.NewProfileService(profileRepo, 1, time.Millisecond),
		services.NewChatService(messageRepo, taskRepo, dropBroker{}),
	)

	e := echo.New()
	Register(e, handler, middleware.Auth(tokens), 10000)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func registerUser(t *testing.T, e *echo.Echo, username, role string) string {
	t.Helper()

	body := `{"email":"` + username + `@example.com","password":"correct horse","full_name":"` + username + `","username":"` + username + `","role":"` + role + `"}`
	rec := doJSON(t, e, http.MethodPost, "/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestAPI_AuthRequired(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodGet, "/tasks", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/tasks", "garbage-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Health and catalog stay public.
	rec = doJSON(t, e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/categories", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_TaskLifecycle(t *testing.T) {
	e := newTestServer(t)

	customer := registerUser(t, e, "alice", "customer")
	tasker := registerUser(t, e, "bob", "tasker")

	// Customer posts a task.
	createBody := `{"category_id":"1","title":"Mount a TV","description":"55 inch above the fireplace","task_size":"medium","budget_min":50,"budget_max":120,"urgency":"flexible","city":"Austin","state":"TX"}`
	rec := doJSON(t, e, http.MethodPost, "/tasks", customer, createBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var task struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decode(t, rec, &task)
	assert.Equal(t, "posted", task.Status)

	// Tasker sees it and applies.
	rec = doJSON(t, e, http.MethodGet, "/tasks", tasker, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listing struct {
		Count int `json:"count"`
	}
	decode(t, rec, &listing)
	assert.Equal(t, 1, listing.Count)

	rec = doJSON(t, e, http.MethodPost, "/tasks/"+task.ID+"/applications", tasker, `{"message":"I can do this today"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var application struct {
		ID            string   `json:"id"`
		ProposedPrice *float64 `json:"proposed_price"`
	}
	decode(t, rec, &application)
	require.NotNil(t, application.ProposedPrice)
	assert.Equal(t, 120.0, *application.ProposedPrice)

	// Customer reviews and accepts.
	rec = doJSON(t, e, http.MethodGet, "/tasks/"+task.ID+"/applications", customer, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodPut, "/applications/"+application.ID, customer, `{"status":"accepted"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, e, http.MethodGet, "/tasks/"+task.ID, customer, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var detailed struct {
		Status        string `json:"status"`
		TaskerProfile *struct {
			Username string `json:"username"`
		} `json:"tasker_profile"`
	}
	decode(t, rec, &detailed)
	assert.Equal(t, "assigned", detailed.Status)
	require.NotNil(t, detailed.TaskerProfile)
	assert.Equal(t, "bob", detailed.TaskerProfile.Username)

	// Chat opens between the two.
	rec = doJSON(t, e, http.MethodPost, "/tasks/"+task.ID+"/messages", customer, `{"content":"when can you start?"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, e, http.MethodGet, "/tasks/"+task.ID+"/messages", tasker, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var transcript struct {
		Count int `json:"count"`
	}
	decode(t, rec, &transcript)
	assert.Equal(t, 1, transcript.Count)

	// Tasker works the task to completion.
	rec = doJSON(t, e, http.MethodPut, "/tasks/"+task.ID+"/status", tasker, `{"status":"in_progress"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, e, http.MethodPut, "/tasks/"+task.ID+"/status", tasker, `{"status":"completed","final_price":110}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var completed struct {
		Status     string   `json:"status"`
		FinalPrice *float64 `json:"final_price"`
	}
	decode(t, rec, &completed)
	assert.Equal(t, "completed", completed.Status)
	require.NotNil(t, completed.FinalPrice)
	assert.Equal(t, 110.0, *completed.FinalPrice)
}

func TestAPI_ErrorMapping(t *testing.T) {
	e := newTestServer(t)

	customer := registerUser(t, e, "alice", "customer")
	tasker := registerUser(t, e, "bob", "tasker")

	// Validation is a 400.
	rec := doJSON(t, e, http.MethodPost, "/tasks", customer, `{"title":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Wrong role is a 403.
	createBody := `{"category_id":"1","title":"Mount a TV","description":"tv","task_size":"medium","budget_min":50,"budget_max":120,"urgency":"flexible"}`
	rec = doJSON(t, e, http.MethodPost, "/tasks", tasker, createBody)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Unknown task is a 404.
	rec = doJSON(t, e, http.MethodGet, "/tasks/missing", customer, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// An impossible transition is a 409.
	rec = doJSON(t, e, http.MethodPost, "/tasks", customer, createBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	var task struct {
		ID string `json:"id"`
	}
	decode(t, rec, &task)

	rec = doJSON(t, e, http.MethodPut, "/tasks/"+task.ID+"/status", customer, `{"status":"completed"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Duplicate registration is a 409.
	rec = doJSON(t, e, http.MethodPost, "/auth/register", "", `{"email":"alice@example.com","password":"correct horse","full_name":"alice","username":"alice9","role":"customer"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Bad credentials are a 401.
	rec = doJSON(t, e, http.MethodPost, "/auth/login", "", `{"email":"alice@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_Profile(t *testing.T) {
	e := newTestServer(t)
	token := registerUser(t, e, "alice", "customer")

	rec := doJSON(t, e, http.MethodGet, "/profile", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var profile struct {
		Username string `json:"username"`
	}
	decode(t, rec, &profile)
	assert.Equal(t, "alice", profile.Username)

	rec = doJSON(t, e, http.MethodPut, "/profile", token, `{"bio":"I post tasks"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated struct {
		Bio *string `json:"bio"`
	}
	decode(t, rec, &updated)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, "I post tasks", *updated.Bio)

	// Rate is tasker-only.
	rec = doJSON(t, e, http.MethodPut, "/profile", token, `{"hourly_rate":45}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
