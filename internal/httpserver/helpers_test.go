package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"task-tracker/internal/handler"
	"task-tracker/internal/model"
	"task-tracker/internal/repository"
	"task-tracker/internal/service"
	"task-tracker/internal/util"
)

const testDefaultStatusID = 1

type testEnv struct {
	t      *testing.T
	router *Router
	db     *gorm.DB
	auth   *service.AuthService
	tasks  *repository.TaskRepository
	user   *model.User
	token  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repository.NewDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), zap.NewNop())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	logger := zap.NewNop()
	users := repository.NewUserRepository(db)
	auth := service.NewAuthService(users, util.NewPasswordHasher(bcrypt.MinCost), "test-secret", time.Hour)
	categories := repository.NewCategoryRepository(db)
	statuses := repository.NewStatusRepository(db, testDefaultStatusID)
	tasks := repository.NewTaskRepository(db)
	taskSvc := service.NewTaskService(tasks, categories, statuses)

	router := NewRouter(
		auth,
		handler.NewAuthHandler(auth, logger),
		handler.NewCategoryResource(categories, logger),
		handler.NewStatusResource(statuses, logger),
		handler.NewTaskResource(func(userID uint) handler.Store[model.Task] {
			return tasks.OwnedBy(userID)
		}, taskSvc, logger),
		sqlDB,
		logger,
	)

	env := &testEnv{t: t, router: router, db: db, auth: auth, tasks: tasks}
	env.user, env.token = env.newUser("test.email@mail.ru")
	return env
}

func (e *testEnv) newUser(email string) (*model.User, string) {
	e.t.Helper()
	u, err := e.auth.Register(context.Background(), service.RegisterInput{
		Email:     email,
		Username:  "testUser",
		FirstName: "test",
		LastName:  "user",
		Password:  "password",
	})
	if err != nil {
		e.t.Fatalf("register: %v", err)
	}
	token, err := e.auth.IssueToken(u.ID)
	if err != nil {
		e.t.Fatalf("issue token: %v", err)
	}
	return u, token
}

func (e *testEnv) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.Handler().ServeHTTP(rec, req)
	return rec
}

// form sends an urlencoded body, the way a browser form or test client would.
func (e *testEnv) form(method, path string, data url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if data != nil {
		body = strings.NewReader(data.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if data != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return e.serve(req, e.token)
}

func (e *testEnv) json(method, path string, payload any) *httptest.ResponseRecorder {
	return e.jsonAs(e.token, method, path, payload)
}

func (e *testEnv) jsonAs(token, method, path string, payload any) *httptest.ResponseRecorder {
	e.t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			e.t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.serve(req, token)
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.serve(httptest.NewRequest(http.MethodGet, path, nil), e.token)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func (e *testEnv) createCategory(name string) model.Category {
	e.t.Helper()
	c := model.Category{Name: name}
	if err := e.db.Create(&c).Error; err != nil {
		e.t.Fatalf("create category: %v", err)
	}
	return c
}

func (e *testEnv) createStatus(name string) model.Status {
	e.t.Helper()
	s := model.Status{Name: name}
	if err := e.db.Create(&s).Error; err != nil {
		e.t.Fatalf("create status: %v", err)
	}
	return s
}
