package httpserver

import (
	"context"
	"net/http"
	"testing"

	"task-tracker/internal/service"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.jsonAs("", http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":      "new.user@mail.ru",
		"username":   "newUser",
		"first_name": "new",
		"last_name":  "user",
		"password":   "password123",
	})
	expectStatus(t, rec, http.StatusCreated)
	body := decode[map[string]any](t, rec)
	if body["email"] != "new.user@mail.ru" {
		t.Fatalf("unexpected email: %#v", body["email"])
	}
	if _, leaked := body["password_hash"]; leaked {
		t.Fatal("password hash must not be exposed")
	}

	rec = env.jsonAs("", http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    "new.user@mail.ru",
		"password": "password123",
	})
	expectStatus(t, rec, http.StatusBadRequest)

	rec = env.jsonAs("", http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "new.user@mail.ru",
		"password": "wrong-password",
	})
	expectStatus(t, rec, http.StatusUnauthorized)

	rec = env.jsonAs("", http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "new.user@mail.ru",
		"password": "password123",
	})
	expectStatus(t, rec, http.StatusOK)
	token, _ := decode[map[string]any](t, rec)["token"].(string)
	if token == "" {
		t.Fatal("expected a token")
	}

	rec = env.jsonAs(token, http.MethodGet, "/api/v1/users/me", nil)
	expectStatus(t, rec, http.StatusOK)
	if me := decode[map[string]any](t, rec); me["username"] != "newUser" {
		t.Fatalf("unexpected profile: %#v", me)
	}
}

func TestDeleteAccountCascadesTasks(t *testing.T) {
	env := newTestEnv(t)
	expectStatus(t, env.json(http.MethodPost, "/api/v1/tasks/", map[string]any{"title": "Doomed"}), http.StatusCreated)

	rec := env.json(http.MethodDelete, "/api/v1/users/me", nil)
	expectStatus(t, rec, http.StatusOK)
	if msg := decode[string](t, rec); msg != service.UserDeletedMessage {
		t.Fatalf("unexpected payload: %q", msg)
	}

	if n, _ := env.tasks.CountAll(context.Background()); n != 0 {
		t.Fatalf("expected tasks to be deleted with the user, %d left", n)
	}
	expectStatus(t, env.get("/api/v1/tasks/"), http.StatusUnauthorized)
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.token = ""

	expectStatus(t, env.get("/healthz"), http.StatusOK)
	expectStatus(t, env.get("/readyz"), http.StatusOK)

	rec := env.get("/metrics")
	expectStatus(t, rec, http.StatusOK)
}
