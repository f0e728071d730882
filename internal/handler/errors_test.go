package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"task-tracker/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestWriteErrorStatusMapping(t *testing.T) {
	verr := model.NewValidationError()
	verr.Add("name", "This field is required.")

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", verr, http.StatusBadRequest},
		{"not found", fmt.Errorf("get category: %w", model.ErrNotFound), http.StatusNotFound},
		{"conflict", model.ErrConflict, http.StatusBadRequest},
		{"unauthorized", model.ErrUnauthorized, http.StatusUnauthorized},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			writeError(c, zap.NewNop(), "test", tc.err)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}

func TestWriteErrorValidationBody(t *testing.T) {
	verr := model.NewValidationError()
	verr.Add("name", "This field may not be blank.")

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	writeError(c, zap.NewNop(), "test", verr)

	if !strings.Contains(rec.Body.String(), `"name":"This field may not be blank."`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestPathID(t *testing.T) {
	cases := []struct {
		raw string
		id  uint
		ok  bool
	}{
		{"7", 7, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Params = gin.Params{{Key: "id", Value: tc.raw}}
		id, ok := pathID(c)
		if id != tc.id || ok != tc.ok {
			t.Fatalf("pathID(%q) = %d, %v", tc.raw, id, ok)
		}
		if !ok && rec.Code != http.StatusNotFound {
			t.Fatalf("pathID(%q) wrote %d", tc.raw, rec.Code)
		}
	}
}

func TestBindPayloadMalformedJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{bad"))
	c.Request.Header.Set("Content-Type", "application/json")

	var in struct {
		Name *string `json:"name"`
	}
	err := bindPayload(c, &in)
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBindPayloadEmptyBody(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	c.Request.Header.Set("Content-Type", "application/json")

	var in struct {
		Name *string `json:"name"`
	}
	if err := bindPayload(c, &in); err != nil {
		t.Fatalf("empty body should bind cleanly: %v", err)
	}
	if in.Name != nil {
		t.Fatalf("expected nil name")
	}
}
