package service

import (
	"errors"
	"strings"
	"testing"

	"task-tracker/internal/model"
)

func strPtr(s string) *string { return &s }

func TestNameInputResolve(t *testing.T) {
	long := strings.Repeat("x", maxNameLength+1)
	cases := []struct {
		name    string
		in      NameInput
		partial bool
		want    string
		field   string
	}{
		{name: "valid", in: NameInput{Name: strPtr("  Work ")}, want: "Work"},
		{name: "missing", in: NameInput{}, field: "name"},
		{name: "blank", in: NameInput{Name: strPtr("   ")}, field: "name"},
		{name: "too long", in: NameInput{Name: strPtr(long)}, field: "name"},
		{name: "partial keeps current", in: NameInput{}, partial: true, want: "current"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.in.Resolve("current", tc.partial)
			if tc.field != "" {
				var verr *model.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected validation error, got %v", err)
				}
				if _, ok := verr.Fields[tc.field]; !ok {
					t.Fatalf("expected error on %q, got %v", tc.field, verr.Fields)
				}
				if !errors.Is(err, model.ErrValidation) {
					t.Fatal("validation error should match ErrValidation")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNewCategoryAndStatus(t *testing.T) {
	c, err := NewCategory(NameInput{Name: strPtr("Test Category")})
	if err != nil || c.Name != "Test Category" {
		t.Fatalf("unexpected category %#v, err %v", c, err)
	}
	if _, err := NewStatus(NameInput{}); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
