package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"task-tracker/internal/model"
)

const maxNameLength = 255

// NameInput is the writable payload of categories and statuses.
type NameInput struct {
	Name *string `json:"name" form:"name"`
}

// Resolve validates the submitted name and returns the value to store.
// A partial update without a name keeps current.
func (in NameInput) Resolve(current string, partial bool) (string, error) {
	verr := model.NewValidationError()
	if in.Name == nil {
		if partial {
			return current, nil
		}
		verr.Add("name", msgRequired)
		return "", verr
	}

	name := strings.TrimSpace(*in.Name)
	switch {
	case name == "":
		verr.Add("name", msgBlank)
	case utf8.RuneCountInString(name) > maxNameLength:
		verr.Add("name", fmt.Sprintf("Ensure this field has no more than %d characters.", maxNameLength))
	}
	if err := verr.OrNil(); err != nil {
		return "", err
	}
	return name, nil
}

func NewCategory(in NameInput) (model.Category, error) {
	name, err := in.Resolve("", false)
	if err != nil {
		return model.Category{}, err
	}
	return model.Category{Name: name}, nil
}

func NewStatus(in NameInput) (model.Status, error) {
	name, err := in.Resolve("", false)
	if err != nil {
		return model.Status{}, err
	}
	return model.Status{Name: name}, nil
}
