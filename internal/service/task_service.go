package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"task-tracker/internal/model"
)

const (
	dateLayout    = "2006-01-02"
	msgDateFormat = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
)

// TaskInput represents the writable task fields. Absent fields are left
// alone; null, an empty date or a zero category or status clears the field.
type TaskInput struct {
	Title       *string          `json:"title" form:"title"`
	Description *string          `json:"description" form:"description"`
	DateStarted Nullable[string] `json:"date_started" form:"date_started"`
	Deadline    Nullable[string] `json:"deadline" form:"deadline"`
	Category    Nullable[uint]   `json:"category" form:"category"`
	Status      Nullable[uint]   `json:"status" form:"status"`
}

type taskStore interface {
	TitleTaken(ctx context.Context, title string, dateStarted time.Time, excludeID uint) (bool, error)
}

type existenceChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// TaskService wraps task-related business logic.
type TaskService struct {
	tasks      taskStore
	categories existenceChecker
	statuses   existenceChecker
}

func NewTaskService(tasks taskStore, categories, statuses existenceChecker) *TaskService {
	return &TaskService{tasks: tasks, categories: categories, statuses: statuses}
}

// Build creates a task owned by creatorID from the defaults plus input.
func (s *TaskService) Build(ctx context.Context, creatorID uint, input TaskInput) (model.Task, error) {
	task := model.Task{
		Title:       model.DefaultTaskTitle,
		Description: model.DefaultTaskDescription,
		CreatorID:   &creatorID,
	}
	if err := s.Apply(ctx, &task, input); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// Apply validates input and copies it onto task.
func (s *TaskService) Apply(ctx context.Context, task *model.Task, input TaskInput) error {
	verr := model.NewValidationError()
	next := *task

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		switch {
		case title == "":
			verr.Add("title", msgBlank)
		case utf8.RuneCountInString(title) > model.MaxTaskTitleLength:
			verr.Add("title", fmt.Sprintf("Ensure this field has no more than %d characters.", model.MaxTaskTitleLength))
		default:
			next.Title = title
		}
	}

	if input.Description != nil {
		desc := strings.TrimSpace(*input.Description)
		switch {
		case desc == "":
			verr.Add("description", msgBlank)
		case utf8.RuneCountInString(desc) > model.MaxTaskDescriptionLength:
			verr.Add("description", fmt.Sprintf("Ensure this field has no more than %d characters.", model.MaxTaskDescriptionLength))
		default:
			next.Description = desc
		}
	}

	if d, ok := optionalDate(input.DateStarted); !ok {
		verr.Add("date_started", msgDateFormat)
	} else if input.DateStarted.Set {
		next.DateStarted = d
	}

	if d, ok := optionalDate(input.Deadline); !ok {
		verr.Add("deadline", msgDateFormat)
	} else if input.Deadline.Set {
		next.Deadline = d
	}

	if input.Category.Set {
		id, err := s.reference(ctx, s.categories, input.Category)
		if err != nil {
			return err
		}
		if id == nil && !input.Category.Null && input.Category.Value != 0 {
			verr.Add("category", invalidPK(input.Category.Value))
		}
		next.CategoryID = id
	}

	if input.Status.Set {
		id, err := s.reference(ctx, s.statuses, input.Status)
		if err != nil {
			return err
		}
		if id == nil && !input.Status.Null && input.Status.Value != 0 {
			verr.Add("status", invalidPK(input.Status.Value))
		}
		next.StatusID = id
	}

	if err := verr.OrNil(); err != nil {
		return err
	}

	if next.DateStarted != nil {
		taken, err := s.tasks.TitleTaken(ctx, next.Title, *next.DateStarted, next.ID)
		if err != nil {
			return err
		}
		if taken {
			verr.Add("title", model.MsgTitleTaken)
			return verr
		}
	}

	*task = next
	return nil
}

// reference resolves an FK field; null or zero means "no reference" and an
// unknown id yields nil.
func (s *TaskService) reference(ctx context.Context, checker existenceChecker, field Nullable[uint]) (*uint, error) {
	id := field.Value
	if field.Null || id == 0 {
		return nil, nil
	}
	ok, err := checker.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func invalidPK(id uint) string {
	return fmt.Sprintf(`Invalid pk "%d" - object does not exist.`, id)
}

// optionalDate parses a nullable date field. ok is false only for a malformed value.
func optionalDate(field Nullable[string]) (*time.Time, bool) {
	if !field.Set || field.Null {
		return nil, true
	}
	return parseDate(field.Value)
}

func parseDate(raw string) (*time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	d, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return nil, false
	}
	return &d, true
}

// FormatDate renders an optional date the way it is accepted.
func FormatDate(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := d.UTC().Format(dateLayout)
	return &s
}
