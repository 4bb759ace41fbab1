// Package domain defines the core task domain entities and types.
//
// Tasks are immutable after construction. Every mutation serializes the
// current state, splices in the new value with a refreshed UpdatedAt and
// re-runs the full factory validation, so cross-field rules always hold.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/taskhub/internal/errors"
	userDomain "github.com/allisson/taskhub/internal/user/domain"
	appValidation "github.com/allisson/taskhub/internal/validation"
)

// TaskID is a nominally typed task identifier, distinct from UserID at the
// type level even though both are UUIDs underneath.
type TaskID uuid.UUID

// NewTaskID generates a new time-ordered task identifier.
func NewTaskID() TaskID {
	return TaskID(uuid.Must(uuid.NewV7()))
}

// ParseTaskID validates an untrusted string and converts it into a TaskID.
func ParseTaskID(value string) (TaskID, error) {
	if err := appValidation.UUID.Validate(value); err != nil {
		return TaskID{}, apperrors.Wrap(
			apperrors.ErrInvalidInput,
			fmt.Sprintf("task id %q: must be a valid UUID", value),
		)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return TaskID{}, apperrors.Wrap(
			apperrors.ErrInvalidInput,
			fmt.Sprintf("task id %q: must be a valid UUID", value),
		)
	}
	return TaskID(id), nil
}

// TaskIDFromUUID converts an already validated UUID into a TaskID.
func TaskIDFromUUID(id uuid.UUID) TaskID {
	return TaskID(id)
}

// UUID returns the underlying UUID value.
func (id TaskID) UUID() uuid.UUID {
	return uuid.UUID(id)
}

// String renders the identifier in canonical UUID form.
func (id TaskID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether the identifier is the zero UUID.
func (id TaskID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// Status represents the workflow state of a task. There is no transition
// graph: any status may replace any other, including itself.
type Status string

// Task statuses.
const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Statuses lists every valid task status.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// ParseStatus validates an untrusted string and converts it into a Status.
func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusTodo, StatusInProgress, StatusDone:
		return Status(value), nil
	default:
		return "", apperrors.Wrap(
			apperrors.ErrInvalidInput,
			fmt.Sprintf("task status %q: must be one of todo, in_progress, done", value),
		)
	}
}

// String returns the status as a plain string.
func (s Status) String() string {
	return string(s)
}

// IsValid reports whether the status is one of the known values.
func (s Status) IsValid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// statusRule validates a status string inside a record schema.
var statusRule = validation.NewStringRuleWithError(
	func(s string) bool {
		return Status(s).IsValid()
	},
	validation.NewError("validation_task_status", "must be one of todo, in_progress, done"),
)

// TaskRecord is the serialized shape of a Task. Description is nil when the
// task has no description; an absent description is not a validation failure.
type TaskRecord struct {
	ID          string
	Title       string
	Description *string
	Status      string
	AssigneeID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks every field of the record against the task schema.
// A description, when present, must be 50 to 1000 characters.
func (r TaskRecord) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID,
			validation.Required.Error("id is required"),
			appValidation.UUID,
		),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("title must be between 1 and 255 characters"),
		),
		validation.Field(&r.Description,
			validation.NilOrNotEmpty.Error("description must not be empty when present"),
			validation.Length(50, 1000).Error("description must be between 50 and 1000 characters"),
		),
		validation.Field(&r.Status,
			validation.Required.Error("status is required"),
			statusRule,
		),
		validation.Field(&r.AssigneeID,
			validation.Required.Error("assignee_id is required"),
			appValidation.UUID,
		),
		validation.Field(&r.CreatedAt,
			validation.Required.Error("created_at is required"),
		),
		validation.Field(&r.UpdatedAt,
			validation.Required.Error("updated_at is required"),
		),
	)
}

// Task represents a unit of work assigned to a user. The assignee is any
// valid UUID; referential integrity against the users table is not enforced
// at this layer.
type Task struct {
	ID          TaskID
	Title       string
	Description *string
	Status      Status
	AssigneeID  userDomain.UserID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTask validates a serialized record and constructs a Task from it.
// On any field failure it returns a validation error naming the entity kind
// and the offending field; no partial entity is ever produced.
func NewTask(record TaskRecord) (*Task, error) {
	if err := record.Validate(); err != nil {
		return nil, appValidation.WrapEntityValidationError("task", err)
	}

	id, err := ParseTaskID(record.ID)
	if err != nil {
		return nil, err
	}

	assigneeID, err := userDomain.ParseUserID(record.AssigneeID)
	if err != nil {
		return nil, err
	}

	status, err := ParseStatus(record.Status)
	if err != nil {
		return nil, err
	}

	return &Task{
		ID:          id,
		Title:       record.Title,
		Description: copyDescription(record.Description),
		Status:      status,
		AssigneeID:  assigneeID,
		CreatedAt:   record.CreatedAt.UTC(),
		UpdatedAt:   record.UpdatedAt.UTC(),
	}, nil
}

// Serialize converts the Task back into its record form. It is the exact
// inverse of NewTask: NewTask(t.Serialize()) reconstructs an equal Task.
func (t *Task) Serialize() TaskRecord {
	return TaskRecord{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: copyDescription(t.Description),
		Status:      t.Status.String(),
		AssigneeID:  t.AssigneeID.String(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// UpdateTitle returns a new Task with the title replaced and UpdatedAt
// refreshed. The whole record is re-validated, not just the changed field.
func (t *Task) UpdateTitle(title string) (*Task, error) {
	record := t.Serialize()
	record.Title = title
	record.UpdatedAt = time.Now().UTC()
	return NewTask(record)
}

// UpdateDescription returns a new Task with the description replaced and
// UpdatedAt refreshed. Passing nil clears the description.
func (t *Task) UpdateDescription(description *string) (*Task, error) {
	record := t.Serialize()
	record.Description = copyDescription(description)
	record.UpdatedAt = time.Now().UTC()
	return NewTask(record)
}

// UpdateStatus returns a new Task with the status replaced and UpdatedAt
// refreshed. A same-status update succeeds and still refreshes UpdatedAt.
func (t *Task) UpdateStatus(status Status) (*Task, error) {
	record := t.Serialize()
	record.Status = status.String()
	record.UpdatedAt = time.Now().UTC()
	return NewTask(record)
}

// UpdateAssignee returns a new Task with the assignee replaced and UpdatedAt
// refreshed.
func (t *Task) UpdateAssignee(assigneeID userDomain.UserID) (*Task, error) {
	record := t.Serialize()
	record.AssigneeID = assigneeID.String()
	record.UpdatedAt = time.Now().UTC()
	return NewTask(record)
}

// Touch returns a new Task with UpdatedAt refreshed and every other field
// unchanged. The whole record is re-validated like any other update.
func (t *Task) Touch() (*Task, error) {
	record := t.Serialize()
	record.UpdatedAt = time.Now().UTC()
	return NewTask(record)
}

// copyDescription clones an optional description so entities never share the
// pointed-to value with callers or with each other.
func copyDescription(description *string) *string {
	if description == nil {
		return nil
	}
	value := *description
	return &value
}
