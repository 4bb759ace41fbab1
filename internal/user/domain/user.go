// Package domain defines the core user domain entities and types.
//
// Users are immutable after construction: every update produces a new validated
// instance via the factory, so no unvalidated value can reach the rest of the
// system.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/taskhub/internal/errors"
	appValidation "github.com/allisson/taskhub/internal/validation"
)

// UserID is a nominally typed user identifier. It cannot be confused with
// other entity identifiers even though both are UUIDs underneath.
type UserID uuid.UUID

// NewUserID generates a new time-ordered user identifier.
func NewUserID() UserID {
	return UserID(uuid.Must(uuid.NewV7()))
}

// ParseUserID validates an untrusted string and converts it into a UserID.
// The input must have the RFC 4122 textual shape (8-4-4-4-12 hex groups).
func ParseUserID(value string) (UserID, error) {
	if err := appValidation.UUID.Validate(value); err != nil {
		return UserID{}, apperrors.Wrap(
			apperrors.ErrInvalidInput,
			fmt.Sprintf("user id %q: must be a valid UUID", value),
		)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return UserID{}, apperrors.Wrap(
			apperrors.ErrInvalidInput,
			fmt.Sprintf("user id %q: must be a valid UUID", value),
		)
	}
	return UserID(id), nil
}

// UserIDFromUUID converts an already validated UUID into a UserID.
// Use only for values produced by this package or by the uuid library itself.
func UserIDFromUUID(id uuid.UUID) UserID {
	return UserID(id)
}

// UUID returns the underlying UUID value.
func (id UserID) UUID() uuid.UUID {
	return uuid.UUID(id)
}

// String renders the identifier in canonical UUID form.
func (id UserID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether the identifier is the zero UUID.
func (id UserID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// UserRecord is the serialized shape of a User. It is the only form in which
// user data crosses a boundary (request decoding, row scanning) and the only
// input the User factory accepts.
type UserRecord struct {
	ID        string
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks every field of the record against the user schema.
func (r UserRecord) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID,
			validation.Required.Error("id is required"),
			appValidation.UUID,
		),
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(1, 255).Error("password must be between 1 and 255 characters"),
		),
		validation.Field(&r.CreatedAt,
			validation.Required.Error("created_at is required"),
		),
		validation.Field(&r.UpdatedAt,
			validation.Required.Error("updated_at is required"),
		),
	)
}

// User represents a user in the system. The Password field holds the hashed
// password, never the plain text value.
type User struct {
	ID        UserID
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser validates a serialized record and constructs a User from it.
// On any field failure it returns a validation error naming the entity kind
// and the offending field; no partial entity is ever produced.
func NewUser(record UserRecord) (*User, error) {
	if err := record.Validate(); err != nil {
		return nil, appValidation.WrapEntityValidationError("user", err)
	}

	id, err := ParseUserID(record.ID)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:        id,
		Name:      record.Name,
		Email:     record.Email,
		Password:  record.Password,
		CreatedAt: record.CreatedAt.UTC(),
		UpdatedAt: record.UpdatedAt.UTC(),
	}, nil
}

// Serialize converts the User back into its record form. It is the exact
// inverse of NewUser: NewUser(u.Serialize()) reconstructs an equal User.
func (u *User) Serialize() UserRecord {
	return UserRecord{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UpdateName returns a new User with the name replaced and UpdatedAt
// refreshed. The whole record is re-validated, not just the changed field.
func (u *User) UpdateName(name string) (*User, error) {
	record := u.Serialize()
	record.Name = name
	record.UpdatedAt = time.Now().UTC()
	return NewUser(record)
}

// UpdateEmail returns a new User with the email replaced and UpdatedAt refreshed.
func (u *User) UpdateEmail(email string) (*User, error) {
	record := u.Serialize()
	record.Email = email
	record.UpdatedAt = time.Now().UTC()
	return NewUser(record)
}

// UpdatePassword returns a new User with the hashed password replaced and
// UpdatedAt refreshed. Callers must hash the password before calling this.
func (u *User) UpdatePassword(hashedPassword string) (*User, error) {
	record := u.Serialize()
	record.Password = hashedPassword
	record.UpdatedAt = time.Now().UTC()
	return NewUser(record)
}

// Touch returns a new User with UpdatedAt refreshed and every other field
// unchanged. The whole record is re-validated like any other update.
func (u *User) Touch() (*User, error) {
	record := u.Serialize()
	record.UpdatedAt = time.Now().UTC()
	return NewUser(record)
}
