package models

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// DefaultProfileImagePath is used until a user uploads their own image.
const DefaultProfileImagePath = "/uploads/default.png"

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)
)

// User represents a registered account.
type User struct {
	BaseModel
	Name             string `gorm:"not null;index" json:"name"`
	PasswordHash     string `gorm:"not null" json:"-"`
	Email            string `gorm:"uniqueIndex;not null" json:"email"`
	Phone            string `gorm:"uniqueIndex;not null" json:"phone"`
	Address          string `gorm:"not null" json:"address"`
	ProfileImagePath string `json:"profile_image_path"`
}

// ValidationError reports a field that failed schema validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks required fields and the email/phone formats.
func (u *User) Validate() error {
	switch {
	case u.Name == "":
		return &ValidationError{Field: "name", Reason: "required"}
	case u.PasswordHash == "":
		return &ValidationError{Field: "password", Reason: "required"}
	case u.Email == "":
		return &ValidationError{Field: "email", Reason: "required"}
	case u.Phone == "":
		return &ValidationError{Field: "phone", Reason: "required"}
	case u.Address == "":
		return &ValidationError{Field: "address", Reason: "required"}
	}

	if !emailPattern.MatchString(u.Email) {
		return &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}

	if !phonePattern.MatchString(u.Phone) {
		return &ValidationError{Field: "phone", Reason: "must be 10 to 15 digits"}
	}

	return nil
}

// PublicUser is the hash-redacted projection rendered by the admin panel.
type PublicUser struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	ProfileImagePath string    `json:"profile_image_path"`
	CreatedAt        time.Time `json:"created_at"`
}

// Public returns the user without the password hash.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Phone:            u.Phone,
		Address:          u.Address,
		ProfileImagePath: u.ProfileImagePath,
		CreatedAt:        u.CreatedAt,
	}
}
