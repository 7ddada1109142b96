package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Domain errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrInvalidTag         = errors.New("invalid tag")
	ErrInvalidSection     = errors.New("invalid section")
	ErrInvalidDeadline    = errors.New("invalid deadline")
)

var deadlineLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Tag is the priority label of a task
type Tag string

const (
	TagLow    Tag = "Low"
	TagMedium Tag = "Medium"
	TagHigh   Tag = "High"
)

// Section is the kanban column a task lives in
type Section string

const (
	SectionTodo        Section = "todo"
	SectionInProgress  Section = "inProgress"
	SectionUnderReview Section = "underReview"
	SectionFinished    Section = "finished"
)

// User represents an account holder
type User struct {
	ID           string    `json:"_id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Task represents a to-do item owned by a single user
type Task struct {
	ID          string    `json:"_id" db:"id"`
	OwnerID     string    `json:"userId" db:"owner_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Tag         Tag       `json:"tag" db:"tag"`
	Deadline    time.Time `json:"deadline" db:"deadline"`
	Section     Section   `json:"section" db:"section"`
	Done        bool      `json:"done" db:"done"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// IsOwnedBy reports whether the task belongs to userID
func (t *Task) IsOwnedBy(userID string) bool {
	return userID != "" && t.OwnerID == userID
}

// MarkDone sets the completion flag
func (t *Task) MarkDone(done bool) {
	t.Done = done
	t.UpdatedAt = time.Now()
}

// IsValid reports whether t is one of the known priorities
func (t Tag) IsValid() bool {
	switch t {
	case TagLow, TagMedium, TagHigh:
		return true
	default:
		return false
	}
}

// IsValid reports whether s is one of the board columns
func (s Section) IsValid() bool {
	switch s {
	case SectionTodo, SectionInProgress, SectionUnderReview, SectionFinished:
		return true
	default:
		return false
	}
}

// ParseTag converts raw input into a Tag
func ParseTag(value string) (Tag, error) {
	t := Tag(value)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTag, value)
	}
	return t, nil
}

// ParseSection converts raw input into a Section
func ParseSection(value string) (Section, error) {
	s := Section(value)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSection, value)
	}
	return s, nil
}

// ParseDeadline accepts RFC3339 timestamps, local date-times and plain
// calendar dates. Values without a zone are taken as UTC.
func ParseDeadline(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDeadline, value)
}
