package department

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	MaxHandleLength      = 20
	MaxNameLength        = 80
	MaxDescriptionLength = 2048
)

var (
	ErrInvalidHandle      = errors.New("department handle must be 1-20 characters without whitespace")
	ErrInvalidName        = errors.New("department name must be 1-80 characters")
	ErrDescriptionTooLong = errors.New("department description must be at most 2048 characters")
)

// Department is identified by its short handle, e.g. "CS".
type Department struct {
	Handle      string  `json:"handle"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (d *Department) Validate() error {
	n := utf8.RuneCountInString(d.Handle)
	if n == 0 || n > MaxHandleLength || strings.ContainsAny(d.Handle, " \t\r\n/") {
		return ErrInvalidHandle
	}
	n = utf8.RuneCountInString(strings.TrimSpace(d.Name))
	if n == 0 || utf8.RuneCountInString(d.Name) > MaxNameLength {
		return ErrInvalidName
	}
	if d.Description != nil && utf8.RuneCountInString(*d.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

type Repository interface {
	Save(ctx context.Context, d *Department) error
	FindByHandle(ctx context.Context, handle string) (*Department, error)
	List(ctx context.Context) ([]*Department, error)
}
