package project

import (
	"errors"
	"fmt"
)

// Sentinel errors for matching with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidName   = errors.New("invalid name")
)

// Kind names the entity an error refers to.
type Kind string

// Entity kinds managed by the store.
const (
	KindPerson  Kind = "person"
	KindCompany Kind = "company"
	KindJob     Kind = "job"
	KindResume  Kind = "resume"
)

// NotFoundError indicates a read or update targeted a missing entity.
type NotFoundError struct {
	Kind Kind
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError indicates a create targeted an occupied slug.
type AlreadyExistsError struct {
	Kind Kind
	Name string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Kind, e.Name)
}

// Is reports whether target is ErrAlreadyExists.
func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// InvalidNameError indicates a name that produces an empty slug.
type InvalidNameError struct {
	Kind  Kind
	Input string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid %s name %q: no letters or digits", e.Kind, e.Input)
}

// Is reports whether target is ErrInvalidName.
func (e *InvalidNameError) Is(target error) bool {
	return target == ErrInvalidName
}
