package prompts

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTemplateNotFound   = errors.New("template not found")
	ErrMissingPlaceholder = errors.New("missing placeholder value")
	ErrMalformedTemplate  = errors.New("malformed template")
)

// TemplateNotFoundError is returned when an operation or one of its roles is
// not defined in the set.
type TemplateNotFoundError struct {
	Operation string
	Role      Role
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("prompts: no %s template for operation %q", e.Role, e.Operation)
}

func (e *TemplateNotFoundError) Unwrap() error { return ErrTemplateNotFound }

// MissingPlaceholderError lists the placeholders a template references but
// the caller did not supply.
type MissingPlaceholderError struct {
	Operation string
	Role      Role
	Names     []string
}

func (e *MissingPlaceholderError) Error() string {
	return fmt.Sprintf("prompts: %s template for %q needs values for: %s",
		e.Role, e.Operation, strings.Join(e.Names, ", "))
}

func (e *MissingPlaceholderError) Unwrap() error { return ErrMissingPlaceholder }

// MalformedTemplateError reports brace syntax the renderer cannot parse.
type MalformedTemplateError struct {
	Operation string
	Role      Role
	Err       error
}

func (e *MalformedTemplateError) Error() string {
	return fmt.Sprintf("prompts: %s template for %q: %v", e.Role, e.Operation, e.Err)
}

func (e *MalformedTemplateError) Unwrap() []error { return []error{ErrMalformedTemplate, e.Err} }
