package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"shape-gallery/internal/domain"
)

const maxNameLength = 100

// FieldError describes a single rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every violated field of a write payload so the
// caller can surface all problems at once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// CreateShapeInput is a full payload; every field is required.
type CreateShapeInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Shape string `json:"shape"`
}

// Validate checks all fields and returns every violation in one error.
func (in CreateShapeInput) Validate() *ValidationError {
	verr := &ValidationError{}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		verr.add("name", "name is required")
	} else if utf8.RuneCountInString(name) > maxNameLength {
		verr.add("name", fmt.Sprintf("name must be %d characters or less", maxNameLength))
	}

	if in.Color == "" {
		verr.add("color", "color is required")
	} else if !domain.ValidColor(domain.Color(in.Color)) {
		verr.add("color", "color must be one of: red, blue, green, yellow")
	}

	if in.Shape == "" {
		verr.add("shape", "shape is required")
	} else if !domain.ValidGeometry(domain.Geometry(in.Shape)) {
		verr.add("shape", "shape must be one of: circle, square, triangle")
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// UpdateShapeInput is a partial payload; absent fields keep their stored
// value, present fields are validated with the create rules.
type UpdateShapeInput struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Shape *string `json:"shape"`
}

func (in UpdateShapeInput) Validate() *ValidationError {
	verr := &ValidationError{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			verr.add("name", "name is required")
		} else if utf8.RuneCountInString(name) > maxNameLength {
			verr.add("name", fmt.Sprintf("name must be %d characters or less", maxNameLength))
		}
	}
	if in.Color != nil && !domain.ValidColor(domain.Color(*in.Color)) {
		verr.add("color", "color must be one of: red, blue, green, yellow")
	}
	if in.Shape != nil && !domain.ValidGeometry(domain.Geometry(*in.Shape)) {
		verr.add("shape", "shape must be one of: circle, square, triangle")
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
