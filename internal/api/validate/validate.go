package validate

import (
	"fmt"
	"regexp"
	"strings"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// OrNil returns the list as an error, or nil when nothing failed.
func (e Errs) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Helpers

func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

func MaxLen(field, value string, max int) *ErrField {
	if len(value) > max {
		return &ErrField{Field: field, Msg: fmt.Sprintf("cannot be more than %d characters", max)}
	}
	return nil
}

func MinLen(field, value string, min int) *ErrField {
	if len(value) < min {
		return &ErrField{Field: field, Msg: fmt.Sprintf("must be at least %d characters", min)}
	}
	return nil
}

func Email(field, value string) *ErrField {
	if !emailRe.MatchString(value) {
		return &ErrField{Field: field, Msg: "must be a valid email"}
	}
	return nil
}

func OneOf(field, value string, allowed ...string) *ErrField {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &ErrField{Field: field, Msg: "must be one of " + strings.Join(allowed, "|")}
}

func Range(field string, v, min, max int) *ErrField {
	if v < min || v > max {
		return &ErrField{Field: field, Msg: fmt.Sprintf("must be between %d and %d", min, max)}
	}
	return nil
}

// Collect appends the non-nil checks to a list.
func Collect(checks ...*ErrField) Errs {
	var errs Errs
	for _, c := range checks {
		if c != nil {
			errs = append(errs, *c)
		}
	}
	return errs
}
