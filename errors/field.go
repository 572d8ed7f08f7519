package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Field wraps err with the name of the model attribute it was found in.
// A nil err returns nil. A stack trace is attached unless err carries one
// already.
//
// Field names use Go naming, for example AllocationBps. Nested attributes
// are joined with a dot, for example Tier.MinAmount, and list elements use
// their index starting at 0, for example Tiers.2.PercentageBps.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{
		parent: err,
		field:  fieldName,
		desc:   description,
	}
}

// AppendField adds the field error to errorsOrNil. Nothing is added when
// fieldErrOrNil is nil.
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

// AppendIndexField adds the error of the list element at index, named
// <listName>.<index>. Nothing is added when fieldErrOrNil is nil.
func AppendIndexField(errorsOrNil error, listName string, index int, fieldErrOrNil error) error {
	return AppendField(errorsOrNil, fmt.Sprintf("%s.%d", listName, index), fieldErrOrNil)
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (err *fieldError) Error() string {
	if err.desc == "" {
		return fmt.Sprintf("field %q: %s", err.field, err.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", err.field, err.desc, err.parent)
}

// Cause implements the causer interface.
func (err *fieldError) Cause() error {
	return err.parent
}

// Field implements fielder interface.
func (err *fieldError) Field() string {
	return err.field
}

// FieldErrors returns the errors created for the given field name or for
// any attribute nested under it. Asking for Tiers returns the errors of
// Tiers, Tiers.0 and Tiers.1.MinAmount.
func FieldErrors(err error, fieldName string) []error {
	var res []error
	for !isNilErr(err) {
		if f, ok := err.(fielder); ok && matchField(f.Field(), fieldName) {
			return append(res, err)
		}
		// Unpacking covers every child, so the cause must not be
		// visited again.
		if u, ok := err.(unpacker); ok {
			for _, e := range u.Unpack() {
				res = append(res, FieldErrors(e, fieldName)...)
			}
			return res
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return res
}

func matchField(name, want string) bool {
	return name == want || strings.HasPrefix(name, want+".")
}

type fielder interface {
	// Field returns the field name that this error is created for.
	Field() string
}
