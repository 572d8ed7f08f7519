package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no non-nil error is provided, nil is returned.
// If only one non-nil error is provided, it is returned unchanged.
// If more than one non-nil error is provided, a multi error is returned.
// Multi errors are flattened.
func Append(errs ...error) error {
	var flat []error
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(*multiErr); ok {
			flat = append(flat, m.errs...)
		} else {
			flat = append(flat, e)
		}
	}

	switch len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	default:
		return &multiErr{errs: flat}
	}
}

// multiErr represents a set of errors. The first error is considered the
// cause and its code is the code of the whole set.
type multiErr struct {
	errs []error
}

func (m *multiErr) Error() string {
	if len(m.errs) == 1 {
		return m.errs[0].Error()
	}

	points := make([]string, len(m.errs))
	for i, err := range m.errs {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(m.errs), strings.Join(points, "\n\t"))
}

// Cause returns the first error, consistent with the fail fast approach.
func (m *multiErr) Cause() error {
	return m.errs[0]
}

// Unpack returns all errors grouped by this instance.
func (m *multiErr) Unpack() []error {
	return m.errs
}

// ABCICode returns the code of the first error.
func (m *multiErr) ABCICode() uint32 {
	return abciCode(m.errs[0])
}

type unpacker interface {
	Unpack() []error
}
