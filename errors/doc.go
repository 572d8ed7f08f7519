/*
Package errors implements the error handling used by every tollgate package.

Root errors are registered once with a unique code using Register or, when
they belong to a class, RegisterIn. The classes are

	ErrConfiguration  invalid input, bad parameters, out of range values
	ErrUnauthorized   the caller does not hold the required role
	ErrState          paused, cooldown, lifecycle violations
	ErrResource       insufficient balance or allowance

A class Is test matches all of its members, so a client can check for
either the class or a specific error:

	ErrState.Is(err)     // true for ErrPaused, treasury.ErrCooldown, ...
	ErrPaused.Is(err)    // true for ErrPaused only

Create error instances at the point of failure with ErrXyz.New or
errors.Wrap(err, "...") so that a stack trace is attached. Format the error
with %+v to print the stack trace.

Validation of models and messages should collect all problems at once using
AppendField and FieldErrors.
*/
package errors
