package convert

import (
	"fmt"

	"hwpxmd/common"
)

// Error is the one error type the façade returns. Callers branch on Kind()
// instead of string-matching (SPEC_FULL.md §10.2).
type Error struct {
	kind common.ErrorKind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("convert: %s: %s: %v", e.kind, e.msg, e.err)
	}
	return fmt.Sprintf("convert: %s: %s", e.kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

// Kind classifies the failure as config, encoding, or internal.
func (e *Error) Kind() common.ErrorKind { return e.kind }

func configError(msg string) error {
	return &Error{kind: common.ErrorKindConfig, msg: msg}
}

func encodingError(msg string, cause error) error {
	return &Error{kind: common.ErrorKindEncoding, msg: msg, err: cause}
}

func internalError(msg string, cause error) error {
	return &Error{kind: common.ErrorKindInternal, msg: msg, err: cause}
}
