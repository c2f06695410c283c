package common

import "fmt"

// Generated by hand in the shape github.com/abice/go-enum would produce for
// the ENUM(...) directive on ErrorKind in errorkind.go. The tool itself is
// not invoked as part of this build (see DESIGN.md), so this file is
// maintained manually and must stay in sync with that directive.

const (
	ErrorKindConfig ErrorKind = iota
	ErrorKindEncoding
	ErrorKindInternal
)

var errorKindNames = [...]string{"config", "encoding", "internal"}

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorKindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return errorKindNames[k]
}

// ParseErrorKind attempts to convert a string to a ErrorKind.
func ParseErrorKind(s string) (ErrorKind, error) {
	for i, n := range errorKindNames {
		if n == s {
			return ErrorKind(i), nil
		}
	}
	return ErrorKind(0), fmt.Errorf("%s is not a valid ErrorKind", s)
}
