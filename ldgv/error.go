package ldgv

import "fmt"

// Errno is a runtime fault code.
type Errno int

// Possible Errno values
const (
	ErrnoPanic Errno = iota
	ErrnoUnbound
	ErrnoType
	ErrnoNoCase
	ErrnoDivZero
	ErrnoNoMain
)

var errnoStrings = []string{
	ErrnoPanic:   "PANIC",
	ErrnoUnbound: "unbound symbol",
	ErrnoType:    "type mismatch",
	ErrnoNoCase:  "no matching case",
	ErrnoDivZero: "division by zero",
	ErrnoNoMain:  "no main declaration",
}

func (n Errno) String() string {
	if int(n) >= len(errnoStrings) {
		return errnoStrings[ErrnoPanic]
	}
	return errnoStrings[n]
}

// Error is a fatal evaluation fault.  A fault aborts the evaluation of
// the process that raised it; it is never converted back into a value.
type Error struct {
	Errno Errno
	Msg   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Msg
}

// Errorf returns an Error with code errno and a formatted message.
func Errorf(errno Errno, format string, v ...interface{}) *Error {
	return &Error{
		Errno: errno,
		Msg:   fmt.Sprintf(format, v...),
	}
}
