// An error that saves the line number and the line we were trying to
// read.
package mmcif

import (
	"errors"
	"strconv"
)

const maxMsgLen = 70

type readError struct {
	n    int    // line number
	line string // The line that provoked the error
	desc string // Description of error
	err  error  // underlying error, may be nil
}

func firstPart(s string) string {
	return s[:min(len(s), maxMsgLen)]
}

// Error gives the line number, the description and the start of the
// line, if we have one.
func (e *readError) Error() string {
	var errmsg string
	if e.n != 0 {
		errmsg = "line " + strconv.Itoa(e.n) + ": "
	}
	errmsg += e.desc
	if e.err != nil {
		errmsg += ": " + e.err.Error()
	}
	if e.line != "" {
		errmsg += "\nline starting with\n" + firstPart(e.line)
	}
	return errmsg
}

func (e *readError) Unwrap() error { return e.err }

// Line returns the line number of an error from this package, or zero.
func Line(err error) int {
	var e *readError
	if errors.As(err, &e) {
		return e.n
	}
	return 0
}
