// Splitting lines at spaces, but respecting quotes.

/* from https://www.iucr.org/resources/cif/spec/version1.1/cifsyntax
'              delimits non-simple data values
"              delimits non-simple data values
A quote only closes a value if it is followed by white space, so
'O5'' style names are fine.
*/

package mmcif

import (
	"errors"
)

const (
	squote byte = '\''
	dquote byte = '"'
)

var asciiSpace = [256]bool{
	'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true,
}

func iswhite(b byte) bool { return asciiSpace[b] }

// splitState holds what the state functions need.
type splitState struct {
	err   error
	ret   []string
	line  string
	start int
	qtype byte
}

type sfn func(i int, c byte, s *splitState) sfn

func sfnWhite(i int, c byte, s *splitState) sfn {
	switch {
	case iswhite(c):
		return sfnWhite
	case c == squote || c == dquote:
		s.qtype = c
		s.start = i + 1
		return sfnInQuote
	default:
		s.start = i
		return sfnInText
	}
}

func sfnInText(i int, c byte, s *splitState) sfn {
	if iswhite(c) {
		s.ret = append(s.ret, s.line[s.start:i])
		return sfnWhite
	}
	return sfnInText
}

func sfnInQuote(i int, c byte, s *splitState) sfn {
	if c == s.qtype {
		return sfnMaybeEnd
	}
	if c == '\n' {
		s.err = errors.New("unterminated quote")
		return sfnWhite
	}
	return sfnInQuote
}

// sfnMaybeEnd follows a closing quote. Only white space really ends
// the quoted value.
func sfnMaybeEnd(i int, c byte, s *splitState) sfn {
	if iswhite(c) {
		s.ret = append(s.ret, s.line[s.start:i-1])
		return sfnWhite
	}
	if c == s.qtype {
		return sfnMaybeEnd
	}
	return sfnInQuote
}

// splitCifLine breaks a line into words, separated by white space or
// enclosed in matching quotes. The words go into ret, which is reused.
func splitCifLine(line string, ret []string) ([]string, error) {
	s := splitState{ret: ret[:0], line: line}
	state := sfnWhite
	for i := 0; i < len(line); i++ {
		state = state(i, line[i], &s)
	}
	state(len(line), '\n', &s) // flush the last word, catch open quotes
	if s.err != nil {
		return nil, s.err
	}
	return s.ret, nil
}
