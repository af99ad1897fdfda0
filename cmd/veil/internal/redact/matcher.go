// Package redact rewrites flat key=value log messages so that the values of
// sensitive fields never reach a log sink. The message grammar is a sequence
// of key=value segments terminated by a separator character; there is no
// nesting and no escaping, so a value containing the separator is outside the
// grammar (documented limitation of the format, not silently repaired).
package redact

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedMessage reports that a message does not fully conform to the
// key=value segment grammar. Redaction itself never returns this error; it is
// an advisory diagnostic available through Matcher.CheckMessage.
var ErrMalformedMessage = errors.New("malformed key=value message")

// Matcher recognizes key=value segments whose key is one of the configured
// sensitive field names. It is immutable after construction and safe for
// concurrent use.
//
// A segment matches only when the field name starts at a segment boundary:
// the start of the message or the position immediately after a separator.
// A field name that happens to appear inside another token's key or value
// does not match, so with field "name" the message "notname=secret;" is left
// untouched.
type Matcher struct {
	re        *regexp.Regexp
	grammar   *regexp.Regexp
	separator byte
	assign    byte
}

// NewMatcher builds a matcher for the given field names. Field names are
// matched case-sensitively and as whole key tokens. An empty field set yields
// a matcher that never matches anything.
func NewMatcher(fields []string, separator, assign byte) *Matcher {
	m := &Matcher{
		separator: separator,
		assign:    assign,
	}

	sep := regexp.QuoteMeta(string(separator))
	asg := regexp.QuoteMeta(string(assign))

	// Full-grammar check: zero or more terminated segments, optionally one
	// trailing unterminated segment. Keys may not contain the separator or
	// the assignment character; values are the shortest run up to the next
	// separator.
	m.grammar = regexp.MustCompile(
		`^(?:[^` + sep + asg + `]+` + asg + `[^` + sep + `]*` + sep + `\s*)*` +
			`(?:[^` + sep + asg + `]+` + asg + `[^` + sep + `]*)?$`)

	if len(fields) == 0 {
		return m
	}

	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(f))
	}
	if len(quoted) == 0 {
		return m
	}

	// Group 1 anchors the segment boundary (start of message or the position
	// right after a separator, plus any padding whitespace), group 2 is the
	// field name. The value is the shortest run of non-separator characters,
	// which also makes matches non-overlapping left to right: the terminating
	// separator is left unconsumed so it can anchor the next segment.
	m.re = regexp.MustCompile(
		`(^|` + sep + `\s*)(` + strings.Join(quoted, "|") + `)` + asg + `[^` + sep + `]*`)

	return m
}

// Redact returns message with the value of every matched sensitive segment
// replaced by placeholder. Keys, assignment characters, and separators are
// preserved byte for byte; segments with non-sensitive keys are copied
// verbatim. The function is total: input that does not follow the grammar is
// redacted best-effort and never causes an error, since a logging path must
// not fail on bad input.
func (m *Matcher) Redact(message, placeholder string) string {
	if m.re == nil {
		return message
	}
	// $ in the placeholder would otherwise be taken as a template reference.
	placeholder = strings.ReplaceAll(placeholder, "$", "$$")
	return m.re.ReplaceAllString(message, `${1}${2}`+string(m.assign)+placeholder)
}

// CheckMessage reports whether message parses as a flat sequence of key=value
// segments. It returns nil for well-formed input (including the empty
// message) and an error wrapping ErrMalformedMessage otherwise. Callers may
// use this as a diagnostic; Redact never consults it.
func (m *Matcher) CheckMessage(message string) error {
	if m.grammar.MatchString(message) {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrMalformedMessage, message)
}

// Separator returns the configured segment separator.
func (m *Matcher) Separator() byte { return m.separator }

// Assign returns the configured assignment character.
func (m *Matcher) Assign() byte { return m.assign }
