package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/thalib/veil/cmd/veil/internal/redact"
)

// Record is a single decoded log event: the fields a formatter needs to
// render one display line.
type Record struct {
	Time    string
	Level   string
	Message string
	Service string
}

// Formatter renders a log Record into a display string, without a trailing
// newline. Delivery to a sink is the caller's job.
type Formatter interface {
	Format(Record) string
}

// TextFormatter renders records as: [LEVEL](TIMESTAMP): MESSAGE
type TextFormatter struct{}

// Format implements Formatter.
func (TextFormatter) Format(r Record) string {
	return fmt.Sprintf("[%s](%s): %s", strings.ToUpper(r.Level), r.Time, r.Message)
}

// RedactingFormatter decorates another Formatter: it redacts sensitive
// key=value segments in the record's message, then delegates rendering. The
// sensitive field set, separator, and placeholder are fixed at construction
// and never mutated, so a single instance is safe for concurrent use.
type RedactingFormatter struct {
	next        Formatter
	matcher     *redact.Matcher
	placeholder string
}

// NewRedactingFormatter builds a redacting decorator around next.
func NewRedactingFormatter(next Formatter, fields []string, separator, assign byte, placeholder string) *RedactingFormatter {
	return &RedactingFormatter{
		next:        next,
		matcher:     redact.NewMatcher(fields, separator, assign),
		placeholder: placeholder,
	}
}

// Format implements Formatter. Only the message is touched; every other
// record field passes through to the underlying formatter unchanged.
func (f *RedactingFormatter) Format(r Record) string {
	r.Message = f.RedactMessage(r.Message)
	return f.next.Format(r)
}

// RedactMessage redacts sensitive segments in a raw message string.
func (f *RedactingFormatter) RedactMessage(msg string) string {
	return f.matcher.Redact(msg, f.placeholder)
}

// formatWriter sits at the end of the zerolog pipeline: it decodes each JSON
// event into a Record and writes the formatter's output. Payloads that do not
// decode are written as-is; the logging path never drops an event or fails
// because of its own formatting.
type formatWriter struct {
	out       io.Writer
	formatter Formatter
}

func (fw *formatWriter) Write(p []byte) (n int, err error) {
	r, ok := decodeRecord(p)
	if !ok {
		return fw.out.Write(p)
	}
	if _, err := io.WriteString(fw.out, fw.formatter.Format(r)+"\n"); err != nil {
		return 0, err
	}
	return len(p), nil
}

// redactWriter rewrites the message field of a zerolog JSON event and
// forwards the event, still as JSON, to the next writer. It is used where
// the downstream writer does its own rendering (zerolog.ConsoleWriter, raw
// JSON output) so that every sink sees only redacted messages.
type redactWriter struct {
	out      io.Writer
	redactor *RedactingFormatter
}

func (rw *redactWriter) Write(p []byte) (n int, err error) {
	var event map[string]any
	if err := json.Unmarshal(p, &event); err != nil {
		// Not JSON, forward untouched.
		return rw.out.Write(p)
	}

	msg, ok := event[messageFieldName].(string)
	if !ok {
		return rw.out.Write(p)
	}
	event[messageFieldName] = rw.redactor.RedactMessage(msg)

	redacted, err := json.Marshal(event)
	if err != nil {
		return rw.out.Write(p)
	}
	if _, err := rw.out.Write(append(redacted, '\n')); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Field names zerolog uses in its JSON events.
const (
	messageFieldName = "message"
	levelFieldName   = "level"
	timeFieldName    = "time"
	serviceFieldName = "service"
)

// decodeRecord decodes a zerolog JSON event into a Record. The second return
// value is false when the payload is not a JSON event.
func decodeRecord(p []byte) (Record, bool) {
	var event map[string]any
	if err := json.Unmarshal(p, &event); err != nil {
		return Record{}, false
	}

	var r Record
	r.Level, _ = event[levelFieldName].(string)
	r.Time, _ = event[timeFieldName].(string)
	r.Message, _ = event[messageFieldName].(string)
	r.Service, _ = event[serviceFieldName].(string)
	return r, true
}
