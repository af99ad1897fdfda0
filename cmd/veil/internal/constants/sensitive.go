package constants

// PIIFields are the field names whose values are redacted from log messages.
// A log line is a flat sequence of key=value segments; any segment whose key
// exactly matches one of these names has its value replaced before the line
// reaches a sink.
// Used in: redact/matcher.go, logging/formatter.go, cmd/veil/main.go
var PIIFields = []string{
	"name",
	"email",
	"phone",
	"ssn",
	"password",
}

// RedactionPlaceholder is the string that replaces a sensitive value in a
// log message.
// Used in: redact/matcher.go, logging/formatter.go
const RedactionPlaceholder = "***"

// FieldSeparator terminates each key=value segment in a log message.
// Values must not contain this character; the message grammar is flat and
// has no escaping (documented limitation).
// Used in: redact/matcher.go, users/store.go
const FieldSeparator byte = ';'

// FieldAssign joins a key to its value inside a segment.
// Used in: redact/matcher.go, users/store.go
const FieldAssign byte = '='
