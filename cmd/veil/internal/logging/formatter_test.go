package logging

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTextFormatter(t *testing.T) {
	f := TextFormatter{}
	got := f.Format(Record{Level: "info", Time: "2026-01-02T15:04:05Z", Message: "hello"})
	want := "[INFO](2026-01-02T15:04:05Z): hello"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestRedactingFormatter_EndToEnd(t *testing.T) {
	f := NewRedactingFormatter(TextFormatter{},
		[]string{"email", "ssn"}, ';', '=', "***")

	got := f.Format(Record{
		Level:   "info",
		Time:    "2026-01-02T15:04:05Z",
		Message: "name=Alice;email=a@x.com;ssn=123-45-6789;ip=1.2.3.4;",
	})

	if !strings.Contains(got, "name=Alice;email=***;ssn=***;ip=1.2.3.4;") {
		t.Errorf("Format() = %q, want redacted email and ssn only", got)
	}
	if strings.Contains(got, "a@x.com") || strings.Contains(got, "123-45-6789") {
		t.Errorf("Format() = %q leaked a sensitive value", got)
	}
}

func TestRedactingFormatter_NonSensitivePassThrough(t *testing.T) {
	f := NewRedactingFormatter(TextFormatter{},
		[]string{"password"}, ';', '=', "***")

	msg := "name=Bob;ip=1.2.3.4;"
	got := f.Format(Record{Level: "info", Time: "t", Message: msg})
	if !strings.Contains(got, msg) {
		t.Errorf("Format() = %q, want message unchanged", got)
	}
}

func TestRedactingFormatter_PreservesOtherRecordFields(t *testing.T) {
	f := NewRedactingFormatter(TextFormatter{},
		[]string{"password"}, ';', '=', "***")

	got := f.Format(Record{Level: "warn", Time: "T1", Message: "password=x;"})
	if !strings.HasPrefix(got, "[WARN](T1): ") {
		t.Errorf("Format() = %q, want level and time untouched", got)
	}
}

func TestFormatWriter_NonJSONPassThrough(t *testing.T) {
	var buf strings.Builder
	fw := &formatWriter{out: &buf, formatter: TextFormatter{}}

	payload := "not a json event\n"
	n, err := fw.Write([]byte(payload))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != len(payload) {
		t.Errorf("Write() n = %d, want %d", n, len(payload))
	}
	if buf.String() != payload {
		t.Errorf("output = %q, want payload forwarded as-is", buf.String())
	}
}

func TestFormatWriter_FormatsJSONEvent(t *testing.T) {
	var buf strings.Builder
	fw := &formatWriter{out: &buf, formatter: TextFormatter{}}

	event := `{"level":"info","time":"T1","message":"hello"}`
	if _, err := fw.Write([]byte(event)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	want := "[INFO](T1): hello\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestRedactWriter_RewritesMessageField(t *testing.T) {
	var buf strings.Builder
	redactor := NewRedactingFormatter(TextFormatter{},
		[]string{"password"}, ';', '=', "***")
	rw := &redactWriter{out: &buf, redactor: redactor}

	event := `{"level":"info","time":"T1","message":"user=bob;password=hunter2;"}`
	if _, err := rw.Write([]byte(event)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(buf.String()), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	msg, _ := decoded["message"].(string)
	if msg != "user=bob;password=***;" {
		t.Errorf("message = %q, want redacted", msg)
	}
	if level, _ := decoded["level"].(string); level != "info" {
		t.Errorf("level = %q, want untouched", level)
	}
}

func TestRedactWriter_NonJSONPassThrough(t *testing.T) {
	var buf strings.Builder
	redactor := NewRedactingFormatter(TextFormatter{},
		[]string{"password"}, ';', '=', "***")
	rw := &redactWriter{out: &buf, redactor: redactor}

	payload := "plain text password=hunter2"
	if _, err := rw.Write([]byte(payload)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if buf.String() != payload {
		t.Errorf("output = %q, want payload forwarded as-is", buf.String())
	}
}
