package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gorewood/gitobj/internal/git"
)

func TestPrinter_JSON_Error(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false) // json=true, tty=false

	printer.Error(NewUserError("object not found: nope"))

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}

	if result["error"] != "object not found: nope" {
		t.Errorf("error = %v, want %q", result["error"], "object not found: nope")
	}
	if code, ok := result["code"].(float64); !ok || int(code) != ExitUserError {
		t.Errorf("code = %v, want %d", result["code"], ExitUserError)
	}
}

func TestPrinter_JSON_GitError(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Error(&git.SignaledError{Result: &git.Result{
		Argv:   []string{"git", "status"},
		Status: git.ExitStatus{Pid: 65628, Signaled: true, Signal: 9},
		Stderr: "uncaught signal",
	}})

	var result struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result.Code != ExitSystemError {
		t.Errorf("code = %d, want %d", result.Code, ExitSystemError)
	}
	if !strings.HasPrefix(result.Error, `["git", "status"], status: pid 65628`) {
		t.Errorf("error = %q, want the git command in it", result.Error)
	}
}

func TestPrinter_Human_Error(t *testing.T) {
	var out, errOut bytes.Buffer
	printer := NewPrinter(&out, false, false).WithStderr(&errOut)

	printer.Error(git.NewTagNotFoundError("missing"))

	if out.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", out.String())
	}
	if got := errOut.String(); got != "Error: Tag 'missing' does not exist.\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestPrinter_Print(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Print("Hello, %s!", "world")

	if buf.String() != "Hello, world!" {
		t.Errorf("output = %q, want %q", buf.String(), "Hello, world!")
	}
}

func TestPrinter_Println(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Println("Hello")

	if buf.String() != "Hello\n" {
		t.Errorf("output = %q, want %q", buf.String(), "Hello\n")
	}
}

func TestPrinter_IsJSON(t *testing.T) {
	var buf bytes.Buffer

	if !NewPrinter(&buf, true, false).IsJSON() {
		t.Error("IsJSON() should return true for JSON printer")
	}
	if NewPrinter(&buf, false, false).IsJSON() {
		t.Error("IsJSON() should return false for human printer")
	}
}

func TestPrinter_Warn(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).Warn("%d objects skipped", 2)
	if got := buf.String(); got != "Warning: 2 objects skipped\n" {
		t.Errorf("human output = %q", got)
	}

	buf.Reset()
	NewPrinter(&buf, true, false).Warn("dirty")
	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result["warning"] != "dirty" {
		t.Errorf("warning = %v, want %q", result["warning"], "dirty")
	}
}

func TestPrinter_WriteJSON(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	err := printer.WriteJSON(struct {
		Kind string `json:"kind"`
		Name string `json:"name"`
	}{Kind: "blob", Name: "<main>.go"})
	if err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	want := "{\n  \"kind\": \"blob\",\n  \"name\": \"<main>.go\"\n}\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Table([]string{"TYPE", "NAME"}, [][]string{
		{"blob", "README.md"},
		{"tree", "src"},
		{"blob", "ünïcode.txt"},
	})

	want := "TYPE  NAME\n" +
		"blob  README.md\n" +
		"tree  src\n" +
		"blob  ünïcode.txt\n"
	if buf.String() != want {
		t.Errorf("table =\n%q\nwant\n%q", buf.String(), want)
	}

	buf.Reset()
	printer.Table(nil, [][]string{{"x"}})
	if buf.Len() != 0 {
		t.Errorf("table without headers should print nothing, got %q", buf.String())
	}
}

func TestPrinter_SectionAndKeyValue(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Section("commit abc")
	printer.KeyValue("Author", "Test User <test@example.com>")

	want := "\ncommit abc\n──────────\nAuthor: Test User <test@example.com>\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestPrinter_Box_NonTTY(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Box("Message", "second commit")

	if buf.String() != "Message\n\nsecond commit\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrinter_Hash(t *testing.T) {
	printer := NewPrinter(&bytes.Buffer{}, false, false)
	if got := printer.Hash("abc123"); got != "abc123" {
		t.Errorf("Hash() = %q, want plain text without a TTY", got)
	}
}

func TestErrorJSON_Format(t *testing.T) {
	result := ErrorJSON("test error", ExitUserError)

	var parsed struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}
	if err := json.Unmarshal(result, &parsed); err != nil {
		t.Fatalf("Failed to parse ErrorJSON output: %v", err)
	}

	if parsed.Error != "test error" {
		t.Errorf("error = %q, want %q", parsed.Error, "test error")
	}
	if parsed.Code != ExitUserError {
		t.Errorf("code = %d, want %d", parsed.Code, ExitUserError)
	}
}
