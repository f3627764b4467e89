package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestPrinter_JSON_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	err := printer.Success(map[string]any{
		"path":   "CLAUDE.md",
		"tokens": 412,
	})
	if err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result["path"] != "CLAUDE.md" {
		t.Errorf("path = %v, want %q", result["path"], "CLAUDE.md")
	}
	if result["tokens"] != float64(412) {
		t.Errorf("tokens = %v, want 412", result["tokens"])
	}
}

func TestPrinter_JSON_Error(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Error(NewConflictError("file already exists: CLAUDE.md"))

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result["error"] != "file already exists: CLAUDE.md" {
		t.Errorf("error = %v", result["error"])
	}
	if code, ok := result["code"].(float64); !ok || int(code) != ExitConflict {
		t.Errorf("code = %v, want %d", result["code"], ExitConflict)
	}
}

func TestPrinter_Human_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	if err := printer.Success(map[string]any{"message": "Preset saved"}); err != nil {
		t.Fatalf("Success() error = %v", err)
	}
	if got := buf.String(); got != "Preset saved\n" {
		t.Errorf("output = %q, want %q", got, "Preset saved\n")
	}
}

func TestPrinter_Human_ErrorGoesToStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	printer := NewPrinter(&out, false, false).WithStderr(&errOut)

	printer.Error(NewUserError("unknown agent: 'vim'"))

	if out.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "error:") || !strings.Contains(errOut.String(), "unknown agent") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestPrinter_Print(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Print("~%d tokens", 120)

	if buf.String() != "~120 tokens" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrinter_Println(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Println("# GO Development Guidelines")

	if buf.String() != "# GO Development Guidelines\n" {
		t.Errorf("output = %q", buf.String())
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
	t.Run("human", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf, false, false).Warn("prompt is ~%d tokens", 9000)
		if !strings.Contains(buf.String(), "warning:") || !strings.Contains(buf.String(), "9000") {
			t.Errorf("output = %q", buf.String())
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf, true, false).Warn("over budget")
		var result map[string]any
		if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
			t.Fatalf("Failed to parse JSON: %v", err)
		}
		if result["warning"] != "over budget" {
			t.Errorf("warning = %v", result["warning"])
		}
	})
}

func TestPrinter_StepBulletRemoved(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Step(false, "Scanning %s...", "/repo")
	printer.Step(true, "Wrote %s", "CLAUDE.md")
	printer.Bullet("go", "→ **/*.go")
	printer.Removed("AGENTS.md")

	want := "→ Scanning /repo...\n✓ Wrote CLAUDE.md\n  • go → **/*.go\n  ✗ AGENTS.md\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestPrinter_StepSilentInJSON(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Step(true, "done")
	printer.Bullet("x", "")
	printer.Hint("hint")

	if buf.Len() != 0 {
		t.Errorf("JSON mode should suppress decorations, got %q", buf.String())
	}
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Table([]string{"Agent", "File"}, [][]string{
		{"claude", "CLAUDE.md"},
		{"copilot", ".github/copilot-instructions.md"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "Agent    File" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "claude   CLAUDE.md" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestErrorJSON_Format(t *testing.T) {
	var parsed struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}
	if err := json.Unmarshal(ErrorJSON("boom", ExitSystemError), &parsed); err != nil {
		t.Fatalf("Failed to parse ErrorJSON output: %v", err)
	}
	if parsed.Error != "boom" || parsed.Code != ExitSystemError {
		t.Errorf("parsed = %+v", parsed)
	}
}

func TestPrinter_Markdown(t *testing.T) {
	doc := "# GO Development Guidelines\n\n- Use `errors.Is`\n"

	t.Run("plain passes source through", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewPrinter(&buf, false, false).Markdown(doc); err != nil {
			t.Fatalf("Markdown() error = %v", err)
		}
		if buf.String() != doc {
			t.Errorf("output = %q, want %q", buf.String(), doc)
		}
	})

	t.Run("tty renders", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewPrinter(&buf, false, true).Markdown(doc); err != nil {
			t.Fatalf("Markdown() error = %v", err)
		}
		if buf.String() == doc {
			t.Error("TTY output should be rendered, got the raw source")
		}
		if !strings.Contains(buf.String(), "errors.Is") {
			t.Errorf("rendered output lost content: %q", buf.String())
		}
	})
}
