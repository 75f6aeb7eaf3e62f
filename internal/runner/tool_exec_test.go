package runner_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/petasbytes/workdesk/internal/provider"
	"github.com/petasbytes/workdesk/internal/runner"
	"github.com/petasbytes/workdesk/internal/telemetry"
	"github.com/petasbytes/workdesk/tools"
)

// chdirTemp switches the working directory to a fresh temp dir so telemetry
// output is isolated per test.
func chdirTemp(t *testing.T) string {
	t.Helper()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	tmpDir := t.TempDir()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	return tmpDir
}

// readEventLines returns all non-empty lines of .workdesk/events.jsonl,
// or nil when the file does not exist yet.
func readEventLines(t *testing.T) []string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(".workdesk", "events.jsonl"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read events.jsonl: %v", err)
	}
	var lines []string
	for _, line := range strings.Split(string(b), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestRunner_ToolExec_JSONL_Success(t *testing.T) {
	t.Setenv("WD_OBSERVE_JSON", "1")
	_ = chdirTemp(t)

	// Provider response triggers a tool_use with a small JSON input
	resp := `{
		"role": "assistant",
		"content": [
			{"type": "tool_use", "id": "t1", "name": "list_resources", "input": {"resource_type": "meetings"}}
		]
	}`
	fake := &fakeTransport{respStatus: 200, respBody: []byte(resp), captured: &capture{}}
	cli := newClientWithTransport(fake)

	r := runner.New(cli, testRegistry(), 1000)
	conv := []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock("please list meetings"))}

	before := len(readEventLines(t))
	_, _, err := r.RunOneStep(context.Background(), provider.DefaultModel, conv)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	lines := readEventLines(t)
	if got := len(lines) - before; got < 2 { // window_prepared + tool_exec
		t.Fatalf("expected at least 2 new events, got %d", got)
	}

	// Find the last tool_exec event and validate fields
	var exec map[string]any
	for i := len(lines) - 1; i >= 0; i-- {
		var m map[string]any
		if err := json.Unmarshal([]byte(lines[i]), &m); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if m["event"] == "tool_exec" {
			exec = m
			break
		}
	}
	if exec == nil {
		t.Fatal("no tool_exec event found")
	}

	if exec["tool_name"] != "list_resources" {
		t.Errorf("tool_name: want list_resources, got %v", exec["tool_name"])
	}
	if v, ok := exec["duration_ms"].(float64); !ok || v < 0 {
		t.Errorf("duration_ms should be >= 0, got %v", exec["duration_ms"])
	}
	if v, ok := exec["input_size"].(float64); !ok || v <= 0 {
		t.Errorf("input_size should be > 0, got %v", exec["input_size"])
	}
	if v, ok := exec["output_size"].(float64); !ok || v <= 0 {
		t.Errorf("output_size should be > 0, got %v", exec["output_size"])
	}
	if _, ok := exec["error"]; !ok {
		t.Errorf("missing error field")
	} else if exec["error"] != nil {
		t.Errorf("error should be null on success, got %v", exec["error"])
	}
	if s, ok := exec["turn_id"].(string); !ok || strings.TrimSpace(s) == "" {
		t.Errorf("turn_id missing or empty: %v", exec["turn_id"])
	}

	// Correlate with latest window_prepared turn_id
	var wp map[string]any
	for i := len(lines) - 1; i >= 0; i-- {
		var m map[string]any
		_ = json.Unmarshal([]byte(lines[i]), &m)
		if m["event"] == "window_prepared" {
			wp = m
			break
		}
	}
	if wp == nil {
		t.Fatal("no window_prepared event found")
	}
	if exec["turn_id"] != wp["turn_id"] {
		t.Errorf("turn_id mismatch between tool_exec and window_prepared: %v vs %v", exec["turn_id"], wp["turn_id"])
	}
}

func TestRunner_ToolExec_JSONL_HandlerError(t *testing.T) {
	t.Setenv("WD_OBSERVE_JSON", "1")
	_ = chdirTemp(t)

	// Tool that returns an error
	errTool := tools.ToolDefinition{
		Name:        "err_tool",
		Description: "always errors",
		InputSchema: tools.GenerateSchema[struct{}](),
		Function: func(ctx context.Context, input json.RawMessage) (string, error) {
			return "", fmt.Errorf("boom")
		},
	}

	// Provider asks to call err_tool with any input
	resp := `{
		"role": "assistant",
		"content": [
			{"type": "tool_use", "id": "e1", "name": "err_tool", "input": {"x": 1}}
		]
	}`
	fake := &fakeTransport{respStatus: 200, respBody: []byte(resp), captured: &capture{}}
	cli := newClientWithTransport(fake)
	r := runner.New(cli, []tools.ToolDefinition{errTool}, 1000)
	conv := []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock("call err tool"))}

	before := len(readEventLines(t))
	_, _, err := r.RunOneStep(context.Background(), provider.DefaultModel, conv)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	lines := readEventLines(t)
	if len(lines) <= before {
		t.Fatal("expected new events written")
	}

	// Find tool_exec
	var exec map[string]any
	for i := len(lines) - 1; i >= 0; i-- {
		var m map[string]any
		_ = json.Unmarshal([]byte(lines[i]), &m)
		if m["event"] == "tool_exec" {
			exec = m
			break
		}
	}
	if exec == nil {
		t.Fatal("no tool_exec event found")
	}
	if exec["tool_name"] != "err_tool" {
		t.Errorf("tool_name: want err_tool, got %v", exec["tool_name"])
	}
	if exec["error"] == nil || exec["error"].(string) == "" {
		t.Errorf("expected non-empty error string, got %v", exec["error"])
	}
	if v, ok := exec["output_size"].(float64); !ok || v != 0 {
		t.Errorf("output_size should be 0 on error, got %v", exec["output_size"])
	}
}

func TestRunner_ToolExec_JSONL_ToolNotFound(t *testing.T) {
	t.Setenv("WD_OBSERVE_JSON", "1")
	_ = chdirTemp(t)

	// No matching tool in registry
	resp := `{
		"role": "assistant",
		"content": [
			{"type": "tool_use", "id": "nf1", "name": "does_not_exist", "input": {"a": 1}}
		]
	}`
	fake := &fakeTransport{respStatus: 200, respBody: []byte(resp), captured: &capture{}}
	cli := newClientWithTransport(fake)
	r := runner.New(cli, []tools.ToolDefinition{}, 1000)
	conv := []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock("call missing"))}

	before := len(readEventLines(t))
	_, _, err := r.RunOneStep(context.Background(), provider.DefaultModel, conv)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	lines := readEventLines(t)
	if len(lines) <= before {
		t.Fatal("expected new events written")
	}

	var exec map[string]any
	for i := len(lines) - 1; i >= 0; i-- {
		var m map[string]any
		_ = json.Unmarshal([]byte(lines[i]), &m)
		if m["event"] == "tool_exec" {
			exec = m
			break
		}
	}
	if exec == nil {
		t.Fatal("no tool_exec event found")
	}
	if v, ok := exec["output_size"].(float64); !ok || v != 0 {
		t.Errorf("output_size should be 0 for not found, got %v", exec["output_size"])
	}
	if exec["error"] == nil || exec["error"].(string) == "" {
		t.Errorf("expected non-empty error string for not found, got %v", exec["error"])
	}
}

func TestRunner_ToolExec_Gating_Off_NoWrites(t *testing.T) {
	// Do NOT set WD_OBSERVE_JSON, keep it off
	_ = chdirTemp(t)

	resp := `{
		"role": "assistant",
		"content": [
			{"type": "tool_use", "id": "t1", "name": "list_resources", "input": {}}
		]
	}`
	fake := &fakeTransport{respStatus: 200, respBody: []byte(resp), captured: &capture{}}
	cli := newClientWithTransport(fake)
	r := runner.New(cli, testRegistry(), 1000)
	conv := []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock("please list everything"))}

	_, _, err := r.RunOneStep(context.Background(), provider.DefaultModel, conv)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Assert .workdesk does not exist and no JSONL was written
	if _, err := os.Stat(".workdesk"); !os.IsNotExist(err) {
		t.Fatalf("expected no .workdesk directory when WD_OBSERVE_JSON is off")
	}
}

func TestRunner_ToolExec_JSONL_TurnID_Propagation(t *testing.T) {
	t.Setenv("WD_OBSERVE_JSON", "1")
	_ = chdirTemp(t)

	resp := `{"role":"assistant","content":[{"type":"tool_use","id":"t1","name":"list_resources","input":{}}]}`
	fake := &fakeTransport{respStatus: 200, respBody: []byte(resp), captured: &capture{}}
	cli := newClientWithTransport(fake)
	r := runner.New(cli, testRegistry(), 1000)
	conv := []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock("please list everything"))}

	ctx := telemetry.WithTurnID(context.Background(), "turn-xyz")
	_, _, err := r.RunOneStep(ctx, provider.DefaultModel, conv)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	var wp, exec map[string]any
	for _, line := range readEventLines(t) {
		var m map[string]any
		_ = json.Unmarshal([]byte(line), &m)
		switch m["event"] {
		case "window_prepared":
			wp = m
		case "tool_exec":
			exec = m
		}
	}
	if wp == nil || exec == nil {
		t.Fatal("missing window_prepared or tool_exec")
	}
	if wp["turn_id"] != "turn-xyz" {
		t.Errorf("window_prepared turn_id = %v", wp["turn_id"])
	}
	if exec["turn_id"] != "turn-xyz" {
		t.Errorf("tool_exec turn_id = %v", exec["turn_id"])
	}
}

func TestRunner_ToolExec_Privacy_NoRawPayloadLeak(t *testing.T) {
	t.Setenv("WD_OBSERVE_JSON", "1")
	_ = chdirTemp(t)

	secret := "__SECRET_NEVER_APPEAR__"
	// Input includes a distinctive secret string
	resp := fmt.Sprintf(`{
		"role": "assistant",
		"content": [
			{"type": "tool_use", "id": "t1", "name": "read_resource", "input": {"resource_type": "meetings", "resource_id": %q}}
		]
	}`, secret)

	fake := &fakeTransport{respStatus: 200, respBody: []byte(resp), captured: &capture{}}
	cli := newClientWithTransport(fake)
	r := runner.New(cli, testRegistry(), 1000)
	conv := []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock("read something"))}

	_, _, err := r.RunOneStep(context.Background(), provider.DefaultModel, conv)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Ensure no event line contains the raw secret string
	for _, line := range readEventLines(t) {
		if strings.Contains(line, secret) {
			t.Fatalf("raw payload leaked into telemetry: %q", line)
		}
	}
}
