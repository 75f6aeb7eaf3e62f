package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const eventsDir = ".workdesk"

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// Emit writes a single JSON line to .workdesk/events.jsonl when WD_OBSERVE_JSON=1.
// Each line carries the caller's fields plus the event name and an RFC3339Nano
// timestamp. The sink is opened per emission so events always land relative to
// the current working directory. Callers' maps are never mutated.
func Emit(name string, fields map[string]any) {
	if !ObserveEnabled() {
		return
	}

	if err := os.MkdirAll(eventsDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: mkdir %s: %v\n", eventsDir, err)
		return
	}

	path := filepath.Join(eventsDir, "events.jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: open %s: %v\n", path, err)
		return
	}
	defer f.Close()

	lg := zerolog.New(f).With().Timestamp().Logger()
	lg.Log().Fields(fields).Str("event", name).Send()
}
