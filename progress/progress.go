// Package progress reports pipeline stages to the terminal or as JSON lines.
//
// Implementations include:
//   - CLIEmitter: pretty-printed terminal output using pterm
//   - JSONEmitter: one structured JSON event per line for machine consumption
//   - Nop: discards everything (library use and tests)
package progress

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/pterm/pterm"
)

// Emitter receives stage and progress notifications from the pipeline
type Emitter interface {
	// EmitStage announces the start of a pipeline stage
	EmitStage(stage string, message string)

	// EmitProgress reports completed work items; metadata["type"] names the item
	EmitProgress(count int, metadata map[string]interface{})

	// EmitComplete prints the final summary
	EmitComplete(summary map[string]interface{})

	// EmitError reports a failure in a stage
	EmitError(stage string, err error)

	// EmitInfo prints an informational message
	EmitInfo(message string)
}

// Event represents a structured JSON progress event
type Event struct {
	Type      string                 `json:"type"` // "stage", "progress", "complete", "error", "info"
	RunID     string                 `json:"run_id,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// CLIEmitter outputs pretty-printed progress to the terminal using pterm
type CLIEmitter struct {
	out       io.Writer
	verbosity int
}

// NewCLIEmitter creates a CLI progress emitter writing to out
func NewCLIEmitter(out io.Writer, verbosity int) *CLIEmitter {
	return &CLIEmitter{out: out, verbosity: verbosity}
}

// EmitStage prints a stage announcement (shown with -v)
func (e *CLIEmitter) EmitStage(stage string, message string) {
	if e.verbosity >= 1 {
		pterm.Fprint(e.out, pterm.Sprintf("🔄 %s: %s\n", pterm.LightCyan(stage), message))
	}
}

// EmitProgress prints a progress count (shown with -vv, one line per cluster
// would flood the terminal otherwise)
func (e *CLIEmitter) EmitProgress(count int, metadata map[string]interface{}) {
	if e.verbosity < 2 {
		return
	}
	if itemType, ok := metadata["type"].(string); ok {
		pterm.Fprint(e.out, pterm.Sprintf("✅ Processed %s %s\n", pterm.Green(fmt.Sprintf("%d", count)), itemType))
	} else {
		pterm.Fprint(e.out, pterm.Sprintf("✅ Processed %s items\n", pterm.Green(fmt.Sprintf("%d", count))))
	}
}

// EmitComplete prints the completion summary with keys in sorted order
func (e *CLIEmitter) EmitComplete(summary map[string]interface{}) {
	pterm.Success.WithWriter(e.out).Println("Done")
	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pterm.Fprint(e.out, pterm.Sprintf("  %s: %v\n", k, summary[k]))
	}
}

// EmitError prints an error
func (e *CLIEmitter) EmitError(stage string, err error) {
	pterm.Error.WithWriter(e.out).Printfln("Error in %s: %v", stage, err)
}

// EmitInfo prints an informational message (shown with -v)
func (e *CLIEmitter) EmitInfo(message string) {
	if e.verbosity >= 1 {
		pterm.Info.WithWriter(e.out).Println(message)
	}
}

// JSONEmitter writes structured JSON events, one per line
type JSONEmitter struct {
	encoder *json.Encoder
	runID   string
	now     func() time.Time
}

// NewJSONEmitter creates a JSON progress emitter writing to w. runID is
// attached to every event.
func NewJSONEmitter(w io.Writer, runID string) *JSONEmitter {
	return &JSONEmitter{
		encoder: json.NewEncoder(w),
		runID:   runID,
		now:     time.Now,
	}
}

func (e *JSONEmitter) emit(eventType string, data map[string]interface{}) {
	_ = e.encoder.Encode(Event{
		Type:      eventType,
		RunID:     e.runID,
		Timestamp: e.now(),
		Data:      data,
	})
}

// EmitStage emits a stage event as JSON
func (e *JSONEmitter) EmitStage(stage string, message string) {
	e.emit("stage", map[string]interface{}{
		"stage":   stage,
		"message": message,
	})
}

// EmitProgress emits a progress event as JSON with metadata merged in
func (e *JSONEmitter) EmitProgress(count int, metadata map[string]interface{}) {
	data := map[string]interface{}{
		"count": count,
	}
	for k, v := range metadata {
		data[k] = v
	}
	e.emit("progress", data)
}

// EmitComplete emits a completion event as JSON
func (e *JSONEmitter) EmitComplete(summary map[string]interface{}) {
	e.emit("complete", summary)
}

// EmitError emits an error event as JSON
func (e *JSONEmitter) EmitError(stage string, err error) {
	e.emit("error", map[string]interface{}{
		"stage": stage,
		"error": err.Error(),
	})
}

// EmitInfo emits an info event as JSON
func (e *JSONEmitter) EmitInfo(message string) {
	e.emit("info", map[string]interface{}{
		"message": message,
	})
}

// Nop discards all events
type Nop struct{}

func (Nop) EmitStage(string, string)                 {}
func (Nop) EmitProgress(int, map[string]interface{}) {}
func (Nop) EmitComplete(map[string]interface{})      {}
func (Nop) EmitError(string, error)                  {}
func (Nop) EmitInfo(string)                          {}
