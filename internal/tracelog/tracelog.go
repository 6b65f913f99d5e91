// Package tracelog is an opt-in wire tracer: every raw line sent or
// received by the connection core is appended to a rotating JSONL file,
// for debugging handshake and correlation issues without a full-blown
// packet capture. Adapted from this corpus's file-rotation writer
// (originally chat-message persistence) for a single, unkeyed stream.
package tracelog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type entry struct {
	Time      string `json:"time"`
	Direction string `json:"direction"`
	Line      string `json:"line"`
}

// Writer appends wire-trace entries to a JSONL file, rotating by age or
// size the way this corpus's chat-log recorder rotates its output.
type Writer struct {
	outputDir       string
	rotateMinutes   int
	rotateMegabytes int64

	mu           sync.Mutex
	file         *os.File
	writer       *bufio.Writer
	createdAt    time.Time
	bytesWritten int64
}

// New creates a Writer that rotates every rotateMinutes minutes or
// rotateMegabytes megabytes, whichever comes first.
func New(outputDir string, rotateMinutes, rotateMegabytes int) (*Writer, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create trace output directory: %w", err)
	}
	w := &Writer{
		outputDir:       outputDir,
		rotateMinutes:   rotateMinutes,
		rotateMegabytes: int64(rotateMegabytes) * 1024 * 1024,
	}
	if err := w.openLocked(); err != nil {
		return nil, err
	}
	return w, nil
}

// TraceLine matches internal/conn's Config.TraceLine signature; wire it
// in directly as the trace callback.
func (w *Writer) TraceLine(direction, line string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.needsRotationLocked() {
		if err := w.rotateLocked(); err != nil {
			fmt.Fprintf(os.Stderr, "tracelog: rotate failed: %v\n", err)
			return
		}
	}

	data, err := json.Marshal(entry{
		Time:      time.Now().UTC().Format(time.RFC3339Nano),
		Direction: direction,
		Line:      line,
	})
	if err != nil {
		return
	}
	n, err := w.writer.Write(data)
	if err != nil {
		return
	}
	w.bytesWritten += int64(n)
	if err := w.writer.WriteByte('\n'); err == nil {
		w.bytesWritten++
	}
	_ = w.writer.Flush()
}

func (w *Writer) needsRotationLocked() bool {
	if time.Since(w.createdAt).Minutes() >= float64(w.rotateMinutes) {
		return true
	}
	return w.bytesWritten >= w.rotateMegabytes
}

func (w *Writer) openLocked() error {
	name := fmt.Sprintf("wire_%s.jsonl", time.Now().UTC().Format("20060102_150405.000000000"))
	f, err := os.Create(filepath.Join(w.outputDir, name))
	if err != nil {
		return fmt.Errorf("create trace file: %w", err)
	}
	w.file = f
	w.writer = bufio.NewWriter(f)
	w.createdAt = time.Now()
	w.bytesWritten = 0
	return nil
}

func (w *Writer) rotateLocked() error {
	_ = w.writer.Flush()
	_ = w.file.Close()
	return w.openLocked()
}

// Close flushes and closes the current trace file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.writer != nil {
		_ = w.writer.Flush()
	}
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}
