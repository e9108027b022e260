package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"milanfood-backend/internal/domain"
)

// FileLog appends one line per order: RFC3339 timestamp, a tab, the JSON
// payload, a newline.
type FileLog struct {
	Path string
	Now  func() time.Time

	mu sync.Mutex
}

func NewFileLog(path string) *FileLog {
	return &FileLog{Path: path}
}

func (l *FileLog) Submit(_ context.Context, o *domain.Order) error {
	payload, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	return l.writeLine(payload)
}

// Append logs a storefront payload byte for byte.
func (l *FileLog) Append(_ context.Context, _ string, payload json.RawMessage) error {
	return l.writeLine(payload)
}

func (l *FileLog) writeLine(payload []byte) error {
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	line := make([]byte, 0, len(payload)+40)
	line = append(line, now().UTC().Format(time.RFC3339Nano)...)
	line = append(line, '\t')
	line = append(line, payload...)
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	if dir := filepath.Dir(l.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
