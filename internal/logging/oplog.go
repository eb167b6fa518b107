package logging

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// maxInput bounds every logged input so one oversized request cannot bloat
// the log.
const maxInput = 256

// Op is written as a single JSON object per served request.
type Op struct {
	Timestamp   time.Time `json:"ts"`
	RequestID   string    `json:"request_id"`
	ClientIP    string    `json:"client_ip"`
	Op          string    `json:"op"`
	Style       string    `json:"style"`
	Inputs      []string  `json:"inputs,omitempty"`
	Value       string    `json:"value,omitempty"`
	Result      string    `json:"result,omitempty"`
	Length      int       `json:"length"`
	Truncated   bool      `json:"truncated"`
	StatusCode  int       `json:"status_code"`
	Error       string    `json:"error,omitempty"`
	RateLimited bool      `json:"rate_limited"`
	DurationMS  int64     `json:"duration_ms"`
}

type OpLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func NewOpLogger(w io.Writer) *OpLogger {
	return &OpLogger{w: w}
}

func OpenOpLog(path string) (*OpLogger, func() error, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, errors.Wrap(err, "create op log directory")
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open op log")
	}
	return NewOpLogger(file), file.Close, nil
}

func (l *OpLogger) Write(op Op) error {
	op.Inputs = clipAll(op.Inputs)
	op.Value = clip(op.Value)
	op.Result = clip(op.Result)

	data, err := json.Marshal(op)
	if err != nil {
		return errors.Wrap(err, "encode op")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, err = l.w.Write(append(data, '\n'))
	return err
}

func clipAll(inputs []string) []string {
	if len(inputs) == 0 {
		return nil
	}
	out := make([]string, len(inputs))
	for i, in := range inputs {
		out[i] = clip(in)
	}
	return out
}

func clip(s string) string {
	if len(s) > maxInput {
		return s[:maxInput]
	}
	return s
}
