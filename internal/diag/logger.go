// Package diag provides the structured event logger used by the converter
// and the command line tool.
package diag

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"
)

// Level orders event severities.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// ParseLevel maps a level name to a Level. Unknown names are Info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

// Format selects how events are rendered.
type Format int

const (
	// Text renders "ts LEVEL comp: msg k=v" lines.
	Text Format = iota
	// JSON renders one JSON object per line.
	JSON
)

// ParseFormat maps "json" to JSON and anything else to Text.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return JSON
	}
	return Text
}

// KV carries event attributes.
type KV map[string]string

// Event is one log record.
type Event struct {
	Level string `json:"level"`
	TS    string `json:"ts"`
	RunID string `json:"run_id"`
	Comp  string `json:"comp"`
	Msg   string `json:"msg"`
	KV    KV     `json:"kv,omitempty"`
}

// Logger writes single-line events to a writer. A nil *Logger discards
// everything, so components can log unconditionally.
type Logger struct {
	runID  string
	level  Level
	format Format
	colors map[Level]*color.Color
	now    func() time.Time

	mu sync.Mutex
	w  io.Writer
}

// New returns a Logger writing to w. Every event carries a fresh run id.
func New(w io.Writer, level Level, format Format) *Logger {
	l := &Logger{
		runID:  uuid.NewString(),
		level:  level,
		format: format,
		now:    time.Now,
		w:      w,
		colors: map[Level]*color.Color{
			Debug: color.New(color.FgHiBlack),
			Info:  color.New(color.FgCyan),
			Warn:  color.New(color.FgYellow),
			Error: color.New(color.FgRed, color.Bold),
		},
	}
	l.SetColor(false)
	return l
}

// SetColor toggles ANSI colors on text level tags.
func (l *Logger) SetColor(on bool) {
	if l == nil {
		return
	}
	for _, c := range l.colors {
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// RunID returns the id stamped on every event of this logger.
func (l *Logger) RunID() string {
	if l == nil {
		return ""
	}
	return l.runID
}

func (l *Logger) Debug(comp, msg string, kv KV) { l.log(Debug, comp, msg, kv) }
func (l *Logger) Info(comp, msg string, kv KV)  { l.log(Info, comp, msg, kv) }
func (l *Logger) Warn(comp, msg string, kv KV)  { l.log(Warn, comp, msg, kv) }
func (l *Logger) Error(comp, msg string, kv KV) { l.log(Error, comp, msg, kv) }

func (l *Logger) log(lv Level, comp, msg string, kv KV) {
	if l == nil || lv < l.level {
		return
	}
	ev := Event{
		Level: lv.String(),
		TS:    l.now().UTC().Format(time.RFC3339Nano),
		RunID: l.runID,
		Comp:  comp,
		Msg:   msg,
		KV:    kv,
	}

	var line []byte
	if l.format == JSON {
		b, err := json.Marshal(ev)
		if err != nil {
			b = []byte(fmt.Sprintf(`{"level":"error","msg":%q}`, "failed to encode log event: "+err.Error()))
		}
		line = append(b, '\n')
	} else {
		line = []byte(l.text(lv, ev))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(line)
}

func (l *Logger) text(lv Level, ev Event) string {
	var b strings.Builder
	b.WriteString(ev.TS)
	b.WriteByte(' ')
	b.WriteString(l.colors[lv].Sprint(strings.ToUpper(ev.Level)))
	b.WriteByte(' ')
	if ev.Comp != "" {
		b.WriteString(ev.Comp)
		b.WriteString(": ")
	}
	b.WriteString(ev.Msg)

	keys := make([]string, 0, len(ev.KV))
	for k := range ev.KV {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		v := ev.KV[k]
		if strings.ContainsAny(v, " \t\"=") || v == "" {
			v = fmt.Sprintf("%q", v)
		}
		fmt.Fprintf(&b, " %s=%s", k, v)
	}
	b.WriteByte('\n')
	return b.String()
}
