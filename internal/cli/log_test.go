package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		emit    func(*log.Logger)
		wantOut bool
	}{
		{"info passes at info", log.InfoLevel, func(l *log.Logger) { l.Info("x") }, true},
		{"debug filtered at info", log.InfoLevel, func(l *log.Logger) { l.Debug("x") }, false},
		{"debug passes at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("x") }, true},
		{"error passes at info", log.InfoLevel, func(l *log.Logger) { l.Error("x") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))

			if gotOut := buf.Len() > 0; gotOut != tt.wantOut {
				t.Errorf("wrote output = %v, want %v", gotOut, tt.wantOut)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))

	time.Sleep(5 * time.Millisecond)
	prog.done("computed layout")

	out := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte("computed layout")) {
		t.Errorf("done output missing message: %q", out)
	}
	// The elapsed suffix is "(<duration>)".
	if !bytes.Contains(buf.Bytes(), []byte("(")) || !bytes.Contains(buf.Bytes(), []byte("s)")) {
		t.Errorf("done output missing elapsed time: %q", out)
	}
}
