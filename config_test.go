package rwsem

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	s := New()
	if s.scheduler() != Goroutines {
		t.Fatal("default scheduler is not Goroutines")
	}
	if s.log != nil || s.name != "" {
		t.Fatal("unexpected defaults")
	}
}

func TestNew_Options(t *testing.T) {
	fs := &fakeScheduler{}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	s := New(WithName("cfg"), WithScheduler(fs), WithLogger(logger))
	if s.name != "cfg" || s.scheduler() != Scheduler(fs) || s.log != logger {
		t.Fatalf("options not applied: %+v", s)
	}
}

func TestSem_TraceLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := New(WithName("traced"), WithLogger(logger))

	s.Lock()
	done := make(chan struct{})
	go func() {
		s.RLock()
		close(done)
	}()
	waitQueued(t, s, 1)
	s.Unlock()
	<-done
	s.RUnlock()

	out := buf.String()
	for _, want := range []string{
		"rwsem: waiting",
		"rwsem: granted readers",
		"rwsem: acquired",
		"name=traced",
		"mode=read",
		"count=1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("trace output lacks %q:\n%s", want, out)
		}
	}
}

func TestSem_TraceLevelFiltered(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	s := New(WithLogger(logger))

	s.Lock()
	done := make(chan struct{})
	go func() {
		s.Lock()
		close(done)
	}()
	waitQueued(t, s, 1)
	s.Unlock()
	<-done
	s.Unlock()

	if buf.Len() != 0 {
		t.Fatalf("debug records leaked at info level:\n%s", buf.String())
	}
}
