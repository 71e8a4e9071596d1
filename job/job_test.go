package job_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/queueworks/taskpool/job"
)

func TestFunc_Adapts(t *testing.T) {
	boom := errors.New("boom")

	called := false
	var j job.Job = job.Func(func() error {
		called = true
		return boom
	})

	if err := j.Execute(); !errors.Is(err, boom) {
		t.Errorf("Execute() error = %v, want boom", err)
	}
	if !called {
		t.Error("adapted function was not called")
	}
}

func TestName(t *testing.T) {
	if got := job.Name(job.NewLog(nil, "hi")); got != "log" {
		t.Errorf("Name(Log) = %q, want %q", got, "log")
	}
	if got := job.Name(job.NewSleep(time.Millisecond)); got != "sleep" {
		t.Errorf("Name(Sleep) = %q, want %q", got, "sleep")
	}

	// Unnamed jobs fall back to the dynamic type.
	got := job.Name(job.Func(func() error { return nil }))
	if !strings.Contains(got, "job.Func") {
		t.Errorf("Name(Func) = %q, want the dynamic type", got)
	}
}

func TestLog_WritesMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	j := job.NewLog(logger, "hello from the pool")
	if err := j.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(buf.String(), "hello from the pool") {
		t.Errorf("log output %q missing the job message", buf.String())
	}
}

func TestSleep_Blocks(t *testing.T) {
	const d = 50 * time.Millisecond

	start := time.Now()
	if err := job.NewSleep(d).Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < d {
		t.Errorf("Execute returned after %v, want at least %v", elapsed, d)
	}
}
