package command

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/solterra/towny-catalog/internal/host"
)

type recordingRunner struct {
	lines []string
	err   error
}

func (r *recordingRunner) Execute(v host.Viewer, line string) error {
	r.lines = append(r.lines, line)
	return r.err
}

func TestExecuteRunsLineBeforeReturning(t *testing.T) {
	runner := &recordingRunner{}
	bus := New(runner)
	v := host.NewLocal(uuid.New(), "Aster")

	cmd := bus.Execute(Request{Line: "/tcatalog info", Viewer: v})
	if len(runner.lines) != 1 {
		t.Fatalf("expected the line to run on the calling goroutine, got %v", runner.lines)
	}
	res, ok := cmd().(Result)
	if !ok {
		t.Fatalf("expected Result message")
	}
	if res.ID == "" || res.Line != "/tcatalog info" || res.Err != nil {
		t.Fatalf("unexpected result %+v", res)
	}
	cmd()
	if len(runner.lines) != 1 {
		t.Fatalf("expected one execution, got %v", runner.lines)
	}
}

func TestExecuteCarriesErrors(t *testing.T) {
	boom := errors.New("boom")
	bus := New(&recordingRunner{err: boom})
	res := bus.Execute(Request{ID: "fixed", Line: "/town", Viewer: host.NewLocal(uuid.New(), "Aster")})().(Result)
	if res.ID != "fixed" || !errors.Is(res.Err, boom) {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestExecuteWithoutViewerIsNoOp(t *testing.T) {
	runner := &recordingRunner{}
	if msg := New(runner).Execute(Request{Line: "/tcatalog"})(); msg != nil {
		t.Fatalf("expected nil message, got %T", msg)
	}
	if len(runner.lines) != 0 {
		t.Fatalf("expected nothing to run without a viewer, got %v", runner.lines)
	}
	if msg := New(nil).Execute(Request{Line: "/tcatalog", Viewer: host.NewLocal(uuid.New(), "Aster")})(); msg != nil {
		t.Fatalf("expected nil message without a runner, got %T", msg)
	}
}
