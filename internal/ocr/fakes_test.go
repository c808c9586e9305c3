package ocr

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

var errNoTraineddata = errors.New("failed loading language")

// scriptedEngine answers from a table keyed by language set and mode.
// Missing keys return "" and keys in fail return errNoTraineddata.
type scriptedEngine struct {
	mu      sync.Mutex
	out     map[Candidate]string
	fail    map[Candidate]bool
	failAll bool
	calls   []Candidate
}

func (e *scriptedEngine) Recognize(_ context.Context, _ string, languages string, mode Mode) (string, error) {
	c := Candidate{Languages: languages, Mode: mode}
	e.mu.Lock()
	e.calls = append(e.calls, c)
	e.mu.Unlock()
	if e.failAll || e.fail[c] {
		return "", errNoTraineddata
	}
	return e.out[c], nil
}

func newTestSelector(engine Engine) *Selector {
	return NewSelector(NewExecutor(engine, zerolog.Nop()), NewCleaner(nil), nil, zerolog.Nop())
}

type fakeRunner struct {
	run func(name string, args []string) ([]byte, []byte, error)
}

func (f fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	return f.run(name, args)
}
