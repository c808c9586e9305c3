package llm

import (
	"fmt"

	"github.com/joseph-ayodele/linguabridge/internal/common"
)

// UpstreamError wraps a failed call to the model provider.
// errors.Is(err, common.ErrUpstream) holds for every UpstreamError.
type UpstreamError struct {
	Op  string // translate | chat | transcribe
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("llm %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() []error {
	return []error{common.ErrUpstream, e.Err}
}
