package ocr

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestExecRunnerTimeout(t *testing.T) {
	r := ExecRunner{Timeout: 50 * time.Millisecond, Logger: zerolog.Nop()}
	start := time.Now()
	_, _, err := r.Run(context.Background(), "sleep", "5")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), 4*time.Second)
}

func TestExecRunnerMissingBinary(t *testing.T) {
	_, _, err := ExecRunner{Logger: zerolog.Nop()}.Run(context.Background(), "linguabridge-no-such-tool")
	require.Error(t, err)
}

func TestTruncateKeepsRunes(t *testing.T) {
	require.Equal(t, "abc", truncate("abc", 5))
	// each Devanagari letter is three bytes
	require.Equal(t, "क…", truncate("कखग", 4))
}
