package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Runner executes an external tool. Tests substitute it to avoid real binaries.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs tesseract, pdftoppm and the HEIC converters from PATH. A
// positive Timeout bounds each invocation on top of ctx.
type ExecRunner struct {
	Timeout time.Duration
	Logger  zerolog.Logger
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	start := time.Now()

	var out, errb bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout, cmd.Stderr = &out, &errb
	err := cmd.Run()
	if err != nil && ctx.Err() != nil {
		err = fmt.Errorf("%s: %w", name, ctx.Err())
	}

	ev := r.Logger.Debug()
	if err != nil {
		ev = r.Logger.Warn().Err(err).Str("stderr", truncate(strings.TrimSpace(errb.String()), 2048))
	}
	ev.Str("cmd", name).
		Str("args", strings.Join(args, " ")).
		Int("stdout_bytes", out.Len()).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("ocr.exec")
	return out.Bytes(), errb.Bytes(), err
}

// truncate cuts s to at most max bytes without splitting a UTF-8 sequence.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}

func utf8RuneStart(b byte) bool { return b&0xC0 != 0x80 }
