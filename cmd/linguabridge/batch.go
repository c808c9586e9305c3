package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/linguabridge/internal/app"
	"github.com/joseph-ayodele/linguabridge/internal/async"
	"github.com/joseph-ayodele/linguabridge/internal/ingest"
	"github.com/joseph-ayodele/linguabridge/internal/logger"
	"github.com/joseph-ayodele/linguabridge/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch [dir]",
	Short: "Process every supported file under a directory on a worker pool",
	Long: `Walk a directory for images, PDFs and audio files and run the document
pipeline on them with several workers. Each document is still processed page by
page; only separate documents run concurrently.

With --watch the command keeps running after the initial walk and processes
files as they appear, until interrupted.`,
	Example: `  linguabridge batch ./scans --workers 4 --user alice
  linguabridge batch ./inbox --watch --timeout 0`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().String("user", "cli", "user id the documents belong to")
	batchCmd.Flags().Int("workers", 4, "documents processed concurrently")
	batchCmd.Flags().Duration("per-document-timeout", 10*time.Minute, "timeout for a single document")
	batchCmd.Flags().StringSlice("ext", nil, "only these extensions (default: every supported upload type)")
	batchCmd.Flags().Bool("skip-hidden", true, "ignore dot files and directories")
	batchCmd.Flags().Bool("watch", false, "keep watching the directory for new files")
	batchCmd.Flags().Duration("debounce", 2*time.Second, "quiet period before a new file is picked up in --watch mode")
	batchCmd.Flags().Bool("json", false, "Output as JSON lines")
}

// batchRun tracks staged uploads and their outcome across workers.
type batchRun struct {
	mu      sync.Mutex
	sources map[uuid.UUID]string
	total   int
	failed  int
}

func (b *batchRun) staged(id uuid.UUID, path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sources[id] = path
	b.total++
}

func (b *batchRun) fail() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.total++
	b.failed++
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("batch")
	if err := cfg.RequireLLM(); err != nil {
		return err
	}
	root := args[0]
	exts, _ := cmd.Flags().GetStringSlice("ext")
	skipHidden, _ := cmd.Flags().GetBool("skip-hidden")
	watch, _ := cmd.Flags().GetBool("watch")

	files, stats, err := ingest.Scan(root, ingest.ScanOptions{Exts: exts, SkipHidden: skipHidden})
	if err != nil {
		return err
	}
	log.Info().
		Uint32("scanned", stats.Scanned).
		Uint32("matched", stats.Matched).
		Uint32("failed", stats.Failed).
		Msg("batch.scan.ok")
	if len(files) == 0 && !watch {
		return fmt.Errorf("no supported files under %s", root)
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()
	a, err := app.New(ctx, cfg, logger.Get())
	if err != nil {
		return err
	}
	defer a.Close()

	user, _ := cmd.Flags().GetString("user")
	workers, _ := cmd.Flags().GetInt("workers")
	perDoc, _ := cmd.Flags().GetDuration("per-document-timeout")
	asJSON, _ := cmd.Flags().GetBool("json")

	run := &batchRun{sources: make(map[uuid.UUID]string, len(files))}
	queue := async.NewProcessorQueue(a.Processor, log,
		async.WithWorkers(workers),
		async.WithQueueSize(len(files)),
		async.WithProcessTimeout(perDoc),
		async.WithOnDone(func(job async.Job, res *pipeline.Result, err error) {
			run.mu.Lock()
			defer run.mu.Unlock()
			if err != nil {
				run.failed++
			}
			if werr := printResult(cmd.OutOrStdout(), summarizeResult(run.sources[job.Upload.ID], res, err), asJSON); werr != nil {
				log.Warn().Err(werr).Msg("batch.print_failed")
			}
		}),
	)

	start := time.Now()
	submit := func(path string) error {
		up, err := stageUpload(user, path)
		if err != nil {
			run.fail()
			log.Error().Err(err).Str("file", path).Msg("batch.stage_failed")
			return nil
		}
		run.staged(up.ID, path)
		return queue.Enqueue(ctx, async.Job{Upload: up, SubmittedAt: time.Now(), TraceID: up.ID.String()})
	}

	for _, path := range files {
		if err := submit(path); err != nil {
			log.Error().Err(err).Str("file", path).Msg("batch.enqueue_failed")
			break
		}
	}
	if watch && ctx.Err() == nil {
		debounce, _ := cmd.Flags().GetDuration("debounce")
		if err := watchAndSubmit(ctx, root, ingest.WatchConfig{
			Roots:      []string{root},
			Exts:       exts,
			SkipHidden: skipHidden,
			Debounce:   debounce,
		}, submit, log); err != nil {
			log.Error().Err(err).Msg("batch.watch_failed")
		}
	}
	// drain with a fresh context: an interrupt stops intake, not running documents
	queue.Shutdown(context.WithoutCancel(ctx))

	run.mu.Lock()
	total, failed := run.total, run.failed
	run.mu.Unlock()
	log.Info().
		Int("files", total).
		Int("failed", failed).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("batch.done")
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, total)
	}
	if watch {
		return nil
	}
	return ctx.Err()
}

// watchAndSubmit feeds new files to submit until ctx ends.
func watchAndSubmit(ctx context.Context, root string, wc ingest.WatchConfig, submit func(string) error, log zerolog.Logger) error {
	events, errs, err := ingest.Watch(ctx, wc, log)
	if err != nil {
		return err
	}
	log.Info().Str("root", root).Msg("batch.watch.start")
	for {
		select {
		case path, ok := <-events:
			if !ok {
				return nil
			}
			if err := submit(path); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		case err, ok := <-errs:
			if ok && err != nil {
				log.Warn().Err(err).Msg("batch.watch.error")
			}
			if !ok {
				errs = nil
			}
		}
	}
}
