// Package ingest discovers files to feed the document pipeline, either by walking
// a directory once or by watching it for new files.
package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joseph-ayodele/linguabridge/constants"
)

// ScanOptions filter a directory walk. A nil Exts accepts every upload extension.
type ScanOptions struct {
	Exts       []string
	SkipHidden bool
}

// DirStats summarizes a directory walk.
type DirStats struct {
	Scanned uint32
	Matched uint32
	Failed  uint32
}

// Scan walks root and returns matching files in lexical order. Unreadable entries
// are counted as failed and skipped.
func Scan(root string, opts ScanOptions) ([]string, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}
	exts := extSet(opts.Exts)

	var files []string
	var stats DirStats
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			stats.Failed++
			return nil
		}
		if path != root && opts.SkipHidden && isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		stats.Scanned++
		if !allowed(path, exts) {
			return nil
		}
		stats.Matched++
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, stats, nil
}

func extSet(exts []string) map[string]struct{} {
	set := map[string]struct{}{}
	if len(exts) == 0 {
		for ext := range constants.AllowedExtensions {
			set[ext] = struct{}{}
		}
		return set
	}
	for _, e := range exts {
		if e = constants.NormalizeExt(strings.TrimSpace(e)); e != "" {
			set[e] = struct{}{}
		}
	}
	return set
}

func allowed(path string, exts map[string]struct{}) bool {
	_, ok := exts[constants.NormalizeExt(filepath.Ext(path))]
	return ok
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
