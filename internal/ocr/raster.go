package ocr

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// RasterOptions selects resolution and an optional page range (1-based, inclusive).
type RasterOptions struct {
	DPI       int
	FirstPage int
	LastPage  int
}

// Rasterizer turns a PDF into one PNG per page, in page order.
// A nil error guarantees at least one page.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdfPath, outDir string, opts RasterOptions) ([]string, error)
}

// Pdftoppm rasterizes with poppler's pdftoppm.
type Pdftoppm struct {
	Bin      string // binary name or absolute path; if empty -> "pdftoppm"
	MaxPages int    // 0 = no limit
	Runner   Runner
}

func (p Pdftoppm) Rasterize(ctx context.Context, pdfPath, outDir string, opts RasterOptions) ([]string, error) {
	bin := p.Bin
	if bin == "" {
		bin = "pdftoppm"
	}
	if opts.DPI <= 0 {
		opts.DPI = 300
	}
	last := opts.LastPage
	if p.MaxPages > 0 {
		first := max(opts.FirstPage, 1)
		if capLast := first + p.MaxPages - 1; last == 0 || last > capLast {
			last = capLast
		}
	}

	prefix := filepath.Join(outDir, "page")
	// pdftoppm -r 300 -png [-f N] [-l M] <in.pdf> <dir/page>
	args := []string{"-r", strconv.Itoa(opts.DPI), "-png"}
	if opts.FirstPage > 0 {
		args = append(args, "-f", strconv.Itoa(opts.FirstPage))
	}
	if last > 0 {
		args = append(args, "-l", strconv.Itoa(last))
	}
	args = append(args, pdfPath, prefix)

	_, errb, err := p.Runner.Run(ctx, bin, args...)
	if err != nil {
		return nil, &RasterError{Path: pdfPath, Stderr: truncate(strings.TrimSpace(string(errb)), 512), Err: err}
	}

	// collect generated pngs (page-1.png, page-2.png, ... zero padded to equal width)
	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, &RasterError{Path: pdfPath, Err: err}
	}
	sort.Slice(matches, func(i, j int) bool {
		return pageNumber(matches[i]) < pageNumber(matches[j])
	})
	if len(matches) == 0 {
		return nil, &RasterError{Path: pdfPath, Err: errors.New("pdftoppm produced no images")}
	}
	return matches, nil
}

func pageNumber(path string) int {
	base := strings.TrimSuffix(filepath.Base(path), ".png")
	i := strings.LastIndexByte(base, '-')
	n, err := strconv.Atoi(base[i+1:])
	if err != nil {
		return 0
	}
	return n
}

