// Package logic implements the split, join, verify and serve commands on top of the core packages.
package logic

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/gosplit/internal/config"
)

// ErrTooLarge is returned for inputs above the configured size limit.
var ErrTooLarge = errors.New("input exceeds the configured size limit")

// task processes one input and returns the path it produced (if any) and the bytes involved.
type task func(input string) (output string, size int64, err error)

// run applies work to every input in parallel and reports each result from a single printer goroutine.
//
//nolint:cyclop // parallel processing pipeline with printer goroutine
func run(cfg config.Config, verb string, inputs []string, work task) error {
	start := time.Now()

	type result struct {
		input  string
		output string
		size   int64
		err    error
	}

	results := make(chan result, len(inputs))

	group := errgroup.Group{}
	group.SetLimit(limit(cfg.Parallel))

	printed := make(chan struct{})

	var processed, errored int

	var totalSize int64

	go func() {
		defer close(printed)

		for res := range results {
			if res.err != nil {
				errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", res.input, res.err)

				continue
			}

			processed++

			totalSize += res.size

			if cfg.Quiet {
				continue
			}

			if res.output == "" {
				fmt.Printf("%s %q\n", verb, res.input) //nolint:forbidigo
			} else {
				fmt.Printf("%s %q -> %q\n", verb, res.input, res.output) //nolint:forbidigo
			}
		}
	}()

	for _, input := range inputs {
		group.Go(func() error {
			output, size, err := work(input)
			results <- result{input: input, output: output, size: size, err: err}

			if err != nil {
				return fmt.Errorf("%q: %w", input, err)
			}

			return nil
		})
	}

	err := group.Wait()

	close(results)

	<-printed

	if cfg.Stats {
		printStats(len(inputs), processed, errored, totalSize, time.Since(start))
	}

	return err
}

// limit turns the configured parallelism into an errgroup limit.
func limit(parallel int) int {
	if parallel < 1 {
		return runtime.NumCPU()
	}

	return parallel
}

// checkSize rejects files above the configured limit before they are read.
func checkSize(path string, info os.FileInfo, maxBytes int64) error {
	if info.Size() > maxBytes {
		//nolint:gosec // sizes are non-negative
		return fmt.Errorf("%w: %q is %s, limit is %s", ErrTooLarge, path,
			humanize.IBytes(uint64(info.Size())), humanize.IBytes(uint64(maxBytes)))
	}

	return nil
}

func printStats(inputs, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Inputs:    %d\n", inputs)
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", processed)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
