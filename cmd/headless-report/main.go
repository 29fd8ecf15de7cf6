package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"

	"github.com/Garsondee/Block-Launch/internal/board"
	"github.com/Garsondee/Block-Launch/internal/config"
	"github.com/Garsondee/Block-Launch/internal/report"
	"github.com/Garsondee/Block-Launch/internal/trace"
)

type batchOptions struct {
	runs      int
	ticks     int
	seedBase  int64
	seedStep  int64
	swapEvery int
	trace     string // file prefix; empty disables tracing
	progress  bool
}

func main() {
	var o batchOptions
	var cfgPath string

	flag.IntVar(&o.runs, "runs", 5, "number of headless runs")
	flag.IntVar(&o.ticks, "ticks", 3600, "ticks per run")
	flag.Int64Var(&o.seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&o.seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&o.swapEvery, "swap-every", 0, "attempt a random swap every N ticks (0 = no auto player)")
	flag.StringVar(&cfgPath, "config", "", "YAML board config (defaults when empty)")
	flag.StringVar(&o.trace, "trace", "", "write <prefix>-runN.jsonl.zst frame traces")
	flag.BoolVar(&o.progress, "progress", true, "show a progress bar on stderr")
	flag.Parse()

	if o.runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if o.ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}

	cfg := config.Default()
	if cfgPath != "" {
		c, err := config.Load(cfgPath)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		cfg = c
	} else if err := cfg.Validate(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Headless Board Report ===\n")
	fmt.Printf("board=%dx%d types=%d runs=%d ticks=%d seed_base=%d seed_step=%d swap_every=%d\n\n",
		cfg.Board.Width, cfg.Board.Height, cfg.Board.Types, o.runs, o.ticks, o.seedBase, o.seedStep, o.swapEvery)

	all, err := runBatch(cfg, o, os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(report.FormatTable(fmt.Sprintf("Aggregate over %d runs", len(all)), report.AggregateRuns(all)))
}

// runBatch executes every run, printing each as it finishes.
func runBatch(cfg *config.Config, o batchOptions, out io.Writer) ([]report.RunStats, error) {
	bar := pb.StartNew(o.runs * o.ticks)
	if !o.progress {
		bar.SetWriter(io.Discard)
	} else {
		bar.SetWriter(os.Stderr)
	}
	defer bar.Finish()

	all := make([]report.RunStats, 0, o.runs)
	for i := 0; i < o.runs; i++ {
		c := *cfg
		c.Seed = o.seedBase + int64(i)*o.seedStep
		rs, err := runOne(&c, i+1, o, bar)
		if err != nil {
			return all, err
		}
		all = append(all, rs)
		fmt.Fprint(out, report.FormatRun(rs))
		fmt.Fprintln(out)
	}
	return all, nil
}

func runOne(cfg *config.Config, index int, o batchOptions, bar *pb.ProgressBar) (rs report.RunStats, err error) {
	opts := report.Options{Ticks: o.ticks, SwapEvery: o.swapEvery}
	var tw *trace.Writer
	if o.trace != "" {
		f, ferr := os.Create(fmt.Sprintf("%s-run%d.jsonl.zst", o.trace, index))
		if ferr != nil {
			return rs, fmt.Errorf("trace file: %w", ferr)
		}
		defer func() {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = cerr
			}
		}()
		if tw, err = trace.NewWriter(f); err != nil {
			return rs, err
		}
	}
	opts.OnTick = func(b *board.Board) error {
		bar.Increment()
		if tw != nil {
			return tw.Write(trace.Capture(b))
		}
		return nil
	}

	rs, err = report.Run(cfg, index, opts)
	if tw != nil {
		if cerr := tw.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}
	return rs, err
}
