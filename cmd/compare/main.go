// Package main runs the particle representation comparison and writes a CSV
// of per-frame timings and heap footprint.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/swarm/bench"
)

func main() {
	defaults := bench.DefaultParams()

	n := flag.Int("n", defaults.Particles, "Particles per representation")
	frames := flag.Int("frames", defaults.Frames, "Frames per repeat")
	repeats := flag.Int("repeats", defaults.Repeats, "Timed repeats per representation")
	reps := flag.String("reps", "", "Comma-separated representations (empty = all: "+strings.Join(bench.Names(), ",")+")")
	seed := flag.Int64("seed", defaults.Seed, "Seed for the initial particle set")
	staticEvery := flag.Int("static-every", defaults.StaticEvery, "Mark every Nth particle static (0 = none)")
	out := flag.String("out", "", "CSV output path (empty = stdout)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	p := defaults
	p.Particles = *n
	p.Frames = *frames
	p.Repeats = *repeats
	p.Seed = *seed
	p.StaticEvery = *staticEvery

	names := bench.Names()
	if *reps != "" {
		names = strings.Split(*reps, ",")
	}

	results, err := bench.RunAll(names, p)
	if err != nil {
		slog.Error("comparison failed", "error", err)
		os.Exit(1)
	}
	for _, r := range results {
		slog.Info("result", "result", r)
	}

	w := os.Stdout
	if *out != "" {
		if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
			slog.Error("failed to create output directory", "error", err)
			os.Exit(1)
		}
		f, err := os.Create(*out)
		if err != nil {
			slog.Error("failed to create output file", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}
	if err := bench.WriteCSV(w, results); err != nil {
		slog.Error("failed to write results", "error", err)
		os.Exit(1)
	}
}
