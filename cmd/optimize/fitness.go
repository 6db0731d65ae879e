package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/swarm/config"
	"github.com/pthm-cable/swarm/sim"
)

// Fitness weights.
const (
	stabilityWeight = 0.5 // coefficient of variation of the live count
	growWeight      = 0.05
	warmupSec       = 5.0 // ignore the fill-up phase
)

// FitnessEvaluator runs headless simulations and scores how closely the live
// population settles on a target.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config
	target     float64

	mu          sync.Mutex
	lastQuality float64 // visible fraction from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config, target int) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
		target:     float64(max(target, 1)),
	}
}

// LastQuality returns the mean visible fraction from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the samples from a single simulation run.
type runResult struct {
	live        []float64 // live count per tick after warmup
	visibleFrac float64
	lateGrows   int // store grows after warmup
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]*runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += fe.computeFitness(r)
		totalQuality += r.visibleFrac
	}
	n := float64(len(results))

	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes a single headless run of maxTicks.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}
	s, err := sim.New(cfg, sim.Options{Seed: seed})
	if err != nil {
		return result
	}
	defer s.Close()

	vp := s.WorldViewport()
	warmupTicks := int32(warmupSec / cfg.Physics.DT)
	growsAtWarmup := 0
	var visible, live float64

	for s.Tick() < fe.maxTicks {
		s.Step(vp)
		if s.Tick() == warmupTicks {
			growsAtWarmup = s.Store().Grows()
		}
		if s.Tick() <= warmupTicks {
			continue
		}
		n := s.Store().Len()
		result.live = append(result.live, float64(n))
		live += float64(n)
		visible += float64(s.Visible())
	}

	if live > 0 {
		result.visibleFrac = visible / live
	}
	if s.Tick() > warmupTicks {
		result.lateGrows = s.Store().Grows() - growsAtWarmup
	}
	return result
}

// copyConfig returns a copy of the base config. Config holds only values,
// so a struct copy is deep enough.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness scores one run: relative distance of the mean live count from
// the target, plus its relative spread, plus a small penalty for capacity
// growth once the population should have settled.
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	if len(r.live) == 0 {
		return math.Inf(1)
	}
	mean, std := stat.MeanStdDev(r.live, nil)
	if len(r.live) == 1 {
		std = 0
	}
	return math.Abs(mean-fe.target)/fe.target +
		stabilityWeight*std/fe.target +
		growWeight*float64(r.lateGrows)
}
