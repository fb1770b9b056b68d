// Command flockbench runs the same scene headless once per index strategy and
// compares tick times, index shape and overflows.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-boids-spatial/pkg/agent"
	"github.com/lao-tseu-is-alive/go-boids-spatial/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-boids-spatial/pkg/snapshot"
)

type scenarioResult struct {
	strategy   string
	mean       time.Duration
	build      time.Duration
	update     time.Duration
	worst      time.Duration
	neighbors  float64 // per agent per tick
	depth      int
	nodes      int
	overflows  int
	population int
	agents     []agent.Agent
}

func main() {
	configFile := flag.String("config", "", "JSON or TOML config file, defaults are used when empty")
	boids := flag.Int("boids", 0, "override boidCount (and raise spawnCap when needed)")
	ticks := flag.Int("ticks", 600, "ticks to simulate per strategy")
	strategies := flag.String("strategies", "quadtree,grid,linear", "comma separated index strategies")
	workers := flag.Int("workers", -1, "override workers, 0 uses GOMAXPROCS")
	dump := flag.String("dump", "", "directory receiving the final frame of each run")
	codecName := flag.String("codec", "proto", "frame encoding for -dump: proto or msgpack")
	verbose := flag.Bool("v", false, "log simulation lifecycle")
	flag.Parse()

	base := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if base, err = simulation.LoadConfig(*configFile, ""); err != nil {
			fail(err)
		}
	}
	if *boids > 0 {
		base.BoidCount = *boids
		base.SpawnCap = max(base.SpawnCap, *boids)
	}
	if *workers >= 0 {
		base.Workers = *workers
	}
	codec, err := snapshot.NewCodec(*codecName)
	if err != nil {
		fail(err)
	}
	var logger log.Logger = log.DiscardLogger
	if *verbose {
		logger = log.DefaultLogger
	}

	dt := 1 / float64(base.TickRate)
	fmt.Printf("Running %d ticks of %d boids (dt %.4fs) for %s\n", *ticks, base.BoidCount, dt, *strategies)

	var all []scenarioResult
	for _, name := range strings.Split(*strategies, ",") {
		cfg := *base
		cfg.IndexStrategy = strings.TrimSpace(name)
		res, frame, err := runScenario(&cfg, *ticks, dt, logger)
		if err != nil {
			fail(err)
		}
		all = append(all, res)
		if *dump != "" {
			if err := writeFrame(*dump, res.strategy, codec, frame); err != nil {
				fail(err)
			}
		}
	}

	reference := all[0]
	sort.Slice(all, func(i, j int) bool { return all[i].mean < all[j].mean })

	fmt.Printf("\n%-9s %10s %10s %10s %10s %9s %6s %7s %9s %10s\n",
		"index", "mean", "build", "update", "worst", "visits", "depth", "nodes", "overflow", "drift")
	for _, res := range all {
		fmt.Printf("%-9s %10s %10s %10s %10s %9.1f %6d %7d %9d %10.3g\n",
			res.strategy,
			res.mean.Round(time.Microsecond), res.build.Round(time.Microsecond),
			res.update.Round(time.Microsecond), res.worst.Round(time.Microsecond),
			res.neighbors, res.depth, res.nodes, res.overflows, maxDrift(reference.agents, res.agents))
	}
	fmt.Printf("\ndrift: largest position difference from the %s run\n", reference.strategy)
}

func runScenario(cfg *simulation.Config, ticks int, dt float64, logger log.Logger) (scenarioResult, *snapshot.Frame, error) {
	sim, err := simulation.New(cfg, logger)
	if err != nil {
		return scenarioResult{}, nil, fmt.Errorf("%s: %w", cfg.IndexStrategy, err)
	}
	res := scenarioResult{strategy: cfg.IndexStrategy}
	var total, build, update time.Duration
	var visits int
	for i := 0; i < ticks; i++ {
		sim.Tick(dt)
		st := sim.Stats()
		total += st.Duration
		build += st.Step.Build
		update += st.Step.Update
		visits += st.Step.Neighbors
		res.worst = max(res.worst, st.Duration)
		res.overflows += st.Step.Index.Overflows
		res.depth = max(res.depth, st.Step.Index.Depth)
		res.nodes = max(res.nodes, st.Step.Index.Nodes)
	}
	if ticks > 0 {
		res.mean = total / time.Duration(ticks)
		res.build = build / time.Duration(ticks)
		res.update = update / time.Duration(ticks)
	}
	frame := sim.Frame(true)
	res.agents = frame.Agents
	res.population = len(frame.Agents)
	if n := ticks * res.population; n > 0 {
		res.neighbors = float64(visits) / float64(n)
	}
	return res, frame, nil
}

func maxDrift(a, b []agent.Agent) float64 {
	d := 0.0
	for i := range min(len(a), len(b)) {
		d = max(d, a[i].Position.DistanceTo(b[i].Position))
	}
	return d
}

func writeFrame(dir, strategy string, codec snapshot.Codec, f *snapshot.Frame) error {
	data, err := codec.Encode(f)
	if err != nil {
		return fmt.Errorf("encode %s frame: %w", strategy, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%d.%s", strategy, f.Tick, codec.Name()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d bytes)\n", path, len(data))
	return nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
