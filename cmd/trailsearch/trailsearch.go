// Command trailsearch searches for low-weight differential trails through the Hamsi diffusion layer, printing each
// trail it converges on.
package main

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"io"
	"log/slog"
	randv2 "math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/codahale/difftrail"
	"github.com/codahale/difftrail/internal/report"
	"github.com/codahale/difftrail/internal/words"
)

// VERSION is populated via build flags when packaging official binaries.
var VERSION = "SELFBUILD"

// pcgStream selects the PCG stream; the seed alone identifies a run.
const pcgStream = 0x9e3779b97f4a7c15

func main() {
	myApp := cli.NewApp()
	myApp.Name = "trailsearch"
	myApp.Usage = "search for low-weight differential trails through the Hamsi diffusion layer"
	myApp.Version = VERSION
	myApp.Flags = appFlags()
	myApp.Action = func(c *cli.Context) (err error) {
		config := configFromContext(c)

		if c.String("c") != "" {
			if err := parseJSONConfig(&config, c.String("c")); err != nil {
				return err
			}
		}

		if err := config.validate(); err != nil {
			return err
		}

		level := slog.LevelInfo
		if config.Verbose {
			level = slog.LevelDebug
		}
		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := io.Writer(os.Stdout)
		if config.Output != "" {
			f, cerr := os.Create(config.Output)
			if cerr != nil {
				return errors.Wrap(cerr, "create output")
			}
			defer closeFile(f, &err)
			out = f
		}

		m := difftrail.Hamsi()
		m.Rounds = config.Rounds
		return run(ctx, &config, m, out, log)
	}

	if err := myApp.Run(os.Args); err != nil {
		slog.Error("trailsearch failed", "err", err)
		os.Exit(1)
	}
}

func appFlags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:  "rounds, r",
			Value: difftrail.Hamsi().Rounds,
			Usage: "number of rounds; one basis is kept for each round but the last",
		},
		cli.Uint64Flag{
			Name:  "seed, s",
			Value: 0,
			Usage: "seed for the random choices, 0 picks one at random",
		},
		cli.IntFlag{
			Name:  "count, n",
			Value: 0,
			Usage: "stop after this many trails, 0 runs until interrupted",
		},
		cli.IntFlag{
			Name:  "max-weight",
			Value: 0,
			Usage: "only print trails with at most this total weight, 0 prints every trail",
		},
		cli.StringFlag{
			Name:  "output, o",
			Value: "",
			Usage: "write trails to this file instead of stdout",
		},
		cli.StringFlag{
			Name:  "chart",
			Value: "",
			Usage: "write an HTML histogram of trail weights to this file on exit",
		},
		cli.BoolFlag{
			Name:  "verify",
			Usage: "check every trail against the linear layer before printing it",
		},
		cli.IntFlag{
			Name:  "stats-every",
			Value: 100,
			Usage: "log search statistics after every this many trails, 0 to disable",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "log at debug level",
		},
		cli.StringFlag{
			Name:  "c",
			Value: "",
			Usage: "config from json file, which will override the command from shell",
		},
	}
}

func configFromContext(c *cli.Context) Config {
	config := Config{}
	config.Rounds = c.Int("rounds")
	config.Seed = c.Uint64("seed")
	config.Count = c.Int("count")
	config.MaxWeight = c.Int("max-weight")
	config.Output = c.String("output")
	config.Chart = c.String("chart")
	config.Verify = c.Bool("verify")
	config.StatsEvery = c.Int("stats-every")
	config.Verbose = c.Bool("verbose")
	return config
}

func run(ctx context.Context, config *Config, m difftrail.Model, out io.Writer, log *slog.Logger) error {
	if config.Seed == 0 {
		var b [8]byte
		if _, err := rand.Read(b[:]); err != nil {
			return errors.Wrap(err, "pick seed")
		}
		config.Seed = binary.LittleEndian.Uint64(b[:])
	}

	s, err := difftrail.NewSearcher(m, randv2.NewPCG(config.Seed, pcgStream))
	if err != nil {
		return errors.Wrap(err, "NewSearcher()")
	}
	log.Info("starting", "version", VERSION, "rounds", m.Rounds, "seed", config.Seed, "count", config.Count)
	log.Debug("model", "words", m.Words, "group_size", m.GroupSize, "bases", m.Bases())

	var weights report.Weights
	err = s.Run(ctx, config.Count, func(sol difftrail.Solution) error {
		weights.Add(sol)

		if config.Verify {
			if err := verify(m, sol); err != nil {
				return err
			}
		}

		if config.MaxWeight == 0 || sol.Weight() <= config.MaxWeight {
			if _, err := sol.WriteTo(out); err != nil {
				return errors.Wrap(err, "write trail")
			}
		}
		log.Debug("found trail", "weight", sol.Weight(), "min_weight", weights.Total.Min())

		if config.StatsEvery > 0 && weights.Total.Len()%config.StatsEvery == 0 {
			logStats(log, s.Stats(), weights.Total.Min())
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logStats(log, s.Stats(), weights.Total.Min())

	if config.Chart != "" {
		if err := writeChart(config.Chart, &weights); err != nil {
			return err
		}
		log.Info("wrote chart", "path", config.Chart)
	}
	return nil
}

// verify checks that every round of sol is a valid difference pair for the model's linear layer.
func verify(m difftrail.Model, sol difftrail.Solution) error {
	for r, trail := range sol.Rounds {
		in := append([]uint32(nil), trail.Input()...)
		m.Layer(in)
		if !words.Equal(in, trail.Output()) {
			return errors.Errorf("round %d: output difference %08x is not the image of %08x", r, trail.Output(), trail.Input())
		}
	}
	return nil
}

func writeChart(path string, weights *report.Weights) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create chart")
	}
	defer closeFile(f, &err)

	return errors.Wrap(weights.Render(f, "trailsearch"), "render chart")
}

// closeFile closes f, storing the error in *err unless an earlier error is already there.
func closeFile(f *os.File, err *error) {
	if cerr := f.Close(); cerr != nil && *err == nil {
		*err = errors.Wrapf(cerr, "close %s", f.Name())
	}
}

func logStats(log *slog.Logger, stats difftrail.Stats, minWeight int) {
	log.Info("search statistics",
		"steps", stats.Steps,
		"repairs", stats.Repairs,
		"relaxations", stats.Relaxations,
		"attempts", stats.Attempts,
		"dead_ends", stats.DeadEnds,
		"emitted", stats.Emitted,
		"min_weight", minWeight,
	)
}
