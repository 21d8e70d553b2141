package cmd

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/patrikhermansson/facesim/config"
	"github.com/patrikhermansson/facesim/core"
	"github.com/patrikhermansson/facesim/internal/dataset"
	"github.com/patrikhermansson/facesim/match"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
)

// loadConfig reads the config file named by --config and applies --policy.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, err
	}
	if c.IsSet("policy") {
		cfg.Policy = c.String("policy")
	}
	return cfg, cfg.Validate()
}

func kernel(c *cli.Context) (core.Kernel, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return core.Kernel{}, err
	}
	policy, err := core.ParsePolicy(cfg.Policy)
	if err != nil {
		return core.Kernel{}, err
	}
	return core.Kernel{Policy: policy}, nil
}

func vectorPair(c *cli.Context) (core.Vector, core.Vector, error) {
	x, err := dataset.ParseVector(c.String("x"))
	if err != nil {
		return nil, nil, fmt.Errorf("--x: %w", err)
	}
	y, err := dataset.ParseVector(c.String("y"))
	if err != nil {
		return nil, nil, fmt.Errorf("--y: %w", err)
	}
	return x, y, nil
}

// L2 prints the Euclidean distance between --x and --y.
func L2(c *cli.Context) error {
	k, err := kernel(c)
	if err != nil {
		return err
	}
	x, y, err := vectorPair(c)
	if err != nil {
		return err
	}
	d, err := k.L2Distance(x, y)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, formatScore(d))
	return nil
}

// Cosine prints the cosine similarity between --x and --y.
func Cosine(c *cli.Context) error {
	k, err := kernel(c)
	if err != nil {
		return err
	}
	x, y, err := vectorPair(c)
	if err != nil {
		return err
	}
	s, err := k.CosineSimilarity(x, y)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, formatScore(s))
	return nil
}

// Average prints the mean L2 distance between --subject and the cluster file.
func Average(c *cli.Context) error {
	k, err := kernel(c)
	if err != nil {
		return err
	}
	subject, err := dataset.ParseVector(c.String("subject"))
	if err != nil {
		return fmt.Errorf("--subject: %w", err)
	}
	cluster, err := dataset.LoadVectors(c.String("cluster"))
	if err != nil {
		return err
	}

	workers := 1
	if c.IsSet("workers") {
		workers = c.Int("workers")
	}
	var avg float64
	if workers == 1 {
		avg, err = k.AverageDistance(subject, cluster)
	} else {
		avg, err = k.AverageDistanceParallel(subject, cluster, workers)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, formatScore(avg))
	return nil
}

// Identify matches every subject in --subjects against --gallery and prints a
// table of results.
func Identify(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("metric") {
		cfg.Metric = c.String("metric")
	}
	if c.IsSet("threads") {
		cfg.Threads = c.Int("threads")
	}
	m, err := cfg.Matcher()
	if err != nil {
		return err
	}
	if c.IsSet("threshold") {
		m.Threshold = c.Float64("threshold")
	}

	gallery, err := dataset.LoadGallery(c.String("gallery"))
	if err != nil {
		return err
	}
	subjects, err := dataset.LoadVectors(c.String("subjects"))
	if err != nil {
		return err
	}

	opts := match.BatchOptions{Threads: cfg.Threads}
	if c.Bool("progress") {
		opts.Progress = c.App.ErrWriter
	}
	results, err := m.IdentifyBatch(subjects, gallery, opts)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(c.App.Writer)
	table.SetHeader([]string{"subject", "name", "candidate", string(m.Metric)})
	for i, res := range results {
		table.Append([]string{
			strconv.Itoa(i),
			res.Name,
			res.Candidate,
			formatScore(res.Score),
		})
	}
	table.Render()
	return nil
}

// Bench times sequential and parallel cluster averages over random unit
// embeddings. Set FACESIM_SEED for reproducible vectors.
func Bench(c *cli.Context) error {
	dim, size, rounds := c.Int("dim"), c.Int("size"), c.Int("rounds")
	if dim <= 0 || size <= 0 || rounds <= 0 {
		return fmt.Errorf("dim, size and rounds must be positive: %w", core.ErrInvalidArgument)
	}
	workers := c.Int("workers")

	rng := rand.New(rand.NewSource(core.GetSeed()))
	cluster := core.RandomCluster(rng, size, dim)
	subjects := core.RandomCluster(rng, rounds, dim)
	log.Info().Msgf("Benchmarking %d subjects against a cluster of %d (%d dimensions)", rounds, size, dim)

	bar := progressbar.NewOptions(rounds,
		progressbar.OptionSetWriter(c.App.ErrWriter),
		progressbar.OptionOnCompletion(func() { fmt.Fprint(c.App.ErrWriter, "\n") }),
	)

	var seqTime, parTime time.Duration
	var maxDiff float64
	for _, subject := range subjects {
		start := time.Now()
		seq, err := core.AverageDistance(subject, cluster)
		if err != nil {
			return err
		}
		seqTime += time.Since(start)

		start = time.Now()
		par, err := core.AverageDistanceParallel(subject, cluster, workers)
		if err != nil {
			return err
		}
		parTime += time.Since(start)

		if diff := seq - par; diff > maxDiff {
			maxDiff = diff
		} else if -diff > maxDiff {
			maxDiff = -diff
		}
		if err := bar.Add(1); err != nil {
			return err
		}
	}

	fmt.Fprintf(c.App.Writer, "Average sequential time: %v\n", seqTime/time.Duration(rounds))
	fmt.Fprintf(c.App.Writer, "Average parallel time:   %v\n", parTime/time.Duration(rounds))
	fmt.Fprintf(c.App.Writer, "Max difference:          %g\n", maxDiff)
	return nil
}

// Info prints host CPU features and the effective configuration.
func Info(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(c.App.Writer)
	table.SetHeader([]string{"setting", "value"})

	features := core.CPUFeatures()
	names := make([]string, 0, len(features))
	for name := range features {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		table.Append([]string{"cpu." + name, strconv.FormatBool(features[name])})
	}

	table.Append([]string{"metric", cfg.Metric})
	table.Append([]string{"l2_threshold", formatScore(cfg.L2Threshold)})
	table.Append([]string{"cosine_threshold", formatScore(cfg.CosineThreshold)})
	table.Append([]string{"workers", strconv.Itoa(cfg.Workers)})
	table.Append([]string{"threads", strconv.Itoa(cfg.Threads)})
	table.Append([]string{"policy", cfg.Policy})
	table.Render()
	return nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
