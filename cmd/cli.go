package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

// NewApp builds the facesim command-line application.
func NewApp() *cli.App {
	vectorFlags := []cli.Flag{
		&cli.StringFlag{Name: "x", Usage: "first vector, comma-separated", Required: true},
		&cli.StringFlag{Name: "y", Usage: "second vector, comma-separated", Required: true},
	}

	return &cli.App{
		Name:  "facesim",
		Usage: "Compare face embeddings by L2 distance and cosine similarity",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
			&cli.StringFlag{Name: "policy", Usage: "error policy for undefined results: strict or legacy"},
		},
		Commands: []*cli.Command{
			{
				Name:   "l2",
				Usage:  "Euclidean distance between two vectors",
				Flags:  vectorFlags,
				Action: L2,
			},
			{
				Name:   "cosine",
				Usage:  "Cosine similarity between two vectors",
				Flags:  vectorFlags,
				Action: Cosine,
			},
			{
				Name:  "average",
				Usage: "Average L2 distance between a subject and a cluster of embeddings",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "subject", Usage: "subject vector, comma-separated", Required: true},
					&cli.StringFlag{Name: "cluster", Usage: "CSV file with one embedding per row", Required: true},
					&cli.IntFlag{Name: "workers", Usage: "goroutines used for the average (0 = all CPUs)"},
				},
				Action: Average,
			},
			{
				Name:  "identify",
				Usage: "Identify subject embeddings against a gallery of named clusters",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "gallery", Usage: "CSV file of name,embedding rows", Required: true},
					&cli.StringFlag{Name: "subjects", Usage: "CSV file with one subject embedding per row", Required: true},
					&cli.StringFlag{Name: "metric", Usage: "l2 or cosine"},
					&cli.Float64Flag{Name: "threshold", Usage: "acceptance threshold for the chosen metric"},
					&cli.IntFlag{Name: "threads", Usage: "subjects identified concurrently"},
					&cli.BoolFlag{Name: "progress", Usage: "show a progress bar"},
				},
				Action: Identify,
			},
			{
				Name:  "bench",
				Usage: "Time sequential and parallel cluster averages on random embeddings",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "dim", Value: 128, Usage: "embedding dimension"},
					&cli.IntFlag{Name: "size", Value: 1000, Usage: "cluster size"},
					&cli.IntFlag{Name: "rounds", Value: 100, Usage: "number of subjects"},
					&cli.IntFlag{Name: "workers", Usage: "goroutines for the parallel average (0 = all CPUs)"},
				},
				Action: Bench,
			},
			{
				Name:   "info",
				Usage:  "Show CPU features and effective configuration",
				Action: Info,
			},
		},
	}
}

// Execute runs the CLI code.
func Execute() {
	if err := NewApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("facesim failed")
	}
}
