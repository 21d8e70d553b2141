package match

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/patrikhermansson/facesim/core"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

// Unknown is the name reported when no identity passes the threshold.
const Unknown = "Unknown"

// Default thresholds for 128-dimensional FaceNet embeddings.
const (
	DefaultL2Threshold     = 10.0
	DefaultCosineThreshold = 0.4
)

// DefaultThreshold returns the default acceptance threshold for a metric.
func DefaultThreshold(metric core.Metric) float64 {
	if metric == core.MetricCosine {
		return DefaultCosineThreshold
	}
	return DefaultL2Threshold
}

// Result is the outcome of identifying one subject.
type Result struct {
	Name      string  // identified name, or Unknown
	Candidate string  // best-scoring identity, even when rejected
	Score     float64 // score of Candidate
	Known     bool    // whether Candidate passed the threshold
}

// Matcher identifies subjects against a gallery by the mean score over each
// identity's cluster.
type Matcher struct {
	Metric    core.Metric
	Threshold float64
	Kernel    core.Kernel
	Workers   int // workers per cluster average; see core.AverageDistanceParallel
}

// NewMatcher returns a strict matcher for metric with its default threshold.
func NewMatcher(metric core.Metric) *Matcher {
	return &Matcher{
		Metric:    metric,
		Threshold: DefaultThreshold(metric),
		Kernel:    core.Strict,
		Workers:   1,
	}
}

// Identify scores subject against every identity and returns the best one.
// Identities whose score is NaN (possible under core.PolicyLegacy) are skipped.
func (m *Matcher) Identify(subject core.Vector, gallery Gallery) (Result, error) {
	if len(gallery) == 0 {
		return Result{}, fmt.Errorf("identify: empty gallery: %w", core.ErrInvalidArgument)
	}

	best := Result{Name: Unknown, Score: math.NaN()}
	for _, entry := range gallery {
		score, err := m.Metric.ClusterScore(m.Kernel, subject, entry.Cluster, m.Workers)
		if err != nil {
			return Result{}, fmt.Errorf("identify: scoring %q: %w", entry.Name, err)
		}
		log.Debug().Msgf("Score for %s: %.4f (%s)", entry.Name, score, m.Metric)
		if math.IsNaN(score) {
			continue
		}
		if best.Candidate == "" || m.Metric.Better(score, best.Score) {
			best.Candidate = entry.Name
			best.Score = score
		}
	}

	if best.Candidate != "" && m.Metric.Accepts(best.Score, m.Threshold) {
		best.Name = best.Candidate
		best.Known = true
	}
	log.Debug().Msgf("Subject identified as %s", best.Name)
	return best, nil
}

// BatchOptions controls IdentifyBatch.
type BatchOptions struct {
	Threads  int       // number of concurrent subjects; <= 0 means 1
	Progress io.Writer // if set, a progress bar is written here
}

// IdentifyBatch identifies every subject using a pool of worker goroutines.
// Results are returned in subject order. If any subject fails, the error of
// the first failing subject is returned.
func (m *Matcher) IdentifyBatch(subjects []core.Vector, gallery Gallery, opts BatchOptions) ([]Result, error) {
	threads := opts.Threads
	if threads <= 0 {
		threads = 1
	}
	log.Info().Msgf("Identifying %d subjects against %d identities using %d threads",
		len(subjects), len(gallery), threads)

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(subjects),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("identifying"),
			progressbar.OptionOnCompletion(func() { fmt.Fprint(opts.Progress, "\n") }),
		)
	}

	results := make([]Result, len(subjects))
	errs := make([]error, len(subjects))

	tasks := make(chan int, len(subjects))
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range tasks {
			results[idx], errs[idx] = m.Identify(subjects[idx], gallery)
			if bar != nil {
				_ = bar.Add(1)
			}
		}
	}

	wg.Add(threads)
	for i := 0; i < threads; i++ {
		go worker()
	}
	for i := range subjects {
		tasks <- i
	}
	close(tasks)
	wg.Wait()

	for idx, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("subject %d: %w", idx, err)
		}
	}
	return results, nil
}
