package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/patrikhermansson/facesim/core"
	"github.com/patrikhermansson/facesim/match"
	"github.com/rs/zerolog/log"
)

// LoadVectors reads one embedding per row from a CSV file. Lines starting
// with '#' are ignored.
func LoadVectors(path string) ([]core.Vector, error) {
	log.Info().Msgf("Loading embeddings from: %s", path)
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	vectors := make([]core.Vector, len(records))
	for row, record := range records {
		vec, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("row %d in %s: %w", row, path, err)
		}
		vectors[row] = vec
	}
	log.Info().Msgf("Loaded %d embeddings from %s", len(vectors), path)
	return vectors, nil
}

// LoadGallery reads a gallery CSV file where the first column of each row is
// the identity name and the remaining columns are its embedding. Rows that
// share a name form one cluster. Every embedding must have the same length.
func LoadGallery(path string) (match.Gallery, error) {
	log.Info().Msgf("Loading gallery from: %s", path)
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(records))
	vectors := make([]core.Vector, 0, len(records))
	for row, record := range records {
		if len(record) < 2 {
			return nil, fmt.Errorf("row %d in %s: expected a name and at least one value", row, path)
		}
		vec, err := parseRow(record[1:])
		if err != nil {
			return nil, fmt.Errorf("row %d in %s: %w", row, path, err)
		}
		names = append(names, strings.TrimSpace(record[0]))
		vectors = append(vectors, vec)
	}

	gallery, err := match.Group(names, vectors)
	if err != nil {
		return nil, err
	}
	if _, err := gallery.Dimension(); err != nil {
		return nil, fmt.Errorf("gallery %s: %w", path, err)
	}
	log.Info().Msgf("Loaded %d identities (%d embeddings) from %s", len(gallery), gallery.Size(), path)
	return gallery, nil
}

// ParseVector parses a comma-separated list of numbers such as "0.1,0.2,0.3".
// An empty string yields an empty vector.
func ParseVector(s string) (core.Vector, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.Vector{}, nil
	}
	return parseRow(strings.Split(s, ","))
}

// readCSV returns every non-comment record of a CSV file. Records may have
// different lengths; callers validate dimensions.
func readCSV(path string) ([][]string, error) {
	log.Debug().Msgf("Opening CSV file: %s", path)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read error in %s: %w", path, err)
		}
		records = append(records, record)
	}

	log.Debug().Msgf("Parsed %d rows from %s", len(records), path)
	return records, nil
}

// parseRow converts CSV fields to a vector.
func parseRow(fields []string) (core.Vector, error) {
	vec := make(core.Vector, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
		if err != nil {
			return nil, fmt.Errorf("parse error at col %d: %w", i, err)
		}
		vec[i] = float32(v)
	}
	return vec, nil
}
