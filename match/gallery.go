package match

import (
	"fmt"

	"github.com/patrikhermansson/facesim/core"
)

// Entry is one identity in a gallery: a name and its reference embeddings.
type Entry struct {
	Name    string
	Cluster core.Cluster
}

// Gallery is an ordered list of identities.
type Gallery []Entry

// Group builds a gallery from parallel name and embedding slices. Embeddings
// sharing a name end up in one cluster; identities keep the order in which
// their name first appears.
func Group(names []string, embeddings []core.Vector) (Gallery, error) {
	if len(names) != len(embeddings) {
		return nil, fmt.Errorf("got %d names for %d embeddings: %w",
			len(names), len(embeddings), core.ErrInvalidArgument)
	}
	index := make(map[string]int)
	var gallery Gallery
	for i, name := range names {
		pos, ok := index[name]
		if !ok {
			pos = len(gallery)
			index[name] = pos
			gallery = append(gallery, Entry{Name: name})
		}
		gallery[pos].Cluster = append(gallery[pos].Cluster, embeddings[i])
	}
	return gallery, nil
}

// Dimension returns the embedding length shared by every vector in the
// gallery. It fails if the gallery is empty or the lengths disagree.
func (g Gallery) Dimension() (int, error) {
	dim := -1
	for _, entry := range g {
		for i, vec := range entry.Cluster {
			if dim == -1 {
				dim = len(vec)
				continue
			}
			if len(vec) != dim {
				return 0, fmt.Errorf("embedding %d of %q has length %d, expected %d: %w",
					i, entry.Name, len(vec), dim, core.ErrInvalidArgument)
			}
		}
	}
	if dim == -1 {
		return 0, fmt.Errorf("gallery has no embeddings: %w", core.ErrInvalidArgument)
	}
	return dim, nil
}

// Size returns the total number of embeddings in the gallery.
func (g Gallery) Size() int {
	n := 0
	for _, entry := range g {
		n += len(entry.Cluster)
	}
	return n
}
