package records

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Conflict is a slug shared by more than one record. Positions are indexes
// into the Locate result.
type Conflict struct {
	Slug      string
	Positions []int
}

// FindDuplicates groups records by slug and returns every non-empty slug seen
// more than once, ordered by first occurrence.
func FindDuplicates(refs []Ref, slugOf func(*yaml.Node) string) []Conflict {
	idxs := map[string][]int{}
	var order []string
	for i, r := range refs {
		s := slugOf(r.Record)
		if _, seen := idxs[s]; !seen {
			order = append(order, s)
		}
		idxs[s] = append(idxs[s], i)
	}
	var out []Conflict
	for _, s := range order {
		if s == "" || len(idxs[s]) < 2 {
			continue
		}
		out = append(out, Conflict{Slug: s, Positions: idxs[s]})
	}
	return out
}

// ReportDuplicates writes a warning block for the conflicts; nothing is
// written when there are none.
func ReportDuplicates(w io.Writer, conflicts []Conflict) error {
	if len(conflicts) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "warning: duplicate slug(s) detected in input:"); err != nil {
		return err
	}
	for _, c := range conflicts {
		if _, err := fmt.Fprintf(w, "  slug '%s' occurs %d times (records at indexes: %v)\n", c.Slug, len(c.Positions), c.Positions); err != nil {
			return err
		}
	}
	return nil
}
