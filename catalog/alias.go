package catalog

import (
	"sort"
	"strings"

	"github.com/trmn/academy/internal/logger"
)

// Completions reports whether a single code is recorded as completed.
// progress.Progress implements it.
type Completions interface {
	IsComplete(code string) bool
}

// Resolver maps course codes onto alias equivalence classes.
// It is built once and is read-only afterwards.
type Resolver struct {
	primary map[string]string
	members map[string][]string
	issues  []Issue
}

// NewResolver indexes the active alias groups.
//
// Groups that share a code are merged into one class whatever order they
// are declared in, so aliases of aliases resolve to one canonical code. The
// canonical code is the first declared primary that is not itself listed as
// an alternative, or the first declared primary when every primary is.
// A code listed as an alternative by two different groups stays with the
// first of them; the conflict is logged and recorded as an Issue.
func NewResolver(aliases []CourseAlias, log *logger.Logger) *Resolver {
	r := &Resolver{
		primary: make(map[string]string),
		members: make(map[string][]string),
	}

	sets := newCodeSets()
	claimedBy := make(map[string]string)
	var primaries []string
	seenPrimary := make(map[string]bool)

	for _, alias := range aliases {
		if !alias.Active {
			continue
		}
		primaryCode := strings.TrimSpace(alias.PrimaryCode)
		if primaryCode == "" {
			continue
		}
		sets.add(primaryCode)
		if !seenPrimary[primaryCode] {
			seenPrimary[primaryCode] = true
			primaries = append(primaries, primaryCode)
		}

		for _, alt := range alias.AlternativeCodes {
			alt = strings.TrimSpace(alt)
			if alt == "" || alt == primaryCode {
				continue
			}
			if owner, ok := claimedBy[alt]; ok {
				if owner != primaryCode {
					r.issues = append(r.issues, Issue{Code: alt, Err: ErrAliasConflict})
					log.Warn("alias conflict, keeping first group",
						"code", alt,
						"kept", owner,
						"ignored", primaryCode,
					)
				}
				continue
			}
			claimedBy[alt] = primaryCode
			sets.add(alt)
			sets.union(primaryCode, alt)
		}
	}

	canonical := make(map[string]string)
	for _, code := range primaries {
		if _, isAlt := claimedBy[code]; isAlt {
			continue
		}
		if root := sets.find(code); canonical[root] == "" {
			canonical[root] = code
		}
	}
	for _, code := range primaries {
		if root := sets.find(code); canonical[root] == "" {
			canonical[root] = code
		}
	}

	for code := range sets.parent {
		c := canonical[sets.find(code)]
		r.primary[code] = c
		r.members[c] = append(r.members[c], code)
	}
	for root := range r.members {
		sort.Strings(r.members[root])
	}

	return r
}

// codeSets is a disjoint-set forest over course codes.
type codeSets struct {
	parent map[string]string
}

func newCodeSets() *codeSets {
	return &codeSets{parent: make(map[string]string)}
}

func (s *codeSets) add(code string) {
	if _, ok := s.parent[code]; !ok {
		s.parent[code] = code
	}
}

func (s *codeSets) find(code string) string {
	for s.parent[code] != code {
		s.parent[code] = s.parent[s.parent[code]]
		code = s.parent[code]
	}
	return code
}

func (s *codeSets) union(a, b string) {
	ra, rb := s.find(a), s.find(b)
	if ra != rb {
		s.parent[rb] = ra
	}
}

// Canonicalize returns the primary code of code's alias class, or code itself.
func (r *Resolver) Canonicalize(code string) string {
	if r == nil {
		return code
	}
	if root, ok := r.primary[code]; ok {
		return root
	}
	return code
}

// EquivalentCodes returns every code in code's alias class, sorted.
// A code without aliases is its own single-member class.
func (r *Resolver) EquivalentCodes(code string) []string {
	if r != nil {
		if members, ok := r.members[r.Canonicalize(code)]; ok {
			return append([]string(nil), members...)
		}
	}
	return []string{code}
}

// Equivalent reports whether two codes belong to the same alias class.
func (r *Resolver) Equivalent(a, b string) bool {
	return r.Canonicalize(a) == r.Canonicalize(b)
}

// IsCompleted reports whether code or any alias of it is completed.
func (r *Resolver) IsCompleted(code string, completed Completions) bool {
	if completed == nil {
		return false
	}
	for _, equivalent := range r.EquivalentCodes(code) {
		if completed.IsComplete(equivalent) {
			return true
		}
	}
	return false
}

// Issues returns the data-quality problems found while indexing.
func (r *Resolver) Issues() []Issue {
	if r == nil {
		return nil
	}
	return append([]Issue(nil), r.issues...)
}
