// Package eligibility decides which catalog courses a user can take.
//
// The Evaluator answers "is this prerequisite satisfied" for a single
// prerequisite; the Engine applies it across the catalog to derive course
// statuses, availability changes and unlock relations. Both are pure
// functions of a catalog and a progress snapshot: neither ever mutates the
// snapshot it is given.
package eligibility

import (
	"github.com/trmn/academy/catalog"
	"github.com/trmn/academy/internal/logger"
	"github.com/trmn/academy/progress"
)

// Evaluator checks prerequisites against a progress snapshot.
type Evaluator struct {
	catalog  *catalog.Catalog
	resolver *catalog.Resolver
	log      *logger.Logger
}

// NewEvaluator returns an evaluator for cat.
func NewEvaluator(cat *catalog.Catalog, log *logger.Logger) *Evaluator {
	return &Evaluator{
		catalog:  cat,
		resolver: cat.Resolver(),
		log:      log,
	}
}

// IsSatisfied reports whether prereq holds for p. Malformed prerequisites
// are never satisfied.
func (e *Evaluator) IsSatisfied(prereq catalog.Prerequisite, p progress.Progress) bool {
	switch prereq.Kind {
	case catalog.KindCourse:
		if prereq.Code == "" {
			e.malformed(prereq, catalog.ErrMissingCourseCode)
			return false
		}
		return e.resolver.IsCompleted(prereq.Code, p)

	case catalog.KindAlternativeGroup:
		if len(prereq.Alternatives) == 0 {
			e.malformed(prereq, catalog.ErrEmptyAlternativeGroup)
			return false
		}
		for _, alt := range prereq.Alternatives {
			if e.IsSatisfied(alt, p) {
				return true
			}
		}
		return false

	case catalog.KindDepartmentChoice:
		if err := prereq.Validate(); err != nil {
			e.malformed(prereq, err)
			return false
		}
		return e.departmentMatches(prereq, p) >= prereq.Minimum

	case catalog.KindLevelRequirement:
		if err := prereq.Validate(); err != nil {
			e.malformed(prereq, err)
			return false
		}
		return e.hasLevel(prereq, p)

	default:
		e.malformed(prereq, catalog.ErrUnknownPrerequisiteKind)
		return false
	}
}

// AllSatisfied reports whether every prerequisite holds. An empty list is
// satisfied.
func (e *Evaluator) AllSatisfied(prereqs []catalog.Prerequisite, p progress.Progress) bool {
	for _, prereq := range prereqs {
		if !e.IsSatisfied(prereq, p) {
			return false
		}
	}
	return true
}

// Unsatisfied returns the prerequisites that do not hold, in order.
func (e *Evaluator) Unsatisfied(prereqs []catalog.Prerequisite, p progress.Progress) []catalog.Prerequisite {
	var missing []catalog.Prerequisite
	for _, prereq := range prereqs {
		if !e.IsSatisfied(prereq, p) {
			missing = append(missing, prereq)
		}
	}
	return missing
}

// DepartmentProgress returns how many listed departments a department
// choice currently covers, and how many it needs. A malformed department
// choice covers none.
func (e *Evaluator) DepartmentProgress(prereq catalog.Prerequisite, p progress.Progress) (satisfied, minimum int) {
	if prereq.Kind != catalog.KindDepartmentChoice {
		return 0, 0
	}
	if err := prereq.Validate(); err != nil {
		e.malformed(prereq, err)
		return 0, prereq.Minimum
	}
	return e.departmentMatches(prereq, p), prereq.Minimum
}

func (e *Evaluator) malformed(prereq catalog.Prerequisite, err error) {
	e.log.Debug("malformed prerequisite treated as unsatisfied",
		"kind", string(prereq.Kind),
		"code", prereq.Code,
		"reason", err.Error(),
	)
}

// completedClasses groups the catalog courses the user has effectively
// completed (directly or through an alias) by canonical code, keeping only
// courses at level when level is set. Each alias class is one completion.
func (e *Evaluator) completedClasses(level catalog.Level, p progress.Progress) ([]string, map[string][]*catalog.Course) {
	var order []string
	classes := make(map[string][]*catalog.Course)
	for i := range e.catalog.Courses {
		course := &e.catalog.Courses[i]
		if level != "" && course.Level != level {
			continue
		}
		if !e.resolver.IsCompleted(course.Code, p) {
			continue
		}
		canonical := e.resolver.Canonicalize(course.Code)
		if _, ok := classes[canonical]; !ok {
			order = append(order, canonical)
		}
		classes[canonical] = append(classes[canonical], course)
	}
	return order, classes
}

// departmentMatches returns the size of a maximum assignment of completed
// courses to the listed departments, where each course fills at most one
// department and each department needs one course.
func (e *Evaluator) departmentMatches(prereq catalog.Prerequisite, p progress.Progress) int {
	var depts []string
	seen := make(map[string]bool)
	for _, dept := range prereq.Departments {
		key := catalog.DepartmentKey(dept)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		depts = append(depts, dept)
	}

	order, classes := e.completedClasses(prereq.Level, p)
	adj := make([][]int, len(depts))
	for d, dept := range depts {
		for c, canonical := range order {
			for _, course := range classes[canonical] {
				if e.catalog.InDepartment(course.Code, dept) {
					adj[d] = append(adj[d], c)
					break
				}
			}
		}
	}
	return maxMatching(adj, len(order))
}

// maxMatching runs augmenting-path bipartite matching from left vertices
// (adj indices) to right vertices [0, right).
func maxMatching(adj [][]int, right int) int {
	matchRight := make([]int, right)
	for i := range matchRight {
		matchRight[i] = -1
	}

	matched := 0
	for u := range adj {
		visited := make([]bool, right)
		if augment(u, adj, visited, matchRight) {
			matched++
		}
	}
	return matched
}

func augment(u int, adj [][]int, visited []bool, matchRight []int) bool {
	for _, v := range adj[u] {
		if visited[v] {
			continue
		}
		visited[v] = true
		if matchRight[v] < 0 || augment(matchRight[v], adj, visited, matchRight) {
			matchRight[v] = u
			return true
		}
	}
	return false
}

func (e *Evaluator) hasLevel(prereq catalog.Prerequisite, p progress.Progress) bool {
	_, classes := e.completedClasses(prereq.Level, p)
	for _, courses := range classes {
		for _, course := range courses {
			if len(prereq.Departments) == 0 {
				return true
			}
			for _, dept := range prereq.Departments {
				if e.catalog.InDepartment(course.Code, dept) {
					return true
				}
			}
		}
	}
	return false
}
