package eligibility

import (
	"sort"

	"github.com/trmn/academy/catalog"
	"github.com/trmn/academy/internal/logger"
	"github.com/trmn/academy/progress"
)

// Options configures an Engine.
type Options struct {
	// Logger receives data-quality warnings. Nil discards them.
	Logger *logger.Logger
}

// Engine derives course statuses for a catalog. It holds only indices built
// at construction and is safe to share.
type Engine struct {
	catalog   *catalog.Catalog
	resolver  *catalog.Resolver
	evaluator *Evaluator
	log       *logger.Logger

	// unlocks maps a canonical code to the indices of courses that reference
	// it directly or inside an alternative group.
	unlocks map[string][]int
}

// New builds an engine for cat. It panics if cat is nil.
func New(cat *catalog.Catalog, opts Options) *Engine {
	if cat == nil {
		panic("eligibility: nil catalog")
	}

	e := &Engine{
		catalog:   cat,
		resolver:  cat.Resolver(),
		evaluator: NewEvaluator(cat, opts.Logger),
		log:       opts.Logger,
		unlocks:   make(map[string][]int),
	}

	for i := range cat.Courses {
		seen := make(map[string]bool)
		for _, code := range referencedCodes(cat.Courses[i].Prerequisites) {
			canonical := e.resolver.Canonicalize(code)
			if seen[canonical] {
				continue
			}
			seen[canonical] = true
			e.unlocks[canonical] = append(e.unlocks[canonical], i)
		}
	}
	return e
}

// referencedCodes collects course codes named by course prerequisites,
// descending into alternative groups. Department choices and level
// requirements name no single course and are skipped.
func referencedCodes(prereqs []catalog.Prerequisite) []string {
	var codes []string
	for _, prereq := range prereqs {
		switch prereq.Kind {
		case catalog.KindCourse:
			if prereq.Code != "" {
				codes = append(codes, prereq.Code)
			}
		case catalog.KindAlternativeGroup:
			codes = append(codes, referencedCodes(prereq.Alternatives)...)
		}
	}
	return codes
}

// Catalog returns the catalog the engine was built for.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Evaluator returns the prerequisite evaluator used by the engine.
func (e *Engine) Evaluator() *Evaluator {
	return e.evaluator
}

// CourseByCode returns the course with code, or nil.
func (e *Engine) CourseByCode(code string) *catalog.Course {
	return e.catalog.Course(code)
}

// CourseStatus derives the status of course. Recorded statuses win in the
// order completed, waiting_grade, in_progress; otherwise the course is
// available when all prerequisites hold and locked when not. A nil course is
// locked.
func (e *Engine) CourseStatus(course *catalog.Course, p progress.Progress) progress.Status {
	if course == nil {
		return progress.StatusLocked
	}
	if status, ok := p.RecordedStatus(course.Code); ok {
		return status
	}
	if e.evaluator.AllSatisfied(course.Prerequisites, p) {
		return progress.StatusAvailable
	}
	return progress.StatusLocked
}

// Statuses derives the status of every catalog course.
func (e *Engine) Statuses(p progress.Progress) map[string]progress.Status {
	statuses := make(map[string]progress.Status, len(e.catalog.Courses))
	for i := range e.catalog.Courses {
		course := &e.catalog.Courses[i]
		statuses[course.Code] = e.CourseStatus(course, p)
	}
	return statuses
}

// MissingPrerequisites returns the prerequisites of course that p does not
// satisfy.
func (e *Engine) MissingPrerequisites(course *catalog.Course, p progress.Progress) []catalog.Prerequisite {
	if course == nil {
		return nil
	}
	return e.evaluator.Unsatisfied(course.Prerequisites, p)
}

// AvailabilityUpdate is the result of recomputing the availability cache.
type AvailabilityUpdate struct {
	// Available is the fresh availability set. Store it with
	// progress.Progress.WithAvailable.
	Available progress.CodeSet

	// Added lists courses that became available, in catalog order.
	Added []*catalog.Course

	// Removed lists catalog courses that are no longer available, in
	// catalog order.
	Removed []*catalog.Course
}

// Changed returns every course whose availability changed.
func (u AvailabilityUpdate) Changed() []*catalog.Course {
	changed := make([]*catalog.Course, 0, len(u.Added)+len(u.Removed))
	changed = append(changed, u.Added...)
	return append(changed, u.Removed...)
}

// UpdateAvailability recomputes which courses are available and compares
// the result with the cached set in p. Storing the returned Available set
// makes a second call report no changes.
func (e *Engine) UpdateAvailability(p progress.Progress) AvailabilityUpdate {
	update := AvailabilityUpdate{Available: progress.NewCodeSet()}
	for i := range e.catalog.Courses {
		course := &e.catalog.Courses[i]
		available := e.CourseStatus(course, p) == progress.StatusAvailable
		cached := p.Available.Has(course.Code)
		if available {
			update.Available[course.Code] = struct{}{}
		}
		switch {
		case available && !cached:
			update.Added = append(update.Added, course)
		case !available && cached:
			update.Removed = append(update.Removed, course)
		}
	}
	return update
}

// Refresh returns p with its availability cache recomputed.
func (e *Engine) Refresh(p progress.Progress) progress.Progress {
	update := e.UpdateAvailability(p)
	if update.Available.Equal(p.Available) {
		return p
	}
	return p.WithAvailable(update.Available)
}

// CoursesUnlockedBy returns the courses that name code, or any alias of it,
// as a course prerequisite or as a member of an alternative group.
//
// Department choices are not attributed to single courses, so a course
// gated only by a department choice listing code's department is not
// returned.
func (e *Engine) CoursesUnlockedBy(code string) []*catalog.Course {
	indices := e.unlocks[e.resolver.Canonicalize(code)]
	courses := make([]*catalog.Course, 0, len(indices))
	for _, i := range indices {
		courses = append(courses, &e.catalog.Courses[i])
	}
	return courses
}

// Ready returns available courses in catalog order. A positive limit caps
// the result.
func (e *Engine) Ready(p progress.Progress, limit int) []*catalog.Course {
	var ready []*catalog.Course
	for i := range e.catalog.Courses {
		course := &e.catalog.Courses[i]
		if e.CourseStatus(course, p) != progress.StatusAvailable {
			continue
		}
		ready = append(ready, course)
		if limit > 0 && len(ready) == limit {
			break
		}
	}
	return ready
}

// WithStatus returns the catalog courses whose derived status is status,
// in catalog order.
func (e *Engine) WithStatus(p progress.Progress, status progress.Status) []*catalog.Course {
	var courses []*catalog.Course
	for i := range e.catalog.Courses {
		course := &e.catalog.Courses[i]
		if e.CourseStatus(course, p) == status {
			courses = append(courses, course)
		}
	}
	return courses
}

// UnknownCompletions returns completed codes that neither the catalog nor
// an alias of a catalog course knows, sorted.
func (e *Engine) UnknownCompletions(p progress.Progress) []string {
	var unknown []string
	for code := range p.Completed {
		if e.resolveCourse(code) == nil {
			unknown = append(unknown, code)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// resolveCourse returns the catalog entry for code, falling back to the
// first catalog entry in code's alias class.
func (e *Engine) resolveCourse(code string) *catalog.Course {
	if course := e.catalog.Course(code); course != nil {
		return course
	}
	for _, equivalent := range e.resolver.EquivalentCodes(code) {
		if course := e.catalog.Course(equivalent); course != nil {
			return course
		}
	}
	return nil
}
