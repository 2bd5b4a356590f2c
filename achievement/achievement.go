// Package achievement computes milestone achievements and Space Warfare Pin
// progress from a catalog and a progress snapshot.
//
// Every computation is a pure function of its inputs. Nothing here records
// earned achievements; callers recompute them whenever progress changes.
package achievement

import (
	"sort"

	"github.com/trmn/academy/catalog"
	"github.com/trmn/academy/eligibility"
	"github.com/trmn/academy/internal/logger"
	"github.com/trmn/academy/progress"
)

// Category groups achievements for display.
type Category string

const (
	CategoryMilestone    Category = "milestone"
	CategoryBreadth      Category = "breadth"
	CategoryProgression  Category = "progression"
	CategoryDiversity    Category = "diversity"
	CategoryIntroductory Category = "introductory"
)

// Achievement is the evaluated state of one rule.
type Achievement struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Earned      bool     `json:"earned"`
	Current     int      `json:"current"`
	Target      int      `json:"target"`
}

// Percent returns progress toward the target, capped at 100.
func (a Achievement) Percent() float64 {
	if a.Target <= 0 {
		return 0
	}
	if a.Current >= a.Target {
		return 100
	}
	return roundPercent(float64(a.Current) / float64(a.Target))
}

// Rule is a single achievement definition.
type Rule struct {
	ID          string
	Name        string
	Description string
	Category    Category

	measure func(f *facts) (current, target int)
}

// Evaluate computes the rule on its own.
func (r Rule) Evaluate(cat *catalog.Catalog, p progress.Progress) Achievement {
	return r.evaluate(gather(cat, p))
}

func (r Rule) evaluate(f *facts) Achievement {
	current, target := r.measure(f)
	return Achievement{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Earned:      target > 0 && current >= target,
		Current:     current,
		Target:      target,
	}
}

// Rules returns the built-in achievement rules in display order.
func Rules() []Rule {
	rules := []Rule{
		completionRule("first-course", "First Steps", "Complete your first course", 1),
		completionRule("ten-courses", "Dedicated Student", "Complete 10 courses", 10),
		completionRule("twenty-five-courses", "Scholar", "Complete 25 courses", 25),
		completionRule("fifty-courses", "Academic", "Complete 50 courses", 50),
		completionRule("hundred-courses", "Centurion", "Complete 100 courses", 100),
		breadthRule("three-departments", "Well Rounded", "Complete courses in 3 departments", 3),
		breadthRule("five-departments", "Renaissance Officer", "Complete courses in 5 departments", 5),
		{
			ID:          "department-progression",
			Name:        "Specialist",
			Description: "Complete A, C and D level courses in one department",
			Category:    CategoryProgression,
			measure: func(f *facts) (int, int) {
				return f.bestProgression(), len(progressionLevels)
			},
		},
		diversityRule("two-institutions", "Exchange Student", "Complete courses from 2 institutions", 2),
		diversityRule("three-institutions", "Interstellar Scholar", "Complete courses from 3 institutions", 3),
		{
			ID:          "introductory-sweep",
			Name:        "Orientation Complete",
			Description: "Complete every introductory course",
			Category:    CategoryIntroductory,
			measure: func(f *facts) (int, int) {
				return f.introCompleted, f.introTotal
			},
		},
	}
	return rules
}

func completionRule(id, name, description string, target int) Rule {
	return Rule{ID: id, Name: name, Description: description, Category: CategoryMilestone,
		measure: func(f *facts) (int, int) { return f.completedClasses, target }}
}

func breadthRule(id, name, description string, target int) Rule {
	return Rule{ID: id, Name: name, Description: description, Category: CategoryBreadth,
		measure: func(f *facts) (int, int) { return len(f.departments), target }}
}

func diversityRule(id, name, description string, target int) Rule {
	return Rule{ID: id, Name: name, Description: description, Category: CategoryDiversity,
		measure: func(f *facts) (int, int) { return len(f.institutions), target }}
}

// Calculator evaluates achievements and pins for one catalog.
type Calculator struct {
	catalog   *catalog.Catalog
	evaluator *eligibility.Evaluator
	pins      map[PinType]Pin
}

// Options configures a Calculator.
type Options struct {
	Logger *logger.Logger
}

// New returns a calculator for cat.
func New(cat *catalog.Catalog, opts Options) *Calculator {
	return &Calculator{
		catalog:   cat,
		evaluator: eligibility.NewEvaluator(cat, opts.Logger),
		pins:      pinsFor(cat),
	}
}

// Achievements evaluates every built-in rule.
func (c *Calculator) Achievements(p progress.Progress) []Achievement {
	f := gather(c.catalog, p)
	rules := Rules()
	achievements := make([]Achievement, 0, len(rules))
	for _, rule := range rules {
		achievements = append(achievements, rule.evaluate(f))
	}
	return achievements
}

// Compute evaluates every built-in rule against p.
func Compute(cat *catalog.Catalog, p progress.Progress) []Achievement {
	return New(cat, Options{}).Achievements(p)
}

// progressionLevels is the A to C to D ladder inside one department.
var progressionLevels = []catalog.Level{catalog.LevelA, catalog.LevelC, catalog.LevelD}

// facts are the completion statistics every rule draws from.
type facts struct {
	completedClasses int
	departments      map[string]map[catalog.Level]bool
	institutions     map[string]bool
	introCompleted   int
	introTotal       int
}

// gather derives facts. Completions are counted once per alias class, so a
// course taken under two codes is one course.
func gather(cat *catalog.Catalog, p progress.Progress) *facts {
	f := &facts{
		departments:  make(map[string]map[catalog.Level]bool),
		institutions: make(map[string]bool),
	}
	resolver := cat.Resolver()

	classes := make(map[string]bool)
	for code := range p.Completed {
		classes[resolver.Canonicalize(code)] = true
	}
	f.completedClasses = len(classes)

	for i := range cat.Courses {
		course := &cat.Courses[i]
		done := resolver.IsCompleted(course.Code, p)
		if course.IsIntroductory {
			f.introTotal++
			if done {
				f.introCompleted++
			}
		}
		if !done {
			continue
		}
		if course.Institution != "" {
			f.institutions[course.Institution] = true
		}
		for _, dept := range cat.DepartmentsOf(course.Code) {
			key := catalog.DepartmentKey(dept)
			if f.departments[key] == nil {
				f.departments[key] = make(map[catalog.Level]bool)
			}
			if course.Level != "" {
				f.departments[key][course.Level] = true
			}
		}
	}
	return f
}

// bestProgression returns how far up the A, C, D ladder the user has climbed
// in their strongest department. Rungs count only in order.
func (f *facts) bestProgression() int {
	depts := make([]string, 0, len(f.departments))
	for dept := range f.departments {
		depts = append(depts, dept)
	}
	sort.Strings(depts)

	best := 0
	for _, dept := range depts {
		reached := 0
		for _, level := range progressionLevels {
			if !f.departments[dept][level] {
				break
			}
			reached++
		}
		best = max(best, reached)
	}
	return best
}
