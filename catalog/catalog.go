package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/trmn/academy/internal/logger"
	internalstrings "github.com/trmn/academy/internal/strings"
)

// Data is the raw catalog content, as produced by a catalog file or by any
// other parser.
type Data struct {
	Courses      []Course      `json:"courses" toml:"courses" yaml:"courses"`
	Categories   []Category    `json:"categories,omitempty" toml:"categories,omitempty" yaml:"categories,omitempty"`
	SpecialRules []SpecialRule `json:"special_rules,omitempty" toml:"special_rules,omitempty" yaml:"special_rules,omitempty"`
	Aliases      []CourseAlias `json:"aliases,omitempty" toml:"aliases,omitempty" yaml:"aliases,omitempty"`

	// Departments maps a department name to the section IDs, subsection IDs,
	// section names or code prefixes whose courses belong to it.
	Departments map[string][]string `json:"departments,omitempty" toml:"departments,omitempty" yaml:"departments,omitempty"`

	// Series maps a code prefix to a display name.
	Series map[string]string `json:"series,omitempty" toml:"series,omitempty" yaml:"series,omitempty"`
}

// Options configures New.
type Options struct {
	// Logger receives data-quality warnings. Nil discards them.
	Logger *logger.Logger
}

// Catalog is the immutable course catalog with its lookup indices.
type Catalog struct {
	Courses       []Course
	Categories    []Category
	SpecialRules  []SpecialRule
	CourseAliases []CourseAlias

	// CourseMap indexes Courses by code.
	CourseMap map[string]*Course

	// DependencyGraph maps a course code to the codes of its top-level
	// course prerequisites. Alternative groups and department choices are
	// not representable as simple edges and are not included.
	DependencyGraph map[string][]string

	DepartmentMappings map[string][]string
	SeriesMappings     map[string]string

	resolver    *Resolver
	departments map[string][]string
	order       map[string]int
	issues      []Issue
}

// New builds a catalog and its indices from data. Data-quality problems are
// logged and kept in Issues; New never fails.
func New(data Data, opts Options) *Catalog {
	log := opts.Logger

	c := &Catalog{
		Categories:         append([]Category(nil), data.Categories...),
		SpecialRules:       append([]SpecialRule(nil), data.SpecialRules...),
		CourseAliases:      append([]CourseAlias(nil), data.Aliases...),
		CourseMap:          make(map[string]*Course, len(data.Courses)),
		DependencyGraph:    make(map[string][]string, len(data.Courses)),
		DepartmentMappings: make(map[string][]string, len(data.Departments)),
		SeriesMappings:     make(map[string]string, len(data.Series)),
		departments:        make(map[string][]string, len(data.Courses)),
		order:              make(map[string]int, len(data.Courses)),
	}
	for dept, targets := range data.Departments {
		c.DepartmentMappings[dept] = append([]string(nil), targets...)
	}
	for prefix, name := range data.Series {
		c.SeriesMappings[prefix] = name
	}

	c.Courses = make([]Course, 0, len(data.Courses))
	for _, course := range data.Courses {
		course.Code = strings.TrimSpace(course.Code)
		if course.Code == "" {
			c.addIssue(log, Issue{Err: fmt.Errorf("%w (name %q)", ErrEmptyCourseCode, course.Name)})
			continue
		}
		if _, exists := c.order[course.Code]; exists {
			c.addIssue(log, Issue{Code: course.Code, Err: ErrDuplicateCourse})
			continue
		}
		c.order[course.Code] = len(c.Courses)
		c.Courses = append(c.Courses, course)
	}

	aliases := append([]CourseAlias(nil), data.Aliases...)
	for i := range c.Courses {
		course := &c.Courses[i]
		c.CourseMap[course.Code] = course
		c.DependencyGraph[course.Code] = directCourseEdges(course.Prerequisites)
		c.departments[course.Code] = c.resolveDepartments(course)

		if course.Level != "" && !course.Level.IsValid() {
			c.addIssue(log, Issue{Code: course.Code, Err: fmt.Errorf("%w: %q", ErrInvalidLevel, course.Level)})
		}
		for _, issue := range validatePrerequisites(course.Code, course.Prerequisites) {
			c.addIssue(log, issue)
		}
		if len(course.Aliases) > 0 {
			aliases = append(aliases, CourseAlias{
				PrimaryCode:      course.Code,
				AlternativeCodes: course.Aliases,
				Description:      "declared on course",
				Active:           true,
			})
		}
	}

	c.resolver = NewResolver(aliases, log)
	c.issues = append(c.issues, c.resolver.Issues()...)

	for i := range c.Courses {
		course := &c.Courses[i]
		for _, issue := range c.unresolvedReferences(course.Code, course.Prerequisites) {
			c.addIssue(log, issue)
		}
	}
	for _, rule := range c.SpecialRules {
		for _, issue := range validatePrerequisites(rule.ID, rule.Prerequisites) {
			c.addIssue(log, issue)
		}
	}

	return c
}

func (c *Catalog) addIssue(log *logger.Logger, issue Issue) {
	c.issues = append(c.issues, issue)
	log.Warn("catalog data-quality issue", "course", issue.Code, "reason", issue.Err.Error())
}

func directCourseEdges(prereqs []Prerequisite) []string {
	var edges []string
	seen := make(map[string]bool)
	for _, prereq := range prereqs {
		if prereq.Kind != KindCourse || prereq.Code == "" || seen[prereq.Code] {
			continue
		}
		seen[prereq.Code] = true
		edges = append(edges, prereq.Code)
	}
	return edges
}

// resolveDepartments unions the course's own departments with every mapped
// department that claims its section, subsection or code prefix.
func (c *Catalog) resolveDepartments(course *Course) []string {
	seen := make(map[string]bool)
	var depts []string
	add := func(dept string) {
		key := DepartmentKey(dept)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		depts = append(depts, dept)
	}

	for _, dept := range course.Departments {
		add(dept)
	}

	names := make([]string, 0, len(c.DepartmentMappings))
	for dept := range c.DepartmentMappings {
		names = append(names, dept)
	}
	sort.Strings(names)
	for _, dept := range names {
		for _, target := range c.DepartmentMappings[dept] {
			if courseMatchesTarget(course, target) {
				add(dept)
				break
			}
		}
	}
	return depts
}

func courseMatchesTarget(course *Course, target string) bool {
	target = strings.TrimSpace(target)
	if target == "" {
		return false
	}
	switch target {
	case course.SectionID, course.SubsectionID, course.Section, course.Subsection:
		return true
	}
	return strings.HasPrefix(course.Code, target)
}

// DepartmentKey normalizes a department name for comparisons.
func DepartmentKey(name string) string {
	return internalstrings.NormalizeLowerTrimSpace(internalstrings.NormalizeWhitespace(name))
}

// Course returns the course with the given code, or nil.
func (c *Catalog) Course(code string) *Course {
	if c == nil {
		return nil
	}
	return c.CourseMap[code]
}

// Index returns the position of code in Courses, or -1.
func (c *Catalog) Index(code string) int {
	if c == nil {
		return -1
	}
	if i, ok := c.order[code]; ok {
		return i
	}
	return -1
}

// DepartmentsOf returns the departments a course belongs to, or nil for an
// unknown code.
func (c *Catalog) DepartmentsOf(code string) []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.departments[code]...)
}

// InDepartment reports whether the course belongs to dept.
func (c *Catalog) InDepartment(code, dept string) bool {
	key := DepartmentKey(dept)
	for _, d := range c.departments[code] {
		if DepartmentKey(d) == key {
			return true
		}
	}
	return false
}

// SeriesOf returns the display name of the longest series prefix matching
// code.
func (c *Catalog) SeriesOf(code string) (string, bool) {
	best := ""
	for prefix := range c.SeriesMappings {
		if strings.HasPrefix(code, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return "", false
	}
	return c.SeriesMappings[best], true
}

// SpecialRule returns the special rule with the given ID (case-insensitive).
func (c *Catalog) SpecialRule(id string) (SpecialRule, bool) {
	for _, rule := range c.SpecialRules {
		if strings.EqualFold(rule.ID, id) {
			return rule, true
		}
	}
	return SpecialRule{}, false
}

// Resolver returns the alias resolver built for this catalog.
func (c *Catalog) Resolver() *Resolver {
	if c == nil {
		return nil
	}
	return c.resolver
}

// Issues returns the data-quality problems found while building the catalog.
func (c *Catalog) Issues() []Issue {
	if c == nil {
		return nil
	}
	return append([]Issue(nil), c.issues...)
}
