package catalog

import (
	"fmt"
	"strings"
)

// String returns a one-line human description of the prerequisite.
func (p Prerequisite) String() string {
	switch p.Kind {
	case KindCourse:
		if p.Level != "" {
			return fmt.Sprintf("%s (level %s)", p.Code, p.Level)
		}
		return p.Code
	case KindAlternativeGroup:
		members := make([]string, 0, len(p.Alternatives))
		for _, alt := range p.Alternatives {
			members = append(members, alt.String())
		}
		list := strings.Join(members, " or ")
		if p.Description != "" {
			return fmt.Sprintf("%s: %s", p.Description, list)
		}
		return "one of " + list
	case KindDepartmentChoice:
		var b strings.Builder
		fmt.Fprintf(&b, "%d of %d departments", p.Minimum, p.optionCount())
		if p.Level != "" {
			fmt.Fprintf(&b, " at level %s", p.Level)
		}
		if len(p.Departments) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(p.Departments, ", "))
		}
		return b.String()
	case KindLevelRequirement:
		if p.Description != "" {
			return p.Description
		}
		if len(p.Departments) > 0 {
			return fmt.Sprintf("any level %s course in %s", p.Level, strings.Join(p.Departments, ", "))
		}
		return fmt.Sprintf("any level %s course", p.Level)
	default:
		return fmt.Sprintf("unknown prerequisite %q", string(p.Kind))
	}
}

func (p Prerequisite) optionCount() int {
	if p.TotalOptions > 0 {
		return p.TotalOptions
	}
	return len(p.Departments)
}
