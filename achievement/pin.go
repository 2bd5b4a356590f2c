package achievement

import (
	"errors"
	"math"
	"strings"

	"github.com/trmn/academy/catalog"
	"github.com/trmn/academy/internal/validation"
	"github.com/trmn/academy/progress"
)

// PinType identifies a Space Warfare Pin.
type PinType string

const (
	// PinOSWP is the Officer Space Warfare Pin.
	PinOSWP PinType = "OSWP"

	// PinESWP is the Enlisted Space Warfare Pin.
	PinESWP PinType = "ESWP"
)

// ErrUnknownPin is returned for a pin type other than OSWP or ESWP.
var ErrUnknownPin = errors.New("unknown pin type")

// ValidPinTypes returns all valid pin types.
func ValidPinTypes() []PinType {
	return []PinType{PinOSWP, PinESWP}
}

// IsValid returns true if the pin type is a known value.
func (t PinType) IsValid() bool {
	return t == PinOSWP || t == PinESWP
}

// ParsePinType parses a pin type case-insensitively.
func ParsePinType(value string) (PinType, error) {
	t := PinType(strings.ToUpper(strings.TrimSpace(value)))
	if !t.IsValid() {
		return "", validation.FormatInvalidValueError(ErrUnknownPin, PinType(value), ValidPinTypes())
	}
	return t, nil
}

// SpaceWarfareDepartments are the departments the pin department choices
// draw from.
var SpaceWarfareDepartments = []string{
	"Astrogation",
	"Tactical",
	"Engineering",
	"Communications",
	"Flight Operations",
}

// Pin is a pin definition: every requirement must be satisfied.
type Pin struct {
	Type         PinType
	Name         string
	Requirements []catalog.Prerequisite
}

// DefaultPins returns the built-in pin definitions.
func DefaultPins() map[PinType]Pin {
	return map[PinType]Pin{
		PinOSWP: {
			Type: PinOSWP,
			Name: "Officer Space Warfare Pin",
			Requirements: []catalog.Prerequisite{
				catalog.CourseRequirement("SIA-RMN-0101"),
				catalog.CourseRequirement("SIA-RMN-0102"),
				catalog.DepartmentChoice(4, catalog.LevelD, SpaceWarfareDepartments...),
			},
		},
		PinESWP: {
			Type: PinESWP,
			Name: "Enlisted Space Warfare Pin",
			Requirements: []catalog.Prerequisite{
				catalog.CourseRequirement("SIA-RMN-0001"),
				catalog.CourseRequirement("SIA-RMN-0002"),
				catalog.DepartmentChoice(3, catalog.LevelC, SpaceWarfareDepartments...),
			},
		},
	}
}

// pinsFor returns the default pins with any catalog special rule of the
// same ID replacing its definition.
func pinsFor(cat *catalog.Catalog) map[PinType]Pin {
	pins := DefaultPins()
	for _, t := range ValidPinTypes() {
		rule, ok := cat.SpecialRule(string(t))
		if !ok || len(rule.Prerequisites) == 0 {
			continue
		}
		pin := Pin{Type: t, Name: rule.Name, Requirements: rule.Prerequisites}
		if pin.Name == "" {
			pin.Name = pins[t].Name
		}
		pins[t] = pin
	}
	return pins
}

// PinRequirement is the evaluated state of one pin requirement.
type PinRequirement struct {
	Description string                   `json:"description"`
	Kind        catalog.PrerequisiteKind `json:"kind"`
	Code        string                   `json:"code,omitempty"`
	Completed   bool                     `json:"completed"`

	// Satisfied and Minimum are set for department choices.
	Satisfied int `json:"satisfied,omitempty"`
	Minimum   int `json:"minimum,omitempty"`
}

// PinProgress is the evaluated state of a pin.
type PinProgress struct {
	Type         PinType          `json:"type"`
	Name         string           `json:"name"`
	Requirements []PinRequirement `json:"requirements"`

	// OverallProgress is the percentage of satisfied requirements, rounded
	// to one decimal.
	OverallProgress float64 `json:"overall_progress"`
	Earned          bool    `json:"earned"`
}

// Pin returns the definition used for t.
func (c *Calculator) Pin(t PinType) (Pin, bool) {
	pin, ok := c.pins[t]
	return pin, ok
}

// PinProgress evaluates pin t against p. An unknown pin type yields an
// empty, unearned result.
func (c *Calculator) PinProgress(p progress.Progress, t PinType) PinProgress {
	pin, ok := c.pins[t]
	if !ok {
		return PinProgress{Type: t}
	}

	result := PinProgress{
		Type:         pin.Type,
		Name:         pin.Name,
		Requirements: make([]PinRequirement, 0, len(pin.Requirements)),
	}
	satisfied := 0
	for _, prereq := range pin.Requirements {
		req := PinRequirement{
			Description: prereq.String(),
			Kind:        prereq.Kind,
			Code:        prereq.Code,
			Completed:   c.evaluator.IsSatisfied(prereq, p),
		}
		if prereq.Kind == catalog.KindDepartmentChoice {
			req.Satisfied, req.Minimum = c.evaluator.DepartmentProgress(prereq, p)
		}
		if course := c.catalog.Course(prereq.Code); course != nil && prereq.Kind == catalog.KindCourse {
			req.Description = course.Code + " " + course.Name
		}
		if req.Completed {
			satisfied++
		}
		result.Requirements = append(result.Requirements, req)
	}

	total := len(result.Requirements)
	if total > 0 {
		result.OverallProgress = roundPercent(float64(satisfied) / float64(total))
	}
	result.Earned = total > 0 && satisfied == total
	return result
}

// ComputePin evaluates pin t for cat against p.
func ComputePin(cat *catalog.Catalog, p progress.Progress, t PinType) PinProgress {
	return New(cat, Options{}).PinProgress(p, t)
}

// roundPercent converts a ratio to a percentage with one decimal.
func roundPercent(ratio float64) float64 {
	return math.Round(ratio*1000) / 10
}
