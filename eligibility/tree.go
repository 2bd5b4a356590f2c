package eligibility

import (
	"fmt"

	"github.com/trmn/academy/catalog"
)

// TreeNode is a node in a prerequisite tree.
type TreeNode struct {
	// Course is the course at this node. It is nil for group and
	// requirement nodes, and for course references the catalog cannot
	// resolve.
	Course *catalog.Course

	// Requirement is the prerequisite that led to this node. It is the zero
	// value for the root.
	Requirement catalog.Prerequisite

	// Cycle is set when the course already appears on the path from the
	// root; its children are not expanded.
	Cycle bool

	// Children are the prerequisites of Course, or the members of an
	// alternative group.
	Children []*TreeNode
}

// Code returns the course code at this node, or the referenced code when
// the course is unknown.
func (n *TreeNode) Code() string {
	if n.Course != nil {
		return n.Course.Code
	}
	return n.Requirement.Code
}

// DependencyTree returns the prerequisite tree rooted at code. Course
// references are followed through aliases.
func (e *Engine) DependencyTree(code string) (*TreeNode, error) {
	root := e.CourseByCode(code)
	if root == nil {
		return nil, fmt.Errorf("%w: %s", ErrCourseNotFound, code)
	}

	path := make(map[string]bool)
	return e.buildTree(root, catalog.Prerequisite{}, path), nil
}

func (e *Engine) buildTree(course *catalog.Course, via catalog.Prerequisite, path map[string]bool) *TreeNode {
	node := &TreeNode{Course: course, Requirement: via}
	if path[course.Code] {
		node.Cycle = true
		return node
	}
	path[course.Code] = true
	defer delete(path, course.Code)

	for _, prereq := range course.Prerequisites {
		node.Children = append(node.Children, e.buildRequirement(prereq, path))
	}
	return node
}

func (e *Engine) buildRequirement(prereq catalog.Prerequisite, path map[string]bool) *TreeNode {
	switch prereq.Kind {
	case catalog.KindCourse:
		if course := e.resolveCourse(prereq.Code); course != nil {
			return e.buildTree(course, prereq, path)
		}
		return &TreeNode{Requirement: prereq}
	case catalog.KindAlternativeGroup:
		node := &TreeNode{Requirement: prereq}
		for _, alt := range prereq.Alternatives {
			node.Children = append(node.Children, e.buildRequirement(alt, path))
		}
		return node
	default:
		return &TreeNode{Requirement: prereq}
	}
}
