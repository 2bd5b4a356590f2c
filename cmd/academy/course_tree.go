package main

import (
	"fmt"

	"github.com/trmn/academy/catalog"
	"github.com/trmn/academy/eligibility"
	"github.com/trmn/academy/progress"
)

// printDepTree prints a prerequisite tree with ASCII art.
func printDepTree(a *app, root *eligibility.TreeNode, p progress.Progress) {
	fmt.Println(treeNodeLabel(a, root, p))
	for i, child := range root.Children {
		printTreeNode(a, child, p, "", i == len(root.Children)-1)
	}
}

func printTreeNode(a *app, node *eligibility.TreeNode, p progress.Progress, prefix string, isLast bool) {
	connector := "├── "
	childPrefix := prefix + "│   "
	if isLast {
		connector = "└── "
		childPrefix = prefix + "    "
	}

	fmt.Printf("%s%s%s\n", prefix, connector, treeNodeLabel(a, node, p))

	for i, child := range node.Children {
		printTreeNode(a, child, p, childPrefix, i == len(node.Children)-1)
	}
}

func treeNodeLabel(a *app, node *eligibility.TreeNode, p progress.Progress) string {
	if node.Course != nil {
		label := fmt.Sprintf("%s %s %s", statusIcon(a.engine.CourseStatus(node.Course, p)), node.Course.Code, node.Course.Name)
		if node.Cycle {
			label += " (cycle)"
		}
		return label
	}

	req := node.Requirement
	icon := satisfiedIcon(a.engine.Evaluator().IsSatisfied(req, p))
	switch req.Kind {
	case catalog.KindCourse:
		return fmt.Sprintf("%s %s (not in catalog)", icon, req.Code)
	case catalog.KindAlternativeGroup:
		if req.Description != "" {
			return fmt.Sprintf("%s %s, one of:", icon, req.Description)
		}
		return icon + " one of:"
	case catalog.KindDepartmentChoice:
		satisfied, minimum := a.engine.Evaluator().DepartmentProgress(req, p)
		return fmt.Sprintf("%s %s [%d/%d]", icon, req.String(), satisfied, minimum)
	default:
		return fmt.Sprintf("%s %s", icon, req.String())
	}
}

// statusIcon returns an icon for the status.
func statusIcon(s progress.Status) string {
	switch s {
	case progress.StatusAvailable:
		return "[ ]"
	case progress.StatusInProgress:
		return "[~]"
	case progress.StatusWaitingGrade:
		return "[w]"
	case progress.StatusCompleted:
		return "[x]"
	case progress.StatusLocked:
		return "[-]"
	default:
		return "[?]"
	}
}

func satisfiedIcon(ok bool) string {
	if ok {
		return "[x]"
	}
	return "[ ]"
}
