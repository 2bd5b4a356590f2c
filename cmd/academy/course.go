package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/trmn/academy/catalog"
	"github.com/trmn/academy/eligibility"
	"github.com/trmn/academy/internal/listflags"
	"github.com/trmn/academy/internal/ui"
	"github.com/trmn/academy/progress"
)

var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Browse courses and record progress",
}

var courseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courses with their status",
	Args:  cobra.NoArgs,
	RunE:  runCourseList,
}

var courseReadyCmd = &cobra.Command{
	Use:   "ready",
	Short: "List courses whose prerequisites are satisfied",
	Args:  cobra.NoArgs,
	RunE:  runCourseReady,
}

var courseShowCmd = &cobra.Command{
	Use:   "show <code>...",
	Short: "Show course details",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCourseShow,
}

var courseStartCmd = &cobra.Command{
	Use:   "start <code>",
	Short: "Mark a course as in progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCourseTransition(cmd, args[0], progress.StatusInProgress)
	},
}

var courseWaitCmd = &cobra.Command{
	Use:   "wait <code>",
	Short: "Mark a course as waiting for a grade",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCourseTransition(cmd, args[0], progress.StatusWaitingGrade)
	},
}

var courseCompleteCmd = &cobra.Command{
	Use:   "complete <code>",
	Short: "Mark a course as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCourseTransition(cmd, args[0], progress.StatusCompleted)
	},
}

var courseResetCmd = &cobra.Command{
	Use:   "reset <code>",
	Short: "Clear recorded progress for a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCourseTransition(cmd, args[0], progress.StatusAvailable)
	},
}

var courseUnlocksCmd = &cobra.Command{
	Use:   "unlocks <code>",
	Short: "List courses that require a course",
	Args:  cobra.ExactArgs(1),
	RunE:  runCourseUnlocks,
}

var courseTreeCmd = &cobra.Command{
	Use:   "tree <code>",
	Short: "Show the prerequisite tree of a course",
	Args:  cobra.ExactArgs(1),
	RunE:  runCourseTree,
}

var (
	courseListStatus  string
	courseListSection string
	courseListAll     bool
	courseListJSON    bool

	courseReadyLimit int
	courseReadyJSON  bool

	courseShowJSON    bool
	courseUnlocksJSON bool

	courseForce bool
	courseDate  string
)

func init() {
	rootCmd.AddCommand(courseCmd)
	courseCmd.AddCommand(courseListCmd, courseReadyCmd, courseShowCmd, courseStartCmd, courseWaitCmd,
		courseCompleteCmd, courseResetCmd, courseUnlocksCmd, courseTreeCmd)

	courseListCmd.Flags().StringVar(&courseListStatus, "status", "", "Filter by status (locked, available, in_progress, waiting_grade, completed)")
	courseListCmd.Flags().StringVar(&courseListSection, "section", "", "Filter by section or subsection name")
	listflags.AddAllFlag(courseListCmd, &courseListAll)
	listflags.AddJSONFlag(courseListCmd, &courseListJSON)

	courseReadyCmd.Flags().IntVarP(&courseReadyLimit, "limit", "n", 0, "Maximum number of courses to show")
	listflags.AddJSONFlag(courseReadyCmd, &courseReadyJSON)

	listflags.AddJSONFlag(courseShowCmd, &courseShowJSON)
	listflags.AddJSONFlag(courseUnlocksCmd, &courseUnlocksJSON)

	for _, cmd := range []*cobra.Command{courseStartCmd, courseWaitCmd, courseCompleteCmd} {
		cmd.Flags().BoolVarP(&courseForce, "force", "f", false, "Record progress even if prerequisites are missing")
		cmd.Flags().StringVar(&courseDate, "date", "", "Date of the change (YYYY-MM-DD, default today)")
	}
	addDateFlagAliases(courseStartCmd, courseWaitCmd, courseCompleteCmd)
}

// courseView is the JSON form of a course with its status.
type courseView struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Status        progress.Status `json:"status"`
	Level         catalog.Level   `json:"level,omitempty"`
	Section       string          `json:"section,omitempty"`
	Subsection    string          `json:"subsection,omitempty"`
	Institution   string          `json:"institution,omitempty"`
	Departments   []string        `json:"departments,omitempty"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
	Prerequisites []string        `json:"prerequisites,omitempty"`
	Missing       []string        `json:"missing,omitempty"`
}

func newCourseView(a *app, course *catalog.Course, p progress.Progress) courseView {
	view := courseView{
		Code:        course.Code,
		Name:        course.Name,
		Status:      a.engine.CourseStatus(course, p),
		Level:       course.Level,
		Section:     course.Section,
		Subsection:  course.Subsection,
		Institution: course.Institution,
		Departments: a.catalog.DepartmentsOf(course.Code),
	}
	if date, ok := p.CompletionDates[course.Code]; ok && !date.IsZero() {
		view.CompletedAt = &date
	}
	return view
}

func runCourseList(cmd *cobra.Command, args []string) error {
	var filter progress.Status
	if courseListStatus != "" {
		status, err := progress.ParseStatus(courseListStatus)
		if err != nil {
			return err
		}
		filter = status
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	p, err := a.loadProgress()
	if err != nil {
		return err
	}

	section := strings.ToLower(strings.TrimSpace(courseListSection))
	total := len(a.catalog.Courses)
	var courses []*catalog.Course
	for i := range a.catalog.Courses {
		course := &a.catalog.Courses[i]
		if section != "" && !courseInSection(course, section) {
			continue
		}
		status := a.engine.CourseStatus(course, p)
		if filter != "" {
			if status != filter {
				continue
			}
		} else if !courseListAll && !courseActive(status) {
			continue
		}
		courses = append(courses, course)
	}

	if courseListJSON {
		views := make([]courseView, 0, len(courses))
		for _, course := range courses {
			views = append(views, newCourseView(a, course, p))
		}
		return encodeJSONToStdout(views)
	}

	if len(courses) == 0 {
		fmt.Println(courseEmptyListMessage(total, courseListStatus, courseListAll))
		return nil
	}
	fmt.Print(formatCourseTable(a, courses, p))
	return nil
}

// courseActive reports whether a course is shown without --all.
func courseActive(status progress.Status) bool {
	switch status {
	case progress.StatusAvailable, progress.StatusInProgress, progress.StatusWaitingGrade:
		return true
	default:
		return false
	}
}

func courseInSection(course *catalog.Course, section string) bool {
	for _, candidate := range []string{course.Section, course.Subsection, course.SectionID, course.SubsectionID} {
		if strings.ToLower(candidate) == section {
			return true
		}
	}
	return false
}

func runCourseReady(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	p, err := a.loadProgress()
	if err != nil {
		return err
	}

	courses := a.engine.Ready(p, courseReadyLimit)
	if courseReadyJSON {
		views := make([]courseView, 0, len(courses))
		for _, course := range courses {
			views = append(views, newCourseView(a, course, p))
		}
		return encodeJSONToStdout(views)
	}

	if len(courses) == 0 {
		fmt.Println("No courses are ready.")
		return nil
	}
	fmt.Print(formatCourseTable(a, courses, p))
	return nil
}

func runCourseShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	p, err := a.loadProgress()
	if err != nil {
		return err
	}

	courses := make([]*catalog.Course, 0, len(args))
	for _, code := range args {
		course := a.engine.CourseByCode(code)
		if course == nil {
			return fmt.Errorf("%w: %s", eligibility.ErrCourseNotFound, code)
		}
		courses = append(courses, course)
	}

	if courseShowJSON {
		views := make([]courseView, 0, len(courses))
		for _, course := range courses {
			view := newCourseView(a, course, p)
			for _, prereq := range course.Prerequisites {
				view.Prerequisites = append(view.Prerequisites, prereq.String())
			}
			for _, prereq := range a.engine.MissingPrerequisites(course, p) {
				view.Missing = append(view.Missing, prereq.String())
			}
			views = append(views, view)
		}
		return encodeJSONToStdout(views)
	}

	for i, course := range courses {
		if i > 0 {
			fmt.Println()
		}
		printCourseDetail(a, course, p)
	}
	return nil
}

func runCourseTransition(cmd *cobra.Command, code string, to progress.Status) error {
	at, err := parseCourseDate(cmd)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	course := a.engine.CourseByCode(code)
	if course == nil {
		return fmt.Errorf("%w: %s", eligibility.ErrCourseNotFound, code)
	}

	opts := eligibility.TransitionOptions{Force: courseForce}
	var result eligibility.TransitionResult
	_, err = a.store.Update(func(p progress.Progress) (progress.Progress, error) {
		transition, transitionErr := a.engine.Transition(p, course.Code, to, at, opts)
		if transitionErr != nil {
			return p, transitionErr
		}
		result = transition
		return transition.Progress, nil
	})
	if err != nil {
		if errors.Is(err, eligibility.ErrCourseLocked) {
			return fmt.Errorf("%w (use --force to record it anyway)", err)
		}
		return err
	}

	if result.From == result.To {
		fmt.Printf("%s is already %s\n", result.Course.Code, formatStatus(result.To))
		return nil
	}
	fmt.Printf("%s: %s -> %s\n", result.Course.Code, formatStatus(result.From), formatStatus(result.To))
	if len(result.Unlocked) > 0 {
		fmt.Printf("Unlocked %d %s:\n", len(result.Unlocked), plural(len(result.Unlocked), "course", "courses"))
		for _, course := range result.Unlocked {
			fmt.Printf("  %s  %s\n", course.Code, course.Name)
		}
	}
	return nil
}

// parseCourseDate returns the --date value at midnight UTC, or now.
func parseCourseDate(cmd *cobra.Command) (time.Time, error) {
	if !cmd.Flags().Changed("date") || strings.TrimSpace(courseDate) == "" {
		return now().UTC(), nil
	}
	date, err := time.Parse(ui.DateLayout, strings.TrimSpace(courseDate))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", courseDate)
	}
	return date.UTC(), nil
}

func runCourseUnlocks(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	course := a.engine.CourseByCode(args[0])
	if course == nil {
		return fmt.Errorf("%w: %s", eligibility.ErrCourseNotFound, args[0])
	}

	p, err := a.loadProgress()
	if err != nil {
		return err
	}

	courses := a.engine.CoursesUnlockedBy(course.Code)
	if courseUnlocksJSON {
		views := make([]courseView, 0, len(courses))
		for _, unlocked := range courses {
			views = append(views, newCourseView(a, unlocked, p))
		}
		return encodeJSONToStdout(views)
	}

	if len(courses) == 0 {
		fmt.Printf("No courses require %s.\n", course.Code)
		return nil
	}
	fmt.Print(formatCourseTable(a, courses, p))
	return nil
}

func runCourseTree(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	p, err := a.loadProgress()
	if err != nil {
		return err
	}

	tree, err := a.engine.DependencyTree(args[0])
	if err != nil {
		return err
	}
	printDepTree(a, tree, p)
	return nil
}

func courseEmptyListMessage(total int, status string, includeAll bool) string {
	if total == 0 {
		return "No courses found."
	}

	status = strings.TrimSpace(status)
	if status != "" {
		return fmt.Sprintf("No courses found with status %s.", strings.ToLower(status))
	}

	if !includeAll {
		return "No active courses found. Use --all to include completed and locked courses."
	}

	return "No courses found."
}
