package workspace

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/nhle/kodeportal/internal/model"
)

// Dashboard limits.
const (
	RecentProjectLimit = 3
	UpcomingTaskLimit  = 4
)

// CategoryStat is the completion ratio of one task category.
type CategoryStat struct {
	Category  string
	Completed int
	Total     int
}

// Percent is the completion ratio rounded to the nearest whole percent.
func (c CategoryStat) Percent() int {
	if c.Total == 0 {
		return 0
	}
	return int(math.Round(float64(c.Completed) / float64(c.Total) * 100))
}

// Summary is everything the home dashboard shows.
type Summary struct {
	RecentProjects []model.Project
	UpcomingTasks  []model.Task
	Categories     []CategoryStat
}

// Summarize derives the dashboard from collection snapshots.
func Summarize(projects []model.Project, tasks []model.Task) Summary {
	return Summary{
		RecentProjects: RecentProjects(projects, RecentProjectLimit),
		UpcomingTasks:  UpcomingTasks(tasks, UpcomingTaskLimit),
		Categories:     CategoryStats(tasks),
	}
}

// RecentProjects returns up to n projects, newest creation time first.
func RecentProjects(projects []model.Project, n int) []model.Project {
	out := slices.Clone(projects)
	slices.SortStableFunc(out, func(a, b model.Project) int {
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})
	return head(out, n)
}

// UpcomingTasks returns up to n incomplete tasks, soonest due date first.
func UpcomingTasks(tasks []model.Task, n int) []model.Task {
	out := slices.DeleteFunc(slices.Clone(tasks), func(t model.Task) bool {
		return t.Completed
	})
	slices.SortStableFunc(out, compareDue)
	return head(out, n)
}

// CategoryStats computes per-category completion in order of each
// category's first appearance.
func CategoryStats(tasks []model.Task) []CategoryStat {
	var stats []CategoryStat
	index := make(map[string]int)
	for _, t := range tasks {
		i, ok := index[t.Category]
		if !ok {
			i = len(stats)
			index[t.Category] = i
			stats = append(stats, CategoryStat{Category: t.Category})
		}
		stats[i].Total++
		if t.Completed {
			stats[i].Completed++
		}
	}
	return stats
}

// EmojiFacets returns the distinct non-empty emoji tags in order of first
// appearance.
func EmojiFacets(projects []model.Project) []string {
	var facets []string
	seen := make(map[string]bool)
	for _, p := range projects {
		if p.Emoji == "" || seen[p.Emoji] {
			continue
		}
		seen[p.Emoji] = true
		facets = append(facets, p.Emoji)
	}
	return facets
}

// FilterProjects keeps projects whose name contains query
// (case-insensitive) and, when emoji is non-empty, whose emoji equals it.
func FilterProjects(projects []model.Project, query, emoji string) []model.Project {
	q := strings.ToLower(query)
	var out []model.Project
	for _, p := range projects {
		if !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		if emoji != "" && p.Emoji != emoji {
			continue
		}
		out = append(out, p)
	}
	return out
}

// TaskFilter selects which tasks the task view shows.
type TaskFilter int

const (
	FilterAll TaskFilter = iota
	FilterPending
	FilterCompleted
)

// TaskFilters lists the filters in the order the view cycles through them.
var TaskFilters = []TaskFilter{FilterAll, FilterPending, FilterCompleted}

func (f TaskFilter) String() string {
	switch f {
	case FilterPending:
		return "pending"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// Next returns the filter after f, wrapping around.
func (f TaskFilter) Next() TaskFilter {
	return TaskFilters[(int(f)+1)%len(TaskFilters)]
}

// ParseTaskFilter maps "all", "pending" or "completed" to a TaskFilter.
func ParseTaskFilter(s string) (TaskFilter, error) {
	for _, f := range TaskFilters {
		if f.String() == strings.ToLower(strings.TrimSpace(s)) {
			return f, nil
		}
	}
	return FilterAll, fmt.Errorf("unknown task filter %q", s)
}

// VisibleTasks applies the filter and the display order: incomplete tasks
// first, then ascending due date within each group.
func VisibleTasks(tasks []model.Task, f TaskFilter) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		switch {
		case f == FilterPending && t.Completed:
			continue
		case f == FilterCompleted && !t.Completed:
			continue
		}
		out = append(out, t)
	}
	SortTasks(out)
	return out
}

// SortTasks orders tasks in place: incomplete before completed, then by
// ascending due date. The sort is stable.
func SortTasks(tasks []model.Task) {
	slices.SortStableFunc(tasks, func(a, b model.Task) int {
		if a.Completed != b.Completed {
			if a.Completed {
				return 1
			}
			return -1
		}
		return compareDue(a, b)
	})
}

// IsOverdue reports whether t is incomplete and due on a calendar day
// strictly before the day of now.
func IsOverdue(t model.Task, now time.Time) bool {
	if t.Completed {
		return false
	}
	due, ok := t.Due()
	if !ok {
		return false
	}
	y, m, d := now.In(time.Local).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return due.Before(today)
}

// compareDue orders by due date; tasks without a parseable date sort last.
func compareDue(a, b model.Task) int {
	da, okA := a.Due()
	db, okB := b.Due()
	switch {
	case okA && okB:
		return da.Compare(db)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
