package model

import "time"

// Task categories offered by the task form. Stored categories are not
// validated against this set.
const (
	CategoryMaintenance    = "Maintenance"
	CategorySecurity       = "Security"
	CategoryDevelopment    = "Development"
	CategoryAdministration = "Administration"
)

// Categories lists the task categories in form order.
var Categories = []string{
	CategoryMaintenance,
	CategorySecurity,
	CategoryDevelopment,
	CategoryAdministration,
}

// DateLayout is the calendar-date form used for Task.DueDate.
const DateLayout = "2006-01-02"

// Task is a dated, categorized to-do item with a completion flag.
type Task struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	DueDate   string `json:"dueDate"`
	Completed bool   `json:"completed"`
}

// Due parses DueDate. ok is false when the date is empty or malformed.
func (t Task) Due() (due time.Time, ok bool) {
	d, err := time.ParseInLocation(DateLayout, t.DueDate, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
