package views

import "github.com/alexanderramin/planboard/internal/domain"

// Day is one cell of the weekly calendar grid.
type Day struct {
	Date  domain.Date
	Tasks []domain.Task
}

// DayBuckets lists the seven days of the week containing ref with every task
// whose span covers the day, both ends inclusive.
func DayBuckets(s domain.ProjectState, ref domain.Date) []Day {
	start, _ := Week(ref)
	days := make([]Day, 7)
	for i := range days {
		d := start.AddDays(i)
		days[i] = Day{Date: d, Tasks: []domain.Task{}}
		for _, t := range s.Tasks {
			if t.StartDate.IsZero() {
				continue
			}
			end := t.EndDate
			if end.IsZero() {
				end = t.StartDate
			}
			if d.Within(t.StartDate, end) {
				days[i].Tasks = append(days[i].Tasks, t)
			}
		}
	}
	return days
}
