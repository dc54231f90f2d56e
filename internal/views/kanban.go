// Package views derives read-only projections from a ProjectState. Every
// function here is pure: it never mutates its input and returns the same
// result for the same state.
package views

import "github.com/alexanderramin/planboard/internal/domain"

// Column is one kanban bucket.
type Column struct {
	Status domain.TaskStatus
	Title  string
	Tasks  []domain.Task
}

// Board partitions tasks into the four status buckets in board order. Tasks
// with an unknown status land in no column.
func Board(s domain.ProjectState) []Column {
	cols := make([]Column, len(domain.TaskStatuses))
	index := make(map[domain.TaskStatus]int, len(cols))
	for i, status := range domain.TaskStatuses {
		cols[i] = Column{Status: status, Title: status.Title(), Tasks: []domain.Task{}}
		index[status] = i
	}
	for _, t := range s.Tasks {
		if i, ok := index[t.Status]; ok {
			cols[i].Tasks = append(cols[i].Tasks, t)
		}
	}
	return cols
}

// Counts returns the number of tasks per column.
func Counts(cols []Column) map[domain.TaskStatus]int {
	out := make(map[domain.TaskStatus]int, len(cols))
	for _, c := range cols {
		out[c.Status] = len(c.Tasks)
	}
	return out
}
