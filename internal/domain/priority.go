package domain

// PriorityClass is the visual severity bucket derived from a task priority.
type PriorityClass int

const (
	ClassCritical PriorityClass = iota
	ClassWarning
	ClassSafe
	ClassNeutral
)

func (c PriorityClass) String() string {
	switch c {
	case ClassCritical:
		return "critical"
	case ClassWarning:
		return "warning"
	case ClassSafe:
		return "safe"
	default:
		return "neutral"
	}
}

// ClassifyPriority maps high, medium and low onto critical, warning and safe.
// Anything else is neutral. The numeric order of the classes is also the
// report sort order.
func ClassifyPriority(p Priority) PriorityClass {
	switch p {
	case PriorityHigh:
		return ClassCritical
	case PriorityMedium:
		return ClassWarning
	case PriorityLow:
		return ClassSafe
	default:
		return ClassNeutral
	}
}
