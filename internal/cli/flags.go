package cli

import (
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/spf13/pflag"
)

// dateValue is a pflag.Value holding a calendar date in YYYY-MM-DD form.
type dateValue struct {
	date *domain.Date
}

var _ pflag.Value = dateValue{}

func newDateValue(p *domain.Date) dateValue { return dateValue{date: p} }

func (v dateValue) String() string {
	if v.date == nil || v.date.IsZero() {
		return ""
	}
	return v.date.String()
}

func (v dateValue) Set(s string) error {
	d, err := domain.ParseDate(s)
	if err != nil {
		return err
	}
	*v.date = d
	return nil
}

func (dateValue) Type() string { return "date" }

// weekFlags selects a week by reference date plus a week offset.
type weekFlags struct {
	date   domain.Date
	offset int
}

func (w *weekFlags) register(fs *pflag.FlagSet) {
	fs.Var(newDateValue(&w.date), "date", "Any day inside the week (YYYY-MM-DD, default today)")
	fs.IntVarP(&w.offset, "offset", "o", 0, "Weeks to move from --date (negative for earlier)")
}

// ref returns the reference day after applying the offset.
func (w *weekFlags) ref(today domain.Date) domain.Date {
	ref := w.date
	if ref.IsZero() {
		ref = today
	}
	return ref.AddDays(7 * w.offset)
}
