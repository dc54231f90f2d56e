package persistence

import (
	"context"
	"path/filepath"
)

// FilePicker asks where to save or which file to open. Implementations
// return ErrPickerDeclined when the user backs out.
type FilePicker interface {
	PickSave(ctx context.Context, suggested string) (string, error)
	PickOpen(ctx context.Context) (string, error)
}

// StaticPicker answers every prompt without asking. PickSave uses Path, or
// the suggested name inside Dir. An unset Path declines PickOpen.
type StaticPicker struct {
	Path string
	Dir  string
}

func (p StaticPicker) PickSave(_ context.Context, suggested string) (string, error) {
	if p.Path != "" {
		return p.Path, nil
	}
	if p.Dir == "" {
		return "", ErrPickerDeclined
	}
	return filepath.Join(p.Dir, suggested), nil
}

func (p StaticPicker) PickOpen(context.Context) (string, error) {
	if p.Path == "" {
		return "", ErrPickerDeclined
	}
	return p.Path, nil
}

// DeclinePicker declines every prompt.
type DeclinePicker struct{}

func (DeclinePicker) PickSave(context.Context, string) (string, error) { return "", ErrPickerDeclined }
func (DeclinePicker) PickOpen(context.Context) (string, error)         { return "", ErrPickerDeclined }
