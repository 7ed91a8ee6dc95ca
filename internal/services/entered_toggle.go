package services

import "context"

// EnteredToggle is the displayed entered_status of one quote for the length
// of a single request. A flip is shown immediately and rolled back when the
// store rejects it.
type EnteredToggle struct {
	value bool
}

func NewEnteredToggle(initial bool) *EnteredToggle {
	return &EnteredToggle{value: initial}
}

func (toggle *EnteredToggle) Value() bool {
	return toggle.value
}

// Flip persists the inverted value. It returns the value now displayed,
// which equals the prior value when persist fails.
func (toggle *EnteredToggle) Flip(ctx context.Context, persist func(ctx context.Context, value bool) error) (bool, error) {
	previous := toggle.value
	toggle.value = !previous
	if err := persist(ctx, toggle.value); err != nil {
		toggle.value = previous
		return previous, err
	}
	return toggle.value, nil
}
