// Package clipboard copies raw field values and tracks the transient
// "copied" indicator shown after a successful copy.
package clipboard

import (
	"errors"
	"log"
	"sync"
	"time"

	system "github.com/atotto/clipboard"
)

const CopiedDuration = 2 * time.Second

var ErrEmptyValue = errors.New("nothing to copy")

type Indicator string

const (
	IndicatorDefault Indicator = "default"
	IndicatorCopied  Indicator = "copied"
)

type Writer interface {
	WriteAll(text string) error
}

// SystemWriter writes to the OS clipboard.
type SystemWriter struct{}

func (SystemWriter) WriteAll(text string) error {
	if system.Unsupported {
		return errors.New("system clipboard unsupported on this host")
	}
	return system.WriteAll(text)
}

// Button is one copy control. Failures are logged and leave the indicator at
// its default; they are never returned to the caller.
type Button struct {
	writer    Writer
	duration  time.Duration
	afterFunc func(d time.Duration, f func()) *time.Timer

	mu        sync.Mutex
	indicator Indicator
	timer     *time.Timer
}

func NewButton(writer Writer) *Button {
	return &Button{
		writer:    writer,
		duration:  CopiedDuration,
		afterFunc: time.AfterFunc,
		indicator: IndicatorDefault,
	}
}

func (button *Button) Indicator() Indicator {
	button.mu.Lock()
	defer button.mu.Unlock()
	return button.indicator
}

// Copy writes value and reports whether the indicator switched to copied.
func (button *Button) Copy(value string) bool {
	if value == "" {
		log.Printf("clipboard copy skipped: %v", ErrEmptyValue)
		return false
	}
	if err := button.writer.WriteAll(value); err != nil {
		log.Printf("clipboard copy failed: %v", err)
		return false
	}

	button.mu.Lock()
	defer button.mu.Unlock()
	if button.timer != nil {
		button.timer.Stop()
	}
	button.indicator = IndicatorCopied
	button.timer = button.afterFunc(button.duration, button.revert)
	return true
}

func (button *Button) revert() {
	button.mu.Lock()
	defer button.mu.Unlock()
	button.indicator = IndicatorDefault
	button.timer = nil
}
