// Package notify combines notifiers.
package notify

import (
	"context"
	"errors"

	"github.com/bnema/attendance-cli/internal/ports"
)

// Fanout delivers to every notifier and reports all failures together.
type Fanout []ports.Notifier

var _ ports.Notifier = Fanout(nil)

func (f Fanout) Notify(ctx context.Context, n ports.Notification) error {
	var errs []error
	for _, notifier := range f {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
