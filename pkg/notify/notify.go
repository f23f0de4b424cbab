// Package notify dispatches messages to user-configured destinations.
// Destination URLs are opaque service URLs (tgram://..., discord://..., ...)
// understood by the underlying shoutrrr router.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/containrrr/shoutrrr"
	"github.com/containrrr/shoutrrr/pkg/types"

	"github.com/l4rm4nd/VoucherVault/pkg/model"
)

// Sender delivers one message to a set of destinations. Implementations must
// treat the send as failed if no destination accepted the message.
type Sender interface {
	Send(ctx context.Context, destinations []string, title, body string) error
}

// ShoutrrrSender sends through the shoutrrr service router.
type ShoutrrrSender struct{}

func (ShoutrrrSender) Send(_ context.Context, destinations []string, title, body string) error {
	if len(destinations) == 0 {
		return model.ErrNoDestinations
	}

	router, err := shoutrrr.CreateSender(destinations...)
	if err != nil {
		return fmt.Errorf("can't create sender: %w", err)
	}

	params := &types.Params{"title": title}

	var errs []error
	for _, err := range router.Send(body, params) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("can't deliver to %d of %d destinations: %w", len(errs), len(destinations), errors.Join(errs...))
	}

	return nil
}
