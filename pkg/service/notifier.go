package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/l4rm4nd/VoucherVault/pkg/database"
	"github.com/l4rm4nd/VoucherVault/pkg/model"
	"github.com/l4rm4nd/VoucherVault/pkg/notify"
)

// Notifier runs the expiry sweep: one aggregated reminder per user per run.
//
// Every unconsumed item moves through upcoming-notice -> final-notice as its
// expiry date enters the configured windows. Flags advance only after the
// user's message was dispatched, so a failed dispatch means the same items are
// picked up again by the next scheduled run. An item qualifying for both
// windows at once (first run after a long downtime, for example) is listed
// once and gets both flags together.
type Notifier struct {
	Profiles database.ProfileRepository
	Items    database.NotifierRepository
	Sender   notify.Sender

	UpcomingDays int
	FinalDays    int

	// Now can be overridden in tests. Nil means time.Now.
	Now func() time.Time
}

// UserResult is one user's slice of the per-run summary.
type UserResult struct {
	UserID int
	Items  int
	Err    error
}

// Run sweeps all users with configured destinations. Per-user failures land
// in the result slice, only infrastructure failures abort the run.
func (n *Notifier) Run(ctx context.Context) ([]UserResult, error) {
	profiles, err := n.Profiles.Recipients(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't load notification recipients: %w", err)
	}

	results := make([]UserResult, 0, len(profiles))
	for _, p := range profiles {
		results = append(results, n.notifyUser(ctx, p))
	}

	return results, nil
}

type candidate struct {
	entry           notify.Entry
	upcoming, final bool
}

func (n *Notifier) notifyUser(ctx context.Context, p model.UserProfile) UserResult {
	res := UserResult{UserID: p.UserID}
	now := n.now()

	horizon := n.UpcomingDays
	if n.FinalDays > horizon {
		horizon = n.FinalDays
	}

	items, err := n.Items.ExpiringItems(ctx, p.UserID, now, horizon)
	if err != nil {
		res.Err = err
		return res
	}

	candidates := n.classify(items, now)
	if len(candidates) == 0 {
		return res
	}
	res.Items = len(candidates)

	entries := make([]notify.Entry, 0, len(candidates))
	for _, c := range candidates {
		entries = append(entries, c.entry)
	}

	if err := n.Sender.Send(ctx, p.Destinations(), notify.ExpiryTitle, notify.ExpiryMessage(entries)); err != nil {
		// flags untouched: these items are retried on the next sweep
		res.Err = fmt.Errorf("can't dispatch notification: %w", err)
		return res
	}

	for _, c := range candidates {
		if err := n.Items.MarkNotified(ctx, c.entry.Item.ID, c.upcoming, c.final); err != nil {
			// the message is out but the flag didn't stick; the next run may
			// notify this item once more
			slog.Error("can't persist notice flags",
				slog.String("item_id", c.entry.Item.ID.String()),
				slog.Any("error", err),
			)
			res.Err = err
		}
	}

	return res
}

// classify picks the items due a notice and decides which flags each one
// advances. Consumed items never reach this point (filtered by the query).
func (n *Notifier) classify(items []model.Item, now time.Time) []candidate {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	upcomingDeadline := today.AddDate(0, 0, n.UpcomingDays)
	finalDeadline := today.AddDate(0, 0, n.FinalDays)

	var due []candidate
	for _, item := range items {
		if item.ExpiryDate.Before(today) {
			continue // already expired, nothing to warn about
		}

		upcoming := !item.UpcomingNoticeSent && !item.ExpiryDate.After(upcomingDeadline)
		final := !item.FinalNoticeSent && !item.ExpiryDate.After(finalDeadline)
		if !upcoming && !final {
			continue
		}

		due = append(due, candidate{
			entry:    notify.Entry{Item: item, Final: final},
			upcoming: upcoming,
			final:    final,
		})
	}

	return due
}

func (n *Notifier) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}
