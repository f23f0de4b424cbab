package notify

import (
	"fmt"
	"strings"

	"github.com/l4rm4nd/VoucherVault/pkg/model"
)

const (
	ExpiryTitle = "Expiring items"
	TestTitle   = "VoucherVault test notification"
	TestBody    = "This is a test notification. Your destinations are configured correctly."
)

// Entry is one line of an expiry reminder. Final marks a last-chance notice.
type Entry struct {
	Item  model.Item
	Final bool
}

// ExpiryMessage renders one aggregated reminder listing every expiring item
// of a single user.
func ExpiryMessage(entries []Entry) string {
	var sb strings.Builder

	sb.WriteString("The following items are about to expire:\n\n")
	fmt.Fprintf(&sb, "%-12s %-24s %-12s %s\n", "type", "name", "expires", "value")

	for _, e := range entries {
		name := e.Item.Name
		if len(name) > 24 {
			name = name[:21] + "..."
		}

		fmt.Fprintf(&sb, "%-12s %-24s %-12s %s",
			e.Item.Type,
			name,
			e.Item.ExpiryDate.Format("2006-01-02"),
			e.Item.Value.StringFixed(2),
		)

		if e.Final {
			sb.WriteString(" (last chance)")
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
