package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/l4rm4nd/VoucherVault/pkg/model"
)

func TestExpiryMessage(t *testing.T) {
	entries := []Entry{
		{
			Item: model.Item{
				Type:       model.TypeVoucher,
				Name:       "Coffee voucher",
				Value:      decimal.NewFromFloat(25),
				ExpiryDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			Item: model.Item{
				Type:       model.TypeGiftCard,
				Name:       "Book store",
				Value:      decimal.NewFromFloat(49.9),
				ExpiryDate: time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
			},
			Final: true,
		},
	}

	msg := ExpiryMessage(entries)

	lines := strings.Split(strings.TrimRight(msg, "\n"), "\n")
	// intro, blank, header, two item lines
	if len(lines) != 5 {
		t.Fatalf("message has %d lines, want 5:\n%s", len(lines), msg)
	}

	for _, want := range []string{"Coffee voucher", "2025-07-01", "25.00", "voucher"} {
		if !strings.Contains(lines[3], want) {
			t.Errorf("first item line %q misses %q", lines[3], want)
		}
	}

	if !strings.Contains(lines[4], "49.90") {
		t.Errorf("second item line %q misses value", lines[4])
	}
	if !strings.Contains(lines[4], "(last chance)") {
		t.Errorf("final notice line %q not marked as last chance", lines[4])
	}
	if strings.Contains(lines[3], "(last chance)") {
		t.Errorf("upcoming notice line %q marked as last chance", lines[3])
	}
}
