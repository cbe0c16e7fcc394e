package format

import (
	"sort"

	"github.com/garyjia/expense-bills/internal/domain/entity"
)

// BillView is a bill ready to be shown in the bills table.
type BillView struct {
	entity.Bill
	DisplayDate   string `json:"display_date"`
	DisplayStatus string `json:"display_status"`
}

// FormatBills sorts a copy of bills newest first and attaches display
// strings. A date that cannot be formatted is shown as stored. The input
// slice is left untouched.
func FormatBills(bills []*entity.Bill) []BillView {
	sorted := make([]*entity.Bill, 0, len(bills))
	for _, b := range bills {
		if b != nil {
			sorted = append(sorted, b)
		}
	}
	// ISO dates order lexically; stable so equal dates keep storage order.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})

	views := make([]BillView, 0, len(sorted))
	for _, b := range sorted {
		views = append(views, ViewOf(b))
	}
	return views
}

// ViewOf derives the display strings of a single bill.
func ViewOf(b *entity.Bill) BillView {
	v := BillView{Bill: *b}
	if d, ok := FormatDate(b.Date); ok {
		v.DisplayDate = d
	} else {
		v.DisplayDate = b.Date
	}
	v.DisplayStatus, _ = FormatStatus(b.Status)
	return v
}
