package format

import "github.com/garyjia/expense-bills/internal/domain/entity"

// FormatStatus maps a bill status code to its label. Unknown codes have no
// label and return false.
func FormatStatus(status string) (string, bool) {
	switch status {
	case entity.BillStatusPending:
		return "En attente", true
	case entity.BillStatusAccepted:
		return "Accepté", true
	case entity.BillStatusRefused:
		// Kept in English; the other two labels are French.
		return "Refused", true
	}
	return "", false
}
