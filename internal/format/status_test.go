package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatStatus(t *testing.T) {
	tests := []struct {
		status string
		want   string
		wantOK bool
	}{
		{status: "pending", want: "En attente", wantOK: true},
		{status: "accepted", want: "Accepté", wantOK: true},
		{status: "refused", want: "Refused", wantOK: true},
		{status: "unknown", want: "", wantOK: false},
		{status: "", want: "", wantOK: false},
		{status: "Pending", want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got, ok := FormatStatus(tt.status)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)

			again, _ := FormatStatus(tt.status)
			assert.Equal(t, got, again)
		})
	}
}
