package format

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/expense-bills/internal/domain/entity"
)

func fixtureBills() []*entity.Bill {
	return []*entity.Bill{
		{ID: "47qAXb6fIm2zOKkLzMro", Name: "encore", Date: "2004-04-04", Status: "pending"},
		{ID: "BeKy5Mo4jkmdfPGYpTxZ", Name: "test1", Date: "2001-01-01", Status: "refused"},
		{ID: "UIUZtnPQvnbFnB0ozvJh", Name: "test3", Date: "2003-03-03", Status: "accepted"},
		{ID: "qcCK3SzECmaZAGRrHjaC", Name: "test2", Date: "2002-02-02", Status: "refused"},
	}
}

func TestFormatBills_NewestFirst(t *testing.T) {
	bills := fixtureBills()

	views := FormatBills(bills)
	require.Len(t, views, len(bills))

	raw := make([]string, len(views))
	for i, v := range views {
		raw[i] = v.Date
	}
	assert.True(t, sort.SliceIsSorted(raw, func(i, j int) bool { return raw[i] > raw[j] }))

	assert.Equal(t, "4 Avr. 04", views[0].DisplayDate)
	assert.Equal(t, "En attente", views[0].DisplayStatus)
	assert.Equal(t, "1 Jan. 01", views[3].DisplayDate)
	assert.Equal(t, "Refused", views[3].DisplayStatus)
}

func TestFormatBills_DoesNotTouchInput(t *testing.T) {
	bills := fixtureBills()
	before := make([]entity.Bill, len(bills))
	for i, b := range bills {
		before[i] = *b
	}

	FormatBills(bills)

	for i, b := range bills {
		assert.Equal(t, before[i], *b)
	}
}

func TestFormatBills_KeepsUnformattableDate(t *testing.T) {
	views := FormatBills([]*entity.Bill{
		{ID: "a", Date: "not-a-date", Status: "pending"},
		nil,
		{ID: "b", Date: "2021-11-10", Status: "mystery"},
	})

	require.Len(t, views, 2)
	assert.Equal(t, "not-a-date", views[0].DisplayDate)
	assert.Equal(t, "10 Nov. 21", views[1].DisplayDate)
	assert.Empty(t, views[1].DisplayStatus)
}

func TestFormatBills_Empty(t *testing.T) {
	assert.Empty(t, FormatBills(nil))
}
