package container

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/expense-bills/internal/application/service"
	"github.com/garyjia/expense-bills/internal/config"
	"github.com/garyjia/expense-bills/internal/domain/entity"
	"github.com/garyjia/expense-bills/internal/format"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Database: config.DatabaseConfig{
			Path:         filepath.Join(dir, "nested", "bills.db"),
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		},
		Storage: config.StorageConfig{ReceiptDir: filepath.Join(dir, "receipts")},
	}
}

func TestNew_RequiresArguments(t *testing.T) {
	_, err := New(nil, zap.NewNop())
	assert.Error(t, err)

	_, err = New(testConfig(t), nil)
	assert.Error(t, err)
}

func TestContainer_WiresBillService(t *testing.T) {
	c, err := New(testConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	user := entity.User{Type: entity.UserTypeEmployee, Email: "a@a"}
	jpeg := []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")

	upload, err := c.Bills().UploadReceipt(ctx, user, &format.UploadCandidate{Name: "facture.jpg", Type: "image/jpeg", Size: int64(len(jpeg))}, jpeg)
	require.NoError(t, err)

	_, err = c.Bills().SubmitBill(ctx, user, serviceInput(upload.Key))
	require.NoError(t, err)

	views, err := c.Bills().ListBills(ctx, user, service.ListOptions{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "10 Nov. 21", views[0].DisplayDate)

	var buf bytes.Buffer
	require.NoError(t, c.Exporter().WriteBills(&buf, views))
	assert.NotZero(t, buf.Len())
}

func TestContainer_CloseTwice(t *testing.T) {
	c, err := New(testConfig(t), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, c.Close())
	assert.Error(t, c.Close())
}

func serviceInput(key string) service.SubmitBillInput {
	return service.SubmitBillInput{Key: key, Name: "train", Amount: 120, Date: "2021-11-10"}
}
