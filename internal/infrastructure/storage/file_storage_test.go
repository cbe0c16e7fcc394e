package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalFileStorage_SaveAndRead(t *testing.T) {
	tempDir := t.TempDir()
	fs := NewLocalFileStorage(tempDir, zap.NewNop())
	ctx := context.Background()

	t.Run("saves and reads back", func(t *testing.T) {
		content := []byte("jpeg bytes")
		require.NoError(t, fs.Save(ctx, "a_at_a/key-invoice.jpeg", content))
		assert.FileExists(t, filepath.Join(tempDir, "a_at_a", "key-invoice.jpeg"))

		got, err := fs.Read(ctx, "a_at_a/key-invoice.jpeg")
		require.NoError(t, err)
		assert.Equal(t, content, got)
		assert.True(t, fs.Exists(ctx, "a_at_a/key-invoice.jpeg"))
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		require.NoError(t, fs.Save(ctx, "x/file.png", []byte("original")))
		require.NoError(t, fs.Save(ctx, "x/file.png", []byte("updated")))

		content, err := os.ReadFile(filepath.Join(tempDir, "x", "file.png"))
		require.NoError(t, err)
		assert.Equal(t, []byte("updated"), content)
	})

	t.Run("read missing file", func(t *testing.T) {
		_, err := fs.Read(ctx, "nope.png")
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.False(t, fs.Exists(ctx, "nope.png"))
	})
}

func TestLocalFileStorage_RejectsEscapes(t *testing.T) {
	fs := NewLocalFileStorage(t.TempDir(), zap.NewNop())
	ctx := context.Background()

	for _, p := range []string{"../outside.png", "../../etc/passwd", "a/../../b.png", ""} {
		t.Run(p, func(t *testing.T) {
			err := fs.Save(ctx, p, []byte("x"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "escapes base directory")
		})
	}
}

func TestLocalFileStorage_Delete(t *testing.T) {
	fs := NewLocalFileStorage(t.TempDir(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, fs.Save(ctx, "d/file.png", []byte("x")))
	require.NoError(t, fs.Delete(ctx, "d/file.png"))
	assert.False(t, fs.Exists(ctx, "d/file.png"))

	// idempotent
	assert.NoError(t, fs.Delete(ctx, "d/file.png"))
}

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"invoice.jpeg":     "invoice.jpeg",
		"my receipt!.png":  "myreceipt.png",
		"..\\..\\evil.png": "evil.png",
		"facture été.jpg":  "facturet.jpg",
		"a@a":              "a_at_a",
		"///":              "file",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeName(in), in)
	}
}
