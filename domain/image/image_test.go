package image

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pngBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="
	gifBase64 = "R0lGODlhAQABAAAAACw="
)

func newTestIngester(t *testing.T) *Ingester {
	t.Helper()
	in := NewIngester(Config{PublicDir: t.TempDir()})
	in.now = func() time.Time { return time.Unix(1700000000, 0) }
	return in
}

func TestValidate(t *testing.T) {
	in := newTestIngester(t)

	oversized := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, DefaultMaxBytes+1)...)

	tests := []struct {
		name    string
		value   string
		wantExt string
		wantErr error
	}{
		{name: "png", value: pngBase64, wantExt: "png"},
		{name: "png data uri", value: "data:image/png;base64," + pngBase64, wantExt: "png"},
		{name: "gif", value: gifBase64, wantExt: "gif"},
		{name: "plain text", value: base64.StdEncoding.EncodeToString([]byte("hello, world")), wantErr: ErrMimeNotAllowed},
		{name: "too large", value: base64.StdEncoding.EncodeToString(oversized), wantErr: ErrTooLarge},
		{name: "neither path nor base64", value: "storage/img/missing.png", wantErr: ErrNoValidFile},
		{name: "broken data uri", value: "data:image/png;base64,@@@", wantErr: ErrInvalidBase64},
		{name: "empty data uri", value: "data:image/png;base64,", wantErr: ErrInvalidBase64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := in.Validate(tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.False(t, p.Existing())
			assert.Equal(t, tt.wantExt, p.Ext)
			assert.NotEmpty(t, p.Data)
		})
	}
}

func TestStore_WritesRetrievablePath(t *testing.T) {
	in := newTestIngester(t)

	p, err := in.Validate(pngBase64)
	require.NoError(t, err)

	rel, err := in.Store(p)
	require.NoError(t, err)
	assert.Equal(t, "storage/img/1700000000.png", rel)
	assert.True(t, in.Exists(rel))

	data, err := os.ReadFile(filepath.Join(in.cfg.PublicDir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, p.Data, data)

	again, err := in.Validate(rel)
	require.NoError(t, err)
	assert.True(t, again.Existing(), "stored paths pass through")

	same, err := in.Store(again)
	require.NoError(t, err)
	assert.Equal(t, rel, same)
}

func TestStore_CollisionGetsSuffix(t *testing.T) {
	in := newTestIngester(t)
	p, err := in.Validate(gifBase64)
	require.NoError(t, err)

	first, err := in.Store(p)
	require.NoError(t, err)
	second, err := in.Store(p)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(second, "storage/img/1700000000-"))
	assert.True(t, strings.HasSuffix(second, ".gif"))
}

func TestExists_RefusesOutsideStorage(t *testing.T) {
	in := newTestIngester(t)
	require.NoError(t, os.WriteFile(filepath.Join(in.cfg.PublicDir, "secret.txt"), []byte("x"), 0o644))

	assert.False(t, in.Exists("secret.txt"))
	assert.False(t, in.Exists("storage/../secret.txt"))
	assert.False(t, in.Exists("/etc/passwd"))
	assert.False(t, in.Exists(""))
}

func TestRemove(t *testing.T) {
	in := newTestIngester(t)
	p, err := in.Validate(pngBase64)
	require.NoError(t, err)
	rel, err := in.Store(p)
	require.NoError(t, err)

	require.NoError(t, in.Remove(rel))
	assert.False(t, in.Exists(rel))
	assert.NoError(t, in.Remove(rel), "removing twice is fine")
}

func TestParseExtensions(t *testing.T) {
	got, err := ParseExtensions("image/jpeg=jpg, image/png=png")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"image/jpeg": "jpg", "image/png": "png"}, got)

	_, err = ParseExtensions("image/jpeg")
	assert.Error(t, err)

	_, err = ParseExtensions("")
	assert.Error(t, err)
}
