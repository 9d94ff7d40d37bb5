package storage

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/course-service/pkg/util"
)

func makeFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	require.Len(t, form.File["file"], 1)
	return form.File["file"][0]
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestDiskStore_Save(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewDiskStore(dir, 1024*1024)

	fh := makeFileHeader(t, "sample video.mp4", "video/mp4", []byte("mp4-bytes"))
	stored, err := store.Save(fh)
	require.NoError(t, err)

	assert.Equal(t, "sample video.mp4", stored.OriginalName)
	assert.Equal(t, "video/mp4", stored.MimeType)
	assert.Equal(t, int64(len("mp4-bytes")), stored.SizeBytes)
	assert.True(t, strings.HasSuffix(stored.StorageName, "-sample_video.mp4"))
	assert.True(t, store.Exists(stored.StorageName))

	content, err := os.ReadFile(filepath.Join(dir, stored.StorageName))
	require.NoError(t, err)
	assert.Equal(t, []byte("mp4-bytes"), content)
}

func TestDiskStore_Save_DistinctNamesForSameFilename(t *testing.T) {
	t.Parallel()

	store := NewDiskStore(t.TempDir(), 1024*1024)

	first, err := store.Save(makeFileHeader(t, "sample.mp4", "video/mp4", []byte("a")))
	require.NoError(t, err)
	second, err := store.Save(makeFileHeader(t, "sample.mp4", "video/mp4", []byte("b")))
	require.NoError(t, err)

	assert.NotEqual(t, first.StorageName, second.StorageName)
}

func TestDiskStore_Save_UnsupportedMediaType(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewDiskStore(dir, 1024*1024)

	tests := []struct {
		name     string
		mimeType string
	}{
		{name: "image", mimeType: "image/png"},
		{name: "text", mimeType: "text/plain"},
		{name: "empty", mimeType: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Save(makeFileHeader(t, "sample.mp4", tt.mimeType, []byte("data")))
			require.Error(t, err)

			var domainErr *apperrors.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", domainErr.Code)
		})
	}

	assert.Empty(t, dirEntries(t, dir), "rejected uploads must leave nothing on disk")
}

func TestDiskStore_Save_PayloadTooLarge(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewDiskStore(dir, 8)

	_, err := store.Save(makeFileHeader(t, "big.mp4", "video/mp4", []byte("more than eight bytes")))
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", domainErr.Code)
	assert.Empty(t, dirEntries(t, dir))
}

type failingReader struct {
	err error
}

func (r failingReader) Read([]byte) (int, error) {
	return 0, r.err
}

func TestDiskStore_WriteFile_RemovesPartialFileOnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewDiskStore(dir, 1024*1024)

	err := store.writeFile(failingReader{err: errors.New("stream reset")}, "broken.mp4")
	require.Error(t, err)
	assert.Empty(t, dirEntries(t, dir), "a failed copy must not leave a partial file")
}

func TestEnsureDirectory_Idempotent(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "uploads")
	require.NoError(t, EnsureDirectory(dir))
	require.NoError(t, EnsureDirectory(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
