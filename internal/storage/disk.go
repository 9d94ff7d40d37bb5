package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/course-service/pkg/util"
)

// allowedMimeTypes is the fixed allow-set for uploaded media.
var allowedMimeTypes = map[string]struct{}{
	"video/mp4":  {},
	"video/webm": {},
}

// StoredFile describes a blob accepted by the validator and written to disk.
type StoredFile struct {
	StorageName  string
	OriginalName string
	MimeType     string
	SizeBytes    int64
}

// DiskStore validates and persists uploaded media under a flat directory.
type DiskStore struct {
	dir         string
	maxFileSize int64
}

// EnsureDirectory idempotently creates the upload directory.
func EnsureDirectory(path string) error {
	return os.MkdirAll(path, 0o755)
}

// NewDiskStore builds a store rooted at dir with a per-file byte ceiling.
func NewDiskStore(dir string, maxFileSize int64) *DiskStore {
	return &DiskStore{dir: dir, maxFileSize: maxFileSize}
}

// Dir returns the upload root.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save inspects the file part and, if the declared media type is allowed and
// the size is within the ceiling, writes it to the upload directory under a
// collision-checked storage name. Rejected parts leave nothing on disk.
func (s *DiskStore) Save(fh *multipart.FileHeader) (*StoredFile, error) {
	mimeType := fh.Header.Get("Content-Type")
	if _, ok := allowedMimeTypes[mimeType]; !ok {
		return nil, apperrors.NewUnsupportedMediaType(mimeType)
	}
	if fh.Size > s.maxFileSize {
		return nil, apperrors.NewPayloadTooLarge(s.maxFileSize)
	}

	name, err := s.storageName(fh.Filename)
	if err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload part: %w", err)
	}
	defer src.Close()

	if err := s.writeFile(src, name); err != nil {
		return nil, err
	}

	return &StoredFile{
		StorageName:  name,
		OriginalName: fh.Filename,
		MimeType:     mimeType,
		SizeBytes:    fh.Size,
	}, nil
}

// writeFile copies the part to its storage name, removing the partial file if
// the copy fails mid-write.
func (s *DiskStore) writeFile(src io.Reader, name string) error {
	path := filepath.Join(s.dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write %s: %w", name, err)
	}
	return dst.Close()
}

// Exists reports whether a storage name resolves to a file under the root.
func (s *DiskStore) Exists(name string) bool {
	info, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil && !info.IsDir()
}

// storageName assigns a uuid-prefixed name derived from the original filename,
// retrying on the off chance the generated name already exists.
func (s *DiskStore) storageName(original string) (string, error) {
	base := sanitizeFilename(original)
	for attempt := 0; attempt < 5; attempt++ {
		name := uuid.NewString() + "-" + base
		if _, err := os.Stat(filepath.Join(s.dir, name)); os.IsNotExist(err) {
			return name, nil
		}
	}
	return "", fmt.Errorf("could not assign a unique storage name for %q", original)
}

func sanitizeFilename(original string) string {
	base := filepath.Base(original)
	base = strings.ReplaceAll(base, " ", "_")
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "upload"
	}
	return base
}
