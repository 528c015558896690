// Package image validates inbound base64 images and stores them under the
// public content directory.
package image

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// StorageDir is the public sub-directory served as /storage.
const StorageDir = "storage"

// imageDir is where ingested images are written, relative to StorageDir.
const imageDir = "img"

// DefaultMaxBytes is the largest decoded payload accepted.
const DefaultMaxBytes = 400000

var (
	// ErrNoValidFile is returned when the value is neither a stored path nor base64.
	ErrNoValidFile = errors.New("no valid existing file")
	// ErrInvalidBase64 is returned when a data URI or payload fails to decode.
	ErrInvalidBase64 = errors.New("not a valid base64 payload")
	// ErrMimeNotAllowed is returned when the decoded bytes are not an allowed image type.
	ErrMimeNotAllowed = errors.New("file type is not allowed")
	// ErrTooLarge is returned when the decoded payload exceeds the size limit.
	ErrTooLarge = errors.New("file is too large")
)

var dataURIPrefix = regexp.MustCompile(`^data:[^;,]*;base64,`)

// DefaultExtensions maps each accepted MIME type to the stored file extension.
func DefaultExtensions() map[string]string {
	return map[string]string{
		"image/jpeg": "jpg",
		"image/png":  "png",
		"image/gif":  "gif",
	}
}

// ParseExtensions reads a "mime=ext,mime=ext" allow-list.
func ParseExtensions(s string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		mime, ext, ok := strings.Cut(pair, "=")
		mime, ext = strings.TrimSpace(mime), strings.TrimSpace(ext)
		if !ok || mime == "" || ext == "" {
			return nil, fmt.Errorf("invalid extension mapping %q", pair)
		}
		out[mime] = ext
	}
	if len(out) == 0 {
		return nil, errors.New("extension allow-list is empty")
	}
	return out, nil
}

// Config configures an Ingester.
type Config struct {
	PublicDir  string
	MaxBytes   int
	Extensions map[string]string
}

// Payload is a validated photo value ready to be stored.
// Exactly one of Path or Data is set.
type Payload struct {
	Path string
	Data []byte
	Ext  string
}

// Existing reports whether p refers to an already stored file.
func (p Payload) Existing() bool {
	return p.Path != ""
}

// Ingester validates and stores images.
type Ingester struct {
	cfg Config
	now func() time.Time
}

// NewIngester creates an Ingester, filling unset limits with defaults.
func NewIngester(cfg Config) *Ingester {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultExtensions()
	}
	return &Ingester{cfg: cfg, now: time.Now}
}

// MaxBytes is the decoded size limit.
func (in *Ingester) MaxBytes() int {
	return in.cfg.MaxBytes
}

// StorageRoot is the directory served under /storage.
func (in *Ingester) StorageRoot() string {
	return filepath.Join(in.cfg.PublicDir, StorageDir)
}

// Validate checks value. A stored path passes through unchanged; anything
// else must be a base64 image of an allowed type within the size limit.
func (in *Ingester) Validate(value string) (Payload, error) {
	if in.Exists(value) {
		return Payload{Path: value}, nil
	}

	payload := value
	hadPrefix := false
	if loc := dataURIPrefix.FindStringIndex(value); loc != nil {
		payload = value[loc[1]:]
		hadPrefix = true
	}

	data, err := base64.StdEncoding.Strict().DecodeString(payload)
	if err != nil {
		if hadPrefix {
			return Payload{}, ErrInvalidBase64
		}
		return Payload{}, ErrNoValidFile
	}
	if len(data) == 0 {
		return Payload{}, ErrInvalidBase64
	}

	ext, ok := in.extension(data)
	if !ok {
		return Payload{}, ErrMimeNotAllowed
	}
	if len(data) > in.cfg.MaxBytes {
		return Payload{}, ErrTooLarge
	}
	return Payload{Data: data, Ext: ext}, nil
}

// extension walks the detected MIME type and its parents against the allow-list.
func (in *Ingester) extension(data []byte) (string, bool) {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if ext, ok := in.cfg.Extensions[m.String()]; ok {
			return ext, true
		}
	}
	return "", false
}

// Store writes p into the image directory and returns its public relative path.
// Existing payloads are returned unchanged.
func (in *Ingester) Store(p Payload) (string, error) {
	if p.Existing() {
		return p.Path, nil
	}

	dir := filepath.Join(in.StorageRoot(), imageDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}

	stamp := in.now().Unix()
	name := fmt.Sprintf("%d.%s", stamp, p.Ext)
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		name = fmt.Sprintf("%d-%s.%s", stamp, uuid.NewString()[:8], p.Ext)
		f, err = os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	if _, err := f.Write(p.Data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close image: %w", err)
	}
	return path.Join(StorageDir, imageDir, name), nil
}

// Exists reports whether rel names a regular file inside the storage directory.
func (in *Ingester) Exists(rel string) bool {
	full, ok := in.resolve(rel)
	if !ok {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && info.Mode().IsRegular()
}

// Remove deletes a stored file. Missing files are not an error.
func (in *Ingester) Remove(rel string) error {
	full, ok := in.resolve(rel)
	if !ok {
		return nil
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove image: %w", err)
	}
	return nil
}

// resolve maps a public relative path to the filesystem, refusing anything
// outside the storage directory.
func (in *Ingester) resolve(rel string) (string, bool) {
	if rel == "" || len(rel) > 255 {
		return "", false
	}
	local := filepath.FromSlash(rel)
	if !filepath.IsLocal(local) {
		return "", false
	}
	first, _, _ := strings.Cut(filepath.ToSlash(filepath.Clean(local)), "/")
	if first != StorageDir {
		return "", false
	}
	return filepath.Join(in.cfg.PublicDir, local), true
}
