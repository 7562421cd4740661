// Package asset migrates locally referenced images to durable blob
// storage URLs so activities stay viewable across devices.
package asset

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"golang.org/x/image/draw"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	_ "image/gif"
	_ "image/png"

	"github.com/Perth00/wanderplan-sync/internal/blob"
	syncerrors "github.com/Perth00/wanderplan-sync/internal/errors"
)

const (
	// MaxDimension is the largest width or height an uploaded activity
	// image may have; bigger images are downscaled preserving aspect.
	MaxDimension = 1024

	// ActivityQuality is the JPEG quality for activity images.
	ActivityQuality = 70

	// ProfileQuality is the JPEG quality for profile images.
	ProfileQuality = 75

	// MaxEncodedBytes is the hard payload cap; encodings above it are
	// rejected and the entity syncs without an image.
	MaxEncodedBytes = 2 << 20 // 2 MiB

	// maxSlugLen bounds the sanitized-title portion of a blob key.
	maxSlugLen = 40
)

// Migrator turns local image references into remote blob URLs.
type Migrator struct {
	blobs  blob.Store
	loader Loader
	logger *slog.Logger

	// now is the key timestamp source, injectable for tests.
	now func() time.Time

	// maxBytes is the encoded payload cap, injectable for tests.
	maxBytes int
}

// New creates a Migrator. A nil loader gets the default strategy chain.
func New(blobs blob.Store, loader Loader, logger *slog.Logger) *Migrator {
	if loader == nil {
		loader = DefaultLoader(nil)
	}

	return &Migrator{
		blobs:    blobs,
		loader:   loader,
		logger:   logger,
		now:      time.Now,
		maxBytes: MaxEncodedBytes,
	}
}

// MigrateActivityImage resolves an activity's image reference to a
// remote URL. Already-remote URLs pass through unchanged; empty
// references yield an empty URL. Any load, decode or upload failure is
// returned to the caller, which degrades to syncing the activity
// without an image.
func (m *Migrator) MigrateActivityImage(ctx context.Context, ref, title string) (string, error) {
	if ref == "" {
		return "", nil
	}

	if m.blobs.IsRemote(ref) {
		return ref, nil
	}

	key := fmt.Sprintf("activity_images/%s_%d.jpg", slug(title), m.now().UnixMilli())

	return m.migrate(ctx, ref, key, ActivityQuality)
}

// MigrateProfileImage resolves a profile image reference to a remote
// URL using the given JPEG quality (call sites use 65-80).
func (m *Migrator) MigrateProfileImage(ctx context.Context, ref, accountID string, quality int) (string, error) {
	if ref == "" {
		return "", nil
	}

	if m.blobs.IsRemote(ref) {
		return ref, nil
	}

	key := fmt.Sprintf("profile_images/%s_%d.jpg", accountID, m.now().UnixMilli())

	return m.migrate(ctx, ref, key, quality)
}

func (m *Migrator) migrate(ctx context.Context, ref, key string, quality int) (string, error) {
	data, err := m.loader.Load(ctx, ref)
	if err != nil {
		return "", syncerrors.Wrap(syncerrors.KindDecode, err)
	}

	encoded, err := process(data, quality, m.maxBytes)
	if err != nil {
		return "", err
	}

	url, err := m.blobs.Put(ctx, key, encoded)
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}

	m.logger.Debug("image migrated",
		slog.String("key", key),
		slog.Int("bytes", len(encoded)),
	)

	return url, nil
}

// process decodes an image, downscales it to fit MaxDimension and
// re-encodes it as JPEG at the given quality. Encodings larger than
// maxBytes are rejected.
func process(data []byte, quality, maxBytes int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", syncerrors.ErrImageDecode, err)
	}

	src = downscale(src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encoding jpeg: %w", err)
	}

	if buf.Len() > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", syncerrors.ErrImageTooLarge, buf.Len())
	}

	return buf.Bytes(), nil
}

// downscale shrinks img so neither dimension exceeds MaxDimension,
// preserving aspect ratio with the larger-dimension-constrained factor
// min(max/width, max/height). Images already within bounds are
// returned as-is.
func downscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if w <= MaxDimension && h <= MaxDimension {
		return img
	}

	scale := min(float64(MaxDimension)/float64(w), float64(MaxDimension)/float64(h))
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)

	return dst
}

// slug sanitizes a title for use in a blob key: diacritics stripped,
// lowercased, runs of non-alphanumerics collapsed to single
// underscores, capped at maxSlugLen.
func slug(title string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		title,
	)
	if err != nil {
		stripped = title
	}

	var b strings.Builder

	lastUnderscore := true // suppress a leading underscore
	for _, r := range strings.ToLower(stripped) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteByte('_')
			lastUnderscore = true
		}

		if b.Len() >= maxSlugLen {
			break
		}
	}

	s := strings.Trim(b.String(), "_")
	if s == "" {
		return "image"
	}

	return s
}
