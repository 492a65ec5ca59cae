package helper

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const maxImageWidth = 1600

// ConvertImageToWebP decodes an uploaded JPEG/PNG/WebP, downscales it to at
// most maxImageWidth and re-encodes it as lossy WebP.
func ConvertImageToWebP(fileHeader *multipart.FileHeader) ([]byte, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		// retry as webp; image.Decode only knows jpeg/png here
		if _, seekErr := src.Seek(0, 0); seekErr == nil {
			img, err = webp.Decode(src)
		}
		if err != nil {
			return nil, fmt.Errorf("unsupported image format: %w", err)
		}
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: 85}); err != nil {
		return nil, fmt.Errorf("webp encode failed: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveImageLocally writes the converted image under uploadDir and returns the
// public URL path for it.
func SaveImageLocally(uploadDir, folder, originalName string, data []byte) (string, error) {
	filename := GenerateUniqueFilename(folder, originalName)
	fullPath := filepath.Join(uploadDir, filename)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return "/uploads/" + filepath.ToSlash(filename), nil
}

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	return filenameSanitizer.ReplaceAllString(filename, "_")
}

// GenerateUniqueFilename builds "<folder>/<ts>_<uuid>_<name>.webp".
func GenerateUniqueFilename(folder, original string) string {
	base := strings.TrimSuffix(sanitizeFilename(filepath.Base(original)), filepath.Ext(original))
	return fmt.Sprintf("%s/%d_%s_%s.webp", folder, time.Now().Unix(), uuid.NewString()[:8], base)
}
