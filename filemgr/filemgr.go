// Package filemgr stores uploaded product photos and derives their
// thumbnails.
package filemgr

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// PhotoDir holds originals, ThumbDir the derived jpegs; both are served
	// under /static.
	PhotoDir = "static/productpic"
	ThumbDir = "static/productpic/thumb"

	thumbWidth  = 200
	maxFileSize = 10 << 20
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

var allowedMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// SaveProductImage validates and stores one uploaded photo, generates a
// 200px-wide thumbnail, and returns both stored filenames.
func SaveProductImage(file multipart.File, header *multipart.FileHeader) (imageName, thumbName string, err error) {
	if header.Size > maxFileSize {
		return "", "", fmt.Errorf("file too large")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", "", fmt.Errorf("unsupported file extension %q", ext)
	}
	if mime := header.Header.Get("Content-Type"); mime != "" && !allowedMIMEs[mime] {
		return "", "", fmt.Errorf("unsupported content type %q", mime)
	}

	img, _, err := image.Decode(file)
	if err != nil {
		return "", "", fmt.Errorf("decode image: %w", err)
	}

	base := uuid.New().String()
	imageName = base + ext
	thumbName = base + ".jpg"

	if err := os.MkdirAll(PhotoDir, 0o755); err != nil {
		return "", "", fmt.Errorf("mkdir %s: %w", PhotoDir, err)
	}
	if err := writeJPEG(filepath.Join(PhotoDir, base+".jpg"), img, 92); err != nil {
		return "", "", err
	}
	imageName = base + ".jpg"

	if err := os.MkdirAll(ThumbDir, 0o755); err != nil {
		return "", "", fmt.Errorf("mkdir %s: %w", ThumbDir, err)
	}
	resized := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos) // maintain aspect ratio
	if err := writeJPEG(filepath.Join(ThumbDir, thumbName), resized, 85); err != nil {
		return "", "", err
	}

	return imageName, thumbName, nil
}

func writeJPEG(path string, img image.Image, quality int) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
