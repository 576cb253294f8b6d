package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

var (
	ErrTooManyImages    = errors.New("too many images")
	ErrUnsupportedType  = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image too large")
	allowedContentTypes = map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
)

// Store keeps uploaded images on local disk and serves them under URLPrefix.
type Store struct {
	Dir       string
	URLPrefix string
	MaxImages int
	MaxBytes  int64
	MaxWidth  uint
	// MaxPixels caps width*height of images that get decoded for resizing
	MaxPixels int64
}

// Default is the store the handlers write to; main replaces it from config.
var Default = NewStore("uploads", 5, 1280)

func NewStore(dir string, maxImages int, maxWidth uint) *Store {
	return &Store{
		Dir:       dir,
		URLPrefix: "/uploads",
		MaxImages: maxImages,
		MaxBytes:  5 << 20,
		MaxWidth:  maxWidth,
		MaxPixels: 40_000_000,
	}
}

type pendingImage struct {
	data []byte
	ext  string
}

// SaveImages validates every file before writing any of them and returns
// the public URLs in upload order.
func (s *Store) SaveImages(subdir string, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}
	if s.MaxImages > 0 && len(files) > s.MaxImages {
		return nil, fmt.Errorf("%w: got %d, limit is %d", ErrTooManyImages, len(files), s.MaxImages)
	}

	pending := make([]pendingImage, 0, len(files))
	for _, fh := range files {
		img, err := s.prepare(fh)
		if err != nil {
			return nil, err
		}
		pending = append(pending, img)
	}

	dir := filepath.Join(s.Dir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	urls := make([]string, 0, len(pending))
	for _, p := range pending {
		name := uuid.NewString() + p.ext
		if err := os.WriteFile(filepath.Join(dir, name), p.data, 0o644); err != nil {
			s.Remove(urls)
			return nil, fmt.Errorf("write image: %w", err)
		}
		urls = append(urls, path.Join(s.URLPrefix, subdir, name))
	}
	return urls, nil
}

func (s *Store) prepare(fh *multipart.FileHeader) (pendingImage, error) {
	if s.MaxBytes > 0 && fh.Size > s.MaxBytes {
		return pendingImage{}, fmt.Errorf("%w: %s", ErrImageTooLarge, fh.Filename)
	}
	f, err := fh.Open()
	if err != nil {
		return pendingImage{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	limit := s.MaxBytes
	if limit <= 0 {
		limit = 5 << 20
	}
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return pendingImage{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return pendingImage{}, fmt.Errorf("%w: %s", ErrImageTooLarge, fh.Filename)
	}

	mtype := mimetype.Detect(data)
	if !allowedContentTypes[mtype.String()] {
		return pendingImage{}, fmt.Errorf("%w: %s is %s", ErrUnsupportedType, fh.Filename, mtype.String())
	}

	data, err = s.shrink(data, mtype.String())
	if err != nil {
		return pendingImage{}, err
	}
	return pendingImage{data: data, ext: mtype.Extension()}, nil
}

// shrink downsizes jpeg and png images wider than MaxWidth; other formats pass through
func (s *Store) shrink(data []byte, contentType string) ([]byte, error) {
	if s.MaxWidth == 0 || (contentType != "image/jpeg" && contentType != "image/png") {
		return data, nil
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}
	// the header is tiny but a full decode allocates width*height*4 bytes
	if s.MaxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > s.MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, s.MaxPixels)
	}
	if uint(cfg.Width) <= s.MaxWidth {
		return data, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}
	dst := resize.Resize(s.MaxWidth, 0, src, resize.Lanczos3)

	var buf bytes.Buffer
	if contentType == "image/png" {
		err = png.Encode(&buf, dst)
	} else {
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return nil, fmt.Errorf("encode resized image: %w", err)
	}
	return buf.Bytes(), nil
}

// Remove deletes previously saved images by URL; unknown paths are ignored.
func (s *Store) Remove(urls []string) {
	for _, u := range urls {
		rel := strings.TrimPrefix(u, s.URLPrefix)
		if rel == u {
			continue
		}
		_ = os.Remove(filepath.Join(s.Dir, filepath.FromSlash(rel)))
	}
}
