package media

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func fileHeaders(t *testing.T, files map[string][]byte) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, data := range files {
		part, err := mw.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["images"]
}

func TestSaveImages_WritesAndResizes(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 3, 100)

	urls, err := store.SaveImages("ratings", fileHeaders(t, map[string][]byte{
		"big.png": pngBytes(t, 400, 50),
	}))
	require.NoError(t, err)
	require.Len(t, urls, 1)
	require.True(t, strings.HasPrefix(urls[0], "/uploads/ratings/"))
	require.True(t, strings.HasSuffix(urls[0], ".png"))

	saved, err := os.ReadFile(filepath.Join(dir, "ratings", filepath.Base(urls[0])))
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(saved))
	require.NoError(t, err)
	require.Equal(t, 100, cfg.Width)

	store.Remove(urls)
	_, err = os.Stat(filepath.Join(dir, "ratings", filepath.Base(urls[0])))
	require.True(t, os.IsNotExist(err))
}

func TestSaveImages_RejectsNonImages(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 3, 100)

	_, err := store.SaveImages("contacts", fileHeaders(t, map[string][]byte{
		"notes.txt": []byte("definitely not a picture"),
	}))
	require.True(t, errors.Is(err, ErrUnsupportedType))

	entries, _ := os.ReadDir(dir)
	require.Empty(t, entries)
}

func TestSaveImages_Limit(t *testing.T) {
	store := NewStore(t.TempDir(), 1, 0)
	_, err := store.SaveImages("x", fileHeaders(t, map[string][]byte{
		"a.png": pngBytes(t, 2, 2),
		"b.png": pngBytes(t, 2, 2),
	}))
	require.ErrorIs(t, err, ErrTooManyImages)
}

func TestSaveImages_Empty(t *testing.T) {
	urls, err := NewStore(t.TempDir(), 1, 0).SaveImages("x", nil)
	require.NoError(t, err)
	require.Empty(t, urls)
}

// hugeHeaderPNG rewrites the IHDR of a 1x1 png so it claims w x h pixels
func hugeHeaderPNG(t *testing.T, w, h uint32) []byte {
	t.Helper()
	data := pngBytes(t, 1, 1)
	require.Equal(t, "IHDR", string(data[12:16]))
	binary.BigEndian.PutUint32(data[16:20], w)
	binary.BigEndian.PutUint32(data[20:24], h)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func TestSaveImages_RejectsHugeDimensions(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 3, 640)

	bomb := hugeHeaderPNG(t, 100_000, 100_000)
	cfg, err := png.DecodeConfig(bytes.NewReader(bomb))
	require.NoError(t, err)
	require.Equal(t, 100_000, cfg.Width)

	_, err = store.SaveImages("ratings", fileHeaders(t, map[string][]byte{"bomb.png": bomb}))
	require.ErrorIs(t, err, ErrImageTooLarge)

	entries, _ := os.ReadDir(dir)
	require.Empty(t, entries)
}

func TestSaveImages_PixelCap(t *testing.T) {
	store := NewStore(t.TempDir(), 3, 100)
	store.MaxPixels = 10_000

	_, err := store.SaveImages("x", fileHeaders(t, map[string][]byte{"wide.png": pngBytes(t, 200, 200)}))
	require.ErrorIs(t, err, ErrImageTooLarge)

	urls, err := store.SaveImages("x", fileHeaders(t, map[string][]byte{"small.png": pngBytes(t, 50, 50)}))
	require.NoError(t, err)
	require.Len(t, urls, 1)
}
