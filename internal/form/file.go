package form

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxPreviewBytes caps the size of files turned into data URL previews.
const MaxPreviewBytes = 2 << 20

// FileInput holds the selected file of a file control and, for images, its preview.
type FileInput struct {
	Image    bool
	OnChange func(*multipart.FileHeader)

	header  *multipart.FileHeader
	mime    string
	preview string
}

// Read takes the selected file, hands it to OnChange and builds the preview.
func (f *FileInput) Read(h *multipart.FileHeader) error {
	if h == nil {
		return errors.New("no file selected")
	}
	file, err := h.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", h.Filename, err)
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, MaxPreviewBytes+1))
	if err != nil {
		return fmt.Errorf("read %s: %w", h.Filename, err)
	}
	f.header = h
	f.mime = mimetype.Detect(raw).String()
	f.preview = ""
	if f.Image && strings.HasPrefix(f.mime, "image/") && len(raw) <= MaxPreviewBytes {
		f.preview = "data:" + f.mime + ";base64," + base64.StdEncoding.EncodeToString(raw)
	}
	if f.OnChange != nil {
		f.OnChange(h)
	}
	return nil
}

func (f *FileInput) File() *multipart.FileHeader { return f.header }

func (f *FileInput) MIME() string { return f.mime }

// Preview is the image data URL, empty for non-images.
func (f *FileInput) Preview() string { return f.preview }

// Clear drops the selection and the preview.
func (f *FileInput) Clear() {
	f.header = nil
	f.mime = ""
	f.preview = ""
}
