// Package videoexport encodes frames into image files and persists them
// through a Sink.
package videoexport

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	"github.com/tauraamui/longshot/pkg/video/videobackend"
	"github.com/tauraamui/longshot/pkg/video/videoerr"
	"github.com/tauraamui/longshot/pkg/video/videoframe"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

const DefaultJPEGQuality = 90

// FormatFromName picks an encoding from a file name's extension.
func FormatFromName(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	default:
		return "", videoerr.Encode("no image format for file name %q", name)
	}
}

// Lossless reports whether decoding the encoded bytes gives back the exact pixels.
func (f Format) Lossless() bool {
	return f != JPEG
}

// ToImage copies a frame's pixels into a Go image.
func ToImage(frame videoframe.Frame) (image.Image, error) {
	mat, err := videobackend.MatRef(frame)
	if err != nil {
		return nil, err
	}
	if mat.Empty() {
		return nil, videoerr.Precondition("cannot convert empty frame to image")
	}
	img, err := mat.ToImage()
	if err != nil {
		return nil, videoerr.Encode("unable to convert frame to image: %v", err)
	}
	return img, nil
}

func Encode(img image.Image, format Format, quality int) ([]byte, error) {
	var (
		buf bytes.Buffer
		err error
	)
	switch format {
	case PNG:
		err = png.Encode(&buf, img)
	case JPEG:
		if quality <= 0 {
			quality = DefaultJPEGQuality
		}
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	case BMP:
		err = bmp.Encode(&buf, img)
	case TIFF:
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return nil, videoerr.Encode("unsupported image format %q", format)
	}
	if err != nil {
		return nil, videoerr.Encode("unable to encode %s: %v", format, err)
	}
	return buf.Bytes(), nil
}

// Decode reads back any image Encode can produce.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, videoerr.Encode("unable to decode image: %v", err)
	}
	return img, nil
}

// Thumbnail scales img down to width keeping its aspect ratio. Images
// already narrower than width are returned untouched.
func Thumbnail(img image.Image, width int) image.Image {
	if width <= 0 || img.Bounds().Dx() <= width {
		return img
	}
	return resize.Resize(uint(width), 0, img, resize.Lanczos3)
}

type Exporter struct {
	sink        Sink
	jpegQuality int
}

func New(sink Sink, jpegQuality int) *Exporter {
	return &Exporter{sink: sink, jpegQuality: jpegQuality}
}

func (e *Exporter) Sink() Sink { return e.sink }

// WriteImage encodes img in the format implied by name and stores it.
// It returns the stored location and the encoded bytes.
func (e *Exporter) WriteImage(ctx context.Context, img image.Image, name string) (string, []byte, error) {
	format, err := FormatFromName(name)
	if err != nil {
		return "", nil, err
	}
	data, err := Encode(img, format, e.jpegQuality)
	if err != nil {
		return "", nil, err
	}
	if err := e.sink.Write(ctx, name, data); err != nil {
		return "", nil, err
	}
	return e.sink.Location(name), data, nil
}

func (e *Exporter) WriteFrame(ctx context.Context, frame videoframe.Frame, name string) (string, error) {
	img, err := ToImage(frame)
	if err != nil {
		return "", err
	}
	location, _, err := e.WriteImage(ctx, img, name)
	return location, err
}

func (e *Exporter) Remove(ctx context.Context, name string) error {
	return e.sink.Remove(ctx, name)
}
