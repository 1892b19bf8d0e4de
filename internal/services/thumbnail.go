package services

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
)

// Thumbnail is an encoded image ready to be stored.
type Thumbnail struct {
	Data        []byte
	Format      string
	ContentType string
	Extension   string
	Width       int
	Height      int
}

// FitSize scales (w, h) down so that both sides are at most bound, keeping
// the aspect ratio. Sizes already within bounds are returned unchanged.
func FitSize(w, h, bound int) (int, int) {
	if w <= bound && h <= bound {
		return w, h
	}
	if w >= h {
		nh := int(math.Round(float64(h) * float64(bound) / float64(w)))
		if nh < 1 {
			nh = 1
		}
		return bound, nh
	}
	nw := int(math.Round(float64(w) * float64(bound) / float64(h)))
	if nw < 1 {
		nw = 1
	}
	return nw, bound
}

// ThumbnailLimits bounds the work done for one upload. Bound is the longest
// side of the stored image; MaxPixels and MaxBytes cap what is accepted
// before any pixel data is decoded.
type ThumbnailLimits struct {
	Bound     int
	MaxPixels int64
	MaxBytes  int64
}

// MakeThumbnail decodes a JPEG, PNG or GIF image and, if either side exceeds
// the bound, resizes it to fit within bound×bound before re-encoding it in
// the source format. The declared dimensions are checked against MaxPixels
// before decoding.
func MakeThumbnail(r io.Reader, limits ThumbnailLimits) (*Thumbnail, error) {
	if limits.MaxBytes > 0 {
		r = io.LimitReader(r, limits.MaxBytes+1)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if limits.MaxBytes > 0 && int64(len(raw)) > limits.MaxBytes {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrImageTooLarge, limits.MaxBytes)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if cfg.Width < 1 || cfg.Height < 1 {
		return nil, fmt.Errorf("%w: empty image", ErrUnsupportedImage)
	}
	if limits.MaxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > limits.MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, limits.MaxPixels)
	}

	src, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	bounds := src.Bounds()
	w, h := FitSize(bounds.Dx(), bounds.Dy(), limits.Bound)

	img := src
	if w != bounds.Dx() || h != bounds.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
		img = dst
	}

	thumb := &Thumbnail{Format: format, Width: w, Height: h}
	var buf bytes.Buffer
	switch format {
	case "jpeg":
		thumb.ContentType, thumb.Extension = "image/jpeg", ".jpg"
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	case "png":
		thumb.ContentType, thumb.Extension = "image/png", ".png"
		err = png.Encode(&buf, img)
	case "gif":
		thumb.ContentType, thumb.Extension = "image/gif", ".gif"
		err = gif.Encode(&buf, img, nil)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s thumbnail: %w", format, err)
	}

	thumb.Data = buf.Bytes()
	return thumb, nil
}
