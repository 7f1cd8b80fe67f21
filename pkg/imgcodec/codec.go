package imgcodec

import (
	"fmt"
	"image"
	"io"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Decode reads a full image from r. The format hint comes from a prior
// Sniff; WebP has its own decoder, everything else goes through imaging.
func Decode(r io.Reader, format Format) (image.Image, error) {
	if format == FormatWebP {
		img, err := webp.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("decode webp: %w", err)
		}
		return img, nil
	}

	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	return img, nil
}

// Encodable reports whether f can be used as a conversion target.
func Encodable(f Format) bool {
	switch f {
	case FormatWebP, FormatJPEG, FormatPNG:
		return true
	default:
		return false
	}
}

// Encode writes img to w in the given format. Quality is the conventional
// 0-100 knob; PNG is lossless and ignores it.
func Encode(w io.Writer, img image.Image, format Format, quality int) error {
	switch format {
	case FormatWebP:
		return webp.Encode(w, img, &webp.Options{Quality: float32(quality)})
	case FormatJPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	case FormatPNG:
		return imaging.Encode(w, img, imaging.PNG)
	default:
		return fmt.Errorf("no encoder for %s", format)
	}
}
