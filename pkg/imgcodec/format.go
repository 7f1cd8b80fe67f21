package imgcodec

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Format is a canonical MIME tag derived from file content, never from the
// file name.
type Format string

const (
	FormatUnknown Format = ""
	FormatJPEG    Format = "image/jpeg"
	FormatPNG     Format = "image/png"
	FormatGIF     Format = "image/gif"
	FormatWebP    Format = "image/webp"
	FormatTIFF    Format = "image/tiff"
	FormatBMP     Format = "image/bmp"
)

func (f Format) String() string {
	if f == FormatUnknown {
		return "unknown"
	}
	return string(f)
}

// Ext returns the canonical file extension for f, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatPNG:
		return ".png"
	case FormatGIF:
		return ".gif"
	case FormatWebP:
		return ".webp"
	case FormatTIFF:
		return ".tiff"
	case FormatBMP:
		return ".bmp"
	default:
		return ""
	}
}

// ParseFormat accepts either a MIME tag ("image/webp") or a bare name
// ("webp", "jpg").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "image/jpeg", "jpeg", "jpg":
		return FormatJPEG, nil
	case "image/png", "png":
		return FormatPNG, nil
	case "image/gif", "gif":
		return FormatGIF, nil
	case "image/webp", "webp":
		return FormatWebP, nil
	case "image/tiff", "tiff", "tif":
		return FormatTIFF, nil
	case "image/bmp", "bmp":
		return FormatBMP, nil
	default:
		return FormatUnknown, fmt.Errorf("unrecognized image format %q", s)
	}
}

// headerLen covers the longest signature we check (RIFF....WEBP).
const headerLen = 12

var (
	jpegSig   = []byte{0xff, 0xd8, 0xff}
	pngSig    = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	gif87Sig  = []byte("GIF87a")
	gif89Sig  = []byte("GIF89a")
	riffSig   = []byte("RIFF")
	webpSig   = []byte("WEBP")
	tiffSigLE = []byte{0x49, 0x49, 0x2a, 0x00}
	tiffSigBE = []byte{0x4d, 0x4d, 0x00, 0x2a}
	bmpSig    = []byte("BM")
)

// Detect inspects the first bytes of a file for known signatures.
func Detect(header []byte) Format {
	if hasPrefix(header, jpegSig) {
		return FormatJPEG
	}
	if hasPrefix(header, pngSig) {
		return FormatPNG
	}
	if hasPrefix(header, gif87Sig) || hasPrefix(header, gif89Sig) {
		return FormatGIF
	}
	if hasPrefix(header, riffSig) && len(header) >= 12 && hasPrefix(header[8:], webpSig) {
		return FormatWebP
	}
	if hasPrefix(header, tiffSigLE) || hasPrefix(header, tiffSigBE) {
		return FormatTIFF
	}
	if hasPrefix(header, bmpSig) {
		return FormatBMP
	}
	return FormatUnknown
}

// Sniff reads the leading bytes from r and determines its format. A file too
// short to hold any signature is FormatUnknown, not an error.
func Sniff(r io.Reader) (Format, error) {
	header := make([]byte, headerLen)
	n, err := io.ReadFull(r, header)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Detect(header[:n]), nil
		}
		return FormatUnknown, err
	}
	return Detect(header), nil
}

// SniffFile reads the leading bytes of the file at path.
func SniffFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, err
	}
	defer f.Close()

	return Sniff(f)
}

func hasPrefix(buf, prefix []byte) bool {
	if len(buf) < len(prefix) {
		return false
	}
	for i := range prefix {
		if buf[i] != prefix[i] {
			return false
		}
	}
	return true
}
