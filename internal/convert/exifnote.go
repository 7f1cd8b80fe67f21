package convert

import (
	"fmt"
	"io"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"

	"webpify/pkg/imgcodec"
)

// droppedMetadataNote reports EXIF carried by a converted JPEG or TIFF
// source, since none of it survives re-encoding. Best effort: a probe
// failure returns an empty note, the conversion itself already succeeded.
func droppedMetadataNote(rs io.ReadSeeker, format imgcodec.Format) string {
	if format != imgcodec.FormatJPEG && format != imgcodec.FormatTIFF {
		return ""
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return ""
	}

	raw, err := exif.SearchAndExtractExifWithReader(rs)
	if err != nil {
		return ""
	}

	tags, _, err := exif.GetFlatExifData(raw, nil)
	if err != nil || len(tags) == 0 {
		return ""
	}

	gps := 0
	for _, tag := range tags {
		if strings.HasPrefix(tag.TagName, "GPS") || strings.Contains(tag.IfdPath, "GPS") {
			gps++
		}
	}

	if gps > 0 {
		return fmt.Sprintf("dropped EXIF metadata (%d tags, %d GPS)", len(tags), gps)
	}
	return fmt.Sprintf("dropped EXIF metadata (%d tags)", len(tags))
}
