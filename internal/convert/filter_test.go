package convert

import (
	"testing"

	"webpify/pkg/imgcodec"
)

func TestClassify(t *testing.T) {
	opts := Options{
		TargetFormat: imgcodec.FormatWebP,
		AllowTypes:   []imgcodec.Format{imgcodec.FormatJPEG, imgcodec.FormatPNG, imgcodec.FormatGIF},
		SkipTypes:    []imgcodec.Format{imgcodec.FormatWebP, imgcodec.FormatGIF},
	}

	cases := []struct {
		name     string
		format   imgcodec.Format
		reason   SkipReason
		eligible bool
	}{
		{"already target", imgcodec.FormatWebP, SkipAlreadyTarget, false},
		{"unknown", imgcodec.FormatUnknown, SkipUnknownFormat, false},
		{"skip-set wins over allow-set", imgcodec.FormatGIF, SkipExplicitType, false},
		{"not in allow-set", imgcodec.FormatTIFF, SkipUnsupportedType, false},
		{"eligible", imgcodec.FormatJPEG, SkipNone, true},
	}

	for _, tc := range cases {
		reason, eligible := classify(tc.format, opts)
		if reason != tc.reason || eligible != tc.eligible {
			t.Errorf("%s: classify(%q) = (%v, %v), want (%v, %v)",
				tc.name, tc.format, reason, eligible, tc.reason, tc.eligible)
		}
	}
}

func TestClassifyAlreadyTargetBeatsConfig(t *testing.T) {
	// even when the target format appears in the allow-set, a file already
	// in it is never re-converted
	opts := Options{
		TargetFormat: imgcodec.FormatWebP,
		AllowTypes:   []imgcodec.Format{imgcodec.FormatWebP},
		SkipTypes:    nil,
	}
	reason, eligible := classify(imgcodec.FormatWebP, opts)
	if eligible || reason != SkipAlreadyTarget {
		t.Fatalf("got (%v, %v), want (SkipAlreadyTarget, false)", reason, eligible)
	}
}
