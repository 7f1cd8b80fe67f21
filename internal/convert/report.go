package convert

import "fmt"

func (r SkipReason) String() string {
	switch r {
	case SkipAlreadyTarget:
		return "already target format"
	case SkipUnknownFormat:
		return "unknown format"
	case SkipExplicitType:
		return "skipped type"
	case SkipUnsupportedType:
		return "unsupported type"
	default:
		return "none"
	}
}

// Line renders the one human-readable report line every task gets.
func (o Outcome) Line() string {
	switch o.Status {
	case StatusConverted:
		line := fmt.Sprintf("Converted %s to %s", o.Source, o.Dest)
		if o.Note != "" {
			line += " | " + o.Note
		}
		return line
	case StatusFailed:
		return fmt.Sprintf("Error processing %s: %v", o.Source, o.Err)
	}

	switch o.Reason {
	case SkipAlreadyTarget:
		return fmt.Sprintf("Skipped (already %s): %s", o.Format, o.Source)
	case SkipUnknownFormat:
		return fmt.Sprintf("Skipped (unknown format): %s", o.Source)
	case SkipExplicitType:
		return fmt.Sprintf("Skipped (mime type %s): %s", o.Format, o.Source)
	case SkipUnsupportedType:
		return fmt.Sprintf("Skipped (unsupported mime type %s): %s", o.Format, o.Source)
	default:
		return fmt.Sprintf("Skipped: %s", o.Source)
	}
}
