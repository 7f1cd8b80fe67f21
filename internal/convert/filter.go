package convert

import "webpify/pkg/imgcodec"

// classify applies the eligibility rules in order. The rules are
// format-tag-based: extensions lie, so the format always comes from content
// sniffing. The skip-set wins over the allow-set.
func classify(format imgcodec.Format, opts Options) (SkipReason, bool) {
	switch {
	case format == opts.TargetFormat:
		return SkipAlreadyTarget, false
	case format == imgcodec.FormatUnknown:
		return SkipUnknownFormat, false
	case containsFormat(opts.SkipTypes, format):
		return SkipExplicitType, false
	case !containsFormat(opts.AllowTypes, format):
		return SkipUnsupportedType, false
	}
	return SkipNone, true
}

func containsFormat(set []imgcodec.Format, f imgcodec.Format) bool {
	for _, s := range set {
		if s == f {
			return true
		}
	}
	return false
}
