package embeds

import (
	"sort"
	"strings"
)

// Parse splits text into an ordered list of segments. Recognized links become
// embed segments, everything between them is kept verbatim as text segments.
// Blank input yields an empty (non-nil) list.
func Parse(text string) []Segment {
	segments := make([]Segment, 0)
	if strings.TrimSpace(text) == "" {
		return segments
	}

	var found []candidate
	for _, r := range recognizers {
		found = append(found, r.find(text)...)
	}
	accepted := resolveOverlaps(found)

	pos := 0
	for _, c := range accepted {
		if c.start > pos {
			segments = append(segments, Text(text[pos:c.start]))
		}
		segments = append(segments, c.segment)
		pos = c.end
	}
	if pos < len(text) {
		segments = append(segments, Text(text[pos:]))
	}
	return segments
}

// HasEmbeddableLink reports whether text contains at least one link Parse
// would turn into an embed.
func HasEmbeddableLink(text string) bool {
	for _, r := range recognizers {
		if r.matches(text) {
			return true
		}
	}
	return false
}

// resolveOverlaps keeps candidates leftmost-first; a candidate overlapping an
// already accepted one is dropped whole.
func resolveOverlaps(found []candidate) []candidate {
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].start < found[j].start
	})

	accepted := make([]candidate, 0, len(found))
	lastEnd := 0
	for _, c := range found {
		if c.start < lastEnd {
			continue
		}
		accepted = append(accepted, c)
		lastEnd = c.end
	}
	return accepted
}
