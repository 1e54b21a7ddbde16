package embeds

import (
	"regexp"
	"strings"
)

// candidate is a link occurrence found by one recognizer. start and end are
// byte offsets into the scanned text, end exclusive.
type candidate struct {
	start   int
	end     int
	segment Segment
}

type recognizer interface {
	find(text string) []candidate
	matches(text string) bool
}

type regexRecognizer struct {
	pattern *regexp.Regexp
	build   func(link string, groups []string) Segment
}

func (r regexRecognizer) find(text string) []candidate {
	locs := r.pattern.FindAllStringSubmatchIndex(text, -1)
	out := make([]candidate, 0, len(locs))
	for _, loc := range locs {
		if !atLinkBoundary(text, loc[0]) {
			continue
		}
		groups := make([]string, len(loc)/2)
		for g := range groups {
			if loc[2*g] >= 0 {
				groups[g] = text[loc[2*g]:loc[2*g+1]]
			}
		}
		out = append(out, candidate{
			start:   loc[0],
			end:     loc[1],
			segment: r.build(groups[0], groups),
		})
	}
	return out
}

func (r regexRecognizer) matches(text string) bool {
	return len(r.find(text)) > 0
}

// atLinkBoundary reports whether a link may start at offset i: the byte
// before it must not continue a host name or a path, otherwise the match is
// the tail of some other URL (notyoutube.com, evil.com/youtube.com).
func atLinkBoundary(text string, i int) bool {
	if i == 0 {
		return true
	}
	c := text[i-1]
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return false
	case c == '.', c == '-', c == '_', c == '/', c == '@', c == '%':
		return false
	}
	return true
}

// trailing query string or fragment that belongs to a link
const linkTail = `(?:[?&#][^\s<>"']*)?`

// scheme and host are case-insensitive, paths and ids are not
var (
	youTubeWatchPattern = regexp.MustCompile(
		`(?i:https?://)?(?i:www\.|m\.)?(?:(?i:youtube\.com)/watch\?(?:[^\s#<>"']*&)?v=|(?i:youtu\.be)/)([A-Za-z0-9_-]{11})` + linkTail)
	youTubeShortsPattern = regexp.MustCompile(
		`(?i:https?://)?(?i:www\.|m\.)?(?i:youtube\.com)/shorts/([A-Za-z0-9_-]{11})` + linkTail)
	instagramPattern = regexp.MustCompile(
		`(?i:https?://)?(?i:www\.)?(?i:instagram\.com)/(p|reels?)/([A-Za-z0-9_-]+)/?` + linkTail)
)

var recognizers = []recognizer{
	regexRecognizer{
		pattern: youTubeWatchPattern,
		build: func(link string, groups []string) Segment {
			return YouTube(canonicalURL(link), groups[1])
		},
	},
	regexRecognizer{
		pattern: youTubeShortsPattern,
		build: func(link string, groups []string) Segment {
			return YouTube(canonicalURL(link), groups[1])
		},
	},
	regexRecognizer{
		pattern: instagramPattern,
		build: func(link string, groups []string) Segment {
			return Instagram(canonicalURL(link), groups[2], groups[1] != "p")
		},
	},
}

// canonicalURL forces the https scheme on a matched link and lowercases its host.
func canonicalURL(link string) string {
	rest := link
	for _, scheme := range []string{"https://", "http://"} {
		if len(rest) >= len(scheme) && strings.EqualFold(rest[:len(scheme)], scheme) {
			rest = rest[len(scheme):]
			break
		}
	}
	host, path := rest, ""
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		host, path = rest[:i], rest[i:]
	}
	return "https://" + strings.ToLower(host) + path
}
