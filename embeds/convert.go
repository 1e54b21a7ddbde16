package embeds

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	videoIDPattern   = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	shortcodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// YouTubeEmbedURL turns a single YouTube link (watch, youtu.be, shorts, embed
// or live form) into an iframe source. It returns false for anything else.
func YouTubeEmbedURL(raw string) (string, bool) {
	u, ok := parseLink(raw)
	if !ok {
		return "", false
	}

	segments := pathSegments(u.Path)
	var id string
	switch hostname(u) {
	case "youtu.be":
		if len(segments) > 0 {
			id = segments[0]
		}
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		switch {
		case len(segments) >= 2 && (segments[0] == "shorts" || segments[0] == "embed" || segments[0] == "live"):
			id = segments[1]
		case len(segments) >= 1 && segments[0] == "watch":
			id = u.Query().Get("v")
		}
		if id == "" {
			id = u.Query().Get("v")
		}
	default:
		return "", false
	}

	if !videoIDPattern.MatchString(id) {
		return "", false
	}
	return "https://www.youtube.com/embed/" + id, true
}

// InstagramEmbedURL turns a single Instagram post or reel link into an
// iframe source. It returns false for anything else.
func InstagramEmbedURL(raw string) (string, bool) {
	u, ok := parseLink(raw)
	if !ok || hostname(u) != "instagram.com" {
		return "", false
	}

	segments := pathSegments(u.Path)
	if len(segments) < 2 {
		return "", false
	}

	var kind string
	switch segments[0] {
	case "p", "tv":
		kind = "p"
	case "reel", "reels":
		kind = "reel"
	default:
		return "", false
	}

	code := segments[1]
	if !shortcodePattern.MatchString(code) {
		return "", false
	}
	return "https://www.instagram.com/" + kind + "/" + code + "/embed", true
}

// EmbedURL tries every platform converter in turn.
func EmbedURL(raw string) (string, bool) {
	if embed, ok := YouTubeEmbedURL(raw); ok {
		return embed, true
	}
	return InstagramEmbedURL(raw)
}

func parseLink(raw string) (*url.URL, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	return u, true
}

func hostname(u *url.URL) string {
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

func pathSegments(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
