// Package embeds splits user-authored text into literal text and links to
// external media (YouTube videos and shorts, Instagram posts and reels) that
// the frontend can render inline.
package embeds

type Kind string

const (
	KindText      Kind = "text"
	KindYouTube   Kind = "youtube"
	KindInstagram Kind = "instagram"
)

// Segment is one chunk of parsed text. Which fields are set depends on Kind:
// Value for text, URL and VideoID for YouTube, URL, Shortcode and IsReel for
// Instagram.
type Segment struct {
	Kind      Kind   `json:"type"`
	Value     string `json:"value,omitempty"`
	URL       string `json:"url,omitempty"`
	VideoID   string `json:"video_id,omitempty"`
	Shortcode string `json:"shortcode,omitempty"`
	IsReel    bool   `json:"is_reel,omitempty"`
}

func Text(value string) Segment {
	return Segment{Kind: KindText, Value: value}
}

func YouTube(url, videoID string) Segment {
	return Segment{Kind: KindYouTube, URL: url, VideoID: videoID}
}

func Instagram(url, shortcode string, isReel bool) Segment {
	return Segment{Kind: KindInstagram, URL: url, Shortcode: shortcode, IsReel: isReel}
}

func (s Segment) IsEmbed() bool {
	return s.Kind != KindText
}
