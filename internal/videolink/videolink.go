// Package videolink classifies video source URLs by hosting platform and
// derives embed ids and thumbnail URLs without any network calls.
package videolink

import (
	"regexp"
	"strings"
)

type Provider int

const (
	DirectURL Provider = iota
	Youtube
	Vimeo
	Facebook
	Instagram
	Uploaded
)

func (p Provider) String() string {
	switch p {
	case Youtube:
		return "youtube"
	case Vimeo:
		return "vimeo"
	case Facebook:
		return "facebook"
	case Instagram:
		return "instagram"
	case Uploaded:
		return "uploaded"
	default:
		return "url"
	}
}

var (
	ytWatch  = regexp.MustCompile(`youtube\.com/watch\?(?:[^&\s]*&)*v=([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`)
	ytShort  = regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`)
	ytEmbed  = regexp.MustCompile(`youtube\.com/(?:embed|shorts)/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`)
	ytBareID = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

	vimeoID = regexp.MustCompile(`vimeo\.com/(?:video/)?(\d+)`)
)

// Detect classifies a source string. Bare 11-char YouTube ids are accepted
// because the admin panel historically stored them that way. Local upload
// references (anything under /uploads) classify as Uploaded.
func Detect(src string) Provider {
	s := strings.TrimSpace(src)
	switch {
	case s == "":
		return DirectURL
	case strings.HasPrefix(s, "/uploads/"):
		return Uploaded
	case strings.Contains(s, "youtube.com") || strings.Contains(s, "youtu.be") || ytBareID.MatchString(s):
		return Youtube
	case strings.Contains(s, "vimeo.com"):
		return Vimeo
	case strings.Contains(s, "facebook.com") || strings.Contains(s, "fb.watch"):
		return Facebook
	case strings.Contains(s, "instagram.com"):
		return Instagram
	default:
		return DirectURL
	}
}

// YoutubeID extracts the 11-character video id from any of the URL shapes
// YouTube hands out. Returns "" when none matches.
func YoutubeID(src string) string {
	s := strings.TrimSpace(src)
	for _, re := range []*regexp.Regexp{ytWatch, ytShort, ytEmbed} {
		if m := re.FindStringSubmatch(s); m != nil {
			return m[1]
		}
	}
	if ytBareID.MatchString(s) {
		return s
	}
	return ""
}

// VimeoID extracts the numeric video id, or "".
func VimeoID(src string) string {
	if m := vimeoID.FindStringSubmatch(strings.TrimSpace(src)); m != nil {
		return m[1]
	}
	return ""
}

// ThumbnailURL derives a thumbnail for a source without fetching anything.
// Unrecognized or malformed sources yield ""; the client renders its
// placeholder glyph for those.
func ThumbnailURL(src string) string {
	switch Detect(src) {
	case Youtube:
		if id := YoutubeID(src); id != "" {
			return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
		}
	case Vimeo:
		if id := VimeoID(src); id != "" {
			return "https://vumbnail.com/" + id + ".jpg"
		}
	case Instagram:
		s := strings.TrimSpace(src)
		if !strings.HasSuffix(s, "/") {
			s += "/"
		}
		return s + "media/?size=l"
	}
	return ""
}

// EmbedURL maps a source to the player URL a client iframe should load.
// Direct and uploaded sources play natively, so they pass through.
func EmbedURL(src string) string {
	switch Detect(src) {
	case Youtube:
		if id := YoutubeID(src); id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	case Vimeo:
		if id := VimeoID(src); id != "" {
			return "https://player.vimeo.com/video/" + id
		}
	}
	return src
}
