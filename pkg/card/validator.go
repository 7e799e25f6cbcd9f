// validator.go — Pre-render request validation.
package card

import (
	"net/url"
	"regexp"
)

// hexColorRe is the only accepted background color format.
var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks all request fields and returns a *ValidationError for
// the first problem found. It performs no I/O; the render pipeline calls
// it before touching the network so rejected requests cost nothing.
func (r *RenderRequest) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"titleBar", r.TitleBar},
		{"titleText", r.TitleText},
		{"bgColor", r.BgColor},
		{"iconUrl", r.IconURL},
		{"fontFamily", r.FontFamily},
	}
	for _, f := range required {
		if f.value == "" {
			return &ValidationError{Field: f.name, Reason: "required"}
		}
	}

	if !hexColorRe.MatchString(r.BgColor) {
		return &ValidationError{Field: "bgColor", Reason: `must match "#rrggbb"`}
	}

	switch r.TextDir {
	case "", DirLTR, DirRTL:
	default:
		return &ValidationError{Field: "textDir", Reason: `must be "LTR" or "RTL"`}
	}

	u, err := url.Parse(r.IconURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return &ValidationError{Field: "iconUrl", Reason: "must be an absolute http(s) URL"}
	}

	return nil
}
