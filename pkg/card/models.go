// Package card renders fixed-size social-share preview images: a headline
// and an icon over a solid background, with an uppercase banner strip in a
// variable-height bar along the bottom edge.
package card

// ── Direction ──

// TextDir selects the horizontal layout direction of the card.
type TextDir string

const (
	DirLTR TextDir = "LTR"
	DirRTL TextDir = "RTL"
)

// ── Request ──

// RenderRequest carries the caller-supplied fields for one card render.
// Field names match the JSON wire format of the HTTP API. A request is
// immutable for the duration of its render.
type RenderRequest struct {
	TitleBar   string  `json:"titleBar"`   // banner strip text, uppercased per Language
	TitleText  string  `json:"titleText"`  // primary headline
	BgColor    string  `json:"bgColor"`    // "#rrggbb", case-insensitive
	IconURL    string  `json:"iconUrl"`    // any decodable raster image
	FontFamily string  `json:"fontFamily"` // resolved via the font provider
	TextDir    TextDir `json:"textDir"`    // "LTR" (default) or "RTL"
	Language   string  `json:"language"`   // optional tag, e.g. "tr-TR"
}

// Direction returns the effective text direction, defaulting to LTR.
func (r *RenderRequest) Direction() TextDir {
	if r.TextDir == DirRTL {
		return DirRTL
	}
	return DirLTR
}

// IsRTL reports whether the card is laid out right-to-left.
func (r *RenderRequest) IsRTL() bool { return r.Direction() == DirRTL }
