// layout.go — Fixed card geometry and per-language banner sizing.
package card

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Canvas geometry. The card size is fixed; callers cannot change it.
const (
	CanvasWidth  = 1200
	CanvasHeight = 628

	Margin   = 64.0
	IconSize = 180

	HeadlineSize       = 60.0
	HeadlineTop        = 300.0
	HeadlineLineHeight = 72.0
	HeadlineMaxWidth   = CanvasWidth - 2*Margin

	BannerSize    = 40.0
	BannerPadding = 60.0 // added to the wrapped line stack when sizing the bar
	BannerInset   = 54.0 // first banner line's offset from the bar's top edge
	MinBarHeight  = 140.0
)

// ── Banner sizing table ──

// BannerSpec holds the language-dependent banner sizing constants and the
// casing locale used to uppercase the banner text.
type BannerSpec struct {
	MaxWidth   float64
	LineHeight float64
	Locale     language.Tag
}

// defaultBannerSpec applies when the request carries no language tag or an
// unrecognized one.
var defaultBannerSpec = BannerSpec{MaxWidth: 1040, LineHeight: 52, Locale: language.AmericanEnglish}

// bannerSpecs maps primary language subtags to sizing constants. The
// numbers tune visual fidelity per script; correctness only depends on the
// lookup falling back to the default entry. The Locale column matters:
// uppercasing "i" differs under Turkish casing rules, for example.
var bannerSpecs = map[string]BannerSpec{
	"en": {MaxWidth: 1040, LineHeight: 52, Locale: language.AmericanEnglish},
	"de": {MaxWidth: 1000, LineHeight: 52, Locale: language.German},
	"tr": {MaxWidth: 1020, LineHeight: 52, Locale: language.Turkish},
	"el": {MaxWidth: 1020, LineHeight: 54, Locale: language.Greek},
	"ru": {MaxWidth: 1000, LineHeight: 54, Locale: language.Russian},
	"ar": {MaxWidth: 1040, LineHeight: 60, Locale: language.Arabic},
	"he": {MaxWidth: 1040, LineHeight: 58, Locale: language.Hebrew},
	"ja": {MaxWidth: 1080, LineHeight: 60, Locale: language.Japanese},
}

// BannerSpecFor resolves a free-form language tag to its sizing constants.
// Matching is case-insensitive: the full tag first ("tr-TR"), then the
// primary subtag ("tr"). Unrecognized tags get the default entry.
func BannerSpecFor(tag string) BannerSpec {
	key := strings.ToLower(strings.TrimSpace(tag))
	if key == "" {
		return defaultBannerSpec
	}
	if spec, ok := bannerSpecs[key]; ok {
		return spec
	}
	if base, _, found := strings.Cut(key, "-"); found {
		if spec, ok := bannerSpecs[base]; ok {
			return spec
		}
	}
	return defaultBannerSpec
}

// UppercaseBanner uppercases the banner text with the casing rules of the
// spec's locale. Naive case-folding is wrong for some scripts, so casing
// always goes through x/text.
func (s BannerSpec) UppercaseBanner(text string) string {
	return cases.Upper(s.Locale).String(text)
}

// BarHeight computes the banner bar height for the wrapped line count.
// The bar never shrinks below MinBarHeight.
func (s BannerSpec) BarHeight(lineCount int) float64 {
	h := float64(lineCount)*s.LineHeight + BannerPadding
	if h < MinBarHeight {
		return MinBarHeight
	}
	return h
}

// ── Layout plan ──

// LayoutPlan holds every absolute position needed to draw one card. It is
// computed once per render and discarded; nothing in it is shared across
// requests.
type LayoutPlan struct {
	RTL bool

	IconX, IconY int

	HeadlineLines  []string
	HeadlineX      float64
	HeadlineAnchor float64 // 0 anchors the line's left edge at X, 1 its right edge

	Banner       BannerSpec
	BannerLines  []string
	BarTop       float64
	BarHeight    float64
	BannerX      float64
	BannerAnchor float64
}

// PlanLayout computes the full card geometry for a validated request.
// measureHeadline and measureBanner must measure with the same faces that
// will draw, or wrapped widths drift.
//
// The icon box and both text anchors are direction-dependent constants:
// RTL mirrors the whole layout horizontally rather than re-aligning text
// within left-to-right boxes.
func PlanLayout(req *RenderRequest, measureHeadline, measureBanner MeasureFunc) *LayoutPlan {
	plan := &LayoutPlan{RTL: req.IsRTL(), IconY: int(Margin)}

	if plan.RTL {
		plan.IconX = CanvasWidth - Margin - IconSize
		plan.HeadlineX = CanvasWidth - Margin
		plan.BannerX = CanvasWidth - Margin
		plan.HeadlineAnchor = 1
		plan.BannerAnchor = 1
	} else {
		plan.IconX = int(Margin)
		plan.HeadlineX = Margin
		plan.BannerX = Margin
		plan.HeadlineAnchor = 0
		plan.BannerAnchor = 0
	}

	plan.HeadlineLines = WrapText(req.TitleText, HeadlineMaxWidth, measureHeadline)

	plan.Banner = BannerSpecFor(req.Language)
	banner := plan.Banner.UppercaseBanner(req.TitleBar)
	plan.BannerLines = WrapText(banner, plan.Banner.MaxWidth, measureBanner)
	plan.BarHeight = plan.Banner.BarHeight(len(plan.BannerLines))
	plan.BarTop = CanvasHeight - plan.BarHeight

	return plan
}
