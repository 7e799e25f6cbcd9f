package card

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestBannerSpecLookup(t *testing.T) {
	require.Equal(t, defaultBannerSpec, BannerSpecFor(""))
	require.Equal(t, defaultBannerSpec, BannerSpecFor("xx-YY"))

	// Full tags resolve through their primary subtag, case-insensitively.
	require.Equal(t, language.Turkish, BannerSpecFor("tr-TR").Locale)
	require.Equal(t, language.Turkish, BannerSpecFor("TR-tr").Locale)
	require.Equal(t, language.Turkish, BannerSpecFor("tr").Locale)
	require.Equal(t, language.German, BannerSpecFor("de-DE").Locale)
}

func TestUppercaseBannerIsLocaleAware(t *testing.T) {
	tr := BannerSpecFor("tr-TR")
	en := BannerSpecFor("en-US")

	// Turkish casing maps i to dotted capital İ; English does not.
	require.Equal(t, "İSTANBUL", tr.UppercaseBanner("istanbul"))
	require.Equal(t, "ISTANBUL", en.UppercaseBanner("istanbul"))
}

func TestBarHeightNeverBelowMinimum(t *testing.T) {
	spec := defaultBannerSpec
	for lines := 0; lines <= 8; lines++ {
		require.GreaterOrEqual(t, spec.BarHeight(lines), MinBarHeight)
	}

	// Enough lines push the bar past the minimum.
	require.Equal(t, 4*spec.LineHeight+BannerPadding, spec.BarHeight(4))
}

func TestPlanLayoutMirrorsForRTL(t *testing.T) {
	base := validRequest()

	ltrReq := base
	rtlReq := base
	rtlReq.TextDir = DirRTL

	ltr := PlanLayout(&ltrReq, charWidth, charWidth)
	rtl := PlanLayout(&rtlReq, charWidth, charWidth)

	// Icon box mirrors across the canvas; it is not just re-aligned text.
	require.Equal(t, int(Margin), ltr.IconX)
	require.Equal(t, CanvasWidth-int(Margin)-IconSize, rtl.IconX)
	require.Equal(t, ltr.IconY, rtl.IconY)

	// Text anchors flip from start to end.
	require.Equal(t, 0.0, ltr.HeadlineAnchor)
	require.Equal(t, 1.0, rtl.HeadlineAnchor)
	require.Equal(t, Margin, ltr.HeadlineX)
	require.Equal(t, CanvasWidth-Margin, rtl.HeadlineX)
	require.Equal(t, 0.0, ltr.BannerAnchor)
	require.Equal(t, 1.0, rtl.BannerAnchor)

	// Wrapping is direction-independent.
	require.Equal(t, ltr.HeadlineLines, rtl.HeadlineLines)
	require.Equal(t, ltr.BannerLines, rtl.BannerLines)
}

func TestPlanLayoutBannerBar(t *testing.T) {
	req := validRequest()
	req.TitleBar = strings.Repeat("word ", 40) // forces several banner lines

	plan := PlanLayout(&req, charWidth, charWidth)

	require.Greater(t, len(plan.BannerLines), 1)
	require.Equal(t, plan.Banner.BarHeight(len(plan.BannerLines)), plan.BarHeight)
	require.Equal(t, CanvasHeight-plan.BarHeight, plan.BarTop)
	require.GreaterOrEqual(t, plan.BarHeight, MinBarHeight)

	// Banner text is uppercased.
	for _, line := range plan.BannerLines {
		require.Equal(t, strings.ToUpper(line), line)
	}
}
