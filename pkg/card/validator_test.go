package card

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validRequest() RenderRequest {
	return RenderRequest{
		TitleBar:   "Breaking News",
		TitleText:  "City Opens New Park",
		BgColor:    "#102030",
		IconURL:    "https://example.com/icon.png",
		FontFamily: "Roboto",
		TextDir:    DirLTR,
	}
}

func TestValidateAcceptsGoodRequest(t *testing.T) {
	req := validRequest()
	require.NoError(t, req.Validate())

	// Direction and language are optional.
	req.TextDir = ""
	req.Language = ""
	require.NoError(t, req.Validate())
	require.Equal(t, DirLTR, req.Direction())

	req.BgColor = "#AbCdEf" // case-insensitive hex
	require.NoError(t, req.Validate())
}

func TestValidateRejectsBadFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RenderRequest)
		field  string
	}{
		{"missing titleBar", func(r *RenderRequest) { r.TitleBar = "" }, "titleBar"},
		{"missing titleText", func(r *RenderRequest) { r.TitleText = "" }, "titleText"},
		{"missing fontFamily", func(r *RenderRequest) { r.FontFamily = "" }, "fontFamily"},
		{"named color", func(r *RenderRequest) { r.BgColor = "blue" }, "bgColor"},
		{"short hex", func(r *RenderRequest) { r.BgColor = "#123" }, "bgColor"},
		{"no hash", func(r *RenderRequest) { r.BgColor = "102030" }, "bgColor"},
		{"bad direction", func(r *RenderRequest) { r.TextDir = "DIAGONAL" }, "textDir"},
		{"relative icon url", func(r *RenderRequest) { r.IconURL = "/icon.png" }, "iconUrl"},
		{"non-http scheme", func(r *RenderRequest) { r.IconURL = "ftp://example.com/icon.png" }, "iconUrl"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)

			err := req.Validate()
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			require.Equal(t, tc.field, vErr.Field)
		})
	}
}
