package spec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEmptyThemeYieldsDefaults(t *testing.T) {
	assert.Equal(t, DefaultTheme(), ThemeSpec{}.Resolve())
}

func TestResolveOverlaysFieldByField(t *testing.T) {
	theme := ThemeSpec{
		Colors: ColorPalette{Primary: "#123456"},
		Fonts:  FontPalette{Code: "Courier-Bold"},
	}

	got := theme.Resolve()
	def := DefaultTheme()

	// Supplied fields win.
	assert.Equal(t, "#123456", got.Colors.Primary)
	assert.Equal(t, "Courier-Bold", got.Fonts.Code)

	// Siblings within the same partially supplied group keep their defaults.
	assert.Equal(t, def.Colors.Secondary, got.Colors.Secondary)
	assert.Equal(t, def.Colors.Background, got.Colors.Background)
	assert.Equal(t, def.Fonts.Heading, got.Fonts.Heading)
	assert.Equal(t, def.Fonts.Body, got.Fonts.Body)
}

func TestResolveZeroNumericMeansDefault(t *testing.T) {
	theme := ThemeSpec{BodyFontSize: 12}
	got := theme.Resolve()

	assert.Equal(t, 12.0, got.BodyFontSize)
	assert.Equal(t, 24.0, got.TitleFontSize)
	assert.Equal(t, 612.0, got.PageWidth)
	assert.Equal(t, 792.0, got.PageHeight)
	assert.Equal(t, 72.0, got.MarginLeft)
}

func TestResolveIsIdempotent(t *testing.T) {
	theme := ThemeSpec{Colors: ColorPalette{Accent: "#FF00FF"}, H1FontSize: 20}
	once := theme.Resolve()
	assert.Equal(t, once, once.Resolve())
}

func TestThemeUnmarshalPartial(t *testing.T) {
	raw := `{"colors": {"primary": "#0B5FFF", "code_bg": "#EEEEEE"}, "h1_font_size": 22}`
	var theme ThemeSpec
	require.NoError(t, json.Unmarshal([]byte(raw), &theme))

	got := theme.Resolve()
	assert.Equal(t, "#0B5FFF", got.Colors.Primary)
	assert.Equal(t, "#EEEEEE", got.Colors.CodeBG)
	assert.Equal(t, 22.0, got.H1FontSize)
	assert.Equal(t, "#1CCBD0", got.Colors.Secondary)
	assert.Equal(t, 10.0, got.BodyFontSize)
}
