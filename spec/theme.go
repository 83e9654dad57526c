package spec

// ColorPalette holds the theme's hex color values.
type ColorPalette struct {
	Primary    string `json:"primary,omitempty"`
	Secondary  string `json:"secondary,omitempty"`
	Accent     string `json:"accent,omitempty"`
	Background string `json:"background,omitempty"`
	Text       string `json:"text,omitempty"`
	CodeBG     string `json:"code_bg,omitempty"`
}

// FontPalette holds the theme's font family names.
type FontPalette struct {
	Heading string `json:"heading,omitempty"`
	Body    string `json:"body,omitempty"`
	Code    string `json:"code,omitempty"`
}

// ThemeSpec is the visual theme of a document. Any subset of fields may be
// supplied; Resolve overlays the missing ones onto the defaults field by
// field, so supplying only colors.primary leaves colors.secondary at its
// default value. A zero numeric value means "use the default".
type ThemeSpec struct {
	Colors   ColorPalette `json:"colors,omitempty"`
	Fonts    FontPalette  `json:"fonts,omitempty"`
	LogoPath string       `json:"logo_path,omitempty"`

	// Typography (points)
	TitleFontSize    float64 `json:"title_font_size,omitempty"`
	SubtitleFontSize float64 `json:"subtitle_font_size,omitempty"`
	H1FontSize       float64 `json:"h1_font_size,omitempty"`
	H2FontSize       float64 `json:"h2_font_size,omitempty"`
	H3FontSize       float64 `json:"h3_font_size,omitempty"`
	BodyFontSize     float64 `json:"body_font_size,omitempty"`
	CodeFontSize     float64 `json:"code_font_size,omitempty"`

	// Spacing
	LineSpacing      float64 `json:"line_spacing,omitempty"`
	ParagraphSpacing float64 `json:"paragraph_spacing,omitempty"`

	// Page geometry (points; defaults are US Letter)
	PageWidth    float64 `json:"page_width,omitempty"`
	PageHeight   float64 `json:"page_height,omitempty"`
	MarginTop    float64 `json:"margin_top,omitempty"`
	MarginBottom float64 `json:"margin_bottom,omitempty"`
	MarginLeft   float64 `json:"margin_left,omitempty"`
	MarginRight  float64 `json:"margin_right,omitempty"`
}

// DefaultTheme returns the fully populated default theme.
func DefaultTheme() ThemeSpec {
	return ThemeSpec{
		Colors: ColorPalette{
			Primary:    "#E3342F",
			Secondary:  "#1CCBD0",
			Accent:     "#F59E0B",
			Background: "#FFFFFF",
			Text:       "#111827",
			CodeBG:     "#F5F5F5",
		},
		Fonts: FontPalette{
			Heading: "Helvetica-Bold",
			Body:    "Helvetica",
			Code:    "Courier",
		},
		TitleFontSize:    24,
		SubtitleFontSize: 16,
		H1FontSize:       18,
		H2FontSize:       14,
		H3FontSize:       12,
		BodyFontSize:     10,
		CodeFontSize:     9,
		LineSpacing:      1.2,
		ParagraphSpacing: 6,
		PageWidth:        612,
		PageHeight:       792,
		MarginTop:        72,
		MarginBottom:     72,
		MarginLeft:       72,
		MarginRight:      72,
	}
}

// Resolve overlays the theme onto the defaults and returns a theme with
// every field populated. Resolution is field-level within each group: a
// partially supplied sub-object keeps its own defaults for the fields it
// omits. Resolve never fails.
func (t ThemeSpec) Resolve() ThemeSpec {
	def := DefaultTheme()

	overlayStr := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	overlayNum := func(v, d float64) float64 {
		if v == 0 {
			return d
		}
		return v
	}

	return ThemeSpec{
		Colors: ColorPalette{
			Primary:    overlayStr(t.Colors.Primary, def.Colors.Primary),
			Secondary:  overlayStr(t.Colors.Secondary, def.Colors.Secondary),
			Accent:     overlayStr(t.Colors.Accent, def.Colors.Accent),
			Background: overlayStr(t.Colors.Background, def.Colors.Background),
			Text:       overlayStr(t.Colors.Text, def.Colors.Text),
			CodeBG:     overlayStr(t.Colors.CodeBG, def.Colors.CodeBG),
		},
		Fonts: FontPalette{
			Heading: overlayStr(t.Fonts.Heading, def.Fonts.Heading),
			Body:    overlayStr(t.Fonts.Body, def.Fonts.Body),
			Code:    overlayStr(t.Fonts.Code, def.Fonts.Code),
		},
		LogoPath:         t.LogoPath,
		TitleFontSize:    overlayNum(t.TitleFontSize, def.TitleFontSize),
		SubtitleFontSize: overlayNum(t.SubtitleFontSize, def.SubtitleFontSize),
		H1FontSize:       overlayNum(t.H1FontSize, def.H1FontSize),
		H2FontSize:       overlayNum(t.H2FontSize, def.H2FontSize),
		H3FontSize:       overlayNum(t.H3FontSize, def.H3FontSize),
		BodyFontSize:     overlayNum(t.BodyFontSize, def.BodyFontSize),
		CodeFontSize:     overlayNum(t.CodeFontSize, def.CodeFontSize),
		LineSpacing:      overlayNum(t.LineSpacing, def.LineSpacing),
		ParagraphSpacing: overlayNum(t.ParagraphSpacing, def.ParagraphSpacing),
		PageWidth:        overlayNum(t.PageWidth, def.PageWidth),
		PageHeight:       overlayNum(t.PageHeight, def.PageHeight),
		MarginTop:        overlayNum(t.MarginTop, def.MarginTop),
		MarginBottom:     overlayNum(t.MarginBottom, def.MarginBottom),
		MarginLeft:       overlayNum(t.MarginLeft, def.MarginLeft),
		MarginRight:      overlayNum(t.MarginRight, def.MarginRight),
	}
}
