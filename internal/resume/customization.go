package resume

// Customization 描述整份简历的样式与几何配置。
// 所有组件只读；像素字段单位为 px，页面尺寸单位为英寸。
//
// layout.page_width/page_height 仅约束打印/导出路径；交互式预览的
// 页面容器使用固定的物理几何（见 internal/layout），两者的差异是
// 有意保留的行为。
type Customization struct {
	FontFamily string     `json:"font_family"`
	FontSize   FontSize   `json:"font_size"`
	FontWeight FontWeight `json:"font_weight"`
	LineHeight LineHeight `json:"line_height"`
	Colors     Colors     `json:"colors"`
	Spacing    Spacing    `json:"spacing"`
	Layout     PageLayout `json:"layout"`
	Borders    Borders    `json:"borders"`
}

// FontSize carries pixel sizes per text role.
type FontSize struct {
	Name    int `json:"name"`
	Heading int `json:"heading"`
	Body    int `json:"body"`
	Small   int `json:"small"`
}

// FontWeight carries CSS weights per text role.
type FontWeight struct {
	Name    int `json:"name"`
	Heading int `json:"heading"`
	Body    int `json:"body"`
}

// LineHeight carries unitless CSS line heights.
type LineHeight struct {
	Heading float64 `json:"heading"`
	Body    float64 `json:"body"`
}

// Colors carries the theme-independent color overrides.
type Colors struct {
	Primary    string `json:"primary"`
	Text       string `json:"text"`
	TextLight  string `json:"text_light"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Divider    string `json:"divider"`
}

// Spacing carries pixel gaps, outermost to innermost.
type Spacing struct {
	Page    int `json:"page"`
	Section int `json:"section"`
	Item    int `json:"item"`
	Line    int `json:"line"`
}

// PageLayout 描述导出文档的页面几何（英寸）与页面级开关。
type PageLayout struct {
	PageWidthIn     float64 `json:"page_width_in"`
	PageHeightIn    float64 `json:"page_height_in"`
	ShowPageNumbers bool    `json:"show_page_numbers"`
	HeaderAlignment string  `json:"header_alignment"`
}

// Borders carries section divider styling.
type Borders struct {
	SectionStyle string `json:"section_style"`
	SectionWidth int    `json:"section_width"`
}

// DefaultCustomization returns the profile applied to new resumes and
// used to backfill documents saved before a field existed.
func DefaultCustomization() Customization {
	return Customization{
		FontFamily: "Inter",
		FontSize:   FontSize{Name: 28, Heading: 16, Body: 12, Small: 10},
		FontWeight: FontWeight{Name: 700, Heading: 600, Body: 400},
		LineHeight: LineHeight{Heading: 1.3, Body: 1.5},
		Colors: Colors{
			Primary:    "#1a1a2e",
			Text:       "#222222",
			TextLight:  "#666666",
			Accent:     "#0f3460",
			Background: "#ffffff",
			Divider:    "#dddddd",
		},
		Spacing: Spacing{Page: 48, Section: 24, Item: 12, Line: 6},
		Layout: PageLayout{
			PageWidthIn:     8.5,
			PageHeightIn:    11,
			ShowPageNumbers: false,
			HeaderAlignment: "left",
		},
		Borders: Borders{SectionStyle: "solid", SectionWidth: 1},
	}
}
