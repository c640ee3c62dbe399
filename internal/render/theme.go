package render

import "strings"

// Theme 是模板家族的参数化样式值对象：同一套渲染逻辑，不同的视觉
// 皮肤。主题只携带视觉决策，绝不携带分页逻辑。
type Theme struct {
	Name              string
	HeadingColor      string
	AccentColor       string
	UppercaseHeadings bool
	DividerStyle      string
}

var themes = map[string]Theme{
	"classic": {
		Name:              "classic",
		HeadingColor:      "#1a1a2e",
		AccentColor:       "#0f3460",
		UppercaseHeadings: false,
		DividerStyle:      "solid",
	},
	"modern": {
		Name:              "modern",
		HeadingColor:      "#0b7285",
		AccentColor:       "#15aabf",
		UppercaseHeadings: true,
		DividerStyle:      "solid",
	},
	"compact": {
		Name:              "compact",
		HeadingColor:      "#212529",
		AccentColor:       "#495057",
		UppercaseHeadings: true,
		DividerStyle:      "dotted",
	},
}

// ThemeByName resolves a registered theme, falling back to classic for
// unknown or empty names so stored documents never fail to render.
func ThemeByName(name string) Theme {
	if t, ok := themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return themes["classic"]
}

// ThemeNames lists the registered skins.
func ThemeNames() []string {
	return []string{"classic", "modern", "compact"}
}
