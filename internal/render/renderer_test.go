package render

import (
	"strings"
	"testing"

	"cvpress/internal/resume"
)

func testDocument() *resume.Document {
	experience := make([]resume.ExperienceEntry, 10)
	for i := range experience {
		experience[i] = resume.ExperienceEntry{
			ID:       "exp",
			Company:  "Acme",
			Position: "Engineer",
			Visible:  true,
		}
	}
	return &resume.Document{
		Data: resume.Data{
			Personal: resume.PersonalInfo{
				FullName: "Ada Lovelace",
				Email:    "ada@example.com",
				Summary:  "Engineer.",
			},
			Experience: experience,
			Skills: []resume.SkillGroup{
				{ID: "sk", Category: "Languages", Skills: []string{"Go"}, Visible: true},
			},
		},
		Sections: []resume.Section{
			{ID: "s-personal", Title: "About", Component: resume.ComponentPersonal, Visible: true, Order: 0},
			{ID: "s-exp", Title: "Experience", Component: resume.ComponentExperience, Visible: true, Order: 1},
			{ID: "s-skills", Title: "Skills", Component: resume.ComponentSkills, Visible: true, Order: 2},
		},
		Customization: resume.DefaultCustomization(),
	}
}

func TestPaginate_SplitsAcrossPages(t *testing.T) {
	doc := testDocument()

	// personal=120, experience=1060 (oversized alone), skills=140
	pages := Paginate(doc)
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	if pages[0].Sections[0].ID != "s-personal" {
		t.Fatalf("page 1 should open with the personal section, got %+v", pages[0].Sections)
	}
	if len(pages[1].Sections) != 1 || pages[1].Sections[0].ID != "s-exp" {
		t.Fatalf("oversized experience section must sit alone on page 2, got %+v", pages[1].Sections)
	}
	if !pages[1].PredictedOverflow {
		t.Fatal("oversized page must predict overflow")
	}
	if pages[0].PredictedOverflow || pages[2].PredictedOverflow {
		t.Fatal("fitting pages must not predict overflow")
	}
}

func TestPaginate_Deterministic(t *testing.T) {
	doc := testDocument()
	first := Paginate(doc)
	second := Paginate(doc)
	if len(first) != len(second) {
		t.Fatalf("page counts diverge: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if len(first[i].Sections) != len(second[i].Sections) {
			t.Fatalf("page %d diverges between runs", i)
		}
		for j := range first[i].Sections {
			if first[i].Sections[j].ID != second[i].Sections[j].ID {
				t.Fatalf("page %d item %d diverges between runs", i, j)
			}
		}
	}
}

func TestRenderPreview_HeaderOnFirstPageOnly(t *testing.T) {
	r := NewRenderer(ThemeByName("classic"))
	html, pages, err := r.RenderPreview(testDocument())
	if err != nil {
		t.Fatalf("render preview: %v", err)
	}
	if len(pages) < 2 {
		t.Fatalf("fixture should span multiple pages, got %d", len(pages))
	}
	if got := strings.Count(html, `class="resume-header"`); got != 1 {
		t.Fatalf("header must render exactly once, got %d occurrences", got)
	}
	if got := strings.Count(html, `class="page"`); got != len(pages) {
		t.Fatalf("expected %d page frames, got %d", len(pages), got)
	}
}

func TestRenderPreview_PageNumberFooter(t *testing.T) {
	doc := testDocument()
	r := NewRenderer(ThemeByName("classic"))

	html, _, err := r.RenderPreview(doc)
	if err != nil {
		t.Fatalf("render preview: %v", err)
	}
	if strings.Contains(html, `class="page-footer"`) {
		t.Fatal("footer must be absent when page numbers are disabled")
	}

	doc.Customization.Layout.ShowPageNumbers = true
	html, pages, err := r.RenderPreview(doc)
	if err != nil {
		t.Fatalf("render preview: %v", err)
	}
	if got := strings.Count(html, `class="page-footer"`); got != len(pages) {
		t.Fatalf("expected a footer per page (%d), got %d", len(pages), got)
	}
}

func TestRenderPreview_OverflowMarkerDebugOnly(t *testing.T) {
	doc := testDocument()

	plain := NewRenderer(ThemeByName("classic"))
	html, _, err := plain.RenderPreview(doc)
	if err != nil {
		t.Fatalf("render preview: %v", err)
	}
	if strings.Contains(html, "OVERFLOW") {
		t.Fatal("overflow marker must not render outside debug builds")
	}

	debug := NewRenderer(ThemeByName("classic"), WithDebugOverflow())
	html, _, err = debug.RenderPreview(doc)
	if err != nil {
		t.Fatalf("render preview: %v", err)
	}
	if got := strings.Count(html, "OVERFLOW"); got != 1 {
		t.Fatalf("expected one overflow marker for the oversized page, got %d", got)
	}
}

func TestRenderPreview_DanglingCustomSectionKeepsSlot(t *testing.T) {
	doc := testDocument()
	doc.Sections = []resume.Section{
		{
			ID:              "s-missing",
			Title:           "Ghost",
			Component:       resume.ComponentCustom,
			CustomSectionID: "does-not-exist",
			Visible:         true,
		},
	}

	html, pages, err := NewRenderer(ThemeByName("classic")).RenderPreview(doc)
	if err != nil {
		t.Fatalf("dangling custom reference must not error: %v", err)
	}
	if len(pages) != 1 || len(pages[0].Sections) != 1 {
		t.Fatalf("section must keep its slot, got %+v", pages)
	}
	if !strings.Contains(html, `data-section-id="s-missing"`) {
		t.Fatal("section container must still render")
	}
	if strings.Contains(html, `class="block"`) {
		t.Fatal("dangling reference must render no content blocks")
	}
}

func TestRenderExport_UsesCustomizationPaperSize(t *testing.T) {
	doc := testDocument()
	doc.Customization.Layout.PageWidthIn = 8.27
	doc.Customization.Layout.PageHeightIn = 11.69

	html, err := NewRenderer(ThemeByName("modern")).RenderExport(doc)
	if err != nil {
		t.Fatalf("render export: %v", err)
	}
	if !strings.Contains(html, "size: 8.27in 11.69in") {
		t.Fatal("export @page size must come from customization.layout")
	}
	// 8.27in * 96dpi rounds to 794px
	if !strings.Contains(html, "width: 794px") {
		t.Fatal("export sheet width must be the inch size at 96 DPI")
	}
	if !strings.Contains(html, `id="pdf-root"`) || !strings.Contains(html, `id="pdf-render-ready"`) {
		t.Fatal("export document must carry the print markers")
	}
	// export path flows continuously; no fixed preview frames
	if strings.Contains(html, `class="page"`) {
		t.Fatal("export document must not reuse preview page frames")
	}
}

func TestThemeByName_FallsBackToClassic(t *testing.T) {
	if got := ThemeByName("does-not-exist"); got.Name != "classic" {
		t.Fatalf("unknown theme resolved to %q, want classic", got.Name)
	}
	if got := ThemeByName("MODERN"); got.Name != "modern" {
		t.Fatalf("theme lookup should be case-insensitive, got %q", got.Name)
	}
}
