package render

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"cvpress/internal/layout"
	"cvpress/internal/resume"
)

// Page is one unit of the distributor's output enriched with what the
// preview consumer needs.
type Page struct {
	Number            int              `json:"number"`
	Sections          []resume.Section `json:"sections"`
	EstimatedHeight   int              `json:"estimated_height"`
	PredictedOverflow bool             `json:"predicted_overflow"`
}

// Paginate 是预览路径唯一的分页权威：渲染器只消费它的结果，自己不
// 决定任何页边界。
func Paginate(doc *resume.Document) []Page {
	est := layout.NewEstimator(&doc.Data, doc.Customization)
	sections := doc.VisibleSections()
	maxHeight := layout.AvailableContentHeight(doc.Customization.Layout.ShowPageNumbers)

	buckets := layout.Distribute(sections, maxHeight, est.EstimateSection)

	pages := make([]Page, 0, len(buckets))
	for i, bucket := range buckets {
		total := 0
		for _, sec := range bucket {
			total += est.EstimateSection(sec)
		}
		pages = append(pages, Page{
			Number:            i + 1,
			Sections:          bucket,
			EstimatedHeight:   total,
			PredictedOverflow: total > maxHeight,
		})
	}
	return pages
}

// Renderer turns a resume document into HTML. One implementation,
// parameterized by Theme; the per-template visual variants of the
// product are theme values, not separate renderers.
type Renderer struct {
	theme      Theme
	debug      bool
	previewTpl *template.Template
	exportTpl  *template.Template
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithDebugOverflow enables the visible OVERFLOW marker on pages whose
// estimate already exceeds the budget. Non-production builds only.
func WithDebugOverflow() Option {
	return func(r *Renderer) { r.debug = true }
}

// NewRenderer builds a renderer for one theme.
func NewRenderer(theme Theme, opts ...Option) *Renderer {
	r := &Renderer{
		theme:      theme,
		previewTpl: template.Must(template.New("preview").Parse(previewTemplate)),
		exportTpl:  template.Must(template.New("export").Parse(exportTemplate)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type headerView struct {
	Name     string
	Headline string
	Contacts []string
	Align    string
}

type pageView struct {
	Number     int
	Total      int
	Sections   []sectionView
	ShowHeader bool
	Overflow   bool
}

type previewView struct {
	Theme  Theme
	Cust   resume.Customization
	Header headerView
	Pages  []pageView
	Debug  bool

	PageWidthPx   int
	PageHeightPx  int
	PageMarginPx  int
	FooterBandPx  int
	ContentMaxPx  int
	ShowFooter    bool
	UppercaseText string
}

func buildHeaderView(p resume.PersonalInfo, align string) headerView {
	contacts := make([]string, 0, 4)
	for _, c := range []string{p.Email, p.Phone, p.Location, p.Website} {
		if strings.TrimSpace(c) != "" {
			contacts = append(contacts, c)
		}
	}
	if align == "" {
		align = "left"
	}
	return headerView{Name: p.FullName, Headline: p.Headline, Contacts: contacts, Align: align}
}

// RenderPreview renders the paginated interactive preview: fixed-size
// page frames, header on page 1 only, optional page number band.
func (r *Renderer) RenderPreview(doc *resume.Document) (string, []Page, error) {
	pages := Paginate(doc)

	view := previewView{
		Theme:        r.theme,
		Cust:         doc.Customization,
		Header:       buildHeaderView(doc.Data.Personal, doc.Customization.Layout.HeaderAlignment),
		Debug:        r.debug,
		PageWidthPx:  layout.PageWidthPx,
		PageHeightPx: layout.PageHeightPx,
		PageMarginPx: layout.PageMarginPx,
		FooterBandPx: layout.FooterBandPx,
		ContentMaxPx: layout.AvailableContentHeight(doc.Customization.Layout.ShowPageNumbers),
		ShowFooter:   doc.Customization.Layout.ShowPageNumbers,
	}
	if r.theme.UppercaseHeadings {
		view.UppercaseText = "uppercase"
	} else {
		view.UppercaseText = "none"
	}

	for _, page := range pages {
		pv := pageView{
			Number:     page.Number,
			Total:      len(pages),
			ShowHeader: page.Number == 1,
			Overflow:   page.PredictedOverflow,
		}
		for _, sec := range page.Sections {
			pv.Sections = append(pv.Sections, buildSectionView(sec, &doc.Data))
		}
		view.Pages = append(view.Pages, pv)
	}

	var sb strings.Builder
	if err := r.previewTpl.Execute(&sb, view); err != nil {
		return "", nil, fmt.Errorf("render preview: %w", err)
	}
	return sb.String(), pages, nil
}

type exportView struct {
	Theme  Theme
	Cust   resume.Customization
	Header headerView
	// Sections flow continuously; the print medium's own page-break
	// handling paginates. This is a separate policy from the preview
	// distributor and intentionally stays separate.
	Sections []sectionView

	PageWidthPx   int
	PageHeightPx  int
	PageWidthIn   float64
	PageHeightIn  float64
	UppercaseText string
}

// RenderExport renders the print/export document: one continuous flow
// sized from customization.layout (inches at 96 DPI), relying on CSS
// page breaks instead of the interactive distributor.
func (r *Renderer) RenderExport(doc *resume.Document) (string, error) {
	cust := doc.Customization
	widthIn := cust.Layout.PageWidthIn
	heightIn := cust.Layout.PageHeightIn
	if widthIn <= 0 || heightIn <= 0 {
		widthIn, heightIn = 8.5, 11
	}

	view := exportView{
		Theme:        r.theme,
		Cust:         cust,
		Header:       buildHeaderView(doc.Data.Personal, cust.Layout.HeaderAlignment),
		PageWidthPx:  int(math.Round(widthIn * layout.DPI)),
		PageHeightPx: int(math.Round(heightIn * layout.DPI)),
		PageWidthIn:  widthIn,
		PageHeightIn: heightIn,
	}
	if r.theme.UppercaseHeadings {
		view.UppercaseText = "uppercase"
	} else {
		view.UppercaseText = "none"
	}

	for _, sec := range doc.VisibleSections() {
		view.Sections = append(view.Sections, buildSectionView(sec, &doc.Data))
	}

	var sb strings.Builder
	if err := r.exportTpl.Execute(&sb, view); err != nil {
		return "", fmt.Errorf("render export: %w", err)
	}
	return sb.String(), nil
}
