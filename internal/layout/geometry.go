// Package layout implements the pagination core: section height
// estimation, greedy page distribution and the fixed-geometry page
// frame with overflow detection.
package layout

// 页面几何是全局共享常量：预览页面始终对应 8.5in × 11in @ 96 DPI，
// 不随 Customization 变化。导出路径的纸张尺寸才读取 customization.layout。
const (
	// PageWidthPx is the fixed preview page width (8.5in at 96 DPI).
	PageWidthPx = 816
	// PageHeightPx is the fixed preview page height (11in at 96 DPI).
	PageHeightPx = 1056
	// PageMarginPx is the fixed frame margin on all four sides. It is
	// independent of customization.spacing.page, which only pads the
	// content inside the frame.
	PageMarginPx = 48
	// FooterBandPx is the height reserved for the page number band.
	FooterBandPx = 30
)

// DPI is the pixel density used when converting the export paper size
// from inches.
const DPI = 96

// AvailableContentHeight returns the budget the distributor packs
// against and the frame measures against.
func AvailableContentHeight(showPageNumbers bool) int {
	h := PageHeightPx - 2*PageMarginPx
	if showPageNumbers {
		h -= FooterBandPx
	}
	return h
}
