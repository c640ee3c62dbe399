package layout

import "cvpress/internal/resume"

// 估算公式的固定参数。这些是对渲染结果的粗粒度近似：
// 预估高度只决定分页位置，估错由 Frame 的溢出检测兜底。
const (
	// SectionHeaderPx covers the section title and its spacing; every
	// section pays it, so no estimate is ever below this floor.
	SectionHeaderPx = 60

	summaryCharsPerLine = 80
	summaryLinePx       = 20
	contactRowSlackPx   = 40

	experienceEntryPx    = 100
	educationEntryPx     = 60
	projectEntryPx       = 120
	skillsBlockPx        = 80
	achievementEntryPx   = 40
	certificationEntryPx = 80
	defaultSectionPx     = 50
)

// Estimator maps sections to estimated rendered pixel heights. It is a
// pure lookup over the resume snapshot it was built with: same input,
// same output, no I/O.
type Estimator struct {
	data *resume.Data
	cust resume.Customization
}

// NewEstimator builds an estimator over one resume snapshot.
func NewEstimator(data *resume.Data, cust resume.Customization) *Estimator {
	return &Estimator{data: data, cust: cust}
}

// EstimateSection returns the estimated height in pixels for one
// section. It never fails: unknown components fall back to the default
// estimate, and the result is always at least SectionHeaderPx.
//
// experience 的估算刻意不随描述长度变化（每条固定 100px）——这是已知
// 且接受的不精确，由下游溢出检测纠偏，不要在这里“修复”。
func (e *Estimator) EstimateSection(sec resume.Section) int {
	base := SectionHeaderPx

	var h int
	switch sec.Component {
	case resume.ComponentPersonal:
		summaryLen := len(e.data.Personal.Summary)
		lines := (summaryLen + summaryCharsPerLine - 1) / summaryCharsPerLine
		h = base + lines*summaryLinePx + contactRowSlackPx
	case resume.ComponentExperience:
		count := 0
		for _, entry := range e.data.Experience {
			if entry.Visible {
				count++
			}
		}
		h = base + count*experienceEntryPx
	case resume.ComponentEducation:
		count := 0
		for _, entry := range e.data.Education {
			if entry.Visible {
				count++
			}
		}
		h = base + count*educationEntryPx
	case resume.ComponentProjects:
		count := 0
		for _, entry := range e.data.Projects {
			if entry.Visible {
				count++
			}
		}
		h = base + count*projectEntryPx
	case resume.ComponentSkills:
		h = base + skillsBlockPx
	case resume.ComponentAchievements:
		count := 0
		for _, entry := range e.data.Achievements {
			if entry.Visible {
				count++
			}
		}
		h = base + count*achievementEntryPx
	case resume.ComponentCertifications:
		count := 0
		for _, entry := range e.data.Certifications {
			if entry.Visible {
				count++
			}
		}
		h = base + count*certificationEntryPx
	default:
		// custom 与未知组件统一走默认估算，缺失的 custom 引用也仍
		// 占据这个最小槽位（fail-soft）。
		h = base + defaultSectionPx
	}

	if h < SectionHeaderPx {
		h = SectionHeaderPx
	}
	return h
}
