package render

import (
	"strings"

	"cvpress/internal/resume"
)

// blockView 是所有分区条目的统一渲染形状：不同组件在这里收敛成
// 主行/副行/元信息/正文/标签，模板不再关心组件类型。
type blockView struct {
	Primary   string
	Secondary string
	Meta      string
	Body      string
	Tags      []string
}

type sectionView struct {
	ID     string
	Title  string
	Blocks []blockView
	// Empty marks a section whose data resolved to nothing (for
	// example a dangling custom reference). It still renders its
	// title slot.
	Empty bool
}

func dateRange(start, end string, current bool) string {
	switch {
	case current:
		return strings.TrimSpace(start) + " – Present"
	case start == "" && end == "":
		return ""
	default:
		return strings.TrimSpace(start) + " – " + strings.TrimSpace(end)
	}
}

// buildSectionView flattens one section's data into the uniform shape.
// Unresolvable data never errors: the section renders empty and keeps
// its slot.
func buildSectionView(sec resume.Section, data *resume.Data) sectionView {
	view := sectionView{ID: sec.ID, Title: sec.Title}

	switch sec.Component {
	case resume.ComponentPersonal:
		if s := strings.TrimSpace(data.Personal.Summary); s != "" {
			view.Blocks = append(view.Blocks, blockView{Body: s})
		}
	case resume.ComponentExperience:
		for _, e := range data.Experience {
			if !e.Visible {
				continue
			}
			view.Blocks = append(view.Blocks, blockView{
				Primary:   e.Position,
				Secondary: e.Company,
				Meta:      dateRange(e.StartDate, e.EndDate, e.Current),
				Body:      e.Description,
				Tags:      e.Highlights,
			})
		}
	case resume.ComponentEducation:
		for _, e := range data.Education {
			if !e.Visible {
				continue
			}
			degree := strings.TrimSpace(e.Degree)
			if e.Field != "" {
				degree = strings.TrimSpace(degree + ", " + e.Field)
			}
			view.Blocks = append(view.Blocks, blockView{
				Primary:   e.School,
				Secondary: degree,
				Meta:      dateRange(e.StartDate, e.EndDate, false),
				Body:      e.GPA,
			})
		}
	case resume.ComponentSkills:
		for _, g := range data.Skills {
			if !g.Visible {
				continue
			}
			view.Blocks = append(view.Blocks, blockView{
				Primary: g.Category,
				Tags:    g.Skills,
			})
		}
	case resume.ComponentProjects:
		for _, p := range data.Projects {
			if !p.Visible {
				continue
			}
			view.Blocks = append(view.Blocks, blockView{
				Primary:   p.Name,
				Secondary: p.URL,
				Body:      p.Description,
				Tags:      p.Technologies,
			})
		}
	case resume.ComponentCertifications:
		for _, c := range data.Certifications {
			if !c.Visible {
				continue
			}
			view.Blocks = append(view.Blocks, blockView{
				Primary:   c.Name,
				Secondary: c.Issuer,
				Meta:      c.Date,
			})
		}
	case resume.ComponentAchievements:
		for _, a := range data.Achievements {
			if !a.Visible {
				continue
			}
			view.Blocks = append(view.Blocks, blockView{
				Primary: a.Title,
				Body:    a.Description,
			})
		}
	case resume.ComponentCustom:
		custom, ok := data.CustomSectionByID(sec.CustomSectionID)
		if !ok {
			// 引用悬空：不渲染内容，但标题槽位保留。
			view.Empty = true
			return view
		}
		if custom.Title != "" && view.Title == "" {
			view.Title = custom.Title
		}
		view.Blocks = customBlocks(custom)
	default:
		view.Empty = true
	}

	if len(view.Blocks) == 0 {
		view.Empty = true
	}
	return view
}

func customBlocks(sec *resume.CustomSection) []blockView {
	switch sec.Type {
	case resume.CustomTypeText:
		if strings.TrimSpace(sec.Text) == "" {
			return nil
		}
		return []blockView{{Body: sec.Text}}
	case resume.CustomTypeList, resume.CustomTypeAchievements:
		blocks := make([]blockView, 0, len(sec.Items))
		for _, item := range sec.Items {
			switch item.Kind {
			case resume.CustomItemPlain:
				blocks = append(blocks, blockView{Body: item.Text})
			case resume.CustomItemSkillGroup:
				blocks = append(blocks, blockView{Primary: item.Category, Tags: item.Skills})
			case resume.CustomItemProject:
				blocks = append(blocks, blockView{
					Primary: item.Name,
					Body:    item.Description,
					Tags:    item.Technologies,
				})
			case resume.CustomItemCredential:
				blocks = append(blocks, blockView{
					Primary:   item.Title,
					Secondary: item.Issuer,
					Body:      item.Description,
				})
			case resume.CustomItemAchievement:
				blocks = append(blocks, blockView{Primary: item.Title, Body: item.Description})
			}
		}
		return blocks
	default:
		return nil
	}
}
