package resume

// Component identifies which estimator/renderer a section maps to.
type Component string

const (
	ComponentPersonal       Component = "personal"
	ComponentExperience     Component = "experience"
	ComponentEducation      Component = "education"
	ComponentSkills         Component = "skills"
	ComponentProjects       Component = "projects"
	ComponentCertifications Component = "certifications"
	ComponentAchievements   Component = "achievements"
	ComponentCustom         Component = "custom"
)

// Section 表示简历中一个可排序、可隐藏的内容块。
// 编辑器负责增删、排序与显隐；布局核心只读。
type Section struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Component       Component `json:"component"`
	Visible         bool      `json:"visible"`
	Order           int       `json:"order"`
	CustomSectionID string    `json:"custom_section_id,omitempty"`
}

// PersonalInfo holds the header block data.
type PersonalInfo struct {
	FullName string `json:"full_name"`
	Headline string `json:"headline"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website"`
	Summary  string `json:"summary"`
}

// ExperienceEntry is one employment record.
type ExperienceEntry struct {
	ID          string   `json:"id"`
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	Location    string   `json:"location"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Current     bool     `json:"current"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights,omitempty"`
	Visible     bool     `json:"visible"`
}

// EducationEntry is one school/degree record.
type EducationEntry struct {
	ID        string `json:"id"`
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	GPA       string `json:"gpa,omitempty"`
	Visible   bool   `json:"visible"`
}

// SkillGroup is a named cluster of skills rendered on one row.
type SkillGroup struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
	Visible  bool     `json:"visible"`
}

// ProjectEntry is one project record.
type ProjectEntry struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
	Visible      bool     `json:"visible"`
}

// CertificationEntry is one certification record.
type CertificationEntry struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Issuer  string `json:"issuer"`
	Date    string `json:"date"`
	URL     string `json:"url,omitempty"`
	Visible bool   `json:"visible"`
}

// AchievementEntry is one achievement line.
type AchievementEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Visible     bool   `json:"visible"`
}

// Data 表示简历的全部结构化内容（不含样式）。
type Data struct {
	Personal       PersonalInfo         `json:"personal"`
	Experience     []ExperienceEntry    `json:"experience"`
	Education      []EducationEntry     `json:"education"`
	Skills         []SkillGroup         `json:"skills"`
	Projects       []ProjectEntry       `json:"projects"`
	Certifications []CertificationEntry `json:"certifications"`
	Achievements   []AchievementEntry   `json:"achievements"`
	CustomSections []CustomSection      `json:"custom_sections,omitempty"`
}

// Document 是存储在 Resume.Content(JSONB) 中的完整结构：
// 内容 + 分区顺序 + 样式配置。
type Document struct {
	Data          Data          `json:"data"`
	Sections      []Section     `json:"sections"`
	Customization Customization `json:"customization"`
	Template      string        `json:"template,omitempty"`
}

// CustomSectionByID resolves a section's custom reference. The boolean
// is false when the reference is dangling; callers must fail soft.
func (d *Data) CustomSectionByID(id string) (*CustomSection, bool) {
	if id == "" {
		return nil, false
	}
	for i := range d.CustomSections {
		if d.CustomSections[i].ID == id {
			return &d.CustomSections[i], true
		}
	}
	return nil, false
}

// VisibleSections returns the visible sections sorted by Order, leaving
// the document untouched. Equal Order values keep input order so repeated
// calls produce identical slices.
func (doc *Document) VisibleSections() []Section {
	out := make([]Section, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		if s.Visible {
			out = append(out, s)
		}
	}
	// insertion sort: stable and the section count is small
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Order < out[j-1].Order; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
