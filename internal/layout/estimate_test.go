package layout

import (
	"strings"
	"testing"

	"cvpress/internal/resume"
)

func testData() *resume.Data {
	visible := func(n int) []resume.ExperienceEntry {
		entries := make([]resume.ExperienceEntry, n)
		for i := range entries {
			entries[i] = resume.ExperienceEntry{ID: "exp", Visible: true}
		}
		return entries
	}
	return &resume.Data{
		Personal:   resume.PersonalInfo{Summary: strings.Repeat("x", 160)},
		Experience: visible(3),
		Education: []resume.EducationEntry{
			{ID: "edu-1", Visible: true},
			{ID: "edu-2", Visible: true},
		},
		Skills: []resume.SkillGroup{
			{ID: "sk-1", Category: "Languages", Skills: []string{"Go"}, Visible: true},
		},
		Projects: []resume.ProjectEntry{
			{ID: "pr-1", Visible: true},
		},
		Certifications: []resume.CertificationEntry{
			{ID: "ce-1", Visible: true},
			{ID: "ce-2", Visible: false},
		},
		Achievements: []resume.AchievementEntry{
			{ID: "ac-1", Visible: true},
			{ID: "ac-2", Visible: true},
			{ID: "ac-3", Visible: true},
		},
	}
}

func TestEstimateSection_Formulas(t *testing.T) {
	est := NewEstimator(testData(), resume.DefaultCustomization())

	cases := []struct {
		name      string
		component resume.Component
		want      int
	}{
		// 160 summary chars / 80 per line = 2 lines * 20px + 60 + 40
		{"personal", resume.ComponentPersonal, 140},
		{"experience", resume.ComponentExperience, 60 + 3*100},
		{"education", resume.ComponentEducation, 60 + 2*60},
		{"skills", resume.ComponentSkills, 140},
		{"projects", resume.ComponentProjects, 180},
		// only the visible certification counts
		{"certifications", resume.ComponentCertifications, 60 + 1*80},
		{"achievements", resume.ComponentAchievements, 60 + 3*40},
		{"custom fallback", resume.ComponentCustom, 110},
		{"unknown fallback", resume.Component("timeline"), 110},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := est.EstimateSection(resume.Section{Component: tc.component})
			if got != tc.want {
				t.Fatalf("estimate for %s = %d, want %d", tc.component, got, tc.want)
			}
		})
	}
}

func TestEstimateSection_EmptySummaryStillChargesSlack(t *testing.T) {
	data := &resume.Data{}
	est := NewEstimator(data, resume.DefaultCustomization())

	got := est.EstimateSection(resume.Section{Component: resume.ComponentPersonal})
	if got != SectionHeaderPx+40 {
		t.Fatalf("empty summary estimate = %d, want %d", got, SectionHeaderPx+40)
	}
}

func TestEstimateSection_NeverBelowHeaderFloor(t *testing.T) {
	data := &resume.Data{}
	est := NewEstimator(data, resume.DefaultCustomization())

	components := []resume.Component{
		resume.ComponentPersonal,
		resume.ComponentExperience,
		resume.ComponentEducation,
		resume.ComponentSkills,
		resume.ComponentProjects,
		resume.ComponentCertifications,
		resume.ComponentAchievements,
		resume.ComponentCustom,
		resume.Component(""),
	}
	for _, c := range components {
		if got := est.EstimateSection(resume.Section{Component: c}); got < SectionHeaderPx {
			t.Fatalf("estimate for %q = %d, below the %dpx floor", c, got, SectionHeaderPx)
		}
	}
}

func TestEstimateSection_Pure(t *testing.T) {
	est := NewEstimator(testData(), resume.DefaultCustomization())
	sec := resume.Section{Component: resume.ComponentExperience}

	first := est.EstimateSection(sec)
	// interleave unrelated estimates; result must not drift
	est.EstimateSection(resume.Section{Component: resume.ComponentSkills})
	est.EstimateSection(resume.Section{Component: resume.ComponentPersonal})
	second := est.EstimateSection(sec)

	if first != second {
		t.Fatalf("estimator is not pure: %d then %d", first, second)
	}
}

func TestEstimateAndDistribute_SkillsThenProjectsSplit(t *testing.T) {
	data := testData()
	est := NewEstimator(data, resume.DefaultCustomization())

	sections := []resume.Section{
		{ID: "s-skills", Component: resume.ComponentSkills, Visible: true},
		{ID: "s-projects", Component: resume.ComponentProjects, Visible: true},
	}

	// skills is 140 and fits alone under 200; adding projects (180)
	// would reach 320, so projects opens page 2.
	pages := Distribute(sections, 200, est.EstimateSection)
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if len(pages[0]) != 1 || pages[0][0].ID != "s-skills" {
		t.Fatalf("expected skills alone on page 1, got %+v", pages[0])
	}
	if len(pages[1]) != 1 || pages[1][0].ID != "s-projects" {
		t.Fatalf("expected projects alone on page 2, got %+v", pages[1])
	}
}
