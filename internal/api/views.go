package api

import (
	"time"

	"gorm.io/datatypes"

	"resumeforge/internal/database"
)

// 响应视图：统一把日期输出为 YYYY-MM-DD，把 JSON 列原样透传。

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

type technologyView struct {
	ID       uint                        `json:"id"`
	Name     string                      `json:"name"`
	Category database.TechnologyCategory `json:"category"`
	Icon     string                      `json:"icon,omitempty"`
}

func newTechnologyView(t database.Technology) technologyView {
	return technologyView{ID: t.ID, Name: t.Name, Category: t.Category, Icon: t.Icon}
}

func newTechnologyViews(techs []database.Technology) []technologyView {
	out := make([]technologyView, 0, len(techs))
	for _, t := range techs {
		out = append(out, newTechnologyView(t))
	}
	return out
}

type templateView struct {
	ID          uint                    `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	FormatType  database.TemplateFormat `json:"format_type"`
	Thumbnail   string                  `json:"thumbnail,omitempty"`
	Config      datatypes.JSON          `json:"config"`
	Version     int                     `json:"version"`
	IsActive    bool                    `json:"is_active"`
}

func newTemplateView(t database.ResumeTemplate) templateView {
	return templateView{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		FormatType:  t.FormatType,
		Thumbnail:   t.Thumbnail,
		Config:      t.Config,
		Version:     t.Version,
		IsActive:    t.IsActive,
	}
}

type sectionView struct {
	ID          uint                 `json:"id"`
	SectionType database.SectionType `json:"section_type"`
	Title       string               `json:"title"`
	Content     datatypes.JSON       `json:"content"`
	SortOrder   int                  `json:"sort_order"`
	IsVisible   bool                 `json:"is_visible"`
}

func newSectionView(s database.ResumeSection) sectionView {
	return sectionView{
		ID:          s.ID,
		SectionType: s.SectionType,
		Title:       s.Title,
		Content:     s.Content,
		SortOrder:   s.SortOrder,
		IsVisible:   s.IsVisible,
	}
}

type experienceView struct {
	ID           uint             `json:"id"`
	JobTitle     string           `json:"job_title"`
	Company      string           `json:"company"`
	Location     string           `json:"location,omitempty"`
	StartDate    string           `json:"start_date"`
	EndDate      *string          `json:"end_date"`
	IsCurrent    bool             `json:"is_current"`
	Description  string           `json:"description,omitempty"`
	Achievements datatypes.JSON   `json:"achievements"`
	Technologies []technologyView `json:"technologies"`
}

func newExperienceView(e database.WorkExperience) experienceView {
	return experienceView{
		ID:           e.ID,
		JobTitle:     e.JobTitle,
		Company:      e.Company,
		Location:     e.Location,
		StartDate:    formatDate(e.StartDate),
		EndDate:      formatDatePtr(e.EndDate),
		IsCurrent:    e.IsCurrent,
		Description:  e.Description,
		Achievements: e.Achievements,
		Technologies: newTechnologyViews(e.Technologies),
	}
}

type skillView struct {
	ID              uint           `json:"id"`
	Technology      technologyView `json:"technology"`
	Proficiency     int            `json:"proficiency"`
	YearsExperience int            `json:"years_experience"`
	LastUsed        *string        `json:"last_used"`
	ProjectCount    int            `json:"project_count"`
	IsVisible       bool           `json:"is_visible"`
}

func newSkillView(s database.TechnicalSkill) skillView {
	return skillView{
		ID:              s.ID,
		Technology:      newTechnologyView(s.Technology),
		Proficiency:     s.Proficiency,
		YearsExperience: s.YearsExperience,
		LastUsed:        formatDatePtr(s.LastUsed),
		ProjectCount:    s.ProjectCount,
		IsVisible:       s.IsVisible,
	}
}

type educationView struct {
	ID          uint     `json:"id"`
	Degree      string   `json:"degree"`
	Institution string   `json:"institution"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	GPA         *float64 `json:"gpa"`
	Description string   `json:"description,omitempty"`
	IsVisible   bool     `json:"is_visible"`
}

func newEducationView(e database.Education) educationView {
	return educationView{
		ID:          e.ID,
		Degree:      e.Degree,
		Institution: e.Institution,
		Location:    e.Location,
		StartDate:   formatDate(e.StartDate),
		EndDate:     formatDate(e.EndDate),
		GPA:         e.GPA,
		Description: e.Description,
		IsVisible:   e.IsVisible,
	}
}

type projectView struct {
	ID           uint             `json:"id"`
	Title        string           `json:"title"`
	Role         string           `json:"role"`
	StartDate    string           `json:"start_date"`
	EndDate      *string          `json:"end_date"`
	Description  string           `json:"description"`
	Outcomes     datatypes.JSON   `json:"outcomes"`
	URL          string           `json:"url,omitempty"`
	IsActive     bool             `json:"is_active"`
	Technologies []technologyView `json:"technologies"`
}

func newProjectView(p database.Project) projectView {
	return projectView{
		ID:           p.ID,
		Title:        p.Title,
		Role:         p.Role,
		StartDate:    formatDate(p.StartDate),
		EndDate:      formatDatePtr(p.EndDate),
		Description:  p.Description,
		Outcomes:     p.Outcomes,
		URL:          p.URL,
		IsActive:     p.IsActive,
		Technologies: newTechnologyViews(p.Technologies),
	}
}

type certificationView struct {
	ID              uint             `json:"id"`
	Name            string           `json:"name"`
	Issuer          string           `json:"issuer"`
	IssueDate       string           `json:"issue_date"`
	ExpirationDate  *string          `json:"expiration_date"`
	CredentialID    string           `json:"credential_id,omitempty"`
	VerificationURL string           `json:"verification_url,omitempty"`
	Skills          []technologyView `json:"skills"`
}

func newCertificationView(c database.Certification) certificationView {
	return certificationView{
		ID:              c.ID,
		Name:            c.Name,
		Issuer:          c.Issuer,
		IssueDate:       formatDate(c.IssueDate),
		ExpirationDate:  formatDatePtr(c.ExpirationDate),
		CredentialID:    c.CredentialID,
		VerificationURL: c.VerificationURL,
		Skills:          newTechnologyViews(c.Skills),
	}
}

type awardView struct {
	ID            uint                   `json:"id"`
	Title         string                 `json:"title"`
	Issuer        string                 `json:"issuer"`
	IssueDate     string                 `json:"issue_date"`
	Category      database.AwardCategory `json:"category"`
	Description   string                 `json:"description,omitempty"`
	ImpactMetrics datatypes.JSON         `json:"impact_metrics"`
	IsVisible     bool                   `json:"is_visible"`
}

func newAwardView(a database.Award) awardView {
	return awardView{
		ID:            a.ID,
		Title:         a.Title,
		Issuer:        a.Issuer,
		IssueDate:     formatDate(a.IssueDate),
		Category:      a.Category,
		Description:   a.Description,
		ImpactMetrics: a.ImpactMetrics,
		IsVisible:     a.IsVisible,
	}
}

type languageView struct {
	ID            uint                         `json:"id"`
	Name          string                       `json:"name"`
	Proficiency   database.LanguageProficiency `json:"proficiency"`
	Certification string                       `json:"certification,omitempty"`
	IsVisible     bool                         `json:"is_visible"`
}

func newLanguageView(l database.SpokenLanguage) languageView {
	return languageView{
		ID:            l.ID,
		Name:          l.Name,
		Proficiency:   l.Proficiency,
		Certification: l.Certification,
		IsVisible:     l.IsVisible,
	}
}

type resumeListItem struct {
	ID           uint                `json:"id"`
	Title        string              `json:"title"`
	Slug         string              `json:"slug"`
	Visibility   database.Visibility `json:"visibility"`
	LanguageCode string              `json:"language_code"`
	TemplateID   *uint               `json:"template_id"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func newResumeListItem(r database.Resume) resumeListItem {
	return resumeListItem{
		ID:           r.ID,
		Title:        r.Title,
		Slug:         r.Slug,
		Visibility:   r.Visibility,
		LanguageCode: r.LanguageCode,
		TemplateID:   r.TemplateID,
		UpdatedAt:    r.UpdatedAt,
	}
}

type resumeView struct {
	ID           uint                `json:"id"`
	Title        string              `json:"title"`
	Slug         string              `json:"slug"`
	Summary      string              `json:"summary,omitempty"`
	Tags         datatypes.JSON      `json:"tags"`
	Template     *templateView       `json:"template"`
	LanguageCode string              `json:"language_code"`
	Visibility   database.Visibility `json:"visibility"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`

	Sections        []sectionView       `json:"sections"`
	WorkExperiences []experienceView    `json:"work_experiences"`
	TechnicalSkills []skillView         `json:"technical_skills"`
	Educations      []educationView     `json:"educations"`
	Projects        []projectView       `json:"projects"`
	Certifications  []certificationView `json:"certifications"`
	Awards          []awardView         `json:"awards"`
	Languages       []languageView      `json:"languages"`
}

func newResumeView(r *database.Resume) resumeView {
	view := resumeView{
		ID:              r.ID,
		Title:           r.Title,
		Slug:            r.Slug,
		Summary:         r.Summary,
		Tags:            r.Tags,
		LanguageCode:    r.LanguageCode,
		Visibility:      r.Visibility,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		Sections:        make([]sectionView, 0, len(r.Sections)),
		WorkExperiences: make([]experienceView, 0, len(r.WorkExperiences)),
		TechnicalSkills: make([]skillView, 0, len(r.TechnicalSkills)),
		Educations:      make([]educationView, 0, len(r.Educations)),
		Projects:        make([]projectView, 0, len(r.Projects)),
		Certifications:  make([]certificationView, 0, len(r.Certifications)),
		Awards:          make([]awardView, 0, len(r.Awards)),
		Languages:       make([]languageView, 0, len(r.Languages)),
	}
	if r.Template != nil {
		tpl := newTemplateView(*r.Template)
		view.Template = &tpl
	}
	for _, s := range r.Sections {
		view.Sections = append(view.Sections, newSectionView(s))
	}
	for _, e := range r.WorkExperiences {
		view.WorkExperiences = append(view.WorkExperiences, newExperienceView(e))
	}
	for _, s := range r.TechnicalSkills {
		view.TechnicalSkills = append(view.TechnicalSkills, newSkillView(s))
	}
	for _, e := range r.Educations {
		view.Educations = append(view.Educations, newEducationView(e))
	}
	for _, p := range r.Projects {
		view.Projects = append(view.Projects, newProjectView(p))
	}
	for _, c := range r.Certifications {
		view.Certifications = append(view.Certifications, newCertificationView(c))
	}
	for _, a := range r.Awards {
		view.Awards = append(view.Awards, newAwardView(a))
	}
	for _, l := range r.Languages {
		view.Languages = append(view.Languages, newLanguageView(l))
	}
	return view
}
