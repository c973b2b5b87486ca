package database

import (
	"time"

	"gorm.io/datatypes"
)

// Role 表示账号角色。
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// Valid 判断角色取值是否合法。
func (r Role) Valid() bool {
	switch r {
	case RoleCandidate, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

// Visibility 表示简历的可见性。
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
	VisibilityShared  Visibility = "shared"
)

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPrivate, VisibilityPublic, VisibilityShared:
		return true
	}
	return false
}

// TemplateFormat 表示模板的排版风格。
type TemplateFormat string

const (
	FormatClassic   TemplateFormat = "classic"
	FormatModern    TemplateFormat = "modern"
	FormatCreative  TemplateFormat = "creative"
	FormatTechnical TemplateFormat = "technical"
)

func (f TemplateFormat) Valid() bool {
	switch f {
	case FormatClassic, FormatModern, FormatCreative, FormatTechnical:
		return true
	}
	return false
}

// SectionType 表示简历章节类型，同一简历内每种类型至多一个。
type SectionType string

const (
	SectionPersonal   SectionType = "personal"
	SectionSummary    SectionType = "summary"
	SectionExperience SectionType = "experience"
	SectionEducation  SectionType = "education"
	SectionSkills     SectionType = "skills"
	SectionProjects   SectionType = "projects"
	SectionCustom     SectionType = "custom"
)

func (t SectionType) Valid() bool {
	switch t {
	case SectionPersonal, SectionSummary, SectionExperience, SectionEducation,
		SectionSkills, SectionProjects, SectionCustom:
		return true
	}
	return false
}

// TechnologyCategory 表示技术条目的分类。
type TechnologyCategory string

const (
	CategoryLanguage  TechnologyCategory = "language"
	CategoryFramework TechnologyCategory = "framework"
	CategoryTool      TechnologyCategory = "tool"
	CategoryCloud     TechnologyCategory = "cloud"
	CategoryDatabase  TechnologyCategory = "database"
)

func (c TechnologyCategory) Valid() bool {
	switch c {
	case CategoryLanguage, CategoryFramework, CategoryTool, CategoryCloud, CategoryDatabase:
		return true
	}
	return false
}

// AwardCategory 表示奖项类别。
type AwardCategory string

const (
	AwardProfessional AwardCategory = "professional"
	AwardAcademic     AwardCategory = "academic"
	AwardInnovation   AwardCategory = "innovation"
)

func (c AwardCategory) Valid() bool {
	switch c {
	case AwardProfessional, AwardAcademic, AwardInnovation:
		return true
	}
	return false
}

// LanguageProficiency 表示语言熟练度。
type LanguageProficiency string

const (
	ProficiencyNative       LanguageProficiency = "native"
	ProficiencyFluent       LanguageProficiency = "fluent"
	ProficiencyProfessional LanguageProficiency = "professional"
	ProficiencyLimited      LanguageProficiency = "limited"
)

func (p LanguageProficiency) Valid() bool {
	switch p {
	case ProficiencyNative, ProficiencyFluent, ProficiencyProfessional, ProficiencyLimited:
		return true
	}
	return false
}

// SkillProficiencies 是 TechnicalSkill.Proficiency 允许的离散取值。
var SkillProficiencies = []int{20, 40, 60, 80, 100}

// ValidSkillProficiency 判断技能熟练度是否在允许集合内。
func ValidSkillProficiency(v int) bool {
	for _, allowed := range SkillProficiencies {
		if v == allowed {
			return true
		}
	}
	return false
}

// User 表示系统中的账号信息。
// 角色提升（admin）必须经 NewAdminUser 构造，保证三个标志位一致。
type User struct {
	ID           uint   `gorm:"primarykey"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	Username     string `gorm:"uniqueIndex;size:150;not null"`
	FirstName    string `gorm:"size:150"`
	LastName     string `gorm:"size:150"`
	Phone        string `gorm:"size:20"`
	PasswordHash string `gorm:"size:255"`
	Role         Role   `gorm:"type:varchar(20);default:'candidate'"`
	IsStaff      bool   `gorm:"default:false"`
	IsSuperuser  bool   `gorm:"default:false"`
	IsActive     bool   `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Resumes []Resume `gorm:"constraint:OnDelete:CASCADE"`
}

// ResumeTemplate 表示可复用的版式模板。
// 名称全局唯一；version 由调用方提供；停用后对普通用户不可选，
// 但不影响已引用它的简历。
type ResumeTemplate struct {
	ID          uint           `gorm:"primarykey"`
	Name        string         `gorm:"uniqueIndex;size:100;not null"`
	Description string         `gorm:"type:text"`
	FormatType  TemplateFormat `gorm:"type:varchar(20);not null"`
	Thumbnail   string         `gorm:"size:512"`
	Config      datatypes.JSON `gorm:"type:jsonb"`
	Version     int            `gorm:"default:1"`
	IsActive    bool           `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Resume 是聚合根：所有子集合随它级联删除。
// 约束：slug 全局唯一；(user_id, title) 唯一。
type Resume struct {
	ID           uint           `gorm:"primarykey"`
	UserID       uint           `gorm:"not null;uniqueIndex:idx_resumes_owner_title;index:idx_resumes_user_visibility,priority:1"`
	Title        string         `gorm:"size:255;not null;uniqueIndex:idx_resumes_owner_title"`
	Slug         string         `gorm:"uniqueIndex;size:300;not null"`
	Summary      string         `gorm:"type:text"`
	Tags         datatypes.JSON `gorm:"type:jsonb"`
	TemplateID   *uint          `gorm:"index"`
	LanguageCode string         `gorm:"size:7;default:'en'"`
	Visibility   Visibility     `gorm:"type:varchar(20);default:'private';index:idx_resumes_user_visibility,priority:2"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	User     User            `gorm:"constraint:OnDelete:CASCADE"`
	Template *ResumeTemplate `gorm:"constraint:OnDelete:SET NULL"`

	Sections        []ResumeSection  `gorm:"constraint:OnDelete:CASCADE"`
	WorkExperiences []WorkExperience `gorm:"constraint:OnDelete:CASCADE"`
	TechnicalSkills []TechnicalSkill `gorm:"constraint:OnDelete:CASCADE"`
	Educations      []Education      `gorm:"constraint:OnDelete:CASCADE"`
	Projects        []Project        `gorm:"constraint:OnDelete:CASCADE"`
	Certifications  []Certification  `gorm:"constraint:OnDelete:CASCADE"`
	Awards          []Award          `gorm:"constraint:OnDelete:CASCADE"`
	Languages       []SpokenLanguage `gorm:"constraint:OnDelete:CASCADE"`
}

// ResumeSection 表示自定义排版的章节。
// 约束：(resume_id, section_type) 唯一。
type ResumeSection struct {
	ID          uint           `gorm:"primarykey"`
	ResumeID    uint           `gorm:"not null;uniqueIndex:idx_sections_resume_type"`
	SectionType SectionType    `gorm:"type:varchar(20);not null;uniqueIndex:idx_sections_resume_type"`
	Title       string         `gorm:"size:100;not null"`
	Content     datatypes.JSON `gorm:"type:jsonb"`
	SortOrder   int            `gorm:"default:0"`
	IsVisible   bool           `gorm:"default:true"`
}

// WorkExperience 表示工作经历，含成就列表与技术引用。
type WorkExperience struct {
	ID           uint      `gorm:"primarykey"`
	ResumeID     uint      `gorm:"index;not null"`
	JobTitle     string    `gorm:"size:255;not null"`
	Company      string    `gorm:"size:255;not null;index"`
	Location     string    `gorm:"size:255"`
	StartDate    time.Time `gorm:"not null;index"`
	EndDate      *time.Time
	IsCurrent    bool           `gorm:"default:false"`
	Description  string         `gorm:"type:text"`
	Achievements datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Technologies []Technology `gorm:"many2many:work_experience_technologies"`
}

// Technology 是全局技术目录条目，独立于任何简历。
type Technology struct {
	ID        uint               `gorm:"primarykey"`
	Name      string             `gorm:"uniqueIndex;size:100;not null"`
	Category  TechnologyCategory `gorm:"type:varchar(20);not null"`
	Icon      string             `gorm:"size:512"`
	CreatedAt time.Time
}

// TechnicalSkill 把 Technology 与 Resume 关联并附加熟练度。
// 约束：(resume_id, technology_id) 唯一；proficiency ∈ {20,40,60,80,100}。
type TechnicalSkill struct {
	ID              uint `gorm:"primarykey"`
	ResumeID        uint `gorm:"not null;uniqueIndex:idx_skills_resume_technology"`
	TechnologyID    uint `gorm:"not null;uniqueIndex:idx_skills_resume_technology"`
	Proficiency     int  `gorm:"not null;index"`
	YearsExperience int  `gorm:"default:0"`
	LastUsed        *time.Time
	ProjectCount    int  `gorm:"default:0"`
	IsVisible       bool `gorm:"default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Technology Technology `gorm:"constraint:OnDelete:CASCADE"`
}

// Education 表示教育经历。
// 约束：end_date ≥ start_date，在存储层校验后写入。
type Education struct {
	ID          uint      `gorm:"primarykey"`
	ResumeID    uint      `gorm:"index;not null"`
	Degree      string    `gorm:"size:255;not null"`
	Institution string    `gorm:"size:255;not null"`
	Location    string    `gorm:"size:255"`
	StartDate   time.Time `gorm:"not null"`
	EndDate     time.Time `gorm:"not null"`
	GPA         *float64  `gorm:"type:numeric(3,1)"`
	Description string    `gorm:"type:text"`
	IsVisible   bool      `gorm:"default:true"`
}

// Project 表示项目经历，outcomes 为结构化结果数据。
type Project struct {
	ID          uint      `gorm:"primarykey"`
	ResumeID    uint      `gorm:"index;not null"`
	Title       string    `gorm:"size:255;not null"`
	Role        string    `gorm:"size:255;not null"`
	StartDate   time.Time `gorm:"not null"`
	EndDate     *time.Time
	Description string         `gorm:"type:text;not null"`
	Outcomes    datatypes.JSON `gorm:"type:jsonb"`
	URL         string         `gorm:"size:512"`
	IsActive    bool           `gorm:"default:true"`

	Technologies []Technology `gorm:"many2many:project_technologies"`
}

// Certification 表示认证条目，skills 为技术引用。
type Certification struct {
	ID              uint      `gorm:"primarykey"`
	ResumeID        uint      `gorm:"index;not null"`
	Name            string    `gorm:"size:255;not null"`
	Issuer          string    `gorm:"size:255;not null"`
	IssueDate       time.Time `gorm:"not null"`
	ExpirationDate  *time.Time
	CredentialID    string `gorm:"size:100"`
	VerificationURL string `gorm:"size:512"`

	Skills []Technology `gorm:"many2many:certification_skills"`
}

// Award 表示奖项，impact_metrics 为结构化影响指标。
type Award struct {
	ID            uint           `gorm:"primarykey"`
	ResumeID      uint           `gorm:"index;not null"`
	Title         string         `gorm:"size:255;not null"`
	Issuer        string         `gorm:"size:255;not null"`
	IssueDate     time.Time      `gorm:"not null"`
	Category      AwardCategory  `gorm:"type:varchar(50);not null"`
	Description   string         `gorm:"type:text"`
	ImpactMetrics datatypes.JSON `gorm:"type:jsonb"`
	IsVisible     bool           `gorm:"default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SpokenLanguage 表示语言能力（区别于 Resume.LanguageCode）。
type SpokenLanguage struct {
	ID            uint                `gorm:"primarykey"`
	ResumeID      uint                `gorm:"index;not null"`
	Name          string              `gorm:"size:50;not null"`
	Proficiency   LanguageProficiency `gorm:"type:varchar(20);not null"`
	Certification string              `gorm:"size:100"`
	IsVisible     bool                `gorm:"default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AllModels 返回需要迁移的全部模型，按外键依赖排序。
func AllModels() []any {
	return []any{
		&User{},
		&ResumeTemplate{},
		&Technology{},
		&Resume{},
		&ResumeSection{},
		&WorkExperience{},
		&TechnicalSkill{},
		&Education{},
		&Project{},
		&Certification{},
		&Award{},
		&SpokenLanguage{},
	}
}
