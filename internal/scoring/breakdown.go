package scoring

// SkillCategories is the fixed category order used everywhere skills are
// grouped or flattened.
var SkillCategories = []string{
	"programming_languages",
	"frameworks",
	"databases",
	"soft_skills",
	"tools",
	"certifications",
}

// Breakdown is the full scoring result returned by the engine. Only the
// ceiling of FinalScore is ever persisted.
type Breakdown struct {
	FinalScore           float64              `json:"final_score"`
	SkillMatchScore      float64              `json:"skill_match_score"`
	SearchAbilityScore   float64              `json:"search_ability_score"`
	SearchAbilityDetails SearchAbilityDetails `json:"search_ability_details"`
	ExperienceScore      float64              `json:"experience_score"`
	EducationScore       float64              `json:"education_score"`
	MatchedSkills        map[string][]string  `json:"matched_skills"`
	MissingSkills        map[string][]string  `json:"missing_skills"`
	AllResumeSkills      map[string][]string  `json:"all_resume_skills"`
	Experience           ExperienceComparison `json:"experience"`
	Education            EducationComparison  `json:"education"`
}

// SearchAbilityDetails lists the contact signals found in the resume.
type SearchAbilityDetails struct {
	Emails             []string `json:"emails"`
	Phones             []string `json:"phones"`
	SocialMediaHandles []string `json:"social_media_handles"`
}

// ExperienceComparison compares years of experience, resume vs required.
type ExperienceComparison struct {
	Resume   float64 `json:"resume"`
	Required float64 `json:"required"`
}

// EducationComparison compares education, resume vs required.
type EducationComparison struct {
	ResumeEducation   EducationDetail `json:"resume_education"`
	RequiredEducation EducationDetail `json:"required_education"`
}

// EducationDetail holds the highest level and fields of study.
type EducationDetail struct {
	HighestLevel string   `json:"highest_level"`
	Fields       []string `json:"fields"`
}
