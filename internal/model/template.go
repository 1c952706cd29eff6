package model

import "time"

// TemplateCategories is the closed set of template categories. Unknown values
// fall back to "Other".
var TemplateCategories = []string{
	"Mathematics",
	"Science",
	"English/Language Arts",
	"History/Social Studies",
	"Geography",
	"Computer Science",
	"Art & Music",
	"Physical Education",
	"Foreign Languages",
	"General Knowledge",
	"Other",
}

// NormalizeCategory maps arbitrary input onto the closed category set.
func NormalizeCategory(category string) string {
	for _, c := range TemplateCategories {
		if c == category {
			return category
		}
	}
	return "Other"
}

// Template is a reusable, named question set owned by a teacher. A public
// template may be read and instantiated by anyone but mutated only by its
// creator.
type Template struct {
	ID            string     `json:"id,omitempty"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Subcategory   string     `json:"subcategory"`
	CreatedBy     string     `json:"createdBy"`
	CreatedByName string     `json:"createdByName"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Questions     []Question `json:"questions"`
	GradingScale  string     `json:"gradingScale"`
	PassingGrade  int        `json:"passingGrade"`
	TotalPoints   int        `json:"totalPoints"`
	QuestionCount int        `json:"questionCount"`
	TimesUsed     int        `json:"timesUsed"`
	LastUsedAt    *time.Time `json:"lastUsedAt"`
	IsPublic      bool       `json:"isPublic"`
	IsPreMade     bool       `json:"isPreMade"`
	Tags          []string   `json:"tags"`
}

// CreateTemplateRequest is the payload for creating a template.
type CreateTemplateRequest struct {
	Name          string     `json:"name" binding:"required"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Subcategory   string     `json:"subcategory"`
	CreatedByName string     `json:"createdByName"`
	Questions     []Question `json:"questions" binding:"required"`
	GradingScale  string     `json:"gradingScale"`
	PassingGrade  int        `json:"passingGrade"`
	TotalPoints   int        `json:"totalPoints"`
	IsPublic      bool       `json:"isPublic"`
	Tags          []string   `json:"tags"`
}

// UpdateTemplateRequest is the partial-update payload. Nil fields are left
// untouched. Changing the question list recomputes questionCount and
// totalPoints.
type UpdateTemplateRequest struct {
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	Category     *string    `json:"category"`
	Questions    []Question `json:"questions"`
	GradingScale *string    `json:"gradingScale"`
	PassingGrade *int       `json:"passingGrade"`
	IsPublic     *bool      `json:"isPublic"`
	Tags         []string   `json:"tags"`
}

// DuplicateTemplateRequest names the copy; empty means "<original> (Copy)".
type DuplicateTemplateRequest struct {
	Name string `json:"name"`
}

// TemplateListOptions filters and orders a template listing.
type TemplateListOptions struct {
	Category      string
	Search        string
	SortBy        string
	SortDirection string
	Limit         int
}

// TemplateStats summarizes a template's usage for its owner.
type TemplateStats struct {
	TimesUsed     int             `json:"timesUsed"`
	LastUsedAt    *time.Time      `json:"lastUsedAt"`
	QuestionCount int             `json:"questionCount"`
	TotalPoints   int             `json:"totalPoints"`
	RecentUsage   []TemplateUsage `json:"recentUsage"`
}
