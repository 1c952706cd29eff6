package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/quizdeck/quizdeck-backend/internal/logger"
	"github.com/quizdeck/quizdeck-backend/internal/model"
	"github.com/quizdeck/quizdeck-backend/internal/sanitize"
	"github.com/quizdeck/quizdeck-backend/internal/store"
	"github.com/rs/zerolog"
)

const (
	// maxTemplatesPerOwner is a soft quota enforced by a read-then-write
	// check; a failing quota read is logged and does not block creation.
	maxTemplatesPerOwner = 50

	// maxTemplateBytes caps the serialized document size, kept well under
	// the store's own per-document limit.
	maxTemplateBytes = 500 * 1024

	recentUsageLimit = 10

	defaultGradingScale = "traditional"
	defaultPassingGrade = 70
)

// TemplateService handles template CRUD, duplication, usage statistics, and
// quiz instantiation from a template.
type TemplateService struct {
	store store.Store
	usage UsageRecorder
	log   zerolog.Logger
	now   func() time.Time
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(st store.Store, usage UsageRecorder, log zerolog.Logger) *TemplateService {
	return &TemplateService{
		store: st,
		usage: usage,
		log:   log.With().Str("component", "template_service").Logger(),
		now:   time.Now,
	}
}

// Create validates, sanitizes and persists a new template owned by the caller.
func (s *TemplateService) Create(ctx context.Context, callerID string, req *model.CreateTemplateRequest) (*model.Template, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}

	// Soft quota check. A store failure here must not block legitimate
	// creations, so it is logged and ignored.
	var owned []model.Template
	err := s.store.Query(ctx, store.CollectionTemplates, []store.Filter{
		store.Eq("createdBy", callerID),
	}, &owned)
	if err != nil {
		s.log.Warn().Str("context", "template_quota_check").Msg(logger.ErrDetail(err))
	} else if len(owned) >= maxTemplatesPerOwner {
		return nil, ErrTemplateQuota
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: template name is required", ErrInvalidArgument)
	}
	if err := ValidateQuestionSet(req.Questions); err != nil {
		return nil, err
	}
	questions := SanitizeQuestionSet(req.Questions)

	creatorName := sanitize.Text(req.CreatedByName, sanitize.MaxCreatorName)
	if creatorName == "" {
		creatorName = "Teacher"
	}
	gradingScale := req.GradingScale
	if gradingScale == "" {
		gradingScale = defaultGradingScale
	}
	passingGrade := req.PassingGrade
	if passingGrade == 0 {
		passingGrade = defaultPassingGrade
	}
	totalPoints := req.TotalPoints
	if totalPoints == 0 {
		totalPoints = model.TotalPoints(questions)
	}
	tags := sanitize.Tags(req.Tags)
	if tags == nil {
		tags = []string{}
	}

	now := s.now()
	tpl := &model.Template{
		Name:          sanitize.Text(req.Name, sanitize.MaxTemplateName),
		Description:   sanitize.Text(req.Description, sanitize.MaxDescription),
		Category:      model.NormalizeCategory(req.Category),
		Subcategory:   sanitize.Text(req.Subcategory, sanitize.MaxSubcategory),
		CreatedBy:     callerID,
		CreatedByName: creatorName,
		CreatedAt:     now,
		UpdatedAt:     now,
		Questions:     questions,
		GradingScale:  gradingScale,
		PassingGrade:  passingGrade,
		TotalPoints:   totalPoints,
		QuestionCount: len(questions),
		TimesUsed:     0,
		LastUsedAt:    nil,
		IsPublic:      req.IsPublic,
		IsPreMade:     false,
		Tags:          tags,
	}

	if err := checkDocumentSize(tpl); err != nil {
		return nil, err
	}

	id, err := s.store.Add(ctx, store.CollectionTemplates, tpl)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	tpl.ID = id

	s.log.Info().Str("template_id", id).Int("questions", len(questions)).Msg("Template created")
	return tpl, nil
}

// ListMine returns the caller's templates with optional category filter,
// name/description/tag search, ordering and limit. Filtering happens
// service-side; the store only supports equality queries.
func (s *TemplateService) ListMine(ctx context.Context, callerID string, opts model.TemplateListOptions) ([]model.Template, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}

	var templates []model.Template
	err := s.store.Query(ctx, store.CollectionTemplates, []store.Filter{
		store.Eq("createdBy", callerID),
	}, &templates)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	templates = filterByCategory(templates, opts.Category)
	templates = filterBySearch(templates, opts.Search)
	sortTemplates(templates, opts.SortBy, opts.SortDirection)

	if opts.Limit > 0 && len(templates) > opts.Limit {
		templates = templates[:opts.Limit]
	}
	if templates == nil {
		templates = []model.Template{}
	}
	return templates, nil
}

// ListPublic returns public templates ordered by popularity.
func (s *TemplateService) ListPublic(ctx context.Context, callerID string, opts model.TemplateListOptions) ([]model.Template, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}

	filters := []store.Filter{store.Eq("isPublic", true)}
	if opts.Category != "" && opts.Category != "All" {
		filters = append(filters, store.Eq("category", opts.Category))
	}

	var templates []model.Template
	if err := s.store.Query(ctx, store.CollectionTemplates, filters, &templates); err != nil {
		return nil, fmt.Errorf("list public templates: %w", err)
	}

	sortTemplates(templates, "timesUsed", "desc")
	if opts.Limit > 0 && len(templates) > opts.Limit {
		templates = templates[:opts.Limit]
	}
	if templates == nil {
		templates = []model.Template{}
	}
	return templates, nil
}

// GetByID returns a template the caller may read: their own, or a public one.
func (s *TemplateService) GetByID(ctx context.Context, callerID, templateID string) (*model.Template, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}

	var tpl model.Template
	if err := s.store.Get(ctx, store.CollectionTemplates, templateID, &tpl); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("load template: %w", err)
	}
	tpl.ID = templateID

	if tpl.CreatedBy != callerID && !tpl.IsPublic {
		return nil, ErrTemplateAccessDenied
	}
	return &tpl, nil
}

// Update applies a partial update to a template the caller owns. Question
// list changes recompute questionCount and totalPoints.
func (s *TemplateService) Update(ctx context.Context, callerID, templateID string, req *model.UpdateTemplateRequest) (*model.Template, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}

	var tpl model.Template
	if err := s.store.Get(ctx, store.CollectionTemplates, templateID, &tpl); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("load template: %w", err)
	}
	if tpl.CreatedBy != callerID {
		return nil, ErrNotTemplateOwner
	}

	fields := map[string]interface{}{
		"updatedAt": s.now(),
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		fields["name"] = sanitize.Text(*req.Name, sanitize.MaxTemplateName)
	}
	if req.Description != nil {
		fields["description"] = sanitize.Text(*req.Description, sanitize.MaxDescription)
	}
	if req.Category != nil {
		fields["category"] = model.NormalizeCategory(*req.Category)
	}
	if req.Questions != nil {
		if err := ValidateQuestionSet(req.Questions); err != nil {
			return nil, err
		}
		questions := SanitizeQuestionSet(req.Questions)
		fields["questions"] = questions
		fields["questionCount"] = len(questions)
		fields["totalPoints"] = model.TotalPoints(questions)
	}
	if req.GradingScale != nil && *req.GradingScale != "" {
		fields["gradingScale"] = *req.GradingScale
	}
	if req.PassingGrade != nil {
		fields["passingGrade"] = *req.PassingGrade
	}
	if req.IsPublic != nil {
		fields["isPublic"] = *req.IsPublic
	}
	if req.Tags != nil {
		fields["tags"] = sanitize.Tags(req.Tags)
	}

	if err := s.store.Update(ctx, store.CollectionTemplates, templateID, fields); err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}

	var updated model.Template
	if err := s.store.Get(ctx, store.CollectionTemplates, templateID, &updated); err != nil {
		return nil, fmt.Errorf("reload template: %w", err)
	}
	updated.ID = templateID
	return &updated, nil
}

// Delete removes a template the caller owns.
func (s *TemplateService) Delete(ctx context.Context, callerID, templateID string) error {
	if callerID == "" {
		return ErrUnauthenticated
	}

	var tpl model.Template
	if err := s.store.Get(ctx, store.CollectionTemplates, templateID, &tpl); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("load template: %w", err)
	}
	if tpl.CreatedBy != callerID {
		return ErrNotTemplateOwner
	}

	if err := s.store.Delete(ctx, store.CollectionTemplates, templateID); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// Duplicate deep-copies a readable template into a new one owned by the
// caller. The copy is always private regardless of the original's flag.
func (s *TemplateService) Duplicate(ctx context.Context, callerID, callerName, templateID, newName string) (*model.Template, error) {
	original, err := s.GetByID(ctx, callerID, templateID)
	if err != nil {
		return nil, err
	}

	if newName == "" {
		newName = original.Name + " (Copy)"
	}

	return s.Create(ctx, callerID, &model.CreateTemplateRequest{
		Name:          newName,
		Description:   original.Description,
		Category:      original.Category,
		Subcategory:   original.Subcategory,
		CreatedByName: callerName,
		Questions:     original.Questions,
		GradingScale:  original.GradingScale,
		PassingGrade:  original.PassingGrade,
		TotalPoints:   original.TotalPoints,
		IsPublic:      false,
		Tags:          original.Tags,
	})
}

// Stats summarizes a template's usage for a caller with read access,
// including the caller's own most recent instantiations.
func (s *TemplateService) Stats(ctx context.Context, callerID, templateID string) (*model.TemplateStats, error) {
	tpl, err := s.GetByID(ctx, callerID, templateID)
	if err != nil {
		return nil, err
	}

	var usage []model.TemplateUsage
	err = s.store.Query(ctx, store.CollectionTemplateUsage, []store.Filter{
		store.Eq("templateId", templateID),
		store.Eq("usedBy", callerID),
	}, &usage)
	if err != nil {
		return nil, fmt.Errorf("load usage records: %w", err)
	}

	sort.Slice(usage, func(i, j int) bool { return usage[i].UsedAt.After(usage[j].UsedAt) })
	if len(usage) > recentUsageLimit {
		usage = usage[:recentUsageLimit]
	}
	if usage == nil {
		usage = []model.TemplateUsage{}
	}

	return &model.TemplateStats{
		TimesUsed:     tpl.TimesUsed,
		LastUsedAt:    tpl.LastUsedAt,
		QuestionCount: tpl.QuestionCount,
		TotalPoints:   tpl.TotalPoints,
		RecentUsage:   usage,
	}, nil
}

// Instantiate creates a quiz from a template. The caller may override the
// question set with an edited copy, which then goes through the same
// validation and sanitization as a template create. The usage recording is
// handed to the best-effort recorder and never affects the returned quiz.
func (s *TemplateService) Instantiate(ctx context.Context, callerID, templateID string, req *model.CreateQuizFromTemplateRequest) (*model.Quiz, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: quiz title is required", ErrInvalidArgument)
	}
	if req.ClassID == "" {
		return nil, fmt.Errorf("%w: classId is required", ErrInvalidArgument)
	}

	tpl, err := s.GetByID(ctx, callerID, templateID)
	if err != nil {
		return nil, err
	}

	questions := tpl.Questions
	if req.Questions != nil {
		if err := ValidateQuestionSet(req.Questions); err != nil {
			return nil, err
		}
		questions = SanitizeQuestionSet(req.Questions)
	}

	now := s.now()
	quiz := &model.Quiz{
		Title:               sanitize.Text(req.Title, sanitize.MaxQuizTitle),
		Questions:           questions,
		ClassID:             req.ClassID,
		Deadline:            req.Deadline,
		GradingScale:        tpl.GradingScale,
		PassingGrade:        tpl.PassingGrade,
		TotalPoints:         model.TotalPoints(questions),
		CreatedAt:           now,
		CreatedBy:           callerID,
		CreatedFromTemplate: templateID,
	}

	id, err := s.store.Add(ctx, store.CollectionQuizzes, quiz)
	if err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	quiz.ID = id

	s.usage.Record(ctx, model.TemplateUsage{
		TemplateID: templateID,
		UsedBy:     callerID,
		UsedAt:     now,
		ClassID:    req.ClassID,
		QuizID:     id,
	})

	s.log.Info().
		Str("template_id", templateID).
		Str("quiz_id", id).
		Msg("Quiz created from template")
	return quiz, nil
}

// checkDocumentSize rejects documents whose JSON encoding exceeds the store
// limit, reporting the computed size.
func checkDocumentSize(doc interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("measure document: %w", err)
	}
	if len(raw) > maxTemplateBytes {
		return &TemplateTooLargeError{
			SizeKB:    len(raw) / 1024,
			MaxSizeKB: maxTemplateBytes / 1024,
		}
	}
	return nil
}

func filterByCategory(templates []model.Template, category string) []model.Template {
	if category == "" || category == "All" {
		return templates
	}
	out := templates[:0]
	for _, t := range templates {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

func filterBySearch(templates []model.Template, search string) []model.Template {
	query := strings.ToLower(strings.TrimSpace(search))
	if query == "" {
		return templates
	}
	out := templates[:0]
	for _, t := range templates {
		if templateMatches(t, query) {
			out = append(out, t)
		}
	}
	return out
}

func templateMatches(t model.Template, query string) bool {
	if strings.Contains(strings.ToLower(t.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), query) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// sortTemplates orders templates by the given field, newest/highest first by
// default. Unknown fields fall back to createdAt.
func sortTemplates(templates []model.Template, sortBy, direction string) {
	less := func(a, b model.Template) bool {
		switch sortBy {
		case "name":
			return a.Name < b.Name
		case "timesUsed":
			return a.TimesUsed < b.TimesUsed
		case "questionCount":
			return a.QuestionCount < b.QuestionCount
		case "updatedAt":
			return a.UpdatedAt.Before(b.UpdatedAt)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(templates, func(i, j int) bool {
		if direction == "asc" {
			return less(templates[i], templates[j])
		}
		return less(templates[j], templates[i])
	})
}
