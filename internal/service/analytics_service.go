package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/cache"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/fields"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/repository"
)

// ============================================
// ANALYTICS SERVICE INTERFACE
// ============================================

type AnalyticsService interface {
	Overview(ctx context.Context) (*AnalyticsOverview, error)
	CategoryCompleteness(ctx context.Context) ([]CategoryCompleteness, error)
	TakeSnapshot(ctx context.Context) (*repository.AnalyticsSnapshot, error)
	ListSnapshots(ctx context.Context, days int) ([]repository.AnalyticsSnapshot, error)
}

// ============================================
// RESPONSE MODELS
// ============================================

type CategoryCompleteness struct {
	Category            string          `json:"category"`
	Projects            int             `json:"projects"`
	AverageCompleteness decimal.Decimal `json:"averageCompleteness"`
}

type AnalyticsOverview struct {
	Totals              *repository.PlatformTotals `json:"totals"`
	Categories          []repository.CategoryCount `json:"categories"`
	TopTags             []repository.TagCount      `json:"topTags"`
	Completeness        []CategoryCompleteness     `json:"completeness"`
	AverageCompleteness decimal.Decimal            `json:"averageCompleteness"`
	GeneratedAt         time.Time                  `json:"generatedAt"`
}

type analyticsService struct {
	repo repository.AnalyticsRepository
	now  cache.Clock
}

func NewAnalyticsService(repo repository.AnalyticsRepository, clock cache.Clock) AnalyticsService {
	if clock == nil {
		clock = time.Now
	}
	return &analyticsService{repo: repo, now: clock}
}

func (s *analyticsService) Overview(ctx context.Context) (*AnalyticsOverview, error) {
	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load totals: %w", err)
	}
	categories, err := s.repo.CategoryCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load category counts: %w", err)
	}
	tags, err := s.repo.TopTags(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to load top tags: %w", err)
	}
	states, err := s.repo.ListCategoryState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load category state: %w", err)
	}

	perCategory, overall := averageCompleteness(states)
	return &AnalyticsOverview{
		Totals:              totals,
		Categories:          categories,
		TopTags:             tags,
		Completeness:        perCategory,
		AverageCompleteness: overall,
		GeneratedAt:         s.now(),
	}, nil
}

func (s *analyticsService) CategoryCompleteness(ctx context.Context) ([]CategoryCompleteness, error) {
	states, err := s.repo.ListCategoryState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load category state: %w", err)
	}
	perCategory, _ := averageCompleteness(states)
	return perCategory, nil
}

// TakeSnapshot stores today's totals. Running it twice on one day
// overwrites the first snapshot.
func (s *analyticsService) TakeSnapshot(ctx context.Context) (*repository.AnalyticsSnapshot, error) {
	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load totals: %w", err)
	}
	states, err := s.repo.ListCategoryState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load category state: %w", err)
	}
	_, overall := averageCompleteness(states)

	now := s.now().UTC()
	snap := &repository.AnalyticsSnapshot{
		Day:                 time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		TotalProjects:       totals.Projects,
		TotalUsers:          totals.Users,
		TotalTags:           totals.Tags,
		PendingSubmissions:  totals.PendingSubmissions,
		TotalFavorites:      totals.Favorites,
		AverageCompleteness: overall,
		CreatedAt:           now,
	}
	if err := s.repo.SaveSnapshot(ctx, snap); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return snap, nil
}

func (s *analyticsService) ListSnapshots(ctx context.Context, days int) ([]repository.AnalyticsSnapshot, error) {
	if days <= 0 || days > 365 {
		days = 30
	}
	since := s.now().UTC().AddDate(0, 0, -days)
	return s.repo.ListSnapshots(ctx, since)
}

// averageCompleteness scores every project on its visible fields and
// averages per category and overall, rounded to two decimals.
func averageCompleteness(states []repository.ProjectCategoryState) ([]CategoryCompleteness, decimal.Decimal) {
	type acc struct {
		sum   decimal.Decimal
		count int64
	}
	byCategory := map[string]*acc{}
	total := acc{}

	for _, st := range states {
		score := decimal.NewFromInt(int64(fields.CalculateCompletenessScore(st.FieldOrder, st.CategoryData)))
		a, ok := byCategory[st.Category]
		if !ok {
			a = &acc{}
			byCategory[st.Category] = a
		}
		a.sum = a.sum.Add(score)
		a.count++
		total.sum = total.sum.Add(score)
		total.count++
	}

	out := make([]CategoryCompleteness, 0, len(byCategory))
	for category, a := range byCategory {
		out = append(out, CategoryCompleteness{
			Category:            category,
			Projects:            int(a.count),
			AverageCompleteness: a.sum.Div(decimal.NewFromInt(a.count)).Round(2),
		})
	}
	slices.SortFunc(out, func(a, b CategoryCompleteness) int {
		return strings.Compare(a.Category, b.Category)
	})

	if total.count == 0 {
		return out, decimal.Zero
	}
	return out, total.sum.Div(decimal.NewFromInt(total.count)).Round(2)
}
