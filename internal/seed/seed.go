// internal/seed/seed.go
package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/fields"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/repository"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/service"
)

// DemoUserID is the identity provider subject of the seeded demo user.
const DemoUserID = "user_demo"

var starterTags = []string{"go", "typescript", "react", "rust", "python", "open-source", "side-project"}

type demoProject struct {
	title    string
	category string
	data     fields.Values
	tags     []string
}

var demoProjects = []demoProject{
	{
		title:    "Portfolio Site",
		category: "web",
		data: fields.Values{
			"projectStatus":     "released",
			"techStack":         "TypeScript, Next.js",
			"frontendFramework": "react",
		},
		tags: []string{"typescript", "react"},
	},
	{
		title:    "Log Tailer",
		category: "cli",
		data: fields.Values{
			"techStack":      "Go",
			"installCommand": "go install example.com/logtail@latest",
		},
		tags: []string{"go", "open-source"},
	},
	{
		title:    "Untitled Idea",
		category: "other",
		tags:     []string{"side-project"},
	},
}

// SeedData creates a demo user, the starter tags and a few projects across
// categories. It does nothing once the demo user owns a project.
func SeedData(ctx context.Context, repos *repository.Repositories, services *service.Services, log *zap.Logger) error {
	existing, err := repos.ProjectRepo.FindByOwnerID(ctx, DemoUserID, false)
	if err != nil {
		return fmt.Errorf("failed to check seed data: %w", err)
	}
	if len(existing) > 0 {
		log.Info("seed data already present, skipping")
		return nil
	}

	name := "Demo User"
	if _, err := services.User.Sync(ctx, &service.Identity{
		UserID:   DemoUserID,
		Email:    "demo@codedetails.dev",
		Username: "demo",
		FullName: &name,
	}); err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	for _, tag := range starterTags {
		if err := repos.TagRepo.Create(ctx, &repository.Tag{Name: tag}); err != nil {
			return fmt.Errorf("failed to seed tag %q: %w", tag, err)
		}
	}

	for _, p := range demoProjects {
		project, err := services.Project.Create(ctx, DemoUserID, service.CreateProjectInput{
			Title:        p.title,
			Category:     p.category,
			CategoryData: p.data,
		})
		if err != nil {
			return fmt.Errorf("failed to seed project %q: %w", p.title, err)
		}
		for _, tag := range p.tags {
			if _, err := services.Tag.AttachTag(ctx, DemoUserID, project.ID, tag, nil); err != nil {
				return fmt.Errorf("failed to tag project %q: %w", p.title, err)
			}
		}
		log.Debug("seeded project",
			zap.String("slug", project.Slug),
			zap.Int("completeness", fields.CalculateCompletenessScore(project.FieldOrder, project.CategoryData)))
	}

	log.Info("seed data created", zap.Int("projects", len(demoProjects)), zap.Int("tags", len(starterTags)))
	return nil
}
