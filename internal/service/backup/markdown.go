package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phrazzld/algodeck/internal/domain"
)

// ExportMarkdown renders every item (or just one, when itemID is non-nil)
// to a markdown file under dir and returns the directory written to.
// Solutions appear grouped by tier in progression order.
func (s *Service) ExportMarkdown(ctx context.Context, dir string, itemID *int64) (string, error) {
	var (
		items []domain.Item
		err   error
	)
	if itemID != nil {
		item, getErr := s.items.GetByID(ctx, *itemID)
		if getErr != nil {
			return "", getErr
		}
		items = []domain.Item{*item}
	} else {
		items, err = s.items.GetAll(ctx)
		if err != nil {
			return "", fmt.Errorf("collect items: %w", err)
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create markdown dir: %w", err)
	}

	for _, item := range items {
		solutions, err := s.solutions.ByItem(ctx, item.ID)
		if err != nil {
			return "", fmt.Errorf("collect solutions for item %d: %w", item.ID, err)
		}
		md := renderMarkdown(item, solutions)
		name := sanitizeFilename(item.Title) + ".md"
		if err := os.WriteFile(filepath.Join(dir, name), []byte(md), 0o644); err != nil {
			return "", fmt.Errorf("write %s: %w", name, err)
		}
	}
	return dir, nil
}

func renderMarkdown(item domain.Item, solutions []domain.Solution) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", item.Title)
	fmt.Fprintf(&b, "**Difficulty:** %s  \n", item.Difficulty)
	fmt.Fprintf(&b, "**Tags:** %s  \n", strings.Join(item.Tags, ", "))
	fmt.Fprintf(&b, "**Created:** %s  \n", item.CreatedAt.Format(domain.DateFormat))

	if item.Notes != "" {
		b.WriteString("\n## Notes\n\n")
		b.WriteString(item.Notes)
		b.WriteString("\n")
	}

	b.WriteString("\n## Problem\n\n")
	if item.ScreenshotPath != "" {
		fmt.Fprintf(&b, "![Problem Screenshot](images/%s)\n\n", filepath.Base(item.ScreenshotPath))
	}
	if item.OCRText != "" {
		fmt.Fprintf(&b, "```\n%s\n```\n", item.OCRText)
	}

	for _, tier := range []domain.SolutionTier{domain.TierBrute, domain.TierOptimized, domain.TierBest} {
		var group []domain.Solution
		for _, sol := range solutions {
			if sol.Tier == tier {
				group = append(group, sol)
			}
		}
		if len(group) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n## %s\n\n", tier.Label())
		for i, sol := range group {
			if len(group) > 1 {
				fmt.Fprintf(&b, "### Solution %d\n\n", i+1)
			}
			if sol.Code != "" {
				lang := sol.Language
				fmt.Fprintf(&b, "```%s\n%s\n```\n\n", lang, sol.Code)
			}
			if sol.Explanation != "" {
				fmt.Fprintf(&b, "**Explanation:** %s\n\n", sol.Explanation)
			}
			if sol.TimeComplexity != "" {
				fmt.Fprintf(&b, "**Time:** %s  \n", sol.TimeComplexity)
			}
			if sol.SpaceComplexity != "" {
				fmt.Fprintf(&b, "**Space:** %s\n", sol.SpaceComplexity)
			}
		}
	}

	return b.String()
}

// sanitizeFilename reduces a title to a safe filename: alphanumerics,
// dashes and underscores survive, everything else collapses to an
// underscore.
func sanitizeFilename(title string) string {
	out := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, title)
	if out == "" {
		out = "item"
	}
	return out
}
