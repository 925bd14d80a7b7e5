//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"opmlkit/internal/model"
	"opmlkit/internal/repository"
	"opmlkit/internal/urlutil"
	"opmlkit/pkg/logger"
	"opmlkit/pkg/opml"
)

// ImportResult summarizes one import run.
type ImportResult struct {
	FoldersCreated int `json:"foldersCreated"`
	FeedsCreated   int `json:"feedsCreated"`
	Skipped        int `json:"skipped"`
}

// ImportService loads the subscriptions of an OPML document into the store.
type ImportService interface {
	Import(ctx context.Context, r io.Reader) (*ImportResult, error)
}

type importService struct {
	folders  repository.FolderRepository
	subs     repository.SubscriptionRepository
	maxDepth int
}

func NewImportService(folders repository.FolderRepository, subs repository.SubscriptionRepository, maxDepth int) ImportService {
	return &importService{folders: folders, subs: subs, maxDepth: maxDepth}
}

func (s *importService) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	doc, err := opml.ParseWithOptions(r, opml.ParseOptions{MaxDepth: s.maxDepth})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	result := &ImportResult{}
	for _, outline := range doc.Body.Outlines {
		if isFeedOutline(outline) {
			if err := s.importFeed(ctx, outline, nil, result); err != nil {
				return nil, err
			}
			continue
		}
		if err := s.importGroup(ctx, outline, result); err != nil {
			return nil, err
		}
	}

	logger.Info("opml imported", "module", "service", "action", "import", "resource", "opml", "result", "ok",
		"folders", result.FoldersCreated, "feeds", result.FeedsCreated, "skipped", result.Skipped)
	return result, nil
}

// importGroup maps a grouping outline to a folder and imports every feed in
// its subtree into that folder. Nested groups flatten into the top folder.
func (s *importService) importGroup(ctx context.Context, group opml.Outline, result *ImportResult) error {
	name := strings.TrimSpace(group.Text)
	if name == "" {
		name = "Untitled"
	}

	folder, err := s.folders.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if folder == nil {
		folder, err = s.folders.Create(ctx, name)
		if err != nil {
			return err
		}
		result.FoldersCreated++
	}

	return s.importSubtree(ctx, group.Outlines, &folder.ID, result)
}

func (s *importService) importSubtree(ctx context.Context, outlines []opml.Outline, folderID *int64, result *ImportResult) error {
	for _, outline := range outlines {
		if isFeedOutline(outline) {
			if err := s.importFeed(ctx, outline, folderID, result); err != nil {
				return err
			}
			continue
		}
		if err := s.importSubtree(ctx, outline.Outlines, folderID, result); err != nil {
			return err
		}
	}
	return nil
}

func (s *importService) importFeed(ctx context.Context, outline opml.Outline, folderID *int64, result *ImportResult) error {
	url := urlutil.Normalize(*outline.XMLURL)
	if url == "" {
		result.Skipped++
		return nil
	}

	existing, err := s.subs.FindByURL(ctx, url)
	if err != nil {
		return err
	}
	if existing != nil {
		result.Skipped++
		return nil
	}

	title := strings.TrimSpace(outline.Text)
	if title == "" && outline.Title != nil {
		title = strings.TrimSpace(*outline.Title)
	}
	if title == "" {
		title = url
	}

	sub := model.Subscription{
		FolderID: folderID,
		Title:    title,
		URL:      url,
	}
	if outline.HTMLURL != nil && strings.TrimSpace(*outline.HTMLURL) != "" {
		siteURL := strings.TrimSpace(*outline.HTMLURL)
		sub.SiteURL = &siteURL
	}
	if outline.Description != nil && strings.TrimSpace(*outline.Description) != "" {
		description := strings.TrimSpace(*outline.Description)
		sub.Description = &description
	}

	if _, err := s.subs.Create(ctx, sub); err != nil {
		return err
	}
	result.FeedsCreated++
	return nil
}

func isFeedOutline(outline opml.Outline) bool {
	return outline.XMLURL != nil && strings.TrimSpace(*outline.XMLURL) != ""
}
