//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"opmlkit/internal/model"
	"opmlkit/internal/repository"
	"opmlkit/pkg/opml"
)

const exportTitle = "opmlkit subscriptions"

// ExportService renders the stored subscriptions as an OPML document.
type ExportService interface {
	Export(ctx context.Context) ([]byte, error)
}

type exportService struct {
	folders repository.FolderRepository
	subs    repository.SubscriptionRepository
}

func NewExportService(folders repository.FolderRepository, subs repository.SubscriptionRepository) ExportService {
	return &exportService{folders: folders, subs: subs}
}

// Export builds the document folder by folder, case-insensitive folder order,
// then appends the ungrouped subscriptions.
func (s *exportService) Export(ctx context.Context) ([]byte, error) {
	folders, err := s.folders.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(folders, func(i, j int) bool {
		return strings.ToLower(folders[i].Name) < strings.ToLower(folders[j].Name)
	})

	doc := opml.New()
	doc.EnsureHead().Title = strPtr(exportTitle)
	doc.EnsureHead().Stamp(time.Now())

	for _, folder := range folders {
		subs, err := s.subs.ListByFolder(ctx, &folder.ID)
		if err != nil {
			return nil, err
		}
		group := opml.Outline{
			Text:     folder.Name,
			Outlines: lo.Map(subs, subscriptionOutline),
		}
		doc.Body.Outlines = append(doc.Body.Outlines, group)
	}

	loose, err := s.subs.ListByFolder(ctx, nil)
	if err != nil {
		return nil, err
	}
	doc.Body.Outlines = append(doc.Body.Outlines, lo.Map(loose, subscriptionOutline)...)

	payload, err := doc.XML()
	if err != nil {
		return nil, err
	}
	return []byte(payload), nil
}

func subscriptionOutline(sub model.Subscription, _ int) opml.Outline {
	outline := opml.Outline{
		Text:   sub.Title,
		Type:   strPtr("rss"),
		XMLURL: strPtr(sub.URL),
	}
	if sub.SiteURL != nil && *sub.SiteURL != "" {
		outline.HTMLURL = strPtr(*sub.SiteURL)
	}
	if sub.Description != nil && *sub.Description != "" {
		outline.Description = strPtr(*sub.Description)
	}
	return outline
}

func strPtr(s string) *string { return &s }
