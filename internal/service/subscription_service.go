//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"database/sql"
	"errors"

	"opmlkit/internal/model"
	"opmlkit/internal/repository"
)

// SubscriptionService exposes the stored reading list.
type SubscriptionService interface {
	List(ctx context.Context) ([]model.Subscription, error)
	ListFolders(ctx context.Context) ([]model.Folder, error)
	Delete(ctx context.Context, id int64) error
}

type subscriptionService struct {
	folders repository.FolderRepository
	subs    repository.SubscriptionRepository
}

func NewSubscriptionService(folders repository.FolderRepository, subs repository.SubscriptionRepository) SubscriptionService {
	return &subscriptionService{folders: folders, subs: subs}
}

func (s *subscriptionService) List(ctx context.Context) ([]model.Subscription, error) {
	return s.subs.List(ctx)
}

func (s *subscriptionService) ListFolders(ctx context.Context) ([]model.Folder, error) {
	return s.folders.List(ctx)
}

func (s *subscriptionService) Delete(ctx context.Context, id int64) error {
	if err := s.subs.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
