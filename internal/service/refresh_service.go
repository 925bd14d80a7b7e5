//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"opmlkit/internal/model"
	"opmlkit/internal/repository"
	"opmlkit/internal/urlutil"
	"opmlkit/pkg/logger"
)

const refreshTimeout = 30 * time.Second

// maxConcurrentRefresh limits parallel feed fetches to avoid overwhelming
// the network and remote servers.
const maxConcurrentRefresh = 8

// refreshRate paces outgoing fetches across the whole refresh run.
var refreshRate = rate.Every(100 * time.Millisecond)

var ErrAlreadyRefreshing = errors.New("refresh already in progress")

// RefreshService re-fetches subscription feeds and backfills their metadata.
type RefreshService interface {
	RefreshAll(ctx context.Context) error
	RefreshSubscription(ctx context.Context, id int64) error
	IsRefreshing() bool
}

type refreshService struct {
	subs         repository.SubscriptionRepository
	limiter      *rate.Limiter
	mu           sync.Mutex
	isRefreshing bool
}

func NewRefreshService(subs repository.SubscriptionRepository) RefreshService {
	return &refreshService{
		subs:    subs,
		limiter: rate.NewLimiter(refreshRate, maxConcurrentRefresh),
	}
}

func (s *refreshService) RefreshAll(ctx context.Context) error {
	s.mu.Lock()
	if s.isRefreshing {
		s.mu.Unlock()
		return ErrAlreadyRefreshing
	}
	s.isRefreshing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isRefreshing = false
		s.mu.Unlock()
	}()

	subs, err := s.subs.List(ctx)
	if err != nil {
		logger.Error("refresh list subscriptions", "module", "service", "action", "list", "resource", "subscription", "result", "failed", "error", err)
		return err
	}

	logger.Info("refresh started", "module", "service", "action", "refresh", "resource", "subscription", "result", "ok", "count", len(subs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRefresh)
	for _, sub := range subs {
		sub := sub
		g.Go(func() error {
			if err := s.limiter.Wait(gctx); err != nil {
				return err
			}
			// Per-feed failures are recorded and logged, never fatal for the run.
			if err := s.refreshOne(gctx, sub); err != nil {
				logger.Error("refresh subscription failed", "module", "service", "action", "refresh", "resource", "subscription", "result", "failed",
					"subscription_id", sub.ID, "title", sub.Title, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("refresh completed", "module", "service", "action", "refresh", "resource", "subscription", "result", "ok", "count", len(subs))
	return nil
}

func (s *refreshService) RefreshSubscription(ctx context.Context, id int64) error {
	sub, err := s.subs.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: subscription %d", ErrNotFound, id)
	}
	if err := s.refreshOne(ctx, *sub); err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return nil
}

func (s *refreshService) IsRefreshing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRefreshing
}

func (s *refreshService) refreshOne(ctx context.Context, sub model.Subscription) error {
	if !urlutil.IsHTTP(sub.URL) {
		return fmt.Errorf("unsupported url scheme: %s", sub.URL)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	parser := gofeed.NewParser()
	parsed, err := parser.ParseURLWithContext(sub.URL, fetchCtx)
	if err != nil {
		return err
	}

	updated := false
	if title := strings.TrimSpace(parsed.Title); title != "" && title != sub.Title {
		sub.Title = title
		updated = true
	}
	if link := strings.TrimSpace(parsed.Link); link != "" && (sub.SiteURL == nil || *sub.SiteURL == "") {
		sub.SiteURL = &link
		updated = true
	}
	if desc := strings.TrimSpace(parsed.Description); desc != "" && (sub.Description == nil || *sub.Description == "") {
		sub.Description = &desc
		updated = true
	}

	if updated {
		if _, err := s.subs.Update(ctx, sub); err != nil {
			logger.Warn("update subscription metadata failed", "module", "service", "action", "update", "resource", "subscription", "result", "failed",
				"subscription_id", sub.ID, "error", err)
		}
	}

	return s.subs.UpdateLastRefreshed(ctx, sub.ID, time.Now().UTC())
}
