package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"opmlkit/internal/model"
	"opmlkit/internal/repository"
	"opmlkit/internal/repository/testutil"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSubscriptionRepository_Create_Success(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewSubscriptionRepository(db)
	ctx := context.Background()

	sub, err := repo.Create(ctx, model.Subscription{
		Title:   "Example Feed",
		URL:     "https://a.example/rss",
		SiteURL: strPtr("https://a.example"),
	})
	require.NoError(t, err)
	require.NotZero(t, sub.ID)
	require.Equal(t, "Example Feed", sub.Title)
	require.Equal(t, "https://a.example/rss", sub.URL)
	require.NotNil(t, sub.SiteURL)
	require.Equal(t, "https://a.example", *sub.SiteURL)
	require.Nil(t, sub.FolderID)
	require.False(t, sub.CreatedAt.IsZero())
}

func TestSubscriptionRepository_Create_WithFolder(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewSubscriptionRepository(db)
	ctx := context.Background()

	folderID := testutil.SeedFolder(t, db, "Tech")

	sub, err := repo.Create(ctx, model.Subscription{
		FolderID: &folderID,
		Title:    "Example Feed",
		URL:      "https://a.example/rss",
	})
	require.NoError(t, err)
	require.NotNil(t, sub.FolderID)
	require.Equal(t, folderID, *sub.FolderID)
}

func TestSubscriptionRepository_Create_DuplicateURL(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewSubscriptionRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, model.Subscription{Title: "A", URL: "https://a.example/rss"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, model.Subscription{Title: "B", URL: "https://a.example/rss"})
	require.Error(t, err)
}

func TestSubscriptionRepository_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewSubscriptionRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 99999)
	require.Error(t, err)
	require.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestSubscriptionRepository_FindByURL_Success(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewSubscriptionRepository(db)
	ctx := context.Background()

	id := testutil.SeedSubscription(t, db, model.Subscription{Title: "A", URL: "https://a.example/rss"})

	sub, err := repo.FindByURL(ctx, "https://a.example/rss")
	require.NoError(t, err)
	require.NotNil(t, sub)
	require.Equal(t, id, sub.ID)
}

func TestSubscriptionRepository_FindByURL_NotFound(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewSubscriptionRepository(db)
	ctx := context.Background()

	sub, err := repo.FindByURL(ctx, "https://missing.example/rss")
	require.NoError(t, err)
	require.Nil(t, sub)
}

func TestSubscriptionRepository_List_OrderedByTitle(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewSubscriptionRepository(db)
	ctx := context.Background()

	testutil.SeedSubscription(t, db, model.Subscription{Title: "Charlie", URL: "https://c.example/rss"})
	testutil.SeedSubscription(t, db, model.Subscription{Title: "Alpha", URL: "https://a.example/rss"})
	testutil.SeedSubscription(t, db, model.Subscription{Title: "Bravo", URL: "https://b.example/rss"})

	subs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 3)
	require.Equal(t, "Alpha", subs[0].Title)
	require.Equal(t, "Bravo", subs[1].Title)
	require.Equal(t, "Charlie", subs[2].Title)
}

func TestSubscriptionRepository_ListByFolder(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewSubscriptionRepository(db)
	ctx := context.Background()

	folderID := testutil.SeedFolder(t, db, "Tech")
	testutil.SeedSubscription(t, db, model.Subscription{FolderID: &folderID, Title: "Grouped", URL: "https://g.example/rss"})
	testutil.SeedSubscription(t, db, model.Subscription{Title: "Loose", URL: "https://l.example/rss"})

	grouped, err := repo.ListByFolder(ctx, &folderID)
	require.NoError(t, err)
	require.Len(t, grouped, 1)
	require.Equal(t, "Grouped", grouped[0].Title)

	loose, err := repo.ListByFolder(ctx, nil)
	require.NoError(t, err)
	require.Len(t, loose, 1)
	require.Equal(t, "Loose", loose[0].Title)
}

func TestSubscriptionRepository_Update_Success(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewSubscriptionRepository(db)
	ctx := context.Background()

	id := testutil.SeedSubscription(t, db, model.Subscription{Title: "Old Title", URL: "https://a.example/rss"})

	updated, err := repo.Update(ctx, model.Subscription{
		ID:          id,
		Title:       "New Title",
		URL:         "https://a.example/rss",
		Description: strPtr("now with a description"),
	})
	require.NoError(t, err)
	require.Equal(t, "New Title", updated.Title)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "New Title", got.Title)
	require.NotNil(t, got.Description)
	require.Equal(t, "now with a description", *got.Description)
}

func TestSubscriptionRepository_Update_NotFound(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewSubscriptionRepository(db)
	ctx := context.Background()

	_, err := repo.Update(ctx, model.Subscription{ID: 99999, Title: "X", URL: "https://x.example/rss"})
	require.Error(t, err)
	require.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestSubscriptionRepository_UpdateLastRefreshed(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewSubscriptionRepository(db)
	ctx := context.Background()

	id := testutil.SeedSubscription(t, db, model.Subscription{Title: "A", URL: "https://a.example/rss"})

	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateLastRefreshed(ctx, id, at))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.LastRefreshedAt)
	require.True(t, got.LastRefreshedAt.Equal(at))
}

func TestSubscriptionRepository_Delete_Success(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	repo := repository.NewSubscriptionRepository(db)
	ctx := context.Background()

	id := testutil.SeedSubscription(t, db, model.Subscription{Title: "A", URL: "https://a.example/rss"})

	require.NoError(t, repo.Delete(ctx, id))

	_, err := repo.GetByID(ctx, id)
	require.Error(t, err)
	require.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestSubscriptionRepository_FolderDelete_SetsNull(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	folders := repository.NewFolderRepository(db)
	subs := repository.NewSubscriptionRepository(db)
	ctx := context.Background()

	folderID := testutil.SeedFolder(t, db, "Tech")
	subID := testutil.SeedSubscription(t, db, model.Subscription{FolderID: &folderID, Title: "A", URL: "https://a.example/rss"})

	require.NoError(t, folders.Delete(ctx, folderID))

	got, err := subs.GetByID(ctx, subID)
	require.NoError(t, err)
	require.Nil(t, got.FolderID)
}
