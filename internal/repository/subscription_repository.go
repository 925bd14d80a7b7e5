//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"time"

	"opmlkit/internal/model"
	"opmlkit/pkg/snowflake"
)

// SubscriptionRepository defines the interface for subscription storage.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub model.Subscription) (*model.Subscription, error)
	GetByID(ctx context.Context, id int64) (*model.Subscription, error)
	FindByURL(ctx context.Context, url string) (*model.Subscription, error)
	List(ctx context.Context) ([]model.Subscription, error)
	ListByFolder(ctx context.Context, folderID *int64) ([]model.Subscription, error)
	Update(ctx context.Context, sub model.Subscription) (*model.Subscription, error)
	UpdateLastRefreshed(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
}

const subscriptionColumns = `id, folder_id, title, url, site_url, description, last_refreshed_at, created_at, updated_at`

type subscriptionRepository struct {
	db *sql.DB
}

// NewSubscriptionRepository creates a new subscription repository.
func NewSubscriptionRepository(db *sql.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Create inserts a new subscription. The url must be unique.
func (r *subscriptionRepository) Create(ctx context.Context, sub model.Subscription) (*model.Subscription, error) {
	sub.ID = snowflake.NextID()
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	nowStr := formatTime(now)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscriptions (id, folder_id, title, url, site_url, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, sub.ID, nullableInt64(sub.FolderID), sub.Title, sub.URL,
		nullableString(sub.SiteURL), nullableString(sub.Description), nowStr, nowStr)
	if err != nil {
		return nil, err
	}

	return &sub, nil
}

// GetByID retrieves a subscription by ID. Returns sql.ErrNoRows when it does not exist.
func (r *subscriptionRepository) GetByID(ctx context.Context, id int64) (*model.Subscription, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = ?
	`, id)
	return scanSubscriptionRow(row)
}

// FindByURL retrieves a subscription by feed URL. Returns nil without error
// when it does not exist.
func (r *subscriptionRepository) FindByURL(ctx context.Context, url string) (*model.Subscription, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+subscriptionColumns+` FROM subscriptions WHERE url = ?
	`, url)
	sub, err := scanSubscriptionRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return sub, err
}

// List retrieves all subscriptions ordered by title.
func (r *subscriptionRepository) List(ctx context.Context) ([]model.Subscription, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+subscriptionColumns+` FROM subscriptions ORDER BY title
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubscriptions(rows)
}

// ListByFolder retrieves the subscriptions of one folder, or the ungrouped
// subscriptions when folderID is nil, ordered by title.
func (r *subscriptionRepository) ListByFolder(ctx context.Context, folderID *int64) ([]model.Subscription, error) {
	var rows *sql.Rows
	var err error
	if folderID == nil {
		rows, err = r.db.QueryContext(ctx, `
			SELECT `+subscriptionColumns+` FROM subscriptions WHERE folder_id IS NULL ORDER BY title
		`)
	} else {
		rows, err = r.db.QueryContext(ctx, `
			SELECT `+subscriptionColumns+` FROM subscriptions WHERE folder_id = ? ORDER BY title
		`, *folderID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubscriptions(rows)
}

// Update rewrites the mutable fields of a subscription.
func (r *subscriptionRepository) Update(ctx context.Context, sub model.Subscription) (*model.Subscription, error) {
	now := time.Now().UTC()
	sub.UpdatedAt = now

	result, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions
		SET folder_id = ?, title = ?, url = ?, site_url = ?, description = ?, updated_at = ?
		WHERE id = ?
	`, nullableInt64(sub.FolderID), sub.Title, sub.URL,
		nullableString(sub.SiteURL), nullableString(sub.Description), formatTime(now), sub.ID)
	if err != nil {
		return nil, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, sql.ErrNoRows
	}
	return &sub, nil
}

// UpdateLastRefreshed records when the feed behind a subscription was last fetched.
func (r *subscriptionRepository) UpdateLastRefreshed(ctx context.Context, id int64, at time.Time) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions SET last_refreshed_at = ?, updated_at = ? WHERE id = ?
	`, formatTime(at), formatTime(time.Now().UTC()), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a subscription by ID.
func (r *subscriptionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanSubscriptionRow(row *sql.Row) (*model.Subscription, error) {
	var s model.Subscription
	var folderID sql.NullInt64
	var siteURL, description, lastRefreshedAt sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&s.ID, &folderID, &s.Title, &s.URL, &siteURL, &description, &lastRefreshedAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	fillSubscription(&s, folderID, siteURL, description, lastRefreshedAt, createdAt, updatedAt)
	return &s, nil
}

func collectSubscriptions(rows *sql.Rows) ([]model.Subscription, error) {
	var subs []model.Subscription
	for rows.Next() {
		var s model.Subscription
		var folderID sql.NullInt64
		var siteURL, description, lastRefreshedAt sql.NullString
		var createdAt, updatedAt string

		if err := rows.Scan(&s.ID, &folderID, &s.Title, &s.URL, &siteURL, &description, &lastRefreshedAt, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		fillSubscription(&s, folderID, siteURL, description, lastRefreshedAt, createdAt, updatedAt)
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func fillSubscription(s *model.Subscription, folderID sql.NullInt64, siteURL, description, lastRefreshedAt sql.NullString, createdAt, updatedAt string) {
	if folderID.Valid {
		s.FolderID = &folderID.Int64
	}
	if siteURL.Valid {
		s.SiteURL = &siteURL.String
	}
	if description.Valid {
		s.Description = &description.String
	}
	if lastRefreshedAt.Valid {
		if at, err := parseTime(lastRefreshedAt.String); err == nil {
			s.LastRefreshedAt = &at
		}
	}
	s.CreatedAt, _ = parseTime(createdAt)
	s.UpdatedAt, _ = parseTime(updatedAt)
}
