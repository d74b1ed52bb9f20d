// Package postgres реализует хранилище коротких ссылок поверх PostgreSQL.
//
// Гарантии атомарности обеспечиваются самой базой: частичный уникальный
// индекс по активным кодам сериализует конкурентные вставки, инкременты
// выполняются одним UPDATE, а счётчик аллокатора - одним upsert.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/avc-dev/shortly/internal/model"
	"github.com/avc-dev/shortly/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// pgUniqueViolation - код ошибки PostgreSQL для нарушения уникальности.
const pgUniqueViolation = "23505"

// Database - минимальный контракт database/sql, используемый хранилищем.
type Database interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	PingContext(ctx context.Context) error
}

// Store реализует store.Store поверх PostgreSQL.
type Store struct {
	db     Database
	logger *zap.Logger
}

// New создаёт хранилище поверх готового подключения.
func New(db Database, logger *zap.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger,
	}
}

func (s *Store) CreateLink(ctx context.Context, link *model.ShortLink) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO links (original_url, short_code, owner_id, expires_at, is_custom)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		link.OriginalURL, link.ShortCode, link.OwnerID, link.ExpiresAt, link.IsCustom,
	).Scan(&link.ID, &link.CreatedAt)

	if isUniqueViolation(err) {
		return fmt.Errorf("code %s: %w", link.ShortCode, store.ErrCodeExists)
	}
	if err != nil {
		s.logger.Error("failed to insert link",
			zap.String("short_code", link.ShortCode),
			zap.Error(err),
		)
		return fmt.Errorf("failed to insert link: %w", err)
	}

	link.IsActive = true
	return nil
}

func (s *Store) FindActiveByCode(ctx context.Context, code string) (*model.ShortLink, error) {
	var link model.ShortLink
	err := s.db.QueryRowContext(ctx,
		`SELECT id, original_url, short_code, owner_id, created_at, expires_at,
		        is_active, click_count, is_custom
		 FROM links
		 WHERE short_code = $1 AND is_active`,
		code,
	).Scan(&link.ID, &link.OriginalURL, &link.ShortCode, &link.OwnerID,
		&link.CreatedAt, &link.ExpiresAt, &link.IsActive, &link.ClickCount, &link.IsCustom)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("code %s: %w", code, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find link: %w", err)
	}

	return &link, nil
}

func (s *Store) IncrementClicks(ctx context.Context, linkID int64) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`UPDATE links SET click_count = click_count + 1
		 WHERE id = $1
		 RETURNING click_count`,
		linkID,
	).Scan(&count)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("link %d: %w", linkID, store.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to increment clicks: %w", err)
	}

	return count, nil
}

func (s *Store) SoftDelete(ctx context.Context, linkID int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE links SET is_active = FALSE WHERE id = $1`,
		linkID,
	)
	if err != nil {
		return fmt.Errorf("failed to soft delete link: %w", err)
	}
	return nil
}

func (s *Store) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]model.ShortLink, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, original_url, short_code, owner_id, created_at, expires_at,
		        is_active, click_count, is_custom
		 FROM links
		 WHERE owner_id = $1 AND is_active
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	defer rows.Close()

	links := make([]model.ShortLink, 0)
	for rows.Next() {
		var link model.ShortLink
		if err := rows.Scan(&link.ID, &link.OriginalURL, &link.ShortCode, &link.OwnerID,
			&link.CreatedAt, &link.ExpiresAt, &link.IsActive, &link.ClickCount, &link.IsCustom); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate links: %w", err)
	}

	return links, nil
}

func (s *Store) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM links WHERE owner_id = $1 AND is_active`,
		ownerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count links: %w", err)
	}
	return count, nil
}

func (s *Store) RecordClick(ctx context.Context, event *model.ClickEvent) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO click_events (link_id, source_addr, user_agent, referrer)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, ts`,
		event.LinkID, event.SourceAddr, event.UserAgent, event.Referrer,
	).Scan(&event.ID, &event.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to record click: %w", err)
	}
	return nil
}

func (s *Store) RecentClicks(ctx context.Context, linkID int64, limit int) ([]model.ClickEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, link_id, ts, source_addr, user_agent, referrer
		 FROM click_events
		 WHERE link_id = $1
		 ORDER BY ts DESC
		 LIMIT $2`,
		linkID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query clicks: %w", err)
	}
	defer rows.Close()

	events := make([]model.ClickEvent, 0, limit)
	for rows.Next() {
		var event model.ClickEvent
		if err := rows.Scan(&event.ID, &event.LinkID, &event.Timestamp,
			&event.SourceAddr, &event.UserAgent, &event.Referrer); err != nil {
			return nil, fmt.Errorf("failed to scan click: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clicks: %w", err)
	}

	return events, nil
}

func (s *Store) ClicksByDay(ctx context.Context, linkID int64) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT to_char(ts, 'YYYY-MM-DD') AS day, count(*)
		 FROM click_events
		 WHERE link_id = $1
		 GROUP BY day
		 ORDER BY day`,
		linkID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily clicks: %w", err)
	}
	defer rows.Close()

	byDay := make(map[string]int64)
	for rows.Next() {
		var day string
		var count int64
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("failed to scan daily clicks: %w", err)
		}
		byDay[day] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily clicks: %w", err)
	}

	return byDay, nil
}

func (s *Store) CountClicks(ctx context.Context, linkID int64) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM click_events WHERE link_id = $1`,
		linkID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count clicks: %w", err)
	}
	return count, nil
}

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (api_key, email) VALUES ($1, $2)
		 RETURNING id, created_at`,
		user.APIKey, user.Email,
	).Scan(&user.ID, &user.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return fmt.Errorf("email: %w", store.ErrEmailExists)
		}
		return fmt.Errorf("api key collision: %w", err)
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	user.IsActive = true
	return nil
}

func (s *Store) FindUserByAPIKey(ctx context.Context, key string) (*model.User, error) {
	return s.findUser(ctx,
		`SELECT id, api_key, email, created_at, is_active
		 FROM users WHERE api_key = $1 AND is_active`, key)
}

func (s *Store) FindUserByID(ctx context.Context, id int64) (*model.User, error) {
	return s.findUser(ctx,
		`SELECT id, api_key, email, created_at, is_active
		 FROM users WHERE id = $1 AND is_active`, id)
}

func (s *Store) findUser(ctx context.Context, query string, arg any) (*model.User, error) {
	var user model.User
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.APIKey, &user.Email, &user.CreatedAt, &user.IsActive)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user: %w", store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

func (s *Store) TotalClicksByOwner(ctx context.Context, ownerID int64) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		`SELECT coalesce(sum(click_count), 0) FROM links WHERE owner_id = $1 AND is_active`,
		ownerID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum clicks: %w", err)
	}
	return total, nil
}

// NextID выполняет атомарный increment-and-fetch счётчика одним upsert.
// При гонке ленивой инициализации ON CONFLICT переводит проигравшего
// на инкремент существующей строки.
func (s *Store) NextID(ctx context.Context) (int64, error) {
	var value int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO counters (name, value) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		 RETURNING value`,
		store.CounterName, store.CounterSeed+1,
	).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate id: %w", err)
	}
	return value, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
