package repository

import (
	"context"
	"fmt"
	"time"

	"cv-portfolio/internal/domain"
	"cv-portfolio/internal/storage"
	infra "cv-portfolio/pkg/infrastructure"
)

// Store is the profile store. File columns hold blob names, resolved to
// resources through the locator on the way out.
type Store struct {
	db  infra.DB
	loc *storage.Locator
	now func() time.Time
}

func NewStore(db infra.DB, loc *storage.Locator) *Store {
	return &Store{db: db, loc: loc, now: time.Now}
}

func (s *Store) Ping(ctx context.Context) error { return s.db.Ping(ctx) }

type txKey struct{}

// Transact runs fn in one transaction. Store calls made with the context
// passed to fn take part in it; nested calls join the outer transaction.
func (s *Store) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(infra.DB); ok {
		return fn(ctx)
	}
	return s.db.InTx(ctx, func(tx infra.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (s *Store) conn(ctx context.Context) infra.DB {
	if tx, ok := ctx.Value(txKey{}).(infra.DB); ok {
		return tx
	}
	return s.db
}

func (s *Store) locate(name string) domain.Resource {
	if s.loc == nil {
		return domain.Resource{Name: name}
	}
	return s.loc.Locate(name)
}

// CountVisible returns the number of visible records per section, plus the
// garage sale under "venta".
func (s *Store) CountVisible(ctx context.Context, profileID int64) (map[string]int, error) {
	counts := map[string]int{"venta": 0}
	for _, sec := range domain.Sections {
		counts[string(sec)] = 0
	}

	rows, err := s.conn(ctx).Query(ctx,
		`SELECT section, COUNT(*) FROM section_entries WHERE profile_id = $1 AND visible GROUP BY section`, profileID)
	if err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			sec string
			n   int
		)
		if err := rows.Scan(&sec, &n); err != nil {
			return nil, err
		}
		counts[sec] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var venta int
	if err := s.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM garage_items WHERE profile_id = $1 AND visible`, profileID).Scan(&venta); err != nil {
		return nil, fmt.Errorf("count garage items: %w", err)
	}
	counts["venta"] = venta
	return counts, nil
}
