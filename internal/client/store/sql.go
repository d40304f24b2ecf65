package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/quotekeeper/internal/client/errclass"
	"github.com/dmitrijs2005/quotekeeper/internal/client/models"
	"github.com/dmitrijs2005/quotekeeper/internal/dbx"
	"github.com/google/uuid"
)

const (
	summaryColumns = "id, owner_id, name, payload, pdf_url, created_at, updated_at"
	fullColumns    = "id, owner_id, name, payload, assets, pdf_url, created_at, updated_at"
)

// SQLStore implements Store over database/sql for PostgreSQL and SQLite.
type SQLStore struct {
	db      *sql.DB
	dialect dbx.Dialect
	now     func() time.Time
	newID   func() string
	limits  map[models.Kind]int
}

// NewPostgresStore returns a Store backed by a pgx connection pool.
func NewPostgresStore(db *sql.DB) *SQLStore {
	return newSQLStore(db, dbx.Postgres)
}

func newSQLStore(db *sql.DB, dialect dbx.Dialect) *SQLStore {
	return &SQLStore{
		db:      db,
		dialect: dialect,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
		limits:  make(map[models.Kind]int),
	}
}

// SetListLimit overrides the list cap of kind. Zero removes the cap.
func (s *SQLStore) SetListLimit(kind models.Kind, n int) {
	s.limits[kind] = n
}

func (s *SQLStore) table(kind models.Kind) (models.KindSpec, error) {
	spec, ok := kind.Spec()
	if !ok {
		return models.KindSpec{}, &errclass.StoreError{Message: fmt.Sprintf("unknown record kind %q", kind)}
	}
	return spec, nil
}

// List returns the summary projection of ownerID's records.
func (s *SQLStore) List(ctx context.Context, kind models.Kind, ownerID string) ([]models.Record, error) {
	spec, err := s.table(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE owner_id = ? ORDER BY %s`, summaryColumns, spec.Table, spec.OrderBy)
	limit := spec.Limit
	if n, ok := s.limits[kind]; ok {
		limit = n
	}
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(query), ownerID)
	if err != nil {
		return nil, normalize(fmt.Errorf("failed to select %s: %w", spec.Table, err))
	}
	defer rows.Close()

	result := make([]models.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows, kind, false)
		if err != nil {
			return nil, normalize(err)
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, normalize(err)
	}
	return result, nil
}

// Get returns one full record, including Assets.
func (s *SQLStore) Get(ctx context.Context, kind models.Kind, id, ownerID string) (*models.Record, error) {
	spec, err := s.table(kind)
	if err != nil {
		return nil, err
	}
	rec, err := s.get(ctx, s.db, spec, kind, id, ownerID)
	return rec, normalize(err)
}

func (s *SQLStore) get(ctx context.Context, db dbx.DBTX, spec models.KindSpec, kind models.Kind, id, ownerID string) (*models.Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ? AND owner_id = ?`, fullColumns, spec.Table)
	row := db.QueryRowContext(ctx, s.dialect.Rebind(query), id, ownerID)
	return scanRecord(row, kind, true)
}

// Insert creates a record with a store-assigned id and timestamps.
func (s *SQLStore) Insert(ctx context.Context, kind models.Kind, ownerID string, rec models.Record) (*models.Record, error) {
	spec, err := s.table(kind)
	if err != nil {
		return nil, err
	}

	payload, err := encodeJSON(rec.Payload)
	if err != nil {
		return nil, normalize(err)
	}
	assets, err := encodeJSON(rec.Assets)
	if err != nil {
		return nil, normalize(err)
	}

	id := s.newID()
	now := s.now()

	var created *models.Record
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, spec.Table, fullColumns)
		if _, err := tx.ExecContext(ctx, s.dialect.Rebind(query),
			id, ownerID, rec.Name, payload, assets, nullString(rec.PDFURL), now, now); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", spec.Table, err)
		}
		var err error
		created, err = s.get(ctx, tx, spec, kind, id, ownerID)
		return err
	})
	if err != nil {
		return nil, normalize(err)
	}
	return created, nil
}

// Update applies patch to the record owned by ownerID.
func (s *SQLStore) Update(ctx context.Context, kind models.Kind, id, ownerID string, patch models.Patch) (*models.Record, error) {
	spec, err := s.table(kind)
	if err != nil {
		return nil, err
	}

	var sets []string
	var args []any
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Payload != nil {
		b, err := encodeJSON(patch.Payload)
		if err != nil {
			return nil, normalize(err)
		}
		sets = append(sets, "payload = ?")
		args = append(args, b)
	}
	if patch.Assets != nil {
		b, err := encodeJSON(patch.Assets)
		if err != nil {
			return nil, normalize(err)
		}
		sets = append(sets, "assets = ?")
		args = append(args, b)
	}
	if patch.PDFURL != nil {
		sets = append(sets, "pdf_url = ?")
		args = append(args, nullString(*patch.PDFURL))
	}
	updatedAt := patch.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = s.now()
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, updatedAt, id, ownerID)

	var updated *models.Record
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = ? AND owner_id = ?`, spec.Table, strings.Join(sets, ", "))
		res, err := tx.ExecContext(ctx, s.dialect.Rebind(query), args...)
		if err != nil {
			return fmt.Errorf("failed to update %s: %w", spec.Table, err)
		}
		if err := expectOneRow(res); err != nil {
			return err
		}
		updated, err = s.get(ctx, tx, spec, kind, id, ownerID)
		return err
	})
	if err != nil {
		return nil, normalize(err)
	}
	return updated, nil
}

// Delete removes the record owned by ownerID.
func (s *SQLStore) Delete(ctx context.Context, kind models.Kind, id, ownerID string) error {
	spec, err := s.table(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND owner_id = ?`, spec.Table)
	res, err := s.db.ExecContext(ctx, s.dialect.Rebind(query), id, ownerID)
	if err != nil {
		return normalize(fmt.Errorf("failed to delete from %s: %w", spec.Table, err))
	}
	return normalize(expectOneRow(res))
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return sql.ErrNoRows
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner, kind models.Kind, full bool) (*models.Record, error) {
	var (
		rec              = models.Record{Kind: kind}
		payload, assets  []byte
		pdfURL           sql.NullString
		created, updated scanTime
	)

	dest := []any{&rec.ID, &rec.OwnerID, &rec.Name, &payload}
	if full {
		dest = append(dest, &assets)
	}
	dest = append(dest, &pdfURL, &created, &updated)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	var err error
	if rec.Payload, err = decodeJSON(payload); err != nil {
		return nil, fmt.Errorf("decode payload of %s: %w", rec.ID, err)
	}
	if full {
		if rec.Assets, err = decodeJSON(assets); err != nil {
			return nil, fmt.Errorf("decode assets of %s: %w", rec.ID, err)
		}
	}
	rec.PDFURL = pdfURL.String
	rec.CreatedAt = created.Time
	rec.UpdatedAt = updated.Time
	return &rec, nil
}

func encodeJSON(p models.Payload) (string, error) {
	if p == nil {
		return "{}", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	return string(b), nil
}

func decodeJSON(b []byte) (models.Payload, error) {
	if len(b) == 0 {
		return models.Payload{}, nil
	}
	var p models.Payload
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	if p == nil {
		p = models.Payload{}
	}
	return p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
