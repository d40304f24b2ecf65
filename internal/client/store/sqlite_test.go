package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/quotekeeper/internal/client/errclass"
	"github.com/dmitrijs2005/quotekeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	s, db, err := Open(context.Background(), "sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clock := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s
}

func TestSQLite_CRUDRoundTrip(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	created, err := s.Insert(ctx, models.KindQuote, "u1", models.Record{
		Name:    "Lisbon",
		Payload: models.Payload{"travellers": 2.0},
		Assets:  models.Payload{"hero": "data:image/png;base64,AAAA"},
		PDFURL:  "https://x/quote-pdfs/u1/lisbon.pdf",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "u1", created.OwnerID)
	assert.False(t, created.CreatedAt.IsZero())

	full, err := s.Get(ctx, models.KindQuote, created.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", full.Assets["hero"])
	assert.Equal(t, created.CreatedAt, full.CreatedAt)

	name := "Lisbon & Porto"
	updated, err := s.Update(ctx, models.KindQuote, created.ID, "u1", models.Patch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Lisbon & Porto", updated.Name)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, 2.0, updated.Payload["travellers"])

	list, err := s.List(ctx, models.KindQuote, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Assets)

	require.NoError(t, s.Delete(ctx, models.KindQuote, created.ID, "u1"))
	_, err = s.Get(ctx, models.KindQuote, created.ID, "u1")
	assert.Equal(t, errclass.KindDatabase, errclass.KindOf(err))
}

func TestSQLite_OwnerScoping(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	rec, err := s.Insert(ctx, models.KindQuote, "u1", models.Record{Name: "Mine"})
	require.NoError(t, err)

	_, err = s.Get(ctx, models.KindQuote, rec.ID, "u2")
	assert.Equal(t, errclass.KindDatabase, errclass.KindOf(err))

	err = s.Delete(ctx, models.KindQuote, rec.ID, "u2")
	assert.Equal(t, errclass.KindDatabase, errclass.KindOf(err))

	others, err := s.List(ctx, models.KindQuote, "u2")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestSQLite_ListNewestFirst(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	for _, n := range []string{"first", "second", "third"} {
		_, err := s.Insert(ctx, models.KindQuote, "u1", models.Record{Name: n})
		require.NoError(t, err)
	}

	list, err := s.List(ctx, models.KindQuote, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"third", "second", "first"}, []string{list[0].Name, list[1].Name, list[2].Name})
}

func TestSQLite_DuplicateTemplateNameIsValidation(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	_, err := s.Insert(ctx, models.KindTemplate, "u1", models.Record{Name: "Europe Trip"})
	require.NoError(t, err)

	_, err = s.Insert(ctx, models.KindTemplate, "u1", models.Record{Name: "Europe Trip"})
	require.Error(t, err)
	c := errclass.Classify(err)
	assert.Equal(t, errclass.KindValidation, c.Kind)
	assert.Equal(t, errclass.CodeUniqueViolation, c.Code)

	_, err = s.Insert(ctx, models.KindTemplate, "u2", models.Record{Name: "Europe Trip"})
	assert.NoError(t, err, "names are unique per owner only")
}
