// Package records applies store-confirmed mutations to the session's list
// caches. Nothing is cached before the store acknowledges a write, so a failed
// call leaves the cache as it was.
package records

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/quotekeeper/internal/blobref"
	"github.com/dmitrijs2005/quotekeeper/internal/client/blob"
	"github.com/dmitrijs2005/quotekeeper/internal/client/cache"
	"github.com/dmitrijs2005/quotekeeper/internal/client/errclass"
	"github.com/dmitrijs2005/quotekeeper/internal/client/models"
	"github.com/dmitrijs2005/quotekeeper/internal/client/store"
	"github.com/dmitrijs2005/quotekeeper/internal/client/validation"
	"github.com/dmitrijs2005/quotekeeper/internal/common"
	"github.com/dmitrijs2005/quotekeeper/internal/logging"
)

// Service is the entry point for list loads and mutations of one session.
type Service struct {
	store   store.Store
	blobs   blob.Remover
	session *cache.Session
	marker  string
	now     func() time.Time
	log     logging.Logger
	locks   *keyedLocks
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger sets the logger used for best-effort failures.
func WithLogger(l logging.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithClock replaces the clock that stamps updates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithKeyMarker sets the path segment that separates bucket and key in
// document URLs.
func WithKeyMarker(marker string) Option {
	return func(s *Service) { s.marker = marker }
}

// NewService wires a store, the blob collaborator and a session. blobs may be
// nil, in which case referenced documents are left in place.
func NewService(st store.Store, blobs blob.Remover, session *cache.Session, opts ...Option) *Service {
	s := &Service{
		store:   st,
		blobs:   blobs,
		session: session,
		marker:  blobref.DefaultMarker,
		now:     time.Now,
		log:     logging.NopLogger{},
		locks:   newKeyedLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session returns the session the service reconciles into.
func (s *Service) Session() *cache.Session { return s.session }

func (s *Service) owner() (models.Identity, error) {
	id := s.session.Identity()
	if !id.Authenticated() {
		return id, common.ErrUnauthenticated
	}
	return id, nil
}

// LoadList returns the cached collection of kind, refreshing it when stale or
// forced. A failed refresh returns the cached collection with the error.
func (s *Service) LoadList(ctx context.Context, kind models.Kind, force bool) ([]models.Record, error) {
	id, err := s.owner()
	if err != nil {
		return nil, err
	}

	list, err := s.session.List(kind).Load(ctx, force, func(ctx context.Context) ([]models.Record, error) {
		return s.store.List(ctx, kind, id.OwnerID)
	})
	if err != nil {
		return list, errclass.Classify(err)
	}
	return list, nil
}

// LoadOne fetches the full record, assets included, from the store. It never
// reads or writes the list cache.
func (s *Service) LoadOne(ctx context.Context, kind models.Kind, recordID string) (*models.Record, error) {
	id, err := s.owner()
	if err != nil {
		return nil, err
	}

	rec, err := s.store.Get(ctx, kind, recordID, id.OwnerID)
	if err != nil {
		return nil, errclass.Classify(err)
	}
	return rec, nil
}

// Create inserts rec and prepends the stored record to the cache.
func (s *Service) Create(ctx context.Context, kind models.Kind, rec models.Record) (*models.Record, error) {
	id, err := s.owner()
	if err != nil {
		return nil, err
	}
	if err := validate(kind, &rec.Name, rec.Payload); err != nil {
		return nil, err
	}

	created, err := s.store.Insert(ctx, kind, id.OwnerID, rec)
	if err != nil {
		return nil, errclass.Classify(err)
	}

	s.session.List(kind).Prepend(summary(*created))
	s.log.Info(ctx, "record created", "owner_id", id.OwnerID, "record_id", created.ID, "kind", string(kind))
	return created, nil
}

// Update sends patch with a fresh UpdatedAt and replaces the cached element.
// Updates of the same record are applied one at a time.
func (s *Service) Update(ctx context.Context, kind models.Kind, recordID string, patch models.Patch) (*models.Record, error) {
	id, err := s.owner()
	if err != nil {
		return nil, err
	}
	if err := validate(kind, patch.Name, patch.Payload); err != nil {
		return nil, err
	}

	unlock, err := s.locks.lock(ctx, lockKey(kind, recordID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	patch.UpdatedAt = s.now().UTC()
	updated, err := s.store.Update(ctx, kind, recordID, id.OwnerID, patch)
	if err != nil {
		return nil, errclass.Classify(err)
	}

	s.session.List(kind).Replace(summary(*updated))
	return updated, nil
}

// Delete removes the record. A referenced document is deleted first on a
// best-effort basis; only the store deletion can fail the call.
func (s *Service) Delete(ctx context.Context, kind models.Kind, recordID string) error {
	id, err := s.owner()
	if err != nil {
		return err
	}

	unlock, err := s.locks.lock(ctx, lockKey(kind, recordID))
	if err != nil {
		return err
	}
	defer unlock()

	log := s.log.With("owner_id", id.OwnerID, "record_id", recordID, "kind", string(kind))

	if ref := s.documentRef(ctx, log, kind, recordID, id.OwnerID); ref != "" {
		s.deleteDocument(ctx, log, id, ref)
	}

	if err := s.store.Delete(ctx, kind, recordID, id.OwnerID); err != nil {
		return errclass.Classify(err)
	}

	s.session.List(kind).Remove(recordID)
	log.Info(ctx, "record deleted")
	return nil
}

// documentRef returns the record's document URL, preferring the cached
// summary over a store lookup.
func (s *Service) documentRef(ctx context.Context, log logging.Logger, kind models.Kind, recordID, ownerID string) string {
	if rec, ok := s.session.List(kind).Find(recordID); ok {
		return rec.PDFURL
	}
	rec, err := s.store.Get(ctx, kind, recordID, ownerID)
	if err != nil {
		log.Warn(ctx, "document lookup failed", "error", err)
		return ""
	}
	return rec.PDFURL
}

func (s *Service) deleteDocument(ctx context.Context, log logging.Logger, id models.Identity, ref string) {
	if _, err := blobref.DeriveKey(ref, s.marker); err != nil {
		log.Warn(ctx, "document key derivation failed", "pdf_url", ref, "error", err)
		return
	}
	if s.blobs == nil {
		log.Warn(ctx, "no blob service configured, document left in place", "pdf_url", ref)
		return
	}
	if err := s.blobs.DeletePDF(ctx, id.AccessToken, ref); err != nil {
		log.Warn(ctx, "document deletion failed", "pdf_url", ref, "error", err)
	}
}

// CreateTemplate stores a named template.
func (s *Service) CreateTemplate(ctx context.Context, name string, payload models.Payload) (*models.Record, error) {
	return s.Create(ctx, models.KindTemplate, models.Record{Name: name, Payload: payload})
}

// RenameTemplate changes a template's name.
func (s *Service) RenameTemplate(ctx context.Context, recordID, name string) (*models.Record, error) {
	return s.Update(ctx, models.KindTemplate, recordID, models.Patch{Name: &name})
}

// SaveProfile writes cfg into the profile record's payload.
func (s *Service) SaveProfile(ctx context.Context, recordID string, cfg models.Configuration) (*models.Record, error) {
	payload, err := models.EncodePayload(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode configuration: %w", err)
	}
	return s.Update(ctx, models.KindProfile, recordID, models.Patch{Payload: payload})
}

// validate gates writes: template names and profile configurations must pass
// their validators before the store is contacted.
func validate(kind models.Kind, name *string, payload models.Payload) error {
	switch kind {
	case models.KindTemplate:
		if name != nil {
			return validation.ValidateName(*name).Err()
		}
	case models.KindProfile:
		if payload != nil {
			cfg, err := models.DecodePayload[models.Configuration](payload)
			if err != nil {
				return errors.Join(common.ErrValidation, err)
			}
			return validation.ValidateConfiguration(cfg).Err()
		}
	}
	return nil
}

// summary drops the fields the list projection never carries.
func summary(r models.Record) models.Record {
	r.Assets = nil
	return r
}

func lockKey(kind models.Kind, id string) string {
	return string(kind) + "/" + id
}
