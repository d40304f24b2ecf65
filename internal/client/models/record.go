// Package models defines the records handled by the synchronization layer
// and the per-kind settings that drive list queries.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind classifies a record collection.
type Kind string

const (
	KindProfile  Kind = "profile"
	KindQuote    Kind = "quote"
	KindTemplate Kind = "template"
)

// Kinds lists every known kind in a stable order.
var Kinds = []Kind{KindProfile, KindQuote, KindTemplate}

// ParseKind maps user input onto a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown record kind %q", s)
}

// Payload holds kind-specific structured fields.
type Payload map[string]any

// Record is one row of a kind's collection. Records returned by list queries
// are summaries: Assets is always empty for them.
type Record struct {
	ID      string
	OwnerID string
	Kind    Kind
	// Name is the quote title, template name or profile display name.
	Name    string
	Payload Payload
	// Assets carries large embedded data such as images.
	Assets Payload
	// PDFURL references a generated document in blob storage, if any.
	PDFURL    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Name    *string
	Payload Payload
	Assets  Payload
	PDFURL  *string
	// UpdatedAt is stamped by the records service before the patch is sent.
	UpdatedAt time.Time
}

// Apply returns a copy of r with the patch applied.
func (p Patch) Apply(r Record) Record {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Payload != nil {
		r.Payload = p.Payload
	}
	if p.Assets != nil {
		r.Assets = p.Assets
	}
	if p.PDFURL != nil {
		r.PDFURL = *p.PDFURL
	}
	if !p.UpdatedAt.IsZero() {
		r.UpdatedAt = p.UpdatedAt
	}
	return r
}

// Identity is the signed-in owner as handed over by the session provider.
type Identity struct {
	OwnerID     string
	AccessToken string
}

// Authenticated reports whether an owner is present.
func (i Identity) Authenticated() bool {
	return i.OwnerID != ""
}

// EncodePayload converts a typed value into a Payload through its JSON form.
func EncodePayload[T any](v T) (Payload, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var p Payload
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// DecodePayload converts a Payload into a typed value through its JSON form.
func DecodePayload[T any](p Payload) (T, error) {
	var out T
	b, err := json.Marshal(p)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(b, &out)
	return out, err
}
