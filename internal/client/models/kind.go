package models

import "time"

// KindSpec describes how a kind is stored and listed.
type KindSpec struct {
	Table string
	// OrderBy is the list sort clause.
	OrderBy string
	// Limit caps list results; zero means unlimited.
	Limit int
	// TTL is the default list cache freshness window.
	TTL time.Duration
}

var kindSpecs = map[Kind]KindSpec{
	KindProfile:  {Table: "profiles", OrderBy: "updated_at DESC", TTL: 5 * time.Minute},
	KindQuote:    {Table: "quotes", OrderBy: "created_at DESC", Limit: 50, TTL: 30 * time.Second},
	KindTemplate: {Table: "templates", OrderBy: "created_at DESC", TTL: time.Minute},
}

// Spec returns the storage settings of k. ok is false for unknown kinds.
func (k Kind) Spec() (KindSpec, bool) {
	s, ok := kindSpecs[k]
	return s, ok
}
