package blobref

import (
	"testing"

	"github.com/dmitrijs2005/quotekeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		marker  string
		want    string
		wantErr bool
	}{
		{
			name: "default marker",
			ref:  "https://cdn.example.com/storage/v1/object/public/quote-pdfs/u1/q1.pdf",
			want: "u1/q1.pdf",
		},
		{
			name:   "custom marker",
			ref:    "http://127.0.0.1:9000/docs/2026/10/a.pdf",
			marker: "/docs/",
			want:   "2026/10/a.pdf",
		},
		{
			name: "query string stripped",
			ref:  "https://x/quote-pdfs/u1/q1.pdf?token=abc",
			want: "u1/q1.pdf",
		},
		{
			name: "escaped path",
			ref:  "https://x/quote-pdfs/u1/Europe%20Trip.pdf",
			want: "u1/Europe Trip.pdf",
		},
		{name: "marker missing", ref: "https://x/other/u1/q1.pdf", wantErr: true},
		{name: "nothing after marker", ref: "https://x/quote-pdfs/", wantErr: true},
		{name: "empty ref", ref: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeriveKey(tt.ref, tt.marker)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrBlobKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
