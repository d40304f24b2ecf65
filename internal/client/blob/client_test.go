package blob

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/quotekeeper/internal/blobref"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_DeletePDF(t *testing.T) {
	const ref = "https://cdn.example.com/storage/v1/object/public/quote-pdfs/u1/q1.pdf"

	t.Run("success", func(t *testing.T) {
		var got blobref.DeleteRequest
		var auth, path string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			auth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&got)
			_ = json.NewEncoder(w).Encode(blobref.DeleteResponse{Success: true})
		}))
		defer ts.Close()

		c := NewClient(ts.URL+"/", ts.Client())
		require.NoError(t, c.DeletePDF(context.Background(), "tok", ref))
		assert.Equal(t, "/api/delete-pdf", path)
		assert.Equal(t, "Bearer tok", auth)
		assert.Equal(t, ref, got.PDFURL)
	})

	t.Run("server error envelope", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(blobref.DeleteResponse{Error: "bucket unavailable"})
		}))
		defer ts.Close()

		err := NewClient(ts.URL, nil).DeletePDF(context.Background(), "tok", ref)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 500: bucket unavailable")
	})

	t.Run("plain 500", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "oops", http.StatusInternalServerError)
		}))
		defer ts.Close()

		err := NewClient(ts.URL, nil).DeletePDF(context.Background(), "tok", ref)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("ok status without success", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false}`))
		}))
		defer ts.Close()

		err := NewClient(ts.URL, nil).DeletePDF(context.Background(), "", ref)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 200: OK")
	})
}
