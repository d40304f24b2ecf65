// Package httpapi exposes the document deletion endpoint of blobd.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/quotekeeper/internal/auth"
	"github.com/dmitrijs2005/quotekeeper/internal/blobref"
	"github.com/dmitrijs2005/quotekeeper/internal/common"
	"github.com/dmitrijs2005/quotekeeper/internal/logging"
	"github.com/dmitrijs2005/quotekeeper/internal/server/blobstore"
	"github.com/dmitrijs2005/quotekeeper/internal/shared"
)

const maxBodyBytes = 64 << 10

type ctxKey string

const ownerIDKey ctxKey = "ownerID"

// RequestIDHeader echoes the id used to correlate log lines.
const RequestIDHeader = "X-Request-ID"

// Handler serves POST /api/delete-pdf, /metrics and /healthz.
type Handler struct {
	blobs     blobstore.Store
	marker    string
	jwtSecret []byte
	logger    logging.Logger
	metrics   *Metrics
}

func NewHandler(blobs blobstore.Store, marker, secretKey string, l logging.Logger, m *Metrics) *Handler {
	if marker == "" {
		marker = blobref.DefaultMarker
	}
	if m == nil {
		m = NewMetrics()
	}
	return &Handler{
		blobs:     blobs,
		marker:    marker,
		jwtSecret: []byte(secretKey),
		logger:    l.With("module", "http_api"),
		metrics:   m,
	}
}

// Routes returns the service mux.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST "+blobref.DeletePath, h.withRequestID(h.requireToken(http.HandlerFunc(h.deletePDF))))
	mux.Handle("GET /metrics", h.metrics.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func (h *Handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			if generated, err := shared.MakeRandHexString(8); err == nil {
				id = generated
			}
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// requireToken admits requests that carry a valid bearer token and stores
// the token's owner in the request context.
func (h *Handler) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || token == "" {
			h.metrics.observe(resultUnauthorized)
			h.reply(w, http.StatusUnauthorized, "missing token")
			return
		}

		ownerID, err := auth.OwnerIDFromToken(token, h.jwtSecret)
		if err != nil {
			h.metrics.observe(resultUnauthorized)
			msg := "invalid token"
			if errors.Is(err, common.ErrTokenExpired) {
				msg = "token expired"
			}
			h.reply(w, http.StatusUnauthorized, msg)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ownerIDKey, ownerID)))
	})
}

func (h *Handler) deletePDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, _ := ctx.Value(ownerIDKey).(string)
	log := h.logger.With("owner_id", ownerID, "request_id", w.Header().Get(RequestIDHeader))

	var req blobref.DeleteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.metrics.observe(resultBadRequest)
		h.reply(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PDFURL == "" {
		h.metrics.observe(resultBadRequest)
		h.reply(w, http.StatusBadRequest, "pdfUrl is required")
		return
	}

	key, err := blobref.DeriveKey(req.PDFURL, h.marker)
	if err != nil {
		h.metrics.observe(resultBadRequest)
		log.Warn(ctx, "cannot derive blob key", "pdf_url", req.PDFURL, "error", err)
		h.reply(w, http.StatusBadRequest, "invalid PDF URL")
		return
	}

	start := time.Now()
	err = h.blobs.Delete(ctx, key)
	h.metrics.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		h.metrics.observe(resultFailed)
		log.Error(ctx, "blob deletion failed", "key", key, "error", err)
		h.reply(w, http.StatusInternalServerError, "failed to delete PDF")
		return
	}

	h.metrics.observe(resultDeleted)
	log.Info(ctx, "blob deleted", "key", key)
	h.reply(w, http.StatusOK, "")
}

// reply writes the response envelope; an empty message means success.
func (h *Handler) reply(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(blobref.DeleteResponse{Success: msg == "", Error: msg})
}
