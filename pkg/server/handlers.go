package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/layoutcfg/pkg/buildinfo"
	"github.com/matzehuels/layoutcfg/pkg/bundle"
	layouterrors "github.com/matzehuels/layoutcfg/pkg/errors"
	"github.com/matzehuels/layoutcfg/pkg/export"
	"github.com/matzehuels/layoutcfg/pkg/storage"
)

type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type exportBody struct {
	RunID string   `json:"run_id"`
	Files []string `json:"files"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, err := s.cfg.Downloads.Read(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "metadataSchema_"), ".json")
	id, err := strconv.Atoi(raw)
	if err != nil {
		s.writeError(w, r, layouterrors.New(layouterrors.ErrCodeInvalidInput, "schema id %q is not a number", raw))
		return
	}
	sc, err := s.cfg.Schemas.Load(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	res, err := s.cfg.Resolver.Resolve(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if res == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set(HeaderBundleVersion, strconv.Itoa(res.Version))
	writeJSON(w, http.StatusOK, res.Bundle)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, layouterrors.Wrap(layouterrors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	b, err := bundle.DecodeBundle(data)
	if err != nil {
		s.writeError(w, r, layouterrors.Wrap(layouterrors.ErrCodeInvalidFormat, err, "decode bundle"))
		return
	}

	report, err := s.cfg.Exporter.Export(r.Context(), b)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reportBody(report))
}

func reportBody(r *export.Report) exportBody {
	body := exportBody{RunID: r.RunID, Files: make([]string, 0, len(r.Files))}
	for _, f := range r.Files {
		body.Files = append(body.Files, f.Saved)
	}
	return body
}

// statusFor maps an error to an HTTP status.
func statusFor(err error) int {
	if errors.Is(err, storage.ErrNotFound) {
		return http.StatusNotFound
	}
	switch layouterrors.GetCode(err) {
	case layouterrors.ErrCodeInvalidInput, layouterrors.ErrCodeInvalidPath, layouterrors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case layouterrors.ErrCodeNotFound, layouterrors.ErrCodeSchemaNotFound:
		return http.StatusNotFound
	case layouterrors.ErrCodeNetwork, layouterrors.ErrCodeTimeout:
		return http.StatusBadGateway
	}
	if errors.Is(err, storage.ErrNetwork) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", RequestIDFromContext(r.Context()))
	}
	writeJSON(w, status, errorBody{
		Error:     layouterrors.UserMessage(err),
		Code:      string(layouterrors.GetCode(err)),
		RequestID: RequestIDFromContext(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
