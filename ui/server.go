// Package ui serves the parser and the snippet store over HTTP: a JSON API,
// a small HTML playground and Prometheus metrics.
package ui

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dhamidi/tinyjs/format"
	"github.com/dhamidi/tinyjs/js/parser"
	"github.com/dhamidi/tinyjs/snippet"

	"github.com/tliron/commonlog"
)

//go:embed templates
var embeddedFS embed.FS

var log = commonlog.GetLogger("tinyjs.ui")

// DefaultMaxBodyBytes bounds request bodies when no limit is configured.
const DefaultMaxBodyBytes = 1 << 20

type Server struct {
	store     *snippet.Store
	metrics   *Metrics
	templates *template.Template
	mux       *http.ServeMux
	maxBody   int64
}

// NewServer wires the routes. maxBodyBytes <= 0 selects
// DefaultMaxBodyBytes.
func NewServer(store *snippet.Store, metrics *Metrics, maxBodyBytes int64) (*Server, error) {
	tmpl, err := template.ParseFS(embeddedFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}

	s := &Server{
		store:     store,
		metrics:   metrics,
		templates: tmpl,
		mux:       http.NewServeMux(),
		maxBody:   maxBodyBytes,
	}

	s.mux.HandleFunc("POST /api/parse", s.handleParse)
	s.mux.HandleFunc("POST /api/snippets", s.handleCreateSnippet)
	s.mux.HandleFunc("GET /api/snippets", s.handleListSnippets)
	s.mux.HandleFunc("GET /api/snippets/{id}", s.handleGetSnippet)
	s.mux.HandleFunc("DELETE /api/snippets/{id}", s.handleDeleteSnippet)
	s.mux.Handle("GET /metrics", metrics.Handler())
	s.mux.HandleFunc("POST /parse", s.handleParseForm)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// parse runs the parser on source and records it in the metrics.
func (s *Server) parse(source string) *format.TraceRecord {
	start := time.Now()
	prog, err := parser.Parse(source)
	s.metrics.ObserveParse(time.Since(start), err)
	return format.Trace(source, prog, err)
}

// handleParse answers with the trace record of the request body. A source
// that does not parse is still a 200: the error is part of the trace.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.parse(string(body)))
}

type createSnippetRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Check       bool   `json:"check"`
}

// snippetResponse is a snippet together with the trace of its code.
type snippetResponse struct {
	snippet.Snippet
	Trace *format.TraceRecord `json:"trace"`
}

func (s *Server) handleCreateSnippet(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	var req createSnippetRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
	} else {
		r.Body = io.NopCloser(bytes.NewReader(body))
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form data: "+err.Error())
			return
		}
		req.Name = r.FormValue("name")
		req.Code = r.FormValue("code")
		req.Description = r.FormValue("description")
		req.Check = r.FormValue("check") != ""
	}

	trace := s.parse(req.Code)
	if req.Check && trace.Result.Error != nil {
		writeJSON(w, http.StatusUnprocessableEntity, trace)
		return
	}

	snip, err := s.store.Create(r.Context(), snippet.Snippet{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	})
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snippetResponse{Snippet: snip, Trace: trace})
}

func (s *Server) handleGetSnippet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid snippet id")
		return
	}
	snip, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snippetResponse{Snippet: snip, Trace: s.parse(snip.Code)})
}

// handleListSnippets lists all snippets, or looks one up when a name is
// given in the query.
func (s *Server) handleListSnippets(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("name"); name != "" {
		snip, err := s.store.GetByName(r.Context(), name)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snippetResponse{Snippet: snip, Trace: s.parse(snip.Code)})
		return
	}

	snippets, err := s.store.List(r.Context())
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	if snippets == nil {
		snippets = []snippet.Snippet{}
	}
	writeJSON(w, http.StatusOK, snippets)
}

func (s *Server) handleDeleteSnippet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid snippet id")
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type indexData struct {
	Code     string
	Trace    string
	Error    string
	Snippets []snippet.Snippet
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, r, indexData{})
}

func (s *Server) handleParseForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
		return
	}
	data := indexData{Code: r.FormValue("code")}
	rec := s.parse(data.Code)
	var buf bytes.Buffer
	if err := format.NewTraceEncoder(&buf).EncodeRecord(rec); err != nil {
		data.Error = err.Error()
	} else {
		data.Trace = buf.String()
	}
	if rec.Result.Error != nil {
		data.Error = rec.Result.Error.Message
	}
	s.renderIndex(w, r, data)
}

func (s *Server) renderIndex(w http.ResponseWriter, r *http.Request, data indexData) {
	snippets, err := s.store.List(r.Context())
	if err != nil {
		log.Errorf("list snippets: %s", err)
	}
	data.Snippets = snippets

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		log.Errorf("render index: %s", err)
	}
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit))
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return nil, false
	}
	return body, true
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	var invalid *snippet.ValidationError
	switch {
	case errors.Is(err, snippet.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, snippet.ErrDuplicateName):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &invalid):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Errorf("snippet store: %s", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// writeJSON encodes v before sending the status so that an encoding
// failure becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Errorf("encode response: %s", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":"internal error"}`+"\n")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Warningf("write response: %s", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
