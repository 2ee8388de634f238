// Package httpserver exposes a seqrepo.Repository over HTTP, matching the
// seqrepo+http(s):// scheme of spec §6.1. It is grounded on the teacher
// pack's nishad-srake/internal/api server, which wires gorilla/mux the same
// way: a thin router plus JSON handlers over an injected service.
package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/inodb/vrs-go/internal/seqrepo"
)

// Server serves a seqrepo.Repository over HTTP.
type Server struct {
	router *mux.Router
	repo   seqrepo.Repository
}

// New builds a Server fronting repo.
func New(repo seqrepo.Repository) *Server {
	s := &Server{router: mux.NewRouter(), repo: repo}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	sr := s.router.PathPrefix("/seqrepo").Subrouter()
	sr.HandleFunc("/sequence/{accession}", s.handleGetSequence).Methods(http.MethodGet)
	sr.HandleFunc("/metadata/{accession}", s.handleGetMetadata).Methods(http.MethodGet)
	sr.HandleFunc("/translate/{identifier}", s.handleTranslateIdentifier).Methods(http.MethodGet)
	sr.HandleFunc("/refget/{identifier}", s.handleDeriveRefgetAccession).Methods(http.MethodGet)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func parseUintParam(q string) (*uint64, error) {
	if q == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(q, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Server) handleGetSequence(w http.ResponseWriter, r *http.Request) {
	accession := mux.Vars(r)["accession"]
	start, err := parseUintParam(r.URL.Query().Get("start"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	end, err := parseUintParam(r.URL.Query().Get("end"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	seq, err := s.repo.GetSequence(r.Context(), accession, start, end)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"sequence": seq})
}

func (s *Server) handleGetMetadata(w http.ResponseWriter, r *http.Request) {
	accession := mux.Vars(r)["accession"]
	md, err := s.repo.GetMetadata(r.Context(), accession)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	s.writeJSON(w, http.StatusOK, md)
}

func (s *Server) handleTranslateIdentifier(w http.ResponseWriter, r *http.Request) {
	identifier := mux.Vars(r)["identifier"]
	target := r.URL.Query().Get("targetNamespace")
	aliases, err := s.repo.TranslateIdentifier(r.Context(), identifier, target)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"aliases": aliases})
}

func (s *Server) handleDeriveRefgetAccession(w http.ResponseWriter, r *http.Request) {
	identifier := mux.Vars(r)["identifier"]
	accession, err := s.repo.DeriveRefgetAccession(r.Context(), identifier)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"accession": accession})
}
