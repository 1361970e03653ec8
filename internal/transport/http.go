package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/ganot/procflow/internal/domain/process"
	"github.com/ganot/procflow/internal/repository"
)

const maxUploadMemory = 32 << 20 // 32 MiB before multipart spills to disk

// RepairRunner triggers the contract-date repair pass.
type RepairRunner interface {
	Run(ctx context.Context) (int, error)
}

// Server wires HTTP handlers for the process API.
type Server struct {
	processes *process.Service
	repair    RepairRunner
	files     repository.FileStore
	logger    *slog.Logger
}

// NewRouter creates the API router: process CRUD under /api, uploaded files
// served statically under /files.
func NewRouter(processes *process.Service, repairSvc RepairRunner, files repository.FileStore, uploadsDir string, allowedOrigins []string, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{processes: processes, repair: repairSvc, files: files, logger: logger}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	r := chi.NewRouter()
	r.Use(corsHandler.Handler)

	r.Get("/api/processes", srv.handleList)
	r.Post("/api/processes", srv.handleCreate)
	r.Get("/api/processes/{id}", srv.handleGet)
	r.Put("/api/processes/{id}", srv.handleUpdate)
	r.Delete("/api/processes/{id}", srv.handleDelete)
	r.Post("/api/repair/contract-dates", srv.handleRepair)

	r.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(uploadsDir))))
	r.Get("/health", srv.handleHealth)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	procs, err := s.processes.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, procs)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := s.processID(w, r)
	if !ok {
		return
	}
	proc, err := s.processes.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, proc)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	form, fileHeaders, err := parseForm(r)
	if err != nil {
		s.writeStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	input, err := createInputFromForm(form)
	if err != nil {
		s.writeStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	input.Attachments, err = s.storeFiles(r.Context(), fileHeaders)
	if err != nil {
		s.writeError(w, err)
		return
	}

	proc, err := s.processes.Create(r.Context(), input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, proc)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.processID(w, r)
	if !ok {
		return
	}

	form, fileHeaders, err := parseForm(r)
	if err != nil {
		s.writeStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	upd, logHistory, err := updateFromForm(form)
	if err != nil {
		s.writeStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	upd.Attachments, err = s.storeFiles(r.Context(), fileHeaders)
	if err != nil {
		s.writeError(w, err)
		return
	}

	proc, err := s.processes.Update(r.Context(), id, upd, logHistory)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, proc)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.processID(w, r)
	if !ok {
		return
	}
	if err := s.processes.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRepair(w http.ResponseWriter, r *http.Request) {
	corrected, err := s.repair.Run(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"corrected": corrected})
}

// parseForm accepts multipart (the upload path) or urlencoded bodies and
// returns the flat field values plus any uploaded file headers.
func parseForm(r *http.Request) (url.Values, []*multipart.FileHeader, error) {
	err := r.ParseMultipartForm(maxUploadMemory)
	if err == nil {
		return url.Values(r.MultipartForm.Value), r.MultipartForm.File["files"], nil
	}
	if errors.Is(err, http.ErrNotMultipart) {
		if err := r.ParseForm(); err != nil {
			return nil, nil, err
		}
		return r.PostForm, nil, nil
	}
	return nil, nil, err
}

func (s *Server) storeFiles(ctx context.Context, headers []*multipart.FileHeader) ([]process.Attachment, error) {
	if len(headers) == 0 || s.files == nil {
		return nil, nil
	}
	attachments := make([]process.Attachment, 0, len(headers))
	for _, hdr := range headers {
		f, err := hdr.Open()
		if err != nil {
			return nil, err
		}
		att, err := s.files.Save(ctx, hdr.Filename, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, att)
	}
	return attachments, nil
}

func (s *Server) processID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.writeStatus(w, http.StatusBadRequest, "invalid process id")
		return 0, false
	}
	return id, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

func (s *Server) writeStatus(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, process.ErrProcessNotFound):
		s.writeStatus(w, http.StatusNotFound, err.Error())
	case errors.Is(err, process.ErrInvalidInput):
		s.writeStatus(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		s.writeStatus(w, http.StatusInternalServerError, "internal error")
	}
}
