// Package server maps the five API routes onto the registration service and
// the record store, with a uniform {success, data|count|error} JSON envelope.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"hackreg/internal/config"
	"hackreg/internal/models"
	"hackreg/internal/registration"
	"hackreg/internal/storage"
)

func New(cfg config.Config, svc *registration.Service, store storage.Store, log *slog.Logger) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/students", func(w http.ResponseWriter, r *http.Request) {
		students, err := store.List(r.Context())
		if err != nil {
			writeError(w, log, http.StatusInternalServerError, err)
			return
		}
		if students == nil {
			students = []models.Student{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    students,
			"count":   len(students),
		})
	})

	mux.HandleFunc("POST /api/register", func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, log, http.StatusBadRequest, errors.New("Invalid JSON body"))
			return
		}
		student, err := svc.Register(r.Context(), req)
		if err != nil {
			if registration.IsClientError(err) {
				writeError(w, log, http.StatusBadRequest, err)
			} else {
				writeError(w, log, http.StatusInternalServerError, err)
			}
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"message": "Student registered successfully",
			"data":    student,
		})
	})

	mux.HandleFunc("GET /api/students/{id}", func(w http.ResponseWriter, r *http.Request) {
		student, err := store.GetByID(r.Context(), r.PathValue("id"))
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, log, http.StatusNotFound, errors.New("Student not found"))
			return
		}
		if err != nil {
			writeError(w, log, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": student})
	})

	mux.HandleFunc("DELETE /api/students/{id}", func(w http.ResponseWriter, r *http.Request) {
		err := store.DeleteByID(r.Context(), r.PathValue("id"))
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, log, http.StatusNotFound, errors.New("Student not found"))
			return
		}
		if err != nil {
			writeError(w, log, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Student deleted successfully",
		})
	})

	mux.HandleFunc("GET /api/stats", func(w http.ResponseWriter, r *http.Request) {
		total, err := store.Count(r.Context())
		if err != nil {
			writeError(w, log, http.StatusInternalServerError, err)
			return
		}
		byDepartment, err := store.CountByField(r.Context(), "department")
		if err != nil {
			writeError(w, log, http.StatusInternalServerError, err)
			return
		}
		byYear, err := store.CountByField(r.Context(), "year")
		if err != nil {
			writeError(w, log, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": models.Stats{
				Total:        total,
				ByDepartment: byDepartment,
				ByYear:       byYear,
			},
		})
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, log, http.StatusNotFound, errors.New("Not found"))
	})

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: cors(mux),
	}
}

// cors allows any origin and answers OPTIONS preflights with an empty 200.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, log *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "status", status, "err", err)
	}
	writeJSON(w, status, map[string]any{"success": false, "error": err.Error()})
}
