// Package registration orchestrates one registration: validation, attachment
// decoding, uniqueness checks, id and timestamp assignment, persistence, and
// the fire-and-forget sheet export.
package registration

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"hackreg/internal/models"
	"hackreg/internal/storage"
	"hackreg/internal/validate"
)

// Messages are returned verbatim to API clients.
var (
	ErrEmailTaken = errors.New("Email already registered")
	ErrRollTaken  = errors.New("Roll number already registered")
)

// IsClientError reports whether err is the caller's fault (HTTP 400) rather
// than a storage failure.
func IsClientError(err error) bool {
	return errors.Is(err, validate.ErrFieldsRequired) ||
		errors.Is(err, validate.ErrInvalidEmail) ||
		errors.Is(err, validate.ErrInvalidPhone) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrRollTaken)
}

// Exporter mirrors a stored record to an external spreadsheet. Implementations
// are best-effort: the service never propagates their errors.
type Exporter interface {
	AppendStudent(ctx context.Context, s models.Student) error
}

type Service struct {
	store      storage.Store
	exporter   Exporter // nil disables export
	uploadsDir string
	log        *slog.Logger
}

func New(store storage.Store, exporter Exporter, uploadsDir string, log *slog.Logger) *Service {
	return &Service{store: store, exporter: exporter, uploadsDir: uploadsDir, log: log}
}

// Register validates and persists one registration, returning the normalized
// stored record. Attachment problems are logged and skipped, never fatal.
// The sheet export runs detached from the request lifetime.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.Student, error) {
	if err := validate.Student(req); err != nil {
		return nil, err
	}

	abstractPath := ""
	if req.AbstractFile != nil && req.AbstractFile.Data != "" {
		abstractPath = s.saveAbstract(req.AbstractFile)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	rollNumber := strings.TrimSpace(req.RollNumber)

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("email lookup: %w", err)
	}
	if _, err := s.store.FindByRollNumber(ctx, rollNumber); err == nil {
		return nil, ErrRollTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("roll number lookup: %w", err)
	}

	student := &models.Student{
		ID:               newID(),
		Name:             strings.TrimSpace(req.Name),
		Email:            email,
		Phone:            strings.TrimSpace(req.Phone),
		Department:       req.Department,
		Year:             req.Year,
		RollNumber:       rollNumber,
		Accommodation:    req.Accommodation,
		TeamName:         strings.TrimSpace(req.TeamName),
		TeamSize:         req.TeamSize,
		TeamMembers:      req.TeamMembers,
		Domain:           req.Domain,
		ProblemStatement: req.ProblemStatement,
		Event:            strings.TrimSpace(req.Event),
		AbstractFilePath: abstractPath,
		RegisteredAt:     time.Now().UTC(),
	}
	if student.TeamSize <= 0 {
		student.TeamSize = 1
	}
	if student.TeamMembers == nil {
		student.TeamMembers = []models.TeamMember{}
	}
	if student.Event == "" {
		student.Event = "General"
	}

	if err := s.store.Insert(ctx, student); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			// Insert lost a race the lookups did not see. Name the field.
			if _, ferr := s.store.FindByEmail(ctx, email); ferr == nil {
				return nil, ErrEmailTaken
			}
			return nil, ErrRollTaken
		}
		return nil, fmt.Errorf("insert student: %w", err)
	}

	if s.exporter != nil {
		go s.export(*student)
	}

	return student, nil
}

func (s *Service) export(student models.Student) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.exporter.AppendStudent(ctx, student); err != nil {
		s.log.Error("sheet append failed", "id", student.ID, "err", err)
		return
	}
	s.log.Info("registration mirrored to sheet", "id", student.ID)
}

// saveAbstract decodes a base64 attachment into the uploads directory and
// returns its public path, or "" if anything went wrong.
func (s *Service) saveAbstract(file *models.AbstractFile) string {
	payload := file.Data
	if i := strings.Index(payload, ";base64,"); i >= 0 {
		payload = payload[i+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		s.log.Warn("abstract file decode failed, skipping attachment", "name", file.Name, "err", err)
		return ""
	}
	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		s.log.Warn("uploads dir unavailable, skipping attachment", "err", err)
		return ""
	}
	name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), sanitizeFilename(file.Name))
	if err := os.WriteFile(filepath.Join(s.uploadsDir, name), data, 0o644); err != nil {
		s.log.Warn("abstract file write failed, skipping attachment", "name", name, "err", err)
		return ""
	}
	return "/uploads/" + name
}

func sanitizeFilename(name string) string {
	if name == "" {
		return "abstract"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// newID combines the creation time with a random suffix so that two
// registrations in the same millisecond cannot collide.
func newID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
