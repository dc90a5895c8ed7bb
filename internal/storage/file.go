package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"hackreg/internal/models"
)

// FileStore keeps the whole record list in a single pretty-printed JSON array.
// Every mutation rewrites the backing file. A process-wide mutex guards each
// read-modify-write cycle, so check-then-insert sequences are safe within one
// process; concurrent writers from separate processes still race
// (last-writer-wins, as in the original deployment).
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("init data file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat data file: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (f *FileStore) load() ([]models.Student, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	var students []models.Student
	if err := json.Unmarshal(data, &students); err != nil {
		return nil, fmt.Errorf("parse data file: %w", err)
	}
	return students, nil
}

func (f *FileStore) save(students []models.Student) error {
	data, err := json.MarshalIndent(students, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

func (f *FileStore) List(ctx context.Context) ([]models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	students, err := f.load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(students, func(i, j int) bool {
		return students[i].RegisteredAt.After(students[j].RegisteredAt)
	})
	return students, nil
}

func (f *FileStore) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.findLocked(func(s models.Student) bool {
		return strings.EqualFold(s.Email, email)
	})
}

func (f *FileStore) FindByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.findLocked(func(s models.Student) bool {
		return s.RollNumber == rollNumber
	})
}

func (f *FileStore) findLocked(match func(models.Student) bool) (*models.Student, error) {
	students, err := f.load()
	if err != nil {
		return nil, err
	}
	for i := range students {
		if match(students[i]) {
			return &students[i], nil
		}
	}
	return nil, ErrNotFound
}

func (f *FileStore) Insert(ctx context.Context, student *models.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	students, err := f.load()
	if err != nil {
		return err
	}
	for _, s := range students {
		if s.ID == student.ID || strings.EqualFold(s.Email, student.Email) || s.RollNumber == student.RollNumber {
			return ErrDuplicate
		}
	}
	students = append(students, *student)
	return f.save(students)
}

func (f *FileStore) GetByID(ctx context.Context, id string) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.findLocked(func(s models.Student) bool {
		return s.ID == id
	})
}

func (f *FileStore) DeleteByID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	students, err := f.load()
	if err != nil {
		return err
	}
	kept := students[:0]
	for _, s := range students {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(students) {
		return ErrNotFound
	}
	return f.save(kept)
}

func (f *FileStore) Count(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	students, err := f.load()
	if err != nil {
		return 0, err
	}
	return len(students), nil
}

func (f *FileStore) CountByField(ctx context.Context, field string) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	students, err := f.load()
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, s := range students {
		switch field {
		case "department":
			counts[s.Department]++
		case "year":
			counts[s.Year]++
		default:
			return nil, fmt.Errorf("unsupported group field %q", field)
		}
	}
	return counts, nil
}

func (f *FileStore) Close(ctx context.Context) error { return nil }
