package animals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"animal-shelter/internal/platform/logger"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnsupportedOperator = errors.New("unsupported operator")
)

// Service es el data-access object de la colección de animales: CRUD directo sobre el repo,
// validando solo la forma de los argumentos.
type Service struct {
	repo Repository
	log  logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		log:  log.With(map[string]any{"component": "animals"}),
	}
}

// Create inserta un documento. Los errores del backend se convierten en false + log.
func (s *Service) Create(ctx context.Context, rec Record) (bool, error) {
	if len(rec) == 0 {
		return false, fmt.Errorf("nothing to save, record is empty: %w", ErrInvalidInput)
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		s.log.Error("insert failed", map[string]any{"error": err})
		return false, nil
	}
	return true, nil
}

// Read devuelve un cursor sobre los documentos que cumplen el filtro, sin _id.
// Un filtro vacío (no nil) devuelve todo.
func (s *Service) Read(ctx context.Context, filter Filter) (Cursor, error) {
	if filter == nil {
		return nil, fmt.Errorf("read: invalid query parameter: %w", ErrInvalidInput)
	}
	if err := CheckFilter(filter); err != nil {
		return nil, err
	}
	return s.repo.Find(ctx, filter)
}

// ReadAll es Read + Collect.
func (s *Service) ReadAll(ctx context.Context, filter Filter) ([]Record, error) {
	cur, err := s.Read(ctx, filter)
	if err != nil {
		return nil, err
	}
	return Collect(ctx, cur)
}

// rawUpdateResult replica el raw_result de Mongo para update_many.
type rawUpdateResult struct {
	N               int64   `json:"n"`
	NModified       int64   `json:"nModified"`
	OK              float64 `json:"ok"`
	UpdatedExisting bool    `json:"updatedExisting"`
}

// rawDeleteResult replica el raw_result de Mongo para delete_many.
type rawDeleteResult struct {
	N  int64   `json:"n"`
	OK float64 `json:"ok"`
}

// Update aplica changes a todos los documentos que cumplen filter y devuelve el resultado crudo en JSON.
func (s *Service) Update(ctx context.Context, filter Filter, changes Changes) (string, error) {
	if filter == nil || len(changes) == 0 {
		return "", fmt.Errorf("update: invalid update parameters: %w", ErrInvalidInput)
	}

	changes = NormalizeChanges(changes)
	if err := CheckFilter(filter); err != nil {
		return "", err
	}
	if err := CheckChanges(changes); err != nil {
		return "", err
	}

	res, err := s.repo.UpdateMany(ctx, filter, changes)
	if err != nil {
		return "", err
	}

	b, err := json.Marshal(rawUpdateResult{
		N:               res.Matched,
		NModified:       res.Modified,
		OK:              1,
		UpdatedExisting: res.Matched > 0,
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Delete borra todos los documentos que cumplen filter. Un filtro vacío se rechaza.
func (s *Service) Delete(ctx context.Context, filter Filter) (string, error) {
	if len(filter) == 0 {
		return "", fmt.Errorf("delete: invalid delete parameter: %w", ErrInvalidInput)
	}
	if err := CheckFilter(filter); err != nil {
		return "", err
	}

	res, err := s.repo.DeleteMany(ctx, filter)
	if err != nil {
		return "", err
	}

	b, err := json.Marshal(rawDeleteResult{N: res.Deleted, OK: 1})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
