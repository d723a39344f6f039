package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/platform/metrics"
)

var (
	ErrInvalidSelection  = errors.New("invalid selection")
	ErrSnapshotNotLoaded = errors.New("snapshot not loaded")
)

// Reader es la parte del DAO que usa el dashboard (lo cumple *animals.Service).
type Reader interface {
	ReadAll(ctx context.Context, filter animals.Filter) ([]animals.Record, error)
}

type Options struct {
	PageSize int
	Logger   logger.Logger
	Metrics  *metrics.Metrics
}

// Service mantiene el snapshot y resuelve cada interacción con una consulta al DAO.
type Service struct {
	reader   Reader
	log      logger.Logger
	metrics  *metrics.Metrics
	pageSize int
	now      func() time.Time

	mu   sync.RWMutex
	snap *Snapshot
}

func NewService(reader Reader, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	size := opts.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Service{
		reader:   reader,
		log:      log.With(map[string]any{"component": "dashboard"}),
		metrics:  opts.Metrics,
		pageSize: size,
		now:      time.Now,
	}
}

// Load (re)carga el snapshot con la colección completa.
func (s *Service) Load(ctx context.Context) error {
	records, err := s.reader.ReadAll(ctx, animals.Filter{})
	if err != nil {
		return fmt.Errorf("dashboard: load snapshot: %w", err)
	}

	snap := buildSnapshot(records, s.now())

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.metrics.SetSnapshotSize(len(records))
	s.log.Info("snapshot loaded", map[string]any{
		"records": len(records),
		"columns": len(snap.Columns),
		"age_max": snap.Options.AgeMax,
	})
	return nil
}

func (s *Service) Snapshot() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		return nil, ErrSnapshotNotLoaded
	}
	return s.snap, nil
}

func (s *Service) PageSize() int { return s.pageSize }

// Options recalcula dropdowns y slider para la selección categórica (sin rango de edad).
// Sin selección usa el snapshot. La página de la tabla vuelve a 0.
func (s *Service) Options(ctx context.Context, sel Selection) (OptionSet, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return OptionSet{}, err
	}
	if sel.IsEmpty() {
		return snap.Options, nil
	}

	records, err := s.reader.ReadAll(ctx, CategoricalFilter(sel))
	if err != nil {
		return OptionSet{}, err
	}
	return deriveOptions(records), nil
}

// TableQuery es el estado de los controles al momento de refrescar la tabla.
type TableQuery struct {
	Selection Selection

	// Valores crudos del slider; nil = límites del snapshot.
	AgeLow  *int
	AgeHigh *int

	Page     int
	PageSize int
	Sort     []SortKey
	Search   string

	// Índices de filas seleccionadas dentro de la página (selección simple en la UI).
	Selected []int
}

// TablePage es todo lo que la UI re-renderiza después de un cambio de filtro.
type TablePage struct {
	Columns    []string         `json:"columns"`
	Rows       []animals.Record `json:"rows"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageCount  int              `json:"page_count"`
	PageSize   int              `json:"page_size"`
	Selected   []int            `json:"selected_rows"`
	AgeRange   AgeRange         `json:"age_range"`
	SliderText string           `json:"slider_text"`
	Chart      *PieChart        `json:"chart"`
	Map        *MapView         `json:"map"`
}

func (s *Service) Table(ctx context.Context, q TableQuery) (TablePage, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return TablePage{}, err
	}

	lo, hi := snap.Options.AgeMin, snap.Options.AgeMax
	if q.AgeLow != nil {
		lo = *q.AgeLow
	}
	if q.AgeHigh != nil {
		hi = *q.AgeHigh
	}
	ages := NormalizeAgeRange(lo, hi)

	rows, err := s.reader.ReadAll(ctx, TableFilter(q.Selection, ages))
	if err != nil {
		return TablePage{}, err
	}

	rows = searchRows(rows, snap.Columns, q.Search)
	sortRows(rows, q.Sort)

	size := q.PageSize
	if size <= 0 {
		size = s.pageSize
	}
	view, page, pages := paginate(rows, q.Page, size)

	selected := make([]int, 0, len(q.Selected))
	for _, i := range q.Selected {
		if i >= 0 && i < len(view) {
			selected = append(selected, i)
		}
	}

	return TablePage{
		Columns:    snap.Columns,
		Rows:       view,
		Total:      len(rows),
		Page:       page,
		PageCount:  pages,
		PageSize:   size,
		Selected:   selected,
		AgeRange:   ages,
		SliderText: SliderText(lo, hi),
		Chart:      BreedChart(view),
		Map:        BuildMap(view, selected),
	}, nil
}
