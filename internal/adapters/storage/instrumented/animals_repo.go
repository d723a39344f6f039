package instrumented

import (
	"context"
	"time"

	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/platform/metrics"
)

// AnimalsRepo decora cualquier animals.Repository con métricas de Prometheus.
type AnimalsRepo struct {
	next animals.Repository
	m    *metrics.Metrics
}

func NewAnimalsRepo(next animals.Repository, m *metrics.Metrics) animals.Repository {
	if m == nil {
		return next
	}
	return &AnimalsRepo{next: next, m: m}
}

func (r *AnimalsRepo) Insert(ctx context.Context, rec animals.Record) error {
	start := time.Now()
	err := r.next.Insert(ctx, rec)
	r.m.ObserveStore("insert", start, err)
	if err == nil {
		r.m.AddRecords("insert", 1)
	}
	return err
}

func (r *AnimalsRepo) Find(ctx context.Context, filter animals.Filter) (animals.Cursor, error) {
	start := time.Now()
	cur, err := r.next.Find(ctx, filter)
	r.m.ObserveStore("find", start, err)
	return cur, err
}

func (r *AnimalsRepo) UpdateMany(ctx context.Context, filter animals.Filter, changes animals.Changes) (animals.UpdateResult, error) {
	start := time.Now()
	res, err := r.next.UpdateMany(ctx, filter, changes)
	r.m.ObserveStore("update", start, err)
	r.m.AddRecords("update", res.Modified)
	return res, err
}

func (r *AnimalsRepo) DeleteMany(ctx context.Context, filter animals.Filter) (animals.DeleteResult, error) {
	start := time.Now()
	res, err := r.next.DeleteMany(ctx, filter)
	r.m.ObserveStore("delete", start, err)
	r.m.AddRecords("delete", res.Deleted)
	return res, err
}

func (r *AnimalsRepo) Close(ctx context.Context) error {
	return r.next.Close(ctx)
}
