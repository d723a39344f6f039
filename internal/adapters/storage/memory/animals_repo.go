package memory

import (
	"context"
	"errors"
	"sync"

	"animal-shelter/internal/domain/animals"

	"github.com/google/uuid"
)

var (
	ErrClosed = errors.New("memory store closed")
)

// animalsRepo guarda documentos en orden de inserción; _id lo genera el repo como haría Mongo.
type animalsRepo struct {
	mu     sync.RWMutex
	order  []string
	byID   map[string]animals.Record
	closed bool
}

func NewAnimalsRepo(seed ...animals.Record) animals.Repository {
	r := &animalsRepo{
		byID: make(map[string]animals.Record),
	}
	for _, rec := range seed {
		_ = r.insert(rec)
	}
	return r
}

func (r *animalsRepo) Insert(ctx context.Context, rec animals.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	return r.insert(rec)
}

func (r *animalsRepo) insert(rec animals.Record) error {
	doc := rec.Clone()

	id, _ := doc[animals.FieldID].(string)
	if id == "" {
		id = uuid.NewString()
		doc[animals.FieldID] = id
	}
	if _, exists := r.byID[id]; exists {
		return errors.New("duplicate key: _id " + id)
	}

	r.byID[id] = doc
	r.order = append(r.order, id)
	return nil
}

func (r *animalsRepo) Find(ctx context.Context, filter animals.Filter) (animals.Cursor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, ErrClosed
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	out := make([]animals.Record, 0)
	for _, id := range r.order {
		doc := r.byID[id]
		ok, err := matches(doc, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, doc.Without(animals.FieldID))
		}
	}
	return animals.NewSliceCursor(out), nil
}

func (r *animalsRepo) UpdateMany(ctx context.Context, filter animals.Filter, changes animals.Changes) (animals.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return animals.UpdateResult{}, ErrClosed
	}
	if err := validateFilter(filter); err != nil {
		return animals.UpdateResult{}, err
	}

	// Validar y calcular todo antes de escribir: o se aplica a todos o a ninguno.
	pending := make(map[string]animals.Record)
	var res animals.UpdateResult
	for _, id := range r.order {
		doc := r.byID[id]
		ok, err := matches(doc, filter)
		if err != nil {
			return animals.UpdateResult{}, err
		}
		if !ok {
			continue
		}
		res.Matched++

		updated, changed, err := apply(doc, changes)
		if err != nil {
			return animals.UpdateResult{}, err
		}
		if changed {
			res.Modified++
			pending[id] = updated
		}
	}

	for id, doc := range pending {
		r.byID[id] = doc
	}
	return res, nil
}

func (r *animalsRepo) DeleteMany(ctx context.Context, filter animals.Filter) (animals.DeleteResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return animals.DeleteResult{}, ErrClosed
	}
	if err := validateFilter(filter); err != nil {
		return animals.DeleteResult{}, err
	}

	kept := make([]string, 0, len(r.order))
	var res animals.DeleteResult
	for _, id := range r.order {
		ok, err := matches(r.byID[id], filter)
		if err != nil {
			return animals.DeleteResult{}, err
		}
		if ok {
			delete(r.byID, id)
			res.Deleted++
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return res, nil
}

func (r *animalsRepo) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}
