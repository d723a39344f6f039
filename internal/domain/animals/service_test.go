package animals_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"animal-shelter/internal/adapters/storage/memory"
	"animal-shelter/internal/domain/animals"
)

type failingRepo struct {
	animals.Repository
	err error
}

func (f failingRepo) Insert(context.Context, animals.Record) error { return f.err }

func TestService_CreateThenRead(t *testing.T) {
	ctx := context.Background()
	svc := animals.NewService(memory.NewAnimalsRepo(), nil)

	ok, err := svc.Create(ctx, animals.Record{"animal_id": "A700", "animal_type": "Dog", "name": "Milo"})
	if err != nil || !ok {
		t.Fatalf("expected create ok, got ok=%v err=%v", ok, err)
	}

	got, err := svc.ReadAll(ctx, animals.Filter{"animal_id": "A700"})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 1 || got[0]["name"] != "Milo" {
		t.Fatalf("expected Milo, got %#v", got)
	}
	if _, has := got[0][animals.FieldID]; has {
		t.Fatalf("expected _id to be stripped, got %#v", got[0])
	}
}

func TestService_CreateEmpty(t *testing.T) {
	svc := animals.NewService(memory.NewAnimalsRepo(), nil)

	for _, rec := range []animals.Record{nil, {}} {
		ok, err := svc.Create(context.Background(), rec)
		if ok || !errors.Is(err, animals.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got ok=%v err=%v", ok, err)
		}
	}
}

func TestService_CreateStoreFailureReturnsFalse(t *testing.T) {
	svc := animals.NewService(failingRepo{err: errors.New("duplicate key")}, nil)

	ok, err := svc.Create(context.Background(), animals.Record{"name": "x"})
	if ok || err != nil {
		t.Fatalf("expected ok=false err=nil, got ok=%v err=%v", ok, err)
	}
}

func TestService_ReadEmptyFilterReturnsAll(t *testing.T) {
	ctx := context.Background()
	svc := animals.NewService(memory.NewAnimalsRepo(
		animals.Record{"animal_id": "A1"},
		animals.Record{"animal_id": "A2"},
		animals.Record{"animal_id": "A3"},
	), nil)

	got, err := svc.ReadAll(ctx, animals.Filter{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}

	if _, err := svc.Read(ctx, nil); !errors.Is(err, animals.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for nil filter, got %v", err)
	}
}

func TestService_UpdateNoMatch(t *testing.T) {
	svc := animals.NewService(memory.NewAnimalsRepo(animals.Record{"animal_id": "A1", "name": "Rex"}), nil)

	raw, err := svc.Update(context.Background(), animals.Filter{"animal_id": "nope"}, animals.Changes{"name": "Max"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	var res struct {
		N               int64   `json:"n"`
		NModified       int64   `json:"nModified"`
		OK              float64 `json:"ok"`
		UpdatedExisting bool    `json:"updatedExisting"`
	}
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		t.Fatalf("raw result is not json: %q", raw)
	}
	if res.N != 0 || res.NModified != 0 || res.OK != 1 || res.UpdatedExisting {
		t.Fatalf("unexpected result %s", raw)
	}
}

func TestService_UpdatePlainChangesAsSet(t *testing.T) {
	ctx := context.Background()
	svc := animals.NewService(memory.NewAnimalsRepo(
		animals.Record{"animal_id": "A1", "name": "Rex"},
		animals.Record{"animal_id": "A2", "name": "Rex"},
	), nil)

	raw, err := svc.Update(ctx, animals.Filter{"name": "Rex"}, animals.Changes{"name": "Max"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if raw != `{"n":2,"nModified":2,"ok":1,"updatedExisting":true}` {
		t.Fatalf("unexpected raw result %s", raw)
	}

	got, _ := svc.ReadAll(ctx, animals.Filter{"name": "Max"})
	if len(got) != 2 {
		t.Fatalf("expected 2 renamed records, got %d", len(got))
	}
}

func TestService_UpdateInvalid(t *testing.T) {
	svc := animals.NewService(memory.NewAnimalsRepo(), nil)
	ctx := context.Background()

	if _, err := svc.Update(ctx, nil, animals.Changes{"a": 1}); !errors.Is(err, animals.ErrInvalidInput) {
		t.Fatalf("nil filter: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Update(ctx, animals.Filter{}, nil); !errors.Is(err, animals.ErrInvalidInput) {
		t.Fatalf("empty changes: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Update(ctx, animals.Filter{"a": map[string]any{"$regex": "x"}}, animals.Changes{"a": 1}); !errors.Is(err, animals.ErrUnsupportedOperator) {
		t.Fatalf("unknown operator: expected ErrUnsupportedOperator, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := animals.NewService(memory.NewAnimalsRepo(
		animals.Record{"animal_id": "A1", "animal_type": "Cat"},
		animals.Record{"animal_id": "A2", "animal_type": "Cat"},
		animals.Record{"animal_id": "A3", "animal_type": "Dog"},
	), nil)

	if _, err := svc.Delete(ctx, animals.Filter{}); !errors.Is(err, animals.ErrInvalidInput) {
		t.Fatalf("empty filter: expected ErrInvalidInput, got %v", err)
	}

	raw, err := svc.Delete(ctx, animals.Filter{"animal_type": "Cat"})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if raw != `{"n":2,"ok":1}` {
		t.Fatalf("unexpected raw result %s", raw)
	}

	left, _ := svc.ReadAll(ctx, animals.Filter{})
	if len(left) != 1 || left[0]["animal_id"] != "A3" {
		t.Fatalf("expected only A3 left, got %#v", left)
	}
}

func TestNormalizeChanges(t *testing.T) {
	plain := animals.NormalizeChanges(animals.Changes{"name": "x"})
	set, ok := plain[animals.OpSet].(map[string]any)
	if !ok || set["name"] != "x" || len(plain) != 1 {
		t.Fatalf("expected plain changes wrapped in $set, got %#v", plain)
	}

	withOp := animals.Changes{animals.OpInc: map[string]any{"n": 1}}
	if got := animals.NormalizeChanges(withOp); len(got) != 1 || got[animals.OpInc] == nil {
		t.Fatalf("expected operator changes untouched, got %#v", got)
	}
}

func TestToList(t *testing.T) {
	got, ok := animals.ToList([]string{"Beagle", "Pug"})
	if !ok || len(got) != 2 || got[0] != "Beagle" || got[1] != "Pug" {
		t.Fatalf("expected typed slice converted, got %#v ok=%v", got, ok)
	}
	if got, ok := animals.ToList([2]int{1, 2}); !ok || len(got) != 2 || got[1] != 2 {
		t.Fatalf("expected array converted, got %#v ok=%v", got, ok)
	}
	for _, v := range []any{nil, "Beagle", map[string]any{"a": 1}} {
		if _, ok := animals.ToList(v); ok {
			t.Fatalf("ToList(%#v) expected not a list", v)
		}
	}
}

func TestCheckFilterAndChanges(t *testing.T) {
	ok := []animals.Filter{
		{},
		{"breed": "Beagle"},
		{"age_upon_outcome_in_weeks": map[string]any{"$gte": 0, "$lte": 52}},
		{"animal_type": map[string]any{"$in": []any{"Dog", "Cat"}}},
	}
	for _, f := range ok {
		if err := animals.CheckFilter(f); err != nil {
			t.Fatalf("CheckFilter(%v) unexpected error: %v", f, err)
		}
	}

	bad := []animals.Filter{
		{"$where": "this.name == 'x'"},
		{"name": map[string]any{"$regex": "^R"}},
	}
	for _, f := range bad {
		if err := animals.CheckFilter(f); !errors.Is(err, animals.ErrUnsupportedOperator) {
			t.Fatalf("CheckFilter(%v) expected ErrUnsupportedOperator, got %v", f, err)
		}
	}

	if err := animals.CheckChanges(animals.Changes{"$rename": map[string]any{"a": "b"}}); !errors.Is(err, animals.ErrUnsupportedOperator) {
		t.Fatalf("expected ErrUnsupportedOperator for $rename, got %v", err)
	}
	if err := animals.CheckChanges(animals.Changes{"$set": "x"}); !errors.Is(err, animals.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-document $set, got %v", err)
	}
}
