package postgres

import (
	"errors"
	"testing"

	"animal-shelter/internal/domain/animals"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhere_EmptyFilterIsTrue(t *testing.T) {
	var b sqlBuilder
	sql, err := b.where(animals.Filter{})
	require.NoError(t, err)
	assert.Equal(t, "TRUE", sql)
	assert.Empty(t, b.args)
}

func TestWhere_EqualityAndInclusiveRange(t *testing.T) {
	var b sqlBuilder
	sql, err := b.where(animals.Filter{
		"animal_type":               "Dog",
		"age_upon_outcome_in_weeks": map[string]any{"$gte": 0, "$lte": 53},
	})
	require.NoError(t, err)

	want := "(jsonb_typeof(doc -> $1::text) = 'number' AND (doc ->> $1::text)::numeric >= $2::numeric)" +
		" AND (jsonb_typeof(doc -> $3::text) = 'number' AND (doc ->> $3::text)::numeric <= $4::numeric)" +
		" AND doc -> $5::text = $6::jsonb"
	assert.Equal(t, want, sql)

	wantArgs := []any{
		"age_upon_outcome_in_weeks", float64(0),
		"age_upon_outcome_in_weeks", float64(53),
		"animal_type", `"Dog"`,
	}
	if diff := cmp.Diff(wantArgs, b.args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestWhere_InAndNe(t *testing.T) {
	var b sqlBuilder
	sql, err := b.where(animals.Filter{
		"breed": map[string]any{"$in": []any{"Beagle", "Pug"}},
		"name":  map[string]any{"$ne": ""},
	})
	require.NoError(t, err)
	assert.Equal(t, `doc -> $1::text IN ($2::jsonb, $3::jsonb) AND (doc -> $4::text) IS DISTINCT FROM $5::jsonb`, sql)
	assert.Len(t, b.args, 5)
}

func TestWhere_InAcceptsTypedSlice(t *testing.T) {
	var fromJSON, typed sqlBuilder
	wantSQL, err := fromJSON.where(animals.Filter{"breed": map[string]any{"$in": []any{"Beagle", "Pug"}}})
	require.NoError(t, err)

	sql, err := typed.where(animals.Filter{"breed": map[string]any{"$in": []string{"Beagle", "Pug"}}})
	require.NoError(t, err)
	assert.Equal(t, wantSQL, sql)
	assert.Equal(t, `doc -> $1::text IN ($2::jsonb, $3::jsonb)`, sql)
	if diff := cmp.Diff(fromJSON.args, typed.args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}

	_, err = typed.where(animals.Filter{"breed": map[string]any{"$in": "Beagle"}})
	assert.True(t, errors.Is(err, animals.ErrInvalidInput))
}

func TestWhere_RejectsUnknownOperator(t *testing.T) {
	var b sqlBuilder
	_, err := b.where(animals.Filter{"breed": map[string]any{"$regex": "^B"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, animals.ErrUnsupportedOperator))

	_, err = b.where(animals.Filter{"$or": []any{}})
	assert.True(t, errors.Is(err, animals.ErrUnsupportedOperator))
}

func TestUpdateExpr_SetUnsetInc(t *testing.T) {
	var b sqlBuilder
	expr, err := b.updateExpr(animals.Changes{
		"$set":   map[string]any{"name": "Rex"},
		"$unset": map[string]any{"color": ""},
		"$inc":   map[string]any{"age_upon_outcome_in_weeks": 1},
	})
	require.NoError(t, err)

	want := "jsonb_set(((doc || $1::jsonb) - $2::text[]), ARRAY[$3::text], " +
		"to_jsonb(COALESCE((((doc || $1::jsonb) - $2::text[]) ->> $3::text)::numeric, 0) + $4::numeric))"
	assert.Equal(t, want, expr)
	assert.Equal(t, []any{`{"name":"Rex"}`, []string{"color"}, "age_upon_outcome_in_weeks", float64(1)}, b.args)
}

func TestUpdateExpr_RejectsUnknownOperator(t *testing.T) {
	var b sqlBuilder
	_, err := b.updateExpr(animals.Changes{"$push": map[string]any{"tags": "x"}})
	assert.True(t, errors.Is(err, animals.ErrUnsupportedOperator))
}
