package main

import (
	"context"
	"strings"
	"testing"

	mem "animal-shelter/internal/adapters/storage/memory"
	"animal-shelter/internal/domain/animals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `,age_upon_outcome,animal_id,animal_type,breed,name,sex_upon_outcome,location_lat,location_long,age_upon_outcome_in_weeks
1,3 years,A746874,Cat,Domestic Shorthair Mix,,Neutered Male,30.5066578739455,-97.3408780722188,52.9
2,1 year,A725717,Dog,Labrador Retriever Mix,*Rex,Intact Male,30.6525984560228,-97.7419963476444,56
`

func TestImportCSV(t *testing.T) {
	ctx := context.Background()
	dao := animals.NewService(mem.NewAnimalsRepo(), nil)

	res, err := importCSV(ctx, dao, strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, importResult{Inserted: 2}, res)

	got, err := dao.ReadAll(ctx, animals.Filter{"animal_id": "A725717"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, int64(2), got[0][animals.FieldRecNum])
	assert.Equal(t, int64(56), got[0][animals.FieldAgeWeeks])
	assert.Equal(t, 30.6525984560228, got[0][animals.FieldLatitude])
	assert.Equal(t, "*Rex", got[0][animals.FieldName])

	cat, err := dao.ReadAll(ctx, animals.Filter{"animal_id": "A746874"})
	require.NoError(t, err)
	require.Len(t, cat, 1)
	_, hasName := cat[0][animals.FieldName]
	assert.False(t, hasName, "empty cells are not stored")
	assert.Equal(t, 52.9, cat[0][animals.FieldAgeWeeks])
}

func TestImportCSV_NumericIndexHeader(t *testing.T) {
	ctx := context.Background()
	dao := animals.NewService(mem.NewAnimalsRepo(), nil)

	csvData := "1" + sampleCSV
	res, err := importCSV(ctx, dao, strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, importResult{Inserted: 2}, res)

	got, err := dao.ReadAll(ctx, animals.Filter{"animal_id": "A746874"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0][animals.FieldRecNum])
	_, hasRaw := got[0]["1"]
	assert.False(t, hasRaw)
}

type rejectingCreator struct{}

func (rejectingCreator) Create(context.Context, animals.Record) (bool, error) { return false, nil }

func TestImportCSV_CountsRejected(t *testing.T) {
	res, err := importCSV(context.Background(), rejectingCreator{}, strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, importResult{Rejected: 2}, res)
}

func TestImportCSV_MissingHeader(t *testing.T) {
	_, err := importCSV(context.Background(), rejectingCreator{}, strings.NewReader(""))
	require.Error(t, err)
}
