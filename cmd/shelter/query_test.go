package main

import (
	"bytes"
	"testing"

	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/domain/dashboard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintPage(t *testing.T) {
	page := dashboard.TablePage{
		Columns: []string{"name", "breed", "age_upon_outcome_in_weeks"},
		Rows: []animals.Record{
			{"name": "Rex", "breed": "Beagle", "age_upon_outcome_in_weeks": 52.14},
			{"name": "Luna", "breed": "Siamese"},
		},
		Total:      12,
		Page:       1,
		PageCount:  2,
		SliderText: "Age Range: 0 to 60 weeks",
	}

	var buf bytes.Buffer
	require.NoError(t, printPage(&buf, page, nil))

	out := buf.String()
	assert.Contains(t, out, "name  breed    age_upon_outcome_in_weeks")
	assert.Contains(t, out, "Rex   Beagle   52.14")
	assert.Contains(t, out, "Age Range: 0 to 60 weeks | page 2/2 | 12 rows")
}

func TestSplitColumns(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitColumns(" a, ,b "))
	assert.Nil(t, splitColumns(""))
}
