package dashboard

import (
	"testing"
	"time"

	"animal-shelter/internal/domain/animals"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestBuildSnapshot(t *testing.T) {
	records := []animals.Record{
		{"_id": "x", "name": "Rex", "animal_type": "Dog", "breed": "Beagle", "sex_upon_outcome": "Neutered Male", "age_upon_outcome_in_weeks": 104.5, "zz_extra": 1},
		{"name": "Luna", "animal_type": "Cat", "breed": "Siamese", "sex_upon_outcome": "", "age_upon_outcome_in_weeks": 3},
		{"name": "Max", "animal_type": "Dog", "breed": "Beagle", "age_upon_outcome_in_weeks": "n/a"},
	}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	snap := buildSnapshot(records, now)

	assert.Equal(t, now, snap.LoadedAt)
	assert.Equal(t, []string{"animal_type", "breed", "name", "sex_upon_outcome", "age_upon_outcome_in_weeks", "zz_extra"}, snap.Columns)

	want := OptionSet{
		Types:   []Option{{"Cat", "Cat"}, {"Dog", "Dog"}},
		Breeds:  []Option{{"Beagle", "Beagle"}, {"Siamese", "Siamese"}},
		Genders: []Option{{"Neutered Male", "Neutered Male"}},
		AgeMin:  3,
		AgeMax:  104,
	}
	if diff := cmp.Diff(want, snap.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveOptions_NoAges(t *testing.T) {
	set := deriveOptions([]animals.Record{{"animal_type": "Bird"}})
	assert.Zero(t, set.AgeMin)
	assert.Zero(t, set.AgeMax)
	assert.Len(t, set.Types, 1)
}

func TestSliderText(t *testing.T) {
	assert.Equal(t, "Age Range: 0 to 52 weeks", SliderText(0, 52))
}
