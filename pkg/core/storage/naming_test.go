package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	model "github.com/labsuite/chemmanager/pkg/model"
)

func node(name string, abbr *string) *model.Storage {
	return &model.Storage{Name: name, Abbreviation: abbr}
}

func abbr(v string) *string { return &v }

func TestLocationName(t *testing.T) {
	labA := node("Lab A", abbr("LA"))
	fridge := node("Fridge 1", abbr("F1"))
	shelf := node("Shelf 2", nil)

	// Depth-1 nodes are just their own name.
	assert.Equal(t, "Lab A", LocationName(nil, labA))

	assert.Equal(t, "Lab A (Fridge 1)", LocationName([]*model.Storage{labA}, fridge))
	assert.Equal(t, "Lab A (Fridge 1, Shelf 2)",
		LocationName([]*model.Storage{labA, fridge}, shelf))
}

func TestFullAbbreviation(t *testing.T) {
	labA := node("Lab A", abbr("LA"))
	fridge := node("Fridge 1", abbr("F1"))
	shelf := node("Shelf 2", nil)

	assert.Equal(t, "LA", FullAbbreviation(nil, labA))
	assert.Equal(t, "LAF1", FullAbbreviation([]*model.Storage{labA}, fridge))

	// Absent abbreviations contribute nothing, not a placeholder.
	assert.Equal(t, "LAF1", FullAbbreviation([]*model.Storage{labA, fridge}, shelf))
	assert.Equal(t, "", FullAbbreviation(nil, shelf))
}

func TestDisplayName(t *testing.T) {
	fridge := node("Fridge 1", abbr("F1"))
	shelf := node("Shelf 2", nil)

	assert.Equal(t, "Fridge 1 (shared)", DisplayName(fridge, 2, true))
	assert.Equal(t, "  Fridge 1 (F1)", DisplayName(fridge, 2, false))
	assert.Equal(t, "    Shelf 2", DisplayName(shelf, 3, false))
	assert.Equal(t, "Fridge 1 (F1)", DisplayName(fridge, 1, false))
}
