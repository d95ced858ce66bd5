package usecase

import (
	"testing"

	"tastepost-core/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(names ...string) []entity.MenuItem {
	items := make([]entity.MenuItem, len(names))
	for i, n := range names {
		items[i] = entity.MenuItem{Name: n, Mentions: 1, Sentiment: entity.SentimentPositive, Score: float64(100 - i)}
	}
	return items
}

func TestFilterMenuItems_DropsGenericNames(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kept bool
	}{
		{name: "generic lowercase", in: "food", kept: false},
		{name: "generic uppercase", in: "FOOD", kept: false},
		{name: "generic mixed case", in: "Food", kept: false},
		{name: "generic dish", in: "dish", kept: false},
		{name: "generic order", in: "Order", kept: false},
		{name: "real dish", in: "Funghi Pizza", kept: true},
		{name: "real single-word dish", in: "Tiramisu", kept: true},
		{name: "too short", in: "ok", kept: false},
		{name: "vague adjective", in: "great", kept: false},
		{name: "adjective inside a multi-word name survives", in: "Great Wall Noodles", kept: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FilterMenuItems(named(tt.in))
			if tt.kept {
				require.Len(t, out, 1)
				assert.Equal(t, tt.in, out[0].Name)
			} else {
				assert.Empty(t, out)
			}
		})
	}
}

func TestFilterMenuItems_PreservesOrder(t *testing.T) {
	in := named("Funghi Pizza", "food", "Pad Thai", "great", "Beef Rendang")

	out := FilterMenuItems(in)

	require.Len(t, out, 3)
	assert.Equal(t, "Funghi Pizza", out[0].Name)
	assert.Equal(t, "Pad Thai", out[1].Name)
	assert.Equal(t, "Beef Rendang", out[2].Name)
	// Scores untouched, no re-sort.
	assert.Greater(t, out[0].Score, out[1].Score)
	assert.Greater(t, out[1].Score, out[2].Score)
}

func TestFilterMenuItems_EmptyInput(t *testing.T) {
	assert.Empty(t, FilterMenuItems(nil))
}
