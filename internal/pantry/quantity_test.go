package pantry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{"integer with unit", "2 lbs", 2, true},
		{"decimal", "10.5 oz", 10.5, true},
		{"bare number", "12", 12, true},
		{"sign is ignored", "-3", 3, true},
		{"number after text", "about 4 cups", 4, true},
		{"first number wins", "2 x 400g cans", 2, true},
		{"trailing point is not a decimal", "3. eggs", 3, true},
		{"fraction reads numerator", "1/2 cup", 1, true},
		{"no digits", "a pinch of salt", 0, false},
		{"empty", "", 0, false},
		{"unicode only", "½ cup", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseQuantity(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "3", FormatQuantity(3))
	assert.Equal(t, "0", FormatQuantity(0))
	assert.Equal(t, "2.5", FormatQuantity(2.5))
	assert.Equal(t, "0.5", FormatQuantity(2-1.5))
}

func TestReplaceQuantity(t *testing.T) {
	assert.Equal(t, "3 lbs", replaceQuantity("5 lbs", 3))
	assert.Equal(t, "approx. 0.5 kg (bag 2)", replaceQuantity("approx. 1.5 kg (bag 2)", 0.5))
	assert.Equal(t, "one bag", replaceQuantity("one bag", 4))
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("Onion", "3 Green Onions"))
	assert.True(t, Matches("onion", "Green Onion Garnish"))
	assert.True(t, Matches("Olive Oil", "2 tbsp olive oil"))
	assert.False(t, Matches("Milk", "2 eggs"))
	assert.False(t, Matches("Tomatoes", "1 tomato"))
}
