package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kuliner-chatbot-be/internal/constant"
)

func TestExtractCount(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"numeral", "kasih 5 tempat makan", 5},
		{"number word", "rekomendasi tujuh cafe", 7},
		{"above range", "mau 25 tempat", 10},
		{"zero", "0 tempat", 1},
		{"overflow", "99999999999999999999999 tempat", 10},
		{"absent", "tempat makan enak", 3},
		{"leftmost wins", "dua atau 8 tempat", 2},
		{"word inside other word", "duapuluh rekomendasi", 3},
		{"upper case word", "SEPULUH tempat", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCount(tt.query))
		})
	}
}

func TestMealCategoryForTime(t *testing.T) {
	tests := []struct {
		time string
		want string
	}{
		{"00:00", constant.MealBreakfast},
		{"09:59", constant.MealBreakfast},
		{"10:00", constant.MealLunch},
		{"14:59", constant.MealLunch},
		{"15:00", constant.MealSnack},
		{"17:59", constant.MealSnack},
		{"18:00", constant.MealDinner},
		{"23:59", constant.MealDinner},
		{"garbage", constant.MealLunch},
		{"", constant.MealLunch},
	}

	for _, tt := range tests {
		t.Run(tt.time, func(t *testing.T) {
			assert.Equal(t, tt.want, MealCategoryForTime(tt.time))
		})
	}
}

func TestExtractMealCategory_KeywordOverridesTime(t *testing.T) {
	assert.Equal(t, constant.MealDinner, ExtractMealCategory("makan malam di mana?", "08:00"))
	assert.Equal(t, constant.MealBreakfast, ExtractMealCategory("Sarapan enak", "20:00"))
	assert.Equal(t, constant.MealSnack, ExtractMealCategory("tempat nongkrong", "07:00"))
	assert.Equal(t, constant.MealLunch, ExtractMealCategory("lunch spot", "21:00"))
}

func TestExtractMealCategory_OrderBreakfastFirst(t *testing.T) {
	// "pagi" and "malam" both hit; breakfast is checked first.
	assert.Equal(t, constant.MealBreakfast, ExtractMealCategory("pagi sampai malam", "12:00"))
}

func TestExtractor_Extract(t *testing.T) {
	e := NewExtractor([]string{"samarinda", "Jakarta"}, "Samarinda")

	got := e.Extract("Cari 4 tempat makan malam di JAKARTA", "09:00")
	assert.Equal(t, QueryIntent{Count: 4, MealCategory: constant.MealDinner, City: "Jakarta"}, got)

	got = e.Extract("tempat makan enak", "16:30")
	assert.Equal(t, QueryIntent{Count: 3, MealCategory: constant.MealSnack, City: "Samarinda"}, got)
}
