package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseListLiteral(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{"single quotes", "['nasi kuning', 'es teh']", []string{"nasi kuning", "es teh"}, false},
		{"double quotes", `["sarapan","keluarga"]`, []string{"sarapan", "keluarga"}, false},
		{"mixed and escaped", `['Pak\'s', "a \"b\""]`, []string{"Pak's", `a "b"`}, false},
		{"empty list", "[]", []string{}, false},
		{"blank input", "   ", []string{}, false},
		{"trailing comma", "['a',]", []string{"a"}, false},
		{"surrounding space", "  [ 'a' ]  ", []string{"a"}, false},
		{"unicode", "['soto ayam 🍜']", []string{"soto ayam 🍜"}, false},
		{"number item", "['a', 1]", nil, true},
		{"code", "__import__('os')", nil, true},
		{"unterminated", "['a", nil, true},
		{"missing bracket", "'a', 'b'", nil, true},
		{"trailing garbage", "['a'] + ['b']", nil, true},
		{"missing comma", "['a' 'b']", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseListLiteral(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSafeList(t *testing.T) {
	assert.Equal(t, []string{}, SafeList("not a list"))
	assert.Equal(t, []string{"a"}, SafeList("['a']"))
}
