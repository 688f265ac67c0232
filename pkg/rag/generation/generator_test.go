package generation

import (
	"context"
	"errors"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kuliner-chatbot-be/internal/constant"
	"kuliner-chatbot-be/internal/pkg/logger"
	"kuliner-chatbot-be/pkg/llm"
	"kuliner-chatbot-be/pkg/rag/intent"
	"kuliner-chatbot-be/pkg/rag/state"
	"kuliner-chatbot-be/pkg/store"
)

type fakeLLM struct {
	reply    string
	err      error
	calls    int
	messages []llm.Message
}

func (f *fakeLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	f.calls++
	f.messages = history
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func newGenerator(f *fakeLLM) *Generator {
	nop := logger.NewNopLogger()
	return NewGenerator(f, NewPromptRenderer(), nop, nop)
}

func sampleDoc() store.Document {
	return store.Document{
		ID:      "1",
		Content: "Nama Tempat: bakso pak kumis",
		Metadata: map[string]interface{}{
			"nama_tempat":      "bakso pak kumis",
			"jam_buka":         "10:00",
			"jam_tutup":        "22:00",
			"menu_andalan":     []interface{}{"bakso urat", "mie ayam"},
			"lokasi":           "Jl. Pahlawan",
			"kategori_makanan": "bakso",
			"tipe_tempat":      "warung",
			"tags":             []interface{}{"keluarga", "makan_siang"},
			"ringkasan":        "Bakso & mie legendaris",
			"inputUrl":         "https://instagram.com/p/abc",
			"link_lokasi":      "https://maps.app/xyz",
		},
	}
}

func TestGenerate_ZeroGroundingSkipsModel(t *testing.T) {
	f := &fakeLLM{reply: "should not be used"}
	g := newGenerator(f)

	out, err := g.Generate(context.Background(), &state.PipelineState{Query: "sushi"})
	require.NoError(t, err)

	assert.Equal(t, constant.NoGroundingApology, out)
	assert.Equal(t, 0, f.calls)
}

func TestGenerate_AppendsCardBlock(t *testing.T) {
	f := &fakeLLM{reply: "Halo!\n1. Bakso Pak Kumis"}
	g := newGenerator(f)

	st := &state.PipelineState{
		Query:       "bakso enak",
		CurrentTime: "12:30",
		Intent:      intent.QueryIntent{Count: 3, MealCategory: constant.MealLunch, City: "Samarinda"},
		ContextText: "Nama Tempat: bakso pak kumis",
		Documents:   []store.Document{sampleDoc()},
	}

	out, err := g.Generate(context.Background(), st)
	require.NoError(t, err)
	require.Equal(t, 1, f.calls)

	prose, block, found := strings.Cut(out, "\n\n"+constant.CardsDelimiter)
	require.True(t, found)
	assert.Equal(t, "Halo!\n1. Bakso Pak Kumis", prose)
	assert.Contains(t, block, "Bakso & mie legendaris...")

	var cards []CardPayload
	require.NoError(t, json.Unmarshal([]byte(block), &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, CardPayload{
		NamaTempat:     "Bakso Pak Kumis",
		JamOperasional: "10:00 - 22:00",
		MenuAndalan:    []string{"bakso urat", "mie ayam"},
		Lokasi:         "Jl. Pahlawan",
		RangeHarga:     "Unknown",
		Kategori:       "bakso - warung",
		Tags:           []string{"keluarga", "makan_siang"},
		Ringkasan:      "Bakso & mie legendaris...",
		InstagramURL:   "https://instagram.com/p/abc",
		LinkLokasi:     "https://maps.app/xyz",
	}, cards[0])

	require.Len(t, f.messages, 2)
	assert.Equal(t, llm.RoleSystem, f.messages[0].Role)
	assert.Contains(t, f.messages[0].Content, "Sekarang jam 12:30 WITA")
	assert.Contains(t, f.messages[0].Content, "cocok untuk makan_siang")
	assert.Contains(t, f.messages[0].Content, "sampai 3 kalau ada")
	assert.Contains(t, f.messages[0].Content, "cuma punya 1 tempat")
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "bakso enak"}, f.messages[1])
}

func TestGenerate_ModelErrorPropagates(t *testing.T) {
	boom := errors.New("503")
	g := newGenerator(&fakeLLM{err: boom})

	_, err := g.Generate(context.Background(), &state.PipelineState{Documents: []store.Document{sampleDoc()}})
	assert.ErrorIs(t, err, boom)
}

func TestNewCardPayload_Defaults(t *testing.T) {
	card := NewCardPayload(store.Document{})

	assert.Equal(t, "Unknown", card.NamaTempat)
	assert.Equal(t, "Unknown - Unknown", card.JamOperasional)
	assert.Equal(t, " - ", card.Kategori)
	assert.Equal(t, "...", card.Ringkasan)
	assert.Equal(t, []string{}, card.MenuAndalan)
	assert.Equal(t, "", card.InstagramURL)
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "bakso pak kumis", want: "Bakso Pak Kumis"},
		{in: "bakso2go", want: "Bakso2Go"},
		{in: "mie's corner", want: "Mie'S Corner"},
		{in: "KEDAI-kopi", want: "Kedai-Kopi"},
		{in: "warung  nasi (samarinda)", want: "Warung  Nasi (Samarinda)"},
		{in: "123", want: "123"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, titleCase(tt.in))
		})
	}
}

func TestEllipsize(t *testing.T) {
	assert.Equal(t, "abc...", Ellipsize("abc", 300))
	long := strings.Repeat("x", 400)
	assert.Len(t, Ellipsize(long, 300), 300)
	assert.Equal(t, "ab", Ellipsize("abcdef", 2))
}

func TestRenderHistory_KeepsCardBlock(t *testing.T) {
	reply := "1. Bakso A\n\n" + constant.CardsDelimiter + "[{\"nama_tempat\":\"Bakso A\"}]"
	history := []store.Message{
		{Role: store.RoleHuman, Content: "cari bakso"},
		{Role: store.RoleAssistant, Content: reply},
	}

	out := renderHistory(history)
	assert.Equal(t, "Riwayat percakapan:\nHuman: cari bakso\nAssistant: "+reply, out)
	assert.Contains(t, out, constant.CardsDelimiter+"[{\"nama_tempat\":\"Bakso A\"}]")
	assert.Equal(t, "", renderHistory(nil))
}

func TestPromptRenderer_HistoryCarriesPreviousCards(t *testing.T) {
	st := &state.PipelineState{
		Query: "yang lain dong",
		History: []store.Message{
			{Role: store.RoleHuman, Content: "cari bakso"},
			{Role: store.RoleAssistant, Content: "1. Bakso A\n\n" + constant.CardsDelimiter + "[{\"nama_tempat\":\"Bakso A\"}]"},
		},
	}

	out := NewPromptRenderer().Render(st)
	assert.Contains(t, out, "Assistant: 1. Bakso A\n\n"+constant.CardsDelimiter)
	assert.Contains(t, out, "\"nama_tempat\":\"Bakso A\"")
}
