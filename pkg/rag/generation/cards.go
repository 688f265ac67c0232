package generation

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"kuliner-chatbot-be/internal/constant"
	"kuliner-chatbot-be/pkg/store"
)

// CardPayload is the wire form of one venue inside the card block.
type CardPayload struct {
	NamaTempat     string   `json:"nama_tempat"`
	JamOperasional string   `json:"jam_operasional"`
	MenuAndalan    []string `json:"menu_andalan"`
	Lokasi         string   `json:"lokasi"`
	RangeHarga     string   `json:"range_harga"`
	Kategori       string   `json:"kategori"`
	Tags           []string `json:"tags"`
	Ringkasan      string   `json:"ringkasan"`
	InstagramURL   string   `json:"instagram_url"`
	LinkLokasi     string   `json:"link_lokasi"`
}

func NewCardPayload(doc store.Document) CardPayload {
	instagram := doc.MetaString("url", "")
	if instagram == "" {
		instagram = doc.MetaString("inputUrl", "")
	}

	return CardPayload{
		NamaTempat: titleCase(doc.MetaString("nama_tempat", constant.UnknownValue)),
		JamOperasional: doc.MetaString("jam_buka", constant.UnknownValue) + " - " +
			doc.MetaString("jam_tutup", constant.UnknownValue),
		MenuAndalan:  doc.MetaList("menu_andalan"),
		Lokasi:       doc.MetaString("lokasi", constant.UnknownValue),
		RangeHarga:   doc.MetaString("range_harga", constant.UnknownValue),
		Kategori:     doc.MetaString("kategori_makanan", "") + " - " + doc.MetaString("tipe_tempat", ""),
		Tags:         doc.MetaList("tags"),
		Ringkasan:    Ellipsize(doc.MetaString("ringkasan", ""), constant.CardSummaryMaxRunes),
		InstagramURL: instagram,
		LinkLokasi:   doc.MetaString("link_lokasi", ""),
	}
}

// EncodeCards renders the card array without HTML escaping so names like
// "Bakso & Mie" stay readable.
func EncodeCards(docs []store.Document) (string, error) {
	payload := make([]CardPayload, len(docs))
	for i, d := range docs {
		payload[i] = NewCardPayload(d)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// Ellipsize appends "..." and cuts the result to max runes.
func Ellipsize(s string, max int) string {
	runes := []rune(s + "...")
	if len(runes) > max {
		runes = runes[:max]
	}
	return string(runes)
}

// titleCase capitalizes every run of letters on its own, so anything that is
// not a letter starts a new word: "bakso2go" -> "Bakso2Go", "mie's" -> "Mie'S".
func titleCase(s string) string {
	caser := cases.Title(language.Indonesian)
	var sb strings.Builder
	sb.Grow(len(s))

	start := -1
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
		} else {
			if start >= 0 {
				sb.WriteString(caser.String(s[start:i]))
				start = -1
			}
			sb.WriteString(s[i : i+size])
		}
		i += size
	}
	if start >= 0 {
		sb.WriteString(caser.String(s[start:]))
	}
	return sb.String()
}
