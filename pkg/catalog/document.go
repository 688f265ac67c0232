package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const transcriptMaxRunes = 500

// PageContent is the text embedded for a venue.
func PageContent(r Row) string {
	transcript := r.Get("transcript")
	if utf8.RuneCountInString(transcript) > transcriptMaxRunes {
		transcript = string([]rune(transcript)[:transcriptMaxRunes])
	}

	content := fmt.Sprintf(
		"Nama Tempat: %s Ringkasan: %s Menu Andalan: %s Kategori: %s, %s Cocok untuk: %s Deskripsi Tambahan: %s",
		r.Get("nama_tempat"),
		r.Get("ringkasan"),
		r.GetOr("menu_andalan", "[]"),
		r.Get("kategori_makanan"),
		r.Get("tipe_tempat"),
		r.GetOr("tags", "[]"),
		transcript,
	)
	return strings.Join(strings.Fields(content), " ")
}

// Metadata keeps every column; list columns become []interface{} so they
// round-trip through JSON the same way they come back from the store.
func Metadata(r Row) map[string]interface{} {
	meta := make(map[string]interface{}, len(r))
	for col := range r {
		if ListColumns[col] {
			items := SafeList(r.Get(col))
			list := make([]interface{}, len(items))
			for i, it := range items {
				list[i] = it
			}
			meta[col] = list
			continue
		}
		meta[col] = r.Get(col)
	}
	return meta
}

// SourceKey identifies a venue across ingestion runs.
func SourceKey(r Row) string {
	if u := r.Get("url"); u != "" {
		return u
	}
	if u := r.Get("inputUrl"); u != "" {
		return u
	}
	return strings.ToLower(r.Get("nama_tempat") + "|" + r.Get("lokasi"))
}
