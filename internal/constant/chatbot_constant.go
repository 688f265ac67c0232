package constant

const (
	// CardsDelimiter separates the model prose from the JSON card block.
	CardsDelimiter = "###CARDS###\n"

	// ContextTruncatedSuffix marks context text cut down to the configured limit.
	ContextTruncatedSuffix = "\n[Konteks dipotong untuk efisiensi]"

	NoGroundingApology = "Maaf ya, belum ada info untuk kriteria ini di database kami. 😊 " +
		"Tapi coba deh warung makan lokal di Samarinda, biasanya banyak pilihan enak! " +
		"Mau coba cari jenis makanan lain atau detail spesifik, misal di kota tertentu?"

	UnknownValue        = "Unknown"
	PriceNotAvailable   = "Informasi tidak tersedia"
	NoSummaryAvailable  = "No summary available"
	CardSummaryMaxRunes = 300

	// Placeholders are substituted by generation.PromptRenderer.
	RecommendationPromptV1 = `
Hai! Kami super excited bisa bantu kamu cari tempat makan enak berdasarkan ulasan food reviewer di Instagram. 😊
Sekarang jam {current_time} WITA, jadi kami prioritaskan rekomendasi yang cocok untuk {time_category}, seperti makan siang atau nongkrong sore.

Gunakan konteks ini untuk jawab query. Mulai dengan pembukaan ramah, sebutkan waktu saat ini, lalu list rekomendasi (sampai {num_recs} kalau ada, atau kurang kalau data terbatas). Beri narasi singkat per item (2-3 kalimat) tentang keunikan tempat, menu, dan kenapa cocok dengan query atau waktu sekarang (e.g., 'Cocok untuk makan siang karena...').

Kalau data relevan kurang dari {num_recs}, beri klarifikasi sopan sekali di awal seperti: "Wah, untuk kriteria ini kami cuma punya {len_specific_docs} tempat di Samarinda, tapi ini yang terbaik! Kami tambah rekomendasi lain ya." Lalu lanjut rekomendasi + tambahan jika perlu (cari dari DB tanpa filter ketat).

Kalau nggak ada data sama sekali: "Maaf ya, belum ada info untuk itu di database kami. Tapi coba ini rekomendasi umum yang mungkin kamu suka: [1-2 alternatif]."

Akhiri dengan: "Gimana, ada yang menarik? Kalau mau detail lebih atau ubah kriteria, bilang aja ya! 😄"

Konteks: {context}

{chat_history}

Query: {question}
`
)

// Meal categories double as catalog tag values.
const (
	MealBreakfast = "sarapan"
	MealLunch     = "makan_siang"
	MealSnack     = "nongkrong"
	MealDinner    = "makan_malam"
)

// MealKeyword pairs a category with the query words that select it.
type MealKeyword struct {
	Category string
	Keywords []string
}

// MealKeywords is checked in order; the first category with a hit wins.
var MealKeywords = []MealKeyword{
	{Category: MealBreakfast, Keywords: []string{"sarapan", "pagi", "breakfast"}},
	{Category: MealLunch, Keywords: []string{"siang", "makan siang", "lunch"}},
	{Category: MealSnack, Keywords: []string{"sore", "nongkrong", "cemilan", "snack"}},
	{Category: MealDinner, Keywords: []string{"malam", "makan malam", "dinner"}},
}

var NumberWords = map[string]int{
	"satu":     1,
	"dua":      2,
	"tiga":     3,
	"empat":    4,
	"lima":     5,
	"enam":     6,
	"tujuh":    7,
	"delapan":  8,
	"sembilan": 9,
	"sepuluh":  10,
}

const (
	DefaultRecommendationCount = 3
	MinRecommendationCount     = 1
	MaxRecommendationCount     = 10
)
