package dto

type GetPostsRequest struct {
	Page  int `query:"page" validate:"min=1"`
	Limit int `query:"limit" validate:"min=1,max=100"`
}

type Post struct {
	NamaTempat      string   `json:"nama_tempat"`
	Lokasi          string   `json:"lokasi"`
	KategoriMakanan string   `json:"kategori_makanan"`
	TipeTempat      string   `json:"tipe_tempat"`
	RangeHarga      string   `json:"range_harga"`
	MenuAndalan     []string `json:"menu_andalan"`
	Fasilitas       []string `json:"fasilitas"`
	JamBuka         string   `json:"jam_buka"`
	JamTutup        string   `json:"jam_tutup"`
	HariOperasional []string `json:"hari_operasional"`
	Ringkasan       string   `json:"ringkasan"`
	Tags            []string `json:"tags"`
	Url             string   `json:"url"`
	DisplayUrl      string   `json:"displayUrl"`
}

type GetPostsResponse struct {
	Posts      []Post `json:"posts"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}
