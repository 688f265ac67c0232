package dto

type ChatRequest struct {
	Query     string `json:"query" validate:"required"`
	SessionId string `json:"session_id,omitempty"`
}

type ChatResponse struct {
	Answer    string `json:"answer"`
	Cards     []Card `json:"cards"`
	SessionId string `json:"session_id"`
}

// Card is one recommended venue as shown to clients.
type Card struct {
	NamaTempat     string `json:"nama_tempat"`
	InstagramLink  string `json:"instagram_link"`
	MapsLink       string `json:"maps_link"`
	Harga          string `json:"harga"`
	Lokasi         string `json:"lokasi"`
	JamOperasional string `json:"jam_operasional"`
	Deskripsi      string `json:"deskripsi"`
	MenuAndalan    string `json:"menu_andalan"`
	Kategori       string `json:"kategori"`
	CocokUntuk     string `json:"cocok_untuk"`
}
