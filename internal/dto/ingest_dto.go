package dto

// PublishEmbedVenueBatchMessage carries a slice of catalog rows to the embedding consumer.
type PublishEmbedVenueBatchMessage struct {
	BatchIndex int                 `json:"batch_index"`
	Source     string              `json:"source"`
	Rows       []map[string]string `json:"rows"`
}
