package store

// Document is a venue record returned by the vector store.
// Content is the embedded page text; Metadata carries the catalog columns.
type Document struct {
	ID       string                 `json:"id"`
	Content  string                 `json:"content"`
	Score    float32                `json:"score"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Message is one turn of a conversation. Messages are append-only.
type Message struct {
	Role    string `json:"role"` // "human" | "assistant"
	Content string `json:"content"`
}

const (
	RoleHuman     = "human"
	RoleAssistant = "assistant"
)

// MetaString reads a string attribute, returning fallback when absent or blank.
func (d Document) MetaString(key, fallback string) string {
	v, ok := d.Metadata[key]
	if !ok || v == nil {
		return fallback
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return fallback
	}
	return s
}

// MetaList reads a list attribute. Non-string items are skipped.
func (d Document) MetaList(key string) []string {
	raw, ok := d.Metadata[key]
	if !ok || raw == nil {
		return []string{}
	}
	switch v := raw.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}
