package mapper

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kuliner-chatbot-be/internal/entity"
)

func TestVenueEmbeddingMapper_ModelRoundTrip(t *testing.T) {
	m := NewVenueEmbeddingMapper()
	id := uuid.New()

	in := &entity.VenueEmbedding{
		Id:             id,
		SourceKey:      "https://instagram.com/p/1",
		Document:       "Nama Tempat: Soto",
		EmbeddingValue: []float32{0.1, 0.2},
		Metadata: map[string]interface{}{
			"kota": "Samarinda",
			"tags": []interface{}{"sarapan", "keluarga"},
		},
	}

	mdl, err := m.ToModel(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kota":"Samarinda","tags":["sarapan","keluarga"]}`, string(mdl.Metadata))

	out := m.ToEntity(mdl)
	assert.Equal(t, in.Metadata, out.Metadata)
	assert.Equal(t, in.EmbeddingValue, out.EmbeddingValue)
	assert.Nil(t, out.UpdatedAt)

	doc := m.ToDocument(out, 0.75)
	assert.Equal(t, id.String(), doc.ID)
	assert.Equal(t, "Samarinda", doc.MetaString("kota", ""))
	assert.Equal(t, []string{"sarapan", "keluarga"}, doc.MetaList("tags"))
	assert.InDelta(t, 0.75, doc.Score, 1e-6)
}

func TestVenueEmbeddingMapper_BadMetadata(t *testing.T) {
	m := NewVenueEmbeddingMapper()
	mdl, err := m.ToModel(&entity.VenueEmbedding{Metadata: map[string]interface{}{}})
	require.NoError(t, err)
	mdl.Metadata = []byte("not json")

	out := m.ToEntity(mdl)
	assert.NotNil(t, out.Metadata)
}
