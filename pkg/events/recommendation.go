package events

import "time"

const (
	TypeRecommendationServed = "RECOMMENDATION_SERVED"
	TypeCatalogIngested      = "CATALOG_INGESTED"
)

// RecommendationServed reports one answered chat turn. The raw query is
// left out; intent fields are enough for popularity analytics.
func RecommendationServed(sessionID, city, mealCategory string, requested, found, cards int) Event {
	return BaseEvent{
		Type: TypeRecommendationServed,
		Data: map[string]interface{}{
			"session_id":    sessionID,
			"city":          city,
			"meal_category": mealCategory,
			"requested":     requested,
			"found":         found,
			"cards":         cards,
		},
		OccurredAt: time.Now(),
	}
}

func CatalogIngested(source string, rows, stored, failed int) Event {
	return BaseEvent{
		Type: TypeCatalogIngested,
		Data: map[string]interface{}{
			"source": source,
			"rows":   rows,
			"stored": stored,
			"failed": failed,
		},
		OccurredAt: time.Now(),
	}
}
