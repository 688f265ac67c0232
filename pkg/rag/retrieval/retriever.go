package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kuliner-chatbot-be/internal/constant"
	"kuliner-chatbot-be/internal/metrics"
	"kuliner-chatbot-be/internal/pkg/logger"
	"kuliner-chatbot-be/pkg/rag/intent"
	"kuliner-chatbot-be/pkg/store"
)

const moduleName = "Retrieval"

// ErrVectorStoreUnavailable is returned when every executed tier failed.
var ErrVectorStoreUnavailable = errors.New("vector store unavailable")

// Metadata keys used in filters.
const (
	MetaCity = "kota"
	MetaTags = "tags"
)

// Condition matches Key exactly against Value, or against any of Any when set.
type Condition struct {
	Key   string
	Value string
	Any   []string
}

type Filter struct {
	Must []Condition
}

// VectorStore returns up to k nearest documents for query, most similar first.
// A nil filter means no filtering.
type VectorStore interface {
	SimilaritySearch(ctx context.Context, query string, k int, filter *Filter) ([]store.Document, error)
}

type TierResult struct {
	Tier      int
	Name      string
	Documents []store.Document
	Err       error
}

type Result struct {
	ContextText string
	Documents   []store.Document
	Tiers       []TierResult
}

type tier struct {
	name   string
	k      func(count int) int
	filter func(in intent.QueryIntent) *Filter
}

var tiers = []tier{
	{
		name: "city_category",
		k:    func(count int) int { return 2 * count },
		filter: func(in intent.QueryIntent) *Filter {
			return &Filter{Must: []Condition{
				{Key: MetaCity, Value: in.City},
				{Key: MetaTags, Any: []string{in.MealCategory}},
			}}
		},
	},
	{
		name: "city",
		k:    func(count int) int { return 2 * count },
		filter: func(in intent.QueryIntent) *Filter {
			return &Filter{Must: []Condition{{Key: MetaCity, Value: in.City}}}
		},
	},
	{
		name:   "unfiltered",
		k:      func(count int) int { return count },
		filter: func(intent.QueryIntent) *Filter { return nil },
	},
}

type Retriever struct {
	store        VectorStore
	logger       logger.ILogger
	contextLimit int
}

// NewRetriever builds the tiered retriever. contextLimit <= 0 disables truncation.
func NewRetriever(vs VectorStore, log logger.ILogger, contextLimit int) *Retriever {
	return &Retriever{
		store:        vs,
		logger:       log,
		contextLimit: contextLimit,
	}
}

// Retrieve runs the tiers in order until in.Count documents are collected.
func (r *Retriever) Retrieve(ctx context.Context, in intent.QueryIntent, query string) (*Result, error) {
	result := &Result{}
	seen := make(map[string]struct{})
	failed := 0

	for i, t := range tiers {
		if len(result.Documents) >= in.Count {
			break
		}
		tierNo := i + 1
		label := fmt.Sprintf("%d", tierNo)

		docs, err := r.store.SimilaritySearch(ctx, query, t.k(in.Count), t.filter(in))
		tr := TierResult{Tier: tierNo, Name: t.name, Err: err}
		if err != nil {
			failed++
			metrics.RagRetrievalTiers.WithLabelValues(label, metrics.OutcomeError).Inc()
			r.logger.Warn(moduleName, "Tier failed, falling back", map[string]interface{}{
				"tier":  t.name,
				"city":  in.City,
				"error": err.Error(),
			})
			result.Tiers = append(result.Tiers, tr)
			continue
		}

		added := 0
		for _, d := range docs {
			if len(result.Documents) >= in.Count {
				break
			}
			key := dedupKey(d)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			result.Documents = append(result.Documents, d)
			tr.Documents = append(tr.Documents, d)
			added++
		}

		outcome := metrics.OutcomeSuccess
		if added == 0 {
			outcome = metrics.OutcomeEmpty
		}
		metrics.RagRetrievalTiers.WithLabelValues(label, outcome).Inc()
		r.logger.Debug(moduleName, "Tier completed", map[string]interface{}{
			"tier":     t.name,
			"returned": len(docs),
			"added":    added,
			"total":    len(result.Documents),
		})
		result.Tiers = append(result.Tiers, tr)
	}

	if failed > 0 && failed == len(result.Tiers) {
		return nil, fmt.Errorf("all %d retrieval tiers failed: %w", failed, ErrVectorStoreUnavailable)
	}

	result.ContextText = r.buildContext(result.Documents)
	return result, nil
}

func dedupKey(d store.Document) string {
	if d.ID != "" {
		return d.ID
	}
	return "content:" + d.Content
}

func (r *Retriever) buildContext(docs []store.Document) string {
	parts := make([]string, len(docs))
	for i, d := range docs {
		parts[i] = d.Content
	}
	text := strings.Join(parts, "\n\n")
	return TruncateContext(text, r.contextLimit)
}

// TruncateContext cuts text to limit runes and marks the cut.
func TruncateContext(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + constant.ContextTruncatedSuffix
}
