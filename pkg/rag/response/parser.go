package response

import (
	"fmt"
	"regexp"
	"strings"

	json "github.com/goccy/go-json"

	"kuliner-chatbot-be/internal/constant"
	"kuliner-chatbot-be/internal/dto"
	"kuliner-chatbot-be/internal/pkg/logger"
)

const moduleName = "ResponseParser"

var numberedLine = regexp.MustCompile(`(?m)^\d+\.\s*[^.\n]+`)

type Parser struct {
	logger logger.ILogger
}

func NewParser(log logger.ILogger) *Parser {
	return &Parser{logger: log}
}

// Parse splits model output into the prose summary and its cards. Any
// problem with the card block yields the summary and no cards.
func (p *Parser) Parse(fullText string) (string, []dto.Card) {
	idx := strings.Index(fullText, constant.CardsDelimiter)
	if idx == -1 {
		p.logger.Warn(moduleName, "No cards block found in response", nil)
		return strings.TrimSpace(fullText), []dto.Card{}
	}

	summary := strings.TrimSpace(fullText[:idx])
	payload := fullText[idx+len(constant.CardsDelimiter):]

	var raw []map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		p.logger.Error(moduleName, "Cards block is not a JSON array of objects", map[string]interface{}{
			"error": err.Error(),
		})
		return summary, []dto.Card{}
	}

	limit := CountListedItems(summary)
	if limit == 0 || limit > len(raw) {
		limit = len(raw)
	}

	cards := make([]dto.Card, 0, limit)
	for i, obj := range raw[:limit] {
		card, err := mapCard(obj)
		if err != nil {
			p.logger.Error(moduleName, "Card mapping failed", map[string]interface{}{
				"index": i,
				"error": err.Error(),
			})
			return summary, []dto.Card{}
		}
		cards = append(cards, card)
	}

	p.logger.Info(moduleName, "Parsed response", map[string]interface{}{
		"summary_length": len(summary),
		"cards":          len(cards),
		"card_objects":   len(raw),
	})
	return summary, cards
}

// CountListedItems counts numbered lines like "1. Soto Banjar".
func CountListedItems(summary string) int {
	return len(numberedLine.FindAllString(summary, -1))
}

func mapCard(obj map[string]interface{}) (dto.Card, error) {
	var (
		card dto.Card
		err  error
	)
	if obj == nil {
		return card, fmt.Errorf("card is null")
	}

	if card.NamaTempat, err = stringField(obj, "nama_tempat", constant.UnknownValue, false); err != nil {
		return card, err
	}
	if card.InstagramLink, err = stringField(obj, "instagram_url", "", true); err != nil {
		return card, err
	}
	if card.MapsLink, err = stringField(obj, "link_lokasi", "", true); err != nil {
		return card, err
	}
	if card.Harga, err = stringField(obj, "range_harga", constant.PriceNotAvailable, false); err != nil {
		return card, err
	}
	if card.Lokasi, err = stringField(obj, "lokasi", constant.UnknownValue, false); err != nil {
		return card, err
	}
	if card.JamOperasional, err = stringField(obj, "jam_operasional", constant.UnknownValue, false); err != nil {
		return card, err
	}
	if card.Kategori, err = stringField(obj, "kategori", constant.UnknownValue, false); err != nil {
		return card, err
	}

	summary, err := stringField(obj, "ringkasan", "", false)
	if err != nil {
		return card, err
	}
	card.Deskripsi = ellipsize(summary, constant.CardSummaryMaxRunes)

	menu, err := listField(obj, "menu_andalan")
	if err != nil {
		return card, err
	}
	card.MenuAndalan = strings.Join(menu, ", ")

	tags, err := listField(obj, "tags")
	if err != nil {
		return card, err
	}
	for i, tag := range tags {
		tags[i] = strings.ReplaceAll(tag, "_", " ")
	}
	card.CocokUntuk = strings.Join(tags, ", ")

	return card, nil
}

// stringField reads key as a string. Absent keys take fallback; null is
// accepted only where nullable is set.
func stringField(obj map[string]interface{}, key, fallback string, nullable bool) (string, error) {
	v, ok := obj[key]
	if !ok {
		return fallback, nil
	}
	if v == nil {
		if nullable {
			return "", nil
		}
		return "", fmt.Errorf("field %q is null", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q: expected string, got %T", key, v)
	}
	return s, nil
}

func listField(obj map[string]interface{}, key string) ([]string, error) {
	v, ok := obj[key]
	if !ok {
		return nil, nil
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("field %q: expected list, got %T", key, v)
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("field %q[%d]: expected string, got %T", key, i, item)
		}
		out[i] = s
	}
	return out, nil
}

func ellipsize(s string, max int) string {
	runes := []rune(s + "...")
	if len(runes) > max {
		runes = runes[:max]
	}
	return string(runes)
}
