package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"concursos/internal/domain"
)

// jsonEnvelope is the top-level JSON export document.
type jsonEnvelope struct {
	TotalPositions int                     `json:"total_cargos"`
	TotalCities    int                     `json:"total_cidades"`
	GeneratedAt    time.Time               `json:"data_extracao"`
	Positions      []domain.PositionRecord `json:"cargos"`
}

// WriteJSON renders records as an indented JSON document with summary
// counts in the envelope.
func WriteJSON(w io.Writer, records []domain.PositionRecord) error {
	cities := make(map[string]bool)
	for _, rec := range records {
		if rec.City != "" {
			cities[rec.City] = true
		}
	}

	if records == nil {
		records = []domain.PositionRecord{}
	}
	env := jsonEnvelope{
		TotalPositions: len(records),
		TotalCities:    len(cities),
		GeneratedAt:    time.Now().UTC(),
		Positions:      records,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("json export: %w", err)
	}
	return nil
}
