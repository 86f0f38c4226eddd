package canvas

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// RepairReport counts what Rehydrate had to fix.
type RepairReport struct {
	Dropped int `json:"dropped"` // malformed records removed
	Snapped int `json:"snapped"` // records moved back to their cell origin
}

func (r RepairReport) IsClean() bool { return r.Dropped == 0 && r.Snapped == 0 }

type (
	storedModel struct {
		Components  []json.RawMessage `json:"components"`
		Suggestions []string          `json:"suggestions"`
		Version     int               `json:"version"`
	}

	// pointers tell absent fields apart from zero values
	storedComponent struct {
		ID           *string       `json:"id"`
		Type         *string       `json:"type"`
		Content      string        `json:"content"`
		Position     *Position     `json:"position"`
		GridPosition *GridPosition `json:"gridPosition"`
	}
)

// Rehydrate rebuilds a BusinessModel from a persisted document.
// Records missing id, type, position or gridPosition (or whose type has no cell) are dropped,
// as are later records repeating an id,
// then records whose grid position is invalid for their cell are snapped to the cell origin.
// IsDirty is always false on the result. An undecodable document yields an empty model and an error.
func Rehydrate(data []byte) (BusinessModel, RepairReport, error) {
	model := emptyModel()
	var report RepairReport
	if len(data) == 0 {
		return model, report, nil
	}

	var doc storedModel
	if err := json.Unmarshal(data, &doc); err != nil {
		return model, report, errors.Wrap(err, "decoding business model")
	}
	if doc.Suggestions != nil {
		model.Suggestions = doc.Suggestions
	}
	if doc.Version > 0 {
		model.Version = doc.Version
	}

	seen := make(map[string]bool, len(doc.Components))
	for _, raw := range doc.Components {
		comp, cell, ok := decodeComponent(raw)
		if !ok || seen[comp.ID] {
			report.Dropped++
			continue
		}
		seen[comp.ID] = true
		if !IsValidGridPosition(comp.GridPosition, cell) {
			comp.GridPosition = cell.Origin()
			report.Snapped++
		}
		comp.Position = GridToPixel(comp.GridPosition)
		model.Components = append(model.Components, comp)
	}
	return model, report, nil
}

func decodeComponent(raw json.RawMessage) (Component, Cell, bool) {
	var sc storedComponent
	if err := json.Unmarshal(raw, &sc); err != nil {
		return Component{}, Cell{}, false
	}
	if sc.ID == nil || *sc.ID == "" || sc.Type == nil || *sc.Type == "" || sc.Position == nil || sc.GridPosition == nil {
		return Component{}, Cell{}, false
	}
	cell, ok := CellByType(*sc.Type)
	if !ok {
		return Component{}, Cell{}, false
	}
	return Component{
		ID:           *sc.ID,
		Type:         *sc.Type,
		Content:      sc.Content,
		Position:     *sc.Position,
		GridPosition: *sc.GridPosition,
	}, cell, true
}
