package canvas

// MaxContentLen bounds the free-form text of a Component.
const MaxContentLen = 500

// Position is a pixel-space location. It is always derived from a GridPosition.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Position) Add(delta Position) Position {
	return Position{X: p.X + delta.X, Y: p.Y + delta.Y}
}

// GridPosition is a location in discrete grid units.
type GridPosition struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Component is an item placed into the region of the Cell matching its Type.
type Component struct {
	ID           string       `json:"id" validate:"required"`
	Type         string       `json:"type" validate:"required,celltype"`
	Content      string       `json:"content" validate:"max=500"`
	Position     Position     `json:"position"`
	GridPosition GridPosition `json:"gridPosition"`
}

// BusinessModel is the canvas aggregate. Version counts mutations, it is not a concurrency token.
type BusinessModel struct {
	Components  []Component `json:"components"`
	Suggestions []string    `json:"suggestions"`
	IsDirty     bool        `json:"isDirty"`
	Version     int         `json:"version"`
}

func emptyModel() BusinessModel {
	return BusinessModel{
		Components:  []Component{},
		Suggestions: []string{},
	}
}

func (bm BusinessModel) clone() BusinessModel {
	c := bm
	c.Components = append(make([]Component, 0, len(bm.Components)), bm.Components...)
	c.Suggestions = append(make([]string, 0, len(bm.Suggestions)), bm.Suggestions...)
	return c
}

func (bm BusinessModel) indexOf(id string) int {
	for i, comp := range bm.Components {
		if comp.ID == id {
			return i
		}
	}
	return -1
}
