package canvas

// Cell types
const (
	KeyPartners           = "key_partners"
	KeyActivities         = "key_activities"
	KeyResources          = "key_resources"
	ValuePropositions     = "value_propositions"
	CustomerRelationships = "customer_relationships"
	Channels              = "channels"
	CustomerSegments      = "customer_segments"
	CostStructure         = "cost_structure"
	RevenueStreams        = "revenue_streams"
)

// Cell is a named region of the grid owning one component type.
// X/Y are the column/row origin; Width/Height are spans in grid units.
type Cell struct {
	X           int    `json:"x" yaml:"x"`
	Y           int    `json:"y" yaml:"y"`
	Width       int    `json:"width" yaml:"width"`
	Height      int    `json:"height" yaml:"height"`
	Type        string `json:"type" yaml:"type"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
}

// Origin is the default grid position of components added to c.
func (c Cell) Origin() GridPosition {
	return GridPosition{Row: c.Y, Col: c.X}
}

// Contains reports whether gp lies within the rectangle of c.
func (c Cell) Contains(gp GridPosition) bool {
	return gp.Row >= c.Y && gp.Row < c.Y+c.Height &&
		gp.Col >= c.X && gp.Col < c.X+c.Width
}

// catalog tiles the Rows x Cols grid exactly.
var catalog = []Cell{
	{X: 0, Y: 0, Width: 1, Height: 2, Type: KeyPartners, Label: "Key Partners",
		Description: "Who are your key partners and suppliers?"},
	{X: 1, Y: 0, Width: 1, Height: 1, Type: KeyActivities, Label: "Key Activities",
		Description: "What key activities does your value proposition require?"},
	{X: 1, Y: 1, Width: 1, Height: 1, Type: KeyResources, Label: "Key Resources",
		Description: "What key resources does your value proposition require?"},
	{X: 2, Y: 0, Width: 2, Height: 2, Type: ValuePropositions, Label: "Value Propositions",
		Description: "What value do you deliver to the customer?"},
	{X: 4, Y: 0, Width: 1, Height: 1, Type: CustomerRelationships, Label: "Customer Relationships",
		Description: "What relationship does each customer segment expect?"},
	{X: 4, Y: 1, Width: 1, Height: 1, Type: Channels, Label: "Channels",
		Description: "Through which channels do your customers want to be reached?"},
	{X: 5, Y: 0, Width: 1, Height: 2, Type: CustomerSegments, Label: "Customer Segments",
		Description: "For whom are you creating value?"},
	{X: 0, Y: 2, Width: 3, Height: 1, Type: CostStructure, Label: "Cost Structure",
		Description: "What are the most important costs inherent in your business model?"},
	{X: 3, Y: 2, Width: 3, Height: 1, Type: RevenueStreams, Label: "Revenue Streams",
		Description: "For what value are your customers really willing to pay?"},
}

// Cells returns the catalog in display order.
func Cells() []Cell {
	return append(make([]Cell, 0, len(catalog)), catalog...)
}

func CellByType(cellType string) (Cell, bool) {
	for _, c := range catalog {
		if c.Type == cellType {
			return c, true
		}
	}
	return Cell{}, false
}
