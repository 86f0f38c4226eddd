package progress

import (
	"math"
	"strings"
)

// DefaultBrandName is the placeholder name a brand identity starts with.
const DefaultBrandName = "Your Brand"

// Status of a tool.
type Status string

const (
	StatusLocked     Status = "locked"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Tool names as reported.
const (
	ToolBusinessModel = "businessModel"
	ToolBranding      = "branding"
	ToolFinancial     = "financial"
	ToolPitch         = "pitch"
	ToolMarketing     = "marketing"
)

type (
	Financial struct {
		Revenues int `json:"revenues"`
		Expenses int `json:"expenses"`
	}

	Pitch struct {
		Content string `json:"content"`
	}

	Brand struct {
		Name    string `json:"name"`
		Tagline string `json:"tagline"`
		LogoURL string `json:"logoUrl"`
	}

	// Snapshot is the read-only input of Aggregate.
	Snapshot struct {
		ComponentCount int       `json:"componentCount"`
		Financial      Financial `json:"financial"`
		Pitch          Pitch     `json:"pitch"`
		Brand          Brand     `json:"brand"`
	}

	ToolProgress struct {
		Progress int    `json:"progress"`
		Status   Status `json:"status"`
	}

	Report struct {
		Tools   map[string]ToolProgress `json:"tools"`
		Overall int                     `json:"overall"`
	}
)

// Aggregate reduces a snapshot of the tools' states into a progress report.
// Marketing has no state of its own and is always locked; it does not count towards Overall.
func Aggregate(s Snapshot) Report {
	scores := map[string]int{
		ToolBusinessModel: capped(s.ComponentCount * 10),
		ToolBranding:      brandingProgress(s.Brand),
		ToolFinancial:     capped((s.Financial.Revenues + s.Financial.Expenses) * 10),
		ToolPitch:         pitchProgress(s.Pitch),
	}

	r := Report{Tools: make(map[string]ToolProgress, len(scores)+1)}
	var sum int
	for tool, p := range scores {
		r.Tools[tool] = ToolProgress{Progress: p, Status: StatusOf(p)}
		sum += p
	}
	r.Tools[ToolMarketing] = ToolProgress{Progress: 0, Status: StatusLocked}
	r.Overall = int(math.Round(float64(sum) / float64(len(scores))))
	return r
}

// StatusOf maps a percentage to a Status.
func StatusOf(p int) Status {
	switch {
	case p >= 100:
		return StatusCompleted
	case p > 0:
		return StatusInProgress
	default:
		return StatusLocked
	}
}

func brandingProgress(b Brand) int {
	if b.LogoURL != "" {
		return 100
	}
	if name := strings.TrimSpace(b.Name); name != "" && name != DefaultBrandName {
		return 50
	}
	return 0
}

func pitchProgress(p Pitch) int {
	if p.Content != "" {
		return 50
	}
	return 0
}

func capped(p int) int {
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}
