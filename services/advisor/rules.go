package advisorsvc

import (
	"context"
	"fmt"
	"strings"

	"github.com/Speakceo/speakceo-education-platform-sub002/core/canvas"
)

// DefaultLimit caps the number of suggestions returned by RuleAdvisor.
const DefaultLimit = 5

// RuleAdvisor suggests what to work on next from the state of the canvas alone.
// Empty cells come first, in catalog order, then components without content.
type RuleAdvisor struct {
	Limit int
}

var _ canvas.Advisor = (*RuleAdvisor)(nil)

func NewRuleAdvisor() *RuleAdvisor {
	return &RuleAdvisor{Limit: DefaultLimit}
}

func (a *RuleAdvisor) Suggest(ctx context.Context, components []canvas.Component) ([]string, error) {
	filled := make(map[string]bool, len(components))
	var blank []canvas.Component
	for _, comp := range components {
		if strings.TrimSpace(comp.Content) == "" {
			blank = append(blank, comp)
		} else {
			filled[comp.Type] = true
		}
	}

	suggestions := []string{}
	add := func(s string) bool {
		suggestions = append(suggestions, s)
		return a.Limit > 0 && len(suggestions) >= a.Limit
	}

	for _, cell := range canvas.Cells() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if filled[cell.Type] || hasType(blank, cell.Type) {
			continue
		}
		if add(fmt.Sprintf("%s: %s", cell.Label, cell.Description)) {
			return suggestions, nil
		}
	}
	for _, comp := range blank {
		cell, _ := canvas.CellByType(comp.Type)
		if add(fmt.Sprintf("Describe the component you added to %s.", cell.Label)) {
			break
		}
	}
	return suggestions, nil
}

func hasType(comps []canvas.Component, cellType string) bool {
	for _, comp := range comps {
		if comp.Type == cellType {
			return true
		}
	}
	return false
}
