// AngelaMos | 2026
// dto.go

package wizard

import (
	"time"
)

type UpdateRequest struct {
	Fields Patch `json:"fields"`
}

type StepView struct {
	Index    int      `json:"index"`
	Kind     Kind     `json:"kind"`
	Title    string   `json:"title"`
	Required []string `json:"required"`
	Optional []string `json:"optional"`
	Complete bool     `json:"complete"`
}

type View struct {
	ID         string        `json:"id"`
	Wizard     string        `json:"wizard"`
	Step       StepView      `json:"step"`
	TotalSteps int           `json:"total_steps"`
	CanAdvance bool          `json:"can_advance"`
	IsLast     bool          `json:"is_last"`
	Fields     Fields        `json:"fields"`
	Submitted  bool          `json:"submitted"`
	RecordID   string        `json:"record_id,omitempty"`
	Options    *QuoteOptions `json:"options,omitempty"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func newView(c *Controller, opts *QuoteOptions) *View {
	state := c.State()
	step := c.Current()

	return &View{
		ID:     state.ID,
		Wizard: state.Wizard,
		Step: StepView{
			Index:    state.Step,
			Kind:     step.Kind,
			Title:    step.Title,
			Required: nonNil(step.Required),
			Optional: nonNil(step.Optional),
			Complete: step.IsComplete(state.Fields),
		},
		TotalSteps: len(c.def.Steps),
		CanAdvance: c.CanAdvance() && !c.IsLast(),
		IsLast:     c.IsLast(),
		Fields:     state.Fields,
		Submitted:  state.Submitted,
		RecordID:   state.RecordID,
		Options:    opts,
		UpdatedAt:  state.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
