// AngelaMos | 2026
// controller.go

package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownWizard = errors.New("unknown wizard")
	ErrUnknownField  = errors.New("unknown field")
	ErrInvalidValue  = errors.New("invalid value")
	ErrSubmitted     = errors.New("wizard already submitted")
	ErrNotTerminal   = errors.New("wizard is not on its final step")
	ErrIncomplete    = errors.New("wizard has incomplete steps")
	ErrSubmitFailed  = errors.New("submission failed, please try again")
)

type State struct {
	ID        string    `json:"id"`
	Wizard    string    `json:"wizard"`
	Step      int       `json:"step"`
	Fields    Fields    `json:"fields"`
	Submitted bool      `json:"submitted"`
	RecordID  string    `json:"record_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Submitter stores the final record and returns its id.
type Submitter func(ctx context.Context, fields Fields) (string, error)

// Controller drives one wizard instance through its steps.
type Controller struct {
	def   *Definition
	state *State
}

func NewController(def *Definition, state *State) *Controller {
	if state.Fields == nil {
		state.Fields = Fields{}
	}
	if state.Step < 0 {
		state.Step = 0
	}
	if last := len(def.Steps) - 1; state.Step > last {
		state.Step = last
	}
	return &Controller{def: def, state: state}
}

func (c *Controller) State() *State {
	return c.state
}

func (c *Controller) Current() Step {
	return c.def.Steps[c.state.Step]
}

func (c *Controller) IsLast() bool {
	return c.state.Step == len(c.def.Steps)-1
}

func (c *Controller) CanAdvance() bool {
	return c.Current().IsComplete(c.state.Fields)
}

// Advance moves to the next step when the current one is complete and
// reports whether the step changed.
func (c *Controller) Advance() bool {
	if !c.CanAdvance() || c.IsLast() {
		return false
	}
	c.state.Step++
	return true
}

func (c *Controller) Retreat() {
	if c.state.Step > 0 {
		c.state.Step--
	}
}

// Set stores value for field. An empty value clears it. Changing a value
// clears every field downstream of it.
func (c *Controller) Set(field, value string) error {
	if c.state.Submitted {
		return ErrSubmitted
	}
	if !c.def.declares(field) {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	value = strings.TrimSpace(value)
	if c.state.Fields[field] == value {
		return nil
	}

	var derived map[string]string
	if value != "" && c.def.Validate != nil {
		var err error
		derived, err = c.def.Validate(field, value, c.state.Fields)
		if err != nil {
			return err
		}
	}

	for _, dep := range c.def.dependentsOf(field) {
		delete(c.state.Fields, dep)
	}

	if value == "" {
		delete(c.state.Fields, field)
	} else {
		c.state.Fields[field] = value
	}

	for k, v := range derived {
		c.state.Fields[k] = v
	}

	return nil
}

// Apply sets the patch fields in declaration order so upstream values
// land before the fields that depend on them.
func (c *Controller) Apply(p Patch) error {
	for name := range p {
		if !c.def.declares(name) {
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
	}

	for _, name := range c.def.FieldOrder() {
		v, ok := p[name]
		if !ok {
			continue
		}
		value := ""
		if v != nil {
			value = *v
		}
		if err := c.Set(name, value); err != nil {
			return err
		}
	}

	return nil
}

// Submit hands the collected fields to submit. Fields are left untouched
// on failure so the caller can retry.
func (c *Controller) Submit(ctx context.Context, submit Submitter) error {
	if c.state.Submitted {
		return ErrSubmitted
	}
	if !c.IsLast() {
		return ErrNotTerminal
	}

	for i, s := range c.def.Steps {
		if !s.IsComplete(c.state.Fields) {
			return fmt.Errorf("%w: step %d (%s)", ErrIncomplete, i+1, s.Title)
		}
	}

	id, err := submit(ctx, c.state.Fields.Clone())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	c.state.Submitted = true
	c.state.RecordID = id
	return nil
}
