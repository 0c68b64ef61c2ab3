// AngelaMos | 2026
// definition.go

package wizard

type Kind string

const (
	KindProvider   Kind = "provider"
	KindType       Kind = "type"
	KindPolicy     Kind = "policy"
	KindDetails    Kind = "details"
	KindReview     Kind = "review"
	KindPersonal   Kind = "personal"
	KindExperience Kind = "experience"
	KindBank       Kind = "bank"
)

type Step struct {
	Kind     Kind
	Title    string
	Required []string
	Optional []string
	// Complete overrides the default rule that every required field is
	// filled.
	Complete func(Fields) bool
}

func (s Step) IsComplete(f Fields) bool {
	if s.Complete != nil {
		return s.Complete(f)
	}
	for _, name := range s.Required {
		if !f.Has(name) {
			return false
		}
	}
	return true
}

// Definition describes one wizard. Dependents maps a field to the fields
// that become meaningless when it changes. Fields not declared by a step
// can only be written by Validate.
type Definition struct {
	Name       string
	Steps      []Step
	Dependents map[string][]string
	// Validate checks a new non-empty value against the current fields and
	// returns derived values to store with it.
	Validate func(field, value string, current Fields) (map[string]string, error)
}

// FieldOrder lists every settable field in declaration order.
func (d *Definition) FieldOrder() []string {
	var out []string
	for _, s := range d.Steps {
		out = append(out, s.Required...)
		out = append(out, s.Optional...)
	}
	return out
}

func (d *Definition) declares(field string) bool {
	for _, s := range d.Steps {
		for _, name := range s.Required {
			if name == field {
				return true
			}
		}
		for _, name := range s.Optional {
			if name == field {
				return true
			}
		}
	}
	return false
}

// dependentsOf returns every field transitively downstream of field.
func (d *Definition) dependentsOf(field string) []string {
	var out []string
	seen := map[string]bool{field: true}
	queue := []string{field}

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		for _, dep := range d.Dependents[next] {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			out = append(out, dep)
			queue = append(queue, dep)
		}
	}

	return out
}
