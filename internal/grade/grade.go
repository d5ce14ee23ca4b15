package grade

import "fmt"

// Grade is one of the five fixed standards that partition chapters and notes.
type Grade string

const (
	Std8  Grade = "Std8"
	Std9  Grade = "Std9"
	Std10 Grade = "Std10"
	Std11 Grade = "Std11"
	Std12 Grade = "Std12"
)

var all = []Grade{Std8, Std9, Std10, Std11, Std12}

// All returns the grades in ascending order.
func All() []Grade {
	out := make([]Grade, len(all))
	copy(out, all)
	return out
}

// Parse validates a standard supplied by a client.
func Parse(s string) (Grade, error) {
	g := Grade(s)
	for _, known := range all {
		if g == known {
			return g, nil
		}
	}
	return "", fmt.Errorf("invalid standard %q", s)
}

func (g Grade) String() string {
	return string(g)
}
