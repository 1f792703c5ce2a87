package efficiency

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrDuplicateEmployee = errors.New("employee already registered")

// Ranking is one line of the efficiency ranking.
type Ranking struct {
	Name       string
	Efficiency float64
}

// Registry collects the employees of one session in registration order.
type Registry struct {
	employees  []*Employee
	efficiency map[string]float64
	keys       map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		efficiency: make(map[string]float64),
		keys:       make(map[string]struct{}),
	}
}

// Register appends emp. Names are compared case-insensitively, matching how
// spreadsheet sheet names collide.
func (r *Registry) Register(emp *Employee) error {
	if emp == nil {
		return fmt.Errorf("register employee: nil employee")
	}
	key := strings.ToLower(emp.Name())
	if _, exists := r.keys[key]; exists {
		return fmt.Errorf("register %s: %w", emp.Name(), ErrDuplicateEmployee)
	}

	r.keys[key] = struct{}{}
	r.employees = append(r.employees, emp)
	r.efficiency[emp.Name()] = emp.OverallEfficiency()
	return nil
}

// Has reports whether a name would collide with a registered employee.
func (r *Registry) Has(name string) bool {
	_, exists := r.keys[strings.ToLower(NormalizeName(name))]
	return exists
}

func (r *Registry) Len() int {
	return len(r.employees)
}

// All returns the employees in registration order.
func (r *Registry) All() []*Employee {
	out := make([]*Employee, len(r.employees))
	copy(out, r.employees)
	return out
}

// Rank orders employees by overall efficiency, highest first. Equal
// efficiencies are ordered by name.
func (r *Registry) Rank() []Ranking {
	rankings := make([]Ranking, 0, len(r.efficiency))
	for name, value := range r.efficiency {
		rankings = append(rankings, Ranking{Name: name, Efficiency: value})
	}
	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].Efficiency != rankings[j].Efficiency {
			return rankings[i].Efficiency > rankings[j].Efficiency
		}
		return rankings[i].Name < rankings[j].Name
	})
	return rankings
}
