// Implements the Warehouse, which holds packages waiting for the next transport,
// one LIFO section per destination direction.

package sim

import (
	"fmt"
	"strings"
)

// Section is a LIFO stack of packages waiting to leave towards one neighbour.
// It holds references only; packages are owned by the Simulator.
type Section struct {
	stack []*Package
}

// Push places a package on top of the section.
func (s *Section) Push(p *Package) {
	if p == nil {
		panic("Section.Push: package must not be nil")
	}
	s.stack = append(s.stack, p)
}

// Pop removes the top package. Returns nil if the section is empty.
func (s *Section) Pop() *Package {
	if len(s.stack) == 0 {
		return nil
	}
	top := s.stack[len(s.stack)-1]
	s.stack[len(s.stack)-1] = nil
	s.stack = s.stack[:len(s.stack)-1]
	return top
}

// Drain empties the section, returning its packages in pop order (top first).
func (s *Section) Drain() []*Package {
	drained := make([]*Package, 0, len(s.stack))
	for p := s.Pop(); p != nil; p = s.Pop() {
		drained = append(drained, p)
	}
	return drained
}

// Len returns the number of packages in the section.
func (s *Section) Len() int {
	return len(s.stack)
}

// IsEmpty reports whether the section holds no packages.
func (s *Section) IsEmpty() bool {
	return len(s.stack) == 0
}

// Items returns the section contents bottom to top.
// The returned slice is the section's internal storage and MUST NOT be modified.
func (s *Section) Items() []*Package {
	return s.stack
}

func (s *Section) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range s.stack {
		fmt.Fprintf(&sb, "%d", p.ID)
		if i < len(s.stack)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Warehouse is one node of the network.
type Warehouse struct {
	ID       int
	sections []Section // indexed by destination warehouse id
}

// NewWarehouse creates a warehouse with one section per warehouse in the network.
func NewWarehouse(id, networkSize int) *Warehouse {
	return &Warehouse{ID: id, sections: make([]Section, networkSize)}
}

// Section returns the holding area for packages heading to destination.
func (w *Warehouse) Section(destination int) (*Section, error) {
	if destination < 0 || destination >= len(w.sections) {
		return nil, fmt.Errorf("warehouse %d section %d: %w", w.ID, destination, ErrInvalidWarehouse)
	}
	return &w.sections[destination], nil
}

// Store puts p into the section for its next hop and returns that section's id.
func (w *Warehouse) Store(p *Package) (int, error) {
	next := p.NextHop()
	section, err := w.Section(next)
	if err != nil {
		return -1, fmt.Errorf("storing package %d: %w", p.ID, err)
	}
	section.Push(p)
	return next, nil
}

// Stored returns the number of packages held across all sections.
func (w *Warehouse) Stored() int {
	total := 0
	for i := range w.sections {
		total += w.sections[i].Len()
	}
	return total
}
