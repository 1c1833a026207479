package school

import "github.com/trezcool/masomo/core/person"

type (
	// Manager keeps people by ID. It is not safe for concurrent use.
	Manager[P person.Person] struct {
		records map[string]P
		order   []string // IDs in insertion order
	}

	StudentManager = Manager[*person.Student]
	TeacherManager = Manager[*person.Teacher]
)

func NewManager[P person.Person]() *Manager[P] {
	return &Manager[P]{records: make(map[string]P)}
}

func NewStudentManager() *StudentManager { return NewManager[*person.Student]() }
func NewTeacherManager() *TeacherManager { return NewManager[*person.Teacher]() }

// Add stores p unless its ID is already taken; existing records are never replaced.
func (m *Manager[P]) Add(p P) bool {
	id := p.ID()
	if _, ok := m.records[id]; ok {
		return false
	}
	m.records[id] = p
	m.order = append(m.order, id)
	return true
}

func (m *Manager[P]) Get(id string) (P, bool) {
	p, ok := m.records[id]
	return p, ok
}

// ListAll returns a new slice of every record, in insertion order.
func (m *Manager[P]) ListAll() []P {
	all := make([]P, 0, len(m.order))
	for _, id := range m.order {
		all = append(all, m.records[id])
	}
	return all
}

func (m *Manager[P]) Count() int {
	return len(m.records)
}
