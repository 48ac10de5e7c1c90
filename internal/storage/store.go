package storage

import (
	"sync"

	"github.com/example/helper-matching/internal/models"
)

// AssignmentStore defines persistence for service requests and the
// assignments created when a customer selects a ranked helper.
type AssignmentStore interface {
	SaveRequest(r *models.ServiceRequest) error
	SaveAssignment(a *models.Assignment) error
	UpdateAssignment(a *models.Assignment) error
}

type MemoryStore struct {
	mu          sync.RWMutex
	requests    map[string]*models.ServiceRequest
	assignments map[string]*models.Assignment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		requests:    make(map[string]*models.ServiceRequest),
		assignments: make(map[string]*models.Assignment),
	}
}

func (m *MemoryStore) SaveRequest(r *models.ServiceRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[r.ID] = r
	return nil
}

func (m *MemoryStore) SaveAssignment(a *models.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignments[a.ID] = a
	return nil
}

func (m *MemoryStore) UpdateAssignment(a *models.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignments[a.ID] = a
	return nil
}

func (m *MemoryStore) GetAssignment(id string) (*models.Assignment, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.assignments[id]
	return a, ok
}
