package footnotes

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// NewMemoryRepository constructs an in-memory footnote repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:   make(map[uuid.UUID]*Footnote),
		byUUID: make(map[markerKey]uuid.UUID),
	}
}

type markerKey struct {
	page   uuid.UUID
	marker string
}

func keyOf(footnote *Footnote) markerKey {
	return markerKey{page: footnote.PageID, marker: footnote.UUID}
}

type memoryRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Footnote
	byUUID map[markerKey]uuid.UUID
	order  []uuid.UUID
}

func (m *memoryRepository) Create(_ context.Context, footnote *Footnote) (*Footnote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byUUID[keyOf(footnote)]; exists {
		return nil, ErrDuplicateFootnote
	}

	cloned := cloneFootnote(footnote)
	if _, exists := m.byID[cloned.ID]; !exists {
		m.order = append(m.order, cloned.ID)
	}
	m.byID[cloned.ID] = cloned
	m.byUUID[keyOf(cloned)] = cloned.ID

	return cloneFootnote(cloned), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Footnote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "footnote", Key: id.String()}
	}
	return cloneFootnote(record), nil
}

func (m *memoryRepository) GetByUUID(_ context.Context, pageID uuid.UUID, markerID string) (*Footnote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byUUID[markerKey{page: pageID, marker: strings.TrimSpace(markerID)}]
	if !ok {
		return nil, &NotFoundError{Resource: "footnote", Key: markerID}
	}
	return cloneFootnote(m.byID[id]), nil
}

func (m *memoryRepository) ListByPage(_ context.Context, pageID uuid.UUID) ([]*Footnote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Footnote
	for _, id := range m.order {
		record := m.byID[id]
		if record.PageID == pageID {
			out = append(out, cloneFootnote(record))
		}
	}
	return out, nil
}

func (m *memoryRepository) Update(_ context.Context, footnote *Footnote) (*Footnote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[footnote.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "footnote", Key: footnote.ID.String()}
	}
	if owner, taken := m.byUUID[keyOf(footnote)]; taken && owner != footnote.ID {
		return nil, ErrDuplicateFootnote
	}

	delete(m.byUUID, keyOf(existing))
	cloned := cloneFootnote(footnote)
	m.byID[cloned.ID] = cloned
	m.byUUID[keyOf(cloned)] = cloned.ID
	return cloneFootnote(cloned), nil
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Resource: "footnote", Key: id.String()}
	}
	delete(m.byID, id)
	delete(m.byUUID, keyOf(record))
	m.order = slices.DeleteFunc(m.order, func(candidate uuid.UUID) bool { return candidate == id })
	return nil
}

func cloneFootnote(src *Footnote) *Footnote {
	if src == nil {
		return nil
	}
	cloned := *src
	return &cloned
}
