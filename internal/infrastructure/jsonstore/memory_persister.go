package jsonstore

import (
	"context"
	"sync"

	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.DocumentPersister = (*MemoryPersister)(nil)

// MemoryPersister guarda el documento serializado en memoria. Lo usan los tests y el modo
// efímero; FailSave permite simular un disco que rechaza escrituras.
type MemoryPersister struct {
	mu       sync.Mutex
	data     []byte
	saves    int
	FailSave error
}

// NewMemoryPersister crea un persister vacío o con un documento inicial.
func NewMemoryPersister(initial []byte) *MemoryPersister {
	return &MemoryPersister{data: initial}
}

func (p *MemoryPersister) Load(_ context.Context) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.data == nil {
		return nil, nil
	}
	return append([]byte(nil), p.data...), nil
}

func (p *MemoryPersister) Save(_ context.Context, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailSave != nil {
		return p.FailSave
	}
	p.data = append([]byte(nil), data...)
	p.saves++
	return nil
}

// Bytes último documento guardado.
func (p *MemoryPersister) Bytes() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.data...)
}

// Saves cantidad de escrituras exitosas.
func (p *MemoryPersister) Saves() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves
}
