package localstore

import (
	"strconv"
	"sync"
	"time"
)

// IDGenerator genera IDs a partir de la marca de tiempo en milisegundos,
// estrictamente crecientes aunque dos llamadas caigan en el mismo milisegundo.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDGenerator construye el generador. now nil usa time.Now.
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Next devuelve el siguiente ID.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}
