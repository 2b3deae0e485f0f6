package model

import "sync"

// GridToPool returns a grid to the pool for reuse
func GridToPool(grid *Grid, pool *GridPool) {
	if pool == nil || grid == nil {
		return
	}

	pool.Put(grid)
}

// GridPool recycles grids between generations when snapshots are not retained
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() any {
				return &Grid{}
			},
		},
	}
}

// Get retrieves an empty grid with the given shape
func (p *GridPool) Get(rows, cols int, topology Topology) *Grid {
	g := p.pool.Get().(*Grid)
	g.reset(rows, cols, topology)
	return g
}

// Put hands a grid back; the caller must not use it afterwards
func (p *GridPool) Put(g *Grid) {
	p.pool.Put(g)
}
