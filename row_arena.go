package ebustl

import "sync"

// poolOfRows is used to ease access to the row arena pool from any
// place of the code.
var poolOfRows = &rowArenaPool{
	sp: sync.Pool{
		New: func() interface{} {
			return &rowArena{rows: make(map[int]DisplayRow, 24)}
		},
	},
}

// rowArena is a reusable page-row buffer, keyed by row number.
type rowArena struct {
	rows map[int]DisplayRow
}

// rowArenaPool is a pool of rowArenas reused across SubtitlePages to
// avoid reallocating a fresh map for every page a magazine opens.
// Don't use it anywhere else to avoid pool pollution.
type rowArenaPool struct {
	sp sync.Pool
}

// get returns a rowArena with an empty row map, ready for a new page.
func (p *rowArenaPool) get() *rowArena {
	a, _ := p.sp.Get().(*rowArena)
	for k := range a.rows {
		delete(a.rows, k)
	}
	return a
}

// put returns a rowArena to the pool. Don't use the arena after a call
// to put — its map may be handed out to an unrelated page next.
func (p *rowArenaPool) put(a *rowArena) {
	p.sp.Put(a)
}
