package sim

import (
	"encoding/json"
	"fmt"
)

// IndexPool is a set of indices in [0, n) supporting O(1) membership,
// removal and uniform random extraction.
type IndexPool struct {
	items []int
	pos   []int
}

func NewIndexPool(n int) *IndexPool {
	p := &IndexPool{items: make([]int, n), pos: make([]int, n)}
	for i := 0; i < n; i++ {
		p.items[i] = i
		p.pos[i] = i
	}
	return p
}

func (p *IndexPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.items)
}

func (p *IndexPool) Contains(idx int) bool {
	return p != nil && idx >= 0 && idx < len(p.pos) && p.pos[idx] >= 0
}

func (p *IndexPool) Remove(idx int) bool {
	if !p.Contains(idx) {
		return false
	}
	p.removeAt(p.pos[idx])
	return true
}

// PopRandom removes and returns a uniformly chosen member.
func (p *IndexPool) PopRandom(r Rand) (int, bool) {
	if p.Len() == 0 {
		return 0, false
	}
	at := r.IntN(len(p.items))
	idx := p.items[at]
	p.removeAt(at)
	return idx, true
}

func (p *IndexPool) removeAt(at int) {
	last := len(p.items) - 1
	idx := p.items[at]
	moved := p.items[last]
	p.items[at] = moved
	p.pos[moved] = at
	p.items = p.items[:last]
	p.pos[idx] = -1
}

func (p *IndexPool) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	return json.Marshal(p.items)
}

// UnmarshalJSON sizes the pool to the largest member seen. Members must fall
// inside a dot grid; callers that know the universe size should prefer
// rebuilding via NewIndexPool.
func (p *IndexPool) UnmarshalJSON(data []byte) error {
	var items []int
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	size := 0
	for _, idx := range items {
		if idx < 0 || idx >= TotalDots {
			return fmt.Errorf("pool index %d out of range [0,%d)", idx, TotalDots)
		}
		if idx+1 > size {
			size = idx + 1
		}
	}
	p.items = make([]int, 0, len(items))
	p.pos = make([]int, size)
	for i := range p.pos {
		p.pos[i] = -1
	}
	for _, idx := range items {
		if p.pos[idx] >= 0 {
			continue
		}
		p.pos[idx] = len(p.items)
		p.items = append(p.items, idx)
	}
	return nil
}
