package field

import "container/heap"

// Settle sweeps the falling grid and moves every supported element, with
// its bound partner, into the settled grid. lowest is the bottom-most row
// any falling element can occupy; the sweep starts there and climbs, and
// within a row runs right to left, so an element settling in row R+1
// supports row R within the same sweep.
//
// Returns the positions settled this sweep in settlement order, plus the
// recomputed bottom-most falling row (valid only when more is true).
func Settle(fg *FallingGrid, sg *SettledGrid, lowest Row) (settled []Position, next Row, more bool) {
	for ri := range NewSpan(Row(0), lowest).Desc() {
		for ci := range NewSpan(Col(0), RightmostCol).Desc() {
			p := At(ri, ci)
			el, ok := fg.Get(p)
			if !ok {
				continue
			}
			if !restsOn(sg, p) {
				continue
			}
			fg.Take(p)
			sg.Set(p, CapsuleTile(el))
			settled = append(settled, p)
			if d, bound := el.PartnerDir(); bound {
				pp, ok := p.Step(d)
				if !ok {
					panic("field: bound partner direction leaves the grid")
				}
				pel, ok := fg.Take(pp)
				if !ok {
					panic("field: bound partner missing from falling grid")
				}
				sg.Set(pp, CapsuleTile(pel))
				settled = append(settled, pp)
			}
		}
	}

	for ri := range NewSpan(Row(0), lowest).Desc() {
		for ci := range NewSpan(Col(0), RightmostCol).Desc() {
			if fg.Occupied(At(ri, ci)) {
				return settled, ri, true
			}
		}
	}
	return settled, 0, false
}

// restsOn reports whether p sits on the floor or on a settled tile.
func restsOn(sg *SettledGrid, p Position) bool {
	below, ok := p.Step(DirBelow)
	if !ok {
		return true
	}
	return sg.Occupied(below)
}

// Elimination is the outcome of one Eliminate pass: the tiles removed, in
// removal order, and the surviving capsule halves whose partner was
// removed and whose binding was therefore dropped.
type Elimination struct {
	Cleared []Position
	Exposed []Position
}

// Eliminate detects and removes same-colour runs through the positions
// that just settled. Every hint is probed with DetectRun; distinct runs
// are collected first and all of their tiles removed afterwards, so
// overlapping runs clear together. A removed capsule half whose partner
// survives leaves that partner unbound and reported as exposed.
func Eliminate(sg *SettledGrid, justSettled []Position) Elimination {
	var runs []Run
	seen := make(map[Run]bool)
	for _, p := range justSettled {
		run, ok := DetectRun(sg, p)
		if !ok || seen[run] {
			continue
		}
		seen[run] = true
		runs = append(runs, run)
	}

	doomed := make(map[Position]bool)
	var cleared []Position
	for _, run := range runs {
		for _, p := range run.Positions() {
			if !doomed[p] {
				doomed[p] = true
				cleared = append(cleared, p)
			}
		}
	}

	var exposed []Position
	reported := make(map[Position]bool)
	for _, p := range cleared {
		t := sg.Take(p)
		el, ok := t.Element()
		if !ok {
			continue
		}
		d, bound := el.PartnerDir()
		if !bound {
			continue
		}
		pp, ok := p.Step(d)
		if !ok {
			panic("field: bound partner direction leaves the grid")
		}
		if doomed[pp] {
			continue
		}
		pel, ok := sg.Get(pp).Element()
		if !ok {
			panic("field: settled element bound to a non-capsule tile")
		}
		pel.HasPartner = false
		sg.Set(pp, CapsuleTile(pel))
		if !reported[pp] {
			reported[pp] = true
			exposed = append(exposed, pp)
		}
	}

	return Elimination{Cleared: cleared, Exposed: exposed}
}

// posQueue is a worklist of settled positions ordered bottom-most row
// first, rightmost column breaking ties. Processing supports before the
// cells that rest on them keeps one Unsettle pass sufficient.
type posQueue struct {
	items  []Position
	queued map[Position]bool
}

func newPosQueue() *posQueue {
	return &posQueue{queued: make(map[Position]bool)}
}

func (q *posQueue) Len() int { return len(q.items) }

func (q *posQueue) Less(i, j int) bool {
	if q.items[i].Row != q.items[j].Row {
		return q.items[i].Row > q.items[j].Row
	}
	return q.items[i].Col > q.items[j].Col
}

func (q *posQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *posQueue) Push(x any) { q.items = append(q.items, x.(Position)) }

func (q *posQueue) Pop() any {
	last := q.items[len(q.items)-1]
	q.items = q.items[:len(q.items)-1]
	return last
}

func (q *posQueue) add(p Position) {
	if q.queued[p] {
		return
	}
	q.queued[p] = true
	heap.Push(q, p)
}

func (q *posQueue) next() (Position, bool) {
	if q.Len() == 0 {
		return Position{}, false
	}
	p := heap.Pop(q).(Position)
	delete(q.queued, p)
	return p, true
}

// Unsettle moves settled capsule elements that lost their support back
// into the falling grid. Candidates are seeded from an elimination: every
// exposed half with nothing below it, and every cell directly above a
// cleared one. When an unsupported element (pair-aware: a pair stands if
// either half rests on the floor or on a tile outside the pair) moves,
// the cell above it becomes a new candidate. Viruses never move.
//
// Returns the bottom-most row that re-entered the falling grid, valid
// only when the second result is true.
func Unsettle(fg *FallingGrid, sg *SettledGrid, elim Elimination) (Row, bool) {
	queue := newPosQueue()
	for _, p := range elim.Exposed {
		if below, ok := p.Step(DirBelow); ok && !sg.Occupied(below) {
			queue.add(p)
		}
	}
	for _, p := range elim.Cleared {
		if above, ok := p.Step(DirAbove); ok {
			queue.add(above)
		}
	}

	var lowest Row
	touched := false
	for p, ok := queue.next(); ok; p, ok = queue.next() {
		el, isCapsule := sg.Get(p).Element()
		if !isCapsule {
			continue
		}

		pair := []Position{p}
		els := []Element{el}
		if d, bound := el.PartnerDir(); bound {
			pp, ok := p.Step(d)
			if !ok {
				panic("field: bound partner direction leaves the grid")
			}
			pel, ok := sg.Get(pp).Element()
			if !ok {
				panic("field: settled element bound to a non-capsule tile")
			}
			pair = append(pair, pp)
			els = append(els, pel)
		}

		if pairSupported(sg, pair) {
			continue
		}

		for i, mp := range pair {
			sg.Take(mp)
			fg.Set(mp, els[i])
			if !touched || mp.Row > lowest {
				lowest = mp.Row
			}
			touched = true
			if above, ok := mp.Step(DirAbove); ok {
				queue.add(above)
			}
		}
	}

	return lowest, touched
}

// pairSupported reports whether any member of the pair rests on the floor
// or on a settled tile outside the pair itself.
func pairSupported(sg *SettledGrid, pair []Position) bool {
	for _, p := range pair {
		below, ok := p.Step(DirBelow)
		if !ok {
			return true
		}
		inPair := false
		for _, q := range pair {
			if q == below {
				inPair = true
				break
			}
		}
		if inPair {
			continue
		}
		if sg.Occupied(below) {
			return true
		}
	}
	return false
}
