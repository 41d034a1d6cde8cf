// Package omap implements the insertion-ordered, open-addressed
// associative container the spec calls for: a dense side (iteration
// order == insertion order) and a sparse linear-probe side (O(1)
// average lookup), tied together the way parson's JSON_Object ties
// its names/values/hashes/cell_ixs arrays to its cells probe table.
//
// It is generic over the stored value type so the root jsontree
// package (which depends on omap) can store *Value without omap
// needing to import it back.
package omap

import (
	"errors"
	"fmt"
)

// ErrDuplicate is returned by Add when the key is already present.
var ErrDuplicate = errors.New("omap: duplicate key")

const startingCapacity = 16

const emptyCell = -1

// forceHashCollisions, when true, makes every key hash to zero. It
// exists only so tests can drive the probe table into its
// worst-case collision chains and exercise backward-shift deletion
// under those conditions, mirroring parson's PARSON_FORCE_HASH_COLLISIONS
// compile-time switch. Flip it with SetForceHashCollisions, which is
// exported for test use only (see omap_test.go).
var forceHashCollisions = false

// SetForceHashCollisions forces (or un-forces) every hash to zero and
// returns the previous setting. Intended for _test.go files only.
func SetForceHashCollisions(enable bool) (previous bool) {
	previous = forceHashCollisions
	forceHashCollisions = enable
	return previous
}

func hashString(s string) uint64 {
	if forceHashCollisions {
		return 0
	}
	h := uint64(5381)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == 0 {
			break
		}
		h = h*33 + uint64(c)
	}
	return h
}

// Map is an insertion-ordered map from string keys to values of type
// V, backed by a linear-probed, power-of-two-sized cell table with a
// 0.7 load factor ceiling.
type Map[V any] struct {
	names   []string
	values  []V
	hashes  []uint64
	cellIxs []int
	cells   []int // index into the dense side, or emptyCell

	count        int
	cellCapacity int
}

// New returns an empty Map. Its sparse table is not allocated until
// the first insertion, matching parson's lazily-grown JSON_Object.
func New[V any]() *Map[V] {
	return &Map[V]{}
}

// Len returns the number of entries.
func (m *Map[V]) Len() int { return m.count }

// itemCapacity is the load-factor ceiling: cellCapacity*7/10.
func (m *Map[V]) itemCapacity() int {
	return m.cellCapacity * 7 / 10
}

// CellCapacity exposes the sparse table size, for invariant checks.
func (m *Map[V]) CellCapacity() int { return m.cellCapacity }

// findCell starts at the home slot (hash & (cellCapacity-1)) and
// linear-probes until it finds an empty cell (not found) or a cell
// whose item has this exact hash and key (found).
func (m *Map[V]) findCell(hash uint64, key string) (cellIx int, found bool) {
	if m.cellCapacity == 0 {
		return emptyCell, false
	}
	mask := uint64(m.cellCapacity - 1)
	home := hash & mask
	for i := 0; i < m.cellCapacity; i++ {
		ix := int((home + uint64(i)) & mask)
		item := m.cells[ix]
		if item == emptyCell {
			return ix, false
		}
		if m.hashes[item] == hash && m.names[item] == key {
			return ix, true
		}
	}
	return emptyCell, false
}

// Get looks up key, returning its value and true, or the zero value
// and false if absent.
func (m *Map[V]) Get(key string) (V, bool) {
	hash := hashString(key)
	cellIx, found := m.findCell(hash, key)
	if !found {
		var zero V
		return zero, false
	}
	return m.values[m.cells[cellIx]], true
}

// Has reports whether key is present.
func (m *Map[V]) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// At returns the i-th entry in insertion order.
func (m *Map[V]) At(i int) (key string, val V, ok bool) {
	if i < 0 || i >= m.count {
		var zero V
		return "", zero, false
	}
	return m.names[i], m.values[i], true
}

// Add inserts a new key, failing with ErrDuplicate if it is already
// present (add semantics, as opposed to Set's replace semantics).
func (m *Map[V]) Add(key string, val V) error {
	hash := hashString(key)
	if _, found := m.findCell(hash, key); found {
		return fmt.Errorf("%w: %q", ErrDuplicate, key)
	}
	m.insert(key, val, hash)
	return nil
}

// Set inserts key, replacing any existing value in place (set
// semantics) and returning the value that was there before, if any.
func (m *Map[V]) Set(key string, val V) (old V, replaced bool) {
	hash := hashString(key)
	cellIx, found := m.findCell(hash, key)
	if found {
		itemIx := m.cells[cellIx]
		old = m.values[itemIx]
		m.values[itemIx] = val
		return old, true
	}
	m.insert(key, val, hash)
	var zero V
	return zero, false
}

// insert appends (key, val) to the dense side and wires up the
// sparse side, growing first if the load factor ceiling would be
// exceeded.
func (m *Map[V]) insert(key string, val V, hash uint64) {
	if m.count >= m.itemCapacity() {
		m.growAndRehash()
	}
	cellIx, _ := m.findCell(hash, key)
	m.names = append(m.names, key)
	m.values = append(m.values, val)
	m.hashes = append(m.hashes, hash)
	m.cellIxs = append(m.cellIxs, cellIx)
	m.cells[cellIx] = m.count
	m.count++
}

// growAndRehash doubles cellCapacity (minimum startingCapacity),
// builds a fresh cells table, and reinserts every existing (name,
// value) pair, mirroring parson's json_object_grow_and_rehash: build
// a spare object, transfer ownership of every pair into it, then
// swap.
func (m *Map[V]) growAndRehash() {
	newCap := startingCapacity
	if 2*m.cellCapacity > newCap {
		newCap = 2 * m.cellCapacity
	}
	oldNames, oldValues, oldHashes := m.names, m.values, m.hashes

	m.cellCapacity = newCap
	m.cells = make([]int, newCap)
	for i := range m.cells {
		m.cells[i] = emptyCell
	}
	m.names = make([]string, 0, len(oldNames))
	m.values = make([]V, 0, len(oldValues))
	m.hashes = make([]uint64, 0, len(oldHashes))
	m.cellIxs = make([]int, 0, len(oldNames))
	m.count = 0

	for i := range oldNames {
		cellIx, _ := m.findCell(oldHashes[i], oldNames[i])
		m.names = append(m.names, oldNames[i])
		m.values = append(m.values, oldValues[i])
		m.hashes = append(m.hashes, oldHashes[i])
		m.cellIxs = append(m.cellIxs, cellIx)
		m.cells[cellIx] = m.count
		m.count++
	}
}

// Remove deletes key via backward-shift deletion: the last dense
// item is moved into the vacated slot (if it wasn't already last),
// then cells following the freed slot are walked and shifted
// backward while they would be "closer to home" in the hole, exactly
// as parson's json_object_remove_internal does, until an empty cell
// is reached.
func (m *Map[V]) Remove(key string) (val V, ok bool) {
	hash := hashString(key)
	cell, found := m.findCell(hash, key)
	if !found {
		var zero V
		return zero, false
	}

	itemIx := m.cells[cell]
	val = m.values[itemIx]

	lastItemIx := m.count - 1
	if itemIx < lastItemIx {
		m.names[itemIx] = m.names[lastItemIx]
		m.values[itemIx] = m.values[lastItemIx]
		m.cellIxs[itemIx] = m.cellIxs[lastItemIx]
		m.hashes[itemIx] = m.hashes[lastItemIx]
		m.cells[m.cellIxs[itemIx]] = itemIx
	}
	m.names = m.names[:lastItemIx]
	m.values = m.values[:lastItemIx]
	m.hashes = m.hashes[:lastItemIx]
	m.cellIxs = m.cellIxs[:lastItemIx]
	m.count--

	mask := m.cellCapacity - 1
	i, j := cell, cell
	for x := 0; x < m.cellCapacity-1; x++ {
		j = (j + 1) & mask
		if m.cells[j] == emptyCell {
			break
		}
		k := int(m.hashes[m.cells[j]] & uint64(mask))
		if (j > i && (k <= i || k > j)) || (j < i && (k <= i && k > j)) {
			m.cellIxs[m.cells[j]] = i
			m.cells[i] = m.cells[j]
			i = j
		}
	}
	m.cells[i] = emptyCell

	return val, true
}

// Clear empties the map. The sparse table is dropped entirely
// (mirroring parson's json_object_deinit), so the next insertion
// starts from a fresh 16-cell table.
func (m *Map[V]) Clear() {
	m.names = nil
	m.values = nil
	m.hashes = nil
	m.cellIxs = nil
	m.cells = nil
	m.count = 0
	m.cellCapacity = 0
}

// Each calls fn for every entry in dense-side order, stopping early
// if fn returns false. That is insertion order until a Remove, which
// moves the last entry into the removed entry's position.
func (m *Map[V]) Each(fn func(key string, val V) bool) {
	for i := 0; i < m.count; i++ {
		if !fn(m.names[i], m.values[i]) {
			return
		}
	}
}

// CheckInvariants validates the structural invariants from the
// design's testable-properties section: every dense item's recorded
// cell points back at it, and every occupied cell's item probes back
// to that cell from its home slot with no gaps. Exposed for tests in
// both this package and the root jsontree package.
func (m *Map[V]) CheckInvariants() error {
	for i := 0; i < m.count; i++ {
		if m.cellIxs[i] < 0 || m.cellIxs[i] >= len(m.cells) {
			return fmt.Errorf("item %d has out-of-range cell_ix %d", i, m.cellIxs[i])
		}
		if m.cells[m.cellIxs[i]] != i {
			return fmt.Errorf("item %d: cells[cell_ixs[%d]] = %d, want %d", i, i, m.cells[m.cellIxs[i]], i)
		}
	}
	for c, item := range m.cells {
		if item == emptyCell {
			continue
		}
		cellIx, found := m.findCell(m.hashes[item], m.names[item])
		if !found || cellIx != c {
			return fmt.Errorf("cell %d: probing for %q does not return to this cell", c, m.names[item])
		}
	}
	return nil
}
