package um

// heap is the Array Heap: a set of variable-length word
// arrays addressed by identifier, with identifier 0 reserved for the
// currently executing program image. Freed identifiers are held on
// freeList and reissued most-recently-freed-first before a fresh
// identifier is minted.
type heap struct {
	arrays   [][]platter
	live     []bool
	freeList []platter
}

func newHeap(program []platter) *heap {
	h := &heap{
		arrays: make([][]platter, 1, 16),
		live:   make([]bool, 1, 16),
	}
	h.arrays[0] = program
	h.live[0] = true
	return h
}

// allocate returns a fresh or reused identifier bound to a zero-filled
// array of the given length. The returned identifier is never 0.
func (h *heap) allocate(length platter) platter {
	arr := make([]platter, length)
	if n := len(h.freeList); n > 0 {
		id := h.freeList[n-1]
		h.freeList = h.freeList[:n-1]
		h.arrays[id] = arr
		h.live[id] = true
		return id
	}
	id := platter(len(h.arrays))
	h.arrays = append(h.arrays, arr)
	h.live = append(h.live, true)
	return id
}

// abandon releases the array at id, returning it to the free list. id
// must be non-zero and live.
func (h *heap) abandon(id platter, finger int) *Fault {
	if id == 0 {
		return faultf(InvalidOperation, finger, "cannot abandon array 0")
	}
	if !h.isLive(id) {
		return faultf(InvalidOperation, finger, "abandon of non-live array %d", id)
	}
	h.arrays[id] = nil
	h.live[id] = false
	h.freeList = append(h.freeList, id)
	return nil
}

func (h *heap) isLive(id platter) bool {
	return int(id) < len(h.live) && h.live[id]
}

func (h *heap) read(id, offset platter, finger int) (platter, *Fault) {
	if !h.isLive(id) {
		return 0, faultf(InvalidOperation, finger, "read of non-live array %d", id)
	}
	arr := h.arrays[id]
	if int(offset) >= len(arr) {
		return 0, faultf(InvalidOperation, finger, "read offset %d out of bounds for array %d (len %d)", offset, id, len(arr))
	}
	return arr[offset], nil
}

func (h *heap) write(id, offset, value platter, finger int) *Fault {
	if !h.isLive(id) {
		return faultf(InvalidOperation, finger, "write of non-live array %d", id)
	}
	arr := h.arrays[id]
	if int(offset) >= len(arr) {
		return faultf(InvalidOperation, finger, "write offset %d out of bounds for array %d (len %d)", offset, id, len(arr))
	}
	arr[offset] = value
	return nil
}

// loadProgram replaces array 0 with an independent copy of the array at
// id. The source array is left untouched, so later amendments to either
// array never alias the other.
func (h *heap) loadProgram(id platter, finger int) ([]platter, *Fault) {
	if !h.isLive(id) {
		return nil, faultf(InvalidOperation, finger, "load program from non-live array %d", id)
	}
	dup := make([]platter, len(h.arrays[id]))
	copy(dup, h.arrays[id])
	h.arrays[0] = dup
	return dup, nil
}

func (h *heap) fetch(finger int) (platter, *Fault) {
	program := h.arrays[0]
	if finger < 0 || finger >= len(program) {
		return 0, faultf(InvalidOperation, finger, "execution finger ran off the end of array 0 (len %d)", len(program))
	}
	return program[finger], nil
}
