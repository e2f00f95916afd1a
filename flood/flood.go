// Package flood classifies the non-boundary cells of an OccupancyGrid as
// Inside or Outside by 6-connected BFS seeded from the grid's outer faces.
// The result is meaningful when the Boundary cells form a closed separator
// between exterior and interior, i.e. when the rasterized mesh was
// watertight.
package flood

import (
	"fmt"

	voxelfield "github.com/soypat/voxelfield"
)

// Fill runs the classification in place: after it returns, every
// non-boundary cell reachable from a grid face is Outside and every
// unreachable one is Inside. Boundary cells are untouched. Fill operates
// single-threaded on the grid's linear index space.
func Fill(g *voxelfield.OccupancyGrid) error {
	meta := g.Meta()
	nx, ny, nz := int(meta.Nx), int(meta.Ny), int(meta.Nz)
	n := meta.Count()
	data := g.Data()

	visited := newBitset(n)
	queue := newRingQueue(1024, n)

	nxny := nx * ny
	seed := func(lin int) error {
		if data[lin] == voxelfield.Boundary || visited.get(lin) {
			return nil
		}
		visited.set(lin)
		return queue.push(lin)
	}
	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				if x != 0 && x != nx-1 && y != 0 && y != ny-1 && z != 0 && z != nz-1 {
					continue
				}
				if err := seed(z*nxny + y*nx + x); err != nil {
					return err
				}
			}
		}
	}

	for queue.len() > 0 {
		lin := queue.pop()
		x := lin % nx
		y := (lin / nx) % ny
		z := lin / nxny
		visit := func(nb int) error {
			if data[nb] == voxelfield.Boundary || visited.get(nb) {
				return nil
			}
			visited.set(nb)
			return queue.push(nb)
		}
		var err error
		if x > 0 {
			err = visit(lin - 1)
		}
		if err == nil && x < nx-1 {
			err = visit(lin + 1)
		}
		if err == nil && y > 0 {
			err = visit(lin - nx)
		}
		if err == nil && y < ny-1 {
			err = visit(lin + nx)
		}
		if err == nil && z > 0 {
			err = visit(lin - nxny)
		}
		if err == nil && z < nz-1 {
			err = visit(lin + nxny)
		}
		if err != nil {
			return err
		}
	}

	for lin := 0; lin < n; lin++ {
		if data[lin] == voxelfield.Boundary {
			continue
		}
		if visited.get(lin) {
			data[lin] = voxelfield.Outside
		} else {
			data[lin] = voxelfield.Inside
		}
	}
	return nil
}

// bitset is one bit per cell, avoiding a bool per cell on large volumes.
type bitset []uint64

func newBitset(n int) bitset { return make(bitset, (n+63)/64) }

func (b bitset) get(i int) bool { return b[i>>6]&(1<<(uint(i)&63)) != 0 }

func (b bitset) set(i int) { b[i>>6] |= 1 << (uint(i) & 63) }

// ringQueue is a FIFO over linear cell indices backed by a circular buffer
// that grows geometrically up to a hard limit.
type ringQueue struct {
	buf   []int
	head  int
	count int
	limit int
}

func newRingQueue(capacity, limit int) *ringQueue {
	if capacity > limit {
		capacity = limit
	}
	if capacity < 1 {
		capacity = 1
	}
	return &ringQueue{buf: make([]int, capacity), limit: limit}
}

func (q *ringQueue) len() int { return q.count }

func (q *ringQueue) push(v int) error {
	if q.count == len(q.buf) {
		if err := q.grow(); err != nil {
			return err
		}
	}
	q.buf[(q.head+q.count)%len(q.buf)] = v
	q.count++
	return nil
}

func (q *ringQueue) pop() int {
	v := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return v
}

func (q *ringQueue) grow() error {
	if len(q.buf) >= q.limit {
		return fmt.Errorf("%w: flood fill queue exceeded %d cells", voxelfield.ErrInvariant, q.limit)
	}
	newCap := 2 * len(q.buf)
	if newCap > q.limit {
		newCap = q.limit
	}
	nb := make([]int, newCap)
	for i := 0; i < q.count; i++ {
		nb[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = nb
	q.head = 0
	return nil
}
