// Package edt implements the Felzenszwalb–Huttenlocher exact Euclidean
// distance transform (1-D lower envelope of parabolas, lifted separably to
// 2-D and 3-D) and the signed distance field builder derived from it.
package edt

import "sync"

// bufPool rents float64 scratch lines and full volumes: a shared free list
// amortizes allocation across repeated calls, and buffers are returned via
// defer regardless of failure.
var bufPool = sync.Pool{
	New: func() interface{} {
		return new([]float64)
	},
}

func getBuf(n int) []float64 {
	bp := bufPool.Get().(*[]float64)
	b := *bp
	if cap(b) < n {
		b = make([]float64, n)
	} else {
		b = b[:n]
	}
	return b
}

func putBuf(b []float64) {
	bufPool.Put(&b)
}
