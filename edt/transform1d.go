package edt

import "math"

// sentinelWeighted is the cost-array sentinel the weighted 1-D transform
// uses to represent "far from any seed"; chosen to dominate any w*n^2 that
// can appear in a volume of sane size.
const sentinelWeighted = 1e30

// SentinelWeighted is the cost value callers should use to mark a
// non-seed cell before calling Transform1D/Transform3D in weighted mode.
const SentinelWeighted = sentinelWeighted

// sentinelIsotropic is the integer sentinel for grids with n <= 32768 per
// axis. Grids larger than that should use the weighted float64 path
// instead of TransformIsotropic1D.
const sentinelIsotropic = 1 << 28

// SentinelIsotropic is the cost value callers should use to mark a
// non-seed cell before calling TransformIsotropic1D/3D.
const SentinelIsotropic int64 = sentinelIsotropic

// MaxIsotropicAxis is the largest axis length for which the integer
// sentinel is guaranteed not to overflow when squared and added.
const MaxIsotropicAxis = 32768

// Transform1D computes, for each index x in out, the minimum of
// w*(x-j)^2 + f[j] over all j, using the Felzenszwalb–Huttenlocher
// lower-envelope-of-parabolas algorithm in O(n). len(out) must equal
// len(f); out and f may not alias scratch (v, z) but may alias each other
// only if the caller accepts in-place semantics are NOT implemented (out
// is written only after f is fully read per index).
func Transform1D(f []float64, w float64, out []float64) {
	n := len(f)
	if n == 0 {
		return
	}
	if n == 1 {
		out[0] = f[0]
		return
	}
	v := make([]int, n)
	z := make([]float64, n+1)
	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)
	for q := 1; q < n; q++ {
		for {
			p := v[k]
			s := ((f[q] + w*float64(q)*float64(q)) - (f[p] + w*float64(p)*float64(p))) / (2 * w * float64(q-p))
			if s <= z[k] {
				k--
				continue
			}
			k++
			v[k] = q
			z[k] = s
			z[k+1] = math.Inf(1)
			break
		}
	}
	k = 0
	for x := 0; x < n; x++ {
		for z[k+1] < float64(x) {
			k++
		}
		dx := float64(x - v[k])
		out[x] = w*dx*dx + f[v[k]]
	}
}

// TransformIsotropic1D is the integer specialization of Transform1D with
// w=1, exact for squared Euclidean distance in unscaled voxel units.
func TransformIsotropic1D(f []int64, out []int64) {
	n := len(f)
	if n == 0 {
		return
	}
	if n == 1 {
		out[0] = f[0]
		return
	}
	v := make([]int, n)
	z := make([]float64, n+1)
	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)
	for q := 1; q < n; q++ {
		for {
			p := v[k]
			s := float64((f[q]+int64(q)*int64(q))-(f[p]+int64(p)*int64(p))) / float64(2*(q-p))
			if s <= z[k] {
				k--
				continue
			}
			k++
			v[k] = q
			z[k] = s
			z[k+1] = math.Inf(1)
			break
		}
	}
	k = 0
	for x := 0; x < n; x++ {
		for z[k+1] < float64(x) {
			k++
		}
		dx := int64(x - v[k])
		out[x] = dx*dx + f[v[k]]
	}
}
