// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"runtime"
	"sync"
)

// forEachElement runs body(e) for every e in [0,n) across a fixed pool
// of nthreads goroutines, with no ordering guarantee and no shared
// writes between iterations: a fixed goroutine pool draining a shared
// index channel, synchronized with sync.WaitGroup.
func forEachElement(n, nthreads int, body func(e int)) {
	if nthreads < 1 {
		nthreads = runtime.GOMAXPROCS(0)
	}
	if n == 0 {
		return
	}
	if nthreads > n {
		nthreads = n
	}
	jobs := make(chan int, n)
	for e := 0; e < n; e++ {
		jobs <- e
	}
	close(jobs)

	var wg sync.WaitGroup
	wg.Add(nthreads)
	for w := 0; w < nthreads; w++ {
		go func() {
			defer wg.Done()
			for e := range jobs {
				body(e)
			}
		}()
	}
	wg.Wait()
}

// forEachBand runs body(e) over every element of egroups, using a
// two-color discipline: all even-indexed bands run
// concurrently (one goroutine per band) and are barrier-synchronized
// before the odd-indexed bands run concurrently. Bands of the same
// color never share a node (validated at group-creation time by
// mesh.Mesh.Derive), so node-accumulating writes inside body are race
// free within a color; the barrier between colors prevents races
// across them.
func forEachBand(egroups []int, body func(e int)) {
	ngroups := len(egroups) - 1
	if ngroups <= 0 {
		return
	}
	for color := 0; color < 2 && color < ngroups; color++ {
		var wg sync.WaitGroup
		for band := color; band < ngroups; band += 2 {
			lo, hi := egroups[band], egroups[band+1]
			wg.Add(1)
			go func(lo, hi int) {
				defer wg.Done()
				for e := lo; e < hi; e++ {
					body(e)
				}
			}(lo, hi)
		}
		wg.Wait()
	}
}
