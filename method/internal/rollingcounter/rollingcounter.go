/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package rollingcounter implements a lock-free rolling index.
package rollingcounter

import (
	"crypto/rand"
	"math/big"
	"sync/atomic"

	"github.com/hyperledger/aries-framework-go/component/log"
)

var logger = log.New("dataintegrity-ed25519/rollingcounter")

// Counter is a rolling counter that increments an index up to a maximum value. If the counter reaches
// the maximum then the counter resets to 0. A single counter instance may be used by multiple Go routines.
type Counter struct {
	index atomic.Int32
}

// New returns a new rolling counter. The first index is chosen at random.
func New() *Counter {
	c := &Counter{}
	c.index.Store(-1)

	return c
}

// Next increments the counter. If the counter reaches n then
// the counter is reset to 0. n must be greater than 0.
func (c *Counter) Next(n int) int {
	if n <= 0 {
		panic("n must be greater than 0")
	}

	for {
		current := c.index.Load()

		i := int(current)
		if i == -1 || i >= n {
			i = random(n)
		} else {
			i++
			if i >= n {
				i = 0
			}
		}

		if c.index.CompareAndSwap(current, int32(i)) {
			logger.Debugf("rolling counter set to %d of %d", i, n)

			return i
		}

		logger.Debugf("concurrent increment of rolling counter, retrying")
	}
}

func random(n int) int {
	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err.Error())
	}

	return int(result.Int64())
}
