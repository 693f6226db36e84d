/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package lb implements endpoint load balancing for resolver bindings.
package lb

import (
	"errors"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/trustbloc/dataintegrity-ed25519-go/method/internal/rollingcounter"
)

var logger = log.New("dataintegrity-ed25519/lb")

// ErrNoEndpoints is returned when there is nothing to choose from.
var ErrNoEndpoints = errors.New("no endpoints to choose from")

// RoundRobin implements a round-robin load-balance policy.
type RoundRobin struct {
	counter *rollingcounter.Counter
}

// NewRoundRobin returns a new RoundRobin load-balance policy.
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{
		counter: rollingcounter.New(),
	}
}

// Choose chooses from the list of endpoints in round-robin fashion.
func (rb *RoundRobin) Choose(endpoints []string) (string, error) {
	if len(endpoints) == 0 {
		logger.Warnf("No endpoints to choose from!")

		return "", ErrNoEndpoints
	}

	return endpoints[rb.counter.Next(len(endpoints))], nil
}
