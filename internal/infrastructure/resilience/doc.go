/*
Package resilience provides the circuit breakers that guard outbound
publisher requests.

# Overview

A Breaker counts failures of one upstream and stops calling it once the
failure threshold is reached. A Group hands out one breaker per host, so a
publisher that is down only short-circuits requests to itself.

# Usage

	group := resilience.NewGroup(resilience.Settings{
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsFailure: func(err error) bool {
			return err != nil && !errors.Is(err, context.Canceled)
		},
	})

	err := group.Get("ieeexplore.ieee.org").Do(func() error {
		return fetch(ctx)
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                       [failure]
	                                           v
	                                         Open
*/
package resilience
