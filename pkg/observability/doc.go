/*
Package observability turns wizard lifecycle events into logs and metrics.

Every helper returns a domain.LifecycleHooks value, so they compose with
Combine and plug into the controller with runtime.WithLifecycleHooks:

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	hooks := observability.Combine(metrics.Hooks(), observability.LogHooks(logger))
*/
package observability
