/*
Package observability wires the engine's lifecycle hooks to Prometheus.

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	engine, _ := romandfa.New(romandfa.WithLifecycleHooks(metrics.Hooks(domain.RomanDead)))

The collectors are registered on the supplied registerer, so several engines
(or tests) can keep separate registries.
*/
package observability
