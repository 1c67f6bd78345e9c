// Package dynamo provides core simulation primitives for input-driven
// dynamical systems.
//
// The package defines the types shared by the realization, integrator and
// simulation-loop packages:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [OutputSystem]: a System with an observation y = g(X, u)
//   - [Integrator]: fixed-step numerical integrator interface
//   - [Metric]: per-sample response statistic
//   - [Ensemble]: runs independent simulations in parallel
//
// # Thread Safety
//
// Integrators keep scratch buffers and are NOT safe for concurrent use.
// Independent runs must each own their integrator and state; [Ensemble]
// runs jobs that build their own.
package dynamo
