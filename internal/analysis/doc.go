// Package analysis provides numerical checks on simulated responses.
//
//   - [Convergence]: error against a fine-step reference and observed order
//   - [CompareIntegrators]: one system through several integrators
//   - [PhasePortrait]: state trajectory x[i] vs x[j] of a finished run
//
// # Convergence
//
// The reference run uses dt/16 with each coarse input sample held over
// sixteen fine steps, so the reported error is integration error only:
//
//	rows, err := analysis.Convergence(ctx, tf, analysis.Hold(1), 5, []float64{0.1, 0.05}, "rk4")
//	// rows[1].Order is close to 4 for RK4
package analysis
