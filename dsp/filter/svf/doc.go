// Package svf implements a topology-preserving (trapezoidal) state-variable
// filter whose coefficients can be changed while audio is running without
// zipper noise or instability.
//
// Coefficients are computed once per [Filter.SetParams] call; per-sample
// processing performs no trigonometry.
package svf
