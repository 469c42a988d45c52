// Package pvt holds what the gas, oil and water packages share: the
// correlation catalog, range policy, error types, unit helpers and the
// element-wise evaluator.
//
// Units follow oilfield practice: pressure in psia, temperature in °R,
// gas-oil ratio in scf/STB, density in lb/ft³, viscosity in cp and salinity
// in ppm. Unit consistency is the caller's responsibility; only physically
// meaningless values are rejected.
package pvt
