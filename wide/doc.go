// Package wide provides fixed-width lane types for batched pair processing.
//
// A batch holds up to Lanes independent shape pairs. Scalars, vectors,
// quaternions and matrices are stored as Structure-of-Arrays so that every
// lane-wise operation is a simple loop over a fixed-size array, which the Go
// compiler can auto-vectorize on supported architectures.
//
// # Wide Types
//
//   - F64: Lanes float64 values.
//   - Vec3: three F64 components (X, Y, Z).
//   - Quat: four F64 components (X, Y, Z, W).
//   - Mat3: three Vec3 rows.
//   - Mask: Lanes booleans, true meaning the lane is inactive.
//
// Slot and SetSlot convert a single lane to and from mgl64 values, which is how
// per-lane scalar code (variable-length loops over hull faces, for instance)
// reads and writes batch data.
//
// # Design Philosophy
//
//   - Use simple loops over fixed-size arrays
//   - Avoid unsafe and assembly
//   - Keep functions small and inlineable
package wide
