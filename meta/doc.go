// Package meta implements the kernel of Kona's managed type system.
//
// This package contains:
//   - Class descriptors: primitives, boxes, arrays, interfaces, classes
//   - The Meta universe: well-known types, class registry, array and
//     proxy class caches
//   - Object, the managed reference value, including wrapped foreign
//     values and the null reference
//   - GuestError, the carrier for thrown managed exceptions
package meta
