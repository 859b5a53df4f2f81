// Package kernel provides shared domain primitives for the marketplace core.
// It implements the fundamental building blocks used throughout the domain
// model, following Domain-Driven Design principles.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - GeoPoint: A value object for geographic positions with great-circle distance math
//   - Round3: The monetary rounding rule applied to every settlement amount
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// thread-safe, making them suitable for concurrent use.
package kernel
