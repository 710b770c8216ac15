// Package followthemoney implements a schema system for describing real-world
// entities such as people, companies, assets and the relationships between
// them.
//
// Schemata are arranged in a multi-rooted inheritance hierarchy: each schema
// declares its own properties and may extend any number of parent schemata,
// from which it inherits all of their properties. The full set of definitions
// is held by a Model, which is built in phases:
//
//  1. Construct: every schema is created from its raw definition with only
//     its locally declared properties.
//  2. Generate: the extends hierarchy is resolved, inherited properties are
//     merged in by reference, and featured/required/caption/edge references
//     are checked against the merged property set.
//  3. Reverse synthesis: for every entity-typed property that declares a
//     reverse, a stub property is synthesized on the range schema.
//  4. Finalize: matchable schema sets are precomputed and the model is
//     frozen.
//
// Once NewModel returns, the model and all schemata it holds are immutable
// and safe for concurrent use. Definition errors (unknown parents, cyclic
// extends, dangling property references) abort the load with a ModelError;
// user data is checked with Schema.Validate, which aggregates every failing
// property into a single ValidationError rather than stopping at the first.
//
// A default model with the standard schema definitions is embedded in the
// package and available via Default.
package followthemoney
