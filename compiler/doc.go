// Package compiler compiles entity descriptions into a resolved graph.Model.
//
// Compilation runs in strict phases, each completing for every entity
// before the next one starts:
//
//  1. names: one entity shell per description; duplicate names fail.
//  2. properties: attributes and fetched properties, per entity and in parallel.
//  3. relationships: destinations and parent entities are resolved by name;
//     named inverses are recorded.
//  4. inheritance: parent cycles and redeclared inherited names fail.
//  5. inverses: recorded inverses are linked in both directions.
//  6. indexes: index elements and uniqueness constraints are resolved
//     against the final property sets, inherited properties included.
//  7. configurations: entities are grouped by configuration tag.
//
// The compiled entities are then appended to a clone of the base model, if
// one was given with WithBase. Every error matches one of the Err*
// sentinels with errors.Is and carries the entity and property names
// involved.
package compiler
