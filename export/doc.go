// Package export serializes validated configuration trees to
// deterministic, human-diff-friendly YAML.
//
// Mapping keys keep the order fields are declared in (never sorted),
// unset optional fields are dropped, multi-line strings are written
// as literal block scalars, and scalars a YAML 1.1 reader would
// misinterpret (`on`, `yes`, numeric strings) are single-quoted. All
// configuration lives on the Encoder; there is no package-level
// mutable state, so concurrent exports never interfere.
package export
