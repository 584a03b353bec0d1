// Package diag defines the diagnostic model shared by the semantic passes and
// the driver.
//
// # Errors
//
// The analyzer and the type checker are fail-fast: each pass returns the first
// problem it meets as a *Error. An Error has one of three kinds:
//
//   - KindSemantic – scoping, binding and mutability violations. Always carries
//     a source.Location.
//   - KindType – inference and compatibility failures. Always carries a
//     location and names the types or construct involved.
//   - KindInternal – a referenced node is missing from the store. Signals a
//     defect in a prior pass; message only, no location.
//
// Use Semantic, Typef and Internal to construct them and As to recover one from
// a wrapped error chain.
//
// # Diagnostics
//
// Diagnostic is the rendering record consumed by internal/diagfmt. Passes emit
// advisory warnings as Diagnostic values with SevWarning; the driver converts
// errors with (*Error).Diagnostic and collects everything in a Bag, which
// supports limits, sorting and deduplication.
//
// Package diag does not perform any formatting beyond the single line form in
// FormatShortDiagnostics. Pretty and JSON output live in internal/diagfmt.
package diag
