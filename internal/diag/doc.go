// Package diag defines the diagnostic model used when language definitions
// are validated and loaded.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity, an Info/Warning/Error enum defined in severity.go.
//   - Code, a compact numeric identifier (see codes.go) with a stable string form.
//   - Origin, the file the definition came from (empty for in-memory payloads).
//   - Field, a path into the definition payload such as
//     "custom_rules[1].pattern".
//   - Message, short human oriented text.
//   - Notes, optional secondary field/message pairs.
//
// # Emitting diagnostics
//
// Producers talk to a Reporter and never to storage directly. ReportBuilder
// chains notes before Emit; BagReporter aggregates into a Bag, which supports
// sorting, deduplication and limits.
//
// Package diag performs no IO. FormatShort renders the stable one-line form
// used by the CLI and by golden tests.
package diag
