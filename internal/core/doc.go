// Package core provides the tabular plumbing for catalog files.
//
// It knows nothing about size encodings beyond which column holds them, and
// nothing about the CLI or report rendering. The catalog package builds on it
// to read and write whole files.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Layouts: Registered via the registry, each layout names its columns and
//     where per-size quantities live (a size field, a description block, or
//     one column per size).
//   - Validation: Row and cell checks against FieldSpecs, collecting every
//     failure or stopping at the first.
//   - Streaming: Readers that strip a UTF-8 BOM and replace invalid bytes
//     before the CSV parser sees them.
//   - Conversion: Cell cleanup plus numeric, price and count parsing.
//   - Errors: Mapping of low-level errors to coded user messages.
//   - Limiting: A semaphore bounding how many files are read at once.
//
// # Thread Safety
//
// Layouts are registered at init and read-only afterwards. ReadLimiter is
// safe for concurrent use.
package core
