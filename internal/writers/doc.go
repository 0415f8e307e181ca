// Package writers turns GFF records into serialized outputs on a stream.
//
// Design:
//   - Writers own all presentation knowledge (GFF3 text, JSONL).
//   - core/gffio stays codec-only; the CLI stays orchestration-only.
//   - JSONL goes through pkg/api (v1) for a stable wire format.
package writers
