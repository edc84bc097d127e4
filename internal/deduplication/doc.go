// Package deduplication detects likely duplicate banking tasks.
//
// # Overview
//
// The detector compares tasks belonging to the same customer and flags pairs
// that are probably redundant work. A pair is a duplicate when either:
//
//  1. Both tasks have the same type and were created within the duplicate
//     window (default 24 hours), or
//  2. Their descriptions are very similar (normalized edit distance above
//     the similarity threshold, default 0.80).
//
// Tasks belonging to different customers are never compared.
//
// # Output
//
// Each flagged pair becomes a types.DuplicatePair. The earlier-timestamped
// task is the original; ties keep input order. The suggested action (delete,
// merge, review) is derived purely from the similarity score, and the
// estimated time saved comes from the duplicate task's SLA warning threshold
// plus bounded jitter.
//
// # Determinism
//
// The detector is a pure function of its inputs apart from the jitter on
// time saved. Callers that need reproducible output (tests, reports diffed
// across runs) should construct the detector with a seeded rand.Rand.
//
// # Configuration
//
// DefaultConfig matches the production dashboard behavior. Thresholds can be
// overridden via environment variables (see ConfigFromEnv) or a YAML file
// (see ConfigFromFile).
package deduplication
