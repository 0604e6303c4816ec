package constants

// BatchStatus is the canonical status for rows in batches.
type BatchStatus string

// Stable values (store these exact strings in the DB).
const (
	BatchStatusRunning BatchStatus = "RUNNING" // in progress
	BatchStatusDone    BatchStatus = "DONE"    // every document parsed
	BatchStatusPartial BatchStatus = "PARTIAL" // finished with per-document failures
	BatchStatusFailed  BatchStatus = "FAILED"  // no document parsed
)

// ExtractorKind records which extraction path produced a row.
type ExtractorKind string

const (
	ExtractorLLM       ExtractorKind = "llm"
	ExtractorHeuristic ExtractorKind = "heuristic"
	ExtractorNone      ExtractorKind = "none" // document failed to decode
)
