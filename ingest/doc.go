// Package ingest implements the document intake pipeline.
//
// Every uploaded file moves through a fixed status progression: it is
// validated, sent through standard text extraction, and either processed
// directly or parked awaiting a vision decision when the extraction is
// too thin. The vision fallback is an explicit, operator-driven step
// because it incurs per-page model cost.
//
// Processing a document ends in exactly one of three terminal states:
// PROCESSED (profile stored and indexed), PROCESSED_WITH_PROFILE_ERROR
// (text kept, no profile, not searchable), or ERROR with a recorded
// failure reason.
package ingest
