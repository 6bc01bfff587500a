package sentinel

import "errors"

// Sentinel errors for storage facts. Store implementations return these
// (optionally wrapped) so services can translate them into domain errors
// with caller-facing messages.
//
// These represent factual states about rows, not validation failures:
// - ErrNotFound: the target row does not exist
// - ErrReference: a declared parent id does not reference an existing row
// - ErrConflict: a delete is blocked by existing dependent rows
//
// For validation errors (bad input, missing fields), use pkg/domainerrors
// directly.
var (
	ErrNotFound  = errors.New("not found")
	ErrReference = errors.New("invalid reference")
	ErrConflict  = errors.New("conflict")
)
