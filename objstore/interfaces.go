// Package objstore abstracts archival storage for original uploaded files.
//
// The pipeline keeps only extracted text and profiles locally; the raw
// files are archived to an object store so they can be re-processed or
// audited later. Archival failures are soft: the pipeline logs them and
// continues.
package objstore

import (
	"context"

	"github.com/candidly/candex/core"
)

// Store archives and retrieves original document files.
type Store interface {
	// Put archives a file under a path derived from the document ID and
	// filename, and returns that path.
	Put(ctx context.Context, documentID core.ID, filename string, data []byte) (string, error)

	// Get retrieves a previously archived file by its storage path.
	Get(ctx context.Context, storagePath string) ([]byte, error)

	// Delete removes an archived file. Deleting an absent path is not an
	// error.
	Delete(ctx context.Context, storagePath string) error
}
