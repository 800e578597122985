package badger

import (
	"fmt"

	"github.com/candidly/candex/core"
)

// Key prefixes for different data types
const (
	documentPrefix            = "docrec"
	documentFingerprintPrefix = "docfpr"
	documentIDSeq             = "docrecseq"
	profilePrefix             = "prorec"
)

// makeDocumentKey generates a key for a document record by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%020d", documentPrefix, id))
}

// makeFingerprintKey generates a key for the fingerprint index.
// Format: prefix:fingerprint
func makeFingerprintKey(fingerprint string) []byte {
	return []byte(fmt.Sprintf("%s:%s", documentFingerprintPrefix, fingerprint))
}

// makeProfileKey generates a key for a candidate profile by document ID.
func makeProfileKey(documentID core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%020d", profilePrefix, documentID))
}
