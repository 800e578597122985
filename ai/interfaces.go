package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector has the deployment's fixed dimension.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in the same order as
	// the input texts. Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// TextIntel provides the language-model capabilities of the Text
// Intelligence Service. All calls are synchronous and cancellable through
// the context; they are never retried internally, retrying is the
// caller's decision. Implementations must be thread-safe.
type TextIntel interface {
	// Rewrite reformats extracted résumé text into the fixed section
	// layout (name, title, skills, experience blocks, education blocks).
	// Absent sections are represented as empty, never omitted.
	Rewrite(ctx context.Context, text string) (string, error)

	// StructureProfile converts rewritten text into structured profile
	// fields. The result is parsed and validated, not trusted: malformed
	// output is rejected with an error.
	StructureProfile(ctx context.Context, text string) (*ProfileFields, error)

	// ExpandQuery turns a free-text recruiter query into a denser
	// profile-shaped string that better matches the embedding space the
	// indexed search documents occupy.
	ExpandQuery(ctx context.Context, query string) (string, error)

	// ExtractCriticalKeywords identifies query terms that must appear
	// literally in a matching profile, normalized to lower-case canonical
	// forms. Returns an empty slice when nothing qualifies.
	ExtractCriticalKeywords(ctx context.Context, query string) ([]string, error)
}

// PageReader transcribes a rendered document page image into text.
// Used by the vision extraction fallback. Implementations must be
// thread-safe for concurrent use.
type PageReader interface {
	// ReadPage returns the text visible in the given PNG-encoded page
	// image. An empty string means the page carried no readable text.
	ReadPage(ctx context.Context, image []byte) (string, error)
}

// Provider aggregates the Text Intelligence Service capabilities for
// convenient initialization and lifecycle management.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// TextIntel returns the language-model service.
	TextIntel() TextIntel

	// PageReader returns the vision page-reading service.
	PageReader() PageReader

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
