// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.TextIntel,
// ai.PageReader and ai.Provider for use in unit tests. The mocks allow tests
// to run without external AI service dependencies and enable controlled,
// deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockIntel := mock.NewMockTextIntel()
//	mockIntel.StructureProfileFunc = func(ctx context.Context, text string) (*ai.ProfileFields, error) {
//	    return &ai.ProfileFields{FullName: "Ada Lovelace"}, nil
//	}
//
//	// Check call counts
//	count := mockIntel.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockTextIntel: Echoes rewrites, derives simple profile fields from words
//   - MockPageReader: Returns a placeholder transcription per page
//   - MockProvider: Aggregates the mock services above
package mock
