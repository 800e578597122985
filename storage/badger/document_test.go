package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/candidly/candex/core"
	"github.com/candidly/candex/storage"
)

func TestDocumentBasics(t *testing.T) {
	docRepo, profileRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		profileRepo.Close()
		docRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	doc := &core.Document{
		Filename:    "resume.pdf",
		Fingerprint: "abc123",
		Status:      core.StatusValidating,
	}

	added, err := docRepo.AddDocument(ctx, doc)
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	if added.Id == 0 {
		t.Fatal("Expected non-zero ID")
	}
	if added.InsertedAt.IsZero() {
		t.Fatal("Expected InsertedAt to be set")
	}

	retrieved, err := docRepo.GetDocument(ctx, added.Id)
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	if retrieved.Filename != "resume.pdf" {
		t.Fatalf("Expected 'resume.pdf', got '%s'", retrieved.Filename)
	}
	if retrieved.Status != core.StatusValidating {
		t.Fatalf("Expected status VALIDATING, got %s", retrieved.Status)
	}
}

func TestDocumentFingerprintLookup(t *testing.T) {
	docRepo, profileRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { profileRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	doc := &core.Document{
		Filename:    "resume.pdf",
		Fingerprint: "fp-1",
		Status:      core.StatusValidating,
	}
	added, err := docRepo.AddDocument(ctx, doc)
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	found, err := docRepo.FindByFingerprint(ctx, "fp-1")
	if err != nil {
		t.Fatalf("Failed to find by fingerprint: %v", err)
	}
	if found.Id != added.Id {
		t.Fatalf("Expected ID %d, got %d", added.Id, found.Id)
	}

	_, err = docRepo.FindByFingerprint(ctx, "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	// Same fingerprint on a second document is a duplicate
	dup := &core.Document{
		Filename:    "copy.pdf",
		Fingerprint: "fp-1",
		Status:      core.StatusValidating,
	}
	_, err = docRepo.AddDocument(ctx, dup)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestDocumentUpdate(t *testing.T) {
	docRepo, profileRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { profileRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	doc, err := docRepo.AddDocument(ctx, &core.Document{
		Filename: "resume.pdf",
		Status:   core.StatusValidating,
	})
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	doc.Status = core.StatusExtractingStandard
	doc.ExtractedText = "some text"
	updated, err := docRepo.UpdateDocument(ctx, doc)
	if err != nil {
		t.Fatalf("Failed to update document: %v", err)
	}
	if updated.UpdatedAt.Before(updated.InsertedAt) {
		t.Fatal("Expected UpdatedAt >= InsertedAt")
	}

	retrieved, err := docRepo.GetDocument(ctx, doc.Id)
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	if retrieved.Status != core.StatusExtractingStandard {
		t.Fatalf("Expected status EXTRACTING_STANDARD, got %s", retrieved.Status)
	}

	// Updating a missing document fails
	missing := &core.Document{Id: 9999, Filename: "x.pdf", Status: core.StatusValidating}
	_, err = docRepo.UpdateDocument(ctx, missing)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestDocumentDelete(t *testing.T) {
	docRepo, profileRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { profileRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	doc, err := docRepo.AddDocument(ctx, &core.Document{
		Filename:    "resume.pdf",
		Fingerprint: "fp-del",
		Status:      core.StatusProcessed,
	})
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	if err := docRepo.DeleteDocument(ctx, doc.Id); err != nil {
		t.Fatalf("Failed to delete document: %v", err)
	}

	_, err = docRepo.GetDocument(ctx, doc.Id)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	// Fingerprint index entry is cleaned up too
	_, err = docRepo.FindByFingerprint(ctx, "fp-del")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	if err := docRepo.DeleteDocument(ctx, doc.Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on double delete, got %v", err)
	}
}

func TestDocumentQueries(t *testing.T) {
	docRepo, profileRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { profileRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	docs := []*core.Document{
		{Filename: "a.pdf", Fingerprint: "fa", Status: core.StatusProcessed},
		{Filename: "b.pdf", Fingerprint: "fb", Status: core.StatusAwaitingVisionDecision},
		{Filename: "c.pdf", Fingerprint: "fc", Status: core.StatusProcessed, IndexPending: true},
	}
	for _, d := range docs {
		if _, err := docRepo.AddDocument(ctx, d); err != nil {
			t.Fatalf("Failed to add document: %v", err)
		}
	}

	all, err := docRepo.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("Failed to list documents: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 documents, got %d", len(all))
	}
	// ID order
	for i := 1; i < len(all); i++ {
		if all[i].Id <= all[i-1].Id {
			t.Fatalf("Expected IDs in ascending order, got %d after %d", all[i].Id, all[i-1].Id)
		}
	}

	awaiting, err := docRepo.FindByStatus(ctx, core.StatusAwaitingVisionDecision)
	if err != nil {
		t.Fatalf("Failed to find by status: %v", err)
	}
	if len(awaiting) != 1 || awaiting[0].Filename != "b.pdf" {
		t.Fatalf("Expected only b.pdf awaiting vision, got %v", awaiting)
	}

	pending, err := docRepo.FindIndexPending(ctx)
	if err != nil {
		t.Fatalf("Failed to find index pending: %v", err)
	}
	if len(pending) != 1 || pending[0].Filename != "c.pdf" {
		t.Fatalf("Expected only c.pdf index pending, got %v", pending)
	}
}
