package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/candidly/candex/core"
	"github.com/candidly/candex/storage"
)

func TestProfileBasics(t *testing.T) {
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

	profile := &core.CandidateProfile{
		DocumentId:   42,
		FullName:     "Ada Lovelace",
		CurrentTitle: "Software Engineer",
		PrimarySkill: "python",
		KeySkills:    []string{"python", "django"},
	}

	stored, err := profileRepo.PutProfile(ctx, profile)
	if err != nil {
		t.Fatalf("Failed to put profile: %v", err)
	}
	if stored.InsertedAt.IsZero() {
		t.Fatal("Expected InsertedAt to be set")
	}

	retrieved, err := profileRepo.GetProfile(ctx, 42)
	if err != nil {
		t.Fatalf("Failed to get profile: %v", err)
	}
	if retrieved.FullName != "Ada Lovelace" {
		t.Fatalf("Expected 'Ada Lovelace', got '%s'", retrieved.FullName)
	}
	if len(retrieved.KeySkills) != 2 {
		t.Fatalf("Expected 2 key skills, got %d", len(retrieved.KeySkills))
	}
}

func TestProfilePutReplaces(t *testing.T) {
	docRepo, profileRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { profileRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = profileRepo.PutProfile(ctx, &core.CandidateProfile{
		DocumentId: 7,
		FullName:   "First Version",
	})
	if err != nil {
		t.Fatalf("Failed to put profile: %v", err)
	}

	_, err = profileRepo.PutProfile(ctx, &core.CandidateProfile{
		DocumentId: 7,
		FullName:   "Second Version",
	})
	if err != nil {
		t.Fatalf("Failed to replace profile: %v", err)
	}

	retrieved, err := profileRepo.GetProfile(ctx, 7)
	if err != nil {
		t.Fatalf("Failed to get profile: %v", err)
	}
	if retrieved.FullName != "Second Version" {
		t.Fatalf("Expected 'Second Version', got '%s'", retrieved.FullName)
	}
}

func TestProfileValidation(t *testing.T) {
	docRepo, profileRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { profileRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	// Missing full name is rejected
	_, err = profileRepo.PutProfile(ctx, &core.CandidateProfile{DocumentId: 1})
	if err == nil {
		t.Fatal("Expected error for profile without full name")
	}
}

func TestProfileDeleteAndMissing(t *testing.T) {
	docRepo, profileRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { profileRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = profileRepo.PutProfile(ctx, &core.CandidateProfile{
		DocumentId: 3,
		FullName:   "To Delete",
	})
	if err != nil {
		t.Fatalf("Failed to put profile: %v", err)
	}

	if err := profileRepo.DeleteProfile(ctx, 3); err != nil {
		t.Fatalf("Failed to delete profile: %v", err)
	}

	_, err = profileRepo.GetProfile(ctx, 3)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	if err := profileRepo.DeleteProfile(ctx, 3); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on double delete, got %v", err)
	}

	// GetProfiles skips missing entries
	_, err = profileRepo.PutProfile(ctx, &core.CandidateProfile{DocumentId: 10, FullName: "Kept"})
	if err != nil {
		t.Fatalf("Failed to put profile: %v", err)
	}
	profiles, err := profileRepo.GetProfiles(ctx, 3, 10, 99)
	if err != nil {
		t.Fatalf("Failed to get profiles: %v", err)
	}
	if len(profiles) != 1 || profiles[0].FullName != "Kept" {
		t.Fatalf("Expected only the kept profile, got %v", profiles)
	}
}
