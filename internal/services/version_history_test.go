package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/styledesk/styledesk/internal/models"
	"github.com/styledesk/styledesk/pkg/response"
)

func TestBumpPatch_Valid(t *testing.T) {
	cases := map[string]string{
		"1.0.0":    "1.0.1",
		"1.2.3":    "1.2.4",
		"0.0.0":    "0.0.1",
		"10.20.99": "10.20.100",
	}

	for in, want := range cases {
		got, err := bumpPatch(in)
		if err != nil {
			t.Errorf("bumpPatch(%q): unexpected error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("bumpPatch(%q) = %q, expected %q", in, got, want)
		}
	}
}

func TestBumpPatch_Malformed(t *testing.T) {
	cases := []string{
		"",
		"1.0",
		"1.0.0.0",
		"1.0.x",
		"v1.0.0",
		"1.0.-1",
		"1.0.01", // leading zero
		"1..0",
		"a.b.c",
	}

	for _, in := range cases {
		if _, err := bumpPatch(in); err == nil {
			t.Errorf("bumpPatch(%q) should fail", in)
		}
	}
}

func TestVersionService_CreateVersionBumpsPatch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewVersionService(db)

	entry, err := svc.CreateVersion(&CreateVersionRequest{Changes: "tightened spacing scale"}, "alice")
	if err != nil {
		t.Fatalf("CreateVersion: %v", err)
	}

	if entry.Version != "1.0.1" {
		t.Errorf("entry Version = %q, expected %q", entry.Version, "1.0.1")
	}
	if entry.Changes != "tightened spacing scale" {
		t.Errorf("Changes = %q", entry.Changes)
	}
	if entry.CreatedBy != "alice" {
		t.Errorf("CreatedBy = %q, expected %q", entry.CreatedBy, "alice")
	}
	if entry.Snapshot == "" {
		t.Error("Snapshot should hold the serialized config")
	}

	var cfg models.StyleGuideConfig
	if err := db.First(&cfg).Error; err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if cfg.Version != "1.0.1" {
		t.Errorf("config Version = %q, expected %q", cfg.Version, "1.0.1")
	}

	var count int64
	db.Model(&models.VersionHistory{}).Count(&count)
	if count != 1 {
		t.Errorf("history rows = %d, expected 1", count)
	}
}

func TestVersionService_CreateVersionEmptyChangesRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewVersionService(db)

	_, err := svc.CreateVersion(&CreateVersionRequest{Changes: "   "}, "alice")
	if err == nil {
		t.Fatal("blank changes description should be rejected")
	}
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %v", err)
	}

	// Nothing may be written on the rejected path.
	var count int64
	db.Model(&models.VersionHistory{}).Count(&count)
	if count != 0 {
		t.Errorf("history rows = %d after rejected request, expected 0", count)
	}
	var cfg models.StyleGuideConfig
	if err := db.First(&cfg).Error; err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if cfg.Version != "1.0.0" {
		t.Errorf("config Version = %q after rejected request, expected %q", cfg.Version, "1.0.0")
	}
}

func TestVersionService_CreateVersionMalformedStoredVersion(t *testing.T) {
	db := setupTestDB(t)
	svc := NewVersionService(db)

	if err := db.Model(&models.StyleGuideConfig{}).
		Where("1 = 1").
		Update("version", "not-semver").Error; err != nil {
		t.Fatalf("corrupt stored version: %v", err)
	}

	_, err := svc.CreateVersion(&CreateVersionRequest{Changes: "anything"}, "alice")
	if err == nil {
		t.Fatal("malformed stored version should be rejected")
	}
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %v", err)
	}

	var count int64
	db.Model(&models.VersionHistory{}).Count(&count)
	if count != 0 {
		t.Errorf("history rows = %d, expected 0", count)
	}
}
