package services

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/styledesk/styledesk/internal/models"
	"github.com/styledesk/styledesk/pkg/response"
)

func TestTokenService_CreateStartsAtVersionOne(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTokenService(db, models.CategorySpacing)

	first, err := svc.Create(&CreateTokenRequest{Name: "Compact"}, "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.ID == 0 {
		t.Error("Create should assign an id")
	}
	if first.Version != 1 {
		t.Errorf("new token Version = %d, expected 1", first.Version)
	}
	if first.CreatedBy != "alice" {
		t.Errorf("CreatedBy = %q, expected %q", first.CreatedBy, "alice")
	}

	second, err := svc.Create(&CreateTokenRequest{Name: "Roomy"}, "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if second.ID == first.ID {
		t.Errorf("ids should be unique, both are %d", first.ID)
	}
	if second.Version != 1 {
		t.Errorf("new token Version = %d, expected 1", second.Version)
	}
}

func TestTokenService_UpdateBumpsVersionAndTimestamp(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTokenService(db, models.CategoryColorScheme)

	created, err := svc.Create(&CreateTokenRequest{Name: "Dawn"}, "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	updated, err := svc.Update(created.ID, &UpdateTokenRequest{
		Name:            "Dusk",
		ExpectedVersion: 1,
	}, "bob")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Version != 2 {
		t.Errorf("Version = %d, expected 2", updated.Version)
	}
	if updated.Name != "Dusk" {
		t.Errorf("Name = %q, expected %q", updated.Name, "Dusk")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("UpdatedAt not bumped on update: before=%v after=%v",
			created.UpdatedAt, updated.UpdatedAt)
	}
	if updated.CreatedBy != "alice" {
		t.Errorf("CreatedBy changed on update: %q", updated.CreatedBy)
	}
	if d := updated.CreatedAt.Sub(created.CreatedAt); d < -time.Millisecond || d > time.Millisecond {
		t.Errorf("CreatedAt changed on update: before=%v after=%v",
			created.CreatedAt, updated.CreatedAt)
	}
}

func TestTokenService_UpdateStaleVersionConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTokenService(db, models.CategoryTypography)

	created, err := svc.Create(&CreateTokenRequest{Name: "Serif"}, "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Update(created.ID, &UpdateTokenRequest{Name: "Sans", ExpectedVersion: 1}, "alice"); err != nil {
		t.Fatalf("first Update: %v", err)
	}

	// Second editor still holds version 1.
	_, err = svc.Update(created.ID, &UpdateTokenRequest{Name: "Mono", ExpectedVersion: 1}, "bob")
	if err == nil {
		t.Fatal("stale expected_version should be rejected")
	}
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409 Conflict, got %v", err)
	}

	// The losing write must not have touched the row.
	current, err := svc.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if current.Version != 2 {
		t.Errorf("Version = %d, expected 2", current.Version)
	}
	if current.Name != "Sans" {
		t.Errorf("Name = %q, expected %q", current.Name, "Sans")
	}
}

func TestTokenService_UpdateMissingToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTokenService(db, models.CategoryAnimation)

	_, err := svc.Update(999, &UpdateTokenRequest{Name: "Snappy", ExpectedVersion: 1}, "alice")
	if err == nil {
		t.Fatal("updating a missing token should fail")
	}
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404 Not Found, got %v", err)
	}
}

func TestTokenService_DeleteActiveClearsRegister(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTokenService(db, models.CategoryShadow)

	tok, err := svc.Create(&CreateTokenRequest{Name: "Soft"}, "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.SetActive(tok.ID, "alice"); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	register, err := NewActiveSelectionService(db).GetRegister()
	if err != nil {
		t.Fatalf("GetRegister: %v", err)
	}
	if id := register.ActiveID(models.CategoryShadow); id == nil || *id != tok.ID {
		t.Fatalf("active shadow id = %v, expected %d", id, tok.ID)
	}

	if err := svc.Delete(tok.ID, "alice"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	register, err = NewActiveSelectionService(db).GetRegister()
	if err != nil {
		t.Fatalf("GetRegister after delete: %v", err)
	}
	if id := register.ActiveID(models.CategoryShadow); id != nil {
		t.Errorf("active shadow id = %d after deleting the active token, expected nil", *id)
	}
}

func TestTokenService_ListOrderedByName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTokenService(db, models.CategoryBorderRadius)

	for _, name := range []string{"Zeta", "Alpha", "Midnight"} {
		if _, err := svc.Create(&CreateTokenRequest{Name: name}, "alice"); err != nil {
			t.Fatalf("Create %q: %v", name, err)
		}
	}

	want := []string{"Alpha", "Midnight", "Zeta"}
	for round := 0; round < 2; round++ {
		list, err := svc.List()
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(list.Items) != len(want) {
			t.Fatalf("List returned %d items, expected %d", len(list.Items), len(want))
		}
		for i, item := range list.Items {
			if item.Name != want[i] {
				t.Errorf("round %d: item %d = %q, expected %q", round, i, item.Name, want[i])
			}
		}
		if list.ActiveID != nil {
			t.Errorf("ActiveID = %d with no selection, expected nil", *list.ActiveID)
		}
	}
}
