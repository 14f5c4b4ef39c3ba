package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/styledesk/styledesk/internal/models"
	"github.com/styledesk/styledesk/pkg/response"
)

func TestActiveSelection_SetActiveMissingToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewActiveSelectionService(db)

	err := svc.SetActive(models.CategorySpacing, 42, "alice")
	if err == nil {
		t.Fatal("activating a missing token should fail")
	}
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404 Not Found, got %v", err)
	}

	register, err := svc.GetRegister()
	if err != nil {
		t.Fatalf("GetRegister: %v", err)
	}
	if id := register.ActiveID(models.CategorySpacing); id != nil {
		t.Errorf("active spacing id = %d after failed SetActive, expected nil", *id)
	}
}

func TestActiveSelection_GetRegisterClearsStaleReference(t *testing.T) {
	db := setupTestDB(t)
	tokenSvc := NewTokenService(db, models.CategoryTypography)

	tok, err := tokenSvc.Create(&CreateTokenRequest{Name: "Serif"}, "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := tokenSvc.SetActive(tok.ID, "alice"); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	// Delete the row out from under the register, leaving a dangling id.
	if err := db.Table(models.CategoryTypography.Table).
		Where("id = ?", tok.ID).
		Delete(&models.DesignToken{}).Error; err != nil {
		t.Fatalf("delete token row: %v", err)
	}

	register, err := NewActiveSelectionService(db).GetRegister()
	if err != nil {
		t.Fatalf("GetRegister: %v", err)
	}
	if id := register.ActiveID(models.CategoryTypography); id != nil {
		t.Errorf("stale active typography id = %d, expected nil", *id)
	}

	// The cleared state must be persisted, not just reported.
	var raw models.StyleGuideConfig
	if err := db.First(&raw).Error; err != nil {
		t.Fatalf("reload config row: %v", err)
	}
	if raw.ActiveTypographyID != nil {
		t.Errorf("stale reference still persisted: %d", *raw.ActiveTypographyID)
	}
}

func TestActiveSelection_ClearActive(t *testing.T) {
	db := setupTestDB(t)
	tokenSvc := NewTokenService(db, models.CategoryAnimation)
	svc := NewActiveSelectionService(db)

	tok, err := tokenSvc.Create(&CreateTokenRequest{Name: "Fade"}, "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.SetActive(models.CategoryAnimation, tok.ID, "alice"); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	if err := svc.ClearActive(models.CategoryAnimation, "alice"); err != nil {
		t.Fatalf("ClearActive: %v", err)
	}

	register, err := svc.GetRegister()
	if err != nil {
		t.Fatalf("GetRegister: %v", err)
	}
	if id := register.ActiveID(models.CategoryAnimation); id != nil {
		t.Errorf("active animation id = %d after ClearActive, expected nil", *id)
	}
}
