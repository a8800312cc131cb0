package service

import (
	"testing"
	"time"

	"github.com/inmovement/patient-portal/internal/core/domain"
	"github.com/inmovement/patient-portal/internal/core/ports"
)

func TestEditsDocument_OnlyEditedFields(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	doc := editsDocument(domain.ProfileEdits{Avatar: strPtr("file:///a.png")}, at)

	if len(doc) != 2 || doc["avatar"] != "file:///a.png" || doc["modifiedAt"] != at {
		t.Fatalf("unexpected partial document: %v", doc)
	}
}

func TestPatientFromDocument_LegacyShapes(t *testing.T) {
	rec := patientFromDocument(ports.Document{
		"_id":      "uid-3",
		"email":    "x@y.z",
		"enabled":  "true",
		"symptoms": []any{"a", "b"},
	})

	if rec.ID != "uid-3" {
		t.Errorf("expected id from _id, got %q", rec.ID)
	}
	if !rec.Enabled {
		t.Error("string enabled flag not honoured")
	}
	if rec.Gender != domain.GenderUnset {
		t.Errorf("missing gender should map to unset, got %q", rec.Gender)
	}
	if rec.DateOfBirth != nil {
		t.Error("missing birth date should stay nil")
	}
	if len(rec.Symptoms) != 2 || rec.TherapeuticPlans == nil {
		t.Errorf("lists not mapped: %v / %v", rec.Symptoms, rec.TherapeuticPlans)
	}
}
