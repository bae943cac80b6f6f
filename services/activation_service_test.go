package services

import (
	"errors"
	"testing"

	"github.com/agenciadecir/gympro/models"
)

func TestSetActiveSwapsPreviousDiet(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "act@test.com")
	svc := NewActivationService(db)

	d1 := models.Diet{UserID: user.ID, Name: "Diet 1"}
	d2 := models.Diet{UserID: user.ID, Name: "Diet 2"}
	if err := db.Create(&d1).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&d2).Error; err != nil {
		t.Fatal(err)
	}

	if err := svc.SetActive(user.ID, EntityDiet, d1.ID); err != nil {
		t.Fatalf("SetActive d1: %v", err)
	}
	if err := svc.SetActive(user.ID, EntityDiet, d2.ID); err != nil {
		t.Fatalf("SetActive d2: %v", err)
	}

	var prev models.Diet
	if err := db.First(&prev, d1.ID).Error; err != nil {
		t.Fatalf("reload d1: %v", err)
	}
	if prev.IsActive {
		t.Error("previous diet still active after swap")
	}
	var cur models.Diet
	if err := db.First(&cur, d2.ID).Error; err != nil {
		t.Fatalf("reload d2: %v", err)
	}
	if !cur.IsActive {
		t.Error("new diet not active")
	}

	var u models.User
	if err := db.First(&u, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if u.ActiveDietID == nil || *u.ActiveDietID != d2.ID {
		t.Errorf("active pointer = %v, want %d", u.ActiveDietID, d2.ID)
	}
}

func TestArchiveClearsOnlyMatchingPointer(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "act@test.com")
	svc := NewActivationService(db)

	active := models.Routine{UserID: user.ID, Name: "Active"}
	old := models.Routine{UserID: user.ID, Name: "Old"}
	if err := db.Create(&active).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&old).Error; err != nil {
		t.Fatal(err)
	}
	if err := svc.SetActive(user.ID, EntityRoutine, active.ID); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	// Archiving a non-active routine must leave the pointer alone.
	if err := svc.Archive(user.ID, EntityRoutine, old.ID); err != nil {
		t.Fatalf("Archive old: %v", err)
	}
	var u models.User
	if err := db.First(&u, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if u.ActiveRoutineID == nil || *u.ActiveRoutineID != active.ID {
		t.Errorf("pointer changed by archiving a non-active routine: %v", u.ActiveRoutineID)
	}

	// Archiving the active one clears it.
	if err := svc.Archive(user.ID, EntityRoutine, active.ID); err != nil {
		t.Fatalf("Archive active: %v", err)
	}
	var after models.User
	if err := db.First(&after, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if after.ActiveRoutineID != nil {
		t.Errorf("pointer = %d after archiving active routine, want nil", *after.ActiveRoutineID)
	}

	var got models.Routine
	if err := db.First(&got, active.ID).Error; err != nil {
		t.Fatalf("reload routine: %v", err)
	}
	if !got.IsArchived || got.IsActive {
		t.Errorf("archived routine state: archived=%v active=%v", got.IsArchived, got.IsActive)
	}
}

func TestReactivateArchivedDiet(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "act@test.com")
	svc := NewActivationService(db)

	d := models.Diet{UserID: user.ID, Name: "Comeback"}
	if err := db.Create(&d).Error; err != nil {
		t.Fatal(err)
	}
	if err := svc.SetActive(user.ID, EntityDiet, d.ID); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if err := svc.Archive(user.ID, EntityDiet, d.ID); err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if err := svc.Reactivate(user.ID, EntityDiet, d.ID); err != nil {
		t.Fatalf("Reactivate: %v", err)
	}

	var got models.Diet
	if err := db.First(&got, d.ID).Error; err != nil {
		t.Fatalf("reload diet: %v", err)
	}
	if !got.IsActive || got.IsArchived {
		t.Errorf("reactivated diet state: active=%v archived=%v", got.IsActive, got.IsArchived)
	}
	var u models.User
	if err := db.First(&u, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if u.ActiveDietID == nil || *u.ActiveDietID != d.ID {
		t.Errorf("pointer = %v, want %d", u.ActiveDietID, d.ID)
	}
}

func TestActivationOwnershipAndEntityType(t *testing.T) {
	db := newTestDB(t)
	owner := newTestUser(t, db, "owner@test.com")
	intruder := newTestUser(t, db, "intruder@test.com")
	svc := NewActivationService(db)

	d := models.Diet{UserID: owner.ID, Name: "Private"}
	if err := db.Create(&d).Error; err != nil {
		t.Fatal(err)
	}

	if err := svc.SetActive(intruder.ID, EntityDiet, d.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetActive as intruder = %v, want ErrNotFound", err)
	}
	if err := svc.SetActive(owner.ID, "workout", d.ID); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("SetActive with bad entity type = %v, want ErrInvalidInput", err)
	}
}
