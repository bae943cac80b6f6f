package services

import (
	"github.com/agenciadecir/gympro/models"

	"gorm.io/gorm"
)

const (
	EntityRoutine = "routine"
	EntityDiet    = "diet"
)

// ActivationService enforces the single-active invariant: at most one routine
// and one diet may be active per user, referenced by the user's pointer
// fields. Activation, deactivation of the previous entity and the pointer
// update happen in one transaction.
type ActivationService struct {
	db *gorm.DB
}

func NewActivationService(db *gorm.DB) *ActivationService {
	return &ActivationService{db: db}
}

func (s *ActivationService) SetActive(userID uint, entityType string, entityID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		switch entityType {
		case EntityRoutine:
			return setActiveRoutineTx(tx, userID, entityID)
		case EntityDiet:
			return setActiveDietTx(tx, userID, entityID)
		default:
			return ErrInvalidInput
		}
	})
}

// Archive retires an entity: archived and active are mutually exclusive, and
// the user's pointer is cleared when it referenced the archived entity.
func (s *ActivationService) Archive(userID uint, entityType string, entityID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		switch entityType {
		case EntityRoutine:
			return archiveRoutineTx(tx, userID, entityID)
		case EntityDiet:
			return archiveDietTx(tx, userID, entityID)
		default:
			return ErrInvalidInput
		}
	})
}

// Reactivate brings an archived entity back as the active one. Same swap as
// SetActive, additionally clearing the archived flag.
func (s *ActivationService) Reactivate(userID uint, entityType string, entityID uint) error {
	return s.SetActive(userID, entityType, entityID)
}

func setActiveDietTx(tx *gorm.DB, userID, dietID uint) error {
	var diet models.Diet
	if err := tx.Where("id = ? AND user_id = ?", dietID, userID).First(&diet).Error; err != nil {
		return notFoundOr(err)
	}

	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		return err
	}

	// Deactivate the previously active diet so exactly one stays active.
	if user.ActiveDietID != nil && *user.ActiveDietID != dietID {
		err := tx.Model(&models.Diet{}).
			Where("id = ? AND user_id = ?", *user.ActiveDietID, userID).
			Update("is_active", false).Error
		if err != nil {
			return err
		}
	}

	err := tx.Model(&diet).Updates(map[string]any{
		"is_active":   true,
		"is_archived": false,
	}).Error
	if err != nil {
		return err
	}

	return tx.Model(&user).Update("active_diet_id", dietID).Error
}

func setActiveRoutineTx(tx *gorm.DB, userID, routineID uint) error {
	var routine models.Routine
	if err := tx.Where("id = ? AND user_id = ?", routineID, userID).First(&routine).Error; err != nil {
		return notFoundOr(err)
	}

	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		return err
	}

	if user.ActiveRoutineID != nil && *user.ActiveRoutineID != routineID {
		err := tx.Model(&models.Routine{}).
			Where("id = ? AND user_id = ?", *user.ActiveRoutineID, userID).
			Update("is_active", false).Error
		if err != nil {
			return err
		}
	}

	err := tx.Model(&routine).Updates(map[string]any{
		"is_active":   true,
		"is_archived": false,
	}).Error
	if err != nil {
		return err
	}

	return tx.Model(&user).Update("active_routine_id", routineID).Error
}

func archiveDietTx(tx *gorm.DB, userID, dietID uint) error {
	var diet models.Diet
	if err := tx.Where("id = ? AND user_id = ?", dietID, userID).First(&diet).Error; err != nil {
		return notFoundOr(err)
	}

	err := tx.Model(&diet).Updates(map[string]any{
		"is_archived": true,
		"is_active":   false,
	}).Error
	if err != nil {
		return err
	}

	return clearDietPointerTx(tx, userID, dietID)
}

func archiveRoutineTx(tx *gorm.DB, userID, routineID uint) error {
	var routine models.Routine
	if err := tx.Where("id = ? AND user_id = ?", routineID, userID).First(&routine).Error; err != nil {
		return notFoundOr(err)
	}

	err := tx.Model(&routine).Updates(map[string]any{
		"is_archived": true,
		"is_active":   false,
	}).Error
	if err != nil {
		return err
	}

	return clearRoutinePointerTx(tx, userID, routineID)
}

func deactivateDietTx(tx *gorm.DB, userID, dietID uint) error {
	err := tx.Model(&models.Diet{}).
		Where("id = ? AND user_id = ?", dietID, userID).
		Update("is_active", false).Error
	if err != nil {
		return err
	}
	return clearDietPointerTx(tx, userID, dietID)
}

func deactivateRoutineTx(tx *gorm.DB, userID, routineID uint) error {
	err := tx.Model(&models.Routine{}).
		Where("id = ? AND user_id = ?", routineID, userID).
		Update("is_active", false).Error
	if err != nil {
		return err
	}
	return clearRoutinePointerTx(tx, userID, routineID)
}

// clearDietPointerTx nulls the user's active pointer only when it references
// the given diet; pointers at other diets are left alone.
func clearDietPointerTx(tx *gorm.DB, userID, dietID uint) error {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		return err
	}
	if user.ActiveDietID == nil || *user.ActiveDietID != dietID {
		return nil
	}
	return tx.Model(&user).Update("active_diet_id", nil).Error
}

func clearRoutinePointerTx(tx *gorm.DB, userID, routineID uint) error {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		return err
	}
	if user.ActiveRoutineID == nil || *user.ActiveRoutineID != routineID {
		return nil
	}
	return tx.Model(&user).Update("active_routine_id", nil).Error
}
