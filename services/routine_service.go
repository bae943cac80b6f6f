package services

import (
	"fmt"

	"github.com/agenciadecir/gympro/models"

	"gorm.io/gorm"
)

// A routine holds at most seven workout days.
const MaxWorkoutDays = 7

type RoutineService struct {
	db *gorm.DB
}

func NewRoutineService(db *gorm.DB) *RoutineService {
	return &RoutineService{db: db}
}

type ExerciseInput struct {
	Name        string  `json:"name"`
	MuscleGroup string  `json:"muscleGroup"`
	Sets        int     `json:"sets"`
	Reps        string  `json:"reps"`
	Weight      float64 `json:"weight"`
	WeightUnit  string  `json:"weightUnit"`
	Notes       string  `json:"notes"`
}

type WorkoutDayInput struct {
	Name      string          `json:"name"`
	DayNumber int             `json:"dayNumber"`
	Exercises []ExerciseInput `json:"exercises"`
}

type CreateRoutineInput struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Days        []WorkoutDayInput `json:"days"`
}

// UpdateRoutineInput enumerates every mutable routine field.
type UpdateRoutineInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
	IsArchived  *bool   `json:"isArchived"`
}

type AddDayInput struct {
	RoutineID uint   `json:"routineId"`
	Name      string `json:"name"`
	DayNumber int    `json:"dayNumber"`
}

type UpdateDayInput struct {
	Name      *string `json:"name"`
	DayNumber *int    `json:"dayNumber"`
}

type AddExerciseInput struct {
	WorkoutDayID uint    `json:"workoutDayId"`
	Name         string  `json:"name"`
	MuscleGroup  string  `json:"muscleGroup"`
	Sets         int     `json:"sets"`
	Reps         string  `json:"reps"`
	Weight       float64 `json:"weight"`
	WeightUnit   string  `json:"weightUnit"`
	Notes        string  `json:"notes"`
}

type UpdateExerciseInput struct {
	Name        *string  `json:"name"`
	MuscleGroup *string  `json:"muscleGroup"`
	Sets        *int     `json:"sets"`
	Reps        *string  `json:"reps"`
	Weight      *float64 `json:"weight"`
	WeightUnit  *string  `json:"weightUnit"`
	Notes       *string  `json:"notes"`
	Order       *int     `json:"order"`
}

func routinePreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Days", func(db *gorm.DB) *gorm.DB { return db.Order("day_number ASC") }).
		Preload("Days.Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("exercise_order ASC") })
}

func (s *RoutineService) CreateRoutine(userID uint, in CreateRoutineInput) (*models.Routine, error) {
	if in.Name == "" {
		return nil, ErrInvalidInput
	}
	if len(in.Days) > MaxWorkoutDays {
		return nil, ErrLimitExceeded
	}

	routine := &models.Routine{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		IsActive:    true,
	}
	for i, d := range in.Days {
		day := models.WorkoutDay{
			Name:      d.Name,
			DayNumber: d.DayNumber,
		}
		if day.DayNumber == 0 {
			day.DayNumber = i + 1
		}
		if day.Name == "" {
			day.Name = fmt.Sprintf("Day %d", day.DayNumber)
		}
		for j, ex := range d.Exercises {
			e := newExercise(ex)
			e.Order = j + 1
			day.Exercises = append(day.Exercises, e)
		}
		routine.Days = append(routine.Days, day)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(routine).Error; err != nil {
			return err
		}
		return setActiveRoutineTx(tx, userID, routine.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.GetRoutine(userID, routine.ID)
}

func (s *RoutineService) ListRoutines(userID uint, archived bool) ([]models.Routine, error) {
	var routines []models.Routine
	err := routinePreloads(s.db).
		Where("user_id = ? AND is_archived = ?", userID, archived).
		Order("created_at DESC").
		Find(&routines).Error
	return routines, err
}

func (s *RoutineService) GetRoutine(userID, routineID uint) (*models.Routine, error) {
	var routine models.Routine
	err := routinePreloads(s.db).
		Where("id = ? AND user_id = ?", routineID, userID).
		First(&routine).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &routine, nil
}

func (s *RoutineService) UpdateRoutine(userID, routineID uint, in UpdateRoutineInput) (*models.Routine, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var routine models.Routine
		if err := tx.Where("id = ? AND user_id = ?", routineID, userID).First(&routine).Error; err != nil {
			return notFoundOr(err)
		}

		if in.Name != nil {
			routine.Name = *in.Name
		}
		if in.Description != nil {
			routine.Description = *in.Description
		}
		if err := tx.Save(&routine).Error; err != nil {
			return err
		}

		switch {
		case in.IsArchived != nil && *in.IsArchived:
			return archiveRoutineTx(tx, userID, routineID)
		case in.IsActive != nil && *in.IsActive:
			return setActiveRoutineTx(tx, userID, routineID)
		case in.IsActive != nil && !*in.IsActive && routine.IsActive:
			return deactivateRoutineTx(tx, userID, routineID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetRoutine(userID, routineID)
}

func (s *RoutineService) DeleteRoutine(userID, routineID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var routine models.Routine
		if err := tx.Where("id = ? AND user_id = ?", routineID, userID).First(&routine).Error; err != nil {
			return notFoundOr(err)
		}

		if err := clearRoutinePointerTx(tx, userID, routineID); err != nil {
			return err
		}

		dayIDs := tx.Model(&models.WorkoutDay{}).Select("id").Where("routine_id = ?", routineID)
		if err := tx.Where("workout_day_id IN (?)", dayIDs).Delete(&models.Exercise{}).Error; err != nil {
			return err
		}
		if err := tx.Where("routine_id = ?", routineID).Delete(&models.WorkoutDay{}).Error; err != nil {
			return err
		}
		return tx.Delete(&routine).Error
	})
}

// SetAnalysis stores an AI-generated review on the routine.
func (s *RoutineService) SetAnalysis(userID, routineID uint, analysis string) error {
	res := s.db.Model(&models.Routine{}).
		Where("id = ? AND user_id = ?", routineID, userID).
		Update("ai_analysis", analysis)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RoutineService) AddWorkoutDay(userID uint, in AddDayInput) (*models.WorkoutDay, error) {
	if in.RoutineID == 0 {
		return nil, ErrInvalidInput
	}

	var day models.WorkoutDay
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var routine models.Routine
		if err := tx.Where("id = ? AND user_id = ?", in.RoutineID, userID).First(&routine).Error; err != nil {
			return notFoundOr(err)
		}

		var count int64
		if err := tx.Model(&models.WorkoutDay{}).Where("routine_id = ?", in.RoutineID).Count(&count).Error; err != nil {
			return err
		}
		if count >= MaxWorkoutDays {
			return ErrLimitExceeded
		}

		day = models.WorkoutDay{
			RoutineID: in.RoutineID,
			Name:      in.Name,
			DayNumber: in.DayNumber,
		}
		if day.DayNumber == 0 {
			day.DayNumber = int(count) + 1
		}
		if day.Name == "" {
			day.Name = fmt.Sprintf("Day %d", int(count)+1)
		}
		return tx.Create(&day).Error
	})
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (s *RoutineService) UpdateWorkoutDay(userID, dayID uint, in UpdateDayInput) (*models.WorkoutDay, error) {
	var day models.WorkoutDay
	err := s.db.Transaction(func(tx *gorm.DB) error {
		d, err := dayOwnedBy(tx, userID, dayID)
		if err != nil {
			return err
		}
		day = *d

		if in.Name != nil {
			day.Name = *in.Name
		}
		if in.DayNumber != nil {
			day.DayNumber = *in.DayNumber
		}
		return tx.Save(&day).Error
	})
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (s *RoutineService) DeleteWorkoutDay(userID, dayID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := dayOwnedBy(tx, userID, dayID); err != nil {
			return err
		}
		if err := tx.Where("workout_day_id = ?", dayID).Delete(&models.Exercise{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.WorkoutDay{}, dayID).Error
	})
}

func newExercise(in ExerciseInput) models.Exercise {
	e := models.Exercise{
		Name:        in.Name,
		MuscleGroup: in.MuscleGroup,
		Sets:        in.Sets,
		Reps:        in.Reps,
		Weight:      in.Weight,
		WeightUnit:  in.WeightUnit,
		Notes:       in.Notes,
	}
	if e.WeightUnit == "" {
		e.WeightUnit = "kg"
	}
	return e
}

func (s *RoutineService) AddExercise(userID uint, in AddExerciseInput) (*models.Exercise, error) {
	if in.WorkoutDayID == 0 || in.Name == "" {
		return nil, ErrInvalidInput
	}

	exercise := newExercise(ExerciseInput{
		Name:        in.Name,
		MuscleGroup: in.MuscleGroup,
		Sets:        in.Sets,
		Reps:        in.Reps,
		Weight:      in.Weight,
		WeightUnit:  in.WeightUnit,
		Notes:       in.Notes,
	})

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := dayOwnedBy(tx, userID, in.WorkoutDayID); err != nil {
			return err
		}

		// New exercises go to the end: order = current max + 1.
		var maxOrder int
		err := tx.Model(&models.Exercise{}).
			Where("workout_day_id = ?", in.WorkoutDayID).
			Select("COALESCE(MAX(exercise_order), 0)").
			Scan(&maxOrder).Error
		if err != nil {
			return err
		}

		exercise.WorkoutDayID = in.WorkoutDayID
		exercise.Order = maxOrder + 1
		return tx.Create(&exercise).Error
	})
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (s *RoutineService) UpdateExercise(userID, exerciseID uint, in UpdateExerciseInput) (*models.Exercise, error) {
	var exercise models.Exercise
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&exercise, exerciseID).Error; err != nil {
			return notFoundOr(err)
		}
		if _, err := dayOwnedBy(tx, userID, exercise.WorkoutDayID); err != nil {
			return err
		}

		if in.Name != nil {
			exercise.Name = *in.Name
		}
		if in.MuscleGroup != nil {
			exercise.MuscleGroup = *in.MuscleGroup
		}
		if in.Sets != nil {
			exercise.Sets = *in.Sets
		}
		if in.Reps != nil {
			exercise.Reps = *in.Reps
		}
		if in.Weight != nil {
			exercise.Weight = *in.Weight
		}
		if in.WeightUnit != nil {
			exercise.WeightUnit = *in.WeightUnit
		}
		if in.Notes != nil {
			exercise.Notes = *in.Notes
		}
		if in.Order != nil {
			exercise.Order = *in.Order
		}
		return tx.Save(&exercise).Error
	})
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (s *RoutineService) DeleteExercise(userID, exerciseID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var exercise models.Exercise
		if err := tx.First(&exercise, exerciseID).Error; err != nil {
			return notFoundOr(err)
		}
		if _, err := dayOwnedBy(tx, userID, exercise.WorkoutDayID); err != nil {
			return err
		}
		return tx.Delete(&exercise).Error
	})
}

// dayOwnedBy resolves the chain day -> routine -> user.
func dayOwnedBy(tx *gorm.DB, userID, dayID uint) (*models.WorkoutDay, error) {
	var day models.WorkoutDay
	if err := tx.First(&day, dayID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	var routine models.Routine
	if err := tx.Where("id = ? AND user_id = ?", day.RoutineID, userID).First(&routine).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &day, nil
}
