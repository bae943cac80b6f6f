package services

import (
	"time"

	"github.com/agenciadecir/gympro/models"

	"gorm.io/gorm"
)

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

const (
	AdminActionBan         = "ban"
	AdminActionUnban       = "unban"
	AdminActionActivate    = "activate"
	AdminActionDeactivate  = "deactivate"
	AdminActionMakeAdmin   = "makeAdmin"
	AdminActionRemoveAdmin = "removeAdmin"
)

type ListUsersParams struct {
	Page   int
	Limit  int
	Search string
	Status string // "active", "banned", "" for all
}

type AdminUserRow struct {
	ID            uint       `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Role          string     `json:"role"`
	IsActive      bool       `json:"isActive"`
	BannedAt      *time.Time `json:"bannedAt"`
	LastLoginAt   *time.Time `json:"lastLoginAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	RoutineCount  int64      `json:"routineCount"`
	DietCount     int64      `json:"dietCount"`
	RecipeCount   int64      `json:"recipeCount"`
	ProgressCount int64      `json:"progressCount"`
}

// fillContentCounts loads how much content the user owns, per model.
func (s *AdminService) fillContentCounts(row *AdminUserRow) error {
	counts := []struct {
		dst   *int64
		model any
	}{
		{&row.RoutineCount, &models.Routine{}},
		{&row.DietCount, &models.Diet{}},
		{&row.RecipeCount, &models.Recipe{}},
		{&row.ProgressCount, &models.PhysicalProgress{}},
	}
	for _, c := range counts {
		if err := s.db.Model(c.model).Where("user_id = ?", row.ID).Count(c.dst).Error; err != nil {
			return err
		}
	}
	return nil
}

type UserListing struct {
	Users []AdminUserRow `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func (s *AdminService) ListUsers(p ListUsersParams) (*UserListing, error) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 50
	}

	q := s.db.Model(&models.User{})
	if p.Search != "" {
		like := "%" + p.Search + "%"
		q = q.Where("email LIKE ? OR name LIKE ?", like, like)
	}
	switch p.Status {
	case "active":
		q = q.Where("is_active = ? AND banned_at IS NULL", true)
	case "banned":
		q = q.Where("is_active = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var users []models.User
	err := q.Order("created_at DESC").
		Offset((p.Page - 1) * p.Limit).
		Limit(p.Limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	rows := make([]AdminUserRow, 0, len(users))
	for _, u := range users {
		row := AdminUserRow{
			ID:          u.ID,
			Email:       u.Email,
			Name:        u.Name,
			Role:        u.Role,
			IsActive:    u.IsActive,
			BannedAt:    u.BannedAt,
			LastLoginAt: u.LastLoginAt,
			CreatedAt:   u.CreatedAt,
		}
		if err := s.fillContentCounts(&row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return &UserListing{Users: rows, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

type AdminUserDetail struct {
	AdminUserRow
	UpdatedAt      time.Time                 `json:"updatedAt"`
	RecentRoutines []models.Routine          `json:"recentRoutines"`
	RecentProgress []models.PhysicalProgress `json:"recentProgress"`
}

func (s *AdminService) GetUser(userID uint) (*AdminUserDetail, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, notFoundOr(err)
	}

	detail := &AdminUserDetail{
		AdminUserRow: AdminUserRow{
			ID:          user.ID,
			Email:       user.Email,
			Name:        user.Name,
			Role:        user.Role,
			IsActive:    user.IsActive,
			BannedAt:    user.BannedAt,
			LastLoginAt: user.LastLoginAt,
			CreatedAt:   user.CreatedAt,
		},
		UpdatedAt: user.UpdatedAt,
	}
	if err := s.fillContentCounts(&detail.AdminUserRow); err != nil {
		return nil, err
	}

	if err := s.db.Where("user_id = ?", user.ID).Order("created_at DESC").Limit(5).Find(&detail.RecentRoutines).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("user_id = ?", user.ID).Order("date DESC").Limit(5).Find(&detail.RecentProgress).Error; err != nil {
		return nil, err
	}
	return detail, nil
}

// UpdateUser applies a moderation action. Admins may not modify themselves.
func (s *AdminService) UpdateUser(adminID, userID uint, action string) (*models.User, error) {
	if adminID == userID {
		return nil, ErrInvalidInput
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, notFoundOr(err)
	}

	var updates map[string]any
	switch action {
	case AdminActionBan:
		now := time.Now()
		updates = map[string]any{"is_active": false, "banned_at": now}
	case AdminActionUnban:
		updates = map[string]any{"is_active": true, "banned_at": nil}
	case AdminActionActivate:
		updates = map[string]any{"is_active": true}
	case AdminActionDeactivate:
		updates = map[string]any{"is_active": false}
	case AdminActionMakeAdmin:
		updates = map[string]any{"role": models.RoleAdmin}
	case AdminActionRemoveAdmin:
		updates = map[string]any{"role": models.RoleUser}
	default:
		return nil, ErrInvalidInput
	}

	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the account and everything it owns.
func (s *AdminService) DeleteUser(adminID, userID uint) error {
	if adminID == userID {
		return ErrInvalidInput
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return notFoundOr(err)
		}

		mealIDs := tx.Model(&models.Meal{}).Select("id").
			Where("diet_id IN (?)", tx.Model(&models.Diet{}).Select("id").Where("user_id = ?", userID))
		if err := tx.Where("meal_id IN (?)", mealIDs).Delete(&models.MealItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("diet_id IN (?)", tx.Model(&models.Diet{}).Select("id").Where("user_id = ?", userID)).
			Delete(&models.Meal{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Diet{}).Error; err != nil {
			return err
		}

		dayIDs := tx.Model(&models.WorkoutDay{}).Select("id").
			Where("routine_id IN (?)", tx.Model(&models.Routine{}).Select("id").Where("user_id = ?", userID))
		if err := tx.Where("workout_day_id IN (?)", dayIDs).Delete(&models.Exercise{}).Error; err != nil {
			return err
		}
		if err := tx.Where("routine_id IN (?)", tx.Model(&models.Routine{}).Select("id").Where("user_id = ?", userID)).
			Delete(&models.WorkoutDay{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Routine{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Recipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.PhysicalProgress{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

type AdminStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	ActiveUsers   int64 `json:"activeUsers"`
	BannedUsers   int64 `json:"bannedUsers"`
	AdminCount    int64 `json:"adminCount"`
	TotalRoutines int64 `json:"totalRoutines"`
	TotalDiets    int64 `json:"totalDiets"`
	TotalRecipes  int64 `json:"totalRecipes"`
	TotalProgress int64 `json:"totalProgress"`
	RecentSignups int64 `json:"recentSignups"` // last 7 days
	RecentLogins  int64 `json:"recentLogins"`  // last 7 days
}

func (s *AdminService) Stats() (*AdminStats, error) {
	var st AdminStats
	weekAgo := time.Now().AddDate(0, 0, -7)

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&st.TotalUsers, s.db.Model(&models.User{})},
		{&st.ActiveUsers, s.db.Model(&models.User{}).Where("is_active = ? AND banned_at IS NULL", true)},
		{&st.BannedUsers, s.db.Model(&models.User{}).Where("is_active = ?", false)},
		{&st.AdminCount, s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin)},
		{&st.TotalRoutines, s.db.Model(&models.Routine{})},
		{&st.TotalDiets, s.db.Model(&models.Diet{})},
		{&st.TotalRecipes, s.db.Model(&models.Recipe{})},
		{&st.TotalProgress, s.db.Model(&models.PhysicalProgress{})},
		{&st.RecentSignups, s.db.Model(&models.User{}).Where("created_at >= ?", weekAgo)},
		{&st.RecentLogins, s.db.Model(&models.User{}).Where("last_login_at >= ?", weekAgo)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	return &st, nil
}
