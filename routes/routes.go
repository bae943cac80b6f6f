package routes

import (
	"github.com/agenciadecir/gympro/config"
	"github.com/agenciadecir/gympro/controllers"
	"github.com/agenciadecir/gympro/middlewares"
	"github.com/agenciadecir/gympro/services"
	"github.com/agenciadecir/gympro/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter builds the service graph and mounts every route. All handlers
// receive their dependencies here; nothing reads package-level state.
func SetupRouter(db *gorm.DB, hub *services.RealtimeHub, uploader *utils.S3Uploader, cfg *config.Config) *gin.Engine {
	authSvc := services.NewAuthService(db)
	userSvc := services.NewUserService(db)
	ledgerSvc := services.NewLedgerService(db, hub)
	routineSvc := services.NewRoutineService(db)
	activationSvc := services.NewActivationService(db)
	recipeSvc := services.NewRecipeService(db)
	progressSvc := services.NewProgressService(db, uploader, hub)
	adminSvc := services.NewAdminService(db)
	aiSvc := services.NewAIService(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel)

	authCtl := controllers.NewAuthController(authSvc)
	userCtl := controllers.NewUserController(userSvc)
	dietCtl := controllers.NewDietController(ledgerSvc)
	mealCtl := controllers.NewMealController(ledgerSvc)
	itemCtl := controllers.NewMealItemController(ledgerSvc)
	routineCtl := controllers.NewRoutineController(routineSvc)
	dayCtl := controllers.NewDayController(routineSvc)
	exerciseCtl := controllers.NewExerciseController(routineSvc)
	dietActCtl := controllers.NewActivationController(activationSvc, services.EntityDiet)
	routineActCtl := controllers.NewActivationController(activationSvc, services.EntityRoutine)
	recipeCtl := controllers.NewRecipeController(recipeSvc)
	progressCtl := controllers.NewProgressController(progressSvc)
	adminCtl := controllers.NewAdminController(adminSvc)
	aiCtl := controllers.NewAIController(aiSvc, routineSvc, recipeSvc, ledgerSvc)
	realtimeCtl := controllers.NewRealtimeController(hub)

	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
		auth.POST("/check-status", authCtl.CheckStatus)
	}

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/user/profile", userCtl.GetProfile)

		api.GET("/diets", dietCtl.ListDiets)
		api.POST("/diets", dietCtl.CreateDiet)
		api.GET("/diets/:id", dietCtl.GetDiet)
		api.PUT("/diets/:id", dietCtl.UpdateDiet)
		api.DELETE("/diets/:id", dietCtl.DeleteDiet)
		api.POST("/diets/:id/activate", dietActCtl.Activate)
		api.POST("/diets/:id/archive", dietActCtl.Archive)
		api.POST("/diets/:id/reactivate", dietActCtl.Reactivate)

		api.PUT("/meals", mealCtl.UpsertMeal)
		api.POST("/meal-items", itemCtl.AddItem)
		api.DELETE("/meal-items/:id", itemCtl.DeleteItem)

		api.GET("/routines", routineCtl.ListRoutines)
		api.POST("/routines", routineCtl.CreateRoutine)
		api.GET("/routines/:id", routineCtl.GetRoutine)
		api.PUT("/routines/:id", routineCtl.UpdateRoutine)
		api.DELETE("/routines/:id", routineCtl.DeleteRoutine)
		api.POST("/routines/:id/activate", routineActCtl.Activate)
		api.POST("/routines/:id/archive", routineActCtl.Archive)
		api.POST("/routines/:id/reactivate", routineActCtl.Reactivate)

		api.POST("/workout-days", dayCtl.AddDay)
		api.PUT("/workout-days/:id", dayCtl.UpdateDay)
		api.DELETE("/workout-days/:id", dayCtl.DeleteDay)

		api.POST("/exercises", exerciseCtl.AddExercise)
		api.PUT("/exercises/:id", exerciseCtl.UpdateExercise)
		api.DELETE("/exercises/:id", exerciseCtl.DeleteExercise)

		api.GET("/recipes", recipeCtl.ListRecipes)
		api.POST("/recipes", recipeCtl.CreateRecipe)
		api.GET("/recipes/:id", recipeCtl.GetRecipe)
		api.PUT("/recipes/:id", recipeCtl.UpdateRecipe)
		api.DELETE("/recipes/:id", recipeCtl.DeleteRecipe)

		api.GET("/progress", progressCtl.ListProgress)
		api.POST("/progress", progressCtl.CreateProgress)
		api.PUT("/progress/:id", progressCtl.UpdateProgress)
		api.DELETE("/progress/:id", progressCtl.DeleteProgress)

		api.GET("/ws", realtimeCtl.EventsWS)
	}

	ai := api.Group("/ai")
	ai.Use(middlewares.RateLimitMiddleware(cfg.AIRateRPM))
	{
		ai.POST("/analyze-meal", aiCtl.AnalyzeMeal)
		ai.POST("/analyze-diet", aiCtl.AnalyzeDiet)
		ai.POST("/generate-recipe", aiCtl.GenerateRecipe)
		ai.POST("/analyze-routine", aiCtl.AnalyzeRoutine)
	}

	admin := api.Group("/admin")
	admin.Use(middlewares.AdminMiddleware(db))
	{
		admin.GET("/users", adminCtl.ListUsers)
		admin.GET("/users/:id", adminCtl.GetUser)
		admin.PATCH("/users/:id", adminCtl.UpdateUser)
		admin.DELETE("/users/:id", adminCtl.DeleteUser)
		admin.GET("/stats", adminCtl.Stats)
	}

	return r
}
