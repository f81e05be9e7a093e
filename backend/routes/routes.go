package routes

import (
	"tracker/backend/config"
	"tracker/backend/controllers"
	"tracker/backend/middleware"
	"tracker/backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, activity *services.ActivityService) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Dashboard and streak
	dashboardController := controllers.NewDashboardController(db, cfg, activity)
	app.Get("/api/dashboard", authMiddleware, dashboardController.GetDashboard)
	app.Get("/api/streak", authMiddleware, dashboardController.GetStreak)

	// Courses routes
	coursesController := controllers.NewCoursesController(db, cfg, activity)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", coursesController.GetCourses)
	courses.Post("/", coursesController.CreateCourse)
	courses.Get("/:id", coursesController.GetCourse)
	courses.Put("/:id", coursesController.UpdateCourse)
	courses.Delete("/:id", coursesController.DeleteCourse)

	// Projects routes
	projectsController := controllers.NewProjectsController(db, cfg, activity)
	projects := app.Group("/api/projects", authMiddleware)
	projects.Get("/", projectsController.GetProjects)
	projects.Post("/", projectsController.CreateProject)
	projects.Get("/:id", projectsController.GetProject)
	projects.Put("/:id", projectsController.UpdateProject)
	projects.Delete("/:id", projectsController.DeleteProject)

	// Certificates routes
	certificatesController := controllers.NewCertificatesController(db, cfg)
	certificates := app.Group("/api/certificates", authMiddleware)
	certificates.Get("/", certificatesController.GetCertificates)
	certificates.Post("/", certificatesController.CreateCertificate)
	certificates.Put("/:id", certificatesController.UpdateCertificate)
	certificates.Delete("/:id", certificatesController.DeleteCertificate)

	// Skills routes
	skillsController := controllers.NewSkillsController(db, cfg, activity)
	skills := app.Group("/api/skills", authMiddleware)
	skills.Get("/", skillsController.GetSkills)
	skills.Post("/", skillsController.CreateSkill)
	skills.Put("/:id", skillsController.UpdateSkill)
	skills.Delete("/:id", skillsController.DeleteSkill)

	// Goals routes
	goalsController := controllers.NewGoalsController(db, cfg, activity)
	goals := app.Group("/api/goals", authMiddleware)
	goals.Get("/", goalsController.GetGoals)
	goals.Post("/", goalsController.CreateGoal)
	goals.Put("/:id", goalsController.UpdateGoal)
	goals.Post("/:id/achieve", goalsController.AchieveGoal)
	goals.Delete("/:id", goalsController.DeleteGoal)

	// Backlog routes
	backlogController := controllers.NewBacklogController(db, cfg, activity)
	backlog := app.Group("/api/backlog", authMiddleware)
	backlog.Get("/", backlogController.GetItems)
	backlog.Post("/", backlogController.CreateItem)
	backlog.Put("/:id", backlogController.UpdateItem)
	backlog.Post("/:id/promote", backlogController.PromoteItem)
	backlog.Delete("/:id", backlogController.DeleteItem)

	// Learning resources routes
	resourcesController := controllers.NewResourcesController(db, cfg, activity)
	resources := app.Group("/api/resources", authMiddleware)
	resources.Get("/", resourcesController.GetResources)
	resources.Post("/", resourcesController.CreateResource)
	resources.Put("/:id", resourcesController.UpdateResource)
	resources.Delete("/:id", resourcesController.DeleteResource)
}
