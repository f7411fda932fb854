package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/tahsinkabir/examly/config"
	"github.com/tahsinkabir/examly/database"
	_ "github.com/tahsinkabir/examly/docs" // Swagger docs
	adminctrl "github.com/tahsinkabir/examly/internal/controller/admin"
	userctrl "github.com/tahsinkabir/examly/internal/controller/user"
	"github.com/tahsinkabir/examly/internal/gateway"
	"github.com/tahsinkabir/examly/internal/logger"
	"github.com/tahsinkabir/examly/internal/model"
	"github.com/tahsinkabir/examly/internal/repository"
	"github.com/tahsinkabir/examly/internal/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Examly API
// @version 1.0
// @description Exam-taking platform: subjects, chapters, exams and questions; scored single-attempt submissions with feedback and leaderboards; gateway-driven subscriptions.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			gateway.NewSSLCommerzClient,
		),

		// Repositories layer
		fx.Provide(
			repository.NewSubjectRepository,
			repository.NewChapterRepository,
			repository.NewExamRepository,
			repository.NewQuestionRepository,
			repository.NewRoutineRepository,
			repository.NewAttemptRepository,
			repository.NewResultRepository,
			repository.NewPaymentRepository,
			repository.NewSubscriptionRepository,
		),

		// Services layer
		fx.Provide(
			service.NewCatalogService,
			service.NewRoutineService,
			service.NewUserExamService,
			service.NewResultService,
			service.NewSubscriptionService,
			service.NewPaymentService,
			service.NewAttemptService,
		),

		// API controllers layer
		fx.Provide(
			adminctrl.NewAdminController,
			userctrl.NewExamController,
			userctrl.NewPaymentController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminCtrl *adminctrl.AdminController,
	examCtrl *userctrl.ExamController,
	paymentCtrl *userctrl.PaymentController,
) {
	// Admin routes (prefixed with /api/v1/admin)
	adminGroup := router.Group("/api/v1/admin")
	{
		adminGroup.POST("/subjects", adminCtrl.CreateSubject)
		adminGroup.GET("/subjects", adminCtrl.GetSubjects)
		adminGroup.GET("/subjects/:subject_id", adminCtrl.GetSubject)
		adminGroup.PUT("/subjects/:subject_id", adminCtrl.UpdateSubject)
		adminGroup.DELETE("/subjects/:subject_id", adminCtrl.DeleteSubject)
		adminGroup.GET("/subjects/:subject_id/chapters", adminCtrl.GetChaptersBySubject)

		adminGroup.POST("/chapters", adminCtrl.CreateChapter)
		adminGroup.GET("/chapters/:chapter_id", adminCtrl.GetChapter)
		adminGroup.PUT("/chapters/:chapter_id", adminCtrl.UpdateChapter)
		adminGroup.DELETE("/chapters/:chapter_id", adminCtrl.DeleteChapter)
		adminGroup.GET("/chapters/:chapter_id/exams", adminCtrl.GetExamsByChapter)

		adminGroup.POST("/exams", adminCtrl.CreateExam)
		adminGroup.GET("/exams/:exam_id", adminCtrl.GetExam)
		adminGroup.PUT("/exams/:exam_id", adminCtrl.UpdateExam)
		adminGroup.DELETE("/exams/:exam_id", adminCtrl.DeleteExam)
		adminGroup.POST("/exams/:exam_id/questions", adminCtrl.CreateQuestion)
		adminGroup.GET("/exams/:exam_id/questions", adminCtrl.GetQuestionsByExam)
		adminGroup.GET("/questions/:question_id", adminCtrl.GetQuestion)
		adminGroup.PUT("/questions/:question_id", adminCtrl.UpdateQuestion)
		adminGroup.DELETE("/questions/:question_id", adminCtrl.DeleteQuestion)

		adminGroup.POST("/routines", adminCtrl.CreateRoutine)
		adminGroup.GET("/routines", adminCtrl.GetRoutines)
		adminGroup.GET("/routines/:routine_id", adminCtrl.GetRoutine)
		adminGroup.PUT("/routines/:routine_id", adminCtrl.UpdateRoutine)
		adminGroup.DELETE("/routines/:routine_id", adminCtrl.DeleteRoutine)

		adminGroup.GET("/analytics/exams", adminCtrl.GetExamAnalytics)
		adminGroup.GET("/analytics/subscriptions", adminCtrl.GetSubscriptionAnalytics)
		adminGroup.POST("/subscriptions/expire-sweep", adminCtrl.RunExpirySweep)
	}

	// User routes (prefixed with /api/v1)
	userGroup := router.Group("/api/v1")
	{
		userGroup.GET("/exams", examCtrl.GetPublishedExams)
		userGroup.GET("/exams/:exam_id/questions", examCtrl.GetExamQuestions)
		userGroup.POST("/exams/:exam_id/attempts", examCtrl.SubmitAttempt)
		userGroup.GET("/exams/:exam_id/my-result", examCtrl.GetMyExamResult)
		userGroup.GET("/exams/:exam_id/leaderboard", examCtrl.GetLeaderboard)
		userGroup.GET("/my-results", examCtrl.GetMyResults)
		userGroup.GET("/my-analytics", examCtrl.GetMyAnalytics)
		userGroup.GET("/routines/upcoming", examCtrl.GetUpcomingRoutines)

		userGroup.POST("/payments/initiate", paymentCtrl.InitiatePayment)
		userGroup.POST("/payments/success", paymentCtrl.PaymentSuccess)
		userGroup.POST("/payments/fail", paymentCtrl.PaymentFail)
		userGroup.POST("/payments/cancel", paymentCtrl.PaymentCancel)
		userGroup.GET("/my-subscriptions", paymentCtrl.GetMySubscriptions)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Examly API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Subject{},
		&model.Chapter{},
		&model.Exam{},
		&model.Question{},
		&model.Option{},
		&model.Routine{},
		&model.Attempt{},
		&model.AttemptAnswer{},
		&model.Result{},
		&model.ResultAnswer{},
		&model.Payment{},
		&model.Subscription{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
