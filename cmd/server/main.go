package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ningrum77/puskesmas-bok/pkg/ai"
	"github.com/ningrum77/puskesmas-bok/pkg/auth"
	"github.com/ningrum77/puskesmas-bok/pkg/config"
	"github.com/ningrum77/puskesmas-bok/pkg/database"
	"github.com/ningrum77/puskesmas-bok/pkg/handlers"
	"github.com/ningrum77/puskesmas-bok/pkg/store"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	if cfg.Server.Mode == "release" || os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	auth.SetSecret(cfg.JWT.Secret)

	db := database.InitDB(cfg.Database.Path)
	_ = auth.EnsureAdminExists(db)

	st, err := store.Open(cfg.Data.SnapshotPath)
	if err != nil {
		log.Fatalf("could not open snapshot store: %v", err)
	}
	defer st.Close()

	geminiKey := cfg.AI.GeminiAPIKey
	if geminiKey == "" {
		geminiKey = os.Getenv("GEMINI_API_KEY")
	}

	h := &handlers.Handler{
		Store: st,
		DB:    db,
		Cfg:   cfg,
		AI:    ai.NewClient(geminiKey),
	}

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Puskesmas BOK Admin API",
			"version": "1.0.0",
		})
	})

	r.POST("/auth/login", h.Login)
	r.POST("/auth/guest", h.GuestLogin)

	// Uploaded images are public within the clinic network
	r.Static("/uploads", h.Cfg.Data.UploadsDir)

	api := r.Group("/api")
	api.Use(h.AuthMiddleware(), h.AuditMiddleware())
	{
		api.GET("/state", h.GetState)
		api.GET("/dashboard", h.Dashboard)

		api.GET("/schedules", h.ListSchedules)
		api.POST("/schedules/check", h.CheckSchedule)
		api.GET("/schedules/recap.csv", h.ExportRecapCSV)
		api.GET("/holidays", h.ListHolidays)

		api.GET("/reports", h.ListReports)
		api.GET("/reports/:id/render", h.RenderReport)
		api.POST("/reports/budget", h.ReportBudget)

		api.GET("/rpk/matrix", h.RPKMatrix)
		api.GET("/rpk/cell/:activityId", h.RPKCell)
		api.GET("/rpk/goals", h.ListGoals)

		api.GET("/transactions", h.ListTransactions)
		api.GET("/staff", h.ListStaff)
		api.GET("/activity-types", h.ListActivityTypes)
		api.GET("/templates", h.ListTemplates)
		api.GET("/templates/:id/tokens", h.TemplateTokens)
		api.GET("/shs-items", h.ListSHSItems)
		api.GET("/letterhead", h.GetLetterhead)
	}

	admin := api.Group("")
	admin.Use(h.RequireAdmin())
	{
		admin.POST("/auth/password", h.ChangePassword)

		admin.POST("/schedules", h.CreateSchedule)
		admin.DELETE("/schedules/:id", h.DeleteSchedule)
		admin.POST("/schedules/spt", h.BackfillSPT)
		admin.POST("/holidays", h.AddHoliday)
		admin.DELETE("/holidays/:date", h.DeleteHoliday)

		admin.POST("/reports", h.SaveReport)
		admin.DELETE("/reports/:id", h.DeleteReport)
		admin.POST("/reports/from-schedule/:id", h.ReportFromSchedule)
		admin.POST("/reports/apply-shs", h.ApplySHSItem)
		admin.POST("/reports/:id/images", h.UploadReportImage)
		admin.POST("/reports/ai/enhance", h.EnhanceSection)
		admin.POST("/reports/:id/ai/summarize", h.SummarizeExpenses)

		admin.POST("/rpk/goals", h.UpsertGoal)

		admin.POST("/transactions", h.AddTransaction)
		admin.DELETE("/transactions/:id", h.DeleteTransaction)
		admin.POST("/staff", h.SaveStaff)
		admin.DELETE("/staff/:id", h.DeleteStaff)
		admin.POST("/activity-types", h.SaveActivityType)
		admin.DELETE("/activity-types/:id", h.DeleteActivityType)
		admin.POST("/templates", h.SaveTemplate)
		admin.DELETE("/templates/:id", h.DeleteTemplate)
		admin.POST("/shs-items", h.SaveSHSItem)
		admin.DELETE("/shs-items/:id", h.DeleteSHSItem)
		admin.PUT("/letterhead", h.SetLetterhead)
		admin.POST("/letterhead/logo/:side", h.UploadLetterheadLogo)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
