package main

import (
	"fmt"
	"log"

	"greenlens/internal/config"
	"greenlens/internal/email/noop"
	"greenlens/internal/email/ses"
	"greenlens/internal/emissions"
	"greenlens/internal/extraction"
	"greenlens/internal/handler"
	"greenlens/internal/port"
	"greenlens/internal/recognition"
	"greenlens/internal/repository/postgres"
	"greenlens/internal/router"
	"greenlens/internal/service"
	s3storage "greenlens/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)
	docRepo := postgres.NewDocumentRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Text recognition backend
	var recognizer port.Recognizer
	switch cfg.OCR.Provider {
	case "tesseract":
		recognizer = recognition.NewTesseract(&cfg.OCR)
	default:
		log.Printf("ocr provider %q not configured, using noop recognizer", cfg.OCR.Provider)
		recognizer = recognition.NewNoop()
	}

	// Report email backend
	var sender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		sender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		log.Printf("email provider %q not configured, using noop sender", cfg.Email.Provider)
		sender = noop.NewNoopSender()
	}

	// Extraction and emission engines
	extractor := extraction.New(extraction.Config{
		Score: extraction.DefaultScorer(cfg.Engine.ConfidenceBaseline),
	})
	calculator := emissions.NewCalculator(emissions.DefaultFactors())
	scorer := emissions.NewESGScorer(emissions.DefaultWeights())

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	documentSvc := service.NewDocumentService(docRepo, fileRepo, s3Client, recognizer, extractor, &cfg.S3, &cfg.OCR)
	emissionSvc := service.NewEmissionService(docRepo, calculator)
	reportSvc := service.NewReportService(docRepo, calculator, scorer, sender, &cfg.Engine)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	documentH := handler.NewDocumentHandler(documentSvc)
	emissionH := handler.NewEmissionHandler(emissionSvc)
	reportH := handler.NewReportHandler(reportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, documentH, emissionH, reportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
