package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/tvogel/volgrid/internal/config"
	"github.com/tvogel/volgrid/internal/handlers"
	"github.com/tvogel/volgrid/internal/journal"
	"github.com/tvogel/volgrid/internal/logger"
	"github.com/tvogel/volgrid/internal/pricing"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	if err := logger.InitWithConfig(cfg.Logging.LogLevel, cfg.Logging.LogFile); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger.Always.Printf("Volgrid option pricing server starting - Port: %s", cfg.Port)

	// Sweep engine from config
	engine := pricing.NewEngine(cfg.Engine.ExecutionMode, cfg.Engine.Workers, cfg.Engine.ParallelThreshold)
	logger.Always.Printf("EXECUTION MODE: %s (workers=%d, parallel threshold=%d cells)",
		engine.Mode(), cfg.Engine.Workers, cfg.Engine.ParallelThreshold)

	// Optional scenario journal
	var jrnl *journal.Journal
	if cfg.Journal.Enabled {
		jrnl = journal.New(cfg.Journal.FilenameFormat)
		logger.Always.Printf("Scenario journal enabled: %s", cfg.Journal.FilenameFormat)
	}

	pricingHandler := handlers.NewPricingHandler(cfg, engine, jrnl)

	// Setup router
	r := mux.NewRouter()

	// Serve static files (CSS, JS) - NO REBUILD NEEDED
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("web/static/"))))

	// Main application endpoints
	r.HandleFunc("/", pricingHandler.HomeHandler).Methods("GET")
	r.HandleFunc("/api/price", pricingHandler.PriceHandler).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/heatmap", pricingHandler.HeatmapHandler).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/heatmap.csv", pricingHandler.HeatmapCSVHandler).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/health", pricingHandler.HealthHandler).Methods("GET")

	// Start server
	fmt.Printf("Server starting on http://localhost:%s\n", cfg.Port)
	logger.Always.Printf("HTTP server started on port %s", cfg.Port)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
