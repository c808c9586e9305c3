package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/linguabridge/internal/app"
	"github.com/joseph-ayodele/linguabridge/internal/common"
	"github.com/joseph-ayodele/linguabridge/internal/logger"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	cfg = common.LoadConfig()
	closer, err := logger.Setup(app.LoggerConfig(cfg))
	if err != nil {
		log.Printf("Warning: invalid log configuration: %v", err)
		if closer, err = logger.Setup(logger.DefaultConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	}
	if envErr != nil && !os.IsNotExist(envErr) {
		mainLog := logger.WithComponent("main")
		mainLog.Warn().Err(envErr).Msg("could not load .env file")
	}

	code := Execute()
	_ = closer.Close()
	os.Exit(code)
}
