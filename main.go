package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	qhttp "empowerpredict/http"
	"empowerpredict/logging"
	"empowerpredict/ml"
	"empowerpredict/monitoring"
	"empowerpredict/vocab"
	"empowerpredict/watch"
)

type Config struct {
	Http struct {
		Port           int      `yaml:"port"`
		TimeoutSeconds int      `yaml:"timeout_seconds"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"http"`
	Model struct {
		Type string `yaml:"type"`
		Path string `yaml:"path"`
	} `yaml:"model"`
	Categories struct {
		Path string `yaml:"path"`
	} `yaml:"categories"`
	Prediction struct {
		Policy    string  `yaml:"policy"`
		Cutoff    float64 `yaml:"cutoff"`
		CacheSize int     `yaml:"cache_size"`
	} `yaml:"prediction"`
	Log   logging.Config `yaml:"log"`
	Watch struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"watch"`
}

func main() {
	// 1. Load config
	config, err := loadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Set up logging
	logger, err := logging.Setup(config.Log)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logger.Sync()

	// 3. Load the vocabulary
	var vocabulary *vocab.Vocabulary
	if config.Categories.Path != "" {
		vocabulary, err = vocab.LoadFile(config.Categories.Path)
		if err != nil {
			logger.Fatal("failed to load categories", zap.String("path", config.Categories.Path), zap.Error(err))
		}
		logger.Info("categories loaded", zap.String("path", config.Categories.Path), zap.Int("features", vocabulary.Len()))
	} else {
		vocabulary = vocab.Default()
		logger.Info("using built-in categories", zap.Int("features", vocabulary.Len()))
	}

	// 4. Load the model
	logger.Info("loading model", zap.String("type", config.Model.Type), zap.String("path", config.Model.Path))
	model, err := ml.LoadModel(config.Model.Type, config.Model.Path)
	if err != nil {
		logger.Fatal("failed to load model", zap.Error(err))
	}
	logger.Info("model loaded")

	// 5. Build the prediction pipeline
	policy := ml.NewLabelPolicy(config.Prediction.Policy, config.Prediction.Cutoff)
	pipeline, err := ml.NewPipeline(vocabulary, model, policy, config.Prediction.CacheSize)
	if err != nil {
		logger.Fatal("failed to build pipeline", zap.Error(err))
	}
	logger.Info("pipeline ready",
		zap.String("policy", policy.Mode),
		zap.Float64("cutoff", policy.Cutoff))

	// 6. Start the activity feed
	hub := monitoring.NewHub(logger)
	go hub.Start()

	// 7. Watch artifacts for on-disk changes
	if config.Watch.Enabled {
		watcher, err := watch.New(logger, config.Model.Path, config.Categories.Path)
		if err != nil {
			logger.Warn("artifact watcher not started", zap.Error(err))
		} else {
			defer watcher.Close()
		}
	}

	// 8. Start HTTP server
	qhttp.SetPipeline(pipeline)
	qhttp.SetActivityHub(hub)

	serverConfig := qhttp.DefaultServerConfig()
	if config.Http.Port != 0 {
		serverConfig.Port = config.Http.Port
	}
	if config.Http.TimeoutSeconds > 0 {
		serverConfig.Timeout = time.Duration(config.Http.TimeoutSeconds) * time.Second
	}
	if len(config.Http.AllowedOrigins) > 0 {
		serverConfig.AllowedOrigins = config.Http.AllowedOrigins
	}

	server := qhttp.NewServer(serverConfig, logger)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 9. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	if err := server.Stop(); err != nil {
		logger.Warn("server forced to shutdown", zap.Error(err))
	}
	hub.Stop()

	logger.Info("exiting")
}

func loadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, err
	}
	if config.Model.Type == "" {
		config.Model.Type = "decision_tree"
	}
	if config.Model.Path == "" {
		config.Model.Path = "./models/empowerment.model"
	}
	if config.Log.Dir == "" {
		config.Log = logging.DefaultConfig()
	}
	return &config, nil
}
