package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/weblinks/pkg/app"
	"github.com/wadjakorntonsri/weblinks/pkg/config"
	"github.com/wadjakorntonsri/weblinks/pkg/logger"
)

var mux http.Handler

func init() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Serverless filesystems are ephemeral; point DATABASE_URL at a libsql:// database.
	a, err := app.New(cfg, logger.Must(logger.Config{Level: cfg.LogLevel, Encoding: "json"}))
	if err != nil {
		panic(err)
	}
	mux = a.Handler
}

// Handler is the serverless entrypoint.
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
