package handler

import (
	"dinebook/config"
	"dinebook/di"
	"dinebook/shared/logger"
	"net/http"
	"sync"
)

var (
	once   sync.Once
	server http.Handler
)

// Handler is the serverless entry point. The dependency graph is built on the first request and reused.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger("serverless")

		logger.SetLogLevel(cfg)

		server = di.InitializeService().Handler()
	})

	server.ServeHTTP(w, r)
}
