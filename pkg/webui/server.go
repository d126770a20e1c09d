package webui

import (
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// Server serves the schema and resolution API used by configuration
// frontends and credential stores.
type Server struct {
	Port int
}

// Start starts the API server and blocks.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/schema", handleSchema)
	mux.HandleFunc("/api/validate", handleValidate)
	mux.HandleFunc("/api/resolve", handleResolve)

	addr := fmt.Sprintf(":%d", s.Port)
	log.Infof("Serving connection schema API at http://localhost%s", addr)

	return http.ListenAndServe(addr, mux)
}
