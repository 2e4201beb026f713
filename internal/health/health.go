// Package health serves the hosting environment's liveness probe. It runs
// on its own goroutine and shares no state with the conversational path.
package health

import (
	"fmt"
	"log"
	"net/http"
)

type Server struct {
	port int
}

func NewServer(port int) *Server {
	return &Server{port: port}
}

// ListenAndServe blocks; callers run it on a dedicated goroutine.
func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("health listener on %s", addr)
	return http.ListenAndServe(addr, mux)
}
