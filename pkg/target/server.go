// Package target implements a small HTTP server to point load tests at. It
// only ever binds to loopback addresses.
package target

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/pretty"
)

const maxDelay = 10 * time.Second

type Server struct {
	addr     string
	router   *mux.Router
	upgrader websocket.Upgrader

	mu   sync.Mutex
	hits map[string]int
}

type StatsResponse struct {
	Total int            `json:"total"`
	Hits  map[string]int `json:"hits"`
}

func New(addr string) (*Server, error) {
	if err := requireLoopback(addr); err != nil {
		return nil, err
	}

	s := &Server{
		addr:   addr,
		router: mux.NewRouter(),
		hits:   make(map[string]int),
	}

	s.router.Use(s.countHits)
	s.router.Path("/").Methods(http.MethodGet, http.MethodHead).HandlerFunc(s.handleRoot)
	s.router.Path("/status/{code:[1-5][0-9][0-9]}").HandlerFunc(s.handleStatus)
	s.router.Path("/delay/{duration}").HandlerFunc(s.handleDelay)
	s.router.Path("/ws").HandlerFunc(s.handleWebSocket)
	s.router.Path("/stats").Methods(http.MethodGet).HandlerFunc(s.handleStats)

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", s.addr)
	}

	return s.Serve(ctx, listener)
}

func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.WithField("kind", "target").Info("shutting down practice target")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithFields(log.Fields{"kind": "target", "addr": listener.Addr().String()}).Info("practice target listening")

	if err := srv.Serve(listener); err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Server) Stats() StatsResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := StatsResponse{Hits: make(map[string]int, len(s.hits))}
	for k, v := range s.hits {
		res.Hits[k] = v
		res.Total += v
	}

	return res
}

func (s *Server) countHits(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		route := req.URL.Path
		if r := mux.CurrentRoute(req); r != nil {
			if tpl, err := r.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		if route != "/stats" {
			s.mu.Lock()
			s.hits[route]++
			s.mu.Unlock()
		}

		log.WithFields(log.Fields{"kind": "target", "route": route, "remote": req.RemoteAddr}).Debug("request")
		next.ServeHTTP(w, req)
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleStatus(w http.ResponseWriter, req *http.Request) {
	code, _ := strconv.Atoi(mux.Vars(req)["code"])

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(code)
	_, _ = fmt.Fprintf(w, "%d %s\n", code, http.StatusText(code))
}

func (s *Server) handleDelay(w http.ResponseWriter, req *http.Request) {
	d, err := time.ParseDuration(mux.Vars(req)["duration"])
	if err != nil || d < 0 {
		http.Error(w, "invalid duration", http.StatusBadRequest)
		return
	}
	if d > maxDelay {
		d = maxDelay
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		_, _ = fmt.Fprintf(w, "waited %s\n", d)
	case <-req.Context().Done():
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if err := conn.WriteMessage(mt, msg); err != nil {
			return
		}
	}
}

func (s *Server) handleStats(w http.ResponseWriter, req *http.Request) {
	out, err := json.Marshal(s.Stats())
	if err != nil {
		http.Error(w, "failed to encode stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(pretty.Pretty(out))
}

func requireLoopback(addr string) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return errors.Wrapf(err, "invalid listen address %q", addr)
	}

	if host == "localhost" {
		return nil
	}

	ip := net.ParseIP(host)
	if ip == nil || !ip.IsLoopback() {
		return errors.Errorf("refusing to listen on %q: only loopback addresses are allowed", addr)
	}

	return nil
}
