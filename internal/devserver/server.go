package devserver

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/example/inkcalc/internal/calc"
	"github.com/example/inkcalc/internal/canvas"
)

// Server serves fixtures in rotation.
type Server struct {
	mu       sync.Mutex
	fixtures []Fixture
	next     int
	requests int
}

// New returns a server for set.
func New(set FixtureSet) *Server {
	s := &Server{}
	s.Replace(set)
	return s
}

// Replace swaps the fixtures and restarts the rotation.
func (s *Server) Replace(set FixtureSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixtures = append([]Fixture(nil), set.Responses...)
	for i := range s.fixtures {
		s.fixtures[i].fillDefaults()
	}
	s.next = 0
}

// Requests reports how many calculate requests were answered.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

func (s *Server) take() Fixture {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	if len(s.fixtures) == 0 {
		return DefaultFixtures().Responses[0]
	}
	f := s.fixtures[s.next%len(s.fixtures)]
	s.next++
	return f
}

// RegisterHTTP mounts the backend routes. The calculate route is served at
// the root and under /api, matching both ways the backend is deployed.
func (s *Server) RegisterHTTP(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Server is running", "status": "ok"})
	})
	r.Post(calc.Path, s.handleCalculate)
	r.Post("/api"+calc.Path, s.handleCalculate)
}

// Handler returns a router with logging and panic recovery.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	s.RegisterHTTP(r)
	return r
}

type reply struct {
	Message string  `json:"message"`
	Data    []Entry `json:"data"`
	Status  string  `json:"status"`
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calc.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 32<<20)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, reply{Message: "invalid request: " + err.Error(), Status: "error", Data: []Entry{}})
		return
	}
	if _, err := canvas.DecodeDataURL(req.Image); err != nil {
		writeJSON(w, http.StatusBadRequest, reply{Message: "invalid image: " + err.Error(), Status: "error", Data: []Entry{}})
		return
	}

	f := s.take()
	if f.Delay > 0 {
		select {
		case <-time.After(f.Delay):
		case <-r.Context().Done():
			return
		}
	}
	if f.Code < 200 || f.Code > 299 {
		http.Error(w, http.StatusText(f.Code), f.Code)
		return
	}

	data := make([]Entry, len(f.Data))
	for i, e := range f.Data {
		data[i] = Entry{Expr: expand(e.Expr, req.Vars), Result: expand(e.Result, req.Vars), Assign: e.Assign}
	}
	writeJSON(w, f.Code, reply{Message: f.Message, Data: data, Status: f.Status})
}

// expand substitutes $name and ${name} with bound variables, leaving
// unknown names untouched.
func expand(s string, vars map[string]string) string {
	return os.Expand(s, func(name string) string {
		if v, ok := vars[name]; ok {
			return v
		}
		return "$" + name
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("devserver: write reply: %v", err)
	}
}
