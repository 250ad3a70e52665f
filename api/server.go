// Package api предоставляет операционный HTTP API конвейера: ручной запуск,
// журнал запусков и отчеты о сверке
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/reconcile"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// ETLTrigger запускает один проход конвейера. Реализуется раннером
type ETLTrigger interface {
	ExecuteETL() error
}

// ReconciliationReader читает журнал сверок
type ReconciliationReader interface {
	GetRecentReports(limit int) ([]reconcile.ReconciliationReport, error)
}

// Server операционный HTTP API конвейера
type Server struct {
	addr       string
	logger     *utils.ETLLogger
	trigger    ETLTrigger
	runLogRepo models.RunLogRepository
	reconRepo  ReconciliationReader

	mu      sync.Mutex
	running bool
}

// NewServer создает новый экземпляр Server
func NewServer(
	addr string,
	logger *utils.ETLLogger,
	trigger ETLTrigger,
	runLogRepo models.RunLogRepository,
	reconRepo ReconciliationReader) *Server {

	return &Server{
		addr:       addr,
		logger:     logger,
		trigger:    trigger,
		runLogRepo: runLogRepo,
		reconRepo:  reconRepo,
	}
}

// Router собирает маршрутизатор операционного API
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	// Настраиваем CORS
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	router.HandleFunc("/api/etl/run", s.handleRun).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/etl/status", s.handleStatus).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/etl/runs", s.handleRuns).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/etl/reconciliation", s.handleReconciliation).Methods("GET", "OPTIONS")

	return router
}

// NewHTTPServer собирает http.Server с таймаутами
func (s *Server) NewHTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.addr,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// handleRun запускает проход конвейера в фоне. Повторный запрос во время
// выполнения отклоняется: конвейер не рассчитан на конкурентные запуски
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		http.Error(w, "ETL уже выполняется", http.StatusConflict)
		return
	}
	s.running = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
		}()

		if err := s.trigger.ExecuteETL(); err != nil {
			s.logger.Error("Ошибка при выполнении ETL по запросу API: %v", err)
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "started"})
}

// handleStatus возвращает текущее состояние и последний успешный запуск
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()

	lastRun, err := s.runLogRepo.GetLastSuccessfulRun()
	if err != nil {
		s.logger.Error("Ошибка при чтении последнего запуска: %v", err)
		http.Error(w, "Ошибка при чтении журнала запусков", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"running": running,
	}
	if lastRun != nil {
		response["last_successful_run"] = lastRun
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleRuns возвращает статистику запусков за указанный период
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	days := 7
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed <= 0 {
			http.Error(w, "Неверный формат параметра days", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	runs, err := s.runLogRepo.GetRunStats(days)
	if err != nil {
		s.logger.Error("Ошибка при чтении статистики запусков: %v", err)
		http.Error(w, "Ошибка при чтении журнала запусков", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"runs": runs})
}

// handleReconciliation возвращает последние отчеты о сверке
func (s *Server) handleReconciliation(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			http.Error(w, "Неверный формат параметра limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	reports, err := s.reconRepo.GetRecentReports(limit)
	if err != nil {
		s.logger.Error("Ошибка при чтении журнала сверок: %v", err)
		http.Error(w, "Ошибка при чтении журнала сверок", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"reports": reports})
}
