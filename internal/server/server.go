package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"periph.io/x/conn/v3/physic"

	"fuelgauge/internal/max17048"
)

// Gauge is the part of *max17048.Device the server drives.
type Gauge interface {
	FetchSample() error
	Value(ch max17048.Channel) (max17048.Value, error)
	ApplyPowerAction(a max17048.PowerAction) error
	State() max17048.PowerState
	Voltage() physic.ElectricPotential
}

type BatteryResponse struct {
	Level       int     `json:"sensor.battery_level"`
	Voltage     float64 `json:"sensor.battery_voltage"`
	VoltageStr  string  `json:"sensor.battery_voltage_str,omitempty"`
	Charge      float64 `json:"sensor.state_of_charge"`
	TimeToEmpty int     `json:"sensor.time_to_empty_min"`
	PowerState  string  `json:"sensor.power_state"`
	Error       string  `json:"error,omitempty"`
}

type StateResponse struct {
	PowerState string `json:"sensor.power_state"`
	Error      string `json:"error,omitempty"`
}

// Server serialises every gauge call; Device itself does no locking.
type Server struct {
	mu    sync.Mutex
	gauge Gauge
}

func New(g Gauge) *Server {
	return &Server{gauge: g}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.rootHandler)
	mux.HandleFunc("GET /state", s.stateHandler)
	mux.HandleFunc("POST /power/{action}", s.powerHandler)
	return mux
}

func Run(port int, g Gauge) error {
	s := New(g)

	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("Listening on %s", addr)
	return srv.ListenAndServe()
}

func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := BatteryResponse{PowerState: s.gauge.State().String()}

	if err := s.gauge.FetchSample(); err != nil {
		log.Printf("Error reading MAX17048: %v", err)
		resp.Error = err.Error()
		code := http.StatusBadGateway
		if errors.Is(err, max17048.ErrDeviceOff) {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, resp)
		return
	}

	// Supported channels never fail.
	vol, _ := s.gauge.Value(max17048.ChanVoltage)
	soc, _ := s.gauge.Value(max17048.ChanStateOfCharge)
	tte, _ := s.gauge.Value(max17048.ChanTimeToEmpty)

	resp.Level = int(soc.Val1)
	if resp.Level > 100 {
		resp.Level = 100
	}
	resp.Voltage = vol.Float64()
	resp.VoltageStr = s.gauge.Voltage().String()
	resp.Charge = soc.Float64()
	resp.TimeToEmpty = int(tte.Val1)

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) stateHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, StateResponse{PowerState: s.gauge.State().String()})
}

func (s *Server) powerHandler(w http.ResponseWriter, r *http.Request) {
	action, err := max17048.ParsePowerAction(r.PathValue("action"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, StateResponse{Error: err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gauge.ApplyPowerAction(action); err != nil {
		log.Printf("Power action %s failed: %v", action, err)
		writeJSON(w, http.StatusBadGateway, StateResponse{
			PowerState: s.gauge.State().String(),
			Error:      err.Error(),
		})
		return
	}
	log.Printf("Power action %s applied", action)
	writeJSON(w, http.StatusOK, StateResponse{PowerState: s.gauge.State().String()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
