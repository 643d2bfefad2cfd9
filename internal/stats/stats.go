package stats

import (
	"encoding/json"
	"expvar"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const (
	Registrations = "Registrations"
	Logins        = "Logins"
	Logouts       = "Logouts"
	MessagesSent  = "MessagesSent"
	MessagesRead  = "MessagesRead"
)

type StatsProvider interface {
	Incr(name string)
	Add(name string, delta int)
	RegisterMetric(name string)
	Run()
}

type StatsUpdater struct {
	vars       *expvar.Map
	updateChan chan *metricsUpdateReq
}

type metricsUpdateReq struct {
	name  string
	value int
}

func (su *StatsUpdater) expvarHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	expvarData := make(map[string]any)
	su.vars.Do(func(kv expvar.KeyValue) {
		var value any
		json.Unmarshal([]byte(kv.Value.String()), &value)
		expvarData[kv.Key] = value
	})

	json.NewEncoder(w).Encode(expvarData)
}

// NewStatsUpdater creates a stats updater and mounts its JSON view at
// GET /debug/vars on the router. The counters are kept in a private map
// rather than the global expvar registry, so several updaters may coexist.
func NewStatsUpdater(router *mux.Router) *StatsUpdater {
	su := &StatsUpdater{
		vars:       new(expvar.Map).Init(),
		updateChan: make(chan *metricsUpdateReq, 512),
	}
	router.HandleFunc("/debug/vars", su.expvarHandler).Methods(http.MethodGet)
	su.initializeMetrics()

	return su
}

func (su *StatsUpdater) initializeMetrics() {
	startTime := time.Now()
	su.vars.Set("Uptime", expvar.Func(func() any {
		return time.Since(startTime).Milliseconds()
	}))

	for _, name := range []string{Registrations, Logins, Logouts, MessagesSent, MessagesRead} {
		su.RegisterMetric(name)
	}
}

func (su *StatsUpdater) updateMetrics() {
	for req := range su.updateChan {
		metric, ok := su.vars.Get(req.name).(*expvar.Int)
		if !ok {
			panic("metric not found: " + req.name)
		}

		metric.Add(int64(req.value))
	}
}

func (su *StatsUpdater) Incr(name string) {
	su.Add(name, 1)
}

func (su *StatsUpdater) Add(name string, delta int) {
	su.updateChan <- &metricsUpdateReq{name: name, value: delta}
}

func (su *StatsUpdater) RegisterMetric(name string) {
	su.vars.Set(name, new(expvar.Int))
}

func (su *StatsUpdater) Run() {
	go su.updateMetrics()
}

func (su *StatsUpdater) Stop() {
	close(su.updateChan)
}
