// Package monitoring turns a running Translator into an HTTP server for
// external inspection: live fault-resolution counters, frame occupancy,
// host resource usage, and on-demand CPU profiles.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/Nenimor/Virtual-Memory-Hierarchical-Page-Tables-Implementation/vm"
)

// Monitor serves a small HTTP API over a live Translator.
type Monitor struct {
	translator *vm.Translator
	portNumber int
}

// NewMonitor creates a Monitor over translator.
func NewMonitor(translator *vm.Translator) *Monitor {
	return &Monitor{translator: translator}
}

// WithPortNumber sets the listen port. Values below 1000 are rejected
// in favor of an OS-assigned port, since those are reserved.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is not allowed for the monitoring server, "+
				"using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// StartServer binds a listener and serves the API in the background. It
// returns the bound address so callers can report it to the user.
func (m *Monitor) StartServer() (string, error) {
	r := mux.NewRouter()
	r.HandleFunc("/stats", m.stats)
	r.HandleFunc("/resource", m.resource)
	r.HandleFunc("/profile", m.collectProfile)
	r.HandleFunc("/inspect", m.inspect)
	r.HandleFunc("/inspect/{field}", m.inspectField)

	actualPort := ":0"
	if m.portNumber >= 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return "", fmt.Errorf("monitoring: binding listener: %w", err)
	}

	addr := listener.Addr().String()

	go func() {
		if err := http.Serve(listener, r); err != nil {
			log.Println("monitoring: server stopped:", err)
		}
	}()

	return addr, nil
}

type statsRsp struct {
	Faults     uint64 `json:"faults"`
	Fresh      uint64 `json:"fresh"`
	Reclaims   uint64 `json:"reclaims"`
	Evictions  uint64 `json:"evictions"`
	UsedFrames uint64 `json:"used_frames"`
}

func (m *Monitor) stats(w http.ResponseWriter, _ *http.Request) {
	used, err := m.translator.UsedFrames()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rsp := statsRsp{
		Faults:     m.translator.Stats.Faults,
		Fresh:      m.translator.Stats.Fresh,
		Reclaims:   m.translator.Stats.Reclaims,
		Evictions:  m.translator.Stats.Evictions,
		UsedFrames: used,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Println("monitoring: encoding stats response:", err)
	}
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) resource(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	memInfo, err := proc.MemoryInfo()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rsp := resourceRsp{CPUPercent: cpuPercent, MemorySize: memInfo.RSS}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Println("monitoring: encoding resource response:", err)
	}
}

// inspect serializes the whole Translator for ad-hoc debugging, the way
// the teacher's listComponentDetails does for a single named component.
func (m *Monitor) inspect(w http.ResponseWriter, _ *http.Request) {
	serializer := goseth.NewSerializer()
	serializer.SetRoot(m.translator)
	serializer.SetMaxDepth(2)

	if err := serializer.Serialize(w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// inspectField serializes a single dotted field path off the Translator,
// e.g. /inspect/Stats.Faults, the way the teacher's listFieldValue does
// via goseth's SetEntryPoint.
func (m *Monitor) inspectField(w http.ResponseWriter, r *http.Request) {
	fields := strings.Split(mux.Vars(r)["field"], ".")

	serializer := goseth.NewSerializer()
	serializer.SetRoot(m.translator)
	serializer.SetMaxDepth(2)

	if err := serializer.SetEntryPoint(fields); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := serializer.Serialize(w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	if err := pprof.StartCPUProfile(buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	time.Sleep(200 * time.Millisecond)
	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(prof); err != nil {
		log.Println("monitoring: encoding profile response:", err)
	}
}
