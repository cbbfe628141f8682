package gelf

import (
	"encoding/json"
	"net"
	"os"
	"time"
)

// Writer sends GELF messages over UDP and implements io.Writer so it can
// sit behind zerolog.MultiLevelWriter next to the console writer.
type Writer struct {
	conn     net.Conn
	hostname string
}

// New creates a GELF UDP writer connected to addr (e.g. "172.17.0.1:12201").
func New(addr string) (*Writer, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, err
	}

	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "equipcheck-server"
	}

	return &Writer{conn: conn, hostname: hostname}, nil
}

// zerolog level names to syslog severities.
var levelMap = map[string]int{
	"panic": 2,
	"fatal": 2,
	"error": 3,
	"warn":  4,
	"info":  6,
	"debug": 7,
	"trace": 7,
}

// Write implements io.Writer. Each call receives one zerolog JSON line
// and re-emits it as a GELF message. Fire-and-forget: logging must never
// fail a request.
func (w *Writer) Write(p []byte) (int, error) {
	var event map[string]any
	if err := json.Unmarshal(p, &event); err != nil {
		return len(p), nil
	}

	short, _ := event["message"].(string)
	if short == "" {
		short = string(p)
	}

	level := 6
	if lvl, ok := event["level"].(string); ok {
		if mapped, ok := levelMap[lvl]; ok {
			level = mapped
		}
	}

	gelf := map[string]any{
		"version":       "1.1",
		"host":          w.hostname,
		"short_message": short,
		"timestamp":     float64(time.Now().UnixNano()) / 1e9,
		"level":         level,
		"_service":      "equipcheck",
	}
	for k, v := range event {
		switch k {
		case "level", "message", "time":
		default:
			gelf["_"+k] = v
		}
	}

	payload, err := json.Marshal(gelf)
	if err != nil {
		return len(p), nil
	}

	w.conn.Write(payload)
	return len(p), nil
}
