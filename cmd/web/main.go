package main

import (
	"bytes"
	_ "embed"
	"html/template"
	"net"
	"net/http"
	"os"

	"github.com/tomz197/lakeside/internal/catalog"
	"github.com/tomz197/lakeside/internal/config"
	"github.com/tomz197/lakeside/internal/log"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

// pageData feeds index.html.
type pageData struct {
	SSHHost string
	SSHPort string
	Species []catalog.Species
	Levels  []levelRow
}

type levelRow struct {
	Number      int
	TargetScore int
	StaminaMax  int
	Species     []catalog.Species
}

func newPageData(tables *catalog.Tables, sshHost, sshPort string) pageData {
	data := pageData{
		SSHHost: sshHost,
		SSHPort: sshPort,
		Species: tables.Species(),
	}
	for _, l := range tables.Levels() {
		data.Levels = append(data.Levels, levelRow{
			Number:      l.Number,
			TargetScore: l.TargetScore,
			StaminaMax:  l.StaminaMax,
			Species:     tables.LevelSpecies(l.Number),
		})
	}
	return data
}

// renderIndex renders the landing page once; the tables don't change while
// the process runs.
func renderIndex(data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func main() {
	logger, err := log.New(os.Stderr, log.Options{
		Level:  config.GetEnv(config.EnvLogLevel, "info"),
		Format: config.GetEnv(config.EnvLogFormat, "text"),
		Prefix: "web",
	})
	if err != nil {
		os.Stderr.WriteString("lakeside: " + err.Error() + "\n")
		os.Exit(1)
	}

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnv("SSH_DISPLAY_PORT", "2222")

	tables, source, err := config.LoadTables()
	if err != nil {
		logger.Fatal("load tables", "err", err)
	}
	page, err := renderIndex(newPageData(tables, sshHost, sshPort))
	if err != nil {
		logger.Fatal("render index", "err", err)
	}

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr, "tables", source)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
