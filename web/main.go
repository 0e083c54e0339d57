package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/df07/go-matcap-loop/pkg/config"
	"github.com/df07/go-matcap-loop/web/server"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "TOML config file (optional)")
	port := flag.Int("port", 0, "Port to serve on (overrides config)")
	staticDir := flag.String("static", "static/", "Directory of static files")
	quiet := flag.Bool("quiet", false, "Do not echo render logs to stdout")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Printf("Error loading config: %v", err)
			os.Exit(1)
		}
	}
	if *port > 0 {
		cfg.Port = *port
	}

	var out io.Writer = os.Stdout
	if *quiet {
		out = nil
	}

	// Create and start web server
	webServer, err := server.NewServer(cfg, *staticDir, out)
	if err != nil {
		log.Printf("Error creating server: %v", err)
		os.Exit(1)
	}
	defer webServer.Close()

	log.Printf("Matcap Loop Web Server")
	log.Printf("Visit http://localhost:%d to watch the loop", cfg.Port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
