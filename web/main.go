package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-scatter/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	libraries := flag.String("libraries", "libraries", "Directory of material library JSON files")
	flag.Parse()

	webServer := server.NewServer(*port, *libraries)

	log.Printf("Material Preview Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
