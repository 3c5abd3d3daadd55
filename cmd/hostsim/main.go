package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/GriffinCanCode/ExtensionBridge/internal/hostsim"
	"github.com/GriffinCanCode/ExtensionBridge/internal/logging"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:9100", "Listen address")
	fixturePath := flag.String("fixture", "", "Session fixture YAML file (built-in demo fixture when empty)")
	flag.Parse()

	logger := logging.NewDefault()
	defer logger.Sync()

	var fixture *hostsim.Fixture
	if *fixturePath != "" {
		f, err := hostsim.LoadFixture(*fixturePath)
		if err != nil {
			log.Fatalf("Failed to load fixture: %v", err)
		}
		fixture = f
	}

	srv := hostsim.NewServer(fixture, logger)

	// Print a ready-made environment block so an extension can be pointed at
	// the simulator with a copy-paste.
	extensionUUID := uuid.NewString()
	host, port := splitAddr(*addr)
	fmt.Printf("export EXTENSION_UUID=%s\n", extensionUUID)
	fmt.Printf("export HOST=%s\n", host)
	fmt.Printf("export PORT=%s\n", port)

	if err := srv.Run(*addr); err != nil {
		log.Fatalf("Simulator error: %v", err)
	}
}

func splitAddr(addr string) (host, port string) {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[:i], addr[i+1:]
		}
	}
	return addr, "80"
}
