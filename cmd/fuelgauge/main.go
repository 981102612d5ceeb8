package main

import (
	"flag"
	"log"
	"log/slog"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"fuelgauge/internal/config"
	"fuelgauge/internal/max17048"
	"fuelgauge/internal/server"
)

func main() {
	cfgPath := flag.String("config", "", "path to YAML config (defaults are used when empty)")
	flag.Parse()

	log.Println("Starting fuelgauge...")

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Fatalf("config load failed: %v", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	bus, err := i2creg.Open(cfg.Gauge.Bus)
	if err != nil {
		log.Fatalf("failed to open I2C: %v", err)
	}
	defer bus.Close()

	tr := max17048.NewI2CTransport(bus, cfg.Gauge.Address)
	mx := max17048.New(tr, cfg.Device(), max17048.WithLogger(slog.Default()))
	if err := mx.Init(); err != nil {
		log.Fatalf("Failed to init MAX17048: %v", err)
	}

	if ver, err := mx.Version(); err == nil {
		log.Printf("Hardware Initialized: %s, version 0x%04X", mx, ver)
	}
	if err := mx.FetchSample(); err == nil {
		log.Printf("Cell voltage: %s", mx.Voltage())
	}

	if err := server.Run(cfg.Server.Port, mx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
