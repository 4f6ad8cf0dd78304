// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// accelstream samples an ADXL345 accelerometer and publishes the readings
// as JSON to an MQTT topic.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/adxl345"
	"github.com/GermanBionicSystems/adxl345/internal/config"
)

// message is the published payload.
type message struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Unit string  `json:"unit"`
	Time int64   `json:"time_unix_ms"`
}

func main() {
	configPath := flag.String("config", "./accelstream.conf", "path to configuration file")
	flag.Parse()

	log.Println("starting accelstream producer (ADXL345 → MQTT)")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if _, err := host.Init(); err != nil {
		log.Fatalf("host init: %v", err)
	}
	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		log.Fatalf("failed to open I²C bus %q: %v", cfg.I2CBus, err)
	}
	defer bus.Close()

	dev, err := adxl345.NewI2C(bus, cfg.I2CAddr, &adxl345.Opts{
		Range: adxl345.Range(cfg.AccelRange),
		Rate:  adxl345.Rate(cfg.AccelRate),
	})
	if err != nil {
		log.Fatalf("failed to initialize accelerometer: %v", err)
	}
	defer dev.Halt()
	log.Printf("%s ready, range %s rate %s", dev, adxl345.Range(cfg.AccelRange), adxl345.Rate(cfg.AccelRate))

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("MQTT connect error: %v", token.Error())
	}
	defer client.Disconnect(250)

	log.Println("connected to MQTT, starting publish loop")

	samples, err := dev.ReadContinuous(time.Duration(cfg.SampleInterval)*time.Millisecond, adxl345.MetersPerSecondSquared)
	if err != nil {
		log.Fatalf("failed to start sampling: %v", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	for {
		select {
		case <-sig:
			log.Println("interrupted, shutting down")
			return
		case s, ok := <-samples:
			if !ok {
				return
			}
			payload, err := json.Marshal(message{
				X:    s.X,
				Y:    s.Y,
				Z:    s.Z,
				Unit: s.Unit.String(),
				Time: time.Now().UnixMilli(),
			})
			if err != nil {
				log.Printf("json marshal error: %v", err)
				continue
			}
			client.Publish(cfg.Topic, 0, false, payload)
		}
	}
}
