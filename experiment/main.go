// Package main is a test program for consuming scene events from MQTT.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

const (
	defaultBroker  = "localhost:1883"
	defaultTopic   = "video-scenes"
	eventsDir      = "tmp/events"
	connectTimeout = 10 * time.Second
)

type event struct {
	Video string `json:"video"`
	Start string `json:"start"`
	End   string `json:"end"`
	Score string `json:"score"`
	Index string `json:"index"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	broker := defaultBroker
	if len(os.Args) > 1 {
		broker = os.Args[1]
	}
	topic := defaultTopic
	if len(os.Args) > 2 {
		topic = os.Args[2]
	}

	// 1. Prepare the output directory
	fmt.Printf("Cleaning up %s...\n", eventsDir)
	if err := os.RemoveAll(eventsDir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", eventsDir, err)
	}
	if err := os.MkdirAll(eventsDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", eventsDir, err)
	}

	logPath := filepath.Join(eventsDir, "events.jsonl")
	logFile, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", logPath, err)
	}
	defer logFile.Close()

	// 2. Connect to the broker
	fmt.Printf("Connecting to %s...\n", broker)
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", broker))
	opts.SetClientID("sceneshot-listen-" + uuid.NewString()[:8])
	opts.SetConnectTimeout(connectTimeout)
	opts.SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect: %w", token.Error())
	}
	defer client.Disconnect(250)

	// 3. Subscribe and dump every event
	count := 0
	startTime := time.Now()
	handler := func(_ mqtt.Client, msg mqtt.Message) {
		elapsed := time.Since(startTime).Milliseconds()

		var ev event
		if err := json.Unmarshal(msg.Payload(), &ev); err != nil {
			fmt.Printf("Bad payload at %dms: %s\n", elapsed, msg.Payload())
			return
		}

		count++
		fmt.Printf("Event %d at %dms: %s scene %s [%s, %s) score %s\n",
			count, elapsed, ev.Video, ev.Index, ev.Start, ev.End, ev.Score)

		logFile.Write(msg.Payload())
		logFile.Write([]byte("\n"))
	}

	fmt.Printf("Subscribing to %s...\n", topic)
	if token := client.Subscribe(topic, 1, handler); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to subscribe: %w", token.Error())
	}

	// 4. Run until interrupted
	fmt.Println("Listening for scene events (Ctrl-C to stop)...")
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Printf("Received %d events, log written to %s\n", count, logPath)
	return nil
}
