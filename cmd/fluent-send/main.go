// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by a license that can be found in
// the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nishisan-dev/fluent-forward/internal/config"
	"github.com/nishisan-dev/fluent-forward/internal/forwarder"
	"github.com/nishisan-dev/fluent-forward/internal/logging"
)

// fieldList collects repeated -field key=value flags into an ordered
// slice so main can build the record's payload map.
type fieldList []string

func (f *fieldList) String() string { return strings.Join(*f, ",") }

func (f *fieldList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("field %q is not in key=value form", value)
	}
	*f = append(*f, value)
	return nil
}

func main() {
	configPath := flag.String("config", "/etc/fluent-send/config.yaml", "path to client config file")
	tag := flag.String("tag", "", "Fluentd tag for the record (required)")
	var fields fieldList
	flag.Var(&fields, "field", "a key=value payload field; repeat for multiple fields")
	flag.Parse()

	if *tag == "" {
		fmt.Fprintln(os.Stderr, "Error: -tag is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser := logging.NewLogger(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File)
	defer logCloser.Close()

	client, err := forwarder.New(forwarder.Config{
		Address:        cfg.Address,
		ConnectTimeout: cfg.ConnectTimeout,
		Retry:          cfg.Retry.ToRetry(),
	}, logger)
	if err != nil {
		logger.Error("connect failed", "error", err)
		os.Exit(1)
	}
	defer client.Stop()

	payload, err := parsePayload(fields)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -field values: %v\n", err)
		os.Exit(2)
	}

	if err := client.Send(*tag, payload); err != nil {
		logger.Error("send failed", "tag", *tag, "error", err)
		os.Exit(1)
	}

	// Give the background worker a moment to complete the write/ack
	// round trip before the process exits and the connection is torn
	// down; Stop only enqueues Terminate, it does not wait for drain.
	time.Sleep(200 * time.Millisecond)
	logger.Info("record submitted", "tag", *tag)
}

// parsePayload turns "key=value" flag values into a record payload,
// inferring int64, float64, and bool where the value parses cleanly and
// falling back to string otherwise.
func parsePayload(fields fieldList) (map[string]any, error) {
	payload := make(map[string]any, len(fields))
	for _, f := range fields {
		key, value, _ := strings.Cut(f, "=")
		if key == "" {
			return nil, fmt.Errorf("empty key in field %q", f)
		}
		payload[key] = inferValue(value)
	}
	return payload, nil
}

func inferValue(raw string) any {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}
