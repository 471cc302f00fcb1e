package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/fetchkit/packages/config"
	"github.com/abdul-hamid-achik/fetchkit/packages/fetch"
	"github.com/abdul-hamid-achik/fetchkit/packages/replay"
	"github.com/abdul-hamid-achik/fetchkit/packages/transport"
)

// clientFlags are the transport-level flags shared by request, run and bench.
type clientFlags struct {
	configPath string
	timeout    time.Duration
	insecure   bool
	proxy      string
	recordPath string
	replayPath string
}

// build assembles the transport chain and fetch client from flags plus the
// config file. The returned cleanup closes any open replay store.
func (f *clientFlags) build() (*fetch.Client, func(), error) {
	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	cleanup := func() {}

	var tr transport.Transport
	if f.replayPath != "" {
		store, err := replay.Open(f.replayPath)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { _ = store.Close() }
		tr = replay.NewReplayTransport(store)
	} else {
		opts := []transport.NativeOption{
			transport.WithValidateSSL(cfg.GetValidateSSL() && !f.insecure),
		}
		if f.timeout > 0 {
			opts = append(opts, transport.WithTimeout(f.timeout))
		} else if cfg.Timeout > 0 {
			opts = append(opts, transport.WithTimeout(time.Duration(cfg.Timeout)*time.Millisecond))
		}
		if f.proxy != "" {
			opts = append(opts, transport.WithProxy(f.proxy))
		} else if cfg.Proxy != "" {
			opts = append(opts, transport.WithProxy(cfg.Proxy))
		}
		for k, v := range cfg.Headers {
			opts = append(opts, transport.WithDefaultHeader(k, v))
		}
		tr = transport.NewNative(opts...)

		if f.recordPath != "" {
			store, err := replay.Open(f.recordPath)
			if err != nil {
				return nil, nil, err
			}
			cleanup = func() { _ = store.Close() }
			tr = replay.NewRecordTransport(tr, store)
		}
	}

	client, err := fetch.New(tr)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return client, cleanup, nil
}

// parseHeaders turns repeated "Name: value" flags into an ordered header
// collection, keeping duplicates.
func parseHeaders(lines []string) (*fetch.Headers, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	headers := fetch.NewHeaders()
	for _, line := range lines {
		name, value, found := strings.Cut(line, ":")
		if !found || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header %q (expected \"Name: value\")", line)
		}
		headers.Append(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	return headers, nil
}
