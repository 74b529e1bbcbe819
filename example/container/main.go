// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/binaryshapes/mixor/config"
	"github.com/binaryshapes/mixor/container"
	"github.com/binaryshapes/mixor/lifecycle"
)

//go:embed config.yaml
var configFS embed.FS

type Config struct {
	Greeting struct {
		Prefix string `config:"prefix"`
	} `config:"greeting"`

	Store struct {
		Capacity int `config:"capacity"`
	} `config:"store"`
}

// KV is the port the greeter depends on. Any adapter satisfying it can
// be bound without the greeter noticing.
type KV interface {
	Put(key, value string)
	Get(key string) (string, bool)
}

type memoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryKV(capacity int) *memoryKV {
	return &memoryKV{data: make(map[string]string, capacity)}
}

func (m *memoryKV) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func (m *memoryKV) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

type Greeter struct {
	prefix string
	kv     KV
}

func (g *Greeter) Greet(name string) string {
	greeting := fmt.Sprintf("%s, %s", g.prefix, name)
	g.kv.Put(name, greeting)
	return greeting
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	m, err := config.Read(
		config.FromYaml(config.NewFileReader(configFS, "config.yaml")),
	)
	if err != nil {
		logger.Error("failed to read config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cfg Config
	if err := m.Unmarshal(&cfg); err != nil {
		logger.Error("failed to unmarshal config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	c := container.New(container.LogHandler(logger.Handler()))

	storePort := container.NewPort[KV]("store")
	if err := container.Bind(c, storePort, container.Adapt[KV](storePort, newMemoryKV(cfg.Store.Capacity))); err != nil {
		logger.Error("failed to bind store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	greeter := container.Provide(func(ctx context.Context, deps container.Deps) (*Greeter, error) {
		if lc, ok := lifecycle.FromContext(ctx); ok {
			lc.OnClose(lifecycle.HookFunc(func(context.Context) error {
				logger.Info("greeter closed")
				return nil
			}))
		}
		return &Greeter{
			prefix: cfg.Greeting.Prefix,
			kv:     container.MustDep[KV](deps, "store"),
		}, nil
	}).Use("store", storePort)

	if err := c.Import("greeter", greeter); err != nil {
		logger.Error("failed to import greeter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	if err := c.Build(ctx); err != nil {
		logger.Error("failed to build container", slog.String("error", err.Error()))
		os.Exit(1)
	}

	g, err := container.Resolve[*Greeter](c, "greeter")
	if err != nil {
		logger.Error("failed to resolve greeter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println(g.Greet("ada"))

	if err := c.Close(ctx); err != nil {
		logger.Error("failed to close container", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
