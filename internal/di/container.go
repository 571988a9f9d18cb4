// Package di wires the object graph: config, logger, browser engine,
// content extractor, session, tools.
package di

import (
	"context"
	"fmt"
	"time"

	"webcli/internal/adapter/tool"
	"webcli/internal/application/port/input"
	"webcli/internal/application/port/output"
	"webcli/internal/application/service"
	"webcli/internal/infrastructure/browser/rod"
	"webcli/internal/infrastructure/content"
	"webcli/internal/infrastructure/env"
	"webcli/internal/infrastructure/logger"
	"webcli/internal/usecase/render"
	"webcli/internal/usecase/session"
)

type Container struct {
	Config    output.ConfigPort
	Logger    output.LoggerPort
	Browser   output.BrowserPort
	Commander input.Commander
	Tools     output.ToolRegistry
}

// Options tune container construction; zero value means env-driven.
type Options struct {
	// SessionName feeds the log file name.
	SessionName string
	// Quiet swaps the file logger for a no-op one. The MCP binary
	// needs this: its stdio carries the protocol.
	Quiet bool
}

func NewContainer(ctx context.Context, opts Options) (*Container, error) {
	cfg := env.NewEnvService()

	var log output.LoggerPort
	if opts.Quiet {
		log = logger.NewNop()
	} else {
		name := opts.SessionName
		if name == "" {
			name = "session"
		}
		fileLog, err := logger.New(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		log = fileLog.WithFields(map[string]any{"app": "webcli", "session": name})
	}

	browserCfg := rod.DefaultConfig()
	browserCfg.Headless = cfg.GetBool("WEBCLI_HEADLESS", browserCfg.Headless)
	browserCfg.Stealth = cfg.GetBool("WEBCLI_STEALTH", browserCfg.Stealth)
	browserCfg.NoSandbox = cfg.GetBool("WEBCLI_NO_SANDBOX", browserCfg.NoSandbox)
	browserCfg.Timeout = cfg.GetDuration("WEBCLI_NAV_TIMEOUT", browserCfg.Timeout)

	browser, err := rod.NewBrowserAdapter(ctx, log.WithField("component", "browser"), browserCfg)
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}

	extractor := content.New(log.WithField("component", "content"), content.DefaultConfig())

	sessionCfg := sessionConfig(cfg)
	commander := session.New(browser, extractor, log.WithField("component", "session"), sessionCfg)

	tools := service.NewToolRegistry()
	for _, t := range tool.All(commander, log) {
		tools.Register(t)
	}

	return &Container{
		Config:    cfg,
		Logger:    log,
		Browser:   browser,
		Commander: commander,
		Tools:     tools,
	}, nil
}

func sessionConfig(cfg output.ConfigPort) session.Config {
	sc := session.DefaultConfig()
	sc.NavTimeout = cfg.GetDuration("WEBCLI_NAV_TIMEOUT", 30*time.Second)
	sc.ExtractRetries = cfg.GetInt("WEBCLI_EXTRACT_RETRIES", sc.ExtractRetries)
	sc.ReadMaxLength = cfg.GetInt("WEBCLI_READ_MAX_LENGTH", sc.ReadMaxLength)
	if engine := cfg.Get("WEBCLI_SEARCH_ENGINE"); engine != "" {
		sc.SearchEngine = engine
	}

	rc := render.DefaultConfig()
	rc.MaxLinks = cfg.GetInt("WEBCLI_MAX_LINKS", rc.MaxLinks)
	rc.MaxButtons = cfg.GetInt("WEBCLI_MAX_BUTTONS", rc.MaxButtons)
	sc.Renderer = rc

	return sc
}

func (c *Container) Close() {
	if c.Commander != nil {
		c.Commander.Close()
	} else if c.Browser != nil {
		c.Browser.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Close()
	}
}
