package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"soundrip/internal/config"
	"soundrip/internal/extract"
	"soundrip/internal/logging"
	"soundrip/internal/services"
	"soundrip/internal/services/ytdlp"
	"soundrip/internal/session"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// stampRequestID tags the command's context with a fresh request identifier
// so every log line and wrapped error from this invocation correlates.
func stampRequestID(cmd *cobra.Command) string {
	ctx, id := services.WithNewRequestID(cmd.Context())
	cmd.SetContext(ctx)
	return id
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// openSession opens the session store; commands must Close it.
func (c *commandContext) openSession() (*session.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return session.Open(cfg)
}

func (c *commandContext) newExtractor() (*extract.Extractor, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	client, err := ytdlp.New(cfg.ExtractorBinary(), cfg.Extract.TimeoutSeconds)
	if err != nil {
		return nil, err
	}
	return extract.New(client, client, c.ensureLogger()), nil
}

func (c *commandContext) newProber() (*ytdlp.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return ytdlp.New(cfg.ExtractorBinary(), cfg.Extract.TimeoutSeconds)
}

// promptSecret asks for a missing credential on the terminal. Returns an
// error instead of prompting when stdin is not interactive.
func promptSecret(in io.Reader, out io.Writer, label string) (string, error) {
	if file, ok := in.(*os.File); ok {
		if !isatty.IsTerminal(file.Fd()) && !isatty.IsCygwinTerminal(file.Fd()) {
			return "", fmt.Errorf("%s is not configured (set it in the config file or environment)", label)
		}
	}
	fmt.Fprintf(out, "%s: ", label)
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read %s: %w", label, err)
	}
	value := strings.TrimSpace(line)
	if value == "" {
		return "", fmt.Errorf("%s is required", label)
	}
	return value, nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
