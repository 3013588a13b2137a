package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Sir-Bobert-II/BOR-define/pkg/querier"
)

const (
	codeErrorArgs = iota + 1
	codeInternalError
)

const shutdownTimeout = 5 * time.Second

// envKeys are read from DEFINE_* variables even when config file lacks them.
var envKeys = []string{
	"zapconfig",
	"remote.host",
	"remote.protocol",
	"remote.timeout",
	"remote.maxworkers",
	"discord.token",
	"discord.guildid",
}

func exitf(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(code)
}

type Config struct {
	// ZapConfig is zap.Config encoded as JSON, empty means development logger
	ZapConfig string
	Host      string

	Remote  querier.Config
	Discord DiscordConfig
}

func buildLogger(conf *Config) (*zap.Logger, error) {
	if conf.ZapConfig == "" {
		return zap.NewDevelopment()
	}
	var zapConf zap.Config
	if err := json.Unmarshal([]byte(conf.ZapConfig), &zapConf); err != nil {
		return nil, fmt.Errorf("invalid zap config: %w", err)
	}
	return zapConf.Build()
}

// loadConfig merges flags, DEFINE_* environment and optional config file.
func loadConfig(args []string) (*Config, error) {
	flags := pflag.NewFlagSet("defines", pflag.ContinueOnError)
	flags.StringP("config", "c", "config.yaml", "path to local config")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}
	v.SetEnvPrefix("DEFINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("host", "localhost:8080")
	v.SetDefault("remote.timeout", "10s")
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	v.SetConfigFile(v.GetString("config"))
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("can not decode config: %w", err)
	}
	return &conf, nil
}

func main() {
	conf, err := loadConfig(os.Args[1:])
	if err != nil {
		exitf(codeErrorArgs, "Failure while parsing arguments: %s\n", err)
	}
	logger, err := buildLogger(conf)
	if err != nil {
		exitf(codeErrorArgs, "Failure while instantiating logger: %s\n", err)
	}
	defer logger.Sync() // nolint:errcheck

	server := New(logger, conf)
	logger.Info("Starting server",
		zap.String("host", conf.Host),
		zap.String("remote", conf.Remote.Host),
		zap.Duration("timeout", conf.Remote.Timeout),
	)

	var bot io.Closer
	if conf.Discord.Token != "" {
		session, err := openBot(logger.Named("discord"), conf.Discord, server.handler)
		if err != nil {
			exitf(codeInternalError, "Can not start Discord bot: %s\n", err)
		}
		bot = session
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		<-interrupt
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Stop(ctx, bot); err != nil {
			logger.Error("Shutdown error", zap.Error(err))
		}
	}()

	logger.Info("Listening started", zap.String("url", "http://"+conf.Host))
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", zap.Error(err))
		os.Exit(codeInternalError)
	}
	<-closed
	logger.Info("Closed")
}
