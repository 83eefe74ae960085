// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ostafen/srf/internal/config"
	"github.com/ostafen/srf/internal/env"
	"github.com/ostafen/srf/internal/logger"
	"github.com/ostafen/srf/internal/srf"
	"github.com/spf13/cobra"
)

func Execute() error {
	return NewRootCommand().Execute()
}

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     env.AppName,
		Short:   env.AppName + " - decoder for SRF sweep/event files",
		Version: fmt.Sprintf("%s (commit %s, built %s)", env.Version, env.CommitHash, env.BuildTime),
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "path to a YAML config file (default: ./srf.yaml if present)")
	flags.String("revision", srf.RevisionCurrent.String(), "sentinel layout used to find sweep records (current, legacy)")
	flags.Bool("mmap", false, "memory-map the input file instead of reading it")
	flags.String("log-level", "WARN", "minimum log level (DEBUG, INFO, WARN, ERROR)")
	flags.String("log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(DefineDecodeCommand())
	rootCmd.AddCommand(DefinePSTHCommand())
	rootCmd.AddCommand(DefineRevisionsCommand())

	return rootCmd
}

// session bundles what a command needs to decode a file.
type session struct {
	cfg     config.Config
	logger  *slog.Logger
	logFile *os.File
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(cmd)
	if err != nil {
		return nil, err
	}

	log, logFile, err := logger.Setup(cfg.LogFile, logger.ParseLevel(cfg.LogLevel), cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return &session{
		cfg:     cfg,
		logger:  log,
		logFile: logFile,
	}, nil
}

func (s *session) decode(path string) (*srf.Result, error) {
	dec := srf.NewDecoder(s.logger, s.cfg.DecoderRevision())

	res, err := dec.DecodeFile(path, s.cfg.Mmap)
	if err != nil {
		s.logger.Error("decode failed", "path", path, "err", err)
		return nil, err
	}

	s.logger.Info("file decoded",
		"path", path,
		"revision", res.Revision,
		"sweeps", len(res.Sweeps),
		"events", res.NumEvents(),
	)
	return res, nil
}

func (s *session) Close() error {
	if s.logFile != nil {
		return s.logFile.Close()
	}
	return nil
}
