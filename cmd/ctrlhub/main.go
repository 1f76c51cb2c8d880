/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	libclr "github.com/fatih/color"
	libcsl "github.com/nabbar/golib/console"
	liblog "github.com/nabbar/golib/logger"
	logcfg "github.com/nabbar/golib/logger/config"
	loglvl "github.com/nabbar/golib/logger/level"
	spfcbr "github.com/spf13/cobra"

	libcfg "github/sabouaram/ctrlhub/config"
	libreg "github/sabouaram/ctrlhub/registry"
	libsrv "github/sabouaram/ctrlhub/server"
)

var (
	flagConfig      string
	flagControllers string
	flagDebug       bool
)

var rootCmd = &spfcbr.Command{
	Use:           "ctrlhub",
	Short:         "Supervisory server for a fleet of field controllers",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", libcfg.DefaultConfigFile, "server configuration file")
	rootCmd.PersistentFlags().StringVarP(&flagControllers, "controllers", "u", libcfg.DefaultControllersFile, "allowed controllers file")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "enable debug logging")
}

func run(cmd *spfcbr.Command, args []string) error {
	log := liblog.New(context.Background)

	defer func() {
		_ = log.Close()
	}()

	log.SetLevel(loglvl.InfoLevel)
	if flagDebug {
		log.SetLevel(loglvl.DebugLevel)
	}

	if err := log.SetOptions(&logcfg.Options{
		Stdout: &logcfg.OptionsStd{},
	}); err != nil {
		return err
	}

	fct := func() liblog.Logger {
		return log
	}

	libcsl.SetColor(libcsl.ColorPrint, int(libclr.FgCyan))

	log.Info("reading server configuration files", nil)

	cfg, err := libcfg.New(flagConfig)
	if err != nil {
		return err
	}

	log.Info("loading controllers", nil)

	reg, err := libreg.Load(flagControllers, fct)
	if err != nil {
		return err
	}

	log.Info("%d controllers loaded, waiting for incoming connections", nil, reg.Count())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := libsrv.New(cfg, reg, fct)

	if err := srv.Listen(ctx); err != nil {
		return err
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
