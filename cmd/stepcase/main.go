/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"stepcase/internal/config"
	"stepcase/internal/crash"
	applog "stepcase/internal/log"
	"stepcase/internal/manifest"
	"stepcase/internal/storage"
	"stepcase/internal/translate"
	"stepcase/internal/version"
)

func usage() {
	fmt.Println("stepcase — dialogue script to step-case translator")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  stepcase version|-v|--version                        Show version")
	fmt.Println("  stepcase translate -in <file> -out <file>            Translate a script")
	fmt.Println("            [-manifest <file>] [-strict] [-no-history]")
	fmt.Println("  stepcase history <dir> [-n <count>]                  List recorded runs for an output dir")
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	defer crash.Recover()

	args := os.Args
	if len(args) < 2 {
		usage()
		os.Exit(2)
	}
	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println(version.String())
	case "translate":
		runTranslate(l, args[2:])
	case "history":
		runHistory(l, args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func runTranslate(l *slog.Logger, args []string) {
	fs := flag.NewFlagSet("translate", flag.ExitOnError)
	in := fs.String("in", "", "input script file")
	out := fs.String("out", "", "output code file")
	manifestPath := fs.String("manifest", "", "optional cast manifest (JSON)")
	strict := fs.Bool("strict", false, "reject unknown directives and speakers")
	noHistory := fs.Bool("no-history", false, "skip recording the run")
	_ = fs.Parse(args)
	if *in == "" || *out == "" {
		fmt.Println("translate requires -in and -out")
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
	}
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})

	raw, err := os.ReadFile(*in)
	if err != nil {
		l.Error("read input failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	opts := translate.Options{Codegen: cfg.Codegen, Strict: *strict}
	if *manifestPath != "" {
		cast, err := manifest.Load(*manifestPath)
		if err != nil {
			l.Error("manifest rejected", slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		opts.Cast = cast.Names()
	}

	res, err := translate.Run(string(raw), opts)
	if err != nil {
		l.Error("translation failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, []byte(res.Output), 0o644); err != nil {
		l.Error("write output failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	l.Info("translated",
		slog.String("in", *in), slog.String("out", *out),
		slog.Int("lines", res.Lines), slog.Int("nodes", res.Nodes), slog.Int("steps", res.Steps))

	if cfg.History.Enabled && !*noHistory {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		run := storage.Run{Time: time.Now(), Input: string(raw), Output: res.Output, Steps: res.Steps}
		if err := storage.SaveRun(ctx, filepath.Dir(*out), run, cfg.History.Keep); err != nil {
			l.Warn("history save failed", slog.Any("err", err))
		}
	}
}

func runHistory(l *slog.Logger, args []string) {
	if len(args) < 1 {
		fmt.Println("history requires <dir>")
		usage()
		os.Exit(2)
	}
	dir := args[0]
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	n := fs.Int("n", 10, "how many runs to list")
	_ = fs.Parse(args[1:])

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	runs, err := storage.ListRuns(ctx, dir, *n)
	if err != nil {
		l.Error("history list failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return
	}
	for _, r := range runs {
		fmt.Printf("%d\t%s\t%d steps\n", r.ID, r.Time.Local().Format(time.RFC3339), r.Steps)
	}
}
