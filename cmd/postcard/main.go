package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/postcard"
	"github.com/dmitrymomot/postcard/core/config"
	"github.com/dmitrymomot/postcard/core/logger"
	"github.com/dmitrymomot/postcard/pkg/naming"
)

// cliConfig is the environment-driven configuration. Flags default to
// these values, so POSTCARD_* variables and a .env file configure the CLI
// without repeating flags on every invocation.
type cliConfig struct {
	Renderer  postcard.Config
	OutputDir string `env:"POSTCARD_OUTPUT_DIR" envDefault:"."`
	Parallel  int    `env:"POSTCARD_PARALLEL" envDefault:"4"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	var cfg cliConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	root := &cobra.Command{
		Use:           "postcard",
		Short:         "Compile and render component-based email templates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&cfg.Renderer.Verbose, "verbose", "v", cfg.Renderer.Verbose, "debug-level progress logging")
	root.AddCommand(newRenderCmd(&cfg))

	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRenderCmd(cfg *cliConfig) *cobra.Command {
	var (
		componentsDir    string
		propsFile        string
		translationsFile string
		locale           string
		withText         bool
	)

	cmd := &cobra.Command{
		Use:   "render [files...]",
		Short: "Render .card sources to email-ready HTML documents",
		Long: `Render compiles each given .card file together with the shared
sub-components and writes <CanonicalName>.html into the output directory.
Files render concurrently; any failure aborts the run with a non-zero exit.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cfg.Renderer.Verbose)

			subs, err := loadComponents(componentsDir)
			if err != nil {
				return err
			}
			opts, err := buildOptions(propsFile, translationsFile, locale)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			r := postcard.New(
				postcard.WithConfig(cfg.Renderer),
				postcard.WithLogger(log),
			)

			g, ctx := errgroup.WithContext(cmd.Context())
			if cfg.Parallel > 0 {
				g.SetLimit(cfg.Parallel)
			}
			for _, path := range args {
				g.Go(func() error {
					return renderFile(ctx, r, log, path, subs, opts, cfg.OutputDir, withText)
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().StringVarP(&componentsDir, "components", "c", "", "directory of sub-component .card sources registered for every file")
	cmd.Flags().StringVarP(&propsFile, "props", "p", "", "JSON file with the props bag")
	cmd.Flags().StringVarP(&locale, "locale", "l", "", "default locale for rendering")
	cmd.Flags().StringVar(&translationsFile, "translations", "", "JSON file mapping locales to message catalogs")
	cmd.Flags().StringVarP(&cfg.OutputDir, "out", "o", cfg.OutputDir, "output directory")
	cmd.Flags().BoolVar(&withText, "text", false, "also write the plain text rendition as <CanonicalName>.txt")
	cmd.Flags().BoolVar(&cfg.Renderer.Strict, "strict", cfg.Renderer.Strict, "fail on sub-component load errors and unresolved tags")
	cmd.Flags().BoolVar(&cfg.Renderer.InlineCSS, "inline-css", cfg.Renderer.InlineCSS, "inline collected styles into element style attributes")
	cmd.Flags().IntVar(&cfg.Parallel, "parallel", cfg.Parallel, "maximum files rendered concurrently (0 = unlimited)")

	return cmd
}

func newLogger(verbose bool) *slog.Logger {
	if verbose {
		return logger.New(logger.WithDevelopment("postcard"))
	}
	return logger.New()
}

// loadComponents reads every .card file of the directory as a
// sub-component named after its file. Sorted so colliding canonical names
// resolve deterministically (last wins).
func loadComponents(dir string) ([]postcard.Component, error) {
	if dir == "" {
		return nil, nil
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*"+naming.Ext))
	if err != nil {
		return nil, fmt.Errorf("scan components directory: %w", err)
	}
	sort.Strings(paths)

	comps := make([]postcard.Component, 0, len(paths))
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read component %s: %w", path, err)
		}
		comps = append(comps, postcard.Component{
			Name:   filepath.Base(path),
			Source: string(src),
		})
	}
	return comps, nil
}

func buildOptions(propsFile, translationsFile, locale string) (*postcard.Options, error) {
	opts := &postcard.Options{
		I18n: postcard.I18n{DefaultLocale: locale},
	}

	if propsFile != "" {
		data, err := os.ReadFile(propsFile)
		if err != nil {
			return nil, fmt.Errorf("read props file: %w", err)
		}
		if err := json.Unmarshal(data, &opts.Props); err != nil {
			return nil, fmt.Errorf("parse props file %s: %w", propsFile, err)
		}
	}

	if translationsFile != "" {
		data, err := os.ReadFile(translationsFile)
		if err != nil {
			return nil, fmt.Errorf("read translations file: %w", err)
		}
		if err := json.Unmarshal(data, &opts.I18n.Translations); err != nil {
			return nil, fmt.Errorf("parse translations file %s: %w", translationsFile, err)
		}
	}

	return opts, nil
}

func renderFile(ctx context.Context, r *postcard.Renderer, log *slog.Logger, path string, subs []postcard.Component, opts *postcard.Options, outDir string, withText bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	name := filepath.Base(path)
	src := postcard.Source{Source: string(raw), Components: subs}

	doc, err := r.Render(ctx, name, src, opts)
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}

	base := filepath.Join(outDir, naming.Canonical(name))
	if err := os.WriteFile(base+".html", []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", base+".html", err)
	}
	log.Info("document written",
		logger.Component(naming.Canonical(name)),
		logger.Size(len(doc)),
		slog.String("file", base+".html"),
	)

	if !withText {
		return nil
	}

	text, err := r.RenderPlainText(ctx, name, src, opts)
	if err != nil {
		return fmt.Errorf("render %s text: %w", path, err)
	}
	if err := os.WriteFile(base+".txt", []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", base+".txt", err)
	}
	return nil
}
