// Package setup defines the ttsetup command line application.
package setup

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/tt-setup/internal/core/config"
	"github.com/nightconcept/tt-setup/internal/core/docs"
	"github.com/nightconcept/tt-setup/internal/core/pins"
	"github.com/nightconcept/tt-setup/internal/core/project"
	"github.com/nightconcept/tt-setup/internal/core/source"
	"github.com/nightconcept/tt-setup/internal/core/stats"
	"github.com/nightconcept/tt-setup/internal/core/userconfig"
)

const (
	flagCheckDocs        = "check-docs"
	flagGetStats         = "get-stats"
	flagCreateUserConfig = "create-user-config"
	flagDebug            = "debug"
	flagYaml             = "yaml"
	flagSettings         = "settings"
	flagNoColor          = "no-color"
)

// NewApp builds the application. Logs and reports go to w.
func NewApp(w io.Writer) *cli.App {
	return &cli.App{
		Name:      "ttsetup",
		Usage:     "Check a Tiny Tapeout project and generate its build configuration",
		Version:   "v0.1.0",
		Writer:    w,
		ErrWriter: w,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  flagCheckDocs,
				Usage: "check the documentation part of the yaml",
			},
			&cli.BoolFlag{
				Name:  flagGetStats,
				Usage: "print some stats from the run",
			},
			&cli.BoolFlag{
				Name:  flagCreateUserConfig,
				Usage: "create the wrapper, defines and build config for the top module and source files",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "debug logging",
			},
			&cli.StringFlag{
				Name:  flagYaml,
				Usage: "yaml file to load",
				Value: config.DescriptorName,
			},
			&cli.BoolFlag{
				Name:  flagNoColor,
				Usage: "never colour output, even on a terminal",
			},
			&cli.StringFlag{
				Name:  flagSettings,
				Usage: "optional TOML file overriding tool paths",
				Value: config.SettingsName,
			},
		},
		Before: func(c *cli.Context) error {
			setupLogging(c.App.Writer, c.Bool(flagDebug))
			if c.Bool(flagNoColor) {
				color.NoColor = true
			}
			return nil
		},
		Action: run,
	}
}

func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func run(c *cli.Context) error {
	var selected []string
	for _, name := range []string{flagGetStats, flagCheckDocs, flagCreateUserConfig} {
		if c.Bool(name) {
			selected = append(selected, name)
		}
	}
	switch len(selected) {
	case 0:
		return cli.ShowAppHelp(c)
	case 1:
	default:
		slog.Error("only one operation may be selected", "flags", selected)
		return cli.Exit("", 1)
	}

	settings, err := config.LoadSettings(c.String(flagSettings))
	if err != nil {
		slog.Error("failed to load settings", "path", c.String(flagSettings), "error", err)
		return cli.Exit("", 1)
	}

	switch selected[0] {
	case flagGetStats:
		err = getStats(c.App.Writer, settings)
	case flagCheckDocs:
		err = checkDocs(c.String(flagYaml))
	case flagCreateUserConfig:
		err = createUserConfig(c, settings)
	}
	if err != nil {
		if errors.Is(err, source.ErrFetch) {
			slog.Warn(err.Error())
		} else {
			slog.Error(err.Error())
		}
		return cli.Exit("", 1)
	}
	return nil
}

func getStats(w io.Writer, s *config.Settings) error {
	report, err := stats.Load(s.Path(s.Paths.MetricsReport))
	if err != nil {
		return fmt.Errorf("load metrics report: %w", err)
	}
	return report.WriteMarkdown(w)
}

func checkDocs(descriptorPath string) error {
	slog.Info("checking docs")
	desc, err := loadDescriptor(descriptorPath)
	if err != nil {
		return err
	}
	return docs.Check(desc.Documentation)
}

func createUserConfig(c *cli.Context, s *config.Settings) error {
	slog.Info("creating include file")
	desc, err := loadDescriptor(c.String(flagYaml))
	if err != nil {
		return err
	}
	if desc.Project == nil {
		return fmt.Errorf("%s has no project section", c.String(flagYaml))
	}

	sources, err := source.Resolve(c.Context, desc.Project, s)
	if err != nil {
		return err
	}
	topModule, err := source.TopModule(desc.Project)
	if err != nil {
		return err
	}
	alloc, err := pins.Allocate(len(desc.Documentation.Inputs), len(desc.Documentation.Outputs))
	if err != nil {
		return err
	}
	slog.Debug("resolved design", "top_module", topModule, "sources", sources, "inputs", alloc.In.String(), "outputs", alloc.Out.String())

	return userconfig.Write(topModule, sources, alloc, s)
}

func loadDescriptor(filePath string) (*project.Descriptor, error) {
	desc, err := config.LoadDescriptor(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s not found", filePath)
		}
		return nil, fmt.Errorf("failed to load %s: %w", filePath, err)
	}
	return desc, nil
}
