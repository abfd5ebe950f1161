// Package source resolves the HDL files and top module that make up a user design.
package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/nightconcept/tt-setup/internal/core/config"
	"github.com/nightconcept/tt-setup/internal/core/downloader"
	"github.com/nightconcept/tt-setup/internal/core/hasher"
	"github.com/nightconcept/tt-setup/internal/core/project"
)

// Files written or referenced under the RTL directory for Wokwi designs.
const (
	WokwiVerilogFile = "user_module.v"
	WokwiDiagramFile = "wokwi_diagram.json"
	CellsFile        = "cells.v"
)

// ReservedTopModule clashes with the wrapper generated around the user design.
const ReservedTopModule = "top"

var (
	ErrFetch             = errors.New("could not download design")
	ErrNoSourceFiles     = errors.New("source files must be provided if wokwi_id is set to 0")
	ErrNoTopModule       = errors.New("must provide a top module name")
	ErrReservedTopModule = errors.New("top module name is reserved")
	ErrNegativeWokwiID   = errors.New("wokwi id must not be negative")
)

// WokwiURL builds the Wokwi API URL for one asset of a project, e.g. "verilog" or "diagram.json".
func WokwiURL(baseURL string, id project.WokwiID, asset string) string {
	return fmt.Sprintf("%s/api/projects/%d/%s", strings.TrimSuffix(baseURL, "/"), id, asset)
}

// TopModule returns the name of the design's top module.
// Wokwi designs are always named user_module_<id>.
func TopModule(info *project.ProjectInfo) (string, error) {
	if info.WokwiID < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegativeWokwiID, info.WokwiID)
	}

	name := info.TopModule
	if !info.WokwiID.IsLocal() {
		name = fmt.Sprintf("user_module_%d", info.WokwiID)
	}
	if name == "" {
		return "", ErrNoTopModule
	}
	if name == ReservedTopModule {
		return "", fmt.Errorf("%w: %q", ErrReservedTopModule, name)
	}
	return name, nil
}

// Resolve returns the slash-separated source files of the design.
// Local designs return their declared files unchanged. Wokwi designs are
// downloaded into the RTL directory first.
func Resolve(ctx context.Context, info *project.ProjectInfo, s *config.Settings) ([]string, error) {
	if info.WokwiID < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeWokwiID, info.WokwiID)
	}
	if info.WokwiID.IsLocal() {
		if len(info.SourceFiles) == 0 {
			return nil, ErrNoSourceFiles
		}
		if info.TopModule == "" {
			return nil, ErrNoTopModule
		}
		return info.SourceFiles, nil
	}

	verilogPath := path.Join(s.Paths.RTLDir, WokwiVerilogFile)
	if err := fetch(ctx, WokwiURL(s.Wokwi.BaseURL, info.WokwiID, "verilog"), s.Path(verilogPath)); err != nil {
		return nil, err
	}

	diagramPath := path.Join(s.Paths.RTLDir, WokwiDiagramFile)
	if err := fetch(ctx, WokwiURL(s.Wokwi.BaseURL, info.WokwiID, "diagram.json"), s.Path(diagramPath)); err != nil {
		return nil, err
	}

	return []string{verilogPath, path.Join(s.Paths.RTLDir, CellsFile)}, nil
}

func fetch(ctx context.Context, url, dest string) error {
	slog.Info("trying to download " + url)
	content, err := downloader.DownloadFile(ctx, url)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFetch, err)
	}
	slog.Debug("downloaded", "url", url, "bytes", len(content), "hash", hasher.Digest(content))

	if err := os.WriteFile(dest, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}
