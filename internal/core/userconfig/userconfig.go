// Package userconfig renders the wrapper and defines templates and points the
// OpenLane build configuration at the design's sources.
package userconfig

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"text/template"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/nightconcept/tt-setup/internal/core/config"
	"github.com/nightconcept/tt-setup/internal/core/pins"
)

const (
	WrapperTemplate = "tiny_user_project.v.tmpl"
	DefinesTemplate = "user_defines.v.tmpl"

	WrapperFile      = "tiny_user_project.v"
	UserDefinesFile  = "user_defines.v"
	DefinesFile      = "defines.v"
	VerilogFilesKey  = "VERILOG_FILES"
	SourcePathPrefix = "dir::../../"
)

// TemplateData is passed to both templates.
// ModuleName is empty when rendering the defines template.
type TemplateData struct {
	ModuleName  string
	InputRange  pins.Range
	OutputRange pins.Range
}

// Write renders the wrapper and defines files and rewrites the build
// configuration's VERILOG_FILES list. sources is not modified.
// The files are written one after the other; a failure leaves earlier ones in place.
func Write(moduleName string, sources []string, alloc pins.Allocation, s *config.Settings) error {
	rtl := s.Paths.RTLDir
	data := TemplateData{ModuleName: moduleName, InputRange: alloc.In, OutputRange: alloc.Out}

	if err := render(s.Path(path.Join(s.Paths.TemplateDir, WrapperTemplate)), s.Path(path.Join(rtl, WrapperFile)), data); err != nil {
		return err
	}
	data.ModuleName = ""
	if err := render(s.Path(path.Join(s.Paths.TemplateDir, DefinesTemplate)), s.Path(path.Join(rtl, UserDefinesFile)), data); err != nil {
		return err
	}

	files := make([]string, 0, len(sources)+2)
	files = append(files, sources...)
	files = append(files, path.Join(rtl, DefinesFile), path.Join(rtl, WrapperFile))
	return UpdateBuildConfig(s.Path(s.Paths.BuildConfig), files)
}

func render(templatePath, outPath string, data TemplateData) error {
	tpl, err := template.New(filepath.Base(templatePath)).Option("missingkey=error").ParseFiles(templatePath)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", templatePath, err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render template %s: %w", templatePath, err)
	}

	// Overwrite any previously generated file.
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}

// UpdateBuildConfig replaces the VERILOG_FILES entry of the JSON file at
// configPath with files, each prefixed with SourcePathPrefix. Other keys and
// their order are kept.
func UpdateBuildConfig(configPath string, files []string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return fmt.Errorf("%s is not a JSON object", configPath)
	}

	entries := make([]string, len(files))
	for i, f := range files {
		entries[i] = SourcePathPrefix + f
	}

	data, err = sjson.SetBytes(data, VerilogFilesKey, entries)
	if err != nil {
		return fmt.Errorf("set %s in %s: %w", VerilogFilesKey, configPath, err)
	}
	data = pretty.PrettyOptions(data, &pretty.Options{Width: 80, Indent: "    "})

	file, err := os.OpenFile(configPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	_, err = file.Write(data)
	return err
}
