package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"zyracss/cache"
	"zyracss/common"
	"zyracss/config"
	"zyracss/parser"
	"zyracss/zyra"
)

func newGenerateCmd() *cobra.Command {
	var (
		output   string
		minify   bool
		noGroup  bool
		cacheDir string
	)

	cmd := &cobra.Command{
		Use:   "generate [paths...]",
		Short: "Generate CSS from HTML or source files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(args, output, minify, noGroup, cacheDir)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write CSS to this file instead of stdout")
	cmd.Flags().BoolVar(&minify, "minify", false, "emit minified CSS")
	cmd.Flags().BoolVar(&noGroup, "no-group", false, "disable selector grouping")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist generations to a cache database under this directory")
	return cmd
}

func runGenerate(paths []string, output string, minify, noGroup bool, cacheDir string) error {
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		common.LogError("invalid-config: %s", cfgErr.Message)
		return errors.New("invalid-config")
	}
	cfg.Engine.Minify = minify

	files, err := expandPaths(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		common.LogError("no input files matched")
		return errors.New("no-files-found")
	}

	blobs, totalBytes, readErr := readFiles(files)
	if readErr != nil {
		return readErr
	}
	if totalBytes > parser.MaxBlobBytes {
		common.LogError("input exceeds %d bytes", parser.MaxBlobBytes)
		return errors.New("input-too-large")
	}

	engine, engErr := zyra.New(cfg.Engine)
	if engErr != nil {
		common.LogError("invalid-config: %s", engErr.Message)
		return errors.New("invalid-config")
	}

	opts := zyra.Options{Minify: minify}
	if noGroup {
		opts.GroupSelectors = zyra.Bool(false)
	}

	var store *cache.Store
	if cacheDir != "" {
		store, err = cache.OpenStore(cacheDir)
		if err != nil {
			common.Warning("persistent cache unavailable: %v", err)
		} else {
			defer store.Close()
		}
	}

	extracted, exErr := engine.Extract(blobs, parser.ExtractOptions{})
	if exErr != nil {
		common.LogError("%s: %s", exErr.Code, exErr.Message)
		return errors.New("input-too-large")
	}

	var css string
	key := cache.Key(extracted.Classes, opts.Bits())
	if store != nil {
		if cached, ok, storeErr := store.Get(key); storeErr == nil && ok {
			common.Debug("persistent cache hit")
			css = cached
		}
	}

	if css == "" {
		result, genErr := engine.Generate(zyra.Input{HTML: blobs}, opts)
		if genErr != nil {
			common.LogError("%s: %s", genErr.Code, genErr.Message)
			return errors.New(genErr.Code)
		}
		for _, inv := range result.Invalid {
			common.Warning("skipped %s: %s (%s)", inv.ClassName, inv.Reason, inv.Code)
		}
		common.Info("%d classes, %d rules%s",
			result.Stats.ValidClasses, result.Stats.GeneratedRules,
			map[bool]string{true: " (cached)", false: ""}[result.Stats.FromCache])
		css = result.CSS
		if store != nil {
			if storeErr := store.Put(key, css); storeErr != nil {
				common.Warning("failed to persist generation: %v", storeErr)
			}
		}
	}

	if output == "" {
		fmt.Print(css)
		return nil
	}
	if err := os.WriteFile(output, []byte(css), 0o644); err != nil {
		common.LogError("failed to write %s: %v", output, err)
		return errors.New("no-readable-files")
	}
	common.Success("wrote %s (%d bytes)", output, len(css))
	return nil
}

// expandPaths resolves each argument: globs expand, directories walk for
// markup-bearing files, plain files pass through.
func expandPaths(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			walkErr := filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && isSourceFile(p) {
					files = append(files, p)
				}
				return nil
			})
			if walkErr != nil {
				common.LogError("failed to walk %s: %v", path, walkErr)
				return nil, errors.New("no-readable-files")
			}
			continue
		}
		matches, globErr := filepath.Glob(path)
		if globErr != nil || len(matches) == 0 {
			if err == nil {
				files = append(files, path)
			}
			continue
		}
		files = append(files, matches...)
	}
	if len(files) > parser.MaxFilesLimit {
		files = files[:parser.MaxFilesLimit]
		common.Warning("file list truncated to %d entries", parser.MaxFilesLimit)
	}
	return files, nil
}

func isSourceFile(path string) bool {
	switch filepath.Ext(path) {
	case ".html", ".htm", ".jsx", ".tsx", ".vue", ".svelte", ".js", ".ts":
		return true
	}
	return false
}

// readFiles loads every file, stripping any byte-order mark. A file that
// cannot be read is skipped with a warning; zero readable files is fatal.
func readFiles(files []string) ([]string, int, error) {
	var blobs []string
	var total int
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			common.Warning("skipping unreadable file %s: %v", file, err)
			continue
		}
		text := decodeBlob(data)
		blobs = append(blobs, text)
		total += len(text)
	}
	if len(blobs) == 0 {
		common.LogError("none of the matched files could be read")
		return nil, 0, errors.New("no-readable-files")
	}
	return blobs, total, nil
}

// decodeBlob strips UTF-8/UTF-16 BOMs and decodes UTF-16 content to a
// UTF-8 string. The core only ever sees Unicode text.
func decodeBlob(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return string(data[3:])
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return decodeUTF16(data[2:], false)
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return decodeUTF16(data[2:], true)
	}
	return string(data)
}

func decodeUTF16(data []byte, bigEndian bool) string {
	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		if bigEndian {
			units = append(units, uint16(data[i])<<8|uint16(data[i+1]))
		} else {
			units = append(units, uint16(data[i+1])<<8|uint16(data[i]))
		}
	}
	var b bytes.Buffer
	for _, r := range utf16.Decode(units) {
		if r == utf8.RuneError {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
