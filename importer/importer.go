// Package importer converts documents into Markdown bundles: a directory
// holding index.md and the media extracted from the source.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"notepad/config"
)

const (
	IndexName   = "index.md"
	AssetsDir   = "assets"
	mediaDir    = "media"
	bundleAffix = "_bundle"
)

// Converter turns the document at path into GitHub flavored Markdown.
// Embedded media is extracted below mediaDir.
type Converter interface {
	Convert(ctx context.Context, path, format, mediaDir string) (string, error)
}

// Bundle is the result of an import.
type Bundle struct {
	Dir       string
	IndexPath string
	Markdown  string
}

// Format maps a file extension to the converter's input format name. It
// returns "" for files that cannot be imported.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return "docx"
	case ".html", ".htm":
		return "html"
	}
	return ""
}

// Importable reports whether path can be turned into a bundle.
func Importable(path string) bool {
	return Format(path) != ""
}

// BundleDir returns the bundle directory created for src.
func BundleDir(src string) string {
	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(filepath.Dir(src), name+bundleAffix)
}

// Import converts src into <name>_bundle/index.md next to it and moves the
// extracted media into the bundle's assets directory.
func Import(ctx context.Context, conv Converter, src string) (*Bundle, error) {
	format := Format(src)
	if format == "" {
		return nil, fmt.Errorf("cannot import %s: unsupported format", filepath.Base(src))
	}
	if _, err := os.Stat(src); err != nil {
		return nil, err
	}

	dir := BundleDir(src)
	assets := filepath.Join(dir, AssetsDir)
	if err := os.MkdirAll(assets, config.DirPerm); err != nil {
		return nil, fmt.Errorf("create bundle: %w", err)
	}

	out, err := conv.Convert(ctx, src, format, dir)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", filepath.Base(src), err)
	}

	moved, err := moveMedia(filepath.Join(dir, mediaDir), assets)
	if err != nil {
		return nil, fmt.Errorf("collect media: %w", err)
	}
	if moved {
		out = rewriteMediaRefs(out, dir)
	}

	index := filepath.Join(dir, IndexName)
	if err := os.WriteFile(index, []byte(out), config.FilePerm); err != nil {
		return nil, fmt.Errorf("write %s: %w", IndexName, err)
	}
	slog.Info("imported bundle", slog.String("src", src), slog.String("bundle", dir))
	return &Bundle{Dir: dir, IndexPath: index, Markdown: out}, nil
}

// moveMedia moves every entry of media into assets and removes media. It
// reports whether a media directory existed.
func moveMedia(media, assets string) (bool, error) {
	entries, err := os.ReadDir(media)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		dst := filepath.Join(assets, e.Name())
		if err := os.RemoveAll(dst); err != nil {
			return true, err
		}
		if err := os.Rename(filepath.Join(media, e.Name()), dst); err != nil {
			return true, err
		}
	}
	return true, os.RemoveAll(media)
}

// rewriteMediaRefs points media links at assets/, relative to the bundle.
func rewriteMediaRefs(md, bundleDir string) string {
	for _, prefix := range []string{
		filepath.ToSlash(filepath.Join(bundleDir, mediaDir)) + "/",
		filepath.Join(bundleDir, mediaDir) + string(filepath.Separator),
	} {
		md = strings.ReplaceAll(md, prefix, AssetsDir+"/")
	}
	return strings.ReplaceAll(md, mediaDir+"/", AssetsDir+"/")
}
