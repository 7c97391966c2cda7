// Package fileapi implements the CMake file API query/reply protocol.
package fileapi

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/cmakekit/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	codemodelKind  = "codemodel"
	codemodelMajor = 2
	indexPattern   = "index-*.json"
)

// Client implements ports.Introspector against the on-disk file API.
type Client struct{}

// NewClient creates a new file API client.
func NewClient() *Client {
	return &Client{}
}

// EnsureQueryStub creates the codemodel query marker inside buildDir.
// An existing marker is left untouched.
func (c *Client) EnsureQueryStub(buildDir string) error {
	queryDir := domain.FileAPIQueryDir(buildDir)
	if err := os.MkdirAll(queryDir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrIOFailure.Error()), "path", queryDir)
	}

	marker := filepath.Join(queryDir, domain.FileAPIQueryFile)
	//nolint:gosec // Marker path is derived from the build directory
	f, err := os.OpenFile(marker, os.O_WRONLY|os.O_CREATE|os.O_EXCL, domain.FilePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrIOFailure.Error()), "path", marker)
	}
	if err := f.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrIOFailure.Error()), "path", marker)
	}
	return nil
}

// ListTargets returns the targets of buildType in discovery order followed by "all".
func (c *Client) ListTargets(buildDir, buildType string) ([]domain.Target, error) {
	model, replyDir, err := loadCodemodel(buildDir)
	if err != nil {
		return nil, err
	}

	cfg := selectConfiguration(model, buildType)
	targets := make([]domain.Target, 0, len(cfg.Targets)+1)
	for _, ref := range cfg.Targets {
		detail, err := loadTarget(replyDir, ref)
		if err != nil {
			return nil, err
		}
		if strings.Contains(detail.Name, domain.AutogenMarker) {
			continue
		}
		targets = append(targets, domain.Target{Name: detail.Name, Kind: domain.TargetKind(detail.Type)})
	}

	return append(targets, domain.AllTarget()), nil
}

// ResolveExecutablePath returns the first artifact of an executable target.
// The path is not checked for existence.
func (c *Client) ResolveExecutablePath(buildDir, target, buildType string) (string, error) {
	model, replyDir, err := loadCodemodel(buildDir)
	if err != nil {
		return "", err
	}

	cfg := selectConfiguration(model, buildType)
	for _, ref := range cfg.Targets {
		if ref.Name != target {
			continue
		}

		detail, err := loadTarget(replyDir, ref)
		if err != nil {
			return "", err
		}
		if detail.Type != string(domain.KindExecutable) {
			return "", zerr.With(zerr.With(domain.ErrWrongKind, "target", target), "kind", detail.Type)
		}
		if len(detail.Artifacts) == 0 {
			return "", zerr.With(zerr.With(domain.ErrTargetNotFound, "target", target), "reason", "no artifacts")
		}

		path := filepath.FromSlash(detail.Artifacts[0].Path)
		if filepath.IsAbs(path) {
			return path, nil
		}
		base := model.Paths.Build
		if base == "" {
			base = buildDir
		}
		return filepath.Join(base, path), nil
	}

	return "", zerr.With(domain.ErrTargetNotFound, "target", target)
}

func loadCodemodel(buildDir string) (*codemodel, string, error) {
	if info, err := os.Stat(buildDir); err != nil || !info.IsDir() {
		return nil, "", zerr.With(domain.ErrNotConfigured, "build_dir", buildDir)
	}

	replyDir := domain.FileAPIReplyDir(buildDir)
	indexPath, err := newestIndex(replyDir)
	if err != nil {
		return nil, "", err
	}

	var index indexFile
	if err := readJSON(indexPath, &index); err != nil {
		return nil, "", err
	}

	codemodelFile := codemodelPath(&index)
	if codemodelFile == "" {
		return nil, "", zerr.With(domain.ErrNoReply, "index", indexPath)
	}

	var model codemodel
	if err := readJSON(filepath.Join(replyDir, codemodelFile), &model); err != nil {
		return nil, "", err
	}
	return &model, replyDir, nil
}

// newestIndex returns the lexicographically greatest index file.
func newestIndex(replyDir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(replyDir, indexPattern))
	if err != nil || len(matches) == 0 {
		return "", zerr.With(domain.ErrNoReply, "reply_dir", replyDir)
	}
	slices.Sort(matches)
	return matches[len(matches)-1], nil
}

func codemodelPath(index *indexFile) string {
	if item, ok := index.Reply[domain.FileAPIQueryFile]; ok && item.JSONFile != "" {
		return item.JSONFile
	}
	for _, obj := range index.Objects {
		if obj.Kind == codemodelKind && obj.Version.Major == codemodelMajor {
			return obj.JSONFile
		}
	}
	return ""
}

func selectConfiguration(model *codemodel, buildType string) configuration {
	for _, cfg := range model.Configurations {
		if strings.EqualFold(cfg.Name, buildType) {
			return cfg
		}
	}
	if len(model.Configurations) > 0 {
		return model.Configurations[0]
	}
	return configuration{}
}

func loadTarget(replyDir string, ref targetRef) (*targetDetail, error) {
	var detail targetDetail
	if err := readJSON(filepath.Join(replyDir, ref.JSONFile), &detail); err != nil {
		return nil, zerr.With(err, "target", ref.Name)
	}
	if detail.Name == "" {
		detail.Name = ref.Name
	}
	return &detail, nil
}

func readJSON(path string, target any) error {
	//nolint:gosec // Reply paths are derived from the build directory
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrReplyReadFailed.Error()), "path", path)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrReplyParseFailed.Error()), "path", path)
	}
	return nil
}
