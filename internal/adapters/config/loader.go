// Package config provides the configuration loader for cmakekit.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/joho/godotenv"
	"go.trai.ch/cmakekit/internal/core/domain"
	"go.trai.ch/cmakekit/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the config schema version understood by this loader.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads cmakekit.yaml found from cwd upwards and returns the project.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	configPath, found := findConfiguration(absCwd)
	if !found {
		return l.buildProject(absCwd, &Configfile{})
	}

	var cfg Configfile
	if err := readAndUnmarshalYAML(configPath, &cfg); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if cfg.Version != "" && cfg.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, expected %q", domain.ConfigFileName, cfg.Version, SupportedVersion))
	}

	return l.buildProject(filepath.Dir(configPath), &cfg)
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

func (l *Loader) buildProject(root string, cfg *Configfile) (*domain.Project, error) {
	types := buildTypes(cfg.BuildTypes)
	kits, err := buildKits(root, cfg.Kits)
	if err != nil {
		return nil, err
	}

	registry, err := domain.NewRegistry(types, kits)
	if err != nil {
		return nil, err
	}

	project := &domain.Project{
		Root:                root,
		SourceDir:           resolvePath(root, cfg.SourceDir),
		BuildDir:            cfg.BuildDir,
		Debugger:            cfg.Debugger,
		DefaultKit:          cfg.Defaults.Kit,
		DefaultBuildType:    cfg.Defaults.BuildType,
		LinkCompileCommands: true,
		Registry:            registry,
	}
	if project.BuildDir == "" {
		project.BuildDir = domain.DefaultBuildDirTemplate
	}
	if len(project.Debugger) == 0 {
		project.Debugger = slices.Clone(domain.DefaultDebugger)
	}
	if cfg.Tooling.LinkCompileCommands != nil {
		project.LinkCompileCommands = *cfg.Tooling.LinkCompileCommands
	}

	if err := validateDefaults(project); err != nil {
		return nil, err
	}

	return project, nil
}

func buildTypes(dtos orderedMap[BuildTypeDTO]) []domain.BuildTypeProfile {
	if dtos.Len() == 0 {
		return domain.BuiltinBuildTypes()
	}

	types := make([]domain.BuildTypeProfile, 0, dtos.Len())
	for _, e := range dtos.entries {
		types = append(types, domain.BuildTypeProfile{
			Name:      e.key,
			BuildType: e.value.BuildType,
			Defines:   vars(e.value.Defines),
			Env:       vars(e.value.Env),
		})
	}
	return types
}

func buildKits(root string, dtos orderedMap[KitDTO]) ([]domain.BuildKit, error) {
	if dtos.Len() == 0 {
		return domain.BuiltinKits(), nil
	}

	kits := make([]domain.BuildKit, 0, dtos.Len())
	for _, e := range dtos.entries {
		dto := e.value

		env, err := loadEnvFile(root, dto.EnvFile)
		if err != nil {
			return nil, zerr.With(err, "kit", e.key)
		}

		aware := true
		if dto.BuildTypeAware != nil {
			aware = *dto.BuildTypeAware
		}

		kits = append(kits, domain.BuildKit{
			Name:      e.key,
			Generator: dto.Generator,
			Compilers: domain.Compilers{
				C:   dto.Compilers.C,
				CXX: dto.Compilers.CXX,
			},
			ToolchainFile:  resolvePath(root, dto.ToolchainFile),
			Defines:        vars(dto.Defines),
			Env:            env.Merge(vars(dto.Env)),
			BuildTypeAware: aware,
		})
	}
	return kits, nil
}

// loadEnvFile reads a dotenv file; keys are sorted since dotenv files carry no order guarantee.
func loadEnvFile(root, path string) (domain.Vars, error) {
	var env domain.Vars
	if path == "" {
		return env, nil
	}

	absPath := resolvePath(root, path)
	values, err := godotenv.Read(absPath)
	if err != nil {
		return env, zerr.With(zerr.Wrap(err, domain.ErrEnvFileFailed.Error()), "path", absPath)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		env.Set(k, values[k])
	}
	return env, nil
}

func validateDefaults(p *domain.Project) error {
	if p.DefaultKit != "" {
		if _, ok := p.Registry.Kit(p.DefaultKit); !ok {
			return zerr.With(zerr.With(domain.ErrInvalidConfig, "field", "defaults.kit"), "value", p.DefaultKit)
		}
	}
	if p.DefaultBuildType != "" {
		if _, ok := p.Registry.BuildType(p.DefaultBuildType); !ok {
			return zerr.With(zerr.With(domain.ErrInvalidConfig, "field", "defaults.buildType"), "value", p.DefaultBuildType)
		}
	}
	return nil
}

func resolvePath(root, path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(root, path))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered by walking up from cwd
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
