package app

import (
	"context"

	"go.trai.ch/cmakekit/internal/core/domain"
	"go.trai.ch/zerr"
)

// effectiveSelection picks kit and build type by precedence: flag, persisted state,
// config defaults, first declared entry. Persisted names missing from the registry are skipped.
func effectiveSelection(project *domain.Project, state *domain.State, opts RunOptions) domain.Selection {
	reg := project.Registry

	hasKit := func(name string) bool {
		_, ok := reg.Kit(name)
		return ok
	}
	hasType := func(name string) bool {
		_, ok := reg.BuildType(name)
		return ok
	}

	var firstKit, firstType string
	if kits := reg.Kits(); len(kits) > 0 {
		firstKit = kits[0].Name
	}
	if types := reg.BuildTypes(); len(types) > 0 {
		firstType = types[0].Name
	}

	sel := domain.Selection{
		Kit:       pick(opts.Kit, hasKit, state.Selection.Kit, project.DefaultKit, firstKit),
		BuildType: pick(opts.BuildType, hasType, state.Selection.BuildType, project.DefaultBuildType, firstType),
		Target:    state.Selection.Target,
	}
	if opts.Target != "" {
		sel.Target = opts.Target
	}
	return sel
}

// pick returns flag when set, otherwise the first known candidate.
func pick(flag string, known func(string) bool, candidates ...string) string {
	if flag != "" {
		return flag
	}
	for _, c := range candidates {
		if c != "" && known(c) {
			return c
		}
	}
	return ""
}

// Selection returns the effective selection for the project under opts.Dir.
func (a *App) Selection(_ context.Context, opts RunOptions) (domain.Selection, error) {
	project, state, err := a.load(opts.Dir)
	if err != nil {
		return domain.Selection{}, err
	}
	return effectiveSelection(project, state, opts), nil
}

// Select persists the kit, build type and target given in opts.
// Unset fields keep their persisted value.
func (a *App) Select(_ context.Context, opts RunOptions) (domain.Selection, error) {
	project, state, err := a.load(opts.Dir)
	if err != nil {
		return domain.Selection{}, err
	}

	if opts.Kit != "" {
		if _, ok := project.Registry.Kit(opts.Kit); !ok {
			return domain.Selection{}, zerr.With(domain.ErrUnknownSelection, "build_kit", opts.Kit)
		}
		state.Selection.Kit = opts.Kit
	}
	if opts.BuildType != "" {
		if _, ok := project.Registry.BuildType(opts.BuildType); !ok {
			return domain.Selection{}, zerr.With(domain.ErrUnknownSelection, "build_type", opts.BuildType)
		}
		state.Selection.BuildType = opts.BuildType
	}
	if opts.Target != "" {
		state.Selection.Target = opts.Target
	}

	if err := a.store.Put(project.Root, *state); err != nil {
		return domain.Selection{}, err
	}

	return effectiveSelection(project, state, RunOptions{}), nil
}

// Kits returns the kits of the project in declaration order.
func (a *App) Kits(_ context.Context, dir string) ([]domain.BuildKit, error) {
	project, _, err := a.load(dir)
	if err != nil {
		return nil, err
	}
	return project.Registry.Kits(), nil
}

// BuildTypes returns the build types of the project in declaration order.
func (a *App) BuildTypes(_ context.Context, dir string) ([]domain.BuildTypeProfile, error) {
	project, _, err := a.load(dir)
	if err != nil {
		return nil, err
	}
	return project.Registry.BuildTypes(), nil
}

// Tasks returns the available tasks, or none when the project has no CMakeLists.txt.
func (a *App) Tasks(_ context.Context, dir string) ([]domain.TaskName, error) {
	project, _, err := a.load(dir)
	if err != nil {
		return nil, err
	}
	if !project.HasProjectFile() {
		return nil, nil
	}
	return domain.TaskNames(), nil
}
