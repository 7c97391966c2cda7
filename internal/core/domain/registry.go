package domain

import "go.trai.ch/zerr"

// BuildTypeProfile is a named set of build-type overrides.
type BuildTypeProfile struct {
	Name string
	// BuildType is the value passed as CMAKE_BUILD_TYPE.
	BuildType string
	Defines   Vars
	Env       Vars
}

// Compilers holds the explicit compiler executables of a kit, one per language.
type Compilers struct {
	C   string
	CXX string
}

// BuildKit is a named toolchain description.
type BuildKit struct {
	Name          string
	Generator     string
	Compilers     Compilers
	ToolchainFile string
	Defines       Vars
	Env           Vars
	// BuildTypeAware reports whether the kit accepts a build type's CMAKE_BUILD_TYPE.
	BuildTypeAware bool
}

// GeneratorName returns the kit's generator or the default one.
func (k BuildKit) GeneratorName() string {
	if k.Generator == "" {
		return DefaultGenerator
	}
	return k.Generator
}

// Registry holds build types and kits in declaration order.
// It is read-only once built.
type Registry struct {
	typeOrder []string
	types     map[string]BuildTypeProfile
	kitOrder  []string
	kits      map[string]BuildKit
}

// NewRegistry builds a registry from profiles and kits.
// Names must be unique within each list.
func NewRegistry(types []BuildTypeProfile, kits []BuildKit) (*Registry, error) {
	r := &Registry{
		types: make(map[string]BuildTypeProfile, len(types)),
		kits:  make(map[string]BuildKit, len(kits)),
	}
	for _, t := range types {
		if _, dup := r.types[t.Name]; dup {
			return nil, zerr.With(zerr.With(ErrInvalidConfig, "field", "buildTypes"), "duplicate", t.Name)
		}
		if t.BuildType == "" {
			t.BuildType = t.Name
		}
		r.types[t.Name] = t
		r.typeOrder = append(r.typeOrder, t.Name)
	}
	for _, k := range kits {
		if _, dup := r.kits[k.Name]; dup {
			return nil, zerr.With(zerr.With(ErrInvalidConfig, "field", "kits"), "duplicate", k.Name)
		}
		r.kits[k.Name] = k
		r.kitOrder = append(r.kitOrder, k.Name)
	}
	return r, nil
}

// BuildType looks up a build type profile by name.
func (r *Registry) BuildType(name string) (BuildTypeProfile, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Kit looks up a build kit by name.
func (r *Registry) Kit(name string) (BuildKit, bool) {
	k, ok := r.kits[name]
	return k, ok
}

// BuildTypes returns all profiles in declaration order.
func (r *Registry) BuildTypes() []BuildTypeProfile {
	out := make([]BuildTypeProfile, 0, len(r.typeOrder))
	for _, name := range r.typeOrder {
		out = append(out, r.types[name])
	}
	return out
}

// Kits returns all kits in declaration order.
func (r *Registry) Kits() []BuildKit {
	out := make([]BuildKit, 0, len(r.kitOrder))
	for _, name := range r.kitOrder {
		out = append(out, r.kits[name])
	}
	return out
}

// BuiltinBuildTypes returns the profiles used when a project declares none.
func BuiltinBuildTypes() []BuildTypeProfile {
	names := []string{"Debug", "Release", "RelWithDebInfo", "MinSizeRel"}
	out := make([]BuildTypeProfile, 0, len(names))
	for _, n := range names {
		out = append(out, BuildTypeProfile{Name: n, BuildType: n})
	}
	return out
}

// BuiltinKits returns the kits used when a project declares none.
func BuiltinKits() []BuildKit {
	return []BuildKit{{Name: "default", Generator: DefaultGenerator, BuildTypeAware: true}}
}
