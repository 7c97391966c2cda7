package domain

// TargetKind is the CMake target type as reported by the file API.
type TargetKind string

const (
	// KindExecutable is an executable target.
	KindExecutable TargetKind = "EXECUTABLE"
	// KindStaticLibrary is a static library target.
	KindStaticLibrary TargetKind = "STATIC_LIBRARY"
	// KindSharedLibrary is a shared library target.
	KindSharedLibrary TargetKind = "SHARED_LIBRARY"
	// KindModuleLibrary is a loadable module target.
	KindModuleLibrary TargetKind = "MODULE_LIBRARY"
	// KindObjectLibrary is an object library target.
	KindObjectLibrary TargetKind = "OBJECT_LIBRARY"
	// KindInterfaceLibrary is a header-only library target.
	KindInterfaceLibrary TargetKind = "INTERFACE_LIBRARY"
	// KindUtility is a custom target without an artifact.
	KindUtility TargetKind = "UTILITY"
)

// AllTargetName is the reserved target that builds everything.
const AllTargetName = "all"

// AutogenMarker identifies generated housekeeping targets.
const AutogenMarker = "_autogen"

// Target is a buildable target of a configured build tree.
type Target struct {
	Name string
	Kind TargetKind
}

// AllTarget returns the synthetic "all" target.
func AllTarget() Target {
	return Target{Name: AllTargetName, Kind: KindUtility}
}
