package domain

// Selection is the user's current kit, build type and target choice.
type Selection struct {
	Kit       string `json:"kit,omitempty"`
	BuildType string `json:"buildType,omitempty"`
	Target    string `json:"target,omitempty"`
}

// State is persisted per project between invocations.
type State struct {
	Selection Selection `json:"selection"`
	// Configured maps a build directory to the fingerprint of its last successful configure.
	Configured map[string]string `json:"configured,omitempty"`
}
