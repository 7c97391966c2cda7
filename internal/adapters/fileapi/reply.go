package fileapi

// indexFile is the subset of reply/index-*.json read by the client.
type indexFile struct {
	Objects []objectRef          `json:"objects"`
	Reply   map[string]replyItem `json:"reply"`
}

type objectRef struct {
	Kind     string  `json:"kind"`
	Version  version `json:"version"`
	JSONFile string  `json:"jsonFile"`
}

type version struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
}

type replyItem struct {
	JSONFile string `json:"jsonFile"`
}

// codemodel is the subset of codemodel-v2 read by the client.
type codemodel struct {
	Paths struct {
		Source string `json:"source"`
		Build  string `json:"build"`
	} `json:"paths"`
	Configurations []configuration `json:"configurations"`
}

type configuration struct {
	Name    string      `json:"name"`
	Targets []targetRef `json:"targets"`
}

type targetRef struct {
	Name     string `json:"name"`
	ID       string `json:"id"`
	JSONFile string `json:"jsonFile"`
}

// targetDetail is the subset of a target-*.json reply read by the client.
type targetDetail struct {
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Artifacts []artifact `json:"artifacts"`
}

type artifact struct {
	Path string `json:"path"`
}
