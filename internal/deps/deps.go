package deps

import (
	"os/exec"
)

// Dependency represents an external program tilecast invokes
type Dependency struct {
	Name        string // Command name (e.g., "ffmpeg")
	Description string // Human-readable description
	Required    bool   // If true, app cannot run without it
}

// CheckResult contains the result of checking a dependency
type CheckResult struct {
	Dependency Dependency
	Available  bool
	Path       string // Path to the executable if found
}

// RequiredDeps lists dependencies tilecast cannot run without
var RequiredDeps = []Dependency{
	{
		Name:        "ffmpeg",
		Description: "Filter-graph evaluation and encoding",
		Required:    true,
	},
	{
		Name:        "ffprobe",
		Description: "Media metadata extraction",
		Required:    true,
	},
}

// OptionalDeps lists optional dependencies that enhance functionality
var OptionalDeps = []Dependency{
	{
		Name:        "notify-send",
		Description: "Desktop notifications when renders finish",
		Required:    false,
	},
}

// Check looks up a single dependency on PATH
func Check(dep Dependency) CheckResult {
	result := CheckResult{Dependency: dep}

	path, err := exec.LookPath(dep.Name)
	if err == nil {
		result.Available = true
		result.Path = path
	}

	return result
}

// CheckAll checks all dependencies and returns required and optional results
func CheckAll() (required []CheckResult, optional []CheckResult) {
	for _, dep := range RequiredDeps {
		required = append(required, Check(dep))
	}
	for _, dep := range OptionalDeps {
		optional = append(optional, Check(dep))
	}
	return required, optional
}

// MissingRequired returns the names of required dependencies not found on PATH
func MissingRequired() []string {
	var missing []string
	for _, dep := range RequiredDeps {
		if !Check(dep).Available {
			missing = append(missing, dep.Name)
		}
	}
	return missing
}
