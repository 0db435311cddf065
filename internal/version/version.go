// Package version holds build metadata injected with -ldflags -X.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	Version    = "0.1.0-dev"
	GitCommit  = ""
	GitMessage = ""
	BuildDate  = "" // ISO-8601
)

// Info is a trimmed snapshot of the build variables.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"git_commit,omitempty"`
	Message string `json:"git_message,omitempty"`
	Built   string `json:"build_date,omitempty"`
}

func Current() Info {
	info := Info{
		Version: strings.TrimSpace(Version),
		Commit:  strings.TrimSpace(GitCommit),
		Message: strings.TrimSpace(GitMessage),
		Built:   strings.TrimSpace(BuildDate),
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	return info
}

// ShortCommit keeps the first 12 hex digits.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 12 {
		return i.Commit[:12]
	}
	return i.Commit
}

var segmentColors = [3]*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored paints major, minor and patch in different colors. A version
// that is not a dotted triple comes back unchanged.
func (i Info) Colored() string {
	core, rest := i.Version, ""
	if cut := strings.IndexAny(core, "-+"); cut >= 0 {
		core, rest = core[:cut], core[cut:]
	}
	nums := strings.Split(core, ".")
	if len(nums) != len(segmentColors) {
		return i.Version
	}
	for n := range nums {
		nums[n] = segmentColors[n].Sprint(nums[n])
	}
	return strings.Join(nums, ".") + rest
}

// Line is what `decay --version` prints.
func (i Info) Line() string {
	var extra []string
	if c := i.ShortCommit(); c != "" {
		extra = append(extra, "commit "+c)
	}
	if i.Built != "" {
		extra = append(extra, "built "+i.Built)
	}
	if len(extra) == 0 {
		return "decay " + i.Version
	}
	return "decay " + i.Version + " (" + strings.Join(extra, ", ") + ")"
}
