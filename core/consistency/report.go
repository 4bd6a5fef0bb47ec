package consistency

import "fmt"

// Probe identifies one of the five consistency experiments.
type Probe string

const (
	ReadAfterCreate    Probe = "read after create"
	ReadAfterDelete    Probe = "read after delete"
	ReadAfterOverwrite Probe = "read after overwrite"
	ListAfterCreate    Probe = "list after create"
	ListAfterDelete    Probe = "list after delete"
)

// Probes lists every probe in the order a full run executes them.
var Probes = []Probe{
	ReadAfterCreate,
	ReadAfterDelete,
	ReadAfterOverwrite,
	ListAfterCreate,
	ListAfterDelete,
}

// ParseProbe resolves a probe from its display name or its dashed form
// (e.g. "read-after-create").
func ParseProbe(s string) (Probe, error) {
	for _, p := range Probes {
		if string(p) == s || p.Slug() == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown probe %q", ErrInvalidConfig, s)
}

// Slug returns the probe name with spaces replaced by dashes.
func (p Probe) Slug() string {
	b := []byte(p)
	for i := range b {
		if b[i] == ' ' {
			b[i] = '-'
		}
	}
	return string(b)
}

// ProbeCount pairs a probe with its inconsistency count.
type ProbeCount struct {
	Probe Probe `json:"probe"`
	Count int   `json:"count"`
}

// Report holds the outcome of a full run. Every count lies in [0, Iterations].
type Report struct {
	Iterations         int   `json:"iterations"`
	ObjectSize         int64 `json:"object_size"`
	ReadAfterCreate    int   `json:"read_after_create"`
	ReadAfterDelete    int   `json:"read_after_delete"`
	ReadAfterOverwrite int   `json:"read_after_overwrite"`
	ListAfterCreate    int   `json:"list_after_create"`
	ListAfterDelete    int   `json:"list_after_delete"`
	// OverwriteNotVisible counts read-after-overwrite iterations where the object
	// was absent altogether. These are not stale reads and are kept apart.
	OverwriteNotVisible int `json:"overwrite_not_visible"`
}

// Get returns the count recorded for p.
func (r Report) Get(p Probe) int {
	switch p {
	case ReadAfterCreate:
		return r.ReadAfterCreate
	case ReadAfterDelete:
		return r.ReadAfterDelete
	case ReadAfterOverwrite:
		return r.ReadAfterOverwrite
	case ListAfterCreate:
		return r.ListAfterCreate
	case ListAfterDelete:
		return r.ListAfterDelete
	default:
		return 0
	}
}

func (r *Report) set(p Probe, count int) {
	switch p {
	case ReadAfterCreate:
		r.ReadAfterCreate = count
	case ReadAfterDelete:
		r.ReadAfterDelete = count
	case ReadAfterOverwrite:
		r.ReadAfterOverwrite = count
	case ListAfterCreate:
		r.ListAfterCreate = count
	case ListAfterDelete:
		r.ListAfterDelete = count
	}
}

// Counts returns the probe counts in run order.
func (r Report) Counts() []ProbeCount {
	counts := make([]ProbeCount, 0, len(Probes))
	for _, p := range Probes {
		counts = append(counts, ProbeCount{Probe: p, Count: r.Get(p)})
	}
	return counts
}

// Lines renders one "<probe name>: <count>" line per probe.
func (r Report) Lines() []string {
	lines := make([]string, 0, len(Probes))
	for _, c := range r.Counts() {
		lines = append(lines, fmt.Sprintf("%s: %d", c.Probe, c.Count))
	}
	return lines
}
