package walker

import "time"

// Record is the serialized form of an Entry, with the kind and mode spelled
// out for readers of JSON and YAML output.
type Record struct {
	Name    string    `json:"name" yaml:"name"`
	Path    string    `json:"path" yaml:"path"`
	Parent  string    `json:"parent" yaml:"parent"`
	Kind    string    `json:"kind" yaml:"kind"`
	Size    int64     `json:"size" yaml:"size"`
	Mode    string    `json:"mode" yaml:"mode"`
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`
	Hidden  bool      `json:"hidden" yaml:"hidden"`
	Symlink bool      `json:"symlink" yaml:"symlink"`
	Stat    *UnixStat `json:"stat,omitempty" yaml:"stat,omitempty"`
}

// Record converts the entry for output.
func (e Entry) Record() Record {
	return Record{
		Name:    e.Name,
		Path:    e.Path,
		Parent:  e.Parent,
		Kind:    e.Kind.String(),
		Size:    e.Size,
		Mode:    e.Mode.String(),
		ModTime: e.ModTime,
		Hidden:  e.Hidden,
		Symlink: e.Symlink,
		Stat:    e.Stat,
	}
}
