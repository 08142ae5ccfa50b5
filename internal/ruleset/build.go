package ruleset

import (
	"os"

	"github.com/kayman-mk/DevSkim/internal/config"
	"github.com/kayman-mk/DevSkim/internal/errs"
)

// Build loads every rule source listed in cfg, in order. Directory sources go
// through AddDirectory, anything else through AddFile.
func Build(cfg *config.Config, opts ...Option) (*Ruleset, error) {
	if cfg == nil {
		return nil, errs.Argument("config")
	}

	rs := New(opts...)
	for _, src := range cfg.Rules {
		if err := rs.addSource(cfg.ResolvePath(src.Path), src.Tag); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

func (rs *Ruleset) addSource(path, tag string) error {
	if path == "" {
		return errs.Argument("path")
	}
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return rs.AddDirectory(path, tag)
	}
	return rs.AddFile(path, tag)
}
