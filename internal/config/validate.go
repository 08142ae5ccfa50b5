package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"sort"
	"strings"

	"github.com/kayman-mk/DevSkim/internal/logging"
)

type ValidationError struct {
	Problems []string
}

func (v *ValidationError) Add(format string, args ...any) {
	v.Problems = append(v.Problems, fmt.Sprintf(format, args...))
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("%d validation error(s)", len(v.Problems))
}

// Err returns v when it holds problems, sorted, and nil otherwise.
func (v *ValidationError) Err() error {
	if len(v.Problems) == 0 {
		return nil
	}
	sort.Strings(v.Problems)
	return v
}

func (c *Config) Validate() error {
	v := &ValidationError{}

	if c.ConfigVersion != CurrentVersion {
		v.Add("configVersion must be %d", CurrentVersion)
	}

	if len(c.Rules) == 0 {
		v.Add("rules must list at least one source")
	}
	for i, src := range c.Rules {
		if strings.TrimSpace(src.Path) == "" {
			v.Add("rules[%d].path is required", i)
			continue
		}
		if _, err := os.Stat(c.resolvePath(src.Path)); err != nil {
			v.Add("rules[%d].path invalid: %v", i, err)
		}
	}

	if c.Languages != "" {
		if err := requireFile(c.resolvePath(c.Languages)); err != nil {
			v.Add("languages invalid: %v", err)
		}
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		v.Add("logging.level invalid: %v", err)
	}
	switch c.Logging.Format {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		v.Add("logging.format must be console|json")
	}

	if c.Server.Listen != "" {
		if err := validateListen(c.Server.Listen); err != nil {
			v.Add("server.listen invalid: %v", err)
		}
	}

	if c.Server.RateLimit.Enabled {
		if c.Server.RateLimit.RPS <= 0 {
			v.Add("server.rateLimit.rps must be > 0")
		}
		if c.Server.RateLimit.Burst <= 0 {
			v.Add("server.rateLimit.burst must be > 0")
		}
	}

	return v.Err()
}

func validateListen(addr string) error {
	if strings.TrimSpace(addr) == "" {
		return errors.New("address is required")
	}
	if _, err := net.ResolveTCPAddr("tcp", addr); err != nil {
		return err
	}
	return nil
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
