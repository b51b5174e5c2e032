// Package flagx lets several flag sets share one command line: each
// component keeps only the flags it owns and parses those.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps the flags named in allowed, with their values, and drops
// everything else. Both "-name value" and "-name=value" are understood, and a
// single or double leading dash matches either spelling in allowed. Flags
// listed in boolFlags never consume the following argument.
func FilterArgs(args []string, allowed []string, boolFlags ...string) []string {
	known := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		known[flagName(f)] = struct{}{}
	}
	bools := make(map[string]struct{}, len(boolFlags))
	for _, f := range boolFlags {
		bools[flagName(f)] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, hasValue := strings.Cut(arg, "=")
		if _, ok := known[flagName(name)]; !ok {
			continue
		}
		filtered = append(filtered, arg)

		if hasValue {
			continue
		}
		if _, ok := bools[flagName(name)]; ok {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

func flagName(s string) string {
	return strings.TrimLeft(s, "-")
}

// ConfigPath returns the JSON config file named by -c or -config, falling
// back to the envKey environment variable. Empty means no file.
func ConfigPath(envKey string) string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	if config == "" && envKey != "" {
		config = os.Getenv(envKey)
	}
	return config
}
