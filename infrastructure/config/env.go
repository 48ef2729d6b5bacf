package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	domainconfig "github.com/felixgeelhaar/calc-go/domain/config"
)

var (
	bracketPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-[^}]*|:\?[^}]*)?\}`)
	simplePattern  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// envExpander expands environment variables in configuration text.
type envExpander struct {
	strict  bool
	lookup  func(string) (string, bool)
	missing []string
}

// Expand expands environment variables in input.
// Supported patterns:
//   - ${VAR} expands to the value of VAR
//   - ${VAR:-default} expands to VAR or "default" if unset or empty
//   - ${VAR:?message} fails if VAR is unset or empty
//   - $VAR simple expansion
func (e *envExpander) Expand(input string) (string, error) {
	e.missing = nil
	lookup := e.lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	result := bracketPattern.ReplaceAllStringFunc(input, func(match string) string {
		inner := match[2 : len(match)-1]
		name, modifier, _ := strings.Cut(inner, ":")
		value, exists := lookup(name)

		switch {
		case strings.HasPrefix(modifier, "-"):
			if !exists || value == "" {
				return modifier[1:]
			}
		case strings.HasPrefix(modifier, "?"):
			if !exists || value == "" {
				e.missing = append(e.missing, fmt.Sprintf("%s: %s", name, modifier[1:]))
				return match
			}
		default:
			if !exists {
				if e.strict {
					e.missing = append(e.missing, name)
				}
				return ""
			}
		}
		return value
	})

	result = simplePattern.ReplaceAllStringFunc(result, func(match string) string {
		name := match[1:]
		value, exists := lookup(name)
		if !exists {
			if e.strict {
				e.missing = append(e.missing, name)
			}
			return ""
		}
		return value
	})

	if len(e.missing) > 0 {
		return "", fmt.Errorf("%w: %s", domainconfig.ErrMissingEnvVar, strings.Join(e.missing, ", "))
	}
	return result, nil
}

// ExpandEnv expands environment variables, leaving unset ones empty.
func ExpandEnv(input string) string {
	e := &envExpander{}
	result, _ := e.Expand(input)
	return result
}
