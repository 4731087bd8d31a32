package yamlenv

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Env is a yaml config value that can be overridden from the environment.
// The yaml side holds either a literal or ${VAR} / ${VAR:default}.
type Env[T any] struct {
	Value T
}

func (e *Env[T]) UnmarshalYAML(node *yaml.Node) error {
	raw := node.Value

	if strings.HasPrefix(raw, "${") && strings.HasSuffix(raw, "}") {
		expr := strings.TrimSuffix(strings.TrimPrefix(raw, "${"), "}")

		name, fallback, hasFallback := strings.Cut(expr, ":")

		val, ok := os.LookupEnv(name)
		if !ok {
			if !hasFallback {
				return fmt.Errorf("env %q is not set and has no default", name)
			}
			val = fallback
		}

		raw = val
	}

	parsed, err := parse[T](raw)
	if err != nil {
		return fmt.Errorf("parse %q: %w", raw, err)
	}

	e.Value = parsed

	return nil
}

func parse[T any](raw string) (T, error) {
	var zero T

	switch any(zero).(type) {
	case string:
		return any(raw).(T), nil
	case int:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return zero, err
		}
		return any(n).(T), nil
	case bool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return zero, err
		}
		return any(b).(T), nil
	default:
		return zero, fmt.Errorf("unsupported env value type %T", zero)
	}
}
