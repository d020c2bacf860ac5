package script

import (
	"regexp"
	"sort"
	"strings"

	mdwerror "github.com/msto63/cta/foundation/core/error"
)

// variablePattern matches ${name} and ${name.attribute} references
var variablePattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_.\-]*)\}`)

// Vars holds script variables and saved replies
type Vars map[string]string

// Interpolate replaces ${name} references in template. An undefined
// reference is an error; Tcl would otherwise read it as a variable.
func (v Vars) Interpolate(template string) (string, error) {
	if !strings.Contains(template, "${") {
		return template, nil
	}

	var missing []string
	out := variablePattern.ReplaceAllStringFunc(template, func(match string) string {
		name := variablePattern.FindStringSubmatch(match)[1]
		value, ok := v[name]
		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})

	if len(missing) > 0 {
		sort.Strings(missing)
		return "", mdwerror.New("undefined variable").
			WithCode(mdwerror.CodeScript).
			WithDetail("variables", strings.Join(missing, ", "))
	}
	return out, nil
}

// interpolateAll interpolates every string in values
func (v Vars) interpolateAll(values []string) ([]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]string, len(values))
	for i, s := range values {
		var err error
		if out[i], err = v.Interpolate(s); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// interpolateAttrs interpolates string attribute values. Other YAML scalars
// pass through unchanged.
func (v Vars) interpolateAttrs(attrs map[string]interface{}) (map[string]interface{}, error) {
	if len(attrs) == 0 {
		return nil, nil
	}
	out := make(map[string]interface{}, len(attrs))
	for key, value := range attrs {
		s, ok := value.(string)
		if !ok {
			out[key] = value
			continue
		}
		expanded, err := v.Interpolate(s)
		if err != nil {
			return nil, err
		}
		out[key] = expanded
	}
	return out, nil
}
