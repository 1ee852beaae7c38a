package geotrans

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cast"
)

// Params is a mapping of parameter names to values used to construct
// ellipsoids, datums, points and projections, and returned by their Params
// methods. Names are matched case-insensitively. Numeric values may be any Go
// number or a numeric string; nested ellipsoids and datums may be given as
// values or as their own Params.
type Params map[string]interface{}

// aliasTable maps every accepted (lower-case) name to its canonical name.
type aliasTable map[string]string

func (t aliasTable) names() []string {
	seen := map[string]bool{}
	var out []string
	for _, canonical := range t {
		if !seen[canonical] {
			seen[canonical] = true
			out = append(out, canonical)
		}
	}
	sort.Strings(out)
	return out
}

func (t aliasTable) canonical(name string) (string, bool) {
	c, ok := t[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// resolve maps the supplied parameters onto their canonical names. Unknown
// names and a canonical name supplied under two aliases are errors.
func (t aliasTable) resolve(p Params, owner string) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(p))
	given := make(map[string]string, len(p))
	for key, value := range p {
		lkey := strings.ToLower(strings.TrimSpace(key))
		canonical, ok := t[lkey]
		if !ok {
			supported := "<none>"
			if names := t.names(); len(names) > 0 {
				supported = strings.Join(names, ", ")
			}
			return nil, errors.Wrapf(ErrUnknownParameter, "%s: parameter %q is not recognised; supported parameters are %s",
				owner, key, supported)
		}
		if prev, dup := given[canonical]; dup {
			return nil, errors.Wrapf(ErrConfiguration, "%s: parameters %q and %q both set %q", owner, prev, key, canonical)
		}
		given[canonical] = key
		out[canonical] = value
	}
	return out, nil
}

func toFloat(owner, name string, v interface{}) (float64, error) {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, errors.Wrapf(ErrConfiguration, "%s: parameter %q: %v", owner, name, err)
	}
	return f, nil
}

func toString(owner, name string, v interface{}) (string, error) {
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", errors.Wrapf(ErrConfiguration, "%s: parameter %q: %v", owner, name, err)
	}
	return s, nil
}

func toBool(owner, name string, v interface{}) (bool, error) {
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, errors.Wrapf(ErrConfiguration, "%s: parameter %q: %v", owner, name, err)
	}
	return b, nil
}

// toParams accepts a nested mapping as decoded from TOML, YAML or JSON.
func toParams(owner, name string, v interface{}) (Params, error) {
	switch m := v.(type) {
	case Params:
		return m, nil
	case map[string]interface{}:
		return Params(m), nil
	}
	m, err := cast.ToStringMapE(v)
	if err != nil {
		return nil, errors.Wrapf(ErrConfiguration, "%s: parameter %q: %v", owner, name, err)
	}
	return Params(m), nil
}

// toFloats accepts a numeric slice or a comma separated string.
func toFloats(owner, name string, v interface{}) ([]float64, error) {
	if s, ok := v.(string); ok {
		parts := strings.Split(s, ",")
		out := make([]float64, 0, len(parts))
		for _, part := range parts {
			f, err := toFloat(owner, name, strings.TrimSpace(part))
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		}
		return out, nil
	}
	if fs, ok := v.([]float64); ok {
		return append([]float64(nil), fs...), nil
	}
	items, err := cast.ToSliceE(v)
	if err != nil {
		return nil, errors.Wrapf(ErrConfiguration, "%s: parameter %q: %v", owner, name, err)
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		f, err := toFloat(owner, name, item)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
