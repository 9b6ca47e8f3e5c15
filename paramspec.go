package sweeprun

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind classifies a single parameter's value, per spec §3/§6.
type Kind int

const (
	KindFixedNumber Kind = iota
	KindFixedString
	KindCategorical
	KindLinear
	KindLogScale
)

// ParamSpec is the parsed form of one entry of a node's "params" mapping.
type ParamSpec struct {
	Kind Kind

	// Fixed holds the literal value, already formatted for command
	// substitution (strings are double-quoted per spec §6).
	Fixed string

	// Categorical holds the alternatives, in declared order, formatted for
	// command substitution the same way Fixed is.
	Categorical []string

	// Low, High bound a continuous range. For KindLogScale, Low must be > 0.
	Low, High float64
}

var rangeForm = regexp.MustCompile(`^(linear|logscale)\(\s*([^,]+?)\s*,\s*([^)]+?)\s*\)$`)

// ParseParamValue classifies a raw YAML-decoded value into a ParamSpec,
// applying the parameter value syntax of spec §6:
//
//   - a number literal is fixed;
//   - a string literal is fixed, unless it matches "linear(lo,hi)" or
//     "logscale(lo,hi)", in which case it is a continuous range;
//   - a list literal is categorical.
func ParseParamValue(v any) (ParamSpec, error) {
	switch val := v.(type) {
	case float64:
		return ParamSpec{Kind: KindFixedNumber, Fixed: formatNumber(val)}, nil
	case int:
		return ParamSpec{Kind: KindFixedNumber, Fixed: strconv.Itoa(val)}, nil
	case string:
		if m := rangeForm.FindStringSubmatch(val); m != nil {
			low, err := strconv.ParseFloat(strings.TrimSpace(m[2]), 64)
			if err != nil {
				return ParamSpec{}, fmt.Errorf("%w: invalid low bound %q", ErrMissingTag, m[2])
			}
			high, err := strconv.ParseFloat(strings.TrimSpace(m[3]), 64)
			if err != nil {
				return ParamSpec{}, fmt.Errorf("%w: invalid high bound %q", ErrMissingTag, m[3])
			}
			kind := KindLinear
			if m[1] == "logscale" {
				kind = KindLogScale
				if low <= 0 {
					return ParamSpec{}, fmt.Errorf("%w: logscale lower bound must be > 0, got %v", ErrMissingTag, low)
				}
			}
			return ParamSpec{Kind: kind, Low: low, High: high}, nil
		}
		return ParamSpec{Kind: KindFixedString, Fixed: fmt.Sprintf("%q", val)}, nil
	case []any:
		cats := make([]string, len(val))
		for i, e := range val {
			cats[i] = formatCategorical(e)
		}
		return ParamSpec{Kind: KindCategorical, Categorical: cats}, nil
	default:
		return ParamSpec{}, fmt.Errorf("%w: unsupported parameter value type %T", ErrMissingTag, v)
	}
}

// IsContinuous reports whether the spec describes a searchable continuous range.
func (p ParamSpec) IsContinuous() bool {
	return p.Kind == KindLinear || p.Kind == KindLogScale
}

func formatCategorical(v any) string {
	switch t := v.(type) {
	case string:
		return fmt.Sprintf("%q", t)
	case float64:
		return formatNumber(t)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// formatNumber renders a float64 without a trailing ".0" for integral values,
// matching how a human would write the literal in a shell command.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
