package sweeprun

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseParamValue_FixedNumber(t *testing.T) {
	spec, err := ParseParamValue(float64(3))
	require.NoError(t, err)
	require.Equal(t, KindFixedNumber, spec.Kind)
	require.Equal(t, "3", spec.Fixed)
}

func TestParseParamValue_FixedString(t *testing.T) {
	spec, err := ParseParamValue("hello")
	require.NoError(t, err)
	require.Equal(t, KindFixedString, spec.Kind)
	require.Equal(t, `"hello"`, spec.Fixed)
}

func TestParseParamValue_Categorical(t *testing.T) {
	spec, err := ParseParamValue([]any{"a", "b", float64(3)})
	require.NoError(t, err)
	require.Equal(t, KindCategorical, spec.Kind)
	require.Equal(t, []string{`"a"`, `"b"`, "3"}, spec.Categorical)
}

func TestParseParamValue_Linear(t *testing.T) {
	spec, err := ParseParamValue("linear(0.1, 2.5)")
	require.NoError(t, err)
	require.Equal(t, KindLinear, spec.Kind)
	require.Equal(t, 0.1, spec.Low)
	require.Equal(t, 2.5, spec.High)
	require.True(t, spec.IsContinuous())
}

func TestParseParamValue_LogScale(t *testing.T) {
	spec, err := ParseParamValue("logscale(0.01, 100)")
	require.NoError(t, err)
	require.Equal(t, KindLogScale, spec.Kind)
	require.Equal(t, 0.01, spec.Low)
}

func TestParseParamValue_LogScaleRejectsNonPositiveLow(t *testing.T) {
	_, err := ParseParamValue("logscale(0, 100)")
	require.Error(t, err)
}

func TestParseParamValue_UnsupportedType(t *testing.T) {
	_, err := ParseParamValue(struct{}{})
	require.Error(t, err)
}
