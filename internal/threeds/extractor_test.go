package threeds

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExtract tests result field extraction from page markup.
func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markup   string
		mode     Mode
		expected Result
		found    bool
	}{
		{
			name: "v1 hidden fields",
			markup: `<form method="post" action="https://merchant.test/return">
<input type="hidden" name="MD" value="MD123"/>
<input type="hidden" name="PaRes" value="eJzVWNmy"/>
</form>`,
			mode:     ModeV1,
			expected: Result{Mode: ModeV1, MD: "MD123", PaRes: "eJzVWNmy"},
			found:    true,
		},
		{
			name:     "attribute order and quoting are free",
			markup:   `<INPUT value='PARES+/=' TYPE=hidden Name='pares'><input value=md-1 name=md>`,
			mode:     ModeV1,
			expected: Result{Mode: ModeV1, MD: "md-1", PaRes: "PARES+/="},
			found:    true,
		},
		{
			name: "v2 fields across lines",
			markup: `<input type="hidden"
  name="cres"
  value="eyJhY3NUcmFuc0lEIjoi">
<input type="hidden" name="threeDSSessionData" value="c2Vzc2lvbg">`,
			mode:     ModeV2,
			expected: Result{Mode: ModeV2, CRes: "eyJhY3NUcmFuc0lEIjoi", ThreeDSSessionData: "c2Vzc2lvbg"},
			found:    true,
		},
		{
			name:     "v2 field name case",
			markup:   `<input name="cRes" value="C"><input name="THREEDSSESSIONDATA" value="S">`,
			mode:     ModeV2,
			expected: Result{Mode: ModeV2, CRes: "C", ThreeDSSessionData: "S"},
			found:    true,
		},
		{
			name:     "entities are decoded",
			markup:   `<input name="MD" value="a&amp;b"><input name="PaRes" value="&#43;x&quot;">`,
			mode:     ModeV1,
			expected: Result{Mode: ModeV1, MD: "a&b", PaRes: `+x"`},
			found:    true,
		},
		{
			name:     "empty values are results",
			markup:   `<input name="MD" value=""><input name="PaRes" value="P">`,
			mode:     ModeV1,
			expected: Result{Mode: ModeV1, MD: "", PaRes: "P"},
			found:    true,
		},
		{
			name:     "first match wins",
			markup:   `<input name="MD" value="first"><input name="MD" value="second"><input name="PaRes" value="P">`,
			mode:     ModeV1,
			expected: Result{Mode: ModeV1, MD: "first", PaRes: "P"},
			found:    true,
		},
		{
			name:   "only one v1 field",
			markup: `<input name="MD" value="MD123">`,
			mode:   ModeV1,
		},
		{
			name:   "only one v2 field",
			markup: `<input name="threeDSSessionData" value="S">`,
			mode:   ModeV2,
		},
		{
			name:   "fields of the other mode",
			markup: `<input name="cres" value="C"><input name="threeDSSessionData" value="S">`,
			mode:   ModeV1,
		},
		{
			name:   "input without value",
			markup: `<input name="MD" value="M"><input name="PaRes">`,
			mode:   ModeV1,
		},
		{
			name:     "input without value is skipped for a later one",
			markup:   `<input name="PaRes" type="text"><input name="MD" value="M"><input name="PaRes" value="P">`,
			mode:     ModeV1,
			expected: Result{Mode: ModeV1, MD: "M", PaRes: "P"},
			found:    true,
		},
		{
			name:   "similar names do not match",
			markup: `<input name="MDX" value="M"><input name="PaResult" value="P">`,
			mode:   ModeV1,
		},
		{
			name:   "text outside inputs is ignored",
			markup: `<p>name="MD" value="M" name="PaRes" value="P"</p>`,
			mode:   ModeV1,
		},
		{
			name:   "empty markup",
			markup: "",
			mode:   ModeV2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, found := Extract(tt.markup, tt.mode)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestExtractForm tests result field extraction from a callback form body.
func TestExtractForm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		mode     Mode
		expected Result
		found    bool
	}{
		{
			name:     "v1 body",
			body:     "MD=MD123&PaRes=eJz%2BVN",
			mode:     ModeV1,
			expected: Result{Mode: ModeV1, MD: "MD123", PaRes: "eJz+VN"},
			found:    true,
		},
		{
			name:     "v2 body with other key case",
			body:     "CRes=C&threedssessiondata=S&extra=1",
			mode:     ModeV2,
			expected: Result{Mode: ModeV2, CRes: "C", ThreeDSSessionData: "S"},
			found:    true,
		},
		{
			name: "half a v2 body",
			body: "cres=C",
			mode: ModeV2,
		},
		{
			name: "empty body",
			body: "",
			mode: ModeV1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			form, err := url.ParseQuery(tt.body)
			assert.NoError(t, err)

			result, found := ExtractForm(form, tt.mode)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestExtractForm_Nil tests that a missing form yields no result.
func TestExtractForm_Nil(t *testing.T) {
	t.Parallel()

	result, found := ExtractForm(nil, ModeV2)
	assert.False(t, found)
	assert.Equal(t, Result{}, result)
}
