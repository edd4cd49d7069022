package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripHTML(t *testing.T) {
	in := "<p>Soft <strong>cotton</strong> tee.</p>\n<ul><li>Machine washable</li></ul>"
	require.Equal(t, "Soft cotton tee. Machine washable", StripHTML(in))
}

func TestStripHTMLEntities(t *testing.T) {
	require.Equal(t, "Fit & finish", StripHTML("Fit &amp; finish"))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", Truncate("short", 10))
	require.Equal(t, "abcde...", Truncate("abcdefgh", 5))
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"5551234567", "+15551234567"},
		{"(555) 123-4567", "+15551234567"},
		{"+15551234567", "+15551234567"},
		{"+44 20 7946 0958", "+442079460958"},
		{"442079460958", "+442079460958"},
		{"", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, NormalizePhone(tc.in), "input %q", tc.in)
	}
}

func TestExtractNumericID(t *testing.T) {
	id, err := ExtractNumericID("gid://shopify/Order/450789469", "Order")
	require.NoError(t, err)
	require.Equal(t, "450789469", id)

	id, err = ExtractNumericID("450789469", "Order")
	require.NoError(t, err)
	require.Equal(t, "450789469", id)

	id, err = ExtractNumericID("gid://shopify/Order/450789469?key=abc", "Order")
	require.NoError(t, err)
	require.Equal(t, "450789469", id)

	_, err = ExtractNumericID("gid://shopify/Order/45abc", "Order")
	require.Error(t, err)

	_, err = ExtractNumericID("not-an-id", "Order")
	require.Error(t, err)
}
