package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePackagePreservesCase(t *testing.T) {
	assert.Equal(t, "Lodash", NormalizePackage("  Lodash  "))
	assert.Equal(t, "", NormalizePackage("   "))
}

func TestNormalizeAdvisoryLowercases(t *testing.T) {
	assert.Equal(t, "ghsa-xvch-5gv4-984h", NormalizeAdvisory(" GHSA-XVCH-5GV4-984H "))
	assert.Equal(t, "cve-2021-1234", NormalizeAdvisory("CVE-2021-1234"))
	// Case symmetry: an identifier and its uppercase form normalize alike.
	assert.Equal(t, NormalizeAdvisory("cve-2021-1234"), NormalizeAdvisory("CVE-2021-1234"))
}

func TestNormalizeSeverity(t *testing.T) {
	assert.Equal(t, "high", NormalizeSeverity(" HIGH "))
	assert.Equal(t, "", NormalizeSeverity(""))
}

func TestParseDateStrict(t *testing.T) {
	parsed, err := ParseDate("2021-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 1, 31, 0, 0, 0, 0, time.UTC), parsed)

	for _, bad := range []string{
		"2021/01/31",
		"31-01-2021",
		"2021-1-31",
		"2021-01-31T00:00:00Z",
		"2021-13-01",
		"someday",
		"",
	} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "%q should not parse", bad)
	}
}
