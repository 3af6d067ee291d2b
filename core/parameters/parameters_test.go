package parameters

import (
	"testing"

	"github.com/npillmayer/epdfont/core"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	p := New("FiraSans", 16, []string{"FiraSans-Regular.ttf"}, true)
	assert.NoError(t, p.Validate())
	for _, broken := range []Parameters{
		New("", 16, []string{"a.ttf"}, false),
		New("Fira Sans", 16, []string{"a.ttf"}, false),
		New("16pt", 16, []string{"a.ttf"}, false),
		New("Fira", 0, []string{"a.ttf"}, false),
		New("Fira", 12, nil, false),
		New("Fira", 12, []string{"a.ttf", " "}, false),
	} {
		err := broken.Validate()
		assert.Equal(t, core.EINVALID, core.Code(err), "expected %+v to be invalid", broken)
	}
}

func TestFromConfig(t *testing.T) {
	conf := testconfig.Conf{
		"font-name":  "Go",
		"font-size":  "12",
		"font-stack": "goregular, gomono",
		"compress":   "true",
	}
	p, err := FromConfig(conf)
	require.NoError(t, err)
	require.NoError(t, p.Validate())
	assert.Equal(t, "Go", p.Name)
	assert.Equal(t, 12, p.Size)
	assert.Equal(t, []string{"goregular", "gomono"}, p.Stack)
	assert.True(t, p.Compress)
	assert.Equal(t, DefaultIntervals, p.Intervals)
	assert.Equal(t, DefaultDPI, p.DPI)
	assert.Equal(t, "py", p.Format)
	assert.Equal(t, ".", p.OutputDir)
}

func TestFromConfigErrors(t *testing.T) {
	_, err := FromConfig(testconfig.Conf{"font-size": "large"})
	assert.Error(t, err)
	_, err = FromConfig(testconfig.Conf{"compress": "maybe"})
	assert.Error(t, err)
	_, err = FromConfig(testconfig.Conf{"dpi": "x"})
	assert.Error(t, err)
}
