package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResultDerivesFailed(t *testing.T) {
	item, err := decodeResult("2016-17",
		[]byte(`{"total_students":26,"passed":25,"pass_percentage":96.15,"toppers":[]}`),
		[]byte(`{"total_students":0,"passed":0,"pass_percentage":"NA","toppers":[]}`))
	require.NoError(t, err)
	assert.Equal(t, "2016-17", item.Year)
	assert.Equal(t, 1, item.Class10.Failed)
	assert.True(t, item.Class12.PassPercentage.NA)
}

func TestDecodeResultRejectsMalformedClass(t *testing.T) {
	cases := map[string][2]string{
		"truncated json":    {`{"total_students":`, `{}`},
		"wrong shape":       {`{}`, `[1,2]`},
		"percent above 100": {`{"pass_percentage":150.123}`, `{"pass_percentage":"NA"}`},
	}
	for name, raw := range cases {
		_, err := decodeResult("2020-21", []byte(raw[0]), []byte(raw[1]))
		assert.Error(t, err, name)
		assert.Contains(t, err.Error(), "2020-21", name)
	}
}
