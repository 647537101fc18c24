package version

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFprintVersion(t *testing.T) {
	var buf bytes.Buffer
	FprintVersion(&buf)
	fields := strings.Fields(buf.String())
	assert.Len(t, fields, 3)
	assert.Equal(t, Package, fields[1])
	assert.Equal(t, Version, fields[2])

	defer func(r string) { Revision = r }(Revision)
	Revision = "3f2c1d7"
	buf.Reset()
	Cmd.SetOut(&buf)
	Cmd.Run(Cmd, nil)
	assert.True(t, strings.HasSuffix(buf.String(), " 3f2c1d7\n"))
}
