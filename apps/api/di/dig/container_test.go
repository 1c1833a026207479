package dig_container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/masomo/apps/api/echo"
	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/school"
)

func TestNew(t *testing.T) {
	t.Setenv("ENV", "TEST")
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("TEST_DATABASE_ENGINE", core.EngineMemory)
	t.Setenv("TEST_SCHOOLNAME", "Green Hill")

	c := New()
	err := c.Invoke(func(conf *core.Config, sch *school.School, server *echoapi.Server) {
		assert.True(t, conf.TestMode)
		assert.Equal(t, "Green Hill", sch.Name())
		assert.NotNil(t, server)
	})
	require.NoError(t, err)
}
