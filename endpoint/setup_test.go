package endpoint

import (
	"os"
	"testing"

	"github.com/ariebrainware/hospital-management/config"
	"github.com/ariebrainware/hospital-management/util"
	"github.com/gin-gonic/gin"
)

// TestMain pins the test configuration before the config singleton is read.
func TestMain(m *testing.M) {
	os.Setenv("APPENV", "test")
	os.Setenv("GINMODE", "test")

	config.LoadConfig()
	gin.SetMode(gin.TestMode)
	util.RegisterValidators()

	os.Exit(m.Run())
}
