package v1_test

import (
	"context"

	"github.com/verso-cms/verso/app/core"
	"github.com/verso-cms/verso/pkg/testutils"
)

var ctx = context.Background()

func NewCore() *core.Core {
	testutils.LoadEnvOrPanic()
	return core.MustSetupCore(core.LoadBaseConfigFromENV())
}
