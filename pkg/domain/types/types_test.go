package types_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/cutover-io/cutover/pkg/domain/types"
)

func TestParseRouterMode(t *testing.T) {
	mode, err := types.ParseRouterMode("recommended")
	gt.NoError(t, err)
	gt.Value(t, mode.BasePath()).Equal("/api/v1")

	mode, err = types.ParseRouterMode("out-of-the-box")
	gt.NoError(t, err)
	gt.Value(t, mode.BasePath()).Equal("/")

	_, err = types.ParseRouterMode("bespoke")
	gt.Error(t, err)
}

func TestErrorTagHelpers(t *testing.T) {
	conflict := goerr.New("exists", goerr.T(types.ErrTagConflict))
	gt.True(t, types.IsConflict(conflict))
	gt.True(t, !types.IsPrecondition(conflict))

	// tags survive wrapping
	wrapped := goerr.Wrap(conflict, "outer")
	gt.True(t, types.IsConflict(wrapped))

	precondition := goerr.New("missing", goerr.T(types.ErrTagPrecondition))
	gt.True(t, types.IsPrecondition(precondition))

	parse := goerr.New("bad tag", goerr.T(types.ErrTagParse))
	gt.True(t, types.IsParse(parse))
}
