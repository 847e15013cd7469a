package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/cutover-io/cutover/pkg/domain/model"
	"github.com/cutover-io/cutover/pkg/domain/types"
	"github.com/cutover-io/cutover/pkg/usecase"
)

func rcRelease() *model.Release {
	return &model.Release{
		ID:              42,
		TagName:         "rc-1.5.0",
		Name:            "Version 1.5.0",
		Prerelease:      true,
		TargetCommitish: "rc/1.5.0",
		HTMLURL:         "https://github.com/acme/webapp/releases/tag/rc-1.5.0",
	}
}

func happyPromoteMock() *mockHosting {
	return &mockHosting{
		updateReleaseFunc: func(ctx context.Context, project *model.Project, id int64, params *model.ReleaseParams) (*model.Release, error) {
			return &model.Release{
				ID:              id,
				TagName:         "rc-1.5.0",
				Name:            params.Name,
				Prerelease:      params.Prerelease,
				TargetCommitish: "rc/1.5.0",
				HTMLURL:         "https://github.com/acme/webapp/releases/tag/rc-1.5.0",
			}, nil
		},
		mergeFunc: func(ctx context.Context, project *model.Project, base, head, message string) (*model.Commit, error) {
			return &model.Commit{SHA: "fedcba9876", HTMLURL: "https://github.com/acme/webapp/commit/fedcba9876"}, nil
		},
		deleteRefFunc: func(ctx context.Context, project *model.Project, branch string) error {
			return nil
		},
	}
}

func TestPromoteRC_NothingToPromote(t *testing.T) {
	ctx := context.Background()
	mock := &mockHosting{}
	uc := usecase.New(mock)

	result, err := uc.PromoteRC(ctx, testProject(), nil, model.PromoteOptions{}, nil)

	gt.Error(t, err)
	gt.Value(t, result).Nil()
	gt.True(t, types.IsPrecondition(err))
	// no remote call is attempted
	gt.Value(t, len(mock.calls)).Equal(0)
}

func TestPromoteRC_NotACandidateWithoutForce(t *testing.T) {
	ctx := context.Background()
	mock := &mockHosting{}
	uc := usecase.New(mock)

	latest := &model.Release{ID: 7, TagName: "v1.0.0", Prerelease: false}
	_, err := uc.PromoteRC(ctx, testProject(), latest, model.PromoteOptions{}, nil)

	gt.Error(t, err)
	gt.True(t, types.IsPrecondition(err))
	gt.Value(t, len(mock.calls)).Equal(0)
}

func TestPromoteRC_ForcedPromotion(t *testing.T) {
	ctx := context.Background()
	mock := happyPromoteMock()
	uc := usecase.New(mock)

	latest := &model.Release{ID: 7, TagName: "v1.0.0", Name: "legacy", Prerelease: false}
	result, err := uc.PromoteRC(ctx, testProject(), latest, model.PromoteOptions{Force: true}, nil)

	gt.NoError(t, err)
	gt.Value(t, result.Merged).Equal(false)
	gt.Value(t, mock.calls).Equal([]string{"UpdateRelease"})
}

func TestPromoteRC_Success(t *testing.T) {
	ctx := context.Background()
	mock := happyPromoteMock()

	var updated *model.ReleaseParams
	inner := mock.updateReleaseFunc
	mock.updateReleaseFunc = func(ctx context.Context, project *model.Project, id int64, params *model.ReleaseParams) (*model.Release, error) {
		updated = params
		return inner(ctx, project, id, params)
	}
	uc := usecase.New(mock)

	result, err := uc.PromoteRC(ctx, testProject(), rcRelease(), model.PromoteOptions{}, nil)

	gt.NoError(t, err)
	gt.Value(t, result.TagName).Equal("rc-1.5.0")
	gt.Value(t, result.Name).Equal("Version 1.5.0")
	gt.Value(t, result.Merged).Equal(false)
	gt.Value(t, len(result.Steps)).Equal(1)

	gt.Value(t, updated.Prerelease).Equal(false)
	gt.Value(t, updated.Name).Equal("Version 1.5.0")
}

func TestPromoteRC_MergeAndCleanup(t *testing.T) {
	ctx := context.Background()
	mock := happyPromoteMock()

	var mergedBase, mergedHead, deletedBranch string
	innerMerge := mock.mergeFunc
	mock.mergeFunc = func(ctx context.Context, project *model.Project, base, head, message string) (*model.Commit, error) {
		mergedBase, mergedHead = base, head
		return innerMerge(ctx, project, base, head, message)
	}
	mock.deleteRefFunc = func(ctx context.Context, project *model.Project, branch string) error {
		deletedBranch = branch
		return nil
	}
	uc := usecase.New(mock)

	result, err := uc.PromoteRC(ctx, testProject(), rcRelease(), model.PromoteOptions{Merge: true, Cleanup: true}, nil)

	gt.NoError(t, err)
	gt.Value(t, result.Merged).Equal(true)
	gt.Value(t, len(result.Steps)).Equal(3)
	gt.Value(t, mergedBase).Equal("main")
	gt.Value(t, mergedHead).Equal("rc/1.5.0")
	gt.Value(t, deletedBranch).Equal("rc/1.5.0")
	gt.Value(t, mock.calls).Equal([]string{"UpdateRelease", "Merge", "DeleteRef"})
}

func TestPromoteRC_CleanupRequiresMerge(t *testing.T) {
	ctx := context.Background()
	mock := &mockHosting{}
	uc := usecase.New(mock)

	_, err := uc.PromoteRC(ctx, testProject(), rcRelease(), model.PromoteOptions{Cleanup: true}, nil)
	gt.Error(t, err)
	gt.True(t, types.IsPrecondition(err))
	gt.Value(t, len(mock.calls)).Equal(0)
}

func TestPromoteRC_MergeFailureAborts(t *testing.T) {
	ctx := context.Background()
	mock := happyPromoteMock()
	mock.mergeFunc = func(ctx context.Context, project *model.Project, base, head, message string) (*model.Commit, error) {
		return nil, goerr.New("merge conflict", goerr.V("status", 409), goerr.T(types.ErrTagRemote))
	}
	uc := usecase.New(mock)

	_, err := uc.PromoteRC(ctx, testProject(), rcRelease(), model.PromoteOptions{Merge: true, Cleanup: true}, nil)
	gt.Error(t, err)
	gt.True(t, !mock.called("DeleteRef"))
}
