package usecase_test

import (
	"context"
	"errors"

	"github.com/cutover-io/cutover/pkg/domain/model"
)

// mockHosting is a hand-rolled mock of interfaces.HostingClient. Each
// remote call is recorded by name so tests can assert call order and
// absence.
type mockHosting struct {
	getLatestCommitFunc func(ctx context.Context, project *model.Project, branch string) (*model.Commit, error)
	createRefFunc       func(ctx context.Context, project *model.Project, branch, sha string) (*model.Ref, error)
	deleteRefFunc       func(ctx context.Context, project *model.Project, branch string) error
	getComparisonFunc   func(ctx context.Context, project *model.Project, base, head string) (*model.Comparison, error)
	createReleaseFunc   func(ctx context.Context, project *model.Project, params *model.ReleaseParams) (*model.Release, error)
	updateReleaseFunc   func(ctx context.Context, project *model.Project, id int64, params *model.ReleaseParams) (*model.Release, error)
	getLatestRelFunc    func(ctx context.Context, project *model.Project) (*model.Release, error)
	createTagFunc       func(ctx context.Context, project *model.Project, tag, sha string) (*model.Ref, error)
	mergeFunc           func(ctx context.Context, project *model.Project, base, head, message string) (*model.Commit, error)

	calls []string
}

func (m *mockHosting) record(name string) {
	m.calls = append(m.calls, name)
}

func (m *mockHosting) GetLatestCommit(ctx context.Context, project *model.Project, branch string) (*model.Commit, error) {
	m.record("GetLatestCommit")
	if m.getLatestCommitFunc != nil {
		return m.getLatestCommitFunc(ctx, project, branch)
	}
	return nil, errors.New("mock not configured")
}

func (m *mockHosting) CreateRef(ctx context.Context, project *model.Project, branch, sha string) (*model.Ref, error) {
	m.record("CreateRef")
	if m.createRefFunc != nil {
		return m.createRefFunc(ctx, project, branch, sha)
	}
	return nil, errors.New("mock not configured")
}

func (m *mockHosting) DeleteRef(ctx context.Context, project *model.Project, branch string) error {
	m.record("DeleteRef")
	if m.deleteRefFunc != nil {
		return m.deleteRefFunc(ctx, project, branch)
	}
	return errors.New("mock not configured")
}

func (m *mockHosting) GetComparison(ctx context.Context, project *model.Project, base, head string) (*model.Comparison, error) {
	m.record("GetComparison")
	if m.getComparisonFunc != nil {
		return m.getComparisonFunc(ctx, project, base, head)
	}
	return nil, errors.New("mock not configured")
}

func (m *mockHosting) CreateRelease(ctx context.Context, project *model.Project, params *model.ReleaseParams) (*model.Release, error) {
	m.record("CreateRelease")
	if m.createReleaseFunc != nil {
		return m.createReleaseFunc(ctx, project, params)
	}
	return nil, errors.New("mock not configured")
}

func (m *mockHosting) UpdateRelease(ctx context.Context, project *model.Project, id int64, params *model.ReleaseParams) (*model.Release, error) {
	m.record("UpdateRelease")
	if m.updateReleaseFunc != nil {
		return m.updateReleaseFunc(ctx, project, id, params)
	}
	return nil, errors.New("mock not configured")
}

func (m *mockHosting) GetLatestRelease(ctx context.Context, project *model.Project) (*model.Release, error) {
	m.record("GetLatestRelease")
	if m.getLatestRelFunc != nil {
		return m.getLatestRelFunc(ctx, project)
	}
	return nil, errors.New("mock not configured")
}

func (m *mockHosting) CreateTag(ctx context.Context, project *model.Project, tag, sha string) (*model.Ref, error) {
	m.record("CreateTag")
	if m.createTagFunc != nil {
		return m.createTagFunc(ctx, project, tag, sha)
	}
	return nil, errors.New("mock not configured")
}

func (m *mockHosting) Merge(ctx context.Context, project *model.Project, base, head, message string) (*model.Commit, error) {
	m.record("Merge")
	if m.mergeFunc != nil {
		return m.mergeFunc(ctx, project, base, head, message)
	}
	return nil, errors.New("mock not configured")
}

func (m *mockHosting) called(name string) bool {
	for _, c := range m.calls {
		if c == name {
			return true
		}
	}
	return false
}

func testProject() *model.Project {
	return &model.Project{
		Owner:    "acme",
		Repo:     "webapp",
		Strategy: model.StrategySemVer,
		Mainline: "main",
	}
}
