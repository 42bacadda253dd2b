package contract

import (
	"context"

	"github.com/FractalWire/git-tools/schema"
	"github.com/stretchr/testify/mock"
)

// MockGitClient is a testify mock for the GitClient interface.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	root, _ := ret.Get(0).(string)
	return root, ret.Error(1)
}

// GetUserEmail implements the GitClient interface.
func (m *MockGitClient) GetUserEmail(ctx context.Context, repoPath string) (string, error) {
	ret := m.Called(ctx, repoPath)
	email, _ := ret.Get(0).(string)
	return email, ret.Error(1)
}

// ListAuthorEmails implements the GitClient interface.
func (m *MockGitClient) ListAuthorEmails(ctx context.Context, repoPath string) ([]string, error) {
	ret := m.Called(ctx, repoPath)
	emails, _ := ret.Get(0).([]string)
	return emails, ret.Error(1)
}

// ListCommits implements the GitClient interface.
func (m *MockGitClient) ListCommits(ctx context.Context, repoPath string, filter schema.LogFilter) ([]schema.CommitRecord, error) {
	ret := m.Called(ctx, repoPath, filter)
	commits, _ := ret.Get(0).([]schema.CommitRecord)
	return commits, ret.Error(1)
}
