package cli

import (
	"context"

	"github.com/stretchr/testify/mock"

	"deadlines/internal/api"
	"deadlines/internal/widget"
)

// mockBusinessAPI records calls to the read side of the API. Methods it does
// not override panic through the nil embedded interface.
type mockBusinessAPI struct {
	api.BusinessAPI
	mock.Mock
}

func newMockBusinessAPI() *mockBusinessAPI {
	return &mockBusinessAPI{}
}

func (m *mockBusinessAPI) ListTasks(ctx context.Context, req api.ListRequest) (*api.TaskList, error) {
	args := m.Called(ctx, req)
	list, _ := args.Get(0).(*api.TaskList)
	return list, args.Error(1)
}

func (m *mockBusinessAPI) CountExpired(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockBusinessAPI) ListCategories(ctx context.Context, activeOnly bool) ([]api.CategoryView, error) {
	args := m.Called(ctx, activeOnly)
	categories, _ := args.Get(0).([]api.CategoryView)
	return categories, args.Error(1)
}

func (m *mockBusinessAPI) WidgetDigest(ctx context.Context, days int) (*widget.Digest, error) {
	args := m.Called(ctx, days)
	digest, _ := args.Get(0).(*widget.Digest)
	return digest, args.Error(1)
}
