package dashboard

import (
	"context"
	"fmt"

	"github.com/EO-DataHub/eodhp-users-dashboard/models"
	"github.com/stretchr/testify/mock"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) GetUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *MockFetcher) GetPosts(ctx context.Context, userID int) ([]models.Post, error) {
	args := m.Called(ctx, userID)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Error(1)
}

func testUsers(n int) []models.User {
	users := make([]models.User, 0, n)
	for i := 1; i <= n; i++ {
		users = append(users, models.User{
			ID:    i,
			Name:  fmt.Sprintf("User %d", i),
			Email: fmt.Sprintf("user%d@example.com", i),
			Address: models.Address{
				Street:  "Kulas Light",
				Suite:   "Apt. 556",
				City:    "Gwenborough",
				Zipcode: "92998-3874",
			},
			Company: models.Company{Name: "Romaguera-Crona"},
		})
	}
	return users
}
