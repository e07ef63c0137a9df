package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/EO-DataHub/eodhp-users-dashboard/internal/appconfig"
	"github.com/EO-DataHub/eodhp-users-dashboard/models"
)

// newSourceServer serves n users, each with one post, from an in-memory source.
func newSourceServer(t *testing.T, n int) *httptest.Server {
	t.Helper()

	users := make([]models.User, 0, n)
	for i := 1; i <= n; i++ {
		users = append(users, models.User{
			ID:      i,
			Name:    fmt.Sprintf("User %d", i),
			Email:   fmt.Sprintf("user%d@example.com", i),
			Company: models.Company{Name: "Romaguera-Crona"},
		})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(users)
	})
	mux.HandleFunc("/posts", func(w http.ResponseWriter, r *http.Request) {
		var id int
		if _, err := fmt.Sscanf(r.URL.Query().Get("userId"), "%d", &id); err != nil {
			http.Error(w, "bad userId", http.StatusBadRequest)
			return
		}
		if id > n {
			_ = json.NewEncoder(w).Encode([]models.Post{})
			return
		}
		_ = json.NewEncoder(w).Encode([]models.Post{
			{ID: id * 10, UserID: id, Title: fmt.Sprintf("Post of %d", id), Body: "body"},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testConfig(sourceURL, basePath string) *appconfig.Config {
	cfg := appconfig.Default()
	cfg.Source.URL = sourceURL
	cfg.BasePath = basePath
	return cfg
}
