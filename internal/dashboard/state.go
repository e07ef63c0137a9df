package dashboard

import "github.com/EO-DataHub/eodhp-users-dashboard/models"

// DirectoryMode is what the directory area shows.
type DirectoryMode string

const (
	DirectoryLoading DirectoryMode = "loading"
	DirectoryError   DirectoryMode = "error"
	DirectoryUsers   DirectoryMode = "users"
)

const UsersLoadingText = "Loading users..."

// State is an immutable snapshot of a Directory.
type State struct {
	Users          []models.User `json:"users"`
	TotalUsers     int           `json:"totalUsers"`
	Pagination     Pagination    `json:"pagination"`
	Controls       Controls      `json:"controls"`
	LoadingUsers   bool          `json:"loadingUsers"`
	Error          string        `json:"error,omitempty"`
	SelectedUserID *int          `json:"selectedUserId"`
	OverlayVisible bool          `json:"overlayVisible"`
	LoadingPosts   bool          `json:"loadingPosts"`
	Posts          []models.Post `json:"posts"`
	Phase          Phase         `json:"phase"`
}

// Mode resolves the directory area: loading wins over error, error over users.
func (s State) Mode() DirectoryMode {
	switch {
	case s.LoadingUsers:
		return DirectoryLoading
	case s.Error != "":
		return DirectoryError
	default:
		return DirectoryUsers
	}
}

// OverlayProps wires the snapshot into the post overlay.
func (s State) OverlayProps(dismiss func()) OverlayProps {
	return OverlayProps{
		Visible: s.OverlayVisible,
		Posts:   s.Posts,
		Loading: s.LoadingPosts,
		Dismiss: dismiss,
	}
}
