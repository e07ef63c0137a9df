package dashboard

import "github.com/EO-DataHub/eodhp-users-dashboard/models"

// OverlayMode is what the post overlay shows for a given set of props.
type OverlayMode string

const (
	OverlayHidden  OverlayMode = "hidden"
	OverlayLoading OverlayMode = "loading"
	OverlayEmpty   OverlayMode = "empty"
	OverlayPosts   OverlayMode = "posts"
)

const (
	OverlayTitle       = "User's Posts"
	OverlayLoadingText = "Loading posts..."
	OverlayEmptyText   = "No posts found for this user"
	OverlayDismissText = "Close"
)

// OverlayProps parameterise the post overlay. The overlay never mutates them.
type OverlayProps struct {
	Visible bool
	Posts   []models.Post
	Loading bool
	Dismiss func()
}

// PostEntry is one rendered post.
type PostEntry struct {
	Title  string `json:"title"`
	UserID int    `json:"userId"`
	PostID int    `json:"postId"`
	Body   string `json:"body"`
}

// Overlay is the rendered form of the post overlay.
type Overlay struct {
	Mode    OverlayMode `json:"mode"`
	Title   string      `json:"title,omitempty"`
	Message string      `json:"message,omitempty"`
	Entries []PostEntry `json:"entries,omitempty"`

	dismiss func()
}

// RenderOverlay applies the overlay contract to props.
func RenderOverlay(props OverlayProps) Overlay {
	if !props.Visible {
		return Overlay{Mode: OverlayHidden}
	}

	overlay := Overlay{Title: OverlayTitle, dismiss: props.Dismiss}
	switch {
	case props.Loading:
		overlay.Mode = OverlayLoading
		overlay.Message = OverlayLoadingText
	case len(props.Posts) == 0:
		overlay.Mode = OverlayEmpty
		overlay.Message = OverlayEmptyText
	default:
		overlay.Mode = OverlayPosts
		overlay.Entries = make([]PostEntry, 0, len(props.Posts))
		for _, post := range props.Posts {
			overlay.Entries = append(overlay.Entries, PostEntry{
				Title:  post.Title,
				UserID: post.UserID,
				PostID: post.ID,
				Body:   post.Body,
			})
		}
	}

	return overlay
}

// Visible reports whether anything is rendered at all.
func (o Overlay) Visible() bool {
	return o.Mode != OverlayHidden
}

// DismissLabel is the text of the dismiss control.
func (o Overlay) DismissLabel() string {
	return OverlayDismissText
}

// Dismiss invokes the caller's dismiss callback, if the overlay is shown.
func (o Overlay) Dismiss() {
	if o.Visible() && o.dismiss != nil {
		o.dismiss()
	}
}
