package dashboard

import (
	"context"
	"sync"

	"github.com/EO-DataHub/eodhp-users-dashboard/models"
	"github.com/rs/zerolog"
)

// Messages stored in the directory's error slot.
const (
	UsersFetchError = "Error fetching users data"
	PostsFetchError = "Error fetching posts data"
)

// Phase is the overlay/selection state of the directory.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseFailed  Phase = "failed"
)

// Fetcher retrieves users and posts from the remote source.
type Fetcher interface {
	GetUsers(ctx context.Context) ([]models.User, error)
	GetPosts(ctx context.Context, userID int) ([]models.Post, error)
}

// Directory owns the users, pagination, selection and error state of the
// dashboard. State changes only through its exported transitions; fetch
// results are applied from their own goroutines under the lock.
type Directory struct {
	fetcher Fetcher
	log     *zerolog.Logger

	mu      sync.Mutex
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	mounted bool

	users        []models.User
	loadingUsers bool
	pagination   Pagination

	posts          []models.Post
	loadingPosts   bool
	selectedUserID *int
	overlayVisible bool
	phase          Phase
	errMsg         string

	// postsSeq tags each posts fetch; only the latest may apply.
	postsSeq    uint64
	cancelPosts context.CancelFunc
}

// NewDirectory creates an unmounted directory.
func NewDirectory(fetcher Fetcher, pageSize int, log *zerolog.Logger) *Directory {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	return &Directory{
		fetcher:      fetcher,
		log:          log,
		loadingUsers: true,
		pagination:   NewPagination(pageSize),
		users:        []models.User{},
		posts:        []models.Post{},
		phase:        PhaseIdle,
	}
}

// Mount starts the one-off users fetch. Fetches issued afterwards live no
// longer than ctx or Unmount. Mounting twice has no effect.
func (d *Directory) Mount(ctx context.Context) {
	d.mu.Lock()
	if d.mounted {
		d.mu.Unlock()
		return
	}
	d.mounted = true
	d.ctx, d.cancel = context.WithCancel(ctx)
	mountCtx := d.ctx
	d.wg.Add(1)
	d.mu.Unlock()

	go d.loadUsers(mountCtx)
}

// Unmount cancels all outstanding fetches and waits for them to return.
func (d *Directory) Unmount() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.mu.Unlock()

	d.wg.Wait()
	d.log.Debug().Msg("directory unmounted")
}

// Wait blocks until every fetch issued so far has been applied or discarded.
func (d *Directory) Wait() {
	d.wg.Wait()
}

func (d *Directory) loadUsers(ctx context.Context) {
	defer d.wg.Done()

	d.log.Debug().Msg("fetching users")
	users, err := d.fetcher.GetUsers(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()

	// A cancelled fetch never resolved; the directory keeps loading.
	if err != nil && ctx.Err() != nil {
		d.log.Debug().Err(err).Msg("users fetch cancelled")
		return
	}

	d.loadingUsers = false
	if err != nil {
		d.log.Error().Err(err).Msg("failed to fetch users")
		d.errMsg = UsersFetchError
		return
	}

	if users == nil {
		users = []models.User{}
	}
	d.users = users
	d.log.Info().Int("users", len(users)).Msg("users loaded")
}

// SelectUser selects a user, clears the displayed posts, opens the overlay
// and starts fetching the user's posts. Any superseded posts fetch is
// cancelled and its result discarded.
func (d *Directory) SelectUser(userID int) {
	d.mu.Lock()

	if d.cancelPosts != nil {
		d.cancelPosts()
	}
	d.postsSeq++
	seq := d.postsSeq
	ctx, cancel := context.WithCancel(d.baseContext())
	d.cancelPosts = cancel

	id := userID
	d.selectedUserID = &id
	d.posts = []models.Post{}
	d.overlayVisible = true
	d.loadingPosts = true
	d.phase = PhaseLoading
	d.wg.Add(1)
	d.mu.Unlock()

	d.log.Debug().Int("user", userID).Uint64("seq", seq).Msg("user selected")
	go d.loadPosts(ctx, cancel, seq, userID)
}

func (d *Directory) loadPosts(ctx context.Context, cancel context.CancelFunc, seq uint64, userID int) {
	defer d.wg.Done()
	defer cancel()

	logger := d.log.With().Int("user", userID).Uint64("seq", seq).Logger()
	logger.Debug().Msg("fetching posts")

	posts, err := d.fetcher.GetPosts(ctx, userID)

	d.mu.Lock()
	defer d.mu.Unlock()

	if seq != d.postsSeq {
		logger.Debug().Uint64("latest", d.postsSeq).Msg("discarding superseded posts response")
		return
	}

	// A cancelled fetch never resolved; the overlay keeps loading.
	if err != nil && ctx.Err() != nil {
		logger.Debug().Err(err).Msg("posts fetch cancelled")
		return
	}

	d.loadingPosts = false
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch posts")
		d.errMsg = PostsFetchError
		d.posts = []models.Post{}
		if d.overlayVisible {
			d.phase = PhaseFailed
		}
		return
	}

	if posts == nil {
		posts = []models.Post{}
	}
	d.posts = posts
	if d.overlayVisible {
		d.phase = PhaseLoaded
	}
	logger.Debug().Int("posts", len(posts)).Msg("posts loaded")
}

// CloseOverlay hides the overlay and clears the selection. An in-flight
// posts fetch is left to complete.
func (d *Directory) CloseOverlay() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.overlayVisible = false
	d.selectedUserID = nil
	d.phase = PhaseIdle
	d.log.Debug().Msg("overlay closed")
}

// Paginate sets the current page without validating it.
func (d *Directory) Paginate(page int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pagination.CurrentPage = page
	d.log.Debug().Int("page", page).Msg("page changed")
}

// Navigate paginates only when a navigation control could reach page, and
// reports whether it did.
func (d *Directory) Navigate(page int) bool {
	d.mu.Lock()
	allowed := d.pagination.CanNavigate(page, len(d.users))
	d.mu.Unlock()

	if !allowed {
		d.log.Debug().Int("page", page).Msg("navigation disabled")
		return false
	}

	d.Paginate(page)
	return true
}

// Snapshot returns a copy of the directory state for rendering.
func (d *Directory) Snapshot() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.snapshot()
}

func (d *Directory) snapshot() State {
	state := State{
		Users:          d.pagination.Slice(d.users),
		TotalUsers:     len(d.users),
		Pagination:     d.pagination,
		Controls:       d.pagination.Controls(len(d.users)),
		LoadingUsers:   d.loadingUsers,
		Error:          d.errMsg,
		OverlayVisible: d.overlayVisible,
		LoadingPosts:   d.loadingPosts,
		Posts:          append([]models.Post{}, d.posts...),
		Phase:          d.phase,
	}
	if d.selectedUserID != nil {
		id := *d.selectedUserID
		state.SelectedUserID = &id
	}

	return state
}

// View returns a snapshot together with the overlay rendered from that same
// snapshot, dismissing into CloseOverlay.
func (d *Directory) View() (State, Overlay) {
	d.mu.Lock()
	state := d.snapshot()
	d.mu.Unlock()

	return state, RenderOverlay(state.OverlayProps(d.CloseOverlay))
}

// Overlay renders the post overlay for the current state.
func (d *Directory) Overlay() Overlay {
	_, overlay := d.View()
	return overlay
}

func (d *Directory) baseContext() context.Context {
	if d.ctx != nil {
		return d.ctx
	}
	return context.Background()
}
