package syncer

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/five82/checkoff/internal/api"
	"github.com/five82/checkoff/internal/session"
	"github.com/five82/checkoff/internal/state"
)

// Controller drives the remote API and keeps the store in step with it.
// Every successful mutation is followed by exactly one Refresh; the store is
// never patched locally.
type Controller struct {
	gateway api.Gateway
	store   *state.Store
	session *session.Session

	mu      sync.Mutex
	compose string
}

// New wires a controller. Nil store or session are allocated.
func New(gateway api.Gateway, store *state.Store, sess *session.Session) *Controller {
	if store == nil {
		store = &state.Store{}
	}
	if sess == nil {
		sess = &session.Session{}
	}
	return &Controller{gateway: gateway, store: store, session: sess}
}

// Store exposes the collection state for rendering.
func (c *Controller) Store() *state.Store { return c.store }

// Session exposes the edit state for rendering.
func (c *Controller) Session() *session.Session { return c.session }

// Snapshot is shorthand for Store().Snapshot().
func (c *Controller) Snapshot() state.Snapshot { return c.store.Snapshot() }

// Compose returns the new-todo input buffer.
func (c *Controller) Compose() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.compose
}

// SetCompose replaces the new-todo input buffer.
func (c *Controller) SetCompose(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.compose = text
}

// DismissError clears the error slot.
func (c *Controller) DismissError() {
	c.store.ClearError()
}

// Refresh re-lists the collection. On failure the previous items stay.
func (c *Controller) Refresh(ctx context.Context) error {
	c.store.ClearError()
	c.store.SetLoading(true)
	defer c.store.SetLoading(false)

	items, err := c.gateway.List(ctx)
	if err != nil {
		c.fail(api.OpList, err)
		return err
	}
	c.store.Replace(items)
	return nil
}

// Create adds a todo. A blank title is rejected without a request. The
// compose buffer is cleared only on success.
func (c *Controller) Create(ctx context.Context, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if _, err := c.gateway.Create(ctx, title); err != nil {
		c.fail(api.OpCreate, err)
		return err
	}
	c.reconcile(ctx)
	c.SetCompose("")
	return nil
}

// Update applies patch to id. A title in the patch is trimmed and must be
// non-empty. The edit session is not touched.
func (c *Controller) Update(ctx context.Context, id string, patch api.Patch) error {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return ErrEmptyTitle
		}
		patch.Title = &title
	}
	if patch.IsEmpty() {
		return api.ErrEmptyPatch
	}
	if _, err := c.gateway.Update(ctx, id, patch); err != nil {
		c.fail(api.OpUpdate, err)
		return err
	}
	c.reconcile(ctx)
	return nil
}

// Toggle flips the completion flag of id as currently known locally. It is
// allowed whatever the edit state.
func (c *Controller) Toggle(ctx context.Context, id string) error {
	item, ok := c.store.Snapshot().Find(id)
	if !ok {
		return ErrNotFound
	}
	return c.Update(ctx, id, api.CompletedPatch(!item.Completed))
}

// Remove deletes id.
func (c *Controller) Remove(ctx context.Context, id string) error {
	if err := c.gateway.Delete(ctx, id); err != nil {
		c.fail(api.OpDelete, err)
		return err
	}
	c.reconcile(ctx)
	return nil
}

// StartEdit opens an edit of id seeded with its current title. Completed
// todos cannot be edited.
func (c *Controller) StartEdit(id string) error {
	item, ok := c.store.Snapshot().Find(id)
	if !ok {
		return ErrNotFound
	}
	if item.Completed {
		return ErrLocked
	}
	c.session.Start(id, item.Title)
	return nil
}

// UpdateDraft replaces the draft of the open edit.
func (c *Controller) UpdateDraft(text string) error {
	if !c.session.SetDraft(text) {
		return ErrNotEditing
	}
	return nil
}

// Commit saves the open edit. A blank draft is a no-op that keeps the edit
// open; a failed save keeps the draft so it can be retried or cancelled.
func (c *Controller) Commit(ctx context.Context) error {
	id, title, ok := c.session.Pending()
	if !ok {
		return ErrNotEditing
	}
	if title == "" {
		return ErrEmptyTitle
	}
	if err := c.Update(ctx, id, api.TitlePatch(title)); err != nil {
		return err
	}
	c.session.Finish(id)
	return nil
}

// CancelEdit abandons the open edit without a request.
func (c *Controller) CancelEdit() {
	c.session.Cancel()
}

// reconcile runs the post-mutation refresh. Its failure is already recorded
// in the store, so the mutation itself still reports success.
func (c *Controller) reconcile(ctx context.Context) {
	_ = c.Refresh(ctx)
}

// fail records a gateway failure. Client-side rejections never reach the
// error slot.
func (c *Controller) fail(op api.Op, err error) {
	if IsValidation(err) {
		return
	}
	c.store.SetError(Message(op, err))
	log.Printf("%s failed: %v", op, err)
}
