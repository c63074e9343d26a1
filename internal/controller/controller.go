// Package controller orchestrates user actions against the store, the
// gateway and the validation engine, and exposes the UI-relevant state
// (form mode, row menu, delete modal, table query) to the view layer.
package controller

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bpsoft/catalog/internal/catalog"
	"github.com/bpsoft/catalog/internal/form"
	"github.com/bpsoft/catalog/internal/gateway"
	"github.com/bpsoft/catalog/internal/store"
	"github.com/bpsoft/catalog/internal/view"
)

// Mode is the form state machine: closed, adding a new product, or editing
// an existing one.
type Mode int

const (
	ModeClosed Mode = iota
	ModeAdd
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeEdit:
		return "edit"
	default:
		return "closed"
	}
}

// API is the slice of the gateway the controller drives. *gateway.Gateway
// satisfies it; tests substitute a mock.
type API interface {
	List(ctx context.Context) []catalog.Product
	Create(ctx context.Context, p catalog.Product) *gateway.MutationResult
	Update(ctx context.Context, p catalog.Product) *gateway.MutationResult
	Delete(ctx context.Context, p catalog.Product) bool
	IDExists(ctx context.Context, id string) bool
}

// Callbacks are the collaborator hooks the controller fires instead of the
// original event emitters. Each fires at most once per user action; all are
// optional.
type Callbacks struct {
	// Alert surfaces a user-facing message (confirmations, write failures).
	Alert func(message string)
	// Navigate asks the routing collaborator for a view transition.
	Navigate func(path string)
	// OnSubmit fires once per successful submission with the finalized product.
	OnSubmit func(p catalog.Product)
	// OnClose fires once per explicit form close.
	OnClose func()
}

// Controller owns the transient UI state. The store remains the single
// source of truth for the product collection; the controller never caches
// products of its own.
type Controller struct {
	store     *store.Store
	api       API
	validator *form.Validator
	logger    *slog.Logger
	cb        Callbacks

	mu           sync.Mutex
	mode         Mode
	draft        form.Draft
	isEdit       bool
	idExists     bool
	errors       map[string]string
	query        view.Query
	menuOpen     string
	deleteTarget *catalog.Product
}

// New wires the controller to its collaborators. Construction is explicit:
// the composition root builds the gateway and the store and passes them in.
func New(st *store.Store, api API, v *form.Validator, logger *slog.Logger, cb Callbacks) *Controller {
	return &Controller{
		store:     st,
		api:       api,
		validator: v,
		logger:    logger.With("component", "controller"),
		cb:        cb,
		errors:    map[string]string{},
		query:     view.NewQuery(),
	}
}

// Init performs the initial list fetch. Call once after construction.
func (c *Controller) Init(ctx context.Context) {
	c.store.Refresh(ctx)
}

// Page recomputes the derived table view from the current store snapshot and
// query parameters.
func (c *Controller) Page() view.Page {
	c.mu.Lock()
	q := c.query
	c.mu.Unlock()
	return view.Compute(c.store.Products(), q)
}

// Mode returns the current form mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Draft returns the current form draft.
func (c *Controller) Draft() form.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Errors returns the error map from the last validation pass.
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	errs := make(map[string]string, len(c.errors))
	for k, v := range c.errors {
		errs[k] = v
	}
	return errs
}

// Query returns the current table parameters.
func (c *Controller) Query() view.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// MenuTarget returns the id of the product whose row menu is open, or "".
func (c *Controller) MenuTarget() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.menuOpen
}

// DeleteTarget returns the product pending delete confirmation, or nil.
func (c *Controller) DeleteTarget() *catalog.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deleteTarget == nil {
		return nil
	}
	p := *c.deleteTarget
	return &p
}

// OpenAddForm switches to add mode with a fresh draft (today / +1yr dates).
func (c *Controller) OpenAddForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeAdd
	c.isEdit = false
	c.draft = form.NewDraft()
	c.idExists = false
	c.errors = map[string]string{}
}

// OpenEditForm switches to edit mode with the draft populated from p.
// The row menu closes; editing and the menu never overlap visually.
func (c *Controller) OpenEditForm(p catalog.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeEdit
	c.isEdit = true
	c.draft = form.DraftFrom(p)
	c.idExists = false
	c.errors = map[string]string{}
	c.menuOpen = ""
}

// Reset clears the open form back to its opening values: dates return to
// today / one year out, errors and the uniqueness flag clear. In edit mode
// the id is kept, since the id never changes once a product exists.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == ModeClosed {
		return
	}
	id := ""
	if c.isEdit {
		id = c.draft.ID
	}
	c.draft = form.NewDraft()
	c.draft.ID = id
	c.idExists = false
	c.errors = map[string]string{}
}

// Close discards the draft and returns to the closed state. Calling it on an
// already-closed form is a no-op.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.mode == ModeClosed {
		c.mu.Unlock()
		return
	}
	c.mode = ModeClosed
	c.isEdit = false
	c.draft = form.Draft{}
	c.idExists = false
	c.errors = map[string]string{}
	c.mu.Unlock()

	if c.cb.OnClose != nil {
		c.cb.OnClose()
	}
}

// SetID updates the draft id and refreshes the uniqueness flag when the id is
// at least 3 characters. The check runs against the most recently resolved
// value; validation consumes whatever flag is current at submit time.
func (c *Controller) SetID(ctx context.Context, id string) {
	c.mu.Lock()
	c.draft.ID = id
	isEdit := c.isEdit
	c.mu.Unlock()

	if isEdit || len(id) < 3 {
		return
	}
	exists := c.api.IDExists(ctx, id)

	c.mu.Lock()
	// Last completion wins on overlapping checks, same as the original.
	if c.draft.ID == id {
		c.idExists = exists
	}
	c.mu.Unlock()
}

// SetName updates the draft name.
func (c *Controller) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Name = name
}

// SetDescription updates the draft description.
func (c *Controller) SetDescription(description string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Description = description
}

// SetLogo updates the draft logo.
func (c *Controller) SetLogo(logo string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Logo = logo
}

// SetDateRelease updates the release date; the revision date is overwritten
// with release plus one year.
func (c *Controller) SetDateRelease(d catalog.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.SetDateRelease(d)
}

// Submit validates the draft and, when it passes, sends the create or update,
// refreshes the store and closes the form. On validation failure the form
// stays open with the error map populated and no network call is made. On
// transport failure the form stays open for retry and the alert collaborator
// carries the failure message.
func (c *Controller) Submit(ctx context.Context) bool {
	c.mu.Lock()
	if c.mode == ModeClosed {
		c.mu.Unlock()
		return false
	}
	errs := c.validator.Validate(c.draft, c.isEdit, c.idExists)
	if len(errs) > 0 {
		c.errors = errs
		c.mu.Unlock()
		c.logger.Debug("draft rejected by validation", "fields", len(errs))
		return false
	}
	c.errors = map[string]string{}
	p := c.draft.Product()
	mode := c.mode
	c.mu.Unlock()

	var res *gateway.MutationResult
	if mode == ModeEdit {
		res = c.api.Update(ctx, p)
	} else {
		res = c.api.Create(ctx, p)
	}
	if res == nil {
		if mode == ModeEdit {
			c.alert("Error updating the product")
		} else {
			c.alert("Error adding the product")
		}
		return false
	}

	c.store.Refresh(ctx)

	c.mu.Lock()
	c.mode = ModeClosed
	c.isEdit = false
	c.draft = form.Draft{}
	c.idExists = false
	c.menuOpen = ""
	c.mu.Unlock()

	c.alert(res.Message)
	if c.cb.OnSubmit != nil {
		c.cb.OnSubmit(p)
	}
	if c.cb.Navigate != nil {
		c.cb.Navigate("/")
	}
	return true
}

// Search updates the search term; the page index resets to 0.
func (c *Controller) Search(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query.SetSearch(term)
}

// GoToPage jumps to the given page index.
func (c *Controller) GoToPage(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query.GoToPage(index)
}

// SetPageSize updates the page size; the page index resets to 0.
func (c *Controller) SetPageSize(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query.SetPageSize(size)
}

// OpenMenu toggles the row menu for the given product: opening it for the
// product whose menu is already open closes it instead.
func (c *Controller) OpenMenu(p catalog.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.menuOpen == p.ID {
		c.menuOpen = ""
		return
	}
	c.menuOpen = p.ID
}

// CloseMenu closes the row menu.
func (c *Controller) CloseMenu() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.menuOpen = ""
}

// RequestDelete opens the delete-confirmation modal for p and closes the row menu.
func (c *Controller) RequestDelete(p catalog.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleteTarget = &p
	c.menuOpen = ""
}

// CancelDelete dismisses the delete-confirmation modal.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleteTarget = nil
}

// ConfirmDelete performs the pending delete. On success the store refreshes
// and the modal closes; on transport failure the modal stays open for retry.
func (c *Controller) ConfirmDelete(ctx context.Context) bool {
	c.mu.Lock()
	if c.deleteTarget == nil {
		c.mu.Unlock()
		return false
	}
	target := *c.deleteTarget
	c.mu.Unlock()

	if !c.api.Delete(ctx, target) {
		c.alert("Error deleting the product")
		return false
	}

	c.store.Refresh(ctx)

	c.mu.Lock()
	c.deleteTarget = nil
	c.menuOpen = ""
	c.mu.Unlock()

	c.alert("Product deleted successfully")
	return true
}

func (c *Controller) alert(message string) {
	if c.cb.Alert != nil {
		c.cb.Alert(message)
	}
}
