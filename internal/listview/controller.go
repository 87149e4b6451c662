// Package listview drives the employee list screen: query state, status
// filter, the displayed page of records and the row actions on it.
//
// Every state change goes through a single reconciler. Each fetch carries a
// generation number and only the response of the latest generation is
// applied, so overlapping fetches can never show stale rows.
package listview

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/prasadp25/protecther-hrms-sub001/internal/client"
	"github.com/prasadp25/protecther-hrms-sub001/internal/document"
	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/query"

	"go.uber.org/zap"
)

const (
	StatusAll        = "ALL"
	StatusActive     = "ACTIVE"
	StatusOnLeave    = "ON_LEAVE"
	StatusResigned   = "RESIGNED"
	StatusTerminated = "TERMINATED"
)

// StatusFilters are the choices of the status filter, ALL first.
var StatusFilters = []string{StatusAll, StatusActive, StatusOnLeave, StatusResigned, StatusTerminated}

var (
	ErrDeclined      = errors.New("action declined")
	ErrInvalidStatus = errors.New("invalid employee status")
)

type EmployeeDataService interface {
	List(ctx context.Context, params map[string]string) (client.EmployeePage, error)
	Update(ctx context.Context, id string, fields map[string]any) (client.Result, error)
	SoftDelete(ctx context.Context, id string) (client.Result, error)
}

type SiteDataService interface {
	List(ctx context.Context) ([]client.Site, error)
}

// Notifier shows blocking messages to the user.
type Notifier interface {
	Error(msg string)
	Info(msg string)
}

type Confirmer interface {
	Confirm(prompt string) bool
}

// Editor opens the edit view for an employee.
type Editor interface {
	Edit(id string)
}

// View is a snapshot of what the screen shows.
type View struct {
	State      query.State
	Status     string
	Records    []client.Employee
	Pagination query.PaginationMeta
	Loading    bool
	// Err is the failure of the latest fetch, nil once a fetch succeeds.
	Err error
}

type Controller struct {
	employees EmployeeDataService
	sites     SiteDataService
	notifier  Notifier
	confirmer Confirmer
	editor    Editor
	uploadURL string
	logger    *zap.Logger

	mu         sync.Mutex
	state      query.State
	status     string
	records    []client.Employee
	pagination query.PaginationMeta
	loading    bool
	fetchErr   error
	generation uint64
	siteLabels map[string]string
}

type Option func(*Controller)

func WithNotifier(n Notifier) Option    { return func(c *Controller) { c.notifier = n } }
func WithConfirmer(cf Confirmer) Option { return func(c *Controller) { c.confirmer = cf } }
func WithEditor(e Editor) Option        { return func(c *Controller) { c.editor = e } }

// WithUploadBaseURL sets the host document paths are resolved against.
func WithUploadBaseURL(base string) Option { return func(c *Controller) { c.uploadURL = base } }

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l.Named("listview.controller") }
}

// WithInitialState overrides the default page 1 / limit 10 state.
func WithInitialState(s query.State) Option { return func(c *Controller) { c.state = s } }

// WithStatusFilter starts with a status filter other than ALL. Invalid
// values are ignored.
func WithStatusFilter(status string) Option {
	return func(c *Controller) {
		status = strings.ToUpper(strings.TrimSpace(status))
		if ValidStatusFilter(status) {
			c.status = status
		}
	}
}

func New(employees EmployeeDataService, sites SiteDataService, opts ...Option) *Controller {
	c := &Controller{
		employees:  employees,
		sites:      sites,
		notifier:   nopNotifier{},
		confirmer:  denyConfirmer{},
		editor:     nopEditor{},
		logger:     zap.L().Named("listview.controller"),
		state:      query.Default(),
		status:     StatusAll,
		records:    []client.Employee{},
		siteLabels: map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start loads the site labels and the first page. A site lookup failure
// is reported but does not stop the list from loading.
func (c *Controller) Start(ctx context.Context) {
	if c.sites != nil {
		sites, err := c.sites.List(ctx)
		if err != nil {
			c.logger.Warn("load sites failed", zap.Error(err))
			c.notifier.Error(userMessage(err, "Could not load sites"))
		} else {
			labels := make(map[string]string, len(sites))
			for _, s := range sites {
				labels[s.ID] = s.Label()
			}
			c.mu.Lock()
			c.siteLabels = labels
			c.mu.Unlock()
		}
	}
	c.reconcile(ctx)
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := make([]client.Employee, len(c.records))
	copy(records, c.records)
	state := c.state
	state.Filters = maps.Clone(state.Filters)
	return View{
		State:      state,
		Status:     c.status,
		Records:    records,
		Pagination: c.pagination,
		Loading:    c.loading,
		Err:        c.fetchErr,
	}
}

func (c *Controller) SetPage(ctx context.Context, n int) {
	c.update(ctx, func(s query.State) query.State { return s.SetPage(n) })
}

func (c *Controller) SetLimit(ctx context.Context, n int) {
	c.update(ctx, func(s query.State) query.State { return s.SetLimit(n) })
}

func (c *Controller) SetSearch(ctx context.Context, term string) {
	c.update(ctx, func(s query.State) query.State { return s.SetSearch(term) })
}

func (c *Controller) SetSort(ctx context.Context, field, order string) {
	c.update(ctx, func(s query.State) query.State { return s.SetSort(field, order) })
}

func (c *Controller) ToggleSort(ctx context.Context, field string) {
	c.update(ctx, func(s query.State) query.State { return s.ToggleSort(field) })
}

func (c *Controller) SetFilters(ctx context.Context, filters map[string]string) {
	c.update(ctx, func(s query.State) query.State { return s.SetFilters(filters) })
}

func (c *Controller) Reset(ctx context.Context) {
	c.mu.Lock()
	c.state = c.state.Reset()
	c.status = StatusAll
	c.mu.Unlock()
	c.reconcile(ctx)
}

// SetStatus changes the status filter and returns to page 1.
func (c *Controller) SetStatus(ctx context.Context, status string) error {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !ValidStatusFilter(status) {
		return ErrInvalidStatus
	}
	c.mu.Lock()
	c.status = status
	c.state = c.state.SetPage(1)
	c.mu.Unlock()
	c.reconcile(ctx)
	return nil
}

// Reload refetches the current page without changing state.
func (c *Controller) Reload(ctx context.Context) {
	c.reconcile(ctx)
}

func (c *Controller) update(ctx context.Context, fn func(query.State) query.State) {
	c.mu.Lock()
	c.state = fn(c.state)
	c.mu.Unlock()
	c.reconcile(ctx)
}

// Params returns the parameters the next fetch will send.
func (c *Controller) Params() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paramsLocked()
}

func (c *Controller) paramsLocked() map[string]string {
	params := c.state.BuildQueryParams()
	if c.status != StatusAll {
		params["status"] = c.status
	}
	return params
}

// reconcile fetches the page for the current state. The response is
// applied only if no newer fetch started meanwhile; loading is cleared
// only by the latest fetch.
func (c *Controller) reconcile(ctx context.Context) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.loading = true
	params := c.paramsLocked()
	c.mu.Unlock()

	page, err := c.employees.List(ctx, params)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		c.logger.Debug("stale list response dropped", zap.Uint64("generation", gen))
		return
	}
	c.loading = false
	c.fetchErr = err
	if err == nil {
		c.records = page.Records
		if c.records == nil {
			c.records = []client.Employee{}
		}
		c.pagination = page.Pagination
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("list employees failed", zap.Error(err))
		c.notifier.Error(userMessage(err, "Failed to load employees"))
		return
	}
	if !page.Pagination.Consistent() {
		c.logger.Warn("inconsistent pagination from server", zap.Any("pagination", page.Pagination))
	}
}

// Edit hands the employee id to the editor view.
func (c *Controller) Edit(id string) {
	c.editor.Edit(id)
}

// Delete soft-deletes after confirmation and reloads the list.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if !c.confirmer.Confirm("Are you sure you want to delete this employee?") {
		return ErrDeclined
	}

	res, err := c.employees.SoftDelete(ctx, id)
	if err != nil {
		c.notifier.Error(userMessage(err, "Failed to delete employee"))
		return err
	}

	c.notifier.Info(messageOr(res.Message, "Employee deleted"))
	c.reconcile(ctx)
	return nil
}

// ChangeStatus updates only the status field after confirmation and
// reloads the list.
func (c *Controller) ChangeStatus(ctx context.Context, id, status string) error {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status == StatusAll || !ValidStatusFilter(status) {
		return ErrInvalidStatus
	}
	if !c.confirmer.Confirm(fmt.Sprintf("Change employee status to %s?", status)) {
		return ErrDeclined
	}

	res, err := c.employees.Update(ctx, id, map[string]any{"status": status})
	if err != nil {
		c.notifier.Error(userMessage(err, "Failed to update status"))
		return err
	}

	c.notifier.Info(messageOr(res.Message, "Employee status updated"))
	c.reconcile(ctx)
	return nil
}

// SiteLabel resolves a site id loaded at Start; unknown ids show as "-".
func (c *Controller) SiteLabel(siteID string) string {
	if siteID == "" {
		return "-"
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if label, ok := c.siteLabels[siteID]; ok {
		return label
	}
	return "-"
}

// DocumentURL builds the URL of a stored employee document.
func (c *Controller) DocumentURL(path, docType string) string {
	t, _ := document.ParseType(docType)
	return document.ResolveURL(c.uploadURL, path, t)
}

// ValidStatusFilter reports whether status is one of StatusFilters.
func ValidStatusFilter(status string) bool {
	for _, s := range StatusFilters {
		if s == status {
			return true
		}
	}
	return false
}

// userMessage prefers the server's message, then the client's transport
// message, then fallback.
func userMessage(err error, fallback string) string {
	var cerr *client.Error
	if !errors.As(err, &cerr) {
		return fallback
	}
	if cerr.Message == "" && cerr.Status != 0 {
		return fallback
	}
	return cerr.UserMessage()
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}

type nopNotifier struct{}

func (nopNotifier) Error(string) {}
func (nopNotifier) Info(string)  {}

type denyConfirmer struct{}

func (denyConfirmer) Confirm(string) bool { return false }

type nopEditor struct{}

func (nopEditor) Edit(string) {}
