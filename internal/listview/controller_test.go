package listview_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prasadp25/protecther-hrms-sub001/internal/client"
	"github.com/prasadp25/protecther-hrms-sub001/internal/listview"
	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployees struct {
	mu      sync.Mutex
	listFn  func(ctx context.Context, params map[string]string) (client.EmployeePage, error)
	calls   []map[string]string
	updates map[string]map[string]any
	deletes []string
	failOn  error
}

func (f *fakeEmployees) List(ctx context.Context, params map[string]string) (client.EmployeePage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, params)
	fn := f.listFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, params)
	}
	return client.EmployeePage{Records: []client.Employee{{ID: "e1"}}}, nil
}

func (f *fakeEmployees) Update(_ context.Context, id string, fields map[string]any) (client.Result, error) {
	if f.failOn != nil {
		return client.Result{}, f.failOn
	}
	if f.updates == nil {
		f.updates = map[string]map[string]any{}
	}
	f.updates[id] = fields
	return client.Result{Success: true, Message: "Employee updated"}, nil
}

func (f *fakeEmployees) SoftDelete(_ context.Context, id string) (client.Result, error) {
	if f.failOn != nil {
		return client.Result{}, f.failOn
	}
	f.deletes = append(f.deletes, id)
	return client.Result{Success: true}, nil
}

func (f *fakeEmployees) lastCall() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

type fakeSites struct {
	sites []client.Site
	err   error
}

func (f fakeSites) List(context.Context) ([]client.Site, error) {
	return f.sites, f.err
}

type recordingNotifier struct {
	errs  []string
	infos []string
}

func (n *recordingNotifier) Error(msg string) { n.errs = append(n.errs, msg) }
func (n *recordingNotifier) Info(msg string)  { n.infos = append(n.infos, msg) }

type answer bool

func (a answer) Confirm(string) bool { return bool(a) }

type recordingEditor struct{ ids []string }

func (e *recordingEditor) Edit(id string) { e.ids = append(e.ids, id) }

func TestController_Start(t *testing.T) {
	employees := &fakeEmployees{}
	sites := fakeSites{sites: []client.Site{{ID: "s1", Name: "Pune Plant", Code: "PUN"}}}
	c := listview.New(employees, sites)

	c.Start(context.Background())

	v := c.View()
	assert.False(t, v.Loading)
	assert.Len(t, v.Records, 1)
	assert.Equal(t, listview.StatusAll, v.Status)
	assert.Equal(t, "Pune Plant (PUN)", c.SiteLabel("s1"))
	assert.Equal(t, "-", c.SiteLabel("missing"))
	assert.Equal(t, "-", c.SiteLabel(""))
	assert.Equal(t, map[string]string{"page": "1", "limit": "10"}, employees.lastCall())
}

func TestController_SiteFailureStillLoadsList(t *testing.T) {
	employees := &fakeEmployees{}
	notifier := &recordingNotifier{}
	c := listview.New(employees, fakeSites{err: errors.New("boom")}, listview.WithNotifier(notifier))

	c.Start(context.Background())

	assert.Equal(t, []string{"Could not load sites"}, notifier.errs)
	assert.Len(t, c.View().Records, 1)
}

func TestController_StateChangesRefetch(t *testing.T) {
	ctx := context.Background()
	employees := &fakeEmployees{}
	c := listview.New(employees, nil)

	c.SetPage(ctx, 4)
	assert.Equal(t, "4", employees.lastCall()["page"])

	c.SetSearch(ctx, "asha")
	params := employees.lastCall()
	assert.Equal(t, "1", params["page"])
	assert.Equal(t, "asha", params["search"])

	c.SetPage(ctx, 3)
	c.ToggleSort(ctx, "first_name")
	params = employees.lastCall()
	assert.Equal(t, "1", params["page"])
	assert.Equal(t, "first_name", params["sortBy"])

	c.SetFilters(ctx, map[string]string{"department": "Ops"})
	assert.Equal(t, "Ops", employees.lastCall()["department"])

	c.SetLimit(ctx, 50)
	assert.Equal(t, "50", employees.lastCall()["limit"])

	c.Reset(ctx)
	assert.Equal(t, map[string]string{"page": "1", "limit": "10"}, employees.lastCall())
}

func TestController_SetStatus(t *testing.T) {
	ctx := context.Background()
	employees := &fakeEmployees{}
	c := listview.New(employees, nil)

	c.SetPage(ctx, 2)
	require.NoError(t, c.SetStatus(ctx, "resigned"))
	params := employees.lastCall()
	assert.Equal(t, "RESIGNED", params["status"])
	assert.Equal(t, "1", params["page"])

	require.NoError(t, c.SetStatus(ctx, listview.StatusAll))
	_, has := employees.lastCall()["status"]
	assert.False(t, has)

	calls := len(employees.calls)
	assert.ErrorIs(t, c.SetStatus(ctx, "RETIRED"), listview.ErrInvalidStatus)
	assert.Len(t, employees.calls, calls)
}

func TestController_FailureKeepsRecords(t *testing.T) {
	ctx := context.Background()
	employees := &fakeEmployees{}
	notifier := &recordingNotifier{}
	c := listview.New(employees, nil, listview.WithNotifier(notifier))

	c.Reload(ctx)
	require.Len(t, c.View().Records, 1)

	employees.listFn = func(context.Context, map[string]string) (client.EmployeePage, error) {
		return client.EmployeePage{}, &client.Error{Op: "list employees", Status: 500, Message: "Internal server error"}
	}
	c.SetPage(ctx, 2)

	v := c.View()
	assert.False(t, v.Loading)
	assert.Len(t, v.Records, 1)
	assert.Equal(t, 2, v.State.Page)
	assert.Equal(t, []string{"Internal server error"}, notifier.errs)
	var cerr *client.Error
	require.ErrorAs(t, v.Err, &cerr)
	assert.Equal(t, 500, cerr.Status)

	employees.listFn = nil
	c.Reload(ctx)
	assert.NoError(t, c.View().Err)
}

func TestController_FailureMessages(t *testing.T) {
	ctx := context.Background()
	employees := &fakeEmployees{}
	notifier := &recordingNotifier{}
	c := listview.New(employees, nil, listview.WithNotifier(notifier))

	for _, err := range []error{
		&client.Error{Op: "list employees", Err: errors.New("connection refused")},
		&client.Error{Op: "list employees", Status: 502},
		errors.New("decode failed"),
	} {
		employees.listFn = func(context.Context, map[string]string) (client.EmployeePage, error) {
			return client.EmployeePage{}, err
		}
		c.Reload(ctx)
	}

	assert.Equal(t, []string{
		"Could not reach the server, please try again",
		"Failed to load employees",
		"Failed to load employees",
	}, notifier.errs)
}

func TestController_ViewFiltersAreCopies(t *testing.T) {
	ctx := context.Background()
	employees := &fakeEmployees{}
	c := listview.New(employees, nil)
	c.SetFilters(ctx, map[string]string{"department": "HR"})

	v := c.View()
	v.State.Filters["department"] = "IT"
	v.State.Filters["site_id"] = "s9"

	assert.Equal(t, map[string]string{"department": "HR"}, c.View().State.Filters)
	assert.Equal(t, "HR", c.Params()["department"])
	assert.NotContains(t, c.Params(), "site_id")
}

func TestController_StaleResponseDropped(t *testing.T) {
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	employees := &fakeEmployees{}
	employees.listFn = func(_ context.Context, params map[string]string) (client.EmployeePage, error) {
		if params["page"] == "2" {
			close(started)
			<-release
			return client.EmployeePage{Records: []client.Employee{{ID: "stale"}}}, nil
		}
		return client.EmployeePage{
			Records:    []client.Employee{{ID: "fresh"}},
			Pagination: query.NewPaginationMeta(30, 3, 10),
		}, nil
	}
	c := listview.New(employees, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.SetPage(ctx, 2)
	}()
	<-started

	c.SetPage(ctx, 3)
	close(release)
	wg.Wait()

	v := c.View()
	assert.False(t, v.Loading)
	require.Len(t, v.Records, 1)
	assert.Equal(t, "fresh", v.Records[0].ID)
	assert.Equal(t, 3, v.Pagination.CurrentPage)
}

func TestController_LoadingClearedOnlyByLatest(t *testing.T) {
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})
	latestStarted := make(chan struct{})

	employees := &fakeEmployees{}
	employees.listFn = func(_ context.Context, params map[string]string) (client.EmployeePage, error) {
		switch params["page"] {
		case "2":
			close(started)
		case "3":
			close(latestStarted)
		}
		<-release
		return client.EmployeePage{Records: []client.Employee{{ID: params["page"]}}}, nil
	}
	c := listview.New(employees, nil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); c.SetPage(ctx, 2) }()
	<-started
	go func() { defer wg.Done(); c.SetPage(ctx, 3) }()
	<-latestStarted

	assert.True(t, c.View().Loading)
	close(release)
	wg.Wait()

	v := c.View()
	assert.False(t, v.Loading)
	assert.Equal(t, "3", v.Records[0].ID)
}

func TestController_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("declined sends nothing", func(t *testing.T) {
		employees := &fakeEmployees{}
		c := listview.New(employees, nil, listview.WithConfirmer(answer(false)))

		err := c.Delete(ctx, "e1")

		assert.ErrorIs(t, err, listview.ErrDeclined)
		assert.Empty(t, employees.deletes)
		assert.Empty(t, employees.calls)
	})

	t.Run("confirmed deletes and reloads", func(t *testing.T) {
		employees := &fakeEmployees{}
		notifier := &recordingNotifier{}
		c := listview.New(employees, nil, listview.WithConfirmer(answer(true)), listview.WithNotifier(notifier))

		require.NoError(t, c.Delete(ctx, "e1"))

		assert.Equal(t, []string{"e1"}, employees.deletes)
		assert.Len(t, employees.calls, 1)
		assert.Equal(t, []string{"Employee deleted"}, notifier.infos)
	})

	t.Run("failure is reported", func(t *testing.T) {
		employees := &fakeEmployees{failOn: &client.Error{Op: "delete employee", Status: 404, Message: "Employee not found"}}
		notifier := &recordingNotifier{}
		c := listview.New(employees, nil, listview.WithConfirmer(answer(true)), listview.WithNotifier(notifier))

		assert.Error(t, c.Delete(ctx, "e1"))
		assert.Equal(t, []string{"Employee not found"}, notifier.errs)
		assert.Empty(t, employees.calls)
	})
}

func TestController_ChangeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("sends only status", func(t *testing.T) {
		employees := &fakeEmployees{}
		notifier := &recordingNotifier{}
		c := listview.New(employees, nil, listview.WithConfirmer(answer(true)), listview.WithNotifier(notifier))

		require.NoError(t, c.ChangeStatus(ctx, "e1", "on_leave"))

		assert.Equal(t, map[string]any{"status": "ON_LEAVE"}, employees.updates["e1"])
		assert.Len(t, employees.calls, 1)
		assert.Equal(t, []string{"Employee updated"}, notifier.infos)
	})

	t.Run("declined", func(t *testing.T) {
		employees := &fakeEmployees{}
		c := listview.New(employees, nil, listview.WithConfirmer(answer(false)))

		assert.ErrorIs(t, c.ChangeStatus(ctx, "e1", "ACTIVE"), listview.ErrDeclined)
		assert.Empty(t, employees.updates)
	})

	t.Run("ALL is not a status", func(t *testing.T) {
		c := listview.New(&fakeEmployees{}, nil, listview.WithConfirmer(answer(true)))
		assert.ErrorIs(t, c.ChangeStatus(ctx, "e1", "ALL"), listview.ErrInvalidStatus)
	})
}

func TestController_EditAndDocuments(t *testing.T) {
	editor := &recordingEditor{}
	c := listview.New(&fakeEmployees{}, nil,
		listview.WithEditor(editor),
		listview.WithUploadBaseURL("https://files.example.com"),
	)

	c.Edit("e7")
	assert.Equal(t, []string{"e7"}, editor.ids)

	assert.Equal(t, "https://files.example.com/uploads/aadhaar-cards/a.pdf", c.DocumentURL("a.pdf", "aadhaar"))
	assert.Equal(t, "https://files.example.com/uploads/pan-cards/p.pdf", c.DocumentURL("/uploads/pan-cards/p.pdf", "pan"))
	assert.Equal(t, "", c.DocumentURL("", "pan"))
}

func TestController_InitialStateAndStatus(t *testing.T) {
	employees := &fakeEmployees{}
	state := query.New(1, 20).SetSearch("rao").SetPage(3)
	c := listview.New(employees, nil,
		listview.WithInitialState(state),
		listview.WithStatusFilter("on_leave"),
	)

	c.Start(context.Background())

	assert.Len(t, employees.calls, 1)
	assert.Equal(t, map[string]string{
		"page":   "3",
		"limit":  "20",
		"search": "rao",
		"status": "ON_LEAVE",
	}, employees.lastCall())

	ignored := listview.New(employees, nil, listview.WithStatusFilter("RETIRED"))
	assert.Equal(t, listview.StatusAll, ignored.View().Status)
}
