package election

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"
)

type memoryElectionRepo struct {
	mu           sync.Mutex
	elections    map[string]*Election
	offices      map[string]*Office
	nextID       int
	statusWrites int
}

func newMemoryElectionRepo() *memoryElectionRepo {
	return &memoryElectionRepo{
		elections: make(map[string]*Election),
		offices:   make(map[string]*Office),
	}
}

func (r *memoryElectionRepo) id(prefix string) string {
	r.nextID++
	return prefix + "-" + strconv.Itoa(r.nextID)
}

func (r *memoryElectionRepo) Create(ctx context.Context, e *Election) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = r.id("e")
	e.CreatedAt = time.Now()
	copyElection := *e
	r.elections[e.ID] = &copyElection
	return nil
}

func (r *memoryElectionRepo) GetByID(ctx context.Context, id string) (*Election, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.elections[id]
	if !ok {
		return nil, ErrNotFound
	}
	copyElection := *e
	return &copyElection, nil
}

func (r *memoryElectionRepo) List(ctx context.Context, f ListFilter) ([]Election, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := []Election{}
	for _, e := range r.elections {
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, e.Status) {
			continue
		}
		res = append(res, *e)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].StartDate.Before(res[j].StartDate) })
	return res, nil
}

func (r *memoryElectionRepo) Update(ctx context.Context, id string, input UpdateInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.elections[id]
	if !ok {
		return ErrNotFound
	}
	if input.Title != nil {
		e.Title = *input.Title
	}
	if input.StartDate != nil {
		e.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		e.EndDate = *input.EndDate
	}
	if input.Status != nil {
		e.Status = *input.Status
	}
	return nil
}

func (r *memoryElectionRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.elections[id]
	if !ok {
		return ErrNotFound
	}
	r.statusWrites++
	e.Status = status
	return nil
}

func (r *memoryElectionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.elections[id]; !ok {
		return ErrNotFound
	}
	delete(r.elections, id)
	return nil
}

func (r *memoryElectionRepo) CreateOffice(ctx context.Context, o *Office) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = r.id("o")
	copyOffice := *o
	r.offices[o.ID] = &copyOffice
	return nil
}

func (r *memoryElectionRepo) GetOffice(ctx context.Context, id string) (*Office, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offices[id]
	if !ok {
		return nil, ErrOfficeNotFound
	}
	copyOffice := *o
	return &copyOffice, nil
}

func (r *memoryElectionRepo) ListOffices(ctx context.Context, electionID string) ([]Office, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := []Office{}
	for _, o := range r.offices {
		if o.ElectionID == electionID {
			res = append(res, *o)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Title < res[j].Title })
	return res, nil
}

func (r *memoryElectionRepo) UpdateOffice(ctx context.Context, id, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offices[id]
	if !ok {
		return ErrOfficeNotFound
	}
	o.Title = title
	return nil
}

func (r *memoryElectionRepo) DeleteOffice(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.offices[id]; !ok {
		return ErrOfficeNotFound
	}
	delete(r.offices, id)
	return nil
}

func containsStatus(list []Status, s Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestCreateValidation(t *testing.T) {
	repo := newMemoryElectionRepo()
	svc := NewService(repo, repo)
	ctx := context.Background()

	if err := svc.Create(ctx, &Election{Title: "  "}); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected title required, got %v", err)
	}
	if err := svc.Create(ctx, &Election{Title: "General", StartDate: at(10, 18), EndDate: at(10, 8)}); !errors.Is(err, ErrInvalidDates) {
		t.Fatalf("expected invalid dates, got %v", err)
	}
	if err := svc.Create(ctx, &Election{Title: "General", StartDate: at(10, 8), EndDate: at(10, 18), Status: "paused"}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}

	e := &Election{Title: "General", StartDate: at(10, 8), EndDate: at(10, 18)}
	if err := svc.Create(ctx, e); err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}
	if e.Status != StatusDraft {
		t.Fatalf("expected draft status, got %s", e.Status)
	}
}

func TestUpdateChecksMergedDates(t *testing.T) {
	repo := newMemoryElectionRepo()
	svc := NewService(repo, repo)
	ctx := context.Background()

	e := &Election{Title: "General", StartDate: at(10, 8), EndDate: at(10, 18)}
	if err := svc.Create(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}

	early := at(9, 0)
	if err := svc.Update(ctx, e.ID, UpdateInput{EndDate: &early}); !errors.Is(err, ErrInvalidDates) {
		t.Fatalf("expected invalid dates, got %v", err)
	}

	active := StatusActive
	later := at(11, 0)
	if err := svc.Update(ctx, e.ID, UpdateInput{EndDate: &later, Status: &active}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := svc.Get(ctx, e.ID)
	if got.Status != StatusActive || !got.EndDate.Equal(later) {
		t.Fatalf("unexpected election after update %+v", got)
	}

	missing := at(12, 0)
	if err := svc.Update(ctx, "nope", UpdateInput{StartDate: &missing}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	repo := newMemoryElectionRepo()
	svc := NewService(repo, repo)
	ctx := context.Background()

	e := &Election{Title: "General", StartDate: at(10, 8), EndDate: at(10, 18), Status: StatusActive}
	if err := svc.Create(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := svc.Close(ctx, e.ID); err != nil {
			t.Fatalf("close #%d: %v", i+1, err)
		}
		got, _ := svc.Get(ctx, e.ID)
		if got.Status != StatusClosed {
			t.Fatalf("expected closed after close #%d, got %s", i+1, got.Status)
		}
	}
	if repo.statusWrites != 2 {
		t.Fatalf("expected close to re-issue the write, got %d writes", repo.statusWrites)
	}

	if err := svc.Close(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListForVotersUsesInjectedClock(t *testing.T) {
	repo := newMemoryElectionRepo()
	svc := NewService(repo, repo).WithClock(func() time.Time { return at(10, 12) })
	ctx := context.Background()

	seed := []*Election{
		{Title: "Draft", StartDate: at(10, 8), EndDate: at(10, 18), Status: StatusDraft},
		{Title: "Open", StartDate: at(10, 8), EndDate: at(10, 18), Status: StatusActive},
		{Title: "Later", StartDate: at(20, 8), EndDate: at(20, 18), Status: StatusActive},
		{Title: "Expired", StartDate: at(1, 8), EndDate: at(1, 18), Status: StatusActive},
	}
	for _, e := range seed {
		if err := svc.Create(ctx, e); err != nil {
			t.Fatalf("create %s: %v", e.Title, err)
		}
	}

	c, err := svc.ListForVoters(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(c.Open) != 1 || c.Open[0].Title != "Open" {
		t.Fatalf("unexpected open list %+v", c.Open)
	}
	if len(c.Upcoming) != 1 || c.Upcoming[0].Title != "Later" {
		t.Fatalf("unexpected upcoming list %+v", c.Upcoming)
	}
	if len(c.Closed) != 1 || c.Closed[0].Title != "Expired" {
		t.Fatalf("unexpected closed list %+v", c.Closed)
	}
}

func TestOfficeLifecycle(t *testing.T) {
	repo := newMemoryElectionRepo()
	svc := NewService(repo, repo)
	ctx := context.Background()

	if _, err := svc.CreateOffice(ctx, "missing", "Presidente"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected election not found, got %v", err)
	}

	e := &Election{Title: "General", StartDate: at(10, 8), EndDate: at(10, 18)}
	if err := svc.Create(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateOffice(ctx, e.ID, ""); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected title required, got %v", err)
	}

	pres, err := svc.CreateOffice(ctx, e.ID, "Presidente")
	if err != nil {
		t.Fatalf("create office: %v", err)
	}
	if _, err := svc.CreateOffice(ctx, e.ID, "Congreso"); err != nil {
		t.Fatalf("create office: %v", err)
	}

	offices, err := svc.Offices(ctx, e.ID)
	if err != nil || len(offices) != 2 || offices[0].Title != "Congreso" {
		t.Fatalf("unexpected offices %+v (%v)", offices, err)
	}

	if err := svc.RenameOffice(ctx, pres.ID, "Presidencia"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if err := svc.DeleteOffice(ctx, pres.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteOffice(ctx, pres.ID); !errors.Is(err, ErrOfficeNotFound) {
		t.Fatalf("expected office not found, got %v", err)
	}
}
