package voter

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"
)

type memoryVoterRepo struct {
	mu       sync.Mutex
	profiles map[string]*Profile
	byMail   map[string]string
	byDNI    map[string]string
	nextID   int
}

func newMemoryVoterRepo() *memoryVoterRepo {
	return &memoryVoterRepo{
		profiles: make(map[string]*Profile),
		byMail:   make(map[string]string),
		byDNI:    make(map[string]string),
	}
}

func (r *memoryVoterRepo) Create(ctx context.Context, p *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = "u" + strconv.Itoa(r.nextID)
	p.CreatedAt = time.Now()
	copyProfile := *p
	r.profiles[p.ID] = &copyProfile
	r.byMail[p.Email] = p.ID
	return nil
}

func (r *memoryVoterRepo) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byMail[email]
	if !ok {
		return nil, ErrNotFound
	}
	copyProfile := *r.profiles[id]
	return &copyProfile, nil
}

func (r *memoryVoterRepo) GetByID(ctx context.Context, id string) (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	copyProfile := *p
	return &copyProfile, nil
}

func (r *memoryVoterRepo) List(ctx context.Context) ([]Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		res = append(res, *p)
	}
	return res, nil
}

func (r *memoryVoterRepo) UpdateRole(ctx context.Context, id, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return ErrNotFound
	}
	p.Role = role
	return nil
}

func (r *memoryVoterRepo) UpdateIdentity(ctx context.Context, id, nationalID, fullName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return ErrNotFound
	}
	if owner, taken := r.byDNI[nationalID]; taken && owner != id {
		return ErrNationalIDTaken
	}
	r.byDNI[nationalID] = id
	p.NationalID = &nationalID
	p.FullName = &fullName
	return nil
}

func newTestService() *Service {
	return NewService(newMemoryVoterRepo(), NewMemoryRegistry(map[string]string{
		"12345678": "Pedro Castillo",
		"87654321": "Keiko Fujimori",
	}))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p, err := svc.Register(ctx, " Ana@Example.com ", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Role != RoleVoter {
		t.Fatalf("expected role voter, got %s", p.Role)
	}
	if p.PasswordHash == "s3cret" || p.PasswordHash == "" {
		t.Fatalf("password should be hashed")
	}
	if p.Verified() {
		t.Fatalf("new voter must not be verified")
	}

	if _, err := svc.Login(ctx, "ana@example.com", "s3cret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := svc.Register(ctx, "ana@example.com", "another"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected email taken error, got %v", err)
	}
	if _, err := svc.Login(ctx, "ana@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials error")
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email")
	}
}

func TestRegisterRequiresCredentials(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "   ", "s3cret"); !errors.Is(err, ErrCredentialsMissing) {
		t.Fatalf("expected missing credentials error for blank email, got %v", err)
	}
	if _, err := svc.Register(ctx, "ana@example.com", ""); !errors.Is(err, ErrCredentialsMissing) {
		t.Fatalf("expected missing credentials error for empty password, got %v", err)
	}
}

func TestVerifyIdentity(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, _ := svc.Register(ctx, "first@example.com", "pw")
	second, _ := svc.Register(ctx, "second@example.com", "pw")

	for _, bad := range []string{"1234567", "123456789", "1234567a", ""} {
		if _, err := svc.Verify(ctx, first.ID, bad); !errors.Is(err, ErrInvalidNationalID) {
			t.Fatalf("expected invalid national id for %q, got %v", bad, err)
		}
	}
	if _, err := svc.Verify(ctx, first.ID, "99999999"); !errors.Is(err, ErrNotInRegistry) {
		t.Fatalf("expected registry miss, got %v", err)
	}

	p, err := svc.Verify(ctx, first.ID, "12345678")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if p.FullName == nil || *p.FullName != "Pedro Castillo" {
		t.Fatalf("expected resolved name, got %+v", p.FullName)
	}
	ok, err := svc.IsVerified(ctx, first.ID)
	if err != nil || !ok {
		t.Fatalf("expected verified voter, got %v (%v)", ok, err)
	}

	if _, err := svc.Verify(ctx, first.ID, "87654321"); !errors.Is(err, ErrAlreadyVerified) {
		t.Fatalf("expected already verified, got %v", err)
	}
	if _, err := svc.Verify(ctx, second.ID, "12345678"); !errors.Is(err, ErrNationalIDTaken) {
		t.Fatalf("expected national id taken, got %v", err)
	}
}

func TestUpdateRole(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	p, _ := svc.Register(ctx, "admin@example.com", "pw")

	if err := svc.UpdateRole(ctx, p.ID, "superuser"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected invalid role, got %v", err)
	}
	if err := svc.UpdateRole(ctx, p.ID, RoleAdmin); err != nil {
		t.Fatalf("update role: %v", err)
	}
	got, _ := svc.Get(ctx, p.ID)
	if got.Role != RoleAdmin {
		t.Fatalf("expected admin, got %s", got.Role)
	}
}
