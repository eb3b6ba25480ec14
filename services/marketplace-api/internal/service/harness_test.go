package service_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/you/agrigo/pkg/auth"
	"github.com/you/agrigo/services/marketplace-api/internal/chatstore"
	"github.com/you/agrigo/services/marketplace-api/internal/domain"
	"github.com/you/agrigo/services/marketplace-api/internal/policy"
	"github.com/you/agrigo/services/marketplace-api/internal/repository"
	"github.com/you/agrigo/services/marketplace-api/internal/repository/repotest"
	"github.com/you/agrigo/services/marketplace-api/internal/service"
)

type published struct {
	key string
	v   any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{key, v})
	return p.err
}

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.key)
	}
	return out
}

type harness struct {
	users     *repository.UserRepo
	resources *repository.ResourceRepo
	bookings  *repository.BookingRepo
	chats     *chatstore.BoltStore
	pub       *recordingPublisher

	auth      *service.AuthSvc
	resSvc    *service.ResourceSvc
	bookSvc   *service.BookingSvc
	chatSvc   *service.ChatSvc
	recommend *service.RecommendSvc
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gdb := repotest.Open(t)
	chats, err := chatstore.Open(filepath.Join(t.TempDir(), "chats.db"))
	require.NoError(t, err)
	t.Cleanup(func() { chats.Close() })

	h := &harness{
		users:     repository.NewUserRepo(gdb),
		resources: repository.NewResourceRepo(gdb),
		bookings:  repository.NewBookingRepo(gdb),
		chats:     chats,
		pub:       &recordingPublisher{},
	}
	h.auth = service.NewAuthSvc(h.users, auth.NewIssuer("test-secret", time.Hour, 24*time.Hour))
	h.resSvc = service.NewResourceSvc(h.resources, h.bookings)
	h.bookSvc = service.NewBookingSvc(h.bookings, h.resources, chats, h.pub)
	h.chatSvc = service.NewChatSvc(chats, h.bookings)
	h.recommend = service.NewRecommendSvc(h.users, h.resources)
	return h
}

func actor(id string, role domain.Role) policy.Actor {
	return policy.Actor{ID: id, Email: id + "@example.com", Name: "User " + id, Role: role}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func (h *harness) listing(t *testing.T, provider policy.Actor, price string) *domain.Resource {
	t.Helper()
	r, err := h.resSvc.Create(context.Background(), provider, service.CreateResourceInput{
		Name: "Tractor", Type: "machinery", Location: "Nakuru", Price: dec(price),
	})
	require.NoError(t, err)
	return r
}

func (h *harness) book(t *testing.T, farmer policy.Actor, resourceID, start, end, qty string) *domain.Booking {
	t.Helper()
	b, err := h.bookSvc.Create(context.Background(), farmer, service.CreateBookingInput{
		ResourceID: resourceID, StartDate: start, EndDate: end, Quantity: dec(qty),
	})
	require.NoError(t, err)
	return b
}
