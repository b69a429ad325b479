package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"storefront/internal/api"
	"storefront/internal/cart"
	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/logging"
	"storefront/internal/models"
	"storefront/internal/session"
	"storefront/internal/view"
)

// memStore satisfies cart.Persister and session.Store in memory.
type memStore struct {
	cartState *models.CartState
	user      *models.User
}

func (m *memStore) SaveCart(ctx context.Context, state models.CartState) error {
	m.cartState = &state
	return nil
}

func (m *memStore) SaveSession(ctx context.Context, user models.User, expiresAt time.Time) error {
	u := user
	m.user = &u
	return nil
}

func (m *memStore) LoadSession(ctx context.Context) (models.User, bool) {
	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

func (m *memStore) ClearSession(ctx context.Context) error {
	m.user = nil
	return nil
}

// fakeAPI implements the three endpoint interfaces with settable behavior.
type fakeAPI struct {
	loginFn       func(email, password string) (models.User, error)
	registerFn    func(name, email, password string) (models.User, error)
	products      map[string]models.Product
	createOrderFn func(draft api.OrderDraft) (models.Order, error)
	listMineFn    func() ([]models.Order, error)

	createdDrafts []api.OrderDraft
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (models.User, error) {
	return f.loginFn(email, password)
}

func (f *fakeAPI) Register(ctx context.Context, name, email, password string) (models.User, error) {
	return f.registerFn(name, email, password)
}

func (f *fakeAPI) Logout(ctx context.Context) error { return nil }

func (f *fakeAPI) GetProfile(ctx context.Context) (models.User, error) {
	return models.User{}, errors.New("not wired in this test")
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, name, email, password string) (models.User, error) {
	return models.User{}, errors.New("not wired in this test")
}

func (f *fakeAPI) ListProducts(ctx context.Context, keyword string, page int) (api.ProductPage, error) {
	var items []models.Product
	for _, p := range f.products {
		items = append(items, p)
	}
	return api.ProductPage{Items: items, Page: 1, Pages: 1}, nil
}

func (f *fakeAPI) GetProduct(ctx context.Context, id string) (models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return models.Product{}, api.ErrNotFound
	}
	return p, nil
}

func (f *fakeAPI) SubmitReview(ctx context.Context, productID string, rating int, comment string) error {
	return nil
}

func (f *fakeAPI) CreateOrder(ctx context.Context, draft api.OrderDraft) (models.Order, error) {
	f.createdDrafts = append(f.createdDrafts, draft)
	if f.createOrderFn != nil {
		return f.createOrderFn(draft)
	}
	return models.Order{ID: "order-1", TotalPrice: 49.99}, nil
}

func (f *fakeAPI) ListMine(ctx context.Context) ([]models.Order, error) {
	if f.listMineFn != nil {
		return f.listMineFn()
	}
	return nil, nil
}

func (f *fakeAPI) Get(ctx context.Context, id string) (models.Order, error) {
	return models.Order{ID: id}, nil
}

func newTestApp(t *testing.T) (*App, *fakeAPI, *memStore) {
	t.Helper()

	ms := &memStore{}
	log := logging.NewSlogLogger(slog.New(slog.DiscardHandler))

	sess := session.NewManager(ms, log)
	ledger := cart.NewLedger(models.EmptyCart(), ms, log)
	gate := checkout.NewGate(sess, ledger)

	f := &fakeAPI{
		loginFn: func(email, password string) (models.User, error) {
			return models.User{ID: "u1", Name: "Jane", Email: email, Token: "tok"}, nil
		},
		registerFn: func(name, email, password string) (models.User, error) {
			return models.User{ID: "u2", Name: name, Email: email, Token: "tok"}, nil
		},
		products: map[string]models.Product{
			"p1": {ID: "p1", Name: "Phone", Price: 20, CountInStock: 5},
			"p2": {ID: "p2", Name: "Case", Price: 10, CountInStock: 1},
		},
	}

	var cfg config.Config
	cfg.LoadDefaults()

	app := &App{
		config:  &cfg,
		log:     log,
		auth:    f,
		catalog: f,
		orders:  f,
		ledger:  ledger,
		session: sess,
		gate:    gate,
		view:    view.NewSelectors(ledger, sess, gate),
		reader:  bufio.NewReader(strings.NewReader("")),
	}
	return app, f, ms
}

// queuePrompts replaces the interactive input seams with a scripted queue.
func queuePrompts(t *testing.T, answers []string, password string) {
	t.Helper()
	origText, origPw := getSimpleText, getPassword
	t.Cleanup(func() { getSimpleText, getPassword = origText, origPw })

	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", errors.New("no scripted answer left")
		}
		a := answers[i]
		i++
		return a, nil
	}
	getPassword = func(_ io.Writer) (string, error) {
		return password, nil
	}
}

func TestShipping_BouncesToSignInWithoutAuth(t *testing.T) {
	lines := captureOutput(t)
	app, _, _ := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.Shipping(ctx))

	require.Contains(t, *lines, "Complete Sign In first ('login').")
	require.Nil(t, app.ledger.ShippingAddress())
}

func TestLogin_ConsumesRedirectTarget(t *testing.T) {
	lines := captureOutput(t)
	app, _, _ := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.Shipping(ctx)) // bounced, records redirect
	queuePrompts(t, []string{"jane@example.com"}, "secret")
	require.NoError(t, app.Login(ctx))

	require.Contains(t, *lines, "Welcome back, Jane!")
	require.Contains(t, *lines, "You can now continue with 'shipping'.")
	require.True(t, app.isLoggedIn())
}

func TestLogin_FailureLeavesSessionUntouched(t *testing.T) {
	_ = captureOutput(t)
	app, f, _ := newTestApp(t)
	ctx := context.Background()

	f.loginFn = func(email, password string) (models.User, error) {
		return models.User{}, api.ErrUnauthorized
	}
	queuePrompts(t, []string{"jane@example.com"}, "wrong")

	err := app.Login(ctx)
	require.ErrorIs(t, err, api.ErrUnauthorized)
	require.False(t, app.isLoggedIn())
}

func TestCheckoutFlow_EndToEnd(t *testing.T) {
	lines := captureOutput(t)
	app, f, _ := newTestApp(t)
	ctx := context.Background()

	// sign in
	queuePrompts(t, []string{"jane@example.com"}, "secret")
	require.NoError(t, app.Login(ctx))

	// fill the cart
	require.NoError(t, app.Add(ctx, []string{"p1", "2"}))
	require.NoError(t, app.Add(ctx, []string{"p2"}))
	require.Equal(t, 3, app.view.ItemCount())
	require.Equal(t, 50.0, app.view.Subtotal())

	// payment before address is bounced to shipping
	require.NoError(t, app.Payment(ctx))
	require.Contains(t, *lines, "Complete Shipping first ('shipping').")

	// shipping
	queuePrompts(t, []string{"1 Main St", "Riga", "LV-1001", "Latvia"}, "")
	require.NoError(t, app.Shipping(ctx))
	require.True(t, app.gate.IsStepUnlocked(checkout.StepPayment))

	// payment
	queuePrompts(t, []string{"PayPal"}, "")
	require.NoError(t, app.Payment(ctx))
	require.True(t, app.gate.IsStepUnlocked(checkout.StepPlaceOrder))

	// place order
	require.NoError(t, app.PlaceOrder(ctx))
	require.Contains(t, *lines, "Order order-1 placed. Total: $49.99")

	// terminal transition: cart cleared, gate back to initial shape
	require.Empty(t, app.ledger.Items())
	require.Nil(t, app.ledger.ShippingAddress())
	require.Empty(t, app.ledger.PaymentMethod())
	require.True(t, app.gate.IsStepUnlocked(checkout.StepShipping), "still authenticated")
	require.False(t, app.gate.IsStepUnlocked(checkout.StepPayment))

	// the draft carried an idempotency key and the full cart
	require.Len(t, f.createdDrafts, 1)
	require.NotEmpty(t, f.createdDrafts[0].IdempotencyKey)
	require.Len(t, f.createdDrafts[0].Items, 2)
}

func TestLogout_ClearsCartAndRelocksCheckout(t *testing.T) {
	_ = captureOutput(t)
	app, _, ms := newTestApp(t)
	ctx := context.Background()

	queuePrompts(t, []string{"jane@example.com"}, "secret")
	require.NoError(t, app.Login(ctx))
	require.NoError(t, app.Add(ctx, []string{"p1", "2"}))
	require.True(t, app.gate.IsStepUnlocked(checkout.StepShipping))

	require.NoError(t, app.Logout(ctx))

	require.Empty(t, app.ledger.Items(), "logging out discards checkout-in-progress data")
	require.False(t, app.gate.IsStepUnlocked(checkout.StepShipping))
	require.Nil(t, ms.user, "persisted session removed")
	require.Empty(t, ms.cartState.Items, "persisted cart emptied")
}

func TestPlaceOrder_StaleResponseIsDiscarded(t *testing.T) {
	lines := captureOutput(t)
	app, f, _ := newTestApp(t)
	ctx := context.Background()

	queuePrompts(t, []string{"jane@example.com"}, "secret")
	require.NoError(t, app.Login(ctx))
	require.NoError(t, app.Add(ctx, []string{"p1", "1"}))
	require.NoError(t, app.ledger.SetShippingAddress(ctx, models.Address{
		Street: "1 Main St", City: "Riga", PostalCode: "LV-1001", Country: "Latvia",
	}))
	require.NoError(t, app.ledger.SetPaymentMethod(ctx, "PayPal"))

	// the session changes while the request is in flight
	f.createOrderFn = func(draft api.OrderDraft) (models.Order, error) {
		require.NoError(t, app.session.Logout(ctx))
		return models.Order{ID: "order-ghost", TotalPrice: 20}, nil
	}

	require.NoError(t, app.PlaceOrder(ctx))

	require.NotContains(t, *lines, "Order order-ghost placed. Total: $20.00")
}

func TestOrders_ExpiredTokenTakesLogoutPath(t *testing.T) {
	lines := captureOutput(t)
	app, f, ms := newTestApp(t)
	ctx := context.Background()

	queuePrompts(t, []string{"jane@example.com"}, "secret")
	require.NoError(t, app.Login(ctx))
	require.NoError(t, app.Add(ctx, []string{"p1", "2"}))

	f.listMineFn = func() ([]models.Order, error) {
		return nil, api.ErrTokenExpired
	}

	require.NoError(t, app.Orders(ctx))

	require.Contains(t, *lines, "Your session has expired. Please sign in again.")
	require.False(t, app.isLoggedIn())
	require.Empty(t, app.ledger.Items(), "expired token clears state like a logout")
	require.Nil(t, ms.user)
}

func TestAdd_ClampsToFreshStockSnapshot(t *testing.T) {
	_ = captureOutput(t)
	app, _, _ := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.Add(ctx, []string{"p1", "50"}))

	items := app.ledger.Items()
	require.Len(t, items, 1)
	require.Equal(t, 5, items[0].Quantity, "clamped to stock")
}

func TestAdd_UnknownProduct(t *testing.T) {
	_ = captureOutput(t)
	app, _, _ := newTestApp(t)

	err := app.Add(context.Background(), []string{"nope"})
	require.ErrorIs(t, err, api.ErrNotFound)
	require.Empty(t, app.ledger.Items())
}
