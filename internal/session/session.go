package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const cookieName = "session_id"

// Snapshot is the denormalized copy of the user's public fields taken at
// login or signup time. It is not a live reference: an admin edit to the
// underlying record does not refresh it until the next login.
type Snapshot struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Manager wraps fiber's session store with the snapshot contract.
type Manager struct {
	store *session.Store
}

// NewManager builds a Manager. A nil storage falls back to fiber's in-memory
// store; any fiber.Storage implementation may be plugged in for deployments
// that share sessions across instances. A zero ttl disables expiry.
func NewManager(ttl time.Duration, cookieSecure bool, storage fiber.Storage) *Manager {
	return &Manager{
		store: session.New(session.Config{
			Expiration:     ttl,
			KeyLookup:      "cookie:" + cookieName,
			CookieHTTPOnly: true,
			CookieSecure:   cookieSecure,
			Storage:        storage,
		}),
	}
}

// Create stores the snapshot under a fresh session identifier and sets the
// cookie on the response.
func (m *Manager) Create(c *fiber.Ctx, snap Snapshot) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}

	if err := sess.Regenerate(); err != nil {
		return err
	}

	sess.Set("name", snap.Name)
	sess.Set("email", snap.Email)
	sess.Set("phone", snap.Phone)
	sess.Set("address", snap.Address)

	return sess.Save()
}

// Get returns the snapshot for the request's session cookie, if any.
func (m *Manager) Get(c *fiber.Ctx) (Snapshot, bool) {
	sess, err := m.store.Get(c)
	if err != nil {
		return Snapshot{}, false
	}

	name, _ := sess.Get("name").(string)
	if name == "" {
		return Snapshot{}, false
	}

	email, _ := sess.Get("email").(string)
	phone, _ := sess.Get("phone").(string)
	address, _ := sess.Get("address").(string)

	return Snapshot{Name: name, Email: email, Phone: phone, Address: address}, true
}

// Destroy removes the session and expires the cookie. Destroying a session
// that does not exist is a no-op success.
func (m *Manager) Destroy(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}
