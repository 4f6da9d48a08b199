// File: internal/session/manager.go
package session

import (
	"context"
	"errors"
	"sync"

	"seva_backend/internal/common"
	"seva_backend/internal/profile"
	"seva_backend/internal/reminder"
	"seva_backend/internal/shared"
	"seva_backend/internal/vendor"

	"go.uber.org/zap"
)

// Subscriber receives a snapshot after every state transition of any session.
type Subscriber func(userID string, snap Snapshot)

// Manager owns all session state. It is the explicit replacement for the
// ambient globals of the original design: created once at startup, injected
// into the view layer, and each user's session is replaced wholesale on
// sign-in and sign-out.
//
// Every sign-in assigns the session a fresh epoch. Data loads capture the
// epoch before touching the store and their results are applied only while
// the session still holds that epoch, so a response arriving after sign-out
// can never repopulate state for a departed user.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
	epochs   uint64

	profiles  shared.ProfileService
	vendors   vendor.Service
	reminders reminder.Service
	logger    *zap.Logger

	subs    map[int]Subscriber
	nextSub int
}

// The manager is the single implementation behind every module's handler.
var (
	_ profile.SessionOps  = (*Manager)(nil)
	_ vendor.SessionOps   = (*Manager)(nil)
	_ reminder.SessionOps = (*Manager)(nil)
)

// NewManager creates a new session manager.
func NewManager(
	profiles shared.ProfileService,
	vendors vendor.Service,
	reminders reminder.Service,
	logger *zap.Logger,
) *Manager {
	return &Manager{
		sessions:  make(map[string]*session),
		profiles:  profiles,
		vendors:   vendors,
		reminders: reminders,
		logger:    logger,
		subs:      make(map[int]Subscriber),
	}
}

// Subscribe registers an observer of session transitions and returns its
// teardown. After the returned cancel runs, the observer never fires again.
func (m *Manager) Subscribe(fn Subscriber) (cancel func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// notify assumes the lock is NOT held.
func (m *Manager) notify(userID string, snap Snapshot) {
	m.mu.Lock()
	subs := make([]Subscriber, 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()
	for _, fn := range subs {
		fn(userID, snap)
	}
}

// Begin runs the sign-in transition for the given identity: the session
// enters loading, the profile is resolved, and the state settles on
// needs-role, client-ready or provider-ready. Entering client-ready loads
// the vendor and reminder collections, in that order, after the profile.
func (m *Manager) Begin(ctx context.Context, identity *shared.Identity) (Snapshot, error) {
	if identity == nil || identity.UID == "" {
		return unauthenticatedSnapshot(), common.ErrUnauthorized.WithDetails("An identity is required to begin a session.")
	}

	m.mu.Lock()
	m.epochs++
	sess := &session{
		state:    StateLoading,
		epoch:    m.epochs,
		identity: identity,
	}
	m.sessions[identity.UID] = sess
	epoch := sess.epoch
	loading := sess.snapshot()
	m.mu.Unlock()
	m.notify(identity.UID, loading)

	p, err := m.profiles.GetByUserID(ctx, identity.UID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Absence of a profile is the sole signal for role selection.
			return m.transition(identity.UID, epoch, func(s *session) {
				s.state = StateNeedsRole
			})
		}
		m.logger.Error("Profile resolution failed during sign-in", zap.Error(err), zap.String("userID", identity.UID))
		return m.Current(identity.UID), err
	}

	switch p.Role {
	case common.RoleProvider:
		return m.transition(identity.UID, epoch, func(s *session) {
			s.profile = p
			s.state = StateProviderReady
		})
	case common.RoleClient:
		if _, err := m.transition(identity.UID, epoch, func(s *session) {
			s.profile = p
		}); err != nil {
			return m.Current(identity.UID), err
		}
		return m.loadClientData(ctx, identity.UID, epoch)
	default:
		m.logger.Error("Profile carries an unknown role", zap.String("userID", identity.UID), zap.String("role", p.Role))
		return m.Current(identity.UID), common.ErrInternalServer.WithDetails("Profile carries an unknown role.")
	}
}

// SelectRole is valid only from needs-role. It creates the profile with
// default settings and settles the session on the role's ready state.
func (m *Manager) SelectRole(ctx context.Context, userID, role string) (Snapshot, error) {
	if !common.IsValidRole(role) {
		return m.Current(userID), common.ErrBadRequest.WithDetails("Role must be client or provider.")
	}

	m.mu.Lock()
	sess, ok := m.sessions[userID]
	if !ok || sess.state != StateNeedsRole {
		m.mu.Unlock()
		return m.Current(userID), common.ErrConflict.WithDetails("Role selection is only valid while the session awaits a role.")
	}
	identity := sess.identity
	epoch := sess.epoch
	m.mu.Unlock()

	p, err := m.profiles.CreateWithRole(ctx, identity, role)
	if err != nil {
		return m.Current(userID), err
	}

	if role == common.RoleProvider {
		return m.transition(userID, epoch, func(s *session) {
			s.profile = p
			s.state = StateProviderReady
		})
	}

	if _, err := m.transition(userID, epoch, func(s *session) {
		s.profile = p
	}); err != nil {
		return m.Current(userID), err
	}
	return m.loadClientData(ctx, userID, epoch)
}

// SignOut clears the session from any authenticated state. It is idempotent:
// signing out without a session is not an error.
func (m *Manager) SignOut(userID string) Snapshot {
	m.mu.Lock()
	_, existed := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()

	snap := unauthenticatedSnapshot()
	if existed {
		m.logger.Info("Session ended", zap.String("userID", userID))
		m.notify(userID, snap)
	}
	return snap
}

// Current returns the user's session snapshot, or an unauthenticated
// snapshot when none exists.
func (m *Manager) Current(userID string) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	if !ok {
		return unauthenticatedSnapshot()
	}
	return sess.snapshot()
}

// loadClientData loads vendors then reminders (seeding on first load) and
// applies the result only if the session still holds the capturing epoch.
func (m *Manager) loadClientData(ctx context.Context, userID string, epoch uint64) (Snapshot, error) {
	vendors, err := m.vendors.List(ctx, userID)
	if err != nil {
		return m.Current(userID), err
	}
	reminders, err := m.reminders.LoadForUser(ctx, userID)
	if err != nil {
		return m.Current(userID), err
	}
	return m.transition(userID, epoch, func(s *session) {
		s.vendors = vendors
		s.reminders = reminders
		s.state = StateClientReady
	})
}

// transition mutates the session under the lock if it still holds the given
// epoch, then notifies subscribers. A stale epoch means the session was
// replaced or torn down mid-flight; the mutation is discarded.
func (m *Manager) transition(userID string, epoch uint64, mutate func(*session)) (Snapshot, error) {
	m.mu.Lock()
	sess, ok := m.sessions[userID]
	if !ok || sess.epoch != epoch {
		m.mu.Unlock()
		m.logger.Debug("Discarding stale session transition",
			zap.String("userID", userID), zap.Uint64("epoch", epoch))
		return m.Current(userID), common.ErrConflict.WithDetails("The session changed while the operation was in flight.")
	}
	mutate(sess)
	snap := sess.snapshot()
	m.mu.Unlock()

	m.notify(userID, snap)
	return snap, nil
}

// clientSession returns the session if it is in client-ready state.
func (m *Manager) clientSession(userID string) (*session, error) {
	sess, ok := m.sessions[userID]
	if !ok {
		return nil, common.ErrUnauthorized.WithDetails("No active session; begin a session first.")
	}
	if sess.state != StateClientReady {
		return nil, common.ErrForbidden.WithDetails("This operation requires a client session.")
	}
	return sess, nil
}

// --- Profile operations (profile.SessionOps) ---

// GetProfile serves the cached profile when a session holds one and falls
// back to the profile service otherwise.
func (m *Manager) GetProfile(ctx context.Context, userID string) (*shared.Profile, error) {
	m.mu.Lock()
	if sess, ok := m.sessions[userID]; ok && sess.profile != nil {
		p := *sess.profile
		m.mu.Unlock()
		return &p, nil
	}
	m.mu.Unlock()
	return m.profiles.GetByUserID(ctx, userID)
}

// UpdateSettings merges the patch and persists the full profile document.
// The session's cached copy is refreshed only after the write succeeds.
func (m *Manager) UpdateSettings(ctx context.Context, userID string, patch shared.SettingsPatch) (*shared.Profile, error) {
	m.mu.Lock()
	var epoch uint64
	if sess, ok := m.sessions[userID]; ok {
		epoch = sess.epoch
	}
	m.mu.Unlock()

	p, err := m.profiles.UpdateSettings(ctx, userID, patch)
	if err != nil {
		return nil, err
	}

	if epoch != 0 {
		m.mu.Lock()
		if sess, ok := m.sessions[userID]; ok && sess.epoch == epoch {
			sess.profile = p
		}
		m.mu.Unlock()
	}
	return p, nil
}

// --- Vendor operations (vendor.SessionOps) ---

func (m *Manager) ListVendors(ctx context.Context, userID, search string) ([]vendor.Vendor, error) {
	m.mu.Lock()
	sess, err := m.clientSession(userID)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	cached := append([]vendor.Vendor(nil), sess.vendors...)
	m.mu.Unlock()

	if search == "" {
		return cached, nil
	}
	return m.vendors.Search(ctx, userID, search)
}

func (m *Manager) CreateVendor(ctx context.Context, userID string, req vendor.CreateVendorRequest) (*vendor.Vendor, error) {
	m.mu.Lock()
	sess, err := m.clientSession(userID)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	epoch := sess.epoch
	m.mu.Unlock()

	v, err := m.vendors.Create(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if sess, ok := m.sessions[userID]; ok && sess.epoch == epoch {
		sess.vendors = append(sess.vendors, *v)
	}
	m.mu.Unlock()
	return v, nil
}

func (m *Manager) DeleteVendor(ctx context.Context, userID, vendorID string) error {
	m.mu.Lock()
	sess, err := m.clientSession(userID)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	epoch := sess.epoch
	m.mu.Unlock()

	// On remote failure local state is left unchanged; the item stays
	// visible and the error surfaces to the caller.
	if err := m.vendors.Delete(ctx, userID, vendorID); err != nil {
		return err
	}

	m.mu.Lock()
	if sess, ok := m.sessions[userID]; ok && sess.epoch == epoch {
		sess.vendors = removeVendor(sess.vendors, vendorID)
	}
	m.mu.Unlock()
	return nil
}

// --- Reminder operations (reminder.SessionOps) ---

func (m *Manager) ListReminders(ctx context.Context, userID string) ([]reminder.Reminder, error) {
	m.mu.Lock()
	sess, err := m.clientSession(userID)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	cached := append([]reminder.Reminder(nil), sess.reminders...)
	m.mu.Unlock()
	return cached, nil
}

func (m *Manager) DeleteReminder(ctx context.Context, userID, reminderID string) error {
	m.mu.Lock()
	sess, err := m.clientSession(userID)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	epoch := sess.epoch
	m.mu.Unlock()

	if err := m.reminders.Delete(ctx, userID, reminderID); err != nil {
		return err
	}

	m.mu.Lock()
	if sess, ok := m.sessions[userID]; ok && sess.epoch == epoch {
		sess.reminders = removeReminder(sess.reminders, reminderID)
	}
	m.mu.Unlock()
	return nil
}

// removeVendor filters by id; filtering an absent id is a no-op.
func removeVendor(vendors []vendor.Vendor, id string) []vendor.Vendor {
	out := vendors[:0:0]
	for _, v := range vendors {
		if v.ID != id {
			out = append(out, v)
		}
	}
	return out
}

func removeReminder(reminders []reminder.Reminder, id string) []reminder.Reminder {
	out := reminders[:0:0]
	for _, r := range reminders {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

// ClientSessionInfo describes an active client session for background jobs.
type ClientSessionInfo struct {
	UserID    string
	Settings  shared.Settings
	Reminders []reminder.Reminder
}

// ActiveClientSessions returns a copy of every client-ready session.
func (m *Manager) ActiveClientSessions() []ClientSessionInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ClientSessionInfo
	for userID, sess := range m.sessions {
		if sess.state != StateClientReady || sess.profile == nil {
			continue
		}
		out = append(out, ClientSessionInfo{
			UserID:    userID,
			Settings:  sess.profile.Settings,
			Reminders: append([]reminder.Reminder(nil), sess.reminders...),
		})
	}
	return out
}
