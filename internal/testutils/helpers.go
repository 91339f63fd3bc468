package testutils

import (
	"io"
	"log/slog"
	"sync"

	"github.com/ecofinds/marketplace-client/internal/models"
	"github.com/ecofinds/marketplace-client/internal/notify"
)

// DiscardLogger returns a logger for tests that should stay quiet.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FakeIdentity is an in-memory Identity for store tests. Setting the user
// fires the registered listeners just like the real session does.
type FakeIdentity struct {
	mu        sync.Mutex
	user      *models.User
	listeners []func(*models.User)
}

func NewFakeIdentity(user *models.User) *FakeIdentity {
	return &FakeIdentity{user: user}
}

func (f *FakeIdentity) CurrentUser() *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.user
}

func (f *FakeIdentity) OnChange(fn func(*models.User)) {
	f.mu.Lock()
	f.listeners = append(f.listeners, fn)
	f.mu.Unlock()
}

func (f *FakeIdentity) SetUser(user *models.User) {
	f.mu.Lock()
	f.user = user
	listeners := make([]func(*models.User), len(f.listeners))
	copy(listeners, f.listeners)
	f.mu.Unlock()

	for _, fn := range listeners {
		fn(user)
	}
}

// NotifierSpy records every notification for assertions.
type NotifierSpy struct {
	mu            sync.Mutex
	Notifications []notify.Notification
}

func (n *NotifierSpy) Notify(notification notify.Notification) {
	n.mu.Lock()
	n.Notifications = append(n.Notifications, notification)
	n.mu.Unlock()
}

func (n *NotifierSpy) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.Notifications)
}

func (n *NotifierSpy) Last() (notify.Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.Notifications) == 0 {
		return notify.Notification{}, false
	}

	return n.Notifications[len(n.Notifications)-1], true
}
