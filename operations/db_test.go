package operations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thebestschool/school_site/forms"
	"github.com/thebestschool/school_site/inits"
)

type okSubmitter struct{}

func (okSubmitter) Post(context.Context, string, map[string]string) error { return nil }

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *time.Time) {
	t.Helper()
	db, err := inits.DBInit()
	require.NoError(t, err)
	store := NewStore(db, okSubmitter{}, ttl, nil)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	return store, &now
}

func TestOpenReturnsSameSessionPerBrowserAndForm(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	a, err := store.Open("sid-1", forms.Contact(""))
	require.NoError(t, err)
	require.NoError(t, a.SetField("name", "Jane"))

	again, err := store.Open("sid-1", forms.Contact(""))
	require.NoError(t, err)
	assert.Same(t, a, again)

	other, err := store.Open("sid-2", forms.Contact(""))
	require.NoError(t, err)
	assert.NotSame(t, a, other)
	assert.Equal(t, "", other.Snapshot().Data["name"])

	enrollment, err := store.Open("sid-1", forms.Enrollment(""))
	require.NoError(t, err)
	assert.NotSame(t, a, enrollment)

	assert.Equal(t, 3, store.Count())
	assert.Len(t, store.List("sid-1"), 2)
}

func TestGetDoesNotCreate(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	_, ok := store.Get("sid-1", forms.ContactForm)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Count())
}

func TestOpenExtendsExpiry(t *testing.T) {
	store, now := newTestStore(t, time.Hour)

	s, err := store.Open("sid-1", forms.Contact(""))
	require.NoError(t, err)

	*now = now.Add(50 * time.Minute)
	_, err = store.Open("sid-1", forms.Contact(""))
	require.NoError(t, err)

	*now = now.Add(50 * time.Minute)
	got, ok := store.Get("sid-1", forms.ContactForm)
	require.True(t, ok)
	assert.Same(t, s, got)
}

func TestExpiredSessionIsReplaced(t *testing.T) {
	store, now := newTestStore(t, time.Hour)

	s, err := store.Open("sid-1", forms.Contact(""))
	require.NoError(t, err)

	*now = now.Add(2 * time.Hour)
	_, ok := store.Get("sid-1", forms.ContactForm)
	assert.False(t, ok)

	fresh, err := store.Open("sid-1", forms.Contact(""))
	require.NoError(t, err)
	assert.NotSame(t, s, fresh)
}

func TestExpireBefore(t *testing.T) {
	store, now := newTestStore(t, time.Hour)

	old, err := store.Open("old", forms.Contact(""))
	require.NoError(t, err)

	*now = now.Add(30 * time.Minute)
	_, err = store.Open("new", forms.Contact(""))
	require.NoError(t, err)

	n, err := store.ExpireBefore(now.Add(45 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, old.Closed())
	assert.Equal(t, 1, store.Count())

	_, ok := store.Get("new", forms.ContactForm)
	assert.True(t, ok)
}

func TestClose(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	s, err := store.Open("sid-1", forms.Contact(""))
	require.NoError(t, err)

	require.NoError(t, store.Close("sid-1", forms.ContactForm))
	assert.True(t, s.Closed())
	assert.Equal(t, 0, store.Count())

	// closing twice is fine
	assert.NoError(t, store.Close("sid-1", forms.ContactForm))
}
