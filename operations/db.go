package operations

import (
	"time"

	"github.com/hashicorp/go-memdb"
	"go.uber.org/zap"

	"github.com/thebestschool/school_site/forms"
	"github.com/thebestschool/school_site/inits"
)

// Record is one row of the form session table. Rows are never mutated in
// place; touching a session inserts a fresh copy under the same ID.
type Record struct {
	ID        string
	SID       string
	Form      string
	ExpiresAt uint64
	Session   *forms.Session
}

func RecordID(sid, form string) string {
	return sid + ":" + form
}

// Store keeps the live form sessions of every browser in go-memdb.
type Store struct {
	db        *memdb.MemDB
	ttl       time.Duration
	submitter forms.Submitter
	logger    *zap.Logger
	now       func() time.Time
}

func NewStore(db *memdb.MemDB, submitter forms.Submitter, ttl time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		db:        db,
		ttl:       ttl,
		submitter: submitter,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Store) expiry() uint64 {
	return uint64(s.now().Add(s.ttl).Unix())
}

// Open returns the browser's live session for schema, opening one when
// there is none, and pushes its expiry forward.
func (s *Store) Open(sid string, schema forms.Schema) (*forms.Session, error) {
	id := RecordID(sid, schema.Name)

	txn := s.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(inits.SessionTable, "id", id)
	if err != nil {
		return nil, err
	}

	var session *forms.Session
	if raw != nil {
		rec := raw.(*Record)
		if !rec.Session.Closed() && rec.ExpiresAt > uint64(s.now().Unix()) {
			session = rec.Session
		}
	}
	created := session == nil
	if created {
		session = forms.Open(schema, s.submitter, s.logger)
	}

	rec := &Record{
		ID:        id,
		SID:       sid,
		Form:      schema.Name,
		ExpiresAt: s.expiry(),
		Session:   session,
	}
	if err := txn.Insert(inits.SessionTable, rec); err != nil {
		return nil, err
	}
	txn.Commit()

	if created {
		s.logger.Debug("opened form session", zap.String("form", schema.Name))
	}
	return session, nil
}

// Get looks up a live session without extending it.
func (s *Store) Get(sid, form string) (*forms.Session, bool) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(inits.SessionTable, "id", RecordID(sid, form))
	if err != nil || raw == nil {
		return nil, false
	}
	rec := raw.(*Record)
	if rec.Session.Closed() || rec.ExpiresAt <= uint64(s.now().Unix()) {
		return nil, false
	}
	return rec.Session, true
}

// List returns the live sessions of one browser.
func (s *Store) List(sid string) []*Record {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(inits.SessionTable, "sid", sid)
	if err != nil {
		return nil
	}
	now := uint64(s.now().Unix())
	var out []*Record
	for obj := it.Next(); obj != nil; obj = it.Next() {
		rec := obj.(*Record)
		if rec.ExpiresAt > now && !rec.Session.Closed() {
			out = append(out, rec)
		}
	}
	return out
}

// Close ends a session and drops its row. Closing a missing session is a
// no-op.
func (s *Store) Close(sid, form string) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(inits.SessionTable, "id", RecordID(sid, form))
	if err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	if err := txn.Delete(inits.SessionTable, raw); err != nil {
		return err
	}
	txn.Commit()

	raw.(*Record).Session.Close()
	s.logger.Debug("closed form session", zap.String("form", form))
	return nil
}

// ExpireBefore closes and removes every session whose expiry is not after t.
func (s *Store) ExpireBefore(t time.Time) (int, error) {
	cutoff := uint64(t.Unix())

	txn := s.db.Txn(true)
	defer txn.Abort()

	it, err := txn.Get(inits.SessionTable, "expiry")
	if err != nil {
		return 0, err
	}
	var expired []*Record
	for obj := it.Next(); obj != nil; obj = it.Next() {
		rec := obj.(*Record)
		if rec.ExpiresAt > cutoff {
			break
		}
		expired = append(expired, rec)
	}
	for _, rec := range expired {
		if err := txn.Delete(inits.SessionTable, rec); err != nil {
			return 0, err
		}
	}
	txn.Commit()

	for _, rec := range expired {
		rec.Session.Close()
		s.logger.Debug("expired form session", zap.String("form", rec.Form))
	}
	return len(expired), nil
}

func (s *Store) Count() int {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(inits.SessionTable, "id")
	if err != nil {
		return 0
	}
	n := 0
	for obj := it.Next(); obj != nil; obj = it.Next() {
		n++
	}
	return n
}
