package session

import (
	"net/http"
	"sync"

	"github.com/gorilla/sessions"
)

// CookieOptions describes the browser cookie that carries the session.
type CookieOptions struct {
	Name   string
	Path   string
	Domain string
	MaxAge int
	Secure bool
}

// CookieStore keeps the credential and user record in a signed (and
// optionally encrypted) browser cookie. Nothing is held server-side.
type CookieStore struct {
	codec   *sessions.CookieStore
	name    string
	options sessions.Options
}

func NewCookieStore(authKey []byte, encryptKey []byte, opts CookieOptions) *CookieStore {
	keyPairs := [][]byte{authKey}
	if len(encryptKey) > 0 {
		keyPairs = append(keyPairs, encryptKey)
	}

	if opts.Name == "" {
		opts.Name = "logigraph_session"
	}
	if opts.Path == "" {
		opts.Path = "/"
	}

	options := sessions.Options{
		Path:     opts.Path,
		Domain:   opts.Domain,
		MaxAge:   opts.MaxAge,
		Secure:   opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	codec := sessions.NewCookieStore(keyPairs...)
	codec.Options = &sessions.Options{}
	*codec.Options = options
	codec.MaxAge(opts.MaxAge)

	return &CookieStore{codec: codec, name: opts.Name, options: options}
}

// Name is the cookie name.
func (c *CookieStore) Name() string {
	return c.name
}

// Bind returns a Store scoped to one request/response pair. Reads see the
// request cookie (and any write made earlier in the same request); writes
// emit Set-Cookie on w.
func (c *CookieStore) Bind(w http.ResponseWriter, r *http.Request) *RequestStore {
	return &RequestStore{parent: c, w: w, r: r}
}

// RequestStore is safe for concurrent use by the goroutines serving one request.
type RequestStore struct {
	mu     sync.Mutex
	parent *CookieStore
	w      http.ResponseWriter
	r      *http.Request
}

// current returns the request's session. A cookie that fails to decode
// yields an empty session.
func (s *RequestStore) current() *sessions.Session {
	sess, _ := s.parent.codec.Get(s.r, s.parent.name)
	if sess.Values == nil {
		sess.Values = map[interface{}]interface{}{}
	}
	return sess
}

func (s *RequestStore) Save(credential string, user UserRecord) error {
	encoded, err := encodeUser(user)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.current()
	opts := s.parent.options
	sess.Options = &opts
	sess.Values[credentialKey] = credential
	sess.Values[userKey] = encoded
	return sess.Save(s.r, s.w)
}

func (s *RequestStore) Load() (string, UserRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.current()
	if sess.Options != nil && sess.Options.MaxAge < 0 {
		return "", UserRecord{}, false
	}

	credential, _ := sess.Values[credentialKey].(string)
	if credential == "" {
		return "", UserRecord{}, false
	}
	raw, _ := sess.Values[userKey].(string)
	user, ok := decodeUser(raw)
	if !ok {
		return "", UserRecord{}, false
	}
	return credential, user, true
}

func (s *RequestStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.current()
	delete(sess.Values, credentialKey)
	delete(sess.Values, userKey)
	opts := s.parent.options
	opts.MaxAge = -1
	sess.Options = &opts
	return sess.Save(s.r, s.w)
}
