package session

import (
	"fmt"
	"net/http"

	"member-profile/models"

	"github.com/gorilla/sessions"
)

const (
	keyIID   = "iid"
	keyName  = "nm"
	keyBirth = "birth"
	keyBlood = "blood"
	keyPhone = "phone"
	keyEmail = "email"
	keyIDNo  = "idno"
	keyPwd   = "pwd"
)

// Binding is the typed view over one browser's session.
//
// A session is Anonymous until a display name is bound to it. Login binds
// iid and nm; an edit submission overwrites nm and, when mirroring is on,
// copies the remaining profile fields as well. Demote drops nm only, Clear
// drops everything.
type Binding struct {
	sess   *sessions.Session
	mirror bool
}

// Load fetches the session for r. An unreadable cookie (bad signature,
// missing session file) yields a fresh Anonymous session.
func Load(r *http.Request, store sessions.Store, mirror bool) (*Binding, error) {
	sess, err := store.Get(r, CookieName)
	if sess == nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &Binding{sess: sess, mirror: mirror}, nil
}

// Name returns the bound display name.
func (b *Binding) Name() (string, bool) {
	name, ok := b.sess.Values[keyName].(string)
	return name, ok
}

// IID returns the bound internal id.
func (b *Binding) IID() (int64, bool) {
	iid, ok := b.sess.Values[keyIID].(int64)
	return iid, ok
}

// Authenticated reports whether a display name is bound.
func (b *Binding) Authenticated() bool {
	_, ok := b.Name()
	return ok
}

// SetIdentity binds the session to a member.
func (b *Binding) SetIdentity(iid int64, name string) {
	b.sess.Values[keyIID] = iid
	b.sess.Values[keyName] = name
}

// MirrorProfile overwrites the session's copy of the submitted profile.
// With mirroring disabled only the display name is kept.
func (b *Binding) MirrorProfile(f models.MemberFields) {
	b.sess.Values[keyName] = f.Name
	if !b.mirror {
		return
	}
	b.sess.Values[keyBirth] = f.Birth
	b.sess.Values[keyBlood] = f.Blood
	b.sess.Values[keyPhone] = f.Phone
	b.sess.Values[keyEmail] = f.Email
	b.sess.Values[keyIDNo] = f.IDNo
	b.sess.Values[keyPwd] = f.Pwd
}

// Profile returns the mirrored profile, if one was stored.
func (b *Binding) Profile() (models.MemberFields, bool) {
	birth, ok := b.sess.Values[keyBirth].(string)
	if !ok {
		return models.MemberFields{}, false
	}
	name, _ := b.Name()
	str := func(key string) string {
		v, _ := b.sess.Values[key].(string)
		return v
	}
	return models.MemberFields{
		Name:  name,
		Birth: birth,
		Blood: str(keyBlood),
		Phone: str(keyPhone),
		Email: str(keyEmail),
		IDNo:  str(keyIDNo),
		Pwd:   str(keyPwd),
	}, true
}

// Demote removes the display name, returning the session to Anonymous.
func (b *Binding) Demote() {
	delete(b.sess.Values, keyName)
}

// Clear removes every key and expires the stored session.
func (b *Binding) Clear() {
	for k := range b.sess.Values {
		delete(b.sess.Values, k)
	}
	b.sess.Options.MaxAge = -1
}

// Save persists the session and writes its cookie.
func (b *Binding) Save(r *http.Request, w http.ResponseWriter) error {
	if err := b.sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Len is the number of stored keys.
func (b *Binding) Len() int {
	return len(b.sess.Values)
}
