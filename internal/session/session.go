// Package session хранит учётные данные пользователя между запросами
// в подписанном cookie браузера.
package session

import (
	"encoding/gob"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"github.com/Miyuranga305/Order-Platform-Frontend/internal/model"
)

const (
	sessionName = "order_platform_session"

	tokenKey     = "access_token"
	expiresAtKey = "expires_at"
	flashKey     = "flash"
)

func init() {
	gob.Register(Flash{})
}

// Виды flash-сообщений.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash описывает одноразовое сообщение, показываемое на следующей странице.
type Flash struct {
	Kind    string
	Message string
}

// Store управляет cookie-сессией фронтенда: учётные данные API и flash-сообщения.
type Store struct {
	cookies *sessions.CookieStore
}

// NewStore создаёт хранилище сессий с указанным секретным ключом.
func NewStore(secret []byte, secure bool) *Store {
	cs := sessions.NewCookieStore(secret)
	cs.Options.Path = "/"
	cs.Options.HttpOnly = true
	cs.Options.Secure = secure
	cs.Options.SameSite = http.SameSiteLaxMode

	return &Store{cookies: cs}
}

// Save сохраняет учётные данные, перезаписывая предыдущее значение.
// Срок действия токена сохраняется, но локально не проверяется:
// истечение обнаруживается по ответу 401 от API.
func (s *Store) Save(w http.ResponseWriter, r *http.Request, cred model.Credential) error {
	sess, _ := s.cookies.Get(r, sessionName)
	sess.Values[tokenKey] = cred.Token
	sess.Values[expiresAtKey] = cred.ExpiresAt.Unix()
	return sess.Save(r, w)
}

// Clear удаляет сессию целиком, включая flash-сообщения.
func (s *Store) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.cookies.Get(r, sessionName)
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// Credential возвращает сохранённые учётные данные и признак их наличия.
func (s *Store) Credential(r *http.Request) (model.Credential, bool) {
	sess, _ := s.cookies.Get(r, sessionName)

	token, ok := sess.Values[tokenKey].(string)
	if !ok || token == "" {
		return model.Credential{}, false
	}

	cred := model.Credential{Token: token}
	if unix, ok := sess.Values[expiresAtKey].(int64); ok {
		cred.ExpiresAt = time.Unix(unix, 0)
	}

	return cred, true
}

// IsPresent сообщает, сохранён ли токен в сессии.
func (s *Store) IsPresent(r *http.Request) bool {
	_, ok := s.Credential(r)
	return ok
}

// AddFlash добавляет одноразовое сообщение указанного вида (success, error).
func (s *Store) AddFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	sess, _ := s.cookies.Get(r, sessionName)
	sess.AddFlash(Flash{Kind: kind, Message: message}, flashKey)
	_ = sess.Save(r, w)
}

// Flashes забирает накопленные сообщения и очищает их из сессии.
func (s *Store) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	sess, _ := s.cookies.Get(r, sessionName)

	raw := sess.Flashes(flashKey)
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(r, w)

	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}
