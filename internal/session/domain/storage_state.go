package domain

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
	"time"

	validation "github.com/jellydator/validation"
)

// StorageState is the browser storage-state export of a logged-in marketplace session: the
// cookie jar plus local storage per origin. Fields not listed here are kept in the canonical
// JSON but ignored by validation.
type StorageState struct {
	Cookies []Cookie `json:"cookies"`
	Origins []Origin `json:"origins"`
	// ExpiresAt is an optional RFC 3339 hint for when the session stops working.
	ExpiresAt string `json:"expiresAt,omitempty"`
}

// Cookie is one entry of the cookie jar.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain,omitempty"`
	Path     string  `json:"path,omitempty"`
	Expires  float64 `json:"expires,omitempty"`
	HTTPOnly bool    `json:"httpOnly,omitempty"`
	Secure   bool    `json:"secure,omitempty"`
	SameSite string  `json:"sameSite,omitempty"`
}

// Origin holds the local storage entries of one origin.
type Origin struct {
	Origin       string              `json:"origin"`
	LocalStorage []LocalStorageEntry `json:"localStorage"`
}

// LocalStorageEntry is one local storage key/value pair.
type LocalStorageEntry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SessionMeta is the non-secret summary stored next to the encrypted state.
type SessionMeta struct {
	CookiesCount int `json:"cookiesCount"`
	OriginsCount int `json:"originsCount"`
}

// StorageStateError lists every reason a storage state was rejected.
type StorageStateError struct {
	Reasons []string
}

// Error implements error.
func (e *StorageStateError) Error() string {
	return "invalid session state: " + strings.Join(e.Reasons, "; ")
}

// Unwrap makes the error match ErrInvalidStorageState and ErrInvalidInput.
func (e *StorageStateError) Unwrap() error {
	return ErrInvalidStorageState
}

func newStorageStateError(reasons ...string) *StorageStateError {
	return &StorageStateError{Reasons: reasons}
}

var sameSiteValues = []any{"Strict", "Lax", "None"}

// Validate checks the cookie shape.
func (c Cookie) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.SameSite, validation.In(sameSiteValues...)),
	)
}

// Validate checks the origin shape.
func (o Origin) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Origin, validation.Required, validation.By(isHTTPOrigin)),
		validation.Field(&o.LocalStorage, validation.NotNil),
	)
}

// Validate checks the local storage entry shape.
func (e LocalStorageEntry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Name, validation.Required),
	)
}

// Validate checks that both lists are present and every entry is well formed.
func (s StorageState) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Cookies, validation.NotNil),
		validation.Field(&s.Origins, validation.NotNil),
		validation.Field(&s.ExpiresAt, validation.Date(time.RFC3339).Error("must be an RFC 3339 timestamp")),
	)
}

// Meta returns the cookie and origin counts.
func (s *StorageState) Meta() SessionMeta {
	return SessionMeta{
		CookiesCount: len(s.Cookies),
		OriginsCount: len(s.Origins),
	}
}

// ExpiresAtTime returns the parsed expiry hint, or nil when none was given.
func (s *StorageState) ExpiresAtTime() *time.Time {
	if s.ExpiresAt == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.ExpiresAt)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

func isHTTPOrigin(value any) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validation.NewError("validation_origin", "must be an http(s) origin")
	}
	return nil
}

// NormalizeStorageState converts an uploaded storage state into canonical JSON text.
//
// raw may be JSON text (string, []byte or json.RawMessage), base64 of JSON text, or an already
// decoded value such as map[string]any, which is re-serialized. Only JSON syntax is checked
// here; ParseStorageState checks the shape.
func NormalizeStorageState(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", ErrStorageStateRequired
	case string:
		return normalizeText([]byte(v))
	case []byte:
		return normalizeText(v)
	case json.RawMessage:
		return normalizeText(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", newStorageStateError("must be a JSON object")
		}
		return canonicalize(data)
	}
}

func normalizeText(data []byte) (string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return "", ErrStorageStateRequired
	}

	if trimmed[0] == '{' || trimmed[0] == '[' || json.Valid(trimmed) {
		return canonicalize(trimmed)
	}

	if decoded, ok := decodeBase64(string(trimmed)); ok {
		decoded = bytes.TrimSpace(decoded)
		if len(decoded) == 0 {
			return "", ErrStorageStateRequired
		}
		return canonicalize(decoded)
	}

	return canonicalize(trimmed)
}

func decodeBase64(s string) ([]byte, bool) {
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if decoded, err := enc.DecodeString(s); err == nil {
			return decoded, true
		}
	}
	return nil, false
}

// canonicalize re-encodes JSON text so that every accepted input form yields the same string.
func canonicalize(data []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return "", newStorageStateError("must be valid JSON or base64-encoded JSON")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return "", newStorageStateError("must contain a single JSON value")
	}
	if value == nil {
		return "", ErrStorageStateRequired
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return "", newStorageStateError("must be valid JSON")
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// ParseStorageState decodes canonical JSON and validates its shape. Every rejection reason is
// reported in the returned *StorageStateError.
func ParseStorageState(canonical string) (*StorageState, error) {
	var state StorageState
	if err := json.Unmarshal([]byte(canonical), &state); err != nil {
		return nil, newStorageStateError(decodeReason(err))
	}

	if err := state.Validate(); err != nil {
		var fieldErrors validation.Errors
		if errors.As(err, &fieldErrors) {
			return nil, newStorageStateError(flattenErrors("", fieldErrors)...)
		}
		return nil, newStorageStateError(err.Error())
	}

	return &state, nil
}

func decodeReason(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return "must be a JSON object"
		}
		return fmt.Sprintf("%s: must not be a JSON %s", typeErr.Field, typeErr.Value)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return "must be valid JSON"
	}
	return err.Error()
}

// flattenErrors turns nested validation errors into sorted "path: reason" strings, e.g.
// "origins.0.origin: cannot be blank".
func flattenErrors(prefix string, errs validation.Errors) []string {
	var reasons []string
	for field, err := range errs {
		path := field
		if prefix != "" {
			path = prefix + "." + field
		}

		var nested validation.Errors
		if errors.As(err, &nested) {
			reasons = append(reasons, flattenErrors(path, nested)...)
			continue
		}
		reasons = append(reasons, path+": "+err.Error())
	}
	sort.Strings(reasons)
	return reasons
}
