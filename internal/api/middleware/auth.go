package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ankitpatil/director/internal/api/response"
	"golang.org/x/crypto/bcrypt"
)

// Auth validates API keys against a static, config-supplied keyring of
// owner:bcrypt-hash pairs. Keys never touch the job store.
type Auth struct {
	hashes map[string]string // owner -> bcrypt hash of the raw key
}

// NewAuth parses a comma-separated list of owner:bcrypt-hash pairs.
func NewAuth(keys string) (*Auth, error) {
	hashes := make(map[string]string)
	for _, pair := range strings.Split(keys, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		owner, hash, ok := strings.Cut(pair, ":")
		if !ok || owner == "" || hash == "" {
			return nil, fmt.Errorf("malformed API key entry %q, want owner:hash", pair)
		}
		hashes[owner] = hash
	}
	if len(hashes) == 0 {
		return nil, fmt.Errorf("no API keys configured")
	}
	return &Auth{hashes: hashes}, nil
}

// Authenticate validates the Bearer token and sets the owner id in the
// request context.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawKey := extractBearerToken(r)
		if rawKey == "" {
			response.Error(w, http.StatusUnauthorized,
				"INVALID_TOKEN", "Missing or invalid Authorization header", nil)
			return
		}

		for owner, hash := range a.hashes {
			if bcrypt.CompareHashAndPassword([]byte(hash), []byte(rawKey)) == nil {
				r = r.WithContext(SetOwnerID(r.Context(), owner))
				next.ServeHTTP(w, r)
				return
			}
		}

		response.Error(w, http.StatusUnauthorized,
			"INVALID_TOKEN", "Invalid API key", nil)
	})
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
