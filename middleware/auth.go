package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"pocketledger/config"
)

type contextKey string

const userIDKey contextKey = "user_id"

// TokenVerifier validates an opaque bearer credential and returns the
// stable subject id of the caller. Verification is expected to involve an
// external identity provider, so every call is fallible independent of the
// request itself.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// Auth wraps a handler with bearer-token authentication. A request with no
// credential is rejected without contacting the verifier; otherwise the
// verifier is invoked exactly once, bounded by timeout, and the verified
// subject id becomes the only ownership value downstream handlers see.
func Auth(verifier TokenVerifier, timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r.Header.Get("Authorization"))
			if token == "" {
				writeUnauthorized(w, "Authorization header is required")
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			uid, err := verifier.Verify(ctx, token)
			if err != nil {
				log.Printf("Token verification failed: %v", err)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(
				context.WithValue(r.Context(), userIDKey, uid)))
		})
	}
}

// UserIDFromContext returns the verified subject id attached by Auth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(userIDKey).(string)
	return uid, ok && uid != ""
}

// WithUserID returns a context carrying uid as the verified subject id.
// Tests use it to stand in for the Auth middleware.
func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userIDKey, uid)
}

// extractToken pulls the credential out of an Authorization header.
func extractToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error":    http.StatusText(http.StatusUnauthorized),
		"messages": []string{msg},
	})
}

// FirebaseVerifier verifies Firebase ID tokens through the Admin SDK.
type FirebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier builds the Firebase app from whichever credential
// source the configuration carries and returns a verifier backed by its
// auth client.
func NewFirebaseVerifier(ctx context.Context, cfg *config.Config) (*FirebaseVerifier, error) {
	opt, err := credentialsOption(cfg)
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("get firebase auth client: %w", err)
	}

	return &FirebaseVerifier{client: client}, nil
}

func credentialsOption(cfg *config.Config) (option.ClientOption, error) {
	switch {
	case cfg.FirebaseServiceAccountJSON != "":
		return option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON)), nil
	case cfg.FirebaseServiceAccountBase64 != "":
		raw, err := base64.StdEncoding.DecodeString(cfg.FirebaseServiceAccountBase64)
		if err != nil {
			return nil, fmt.Errorf("decode base64 firebase credentials: %w", err)
		}
		return option.WithCredentialsJSON(raw), nil
	case cfg.FirebaseServiceAccountFile != "":
		return option.WithCredentialsFile(cfg.FirebaseServiceAccountFile), nil
	default:
		return nil, fmt.Errorf("no firebase credentials configured")
	}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("verify ID token: %w", err)
	}
	return token.UID, nil
}
