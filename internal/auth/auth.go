// Package auth turns the opaque credential a caller presents into a user.
//
// The bundled scheme is deliberately weak: the credential is the base64 of an
// email address and nothing secret is checked. Swap the IdentityResolver to
// plug in a real scheme.
package auth

import (
	"context"
	"encoding/base64"
	"net/mail"
	"strings"

	"github.com/pkg/errors"

	"trip-gateway/internal/models"
)

// IdentityResolver maps a raw credential to a user. A credential that does not
// identify anyone yields (nil, nil); errors are reserved for backend faults.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, credential string) (*models.User, error)
}

type UserFinder interface {
	FindOrCreateUser(ctx context.Context, email string) (*models.User, error)
}

// EmailCredentialResolver accepts base64 encoded email addresses.
type EmailCredentialResolver struct {
	Users UserFinder
}

func NewEmailCredentialResolver(users UserFinder) *EmailCredentialResolver {
	return &EmailCredentialResolver{Users: users}
}

func (r *EmailCredentialResolver) ResolveIdentity(ctx context.Context, credential string) (*models.User, error) {
	email, ok := DecodeCredential(credential)
	if !ok {
		return nil, nil
	}
	user, err := r.Users.FindOrCreateUser(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "resolve identity")
	}
	return user, nil
}

func EncodeCredential(email string) string {
	return base64.StdEncoding.EncodeToString([]byte(email))
}

// DecodeCredential returns the email carried by credential. ok is false when
// the credential is empty, not base64, or not an email address.
func DecodeCredential(credential string) (email string, ok bool) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return "", false
	}
	b, err := base64.StdEncoding.DecodeString(credential)
	if err != nil {
		return "", false
	}
	email = string(b)
	if ValidateEmail(email) != nil {
		return "", false
	}
	return email, true
}

// ValidateEmail accepts a bare address such as "ada@example.com". Display
// names and angle brackets are rejected.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.Wrapf(models.ErrInvalidInput, "invalid email %q", email)
	}
	return nil
}
