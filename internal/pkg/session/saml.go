package session

import (
	"context"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/crewjam/saml"
	"github.com/crewjam/saml/samlsp"
	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/pkg/apperrors"
	"github.com/seas-computing/course-planner/internal/pkg/logger"
)

// ErrNotAuthorized rejects an assertion that does not identify a person
var ErrNotAuthorized = apperrors.NewUnauthorizedError(
	"You are not authorized to use this application. Please contact SEAS computing")

// Attribute names accepted for each user field, by URI and by friendly name
var (
	eppnAttributes      = []string{"urn:oid:1.3.6.1.4.1.5923.1.1.1.6", "eduPersonPrincipalName", "eppn"}
	givenNameAttributes = []string{"urn:oid:2.5.4.42", "givenName"}
	surnameAttributes   = []string{"urn:oid:2.5.4.4", "sn", "surname"}
	emailAttributes     = []string{"urn:oid:0.9.2342.19200300.100.1.3", "mail", "email"}
)

// SAMLProvider stores SAML logins in the session Store. It implements
// samlsp.SessionProvider.
type SAMLProvider struct {
	store           *Store
	groupsAttribute string
}

var _ samlsp.SessionProvider = (*SAMLProvider)(nil)

// NewSAMLProvider creates a provider reading group membership from groupsAttribute
func NewSAMLProvider(store *Store, groupsAttribute string) *SAMLProvider {
	return &SAMLProvider{store: store, groupsAttribute: groupsAttribute}
}

// CreateSession is called once the IdP assertion has been validated
func (p *SAMLProvider) CreateSession(w http.ResponseWriter, r *http.Request, assertion *saml.Assertion) error {
	user, err := UserFromAssertion(assertion, p.groupsAttribute)
	if err != nil {
		logger.Warn().Err(err).Msg("Rejected SAML assertion")
		return err
	}
	_, err = p.store.Create(r.Context(), w, user)
	return err
}

// DeleteSession ends the request's session
func (p *SAMLProvider) DeleteSession(w http.ResponseWriter, r *http.Request) error {
	return p.store.Destroy(r.Context(), w, r)
}

// GetSession returns the *models.User of the request's session
func (p *SAMLProvider) GetSession(r *http.Request) (samlsp.Session, error) {
	user, err := p.store.Load(r.Context(), r)
	if errors.Is(err, ErrNoSession) {
		return nil, samlsp.ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UserFromAssertion maps the attributes of an assertion onto a User. The
// assertion must carry an eppn.
func UserFromAssertion(assertion *saml.Assertion, groupsAttribute string) (*models.User, error) {
	if assertion == nil {
		return nil, ErrNotAuthorized
	}

	values := map[string][]string{}
	for _, statement := range assertion.AttributeStatements {
		for _, attr := range statement.Attributes {
			for _, v := range attr.Values {
				if v.Value == "" {
					continue
				}
				for _, name := range []string{attr.Name, attr.FriendlyName} {
					if name != "" {
						values[name] = append(values[name], v.Value)
					}
				}
			}
		}
	}

	first := func(names []string) string {
		for _, name := range names {
			if vs := values[name]; len(vs) > 0 {
				return strings.TrimSpace(vs[0])
			}
		}
		return ""
	}

	user := &models.User{
		EPPN:      first(eppnAttributes),
		FirstName: first(givenNameAttributes),
		LastName:  first(surnameAttributes),
		Email:     first(emailAttributes),
		Groups:    []string{},
	}
	if user.EPPN == "" {
		return nil, ErrNotAuthorized
	}
	if groupsAttribute != "" {
		user.Groups = append(user.Groups, values[groupsAttribute]...)
	}
	return user, nil
}

// SAMLOptions describes this service provider and its identity provider
type SAMLOptions struct {
	RootURL        string
	EntityID       string
	IDPMetadataURL string
	CertFile       string
	KeyFile        string
}

// NewSAMLMiddleware builds a samlsp.Middleware whose sessions live in the
// Store behind provider. The IdP metadata is fetched once at start up.
func NewSAMLMiddleware(ctx context.Context, opts SAMLOptions, provider samlsp.SessionProvider) (*samlsp.Middleware, error) {
	keyPair, err := tls.LoadX509KeyPair(opts.CertFile, opts.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load SAML key pair: %w", err)
	}
	key, ok := keyPair.PrivateKey.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("SAML key must be an RSA private key")
	}
	cert, err := x509.ParseCertificate(keyPair.Certificate[0])
	if err != nil {
		return nil, fmt.Errorf("failed to parse SAML certificate: %w", err)
	}

	rootURL, err := url.Parse(opts.RootURL)
	if err != nil {
		return nil, fmt.Errorf("invalid external URL: %w", err)
	}
	metadataURL, err := url.Parse(opts.IDPMetadataURL)
	if err != nil {
		return nil, fmt.Errorf("invalid IdP metadata URL: %w", err)
	}

	idpMetadata, err := samlsp.FetchMetadata(ctx, http.DefaultClient, *metadataURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch IdP metadata: %w", err)
	}

	middleware, err := samlsp.New(samlsp.Options{
		EntityID:    opts.EntityID,
		URL:         *rootURL,
		Key:         key,
		Certificate: cert,
		IDPMetadata: idpMetadata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create SAML service provider: %w", err)
	}

	middleware.Session = provider
	logger.Info().Str("entityID", opts.EntityID).Str("idp", opts.IDPMetadataURL).Msg("SAML service provider configured")
	return middleware, nil
}
