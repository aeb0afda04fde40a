package auth

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"profile-sync/gateways"
	"profile-sync/models"
	"profile-sync/session"
	"profile-sync/transport"
)

// Gateway kapselt die Auth-Endpunkte. Login und Register sind die einzigen
// form-kodierten Aufrufe; alles andere spricht JSON.
type Gateway struct {
	Client  *transport.Client
	Session *session.Session
	Logger  *zap.Logger
}

// New erstellt ein Auth-Gateway.
func New(client *transport.Client, sess *session.Session, logger *zap.Logger) *Gateway {
	return &Gateway{Client: client, Session: sess, Logger: logger}
}

// Login meldet den User an und übernimmt das Token in die Session.
func (g *Gateway) Login(ctx context.Context, username, password string) (*models.TokenResponse, error) {
	values := url.Values{}
	values.Set("username", username)
	values.Set("password", password)

	raw, err := g.Client.PostForm(ctx, "/auth/login", values)
	if err != nil {
		return nil, err
	}
	token, err := gateways.Decode[models.TokenResponse](raw)
	if err != nil {
		return nil, err
	}

	g.Session.Set(token.AccessToken)
	g.Logger.Info("User logged in", zap.String("username", username))
	return &token, nil
}

// Register legt einen neuen User an; meldet ihn nicht automatisch an.
func (g *Gateway) Register(ctx context.Context, username, password string) (*models.User, error) {
	values := url.Values{}
	values.Set("username", username)
	values.Set("password", password)

	raw, err := g.Client.PostForm(ctx, "/auth/register", values)
	if err != nil {
		return nil, err
	}
	user, err := gateways.Decode[models.User](raw)
	if err != nil {
		return nil, err
	}
	g.Logger.Info("User registered", zap.String("username", username))
	return &user, nil
}

// Logout verwirft die Session samt persistiertem Token.
func (g *Gateway) Logout() {
	g.Session.Clear()
	g.Logger.Info("User logged out")
}
