package profiles

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"profile-sync/gateways"
	"profile-sync/models"
	"profile-sync/transport"
)

// Gateway führt die Aufrufe für das Singleton-Profil eines Users aus.
type Gateway struct {
	Client *transport.Client
	Logger *zap.Logger
}

// New erstellt ein Profiles-Gateway.
func New(client *transport.Client, logger *zap.Logger) *Gateway {
	return &Gateway{Client: client, Logger: logger}
}

// Get holt das Profil eines Users; NotFoundError, wenn noch keines existiert.
func (g *Gateway) Get(ctx context.Context, userID int) (*models.Profile, error) {
	raw, err := g.Client.Request(ctx, http.MethodGet, fmt.Sprintf("/profiles/%d", userID), nil)
	if err != nil {
		return nil, err
	}
	profile, err := gateways.Decode[models.Profile](raw)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Create legt das Profil an (einmal pro User).
func (g *Gateway) Create(ctx context.Context, in models.ProfileInput) (*models.Profile, error) {
	raw, err := g.Client.Request(ctx, http.MethodPost, "/profiles/", in)
	if err != nil {
		return nil, err
	}
	profile, err := gateways.Decode[models.Profile](raw)
	if err != nil {
		return nil, err
	}
	g.Logger.Info("Profile created", zap.Int("id", profile.ID), zap.String("name", profile.Name))
	return &profile, nil
}

// Update ersetzt das Profil vollständig; das Singleton wird als ganzes
// Formular bearbeitet, partielle Feld-Updates gibt es hier nicht.
func (g *Gateway) Update(ctx context.Context, profileID int, in models.ProfileInput) (*models.Profile, error) {
	raw, err := g.Client.Request(ctx, http.MethodPut, fmt.Sprintf("/profiles/%d", profileID), in)
	if err != nil {
		return nil, err
	}
	profile, err := gateways.Decode[models.Profile](raw)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
