package biosections

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"profile-sync/gateways"
	"profile-sync/models"
	"profile-sync/transport"
)

// Gateway führt die CRUD-Aufrufe für Bio-Abschnitte aus.
type Gateway struct {
	Client *transport.Client
	Logger *zap.Logger
}

// New erstellt ein BioSections-Gateway.
func New(client *transport.Client, logger *zap.Logger) *Gateway {
	return &Gateway{Client: client, Logger: logger}
}

// List holt alle Bio-Abschnitte eines Users, sortiert übernimmt das Backend.
func (g *Gateway) List(ctx context.Context, userID int) ([]models.BioSection, error) {
	raw, err := g.Client.Request(ctx, http.MethodGet, fmt.Sprintf("/bio-sections/user/%d", userID), nil)
	if err != nil {
		return nil, err
	}
	return gateways.Decode[[]models.BioSection](raw)
}

// Create legt einen Bio-Abschnitt an.
func (g *Gateway) Create(ctx context.Context, in models.BioSectionInput) (*models.BioSection, error) {
	raw, err := g.Client.Request(ctx, http.MethodPost, "/bio-sections/", in)
	if err != nil {
		return nil, err
	}
	section, err := gateways.Decode[models.BioSection](raw)
	if err != nil {
		return nil, err
	}
	g.Logger.Info("Bio section created", zap.Int("id", section.ID), zap.String("title", section.Title))
	return &section, nil
}

// Update ändert nur die im Payload gesetzten Felder.
func (g *Gateway) Update(ctx context.Context, id int, in models.BioSectionUpdate) (*models.BioSection, error) {
	raw, err := g.Client.Request(ctx, http.MethodPatch, fmt.Sprintf("/bio-sections/%d", id), in)
	if err != nil {
		return nil, err
	}
	section, err := gateways.Decode[models.BioSection](raw)
	if err != nil {
		return nil, err
	}
	return &section, nil
}

// Delete entfernt einen Bio-Abschnitt.
func (g *Gateway) Delete(ctx context.Context, id int) error {
	_, err := g.Client.Request(ctx, http.MethodDelete, fmt.Sprintf("/bio-sections/%d", id), nil)
	return err
}
