package publications

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"profile-sync/gateways"
	"profile-sync/models"
	"profile-sync/transport"
)

// Gateway führt die CRUD-Aufrufe für Publikationen aus.
type Gateway struct {
	Client *transport.Client
	Logger *zap.Logger
}

// New erstellt ein Publications-Gateway.
func New(client *transport.Client, logger *zap.Logger) *Gateway {
	return &Gateway{Client: client, Logger: logger}
}

// List holt alle Publikationen eines Users.
func (g *Gateway) List(ctx context.Context, userID int) ([]models.Publication, error) {
	raw, err := g.Client.Request(ctx, http.MethodGet, fmt.Sprintf("/publications/user/%d", userID), nil)
	if err != nil {
		return nil, err
	}
	return gateways.Decode[[]models.Publication](raw)
}

// Create legt eine Publikation an; die ID vergibt das Backend.
func (g *Gateway) Create(ctx context.Context, in models.PublicationInput) (*models.Publication, error) {
	raw, err := g.Client.Request(ctx, http.MethodPost, "/publications/", in)
	if err != nil {
		return nil, err
	}
	pub, err := gateways.Decode[models.Publication](raw)
	if err != nil {
		return nil, err
	}
	g.Logger.Info("Publication created", zap.Int("id", pub.ID), zap.String("title", pub.Title))
	return &pub, nil
}

// Update ändert nur die im Payload gesetzten Felder.
func (g *Gateway) Update(ctx context.Context, id int, in models.PublicationUpdate) (*models.Publication, error) {
	raw, err := g.Client.Request(ctx, http.MethodPatch, fmt.Sprintf("/publications/%d", id), in)
	if err != nil {
		return nil, err
	}
	pub, err := gateways.Decode[models.Publication](raw)
	if err != nil {
		return nil, err
	}
	return &pub, nil
}

// Delete entfernt eine Publikation. Eine bereits gelöschte ID liefert
// NotFoundError, keinen Absturz.
func (g *Gateway) Delete(ctx context.Context, id int) error {
	_, err := g.Client.Request(ctx, http.MethodDelete, fmt.Sprintf("/publications/%d", id), nil)
	return err
}
