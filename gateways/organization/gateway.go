package organization

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"profile-sync/gateways"
	"profile-sync/models"
	"profile-sync/transport"
)

// Gateway führt die administrativen CRUD-Aufrufe für Organisationsdaten
// aus: Standorte, Partner und Stellenausschreibungen. Diese Entities sind
// keinem User zugeordnet.
type Gateway struct {
	Client *transport.Client
	Logger *zap.Logger
}

// New erstellt ein Organization-Gateway.
func New(client *transport.Client, logger *zap.Logger) *Gateway {
	return &Gateway{Client: client, Logger: logger}
}

// ListCenters holt alle Standorte.
func (g *Gateway) ListCenters(ctx context.Context) ([]models.OrganizationCenter, error) {
	raw, err := g.Client.Request(ctx, http.MethodGet, "/organization/centers", nil)
	if err != nil {
		return nil, err
	}
	return gateways.Decode[[]models.OrganizationCenter](raw)
}

// CreateCenter legt einen Standort an.
func (g *Gateway) CreateCenter(ctx context.Context, in models.CenterInput) (*models.OrganizationCenter, error) {
	raw, err := g.Client.Request(ctx, http.MethodPost, "/organization/centers", in)
	if err != nil {
		return nil, err
	}
	center, err := gateways.Decode[models.OrganizationCenter](raw)
	if err != nil {
		return nil, err
	}
	g.Logger.Info("Organization center created", zap.Int("id", center.ID), zap.String("name", center.CenterName))
	return &center, nil
}

// UpdateCenter ändert nur die im Payload gesetzten Felder.
func (g *Gateway) UpdateCenter(ctx context.Context, id int, in models.CenterUpdate) (*models.OrganizationCenter, error) {
	raw, err := g.Client.Request(ctx, http.MethodPatch, fmt.Sprintf("/organization/centers/%d", id), in)
	if err != nil {
		return nil, err
	}
	center, err := gateways.Decode[models.OrganizationCenter](raw)
	if err != nil {
		return nil, err
	}
	return &center, nil
}

// DeleteCenter entfernt einen Standort.
func (g *Gateway) DeleteCenter(ctx context.Context, id int) error {
	_, err := g.Client.Request(ctx, http.MethodDelete, fmt.Sprintf("/organization/centers/%d", id), nil)
	return err
}

// ListPartners holt alle Partnerorganisationen.
func (g *Gateway) ListPartners(ctx context.Context) ([]models.OrganizationPartner, error) {
	raw, err := g.Client.Request(ctx, http.MethodGet, "/organization/partners", nil)
	if err != nil {
		return nil, err
	}
	return gateways.Decode[[]models.OrganizationPartner](raw)
}

// CreatePartner legt eine Partnerorganisation an.
func (g *Gateway) CreatePartner(ctx context.Context, in models.PartnerInput) (*models.OrganizationPartner, error) {
	raw, err := g.Client.Request(ctx, http.MethodPost, "/organization/partners", in)
	if err != nil {
		return nil, err
	}
	partner, err := gateways.Decode[models.OrganizationPartner](raw)
	if err != nil {
		return nil, err
	}
	g.Logger.Info("Organization partner created", zap.Int("id", partner.ID), zap.String("name", partner.Name))
	return &partner, nil
}

// UpdatePartner ändert nur die im Payload gesetzten Felder.
func (g *Gateway) UpdatePartner(ctx context.Context, id int, in models.PartnerUpdate) (*models.OrganizationPartner, error) {
	raw, err := g.Client.Request(ctx, http.MethodPatch, fmt.Sprintf("/organization/partners/%d", id), in)
	if err != nil {
		return nil, err
	}
	partner, err := gateways.Decode[models.OrganizationPartner](raw)
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

// DeletePartner entfernt eine Partnerorganisation.
func (g *Gateway) DeletePartner(ctx context.Context, id int) error {
	_, err := g.Client.Request(ctx, http.MethodDelete, fmt.Sprintf("/organization/partners/%d", id), nil)
	return err
}

// ListCareers holt alle Stellenausschreibungen.
func (g *Gateway) ListCareers(ctx context.Context) ([]models.OrganizationCareer, error) {
	raw, err := g.Client.Request(ctx, http.MethodGet, "/organization/careers", nil)
	if err != nil {
		return nil, err
	}
	return gateways.Decode[[]models.OrganizationCareer](raw)
}

// CreateCareer legt eine Stellenausschreibung an.
func (g *Gateway) CreateCareer(ctx context.Context, in models.CareerInput) (*models.OrganizationCareer, error) {
	raw, err := g.Client.Request(ctx, http.MethodPost, "/organization/careers", in)
	if err != nil {
		return nil, err
	}
	career, err := gateways.Decode[models.OrganizationCareer](raw)
	if err != nil {
		return nil, err
	}
	g.Logger.Info("Organization career created", zap.Int("id", career.ID), zap.String("title", career.Title))
	return &career, nil
}

// UpdateCareer ändert nur die im Payload gesetzten Felder.
func (g *Gateway) UpdateCareer(ctx context.Context, id int, in models.CareerUpdate) (*models.OrganizationCareer, error) {
	raw, err := g.Client.Request(ctx, http.MethodPatch, fmt.Sprintf("/organization/careers/%d", id), in)
	if err != nil {
		return nil, err
	}
	career, err := gateways.Decode[models.OrganizationCareer](raw)
	if err != nil {
		return nil, err
	}
	return &career, nil
}

// DeleteCareer entfernt eine Stellenausschreibung.
func (g *Gateway) DeleteCareer(ctx context.Context, id int) error {
	_, err := g.Client.Request(ctx, http.MethodDelete, fmt.Sprintf("/organization/careers/%d", id), nil)
	return err
}
