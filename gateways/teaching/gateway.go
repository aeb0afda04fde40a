package teaching

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"profile-sync/gateways"
	"profile-sync/models"
	"profile-sync/transport"
)

// Gateway führt die CRUD-Aufrufe für Lehrtätigkeiten und deren Kurse aus.
// Kurse hängen an genau einer TeachingExperience und werden nur im Rahmen
// ihrer Kursliste angelegt bzw. entfernt.
type Gateway struct {
	Client *transport.Client
	Logger *zap.Logger
}

// New erstellt ein Teaching-Gateway.
func New(client *transport.Client, logger *zap.Logger) *Gateway {
	return &Gateway{Client: client, Logger: logger}
}

// List holt alle Lehrtätigkeiten eines Users inklusive Kurslisten.
func (g *Gateway) List(ctx context.Context, userID int) ([]models.TeachingExperience, error) {
	raw, err := g.Client.Request(ctx, http.MethodGet, fmt.Sprintf("/teaching/user/%d", userID), nil)
	if err != nil {
		return nil, err
	}
	return gateways.Decode[[]models.TeachingExperience](raw)
}

// Create legt eine Lehrtätigkeit an.
func (g *Gateway) Create(ctx context.Context, in models.TeachingInput) (*models.TeachingExperience, error) {
	raw, err := g.Client.Request(ctx, http.MethodPost, "/teaching/", in)
	if err != nil {
		return nil, err
	}
	exp, err := gateways.Decode[models.TeachingExperience](raw)
	if err != nil {
		return nil, err
	}
	g.Logger.Info("Teaching experience created", zap.Int("id", exp.ID), zap.String("institution", exp.Institution))
	return &exp, nil
}

// Update ändert nur die im Payload gesetzten Felder.
func (g *Gateway) Update(ctx context.Context, id int, in models.TeachingUpdate) (*models.TeachingExperience, error) {
	raw, err := g.Client.Request(ctx, http.MethodPatch, fmt.Sprintf("/teaching/%d", id), in)
	if err != nil {
		return nil, err
	}
	exp, err := gateways.Decode[models.TeachingExperience](raw)
	if err != nil {
		return nil, err
	}
	return &exp, nil
}

// Delete entfernt eine Lehrtätigkeit; das Backend räumt die Kurse mit ab.
func (g *Gateway) Delete(ctx context.Context, id int) error {
	_, err := g.Client.Request(ctx, http.MethodDelete, fmt.Sprintf("/teaching/%d", id), nil)
	return err
}

// ListCourses holt die Kurse einer Lehrtätigkeit.
func (g *Gateway) ListCourses(ctx context.Context, teachingID int) ([]models.Course, error) {
	raw, err := g.Client.Request(ctx, http.MethodGet, fmt.Sprintf("/teaching/courses/%d", teachingID), nil)
	if err != nil {
		return nil, err
	}
	return gateways.Decode[[]models.Course](raw)
}

// CreateCourse hängt einen Kurs an seine Lehrtätigkeit.
func (g *Gateway) CreateCourse(ctx context.Context, in models.CourseInput) (*models.Course, error) {
	raw, err := g.Client.Request(ctx, http.MethodPost, "/teaching/courses/", in)
	if err != nil {
		return nil, err
	}
	course, err := gateways.Decode[models.Course](raw)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// UpdateCourse ändert nur die im Payload gesetzten Felder.
func (g *Gateway) UpdateCourse(ctx context.Context, id int, in models.CourseUpdate) (*models.Course, error) {
	raw, err := g.Client.Request(ctx, http.MethodPatch, fmt.Sprintf("/teaching/courses/%d", id), in)
	if err != nil {
		return nil, err
	}
	course, err := gateways.Decode[models.Course](raw)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// DeleteCourse entfernt einen Kurs aus seiner Lehrtätigkeit.
func (g *Gateway) DeleteCourse(ctx context.Context, id int) error {
	_, err := g.Client.Request(ctx, http.MethodDelete, fmt.Sprintf("/teaching/courses/%d", id), nil)
	return err
}
