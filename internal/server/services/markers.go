package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/mapboard/internal/dbx"
	"github.com/dmitrijs2005/mapboard/internal/server/models"
	"github.com/dmitrijs2005/mapboard/internal/server/repositories/repomanager"
)

// Default map viewport returned with every map view.
var (
	DefaultMapCenter = models.Position{20.5937, 78.9629}
	DefaultMapZoom   = 5
)

// MarkerInput is the client-supplied part of a marker.
type MarkerInput struct {
	Position []float64 `json:"position" validate:"required,len=2"`
	Title    string    `json:"title" validate:"required"`
}

type MarkerService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
}

func NewMarkerService(db dbx.DBTX, m repomanager.RepositoryManager) *MarkerService {
	return &MarkerService{db: db, repomanager: m}
}

func (s *MarkerService) List(ctx context.Context, owner string) ([]*models.Marker, error) {
	return s.repomanager.Markers(s.db).List(ctx, owner)
}

// MapView returns the fixed viewport together with the owner's markers.
func (s *MarkerService) MapView(ctx context.Context, owner string) (*models.MapView, error) {
	markers, err := s.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	return &models.MapView{Center: DefaultMapCenter, Zoom: DefaultMapZoom, Markers: markers}, nil
}

// Create validates and stores a marker. Invalid input is rejected with
// common.ErrValidation before anything is written.
func (s *MarkerService) Create(ctx context.Context, owner string, in MarkerInput) (*models.Marker, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	marker := &models.Marker{
		ID:       uuid.NewString(),
		Position: models.Position{in.Position[0], in.Position[1]},
		Title:    in.Title,
		Owner:    owner,
	}

	m, err := s.repomanager.Markers(s.db).Create(ctx, marker)
	if err != nil {
		return nil, fmt.Errorf("error creating marker: %w", err)
	}
	return m, nil
}
