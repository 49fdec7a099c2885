package service

import (
	"context"
	"fmt"

	"github.com/aadinathdeepak/pg-management-app/domains/dashboard/be/repo"
)

// Stats is the aggregate snapshot shown on the admin landing page.
type Stats struct {
	TotalRooms     int
	OpenComplaints int
	PendingRent    int64
}

type Service interface {
	Stats(ctx context.Context) (Stats, error)
}

type service struct {
	repo repo.Repository
}

func New(r repo.Repository) Service {
	if r == nil {
		panic("repository is required")
	}
	return &service{repo: r}
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	rooms, err := s.repo.CountRooms(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("counting rooms: %w", err)
	}

	open, err := s.repo.CountOpenComplaints(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("counting open complaints: %w", err)
	}

	dues, err := s.repo.SumTenantDues(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("summing tenant dues: %w", err)
	}

	return Stats{TotalRooms: rooms, OpenComplaints: open, PendingRent: dues}, nil
}
