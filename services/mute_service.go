//go:generate go run go.uber.org/mock/mockgen -source=mute_service.go -destination=../infrastructure/http/server/mock_mute_service_test.go -package=server
package services

import (
	"context"
	"net/netip"
	"svc-mute/domain"
	"svc-mute/integrations"
	"svc-mute/runtime"
	"time"

	"github.com/samber/lo"
)

type IMuteService interface {
	IsMuted(ctx context.Context, subject domain.Subject) bool
	AddOverride(ctx context.Context, subject domain.Subject, until time.Time) error
	RemoveOverride(ctx context.Context, subject domain.Subject) error
	Connect(subject domain.Subject, address netip.Addr) domain.Session
	Disconnect(subject domain.Subject)
	Backends() []string
}

type MuteService struct {
	manager  *integrations.IntegrationManager
	sessions *runtime.SessionRegistry
}

func NewMuteService(manager *integrations.IntegrationManager, sessions *runtime.SessionRegistry) *MuteService {
	return &MuteService{manager: manager, sessions: sessions}
}

func (s *MuteService) IsMuted(ctx context.Context, subject domain.Subject) bool {
	return s.manager.IsMuted(ctx, subject)
}

func (s *MuteService) AddOverride(ctx context.Context, subject domain.Subject, until time.Time) error {
	return s.manager.AddOverride(ctx, subject, until)
}

func (s *MuteService) RemoveOverride(ctx context.Context, subject domain.Subject) error {
	return s.manager.RemoveOverride(ctx, subject)
}

func (s *MuteService) Connect(subject domain.Subject, address netip.Addr) domain.Session {
	return s.sessions.Connect(subject, address)
}

func (s *MuteService) Disconnect(subject domain.Subject) {
	s.sessions.Disconnect(subject)
}

func (s *MuteService) Backends() []string {
	return lo.Map(s.manager.Backends(), func(name integrations.BackendName, _ int) string {
		return string(name)
	})
}
