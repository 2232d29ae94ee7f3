package teams

import "github.com/preston-bernstein/lazyman-service/internal/domain/teams"

// Registry defines the read side of the team tables.
type Registry interface {
	Teams(league teams.League) []teams.Team
	ByAbbreviation(league teams.League, abbr string) (teams.Team, bool)
}

// Service exposes team listings and favorite parsing over a Registry.
type Service struct {
	registry Registry
}

// NewService constructs a Service with the provided Registry.
func NewService(registry Registry) *Service {
	return &Service{registry: registry}
}

// Teams returns a league's teams sorted by name.
func (s *Service) Teams(league teams.League) []teams.Team {
	return s.registry.Teams(league)
}

// TeamByAbbreviation returns a single team if present.
func (s *Service) TeamByAbbreviation(league teams.League, abbr string) (teams.Team, bool) {
	return s.registry.ByAbbreviation(league, abbr)
}
