package auth

// Service is an optional allowlist. With no configured users every user is
// admitted.
type Service struct {
	allowedUsers map[int64]struct{}
}

func New(initial []int64) *Service {
	s := &Service{allowedUsers: make(map[int64]struct{}, len(initial))}
	for _, id := range initial {
		s.allowedUsers[id] = struct{}{}
	}
	return s
}

func (s *Service) IsAllowed(userID int64) bool {
	if s == nil || len(s.allowedUsers) == 0 {
		return true
	}
	_, ok := s.allowedUsers[userID]
	return ok
}

// Restricted reports whether an allowlist is in effect.
func (s *Service) Restricted() bool {
	return s != nil && len(s.allowedUsers) > 0
}
