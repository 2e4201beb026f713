package auth

// User is the chat platform identity we key storage and access by.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}

// Service is a static allowlist seeded from the environment. An empty
// allowlist admits everyone, which is how the bot normally runs; the gate
// exists so a parent can pin the bot to known accounts.
type Service struct {
	allowedUsers map[int64]struct{}
}

func New(allowed []int64) *Service {
	s := &Service{allowedUsers: make(map[int64]struct{})}
	for _, id := range allowed {
		s.allowedUsers[id] = struct{}{}
	}
	return s
}

func (s *Service) IsAllowed(userID int64) bool {
	if len(s.allowedUsers) == 0 {
		return true
	}
	_, ok := s.allowedUsers[userID]
	return ok
}
