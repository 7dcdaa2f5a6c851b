package spaceservice

// Space пространство из каталога SpaceService
type Space struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	OwnerIDs []int64 `json:"ownerIds"`
}

// IsOwner проверяет, что пользователь является владельцем пространства
func (s *Space) IsOwner(userID int64) bool {
	for _, id := range s.OwnerIDs {
		if id == userID {
			return true
		}
	}
	return false
}
