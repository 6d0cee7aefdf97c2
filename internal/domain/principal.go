package domain

// Роли аутентифицированных пользователей
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Principal - аутентифицированный субъект запроса.
// Выдача и проверка токенов - зона ответственности внешнего auth-сервиса,
// здесь важен только контракт "кто делает запрос".
type Principal struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// IsAdmin проверяет административную роль
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
