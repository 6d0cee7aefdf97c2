package domain

// IsVisible определяет, может ли данный субъект видеть запись продавца.
// Одобренные записи видны всем, остальные - только автору заявки.
// Отказ в видимости наружу отдаётся как 404, а не 403, чтобы не
// раскрывать существование чужих pending/rejected заявок.
func IsVisible(v *Vendor, p *Principal) bool {
	if v == nil {
		return false
	}
	if v.Status == StatusApproved {
		return true
	}
	return p != nil && v.IsOwnedBy(p.ID)
}
