package accounts

// CanUpdate reports whether principal may mutate the account identified by
// targetID. Admins may update any account, everyone else only their own.
func CanUpdate(principal Principal, targetID string) bool {
	return principal.Role == RoleAdmin || principal.ID == targetID
}
