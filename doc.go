// Package accounts implements a role-based account management API.
//
// Callers are identified by a Principal resolved from a verified JWT. A
// principal can read its own profile, list accounts (admins see every
// account, everyone else sees only their own record) and update an account's
// username, password or active flag when CanUpdate allows it.
//
// Persistence goes through the UserStore interface. Users is the Bun backed
// implementation and RepositoryManager wires it together with the embedded
// schema migrations.
//
// Password digests are bcrypt hashes and never leave the process: the
// PasswordHash field is excluded from every JSON encoding of User.
package accounts
