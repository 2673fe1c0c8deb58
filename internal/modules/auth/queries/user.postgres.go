package queries

// UserQueries requêtes SQL utilisées par l'authentification
var UserQueries = struct {
	GetByEmail     string
	GetByID        string
	UpdatePassword string
}{
	/**
	 * Récupère un utilisateur par email, insensible à la casse
	 * Paramètres: $1 = email
	 */
	GetByEmail: `
		SELECT id, email, password_hash, name, phone_number, role, is_active, created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`,

	/**
	 * Paramètres: $1 = id
	 */
	GetByID: `
		SELECT id, email, password_hash, name, phone_number, role, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`,

	/**
	 * Paramètres: $1 = id, $2 = password_hash
	 */
	UpdatePassword: `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`,
}
