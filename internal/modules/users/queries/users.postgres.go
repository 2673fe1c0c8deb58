package queries

// UserQueries requêtes SQL du registre des comptes
var UserQueries = struct {
	Create  string
	List    string
	GetByID string
	Update  string
	Delete  string
	Count   string
}{
	/**
	 * Paramètres: $1 = email, $2 = password_hash, $3 = name, $4 = phone_number, $5 = role
	 */
	Create: `
		INSERT INTO users (email, password_hash, name, phone_number, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, password_hash, name, phone_number, role, is_active, created_at, updated_at
	`,

	List: `
		SELECT id, email, password_hash, name, phone_number, role, is_active, created_at, updated_at
		FROM users
		ORDER BY id
	`,

	GetByID: `
		SELECT id, email, password_hash, name, phone_number, role, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`,

	/**
	 * Réécrit l'ensemble des champs modifiables, la fusion est faite côté service
	 * Paramètres: $1 = id, $2 = email, $3 = password_hash, $4 = name, $5 = phone_number, $6 = role, $7 = is_active
	 */
	Update: `
		UPDATE users
		SET email = $2, password_hash = $3, name = $4, phone_number = $5, role = $6, is_active = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING id, email, password_hash, name, phone_number, role, is_active, created_at, updated_at
	`,

	Delete: `DELETE FROM users WHERE id = $1 RETURNING id`,

	Count: `SELECT COUNT(*) FROM users`,
}
