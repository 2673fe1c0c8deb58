package queries

const patientColumns = `
	id, name, age, gender, weight, phone_number, grade,
	antecedents, etablissement, medicin, specialite, service,
	created_at, updated_at`

// PatientQueries requêtes SQL du registre patients
var PatientQueries = struct {
	Create  string
	GetByID string
	List    string
	Update  string
	Delete  string
}{
	/**
	 * Paramètres: $1 name, $2 age, $3 gender, $4 weight, $5 phone_number, $6 grade,
	 * $7 antecedents, $8 etablissement, $9 medicin, $10 specialite, $11 service
	 */
	Create: `
		INSERT INTO patients (
			name, age, gender, weight, phone_number, grade,
			antecedents, etablissement, medicin, specialite, service
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING` + patientColumns,

	GetByID: `
		SELECT` + patientColumns + `
		FROM patients
		WHERE id = $1
	`,

	List: `
		SELECT` + patientColumns + `
		FROM patients
		ORDER BY created_at DESC, id DESC
	`,

	/**
	 * Paramètres: $1 id puis les colonnes de Create en $2..$12
	 */
	Update: `
		UPDATE patients SET
			name = $2, age = $3, gender = $4, weight = $5, phone_number = $6, grade = $7,
			antecedents = $8, etablissement = $9, medicin = $10, specialite = $11, service = $12,
			updated_at = NOW()
		WHERE id = $1
		RETURNING` + patientColumns,

	Delete: `
		DELETE FROM patients
		WHERE id = $1
		RETURNING id
	`,
}
