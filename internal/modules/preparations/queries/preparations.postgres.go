package queries

// Colonnes d'une préparation suivies du résumé patient, dans l'ordre de scanPreparation
const preparationColumns = `
	mp.id, mp.patient_id, mp.dci, mp.nom_com, mp.indication, mp.dosage_initial, mp.dosage_adapte,
	mp.mode_emploi, mp.voie_administration, mp.qsp, mp.excipient, mp.preparation_date, mp.peremption_date,
	mp.statut, mp.nombre_gellules, mp.comprime_ecrase::float8,
	mp.erreur, mp.num_lot, mp.erreur_description, mp.actions_entreprises, mp.consequences,
	mp.erreur_cause, mp.erreur_nature, mp.erreur_evitabilite, mp.date_survenue,
	mp.numero_gellule, mp.volume_exipient, mp.created_at, mp.updated_at,
	p.id, p.name, p.age, p.gender, p.weight, p.grade, p.service`

// PreparationQueries requêtes SQL du moteur de préparations
var PreparationQueries = struct {
	Insert          string
	GetByID         string
	List            string
	ListByPatient   string
	PatientSummary  string
	UpdateStatut    string
	Update          string
	Delete          string
	DeleteByPatient string
	CountByStatut   string
}{
	/**
	 * Paramètres: $1..$24 dans l'ordre de InsertArgs
	 */
	Insert: `
		INSERT INTO medicine_preparations (
			patient_id, dci, nom_com, indication, dosage_initial, dosage_adapte, mode_emploi,
			voie_administration, qsp, excipient, preparation_date, peremption_date, statut,
			nombre_gellules, comprime_ecrase, erreur, num_lot, erreur_description,
			actions_entreprises, consequences, erreur_cause, erreur_nature, erreur_evitabilite, date_survenue
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24
		)
		RETURNING id, created_at, updated_at
	`,

	GetByID: `
		SELECT` + preparationColumns + `
		FROM medicine_preparations mp
		JOIN patients p ON p.id = mp.patient_id
		WHERE mp.id = $1
	`,

	/**
	 * Filtres optionnels: $1 = statut, $2 = patient_id
	 */
	List: `
		SELECT` + preparationColumns + `
		FROM medicine_preparations mp
		JOIN patients p ON p.id = mp.patient_id
		WHERE ($1::varchar IS NULL OR mp.statut = $1)
		  AND ($2::bigint IS NULL OR mp.patient_id = $2)
		ORDER BY mp.created_at DESC, mp.id DESC
	`,

	ListByPatient: `
		SELECT` + preparationColumns + `
		FROM medicine_preparations mp
		JOIN patients p ON p.id = mp.patient_id
		WHERE mp.patient_id = $1
		ORDER BY mp.id
	`,

	/**
	 * Verrouille le patient le temps de l'insertion du lot
	 */
	PatientSummary: `
		SELECT id, name, age, gender, weight, grade, service
		FROM patients
		WHERE id = $1
		FOR SHARE
	`,

	/**
	 * Changement conditionnel: $1 = id, $2 = statut lu, $3 = nouveau statut,
	 * $4 = numero_gellule, $5 = volume_exipient
	 */
	UpdateStatut: `
		UPDATE medicine_preparations
		SET statut = $3,
		    numero_gellule = COALESCE($4, numero_gellule),
		    volume_exipient = COALESCE($5, volume_exipient),
		    updated_at = NOW()
		WHERE id = $1 AND statut = $2
		RETURNING id
	`,

	/**
	 * Réécrit les champs cliniques et EM, statut et terminaison inchangés
	 * Paramètres: $1 = id, $2 = patient_id, $3..$24 dans l'ordre de UpdateArgs
	 */
	Update: `
		UPDATE medicine_preparations
		SET dci = $3, nom_com = $4, indication = $5, dosage_initial = $6, dosage_adapte = $7,
		    mode_emploi = $8, voie_administration = $9, qsp = $10, excipient = $11,
		    preparation_date = $12, peremption_date = $13, nombre_gellules = $14, comprime_ecrase = $15,
		    erreur = $16, num_lot = $17, erreur_description = $18, actions_entreprises = $19,
		    consequences = $20, erreur_cause = $21, erreur_nature = $22, erreur_evitabilite = $23,
		    date_survenue = $24, updated_at = NOW()
		WHERE id = $1 AND patient_id = $2
		RETURNING id
	`,

	Delete: `DELETE FROM medicine_preparations WHERE id = $1 RETURNING patient_id`,

	DeleteByPatient: `DELETE FROM medicine_preparations WHERE patient_id = $1 RETURNING id`,

	CountByStatut: `
		SELECT statut, COUNT(*)
		FROM medicine_preparations
		GROUP BY statut
	`,
}
