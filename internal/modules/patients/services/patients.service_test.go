package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"pharma-prep-core/internal/modules/patients/dto"
	prepdto "pharma-prep-core/internal/modules/preparations/dto"
	apperrors "pharma-prep-core/internal/shared/errors"
)

type memoryRepo struct {
	patients map[int64]dto.Patient
	preps    map[int64][]prepdto.MedicinePreparation
	nextID   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{patients: map[int64]dto.Patient{}, preps: map[int64][]prepdto.MedicinePreparation{}}
}

func (m *memoryRepo) Create(_ context.Context, p *dto.Patient, preps []*prepdto.MedicinePreparation) (*dto.Patient, []prepdto.MedicinePreparation, error) {
	m.nextID++
	created := *p
	created.ID = m.nextID
	m.patients[created.ID] = created

	rows := []prepdto.MedicinePreparation{}
	for i, prep := range preps {
		row := *prep
		row.ID = created.ID*100 + int64(i)
		row.PatientID = created.ID
		row.Patient = created.Summary()
		rows = append(rows, row)
	}
	m.preps[created.ID] = rows
	return &created, rows, nil
}

func (m *memoryRepo) GetByID(_ context.Context, id int64) (*dto.Patient, error) {
	if p, ok := m.patients[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *memoryRepo) ListPreparations(_ context.Context, id int64) ([]prepdto.MedicinePreparation, error) {
	return m.preps[id], nil
}

func (m *memoryRepo) List(context.Context) ([]dto.Patient, error) {
	var out []dto.Patient
	for _, p := range m.patients {
		out = append(out, p)
	}
	return out, nil
}

func (m *memoryRepo) Update(_ context.Context, p *dto.Patient) (*dto.Patient, error) {
	if _, ok := m.patients[p.ID]; !ok {
		return nil, nil
	}
	m.patients[p.ID] = *p
	return p, nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) ([]int64, bool, error) {
	if _, ok := m.patients[id]; !ok {
		return nil, false, nil
	}
	ids := []int64{}
	for _, prep := range m.preps[id] {
		ids = append(ids, prep.ID)
	}
	delete(m.patients, id)
	delete(m.preps, id)
	return ids, true, nil
}

type recordingNotifier struct {
	created []prepdto.MedicinePreparation
	deleted []int64
}

func (n *recordingNotifier) NotifyCreated(_ context.Context, preps []prepdto.MedicinePreparation) {
	n.created = append(n.created, preps...)
}

func (n *recordingNotifier) NotifyDeleted(_ context.Context, _ int64, ids []int64) {
	n.deleted = append(n.deleted, ids...)
}

func newService() (*PatientsService, *memoryRepo, *recordingNotifier) {
	repo := newMemoryRepo()
	notifier := &recordingNotifier{}
	return NewPatientsService(repo, notifier, slog.New(slog.NewTextHandler(io.Discard, nil))), repo, notifier
}

func validRequest() dto.CreatePatientRequest {
	age, weight := 54, 72.5
	return dto.CreatePatientRequest{
		Name:        " Amina Diallo ",
		Age:         &age,
		Gender:      "F",
		Weight:      &weight,
		PhoneNumber: "0601020304",
		Grade:       "Civil",
	}
}

func TestCreatePatientWithNestedPreparations(t *testing.T) {
	svc, _, notifier := newService()
	qsp, mode := 30, 3

	req := validRequest()
	req.Preparations = []prepdto.PreparationInput{{Dci: "Hydrocortisone", Qsp: &qsp, ModeEmploi: &mode}}

	created, err := svc.CreatePatient(context.Background(), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "Amina Diallo" || created.Age != 54 {
		t.Fatalf("unexpected patient %+v", created.Patient)
	}
	if len(created.Preparations) != 1 || created.Preparations[0].PatientID != created.ID {
		t.Fatalf("nested preparation not attached: %+v", created.Preparations)
	}
	if *created.Preparations[0].NombreGellules != 90 || created.Preparations[0].Statut != prepdto.StatutAFaire {
		t.Fatalf("unexpected preparation %+v", created.Preparations[0])
	}
	if len(notifier.created) != 1 {
		t.Fatal("created preparations must be journaled")
	}
}

func TestCreatePatientRejectsInvalidNestedDate(t *testing.T) {
	svc, repo, _ := newService()
	bad := "14/02/2026"

	req := validRequest()
	req.Preparations = []prepdto.PreparationInput{{Dci: "A", PeremptionDate: &bad}}

	_, err := svc.CreatePatient(context.Background(), req)
	svcErr, ok := apperrors.As(err)
	if !ok || svcErr.Code != "INVALID_DATE" || svcErr.Details["champ"] != "preparations" {
		t.Fatalf("expected INVALID_DATE on preparations, got %v", err)
	}
	if len(repo.patients) != 0 {
		t.Fatal("patient must not be created")
	}
}

func TestListPatientsEmptyIsNotNil(t *testing.T) {
	svc, _, _ := newService()

	patients, err := svc.ListPatients(context.Background())
	if err != nil || patients == nil || len(patients) != 0 {
		t.Fatalf("expected empty list, got %v %v", patients, err)
	}
}

func TestGetPatientIncludesPreparations(t *testing.T) {
	svc, _, _ := newService()
	req := validRequest()
	req.Preparations = []prepdto.PreparationInput{{Dci: "A"}, {Dci: "B"}}
	created, _ := svc.CreatePatient(context.Background(), req)

	got, err := svc.GetPatient(context.Background(), created.ID)
	if err != nil || len(got.Preparations) != 2 {
		t.Fatalf("expected 2 preparations, got %v %v", got, err)
	}

	_, err = svc.GetPatient(context.Background(), 999)
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdatePatientMergesFields(t *testing.T) {
	svc, _, _ := newService()
	created, _ := svc.CreatePatient(context.Background(), validRequest())

	service := "Pédiatrie"
	weight := 70.0
	updated, err := svc.UpdatePatient(context.Background(), created.ID, dto.UpdatePatientRequest{Service: &service, Weight: &weight})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Amina Diallo" || updated.Weight != 70 || *updated.Service != "Pédiatrie" {
		t.Fatalf("unexpected merge %+v", updated)
	}

	_, err = svc.UpdatePatient(context.Background(), 999, dto.UpdatePatientRequest{})
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeletePatientCascadesAndJournals(t *testing.T) {
	svc, repo, notifier := newService()
	req := validRequest()
	req.Preparations = []prepdto.PreparationInput{{Dci: "A"}, {Dci: "B"}}
	created, _ := svc.CreatePatient(context.Background(), req)

	if err := svc.DeletePatient(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.preps[created.ID]) != 0 || len(notifier.deleted) != 2 {
		t.Fatalf("preparations must be removed and journaled, got %v", notifier.deleted)
	}

	err := svc.DeletePatient(context.Background(), created.ID)
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
