package clinical

import (
	"context"
	"testing"
)

// =========== Mocks ===========

// memStore keeps ClinicalHistory records in memory. One concrete record type
// is enough to cover the generic operations shared by all six.
type memStore struct {
	store  map[int64]*ClinicalHistory
	owners map[int64]int64 // patient id -> user id
	nextID int64
}

func newMemStore() *memStore {
	return &memStore{
		store:  make(map[int64]*ClinicalHistory),
		owners: make(map[int64]int64),
		nextID: 1,
	}
}

func (m *memStore) Create(_ context.Context, patientID int64, rec *ClinicalHistory) error {
	rec.ID = m.nextID
	rec.PatientID = patientID
	m.nextID++
	m.store[rec.ID] = rec
	return nil
}

func (m *memStore) ListByPatient(_ context.Context, patientID int64, limit, offset int) ([]*ClinicalHistory, error) {
	all, _ := m.AllByPatient(nil, patientID)
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *memStore) AllByPatient(_ context.Context, patientID int64) ([]*ClinicalHistory, error) {
	recs := []*ClinicalHistory{}
	for id := int64(1); id < m.nextID; id++ {
		if rec, ok := m.store[id]; ok && rec.PatientID == patientID {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func (m *memStore) visible(rec *ClinicalHistory, userID int64) bool {
	return rec != nil && m.owners[rec.PatientID] == userID
}

func (m *memStore) Update(_ context.Context, id, userID int64, in *ClinicalHistory) (*ClinicalHistory, error) {
	rec := m.store[id]
	if !m.visible(rec, userID) {
		return nil, nil
	}
	if in.MainComplaint != nil {
		rec.MainComplaint = in.MainComplaint
	}
	if in.DiseaseHistory != nil {
		rec.DiseaseHistory = in.DiseaseHistory
	}
	return rec, nil
}

func (m *memStore) Delete(_ context.Context, id, userID int64) (*ClinicalHistory, error) {
	rec := m.store[id]
	if !m.visible(rec, userID) {
		return nil, nil
	}
	delete(m.store, id)
	return rec, nil
}

// mapGate resolves patient visibility from the same owner map.
type mapGate struct {
	owners map[int64]int64
}

func (g *mapGate) Visible(_ context.Context, patientID, userID int64) (bool, error) {
	owner, ok := g.owners[patientID]
	return ok && owner == userID, nil
}

func newTestStore() (*memStore, *mapGate) {
	st := newMemStore()
	st.owners[1] = 10
	st.owners[2] = 20
	return st, &mapGate{owners: st.owners}
}

func str(s string) *string { return &s }

// =========== CreateRecord / ListRecords ===========

func TestCreateRecord(t *testing.T) {
	st, g := newTestStore()
	rec := &ClinicalHistory{MainComplaint: str("knee pain")}
	if err := CreateRecord(context.Background(), g, st, 1, 10, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID == 0 || rec.PatientID != 1 {
		t.Errorf("record not populated: %+v", rec)
	}
}

func TestCreateRecord_ForeignPatient(t *testing.T) {
	st, g := newTestStore()
	rec := &ClinicalHistory{MainComplaint: str("knee pain")}
	err := CreateRecord(context.Background(), g, st, 2, 10, rec)
	if err != ErrPatientNotFound {
		t.Errorf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestCreateRecord_UnknownPatient(t *testing.T) {
	st, g := newTestStore()
	err := CreateRecord(context.Background(), g, st, 99, 10, &ClinicalHistory{})
	if err != ErrPatientNotFound {
		t.Errorf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestListRecords_Pagination(t *testing.T) {
	st, g := newTestStore()
	for i := 0; i < 5; i++ {
		if err := CreateRecord(context.Background(), g, st, 1, 10, &ClinicalHistory{}); err != nil {
			t.Fatalf("seed record: %v", err)
		}
	}

	recs, err := ListRecords(context.Background(), g, st, 1, 10, 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].ID != 3 {
		t.Errorf("expected record 3 first, got %d", recs[0].ID)
	}
}

func TestListRecords_ForeignPatient(t *testing.T) {
	st, g := newTestStore()
	if _, err := ListRecords(context.Background(), g, st, 2, 10, 10, 0); err != ErrPatientNotFound {
		t.Errorf("expected ErrPatientNotFound, got %v", err)
	}
}

// =========== RecordsForPatient ===========

func TestRecordsForPatient(t *testing.T) {
	st, g := newTestStore()
	svc := NewService(g, st,
		newEmptyStore[ClinicalExamination](),
		newEmptyStore[ComplementaryExam](),
		newEmptyStore[PhysiotherapyDiagnosis](),
		newEmptyStore[Prognosis](),
		newEmptyStore[TreatmentPlan]())

	if err := CreateRecord(context.Background(), g, st, 1, 10, &ClinicalHistory{}); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	recs, err := svc.RecordsForPatient(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs.Histories) != 1 {
		t.Errorf("expected 1 history, got %d", len(recs.Histories))
	}
	if recs.Examinations == nil || len(recs.Examinations) != 0 {
		t.Errorf("expected empty examination list, got %v", recs.Examinations)
	}
}

// emptyStore satisfies Store[T] with no data, for record types a test does
// not exercise.
type emptyStore[T any] struct{}

func newEmptyStore[T any]() *emptyStore[T] { return &emptyStore[T]{} }

func (e *emptyStore[T]) Create(_ context.Context, _ int64, _ *T) error { return nil }
func (e *emptyStore[T]) ListByPatient(_ context.Context, _ int64, _, _ int) ([]*T, error) {
	return []*T{}, nil
}
func (e *emptyStore[T]) AllByPatient(_ context.Context, _ int64) ([]*T, error) { return []*T{}, nil }
func (e *emptyStore[T]) Update(_ context.Context, _, _ int64, _ *T) (*T, error) {
	return nil, nil
}
func (e *emptyStore[T]) Delete(_ context.Context, _, _ int64) (*T, error) { return nil, nil }
