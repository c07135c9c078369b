package newborns

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"neohearts-service/internal/app/config"
	"neohearts-service/internal/app/contracts"
	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/exceptions"
	"neohearts-service/internal/pkg/fhir_dto"
	"neohearts-service/internal/pkg/screening"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	bundles  *MockBundleFhirClient
	patients *MockPatientFhirClient
	writer   *MockResourceWriter
	cache    *MockBundleCache
	locker   *MockLockerService
	usecase  contracts.NewbornUsecase
}

func newFixture() *fixture {
	f := &fixture{
		bundles:  new(MockBundleFhirClient),
		patients: new(MockPatientFhirClient),
		writer:   new(MockResourceWriter),
		cache:    new(MockBundleCache),
		locker:   new(MockLockerService),
	}
	cfg := &config.InternalConfig{
		FHIR:  config.AppFHIR{WriteTimeout: 5 * time.Second, MaxConcurrentWrites: 4},
		Cache: config.AppCache{LockTTL: 30 * time.Second},
	}
	f.usecase = NewNewbornUsecase(f.bundles, f.patients, f.writer, f.cache, f.locker, cfg, zap.NewNop())
	return f
}

func (f *fixture) grantLock() {
	f.locker.On("TryLock", mock.Anything, mock.Anything, 30*time.Second).Return(true, "token", nil)
	f.locker.On("Unlock", mock.Anything, mock.Anything, "token").Return(nil)
}

func sampleRecord() *screening.Record {
	return &screening.Record{
		FirstName:      "Ana",
		LastName:       "Santos",
		Sex:            "female",
		DOB:            "2024-01-01",
		Age:            36,
		OrganizationID: "org-1",
		HR:             140,
		RR:             45,
		ModeOfDelivery: "LSCS",
		Tone:           "normal",
	}
}

// storedBundle is a searchset as the store returns it: every resource has
// a server id.
func storedBundle(t *testing.T) *fhir_dto.Bundle {
	t.Helper()
	bundle, err := screening.Build(sampleRecord())
	require.NoError(t, err)

	bundle.Type = constvars.FhirBundleTypeSearchset
	for i := range bundle.Entry {
		entry := &bundle.Entry[i]
		entry.Request = nil
		switch {
		case entry.Resource.Patient != nil:
			entry.Resource.Patient.ID = "p-1"
		case entry.Resource.Observation != nil:
			entry.Resource.Observation.ID = fmt.Sprintf("o-%d", i)
		}
	}
	return bundle
}

func TestCreateNewborn(t *testing.T) {
	ctx := context.Background()

	t.Run("Reads the patient id from the response location", func(t *testing.T) {
		f := newFixture()
		f.bundles.On("PostTransactionBundle", ctx, mock.AnythingOfType("*fhir_dto.Bundle")).Return(&fhir_dto.Bundle{
			ResourceType: constvars.ResourceBundle,
			Type:         "transaction-response",
			Entry: []fhir_dto.BundleEntry{
				{Response: &fhir_dto.BundleResponse{Status: "201 Created", Location: "Patient/123/_history/1"}},
				{Response: &fhir_dto.BundleResponse{Status: "201 Created", Location: "Observation/9/_history/1"}},
			},
		}, nil)

		output, err := f.usecase.CreateNewborn(ctx, sampleRecord())
		require.NoError(t, err)
		assert.Equal(t, "123", output.PatientID)

		sent := f.bundles.Calls[0].Arguments.Get(1).(*fhir_dto.Bundle)
		assert.Equal(t, constvars.FhirBundleTypeTransaction, sent.Type)
		assert.NotNil(t, sent.PatientEntry())
	})

	t.Run("Reordered response is scanned", func(t *testing.T) {
		f := newFixture()
		f.bundles.On("PostTransactionBundle", ctx, mock.Anything).Return(&fhir_dto.Bundle{
			Entry: []fhir_dto.BundleEntry{
				{Response: &fhir_dto.BundleResponse{Location: "Observation/9/_history/1"}},
				{Response: &fhir_dto.BundleResponse{Location: "http://store/fhir/Patient/456/_history/1"}},
			},
		}, nil)

		output, err := f.usecase.CreateNewborn(ctx, sampleRecord())
		require.NoError(t, err)
		assert.Equal(t, "456", output.PatientID)
	})

	t.Run("Invalid record never reaches the store", func(t *testing.T) {
		f := newFixture()
		record := sampleRecord()
		record.DOB = ""

		_, err := f.usecase.CreateNewborn(ctx, record)

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
		f.bundles.AssertNotCalled(t, "PostTransactionBundle", mock.Anything, mock.Anything)
	})

	t.Run("Upstream error is returned untouched", func(t *testing.T) {
		f := newFixture()
		upstream := exceptions.ErrFHIRUpstream(http.StatusUnprocessableEntity, []byte(`{"resourceType":"OperationOutcome"}`), constvars.MIMEApplicationFHIRJSON, constvars.ResourceBundle, "")
		f.bundles.On("PostTransactionBundle", ctx, mock.Anything).Return(nil, upstream)

		_, err := f.usecase.CreateNewborn(ctx, sampleRecord())
		assert.Same(t, upstream, err)
	})

	t.Run("Missing location", func(t *testing.T) {
		f := newFixture()
		f.bundles.On("PostTransactionBundle", ctx, mock.Anything).Return(&fhir_dto.Bundle{}, nil)

		_, err := f.usecase.CreateNewborn(ctx, sampleRecord())

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusInternalServerError, customErr.StatusCode)
	})
}

func TestGetNewborn(t *testing.T) {
	ctx := context.Background()

	t.Run("Miss fetches and fills the cache", func(t *testing.T) {
		f := newFixture()
		bundle := storedBundle(t)
		f.cache.On("GetBundle", ctx, "p-1").Return(nil, false, nil)
		f.patients.On("FindPatientBundle", ctx, "p-1").Return(bundle, nil)
		f.cache.On("SetBundle", ctx, "p-1", bundle).Return(nil)

		record, err := f.usecase.GetNewborn(ctx, "p-1")
		require.NoError(t, err)
		assert.Equal(t, "p-1", record.ID)
		assert.Equal(t, 140, record.HR)
		assert.Equal(t, "Caesarean section", record.ModeOfDelivery)
		f.cache.AssertExpectations(t)
	})

	t.Run("Hit skips the store", func(t *testing.T) {
		f := newFixture()
		f.cache.On("GetBundle", ctx, "p-1").Return(storedBundle(t), true, nil)

		record, err := f.usecase.GetNewborn(ctx, "p-1")
		require.NoError(t, err)
		assert.Equal(t, "Ana", record.FirstName)
		f.patients.AssertNotCalled(t, "FindPatientBundle", mock.Anything, mock.Anything)
		f.cache.AssertNotCalled(t, "SetBundle", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Cache outage falls back to the store", func(t *testing.T) {
		f := newFixture()
		bundle := storedBundle(t)
		f.cache.On("GetBundle", ctx, "p-1").Return(nil, false, errors.New("connection refused"))
		f.patients.On("FindPatientBundle", ctx, "p-1").Return(bundle, nil)
		f.cache.On("SetBundle", ctx, "p-1", bundle).Return(errors.New("connection refused"))

		record, err := f.usecase.GetNewborn(ctx, "p-1")
		require.NoError(t, err)
		assert.Equal(t, 45, record.RR)
	})

	t.Run("Empty searchset is not found", func(t *testing.T) {
		f := newFixture()
		f.cache.On("GetBundle", ctx, "p-9").Return(nil, false, nil)
		f.patients.On("FindPatientBundle", ctx, "p-9").Return(&fhir_dto.Bundle{ResourceType: constvars.ResourceBundle}, nil)

		_, err := f.usecase.GetNewborn(ctx, "p-9")

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
		f.cache.AssertNotCalled(t, "SetBundle", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdateNewborn(t *testing.T) {
	ctx := context.Background()

	t.Run("Writes every stored resource", func(t *testing.T) {
		f := newFixture()
		f.grantLock()
		bundle := storedBundle(t)
		f.patients.On("FindPatientBundle", ctx, "p-1").Return(bundle, nil)
		f.writer.On("PutResource", mock.Anything, mock.Anything).Return(nil)
		f.cache.On("DeleteBundle", mock.Anything, "p-1").Return(nil)

		changed := sampleRecord()
		changed.HR = 152

		require.NoError(t, f.usecase.UpdateNewborn(ctx, "p-1", changed))
		f.writer.AssertNumberOfCalls(t, "PutResource", len(bundle.Entry))
		f.cache.AssertCalled(t, "DeleteBundle", mock.Anything, "p-1")
		f.locker.AssertCalled(t, "Unlock", mock.Anything, "newborn:lock:p-1", "token")

		var written *fhir_dto.Observation
		for _, call := range f.writer.Calls {
			resource := call.Arguments.Get(1).(*fhir_dto.Resource)
			if observation := resource.Observation; observation != nil && observation.Code.PrimaryCode() == "40443-4" {
				written = observation
			}
		}
		require.NotNil(t, written)
		assert.Equal(t, float64(152), written.ValueQuantity.Value)
	})

	t.Run("Entries without id are not written", func(t *testing.T) {
		f := newFixture()
		f.grantLock()
		bundle := storedBundle(t)
		bundle.Entry[1].Resource.Observation.ID = ""
		f.patients.On("FindPatientBundle", ctx, "p-1").Return(bundle, nil)
		f.writer.On("PutResource", mock.Anything, mock.Anything).Return(nil)
		f.cache.On("DeleteBundle", mock.Anything, "p-1").Return(nil)

		require.NoError(t, f.usecase.UpdateNewborn(ctx, "p-1", sampleRecord()))
		f.writer.AssertNumberOfCalls(t, "PutResource", len(bundle.Entry)-1)
	})

	t.Run("Failures are aggregated and siblings keep running", func(t *testing.T) {
		f := newFixture()
		f.grantLock()
		bundle := storedBundle(t)
		f.patients.On("FindPatientBundle", ctx, "p-1").Return(bundle, nil)
		f.cache.On("DeleteBundle", mock.Anything, "p-1").Return(nil)

		failing := func(id string) interface{} {
			return mock.MatchedBy(func(r *fhir_dto.Resource) bool { return r.ID() == id })
		}
		conflict := exceptions.ErrFHIRUpstream(http.StatusConflict, []byte(`{}`), constvars.MIMEApplicationFHIRJSON, constvars.ResourceObservation, "version conflict")
		f.writer.On("PutResource", mock.Anything, failing("o-2")).Return(conflict)
		f.writer.On("PutResource", mock.Anything, failing("p-1")).Return(errors.New("timeout"))

		var succeeded atomic.Int32
		f.writer.On("PutResource", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			writeCtx := args.Get(0).(context.Context)
			_, hasDeadline := writeCtx.Deadline()
			assert.True(t, hasDeadline)
			time.Sleep(5 * time.Millisecond)
			assert.NoError(t, writeCtx.Err(), "a sibling failure must not cancel other writes")
			succeeded.Add(1)
		}).Return(nil)

		err := f.usecase.UpdateNewborn(ctx, "p-1", sampleRecord())

		var partial *exceptions.PartialUpdateError
		require.ErrorAs(t, err, &partial)
		assert.Equal(t, len(bundle.Entry), partial.Attempted)
		require.Len(t, partial.Failures, 2)
		assert.Equal(t, constvars.ResourceObservation, partial.Failures[0].ResourceType)
		assert.Equal(t, "o-2", partial.Failures[0].ID)
		assert.Equal(t, http.StatusConflict, partial.Failures[0].StatusCode)
		assert.Equal(t, constvars.ResourcePatient, partial.Failures[1].ResourceType)
		assert.Equal(t, int32(len(bundle.Entry)-2), succeeded.Load())
		assert.ErrorIs(t, err, conflict)

		f.cache.AssertCalled(t, "DeleteBundle", mock.Anything, "p-1")
	})

	t.Run("Locked record", func(t *testing.T) {
		f := newFixture()
		f.locker.On("TryLock", mock.Anything, "newborn:lock:p-1", mock.Anything).Return(false, "", nil)

		err := f.usecase.UpdateNewborn(ctx, "p-1", sampleRecord())

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
		f.patients.AssertNotCalled(t, "FindPatientBundle", mock.Anything, mock.Anything)
	})

	t.Run("Unknown patient", func(t *testing.T) {
		f := newFixture()
		f.grantLock()
		f.patients.On("FindPatientBundle", ctx, "p-9").Return(&fhir_dto.Bundle{}, nil)
		f.cache.On("DeleteBundle", mock.Anything, "p-9").Return(nil)

		err := f.usecase.UpdateNewborn(ctx, "p-9", sampleRecord())

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
		f.writer.AssertNotCalled(t, "PutResource", mock.Anything, mock.Anything)
	})

	t.Run("Invalid record", func(t *testing.T) {
		f := newFixture()
		record := sampleRecord()
		record.Sex = "boy"

		err := f.usecase.UpdateNewborn(ctx, "p-1", record)

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
		f.locker.AssertNotCalled(t, "TryLock", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteNewborn(t *testing.T) {
	ctx := context.Background()

	t.Run("Deactivates the patient", func(t *testing.T) {
		f := newFixture()
		f.grantLock()
		active := true
		patient := &fhir_dto.Patient{ResourceType: constvars.ResourcePatient, ID: "p-1", Active: &active}
		f.patients.On("FindPatientByID", ctx, "p-1").Return(patient, nil)
		f.patients.On("UpdatePatient", ctx, patient).Return(patient, nil)
		f.cache.On("DeleteBundle", mock.Anything, "p-1").Return(nil)

		require.NoError(t, f.usecase.DeleteNewborn(ctx, "p-1"))
		assert.False(t, patient.IsActive())
		f.cache.AssertExpectations(t)
	})

	t.Run("Upstream not found", func(t *testing.T) {
		f := newFixture()
		f.grantLock()
		notFound := exceptions.ErrFHIRUpstream(http.StatusNotFound, nil, constvars.MIMEApplicationFHIRJSON, constvars.ResourcePatient, "")
		f.patients.On("FindPatientByID", ctx, "p-9").Return(nil, notFound)
		f.cache.On("DeleteBundle", mock.Anything, "p-9").Return(nil)

		err := f.usecase.DeleteNewborn(ctx, "p-9")
		assert.Same(t, notFound, err)
		f.patients.AssertNotCalled(t, "UpdatePatient", mock.Anything, mock.Anything)
	})
}

func TestListNewborns(t *testing.T) {
	f := newFixture()
	f.patients.On("FindActivePatients", mock.Anything).Return([]fhir_dto.Patient{
		{
			ID:                   "p-1",
			Name:                 []fhir_dto.HumanName{{Family: "Santos", Given: []string{"Ana"}}},
			Gender:               "female",
			BirthDate:            "2024-01-01",
			ManagingOrganization: &fhir_dto.Reference{Reference: "Organization/org-1"},
		},
		{ID: "p-2", Gender: "male"},
	}, nil)

	summaries, err := f.usecase.ListNewborns(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Ana Santos", summaries[0].Name)
	assert.Equal(t, "org-1", summaries[0].OrganizationID)
	assert.Empty(t, summaries[1].Name)
}

func TestBuildBundle(t *testing.T) {
	f := newFixture()

	bundle, err := f.usecase.BuildBundle(context.Background(), sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, constvars.FhirBundleTypeTransaction, bundle.Type)
	assert.Len(t, bundle.Entry, len(screening.DefaultTable.Entries())+1)
	f.bundles.AssertNotCalled(t, "PostTransactionBundle", mock.Anything, mock.Anything)
}
