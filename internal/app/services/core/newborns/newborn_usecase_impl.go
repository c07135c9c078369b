package newborns

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"neohearts-service/internal/app/config"
	"neohearts-service/internal/app/contracts"
	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/dto/responses"
	"neohearts-service/internal/pkg/exceptions"
	"neohearts-service/internal/pkg/fhir_dto"
	"neohearts-service/internal/pkg/screening"
	"neohearts-service/internal/pkg/utils"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type newbornUsecase struct {
	BundleFhirClient  contracts.BundleFhirClient
	PatientFhirClient contracts.PatientFhirClient
	ResourceWriter    contracts.ResourceWriter
	BundleCache       contracts.BundleCache
	LockerService     contracts.LockerService
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

func NewNewbornUsecase(
	bundleFhirClient contracts.BundleFhirClient,
	patientFhirClient contracts.PatientFhirClient,
	resourceWriter contracts.ResourceWriter,
	bundleCache contracts.BundleCache,
	lockerService contracts.LockerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.NewbornUsecase {
	return &newbornUsecase{
		BundleFhirClient:  bundleFhirClient,
		PatientFhirClient: patientFhirClient,
		ResourceWriter:    resourceWriter,
		BundleCache:       bundleCache,
		LockerService:     lockerService,
		InternalConfig:    internalConfig,
		Log:               logger,
	}
}

func (uc *newbornUsecase) CreateNewborn(ctx context.Context, record *screening.Record) (*contracts.CreateNewbornOutput, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("newbornUsecase.CreateNewborn called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	bundle, err := screening.Build(record)
	if err != nil {
		uc.Log.Error("newbornUsecase.CreateNewborn error building bundle",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	result, err := uc.BundleFhirClient.PostTransactionBundle(ctx, bundle)
	if err != nil {
		uc.Log.Error("newbornUsecase.CreateNewborn error calling BundleFhirClient.PostTransactionBundle",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	patientID := patientIDFromTransactionResponse(bundle, result)
	if patientID == "" {
		err := exceptions.ErrCreateFHIRResource(errors.New("transaction response has no Patient location"), constvars.ResourcePatient)
		uc.Log.Error("newbornUsecase.CreateNewborn error reading patient id",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingEntryCountKey, len(result.Entry)),
			zap.Error(err),
		)
		return nil, err
	}

	utils.LogRecordEvent(ctx, uc.Log, "newborn_created",
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.Int(constvars.LoggingEntryCountKey, len(bundle.Entry)),
	)
	return &contracts.CreateNewbornOutput{
		PatientID: patientID,
		Bundle:    result,
	}, nil
}

// patientIDFromTransactionResponse reads the Patient id from the response
// entry at the same position as the Patient request entry. Stores that
// reorder the response are handled by scanning every location.
func patientIDFromTransactionResponse(request, response *fhir_dto.Bundle) string {
	if response == nil {
		return ""
	}
	for i, entry := range request.Entry {
		if entry.Resource == nil || entry.Resource.Patient == nil || i >= len(response.Entry) {
			continue
		}
		if resp := response.Entry[i].Response; resp != nil {
			if id := utils.ResourceIDFromLocation(resp.Location, constvars.ResourcePatient); id != "" {
				return id
			}
		}
	}
	for _, entry := range response.Entry {
		if entry.Response != nil {
			if id := utils.ResourceIDFromLocation(entry.Response.Location, constvars.ResourcePatient); id != "" {
				return id
			}
		}
		if entry.Resource != nil && entry.Resource.Patient != nil && entry.Resource.Patient.ID != "" {
			return entry.Resource.Patient.ID
		}
	}
	return ""
}

func (uc *newbornUsecase) GetNewborn(ctx context.Context, patientID string) (*screening.Record, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("newbornUsecase.GetNewborn called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	bundle, hit, err := uc.BundleCache.GetBundle(ctx, patientID)
	if err != nil {
		// The store is the source of truth; a cache outage only costs a fetch.
		uc.Log.Warn("newbornUsecase.GetNewborn error calling BundleCache.GetBundle",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	if !hit {
		bundle, err = uc.fetchPatientBundle(ctx, patientID)
		if err != nil {
			return nil, err
		}
		if err := uc.BundleCache.SetBundle(ctx, patientID, bundle); err != nil {
			uc.Log.Warn("newbornUsecase.GetNewborn error calling BundleCache.SetBundle",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}

	record := screening.Map(bundle)
	uc.Log.Info("newbornUsecase.GetNewborn succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.Bool(constvars.LoggingCacheHitKey, hit),
	)
	return &record, nil
}

func (uc *newbornUsecase) fetchPatientBundle(ctx context.Context, patientID string) (*fhir_dto.Bundle, error) {
	requestID := utils.GetRequestID(ctx)

	bundle, err := uc.PatientFhirClient.FindPatientBundle(ctx, patientID)
	if err != nil {
		uc.Log.Error("newbornUsecase.fetchPatientBundle error calling PatientFhirClient.FindPatientBundle",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if len(bundle.Entry) == 0 || bundle.PatientEntry() == nil {
		err := exceptions.ErrPatientEntryMissing(fmt.Errorf("no Patient with id %s", patientID))
		uc.Log.Error("newbornUsecase.fetchPatientBundle patient not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Int(constvars.LoggingEntryCountKey, len(bundle.Entry)),
		)
		return nil, err
	}
	return bundle, nil
}

func (uc *newbornUsecase) UpdateNewborn(ctx context.Context, patientID string, record *screening.Record) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("newbornUsecase.UpdateNewborn called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	if err := screening.ValidateRecord(record); err != nil {
		return err
	}

	unlock, err := uc.lock(ctx, patientID)
	if err != nil {
		return err
	}
	defer unlock()
	defer uc.invalidate(ctx, patientID)

	bundle, err := uc.fetchPatientBundle(ctx, patientID)
	if err != nil {
		return err
	}

	bundle, err = screening.Update(bundle, record)
	if err != nil {
		return err
	}

	if err := uc.putResources(ctx, bundle); err != nil {
		return err
	}

	utils.LogRecordEvent(ctx, uc.Log, "newborn_updated",
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.Int(constvars.LoggingEntryCountKey, len(bundle.Entry)),
	)
	return nil
}

// putResources overwrites every stored resource of bundle concurrently. A
// failed write never cancels the others; all failures are reported together.
func (uc *newbornUsecase) putResources(ctx context.Context, bundle *fhir_dto.Bundle) error {
	requestID := utils.GetRequestID(ctx)
	writeTimeout := uc.InternalConfig.FHIR.WriteTimeout

	var (
		mu        sync.Mutex
		failures  []exceptions.ResourceFailure
		attempted int
		group     errgroup.Group
	)
	if limit := uc.InternalConfig.FHIR.MaxConcurrentWrites; limit > 0 {
		group.SetLimit(limit)
	}

	for _, entry := range bundle.Entry {
		resource := entry.Resource
		if resource == nil || resource.ID() == "" {
			continue
		}
		attempted++

		group.Go(func() error {
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			defer cancel()

			if err := uc.ResourceWriter.PutResource(writeCtx, resource); err != nil {
				uc.Log.Error("newbornUsecase.putResources error calling ResourceWriter.PutResource",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingResourceTypeKey, resource.ResourceType()),
					zap.String(constvars.LoggingResourceIDKey, resource.ID()),
					zap.Error(err),
				)
				mu.Lock()
				failures = append(failures, exceptions.NewResourceFailure(resource.ResourceType(), resource.ID(), err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = group.Wait()

	if len(failures) == 0 {
		return nil
	}

	slices.SortFunc(failures, func(a, b exceptions.ResourceFailure) int {
		return cmp.Or(cmp.Compare(a.ResourceType, b.ResourceType), cmp.Compare(a.ID, b.ID))
	})
	uc.Log.Error("newbornUsecase.putResources partial update",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAttemptedCountKey, attempted),
		zap.Int(constvars.LoggingFailureCountKey, len(failures)),
	)
	return &exceptions.PartialUpdateError{
		Attempted: attempted,
		Failures:  failures,
	}
}

func (uc *newbornUsecase) DeleteNewborn(ctx context.Context, patientID string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("newbornUsecase.DeleteNewborn called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	unlock, err := uc.lock(ctx, patientID)
	if err != nil {
		return err
	}
	defer unlock()
	defer uc.invalidate(ctx, patientID)

	patient, err := uc.PatientFhirClient.FindPatientByID(ctx, patientID)
	if err != nil {
		uc.Log.Error("newbornUsecase.DeleteNewborn error calling PatientFhirClient.FindPatientByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	inactive := false
	patient.Active = &inactive
	if _, err := uc.PatientFhirClient.UpdatePatient(ctx, patient); err != nil {
		uc.Log.Error("newbornUsecase.DeleteNewborn error calling PatientFhirClient.UpdatePatient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	utils.LogRecordEvent(ctx, uc.Log, "newborn_deactivated",
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return nil
}

func (uc *newbornUsecase) ListNewborns(ctx context.Context) ([]responses.NewbornSummary, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("newbornUsecase.ListNewborns called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	patients, err := uc.PatientFhirClient.FindActivePatients(ctx)
	if err != nil {
		uc.Log.Error("newbornUsecase.ListNewborns error calling PatientFhirClient.FindActivePatients",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	summaries := make([]responses.NewbornSummary, 0, len(patients))
	for i := range patients {
		summaries = append(summaries, summarize(&patients[i]))
	}

	uc.Log.Info("newbornUsecase.ListNewborns succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPatientCountKey, len(summaries)),
	)
	return summaries, nil
}

func summarize(patient *fhir_dto.Patient) responses.NewbornSummary {
	summary := responses.NewbornSummary{
		ID:        patient.ID,
		BirthDate: patient.BirthDate,
		Gender:    patient.Gender,
	}
	if len(patient.Name) > 0 {
		parts := append([]string{}, patient.Name[0].Given...)
		parts = append(parts, patient.Name[0].Family)
		summary.Name = strings.TrimSpace(strings.Join(parts, " "))
	}
	if patient.ManagingOrganization != nil {
		summary.OrganizationID = utils.LastPathSegment(patient.ManagingOrganization.Reference)
	}
	return summary
}

func (uc *newbornUsecase) BuildBundle(ctx context.Context, record *screening.Record) (*fhir_dto.Bundle, error) {
	var bundle *fhir_dto.Bundle
	err := utils.LogOperation(ctx, uc.Log, "newborn_bundle_build", func() error {
		built, err := screening.Build(record)
		bundle = built
		return err
	})
	if err != nil {
		return nil, err
	}
	return bundle, nil
}

// lock takes the per-patient write lock and returns its release func.
func (uc *newbornUsecase) lock(ctx context.Context, patientID string) (func(), error) {
	requestID := utils.GetRequestID(ctx)
	key := fmt.Sprintf(constvars.LockKeyNewbornFormat, patientID)
	ttl := uc.InternalConfig.Cache.LockTTL

	acquired, token, err := uc.LockerService.TryLock(ctx, key, ttl)
	if err != nil {
		uc.Log.Error("newbornUsecase.lock error calling LockerService.TryLock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrRecordLocked(nil, patientID)
	}

	return func() {
		if err := uc.LockerService.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
			uc.Log.Warn("newbornUsecase.lock error calling LockerService.Unlock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}, nil
}

func (uc *newbornUsecase) invalidate(ctx context.Context, patientID string) {
	if err := uc.BundleCache.DeleteBundle(context.WithoutCancel(ctx), patientID); err != nil {
		uc.Log.Warn("newbornUsecase.invalidate error calling BundleCache.DeleteBundle",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
	}
}
