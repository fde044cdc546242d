package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"time"

	"github.com/AlibekovAA/seraas-authentication/internal/common/clock"
	"github.com/AlibekovAA/seraas-authentication/internal/common/constants"
	"github.com/AlibekovAA/seraas-authentication/internal/common/logger"
	"github.com/AlibekovAA/seraas-authentication/internal/observability/metrics"
	recorddomain "github.com/AlibekovAA/seraas-authentication/internal/record/domain"
	recordrepo "github.com/AlibekovAA/seraas-authentication/internal/record/repository"
	userdomain "github.com/AlibekovAA/seraas-authentication/internal/user/domain"
	userrepo "github.com/AlibekovAA/seraas-authentication/internal/user/repository"
)

// UserToucher confirms a user exists and marks it as used in one step.
type UserToucher interface {
	Touch(ctx context.Context, id userdomain.ID, at time.Time) (userdomain.User, error)
}

type RecordServiceDeps struct {
	Records recordrepo.Repository
	Users   UserToucher
	Clock   clock.Clock
	Log     *logger.Logger
}

type RecordServiceConfig struct {
	FlushSecretKey     string
	RetentionWindow    time.Duration
	AllowCrossUserLoad bool
}

type RecordService struct {
	records recordrepo.Repository
	users   UserToucher
	clock   clock.Clock
	log     *logger.Logger
	cfg     RecordServiceConfig
}

func NewRecordService(deps RecordServiceDeps, cfg RecordServiceConfig) *RecordService {
	c := deps.Clock
	if c == nil {
		c = clock.NewRealClock()
	}
	if cfg.RetentionWindow <= 0 {
		cfg.RetentionWindow = constants.RetentionWindow
	}
	return &RecordService{
		records: deps.Records,
		users:   deps.Users,
		clock:   c,
		log:     deps.Log,
		cfg:     cfg,
	}
}

type SendInput struct {
	FileName              string
	EmotionsAvailable     []string
	PeriodicQueryInterval *int
	Output                json.RawMessage
}

func (s *RecordService) Send(ctx context.Context, rawUserID string, in SendInput) (recorddomain.Summary, error) {
	userID, err := parseUserID(rawUserID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": rawUserID,
			"action":  "record_send_invalid_user_id",
		}).Warnf("record send rejected: %v", err)
		return recorddomain.Summary{}, err
	}

	if err := validateSendInput(in); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "record_send_validation_failed",
		}).Warnf("record send rejected: %v", err)
		return recorddomain.Summary{}, err
	}

	now := s.clock.Now()
	if err := s.touchUser(ctx, userdomain.ID(userID), now, "record_send"); err != nil {
		return recorddomain.Summary{}, err
	}

	emotions, interval := applyDefaults(in)
	created, err := s.records.Create(ctx, recorddomain.Record{
		UserID:                userdomain.ID(userID),
		FileName:              in.FileName,
		DateCreated:           now,
		EmotionsAvailable:     emotions,
		PeriodicQueryInterval: interval,
		Output:                in.Output,
	})
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "record_send_create_failed",
		}).Errorf("record send failed: %v", err)
		return recorddomain.Summary{}, newInternalError("DB_ERROR", "failed to store record", err)
	}

	metrics.RecordsCreated.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id":   userID,
		"record_id": string(created.ID),
		"file_name": created.FileName,
		"action":    "record_send_success",
	}).Info("record stored")

	return created.Summary(), nil
}

// List returns the ids of the user's records in insertion order.
func (s *RecordService) List(ctx context.Context, rawUserID string) ([]recorddomain.ID, error) {
	userID, err := parseUserID(rawUserID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": rawUserID,
			"action":  "record_list_invalid_user_id",
		}).Warnf("record list rejected: %v", err)
		return nil, err
	}

	if err := s.touchUser(ctx, userdomain.ID(userID), s.clock.Now(), "record_list"); err != nil {
		return nil, err
	}

	ids, err := s.records.ListIDsByUser(ctx, userdomain.ID(userID))
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "record_list_failed",
		}).Errorf("record list failed: %v", err)
		return nil, newInternalError("DB_ERROR", "failed to list records", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": userID,
		"count":   len(ids),
		"action":  "record_list_success",
	}).Debug("records listed")

	return ids, nil
}

// Load returns one record with its output. Records owned by another user are
// reported as missing unless cross-user loading is enabled.
func (s *RecordService) Load(ctx context.Context, rawUserID, rawRecordID string) (recorddomain.Record, error) {
	userID, err := parseUserID(rawUserID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": rawUserID,
			"action":  "record_load_invalid_user_id",
		}).Warnf("record load rejected: %v", err)
		return recorddomain.Record{}, err
	}

	recordID, err := parseRecordID(rawRecordID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id":   userID,
			"record_id": rawRecordID,
			"action":    "record_load_invalid_record_id",
		}).Warnf("record load rejected: %v", err)
		return recorddomain.Record{}, err
	}

	if err := s.touchUser(ctx, userdomain.ID(userID), s.clock.Now(), "record_load"); err != nil {
		return recorddomain.Record{}, err
	}

	record, err := s.records.FindByID(ctx, recorddomain.ID(recordID))
	if err != nil {
		if errors.Is(err, recordrepo.ErrRecordNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id":   userID,
				"record_id": recordID,
				"action":    "record_load_not_found",
			}).Warn("record load failed: not found")
			return recorddomain.Record{}, ErrRecordNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id":   userID,
			"record_id": recordID,
			"action":    "record_load_failed",
		}).Errorf("record load failed: %v", err)
		return recorddomain.Record{}, newInternalError("DB_ERROR", "failed to load record", err)
	}

	if !s.cfg.AllowCrossUserLoad && record.UserID != userdomain.ID(userID) {
		s.log.WithFields(ctx, logger.Fields{
			"user_id":   userID,
			"record_id": recordID,
			"action":    "record_load_foreign_owner",
		}).Warn("record load failed: owned by another user")
		return recorddomain.Record{}, ErrRecordNotFound
	}

	metrics.RecordsLoaded.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id":   userID,
		"record_id": recordID,
		"action":    "record_load_success",
	}).Info("record loaded")

	return record, nil
}

// Flush runs the retention sweep when secretKey matches the configured key.
// An unset key rejects every call.
func (s *RecordService) Flush(ctx context.Context, secretKey string) (int64, error) {
	expected := s.cfg.FlushSecretKey
	if expected == "" || subtle.ConstantTimeCompare([]byte(secretKey), []byte(expected)) != 1 {
		metrics.FlushRejected.Inc()
		s.log.WithFields(ctx, logger.Fields{
			"action": "flush_forbidden",
		}).Warn("flush rejected: secret key mismatch")
		return 0, ErrInvalidFlushKey
	}

	return s.Expire(ctx, "flush")
}

// Expire deletes every record created more than the retention window ago.
// It performs no authorization and is meant for trusted callers.
func (s *RecordService) Expire(ctx context.Context, trigger string) (int64, error) {
	cutoff := s.clock.Now().Add(-s.cfg.RetentionWindow)

	removed, err := s.records.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"trigger": trigger,
			"action":  "retention_sweep_failed",
		}).Errorf("retention sweep failed: %v", err)
		return 0, newInternalError("DB_ERROR", "failed to remove expired records", err)
	}

	metrics.RecordsExpired.WithLabelValues(trigger).Add(float64(removed))
	s.log.WithFields(ctx, logger.Fields{
		"trigger": trigger,
		"cutoff":  cutoff.Format(time.RFC3339),
		"removed": removed,
		"action":  "retention_sweep_success",
	}).Info("retention sweep finished")

	return removed, nil
}

func (s *RecordService) touchUser(ctx context.Context, id userdomain.ID, at time.Time, action string) error {
	_, err := s.users.Touch(ctx, id, at)
	if err == nil {
		return nil
	}
	if errors.Is(err, userrepo.ErrUserNotFound) {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(id),
			"action":  action + "_user_not_found",
		}).Warn("user not found")
		return ErrUserNotFound
	}
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(id),
		"action":  action + "_user_check_failed",
	}).Errorf("user check failed: %v", err)
	return newInternalError("DB_ERROR", "failed to check user", err)
}
