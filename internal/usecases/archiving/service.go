// Package archiving produces and restores full-state snapshots. A snapshot is
// advisory best-effort durability: it is written as one value and restored
// through the normal repository write path so restored records are
// revalidated, never trusted.
package archiving

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/repository"
	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
	"github.com/mwumpini/WIP-HMS-sub001/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SnapshotVersion stamps every snapshot this build produces.
const SnapshotVersion = "2.1.0"

var ErrMalformedSnapshot = errors.New("archiving: snapshot missing required shape")

// Archiver is the backup surface consumed by collaborators and the scheduler.
type Archiver interface {
	// CreateBackup serializes the whole addressable state. Returns nil if any
	// part cannot be gathered; it never partially succeeds.
	CreateBackup() []byte

	// RestoreFromBackup parses and applies a snapshot. Malformed input is
	// rejected wholesale before any key is touched.
	RestoreFromBackup(raw []byte) bool

	LastBackupAt() (time.Time, bool)
}

type Service struct {
	store    *storage.Adapter
	profiles *repository.Profiles
	sales    *repository.Collection[*domain.Sale]
	expenses *repository.Collection[*domain.Expense]
	staff    *repository.Collection[*domain.Staff]
	users    *repository.Users
}

func NewService(
	store *storage.Adapter,
	profiles *repository.Profiles,
	sales *repository.Collection[*domain.Sale],
	expenses *repository.Collection[*domain.Expense],
	staff *repository.Collection[*domain.Staff],
	users *repository.Users,
) Archiver {
	return &Service{
		store:    store,
		profiles: profiles,
		sales:    sales,
		expenses: expenses,
		staff:    staff,
		users:    users,
	}
}

func (s *Service) CreateBackup() []byte {
	user, _ := s.profiles.UserProfile()
	company, _ := s.profiles.Company()

	snapshot := domain.Snapshot{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   SnapshotVersion,
		Data: domain.SnapshotData{
			User:         user,
			Company:      company,
			Sales:        s.sales.GetAll(),
			Expenses:     s.expenses.GetAll(),
			Staff:        s.staff.GetAll(),
			CompanyUsers: s.users.GetAll(),
		},
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		log.L.WithError(err).Error("backup aborted, snapshot not serializable")
		return nil
	}

	if !s.store.Set(storage.KeyLastBackup, snapshot.Timestamp) {
		log.L.Warn("backup produced but lastBackupTimestamp not persisted")
	}

	// Best-effort spill of the snapshot into the namespace. These copies are
	// disposable: the storage adapter prunes them first when space runs out.
	if !s.store.Set(storage.DisposablePrefix+snapshot.Timestamp, snapshot) {
		log.L.Warn("backup copy not spilled to storage, export still returned")
	}

	log.L.WithFields(log.Fields{
		"sales":    len(snapshot.Data.Sales),
		"expenses": len(snapshot.Data.Expenses),
		"staff":    len(snapshot.Data.Staff),
		"version":  SnapshotVersion,
	}).Info("backup snapshot created")

	return raw
}

func (s *Service) RestoreFromBackup(raw []byte) bool {
	snapshot, err := decodeSnapshot(raw)
	if err != nil {
		log.L.WithError(err).Warn("restore rejected")
		return false
	}

	// Each collection replays through its own gate; invalid records are
	// dropped there with a warning, exactly as a normal write would do.
	ok := s.sales.ReplaceAll(snapshot.Data.Sales)
	ok = s.expenses.ReplaceAll(snapshot.Data.Expenses) && ok
	ok = s.staff.ReplaceAll(snapshot.Data.Staff) && ok
	ok = s.users.ReplaceAll(snapshot.Data.CompanyUsers) && ok

	if snapshot.Data.User != nil {
		if applied, errs := s.profiles.SetUserProfile(snapshot.Data.User); !applied {
			log.L.WithField("errors", errs).Warn("restored user profile rejected")
			ok = false
		}
	}
	if snapshot.Data.Company != nil {
		if applied, errs := s.profiles.SetCompany(snapshot.Data.Company); !applied {
			log.L.WithField("errors", errs).Warn("restored company profile rejected")
			ok = false
		}
	}

	if ok {
		log.L.WithField("snapshot_time", snapshot.Timestamp).Info("state restored from backup")
	}
	return ok
}

func (s *Service) LastBackupAt() (time.Time, bool) {
	var stamp string
	if !s.store.Get(storage.KeyLastBackup, &stamp) {
		return time.Time{}, false
	}
	at, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

// decodeSnapshot checks the top-level shape before binding any field, so a
// payload missing data or timestamp never touches live state.
func decodeSnapshot(raw []byte) (*domain.Snapshot, error) {
	var shape map[string]interface{}
	if err := json.Unmarshal(raw, &shape); err != nil {
		return nil, errors.Wrap(ErrMalformedSnapshot, "not valid JSON")
	}

	if _, ok := shape["timestamp"].(string); !ok {
		return nil, errors.Wrap(ErrMalformedSnapshot, "timestamp missing")
	}
	if _, ok := shape["data"].(map[string]interface{}); !ok {
		return nil, errors.Wrap(ErrMalformedSnapshot, "data missing")
	}

	var snapshot domain.Snapshot
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &snapshot,
		TagName: "mapstructure",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(shape); err != nil {
		return nil, errors.Wrap(ErrMalformedSnapshot, err.Error())
	}

	return &snapshot, nil
}
