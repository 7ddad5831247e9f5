package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/ningrum77/puskesmas-bok/pkg/models"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrReferenced = errors.New("still referenced by other records")
)

// Store keeps the whole application state in memory and rewrites the backing
// JSON file after every mutation. There is exactly one writer (the local
// service); concurrent readers share an RWMutex.
type Store struct {
	mu   sync.RWMutex
	file *os.File
	snap *models.Snapshot
	path string
}

// Open loads the snapshot at path, creating it with default collections when
// the file is empty. A malformed snapshot also falls back to the defaults;
// the broken content is logged, not fatal.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}
	s := &Store{file: f, path: path}
	if err := s.load(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.file.Close() }

func (s *Store) load() error {
	info, err := s.file.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		s.snap = DefaultSnapshot()
		return s.flushLocked()
	}
	var snap models.Snapshot
	if err := json.NewDecoder(s.file).Decode(&snap); err != nil {
		log.Printf("snapshot %s unreadable (%v), starting from defaults", s.path, err)
		s.snap = DefaultSnapshot()
		return s.flushLocked()
	}
	s.snap = &snap
	return nil
}

func (s *Store) flushLocked() error {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	enc := json.NewEncoder(s.file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.snap); err != nil {
		return err
	}
	// truncate in case the new content is shorter
	pos, _ := s.file.Seek(0, io.SeekCurrent)
	if err := s.file.Truncate(pos); err != nil {
		return err
	}
	return s.file.Sync()
}

// View runs fn with read access to the snapshot. fn must not retain or
// mutate what it is handed.
func (s *Store) View(fn func(*models.Snapshot)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.snap)
}

// Update runs fn with write access and persists the whole snapshot when fn
// succeeds.
func (s *Store) Update(fn func(*models.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.snap); err != nil {
		return err
	}
	return s.flushLocked()
}

// Snapshot returns a decoupled copy of the current state, used by read
// handlers and the export path.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, _ := json.Marshal(s.snap)
	var out models.Snapshot
	_ = json.Unmarshal(raw, &out)
	return out
}

// AddTransaction appends a cash ledger entry.
func (s *Store) AddTransaction(t models.Transaction) error {
	return s.Update(func(snap *models.Snapshot) error {
		snap.Transactions = append(snap.Transactions, t)
		return nil
	})
}

// DeleteTransaction removes one ledger entry by id.
func (s *Store) DeleteTransaction(id string) error {
	return s.Update(func(snap *models.Snapshot) error {
		for i, t := range snap.Transactions {
			if t.ID == id {
				snap.Transactions = append(snap.Transactions[:i], snap.Transactions[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// AddSchedule appends a roster event. Validation (headcount, double booking)
// happens in the scheduler package before this is called.
func (s *Store) AddSchedule(ev models.ScheduleEvent) error {
	return s.Update(func(snap *models.Snapshot) error {
		snap.Schedules = append(snap.Schedules, ev)
		return nil
	})
}

// DeleteSchedule removes one roster event. Events have no partial edit.
func (s *Store) DeleteSchedule(id string) error {
	return s.Update(func(snap *models.Snapshot) error {
		for i, ev := range snap.Schedules {
			if ev.ID == id {
				snap.Schedules = append(snap.Schedules[:i], snap.Schedules[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// BackfillSPT stamps the SPT number and date onto every event of one
// activity within one month.
func (s *Store) BackfillSPT(activityID, month, sptNumber, sptDate string) error {
	return s.Update(func(snap *models.Snapshot) error {
		for i := range snap.Schedules {
			ev := &snap.Schedules[i]
			if ev.ActivityID == activityID && len(ev.Date) >= 7 && ev.Date[:7] == month {
				n, d := sptNumber, sptDate
				ev.SPTNumber = &n
				ev.SPTDate = &d
			}
		}
		return nil
	})
}

// SaveReport inserts or replaces a report. A submitted report can never go
// back to draft.
func (s *Store) SaveReport(r models.ActivityReport) error {
	return s.Update(func(snap *models.Snapshot) error {
		for i, existing := range snap.Reports {
			if existing.ID == r.ID {
				if existing.Status == models.StatusSubmitted && r.Status == models.StatusDraft {
					return fmt.Errorf("report %s: submitted reports cannot revert to draft", r.ID)
				}
				snap.Reports[i] = r
				return nil
			}
		}
		snap.Reports = append(snap.Reports, r)
		return nil
	})
}

// DeleteReport removes a report entirely; there is no partial delete.
func (s *Store) DeleteReport(id string) error {
	return s.Update(func(snap *models.Snapshot) error {
		for i, r := range snap.Reports {
			if r.ID == id {
				snap.Reports = append(snap.Reports[:i], snap.Reports[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// UpsertGoal replaces any goal for the same (activity, month) pair.
func (s *Store) UpsertGoal(g models.RPKGoal) error {
	return s.Update(func(snap *models.Snapshot) error {
		kept := snap.RPKGoals[:0]
		for _, existing := range snap.RPKGoals {
			if !(existing.ActivityTypeID == g.ActivityTypeID && existing.Month == g.Month) {
				kept = append(kept, existing)
			}
		}
		snap.RPKGoals = append(kept, g)
		return nil
	})
}

// SaveActivityType inserts or replaces a catalog entry.
func (s *Store) SaveActivityType(a models.ActivityType) error {
	if a.RequiredStaffCount < 1 {
		return fmt.Errorf("activity %q: required staff count must be at least 1", a.Name)
	}
	return s.Update(func(snap *models.Snapshot) error {
		for i, existing := range snap.ActivityTypes {
			if existing.ID == a.ID {
				snap.ActivityTypes[i] = a
				return nil
			}
		}
		snap.ActivityTypes = append(snap.ActivityTypes, a)
		return nil
	})
}

// DeleteActivityType rejects the delete while schedules, reports or goals
// still reference the type, so the catalog never leaves dangling ids behind.
func (s *Store) DeleteActivityType(id string) error {
	return s.Update(func(snap *models.Snapshot) error {
		for _, ev := range snap.Schedules {
			if ev.ActivityID == id {
				return fmt.Errorf("activity %s: %w", id, ErrReferenced)
			}
		}
		for _, r := range snap.Reports {
			if r.ActivityID != nil && *r.ActivityID == id {
				return fmt.Errorf("activity %s: %w", id, ErrReferenced)
			}
		}
		for _, g := range snap.RPKGoals {
			if g.ActivityTypeID == id {
				return fmt.Errorf("activity %s: %w", id, ErrReferenced)
			}
		}
		for i, a := range snap.ActivityTypes {
			if a.ID == id {
				snap.ActivityTypes = append(snap.ActivityTypes[:i], snap.ActivityTypes[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// SaveStaff inserts or replaces a staff record.
func (s *Store) SaveStaff(st models.Staff) error {
	return s.Update(func(snap *models.Snapshot) error {
		for i, existing := range snap.Staff {
			if existing.ID == st.ID {
				snap.Staff[i] = st
				return nil
			}
		}
		snap.Staff = append(snap.Staff, st)
		return nil
	})
}

// DeleteStaff removes a staff record by id.
func (s *Store) DeleteStaff(id string) error {
	return s.Update(func(snap *models.Snapshot) error {
		for i, st := range snap.Staff {
			if st.ID == id {
				snap.Staff = append(snap.Staff[:i], snap.Staff[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// SaveTemplate inserts or replaces a letter template.
func (s *Store) SaveTemplate(t models.Template) error {
	return s.Update(func(snap *models.Snapshot) error {
		for i, existing := range snap.Templates {
			if existing.ID == t.ID {
				snap.Templates[i] = t
				return nil
			}
		}
		snap.Templates = append(snap.Templates, t)
		return nil
	})
}

// DeleteTemplate removes a template by id.
func (s *Store) DeleteTemplate(id string) error {
	return s.Update(func(snap *models.Snapshot) error {
		for i, t := range snap.Templates {
			if t.ID == id {
				snap.Templates = append(snap.Templates[:i], snap.Templates[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// SaveSHSItem inserts or replaces a price-list entry.
func (s *Store) SaveSHSItem(item models.SHSItem) error {
	return s.Update(func(snap *models.Snapshot) error {
		for i, existing := range snap.SHSItems {
			if existing.ID == item.ID {
				snap.SHSItems[i] = item
				return nil
			}
		}
		snap.SHSItems = append(snap.SHSItems, item)
		return nil
	})
}

// DeleteSHSItem removes a price-list entry by id.
func (s *Store) DeleteSHSItem(id string) error {
	return s.Update(func(snap *models.Snapshot) error {
		for i, item := range snap.SHSItems {
			if item.ID == id {
				snap.SHSItems = append(snap.SHSItems[:i], snap.SHSItems[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// AddHoliday records a custom off-day.
func (s *Store) AddHoliday(h models.Holiday) error {
	return s.Update(func(snap *models.Snapshot) error {
		snap.Holidays = append(snap.Holidays, h)
		return nil
	})
}

// DeleteHoliday removes the holiday on the given date.
func (s *Store) DeleteHoliday(date string) error {
	return s.Update(func(snap *models.Snapshot) error {
		for i, h := range snap.Holidays {
			if h.Date == date {
				snap.Holidays = append(snap.Holidays[:i], snap.Holidays[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// SetLetterhead replaces the document header configuration.
func (s *Store) SetLetterhead(cfg models.LetterheadConfig) error {
	return s.Update(func(snap *models.Snapshot) error {
		snap.Letterhead = cfg
		return nil
	})
}
