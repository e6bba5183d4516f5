package storage

import (
	"sort"

	"github.com/inkpress/core/internal/models"
)

// Setting returns one setting by key, or nil when absent.
func (s *Store) Setting(key string) *models.Setting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.settings[key]; ok {
		return &st
	}
	return nil
}

// Settings returns the flat key→value view, filtered by group when one is
// given.
func (s *Store) Settings(group string) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settingsLocked(group)
}

// UpdateSettings upserts each key in the patch. Existing keys have their
// value replaced and keep their group; new keys are created in group
// "general". Returns the full settings view after the update. There is no
// delete operation.
func (s *Store) UpdateSettings(patch map[string]any) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range patch {
		if existing, ok := s.settings[key]; ok {
			existing.Value = value
			s.settings[key] = existing
			continue
		}
		s.settings[key] = models.Setting{
			ID:    s.nextID(&s.ids.setting),
			Key:   key,
			Value: value,
			Group: "general",
		}
	}
	return s.settingsLocked("")
}

func (s *Store) settingsLocked(group string) map[string]any {
	out := make(map[string]any, len(s.settings))
	for key, st := range s.settings {
		if group != "" && st.Group != group {
			continue
		}
		out[key] = st.Value
	}
	return out
}

// AdUnitByID returns the ad unit or nil when absent.
func (s *Store) AdUnitByID(id int) *models.AdUnit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.adUnits[id]; ok {
		return &a
	}
	return nil
}

// CreateAdUnit inserts an ad unit. Units are managed out of band; the core
// only creates and serves them.
func (s *Store) CreateAdUnit(name, code, placement string, active bool) *models.AdUnit {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := models.AdUnit{
		ID:        s.nextID(&s.ids.adUnit),
		Name:      name,
		Code:      code,
		Placement: placement,
		IsActive:  active,
	}
	s.adUnits[a.ID] = a
	return &a
}

// ActiveAdUnits returns only units flagged active, ordered by id.
func (s *Store) ActiveAdUnits() []models.AdUnit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.AdUnit, 0, len(s.adUnits))
	for _, a := range s.adUnits {
		if a.IsActive {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
