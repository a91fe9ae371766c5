package data

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"portfolio-projection/internal/config"
	"portfolio-projection/internal/logging"
	"portfolio-projection/internal/model"
)

// ErrUnknownProfile is returned when a profile id matches no preset.
var ErrUnknownProfile = errors.New("unknown profile")

// ProfileStore serves risk profiles from a directory of YAML presets
// (one `profile:` document per file). When the directory is missing or
// holds no usable presets, the built-in profiles are served instead.
type ProfileStore struct {
	dir    string
	logger *slog.Logger
}

func NewProfileStore(dir string, logger *slog.Logger) *ProfileStore {
	if logger == nil {
		logger = logging.Discard()
	}
	return &ProfileStore{dir: dir, logger: logger}
}

// Dir returns the directory the store reads from.
func (s *ProfileStore) Dir() string {
	return s.dir
}

// List returns every profile sorted by expected return, lowest first.
func (s *ProfileStore) List() []model.RiskProfile {
	profiles := s.loadDir()
	if len(profiles) == 0 {
		return model.BuiltinProfiles()
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		if profiles[i].ExpectedReturn != profiles[j].ExpectedReturn {
			return profiles[i].ExpectedReturn < profiles[j].ExpectedReturn
		}
		return profiles[i].ID < profiles[j].ID
	})
	return profiles
}

// Get looks a profile up by id. An empty id resolves to the default profile.
func (s *ProfileStore) Get(id string) (model.RiskProfile, error) {
	if id == "" {
		id = model.DefaultProfileID
	}
	for _, p := range s.List() {
		if p.ID == id {
			return p, nil
		}
	}
	return model.RiskProfile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, id)
}

func (s *ProfileStore) loadDir() []model.RiskProfile {
	if s.dir == "" {
		return nil
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Debug("profile directory unavailable", "dir", s.dir, "error", err)
		return nil
	}

	var profiles []model.RiskProfile
	seen := map[string]bool{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			continue
		}
		path := filepath.Join(s.dir, name)
		p, err := loadProfile(path, name)
		if err != nil {
			s.logger.Warn("skipping profile file", "path", path, "error", err)
			continue
		}
		if seen[p.ID] {
			s.logger.Warn("duplicate profile id", "id", p.ID, "path", path)
			continue
		}
		seen[p.ID] = true
		profiles = append(profiles, p)
	}
	return profiles
}

func loadProfile(path, filename string) (model.RiskProfile, error) {
	pc, err := config.LoadProfileFile(path)
	if err != nil {
		return model.RiskProfile{}, err
	}
	p := pc.ToModel()
	// "offensive.yaml" -> "offensive"
	if p.ID == "" {
		p.ID = strings.TrimSuffix(strings.TrimSuffix(filename, ".yaml"), ".yml")
	}
	if p.Name == "" {
		p.Name = p.ID
	}
	if err := p.Validate(); err != nil {
		return model.RiskProfile{}, err
	}
	return p, nil
}
